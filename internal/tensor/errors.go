package tensor

import "errors"

// Sentinel errors callers branch on. Validation failures wrap these
// with the offending geometry.
var (
	// ErrNotContiguous is returned by operations that require canonical
	// row-major layout (View, dense interop).
	ErrNotContiguous = errors.New("tensor is not contiguous")

	// ErrShapeMismatch is returned when operand geometries are
	// incompatible (element counts, expand targets, kernel shapes).
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrDimRange is returned when a dimension index falls outside
	// [1, rank] after sign normalization.
	ErrDimRange = errors.New("dimension out of range")

	// ErrIndexRange is returned when an element index falls outside a
	// dimension's extent after sign normalization.
	ErrIndexRange = errors.New("index out of range")
)
