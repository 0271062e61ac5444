// Package tensor implements the strided tensor core: a flat storage
// buffer plus view metadata (size, stride, offset) that lets many
// logical shapes alias one physical buffer without copying.
package tensor

// Float is the constraint for supported element types.
type Float interface {
	float32 | float64
}

// DataType is the runtime tag for a tensor's element type.
type DataType int

// Supported element types.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of one element.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// TypeOf reports the DataType tag for the element type T.
func TypeOf[T Float]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	default:
		return Float64
	}
}
