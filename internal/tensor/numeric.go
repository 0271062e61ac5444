package tensor

import (
	"math"
	"math/rand"

	"github.com/chewxy/math32"
)

// Numeric is the per-element-type arithmetic strategy. It is the only
// place element-type-specific code enters the engine; everything else
// is generic over T. Random primitives take an explicit generator so
// output is deterministic under a seeded rand.Rand.
type Numeric[T Float] interface {
	Zero() T
	One() T
	FromInt(i int) T
	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Div(a, b T) T
	Greater(a, b T) bool
	Abs(v T) T
	Sqrt(v T) T
	Rand(rng *rand.Rand) T
	Randn(rng *rand.Rand) T
	Float64(v T) float64
	FromFloat64(f float64) T
	// Eps is the tolerance used by element equality comparison.
	Eps() float64
}

type float32Numeric struct{}

func (float32Numeric) Zero() float32                 { return 0 }
func (float32Numeric) One() float32                  { return 1 }
func (float32Numeric) FromInt(i int) float32         { return float32(i) }
func (float32Numeric) Add(a, b float32) float32      { return a + b }
func (float32Numeric) Sub(a, b float32) float32      { return a - b }
func (float32Numeric) Mul(a, b float32) float32      { return a * b }
func (float32Numeric) Div(a, b float32) float32      { return a / b }
func (float32Numeric) Greater(a, b float32) bool     { return a > b }
func (float32Numeric) Abs(v float32) float32         { return math32.Abs(v) }
func (float32Numeric) Sqrt(v float32) float32        { return math32.Sqrt(v) }
func (float32Numeric) Rand(rng *rand.Rand) float32   { return rng.Float32() }
func (float32Numeric) Randn(rng *rand.Rand) float32  { return float32(rng.NormFloat64()) }
func (float32Numeric) Float64(v float32) float64     { return float64(v) }
func (float32Numeric) FromFloat64(f float64) float32 { return float32(f) }
func (float32Numeric) Eps() float64                  { return 1e-5 }

type float64Numeric struct{}

func (float64Numeric) Zero() float64                 { return 0 }
func (float64Numeric) One() float64                  { return 1 }
func (float64Numeric) FromInt(i int) float64         { return float64(i) }
func (float64Numeric) Add(a, b float64) float64      { return a + b }
func (float64Numeric) Sub(a, b float64) float64      { return a - b }
func (float64Numeric) Mul(a, b float64) float64      { return a * b }
func (float64Numeric) Div(a, b float64) float64      { return a / b }
func (float64Numeric) Greater(a, b float64) bool     { return a > b }
func (float64Numeric) Abs(v float64) float64         { return math.Abs(v) }
func (float64Numeric) Sqrt(v float64) float64        { return math.Sqrt(v) }
func (float64Numeric) Rand(rng *rand.Rand) float64   { return rng.Float64() }
func (float64Numeric) Randn(rng *rand.Rand) float64  { return rng.NormFloat64() }
func (float64Numeric) Float64(v float64) float64     { return v }
func (float64Numeric) FromFloat64(f float64) float64 { return f }
func (float64Numeric) Eps() float64                  { return 1e-9 }

// NumericFor returns the arithmetic strategy for the element type T.
func NumericFor[T Float]() Numeric[T] {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(float32Numeric{}).(Numeric[T])
	default:
		return any(float64Numeric{}).(Numeric[T])
	}
}
