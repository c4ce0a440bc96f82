package commandkit

import (
	"context"
	"math"

	"golang.org/x/exp/constraints"
)

// Numeric is the set of types Bounded can parse: every signed integer and
// float width the standard parser family covers.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// Bounded is a generic range-checked numeric ArgumentType, collapsing the
// teacher's Int32ArgumentType/Int64ArgumentType/Float32ArgumentType/
// Float64ArgumentType into one implementation parameterized on T.
type Bounded[T Numeric] struct {
	Min, Max T
}

// defaultBounds returns the full representable range of T, mirroring the
// teacher's package-level Int32/Int64/Float32/Float64 defaults.
func defaultBounds[T Numeric]() (min, max T) {
	var zero T
	var (
		minInt32, maxInt32 int64   = math.MinInt32, math.MaxInt32
		minInt64, maxInt64 int64   = math.MinInt64, math.MaxInt64
		maxFloat32         float64 = math.MaxFloat32
		maxFloat64         float64 = math.MaxFloat64
	)
	switch any(zero).(type) {
	case int32:
		return T(minInt32), T(maxInt32)
	case int64, int:
		return T(minInt64), T(maxInt64)
	case float32:
		return T(-maxFloat32), T(maxFloat32)
	case float64:
		return T(-maxFloat64), T(maxFloat64)
	default:
		return T(minInt64), T(maxInt64)
	}
}

// NewBounded builds a Bounded[T] spanning the full representable range of T.
func NewBounded[T Numeric]() *Bounded[T] {
	min, max := defaultBounds[T]()
	return &Bounded[T]{Min: min, Max: max}
}

// NewBoundedRange builds a Bounded[T] restricted to [min, max].
func NewBoundedRange[T Numeric](min, max T) *Bounded[T] {
	return &Bounded[T]{Min: min, Max: max}
}

func (b *Bounded[T]) Parse(_ context.Context, in *CommandInput) (T, error) {
	var zero T
	start := in.Cursor
	var value T
	var err error
	switch any(zero).(type) {
	case float32, float64:
		var f float64
		f, err = in.ReadFloat64()
		value = T(f)
	default:
		var i int64
		i, err = in.ReadInt64()
		value = T(i)
	}
	if err != nil {
		return zero, err
	}
	if value < b.Min {
		in.Cursor = start
		return zero, newNumberOutOfRangeError(in, value, b.Min, b.Max)
	}
	if value > b.Max {
		in.Cursor = start
		return zero, newNumberOutOfRangeError(in, value, b.Min, b.Max)
	}
	return value, nil
}
