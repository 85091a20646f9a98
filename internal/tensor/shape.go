package tensor

import (
	"fmt"
	"strings"
)

// Shape describes tensor dimensions in row-major order.
type Shape []int

// NumElements returns the total element count.
// An empty shape describes a scalar and counts as one element.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Equal reports whether two shapes match dimension for dimension.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// Validate returns an error if any dimension is non-positive.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("dimension %d must be positive, got %d", i, dim)
		}
	}
	return nil
}

// ComputeStrides returns row-major strides for the shape.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	stride := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= s[i]
	}
	return strides
}

// String renders the shape as "[2, 3, 4]".
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, dim := range s {
		parts[i] = fmt.Sprintf("%d", dim)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// BroadcastShapes computes the NumPy-style broadcast result of two shapes.
//
// Shapes are aligned from the right; a dimension broadcasts when either side
// is 1. Returns the output shape, whether any broadcasting is required, and an
// error for incompatible dimensions.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	ndim := len(a)
	if len(b) > ndim {
		ndim = len(b)
	}

	out := make(Shape, ndim)
	broadcast := len(a) != len(b)

	for i := 0; i < ndim; i++ {
		ad, bd := 1, 1
		if idx := len(a) - ndim + i; idx >= 0 {
			ad = a[idx]
		}
		if idx := len(b) - ndim + i; idx >= 0 {
			bd = b[idx]
		}

		switch {
		case ad == bd:
			out[i] = ad
		case ad == 1:
			out[i] = bd
			broadcast = true
		case bd == 1:
			out[i] = ad
			broadcast = true
		default:
			return nil, false, fmt.Errorf("cannot broadcast %v with %v: dimension %d mismatch (%d vs %d)",
				a, b, i, ad, bd)
		}
	}

	return out, broadcast, nil
}
