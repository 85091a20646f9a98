// Package tensor provides the typed tensor core: shapes, runtime dtypes, the
// untyped RawTensor buffer backends compute on, and the generic Tensor[T, B]
// wrapper that gives the rest of the code a compile-time-typed API.
//
// Tensor is generic over both element type and backend:
//   - T: element type (float32, float64, int32, bool)
//   - B: compute backend (must implement Backend)
//
// All computation is delegated to the backend; Tensor itself only carries the
// RawTensor and the backend handle, so wrapping is free.
package tensor

import "fmt"

// Tensor is a typed view over a RawTensor bound to a backend.
type Tensor[T DType, B Backend] struct {
	raw     *RawTensor
	backend B
}

// New wraps a RawTensor in a typed Tensor.
// Panics if the raw dtype does not match T.
func New[T DType, B Backend](raw *RawTensor, backend B) *Tensor[T, B] {
	if want := dtypeOf[T](); raw.DType() != want {
		panic(fmt.Sprintf("tensor: dtype mismatch: raw is %s, want %s", raw.DType(), want))
	}
	return &Tensor[T, B]{raw: raw, backend: backend}
}

// FromSlice builds a tensor from a flat slice in row-major order.
func FromSlice[T DType, B Backend](data []T, shape Shape, backend B) *Tensor[T, B] {
	if len(data) != shape.NumElements() {
		panic(fmt.Sprintf("tensor: FromSlice got %d elements for shape %v (want %d)",
			len(data), shape, shape.NumElements()))
	}

	raw, err := NewRaw(shape, dtypeOf[T](), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("tensor: FromSlice: %v", err))
	}

	t := &Tensor[T, B]{raw: raw, backend: backend}
	copy(t.Data(), data)
	return t
}

// Raw returns the underlying RawTensor.
func (t *Tensor[T, B]) Raw() *RawTensor {
	return t.raw
}

// Backend returns the backend handle.
func (t *Tensor[T, B]) Backend() B {
	return t.backend
}

// Shape returns the tensor shape.
func (t *Tensor[T, B]) Shape() Shape {
	return t.raw.Shape()
}

// DType returns the runtime element type.
func (t *Tensor[T, B]) DType() DataType {
	return t.raw.DType()
}

// NumElements returns the total element count.
func (t *Tensor[T, B]) NumElements() int {
	return t.raw.NumElements()
}

// Data returns the typed flat view of the tensor's buffer.
// Mutations write through to the tensor.
func (t *Tensor[T, B]) Data() []T {
	switch dtypeOf[T]() {
	case Float32:
		return any(t.raw.AsFloat32()).([]T)
	case Float64:
		return any(t.raw.AsFloat64()).([]T)
	case Int32:
		return any(t.raw.AsInt32()).([]T)
	case Bool:
		return any(t.raw.AsBool()).([]T)
	default:
		panic("tensor: unreachable dtype")
	}
}

// At returns the element at the given multi-dimensional index.
func (t *Tensor[T, B]) At(indices ...int) T {
	shape := t.raw.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("tensor: At got %d indices for %dD tensor", len(indices), len(shape)))
	}

	flat := 0
	strides := t.raw.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d (size %d)", idx, i, shape[i]))
		}
		flat += idx * strides[i]
	}
	return t.Data()[flat]
}

// Item returns the value of a single-element tensor.
func (t *Tensor[T, B]) Item() T {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("tensor: Item on tensor with %d elements", t.NumElements()))
	}
	return t.Data()[0]
}

// Clone returns a deep copy sharing the backend but not the buffer.
func (t *Tensor[T, B]) Clone() *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.raw.Clone(), backend: t.backend}
}

// String renders a short description, not the full contents.
func (t *Tensor[T, B]) String() string {
	return fmt.Sprintf("Tensor[%s]%v on %s", t.DType(), t.Shape(), t.raw.Device())
}
