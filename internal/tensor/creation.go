package tensor

import (
	"fmt"
	"math/rand"
)

// Zeros creates a zero-filled tensor.
func Zeros[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	raw, err := NewRaw(shape, dtypeOf[T](), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("tensor: Zeros: %v", err))
	}
	return &Tensor[T, B]{raw: raw, backend: backend}
}

// Ones creates a one-filled tensor.
func Ones[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	var one T
	switch any(&one).(type) {
	case *bool:
		return Full[T, B](shape, any(true).(T), backend)
	case *float32:
		return Full[T, B](shape, any(float32(1)).(T), backend)
	case *float64:
		return Full[T, B](shape, any(float64(1)).(T), backend)
	case *int32:
		return Full[T, B](shape, any(int32(1)).(T), backend)
	default:
		panic("tensor: unreachable dtype")
	}
}

// Full creates a tensor filled with value.
func Full[T DType, B Backend](shape Shape, value T, backend B) *Tensor[T, B] {
	t := Zeros[T, B](shape, backend)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn creates a float tensor with standard-normal entries.
// Only Float32 and Float64 are supported.
func Randn[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	t := Zeros[T, B](shape, backend)
	switch data := any(t.Data()).(type) {
	case []float32:
		for i := range data {
			data[i] = float32(rand.NormFloat64())
		}
	case []float64:
		for i := range data {
			data[i] = rand.NormFloat64()
		}
	default:
		panic(fmt.Sprintf("tensor: Randn requires a float dtype, got %s", t.DType()))
	}
	return t
}
