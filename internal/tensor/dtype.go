package tensor

import "fmt"

// DataType is the runtime element type of a RawTensor.
type DataType int

// Supported element types.
//
// Float32 carries model parameters, activations and gradients; Int32 carries
// token indices and label codes; Float64 exists for numeric tests; Bool backs
// mask tensors.
const (
	Float32 DataType = iota
	Float64
	Int32
	Bool
)

// Size returns the element size in bytes.
func (d DataType) Size() int {
	switch d {
	case Float32, Int32:
		return 4
	case Float64:
		return 8
	case Bool:
		return 1
	default:
		panic(fmt.Sprintf("dtype: unknown DataType %d", int(d)))
	}
}

// String returns the dtype name.
func (d DataType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// DType is the compile-time constraint mirroring DataType.
type DType interface {
	float32 | float64 | int32 | bool
}

// dtypeOf maps a DType type parameter to its runtime DataType.
func dtypeOf[T DType]() DataType {
	var zero T
	switch any(zero).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case bool:
		return Bool
	default:
		panic("dtype: unreachable")
	}
}
