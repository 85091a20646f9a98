package cpu

import (
	"fmt"

	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// Sum reduces all elements to a single-element tensor of the same dtype.
func (c *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	out, err := tensor.NewRaw(tensor.Shape{1}, x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("sum: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		var acc float32
		for _, v := range x.AsFloat32() {
			acc += v
		}
		out.AsFloat32()[0] = acc
	case tensor.Float64:
		var acc float64
		for _, v := range x.AsFloat64() {
			acc += v
		}
		out.AsFloat64()[0] = acc
	case tensor.Int32:
		var acc int32
		for _, v := range x.AsInt32() {
			acc += v
		}
		out.AsInt32()[0] = acc
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}
	return out
}

// Argmax returns int32 indices of the maximum along dim; the reduced
// dimension is removed. Ties resolve to the lowest index. Negative dim counts
// from the end.
func (c *CPUBackend) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("argmax: dimension %d out of range for %dD tensor", dim, ndim))
	}

	outShape := make(tensor.Shape, 0, ndim-1)
	for d, size := range shape {
		if d != dim {
			outShape = append(outShape, size)
		}
	}
	if len(outShape) == 0 {
		outShape = tensor.Shape{1}
	}

	out, err := tensor.NewRaw(outShape, tensor.Int32, c.device)
	if err != nil {
		panic(fmt.Sprintf("argmax: %v", err))
	}

	n := shape[dim]
	inner := 1
	for d := dim + 1; d < ndim; d++ {
		inner *= shape[d]
	}
	outer := x.NumElements() / (n * inner)

	switch x.DType() {
	case tensor.Float32:
		argmaxKernel(out.AsInt32(), x.AsFloat32(), outer, n, inner)
	case tensor.Float64:
		argmaxKernel(out.AsInt32(), x.AsFloat64(), outer, n, inner)
	case tensor.Int32:
		argmaxKernel(out.AsInt32(), x.AsInt32(), outer, n, inner)
	default:
		panic(fmt.Sprintf("argmax: unsupported dtype %s", x.DType()))
	}
	return out
}

func argmaxKernel[T number](dst []int32, src []T, outer, n, inner int) {
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*n*inner + in
			best := int32(0)
			bestVal := src[base]
			for k := 1; k < n; k++ {
				if v := src[base+k*inner]; v > bestVal {
					bestVal = v
					best = int32(k)
				}
			}
			dst[o*inner+in] = best
		}
	}
}
