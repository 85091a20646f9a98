package ops

import (
	"fmt"

	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// reduceBroadcast reduces a gradient to the shape an operand had before
// broadcasting: dimensions the operand lacked are summed away, dimensions of
// size 1 are summed down to 1.
func reduceBroadcast(grad *tensor.RawTensor, target tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(target) {
		// Clone so gradient accumulation never mutates a shared buffer.
		return grad.Clone()
	}

	result := grad
	for len(result.Shape()) > len(target) {
		result = sumAlongDim(result, 0)
		result = backend.Reshape(result, result.Shape()[1:])
	}

	for d, size := range target {
		if size == 1 && result.Shape()[d] > 1 {
			result = sumAlongDim(result, d)
		}
	}

	if !result.Shape().Equal(target) {
		result = backend.Reshape(result, target)
	}
	return result
}

// sumAlongDim sums over one dimension, keeping it with size 1.
func sumAlongDim(t *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := t.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("sumAlongDim: dimension %d out of range for shape %v", dim, shape))
	}

	outShape := shape.Clone()
	outShape[dim] = 1
	out, err := tensor.NewRaw(outShape, t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("sumAlongDim: %v", err))
	}

	n := shape[dim]
	inner := 1
	for d := dim + 1; d < len(shape); d++ {
		inner *= shape[d]
	}
	outer := t.NumElements() / (n * inner)

	switch t.DType() {
	case tensor.Float32:
		sumDimKernel(out.AsFloat32(), t.AsFloat32(), outer, n, inner)
	case tensor.Float64:
		sumDimKernel(out.AsFloat64(), t.AsFloat64(), outer, n, inner)
	default:
		panic(fmt.Sprintf("sumAlongDim: unsupported dtype %s", t.DType()))
	}
	return out
}

func sumDimKernel[T float32 | float64](dst, src []T, outer, n, inner int) {
	for o := 0; o < outer; o++ {
		for k := 0; k < n; k++ {
			base := o*n*inner + k*inner
			for in := 0; in < inner; in++ {
				dst[o*inner+in] += src[base+in]
			}
		}
	}
}

// negate returns -grad.
func negate(grad *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	return backend.MulScalar(grad, -1.0)
}
