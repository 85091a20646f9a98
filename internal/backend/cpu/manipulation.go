package cpu

import (
	"fmt"

	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// Cat concatenates tensors along dim. All inputs must share every dimension
// except the concatenation dimension. Negative dim counts from the end.
func (c *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	shape := tensors[0].Shape()
	ndim := len(shape)
	dtype := tensors[0].DType()

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("cat: dimension %d out of range for %dD tensor", dim, ndim))
	}

	totalDim := 0
	for i, t := range tensors {
		tShape := t.Shape()
		if len(tShape) != ndim {
			panic(fmt.Sprintf("cat: tensor %d is %dD, want %dD", i, len(tShape), ndim))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, want %s", i, t.DType(), dtype))
		}
		for d := 0; d < ndim; d++ {
			if d == dim {
				totalDim += tShape[d]
			} else if tShape[d] != shape[d] {
				panic(fmt.Sprintf("cat: tensor %d dimension %d is %d, want %d", i, d, tShape[d], shape[d]))
			}
		}
	}

	outShape := shape.Clone()
	outShape[dim] = totalDim
	out, err := tensor.NewRaw(outShape, dtype, c.device)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	// Viewed as [outer, size(dim), inner], each input contributes one
	// contiguous byte run per outer slice.
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	inner := 1
	for d := dim + 1; d < ndim; d++ {
		inner *= shape[d]
	}
	elem := dtype.Size()

	rowBytes := make([]int, len(tensors))
	outRowBytes := 0
	for i, t := range tensors {
		rowBytes[i] = t.Shape()[dim] * inner * elem
		outRowBytes += rowBytes[i]
	}

	dst := out.Data()
	for o := 0; o < outer; o++ {
		off := o * outRowBytes
		for i, t := range tensors {
			n := rowBytes[i]
			copy(dst[off:off+n], t.Data()[o*n:(o+1)*n])
			off += n
		}
	}
	return out
}

// Chunk splits x into n equal parts along dim.
// The dimension size must be divisible by n. Negative dim counts from the end.
func (c *CPUBackend) Chunk(x *tensor.RawTensor, n, dim int) []*tensor.RawTensor {
	if n <= 0 {
		panic(fmt.Sprintf("chunk: n must be positive, got %d", n))
	}

	shape := x.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("chunk: dimension %d out of range for %dD tensor", dim, ndim))
	}
	if shape[dim]%n != 0 {
		panic(fmt.Sprintf("chunk: dimension %d size %d not divisible by %d", dim, shape[dim], n))
	}

	partShape := shape.Clone()
	partShape[dim] = shape[dim] / n

	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	inner := 1
	for d := dim + 1; d < ndim; d++ {
		inner *= shape[d]
	}
	elem := x.DType().Size()
	partRowBytes := partShape[dim] * inner * elem
	srcRowBytes := shape[dim] * inner * elem
	src := x.Data()

	parts := make([]*tensor.RawTensor, n)
	for i := range parts {
		part, err := tensor.NewRaw(partShape, x.DType(), c.device)
		if err != nil {
			panic(fmt.Sprintf("chunk: %v", err))
		}
		dst := part.Data()
		for o := 0; o < outer; o++ {
			srcOff := o*srcRowBytes + i*partRowBytes
			copy(dst[o*partRowBytes:(o+1)*partRowBytes], src[srcOff:srcOff+partRowBytes])
		}
		parts[i] = part
	}
	return parts
}
