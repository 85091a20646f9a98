package cpu

import (
	"fmt"

	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// Reshape returns a tensor with the same elements and a new shape.
func (c *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes %v -> %v", t.Shape(), newShape))
	}

	out, err := tensor.NewRaw(newShape, t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	copy(out.Data(), t.Data())
	return out
}

// Transpose permutes dimensions. With no axes, all dimensions are reversed.
func (c *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: %d axes for %dD tensor", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: axis %d out of range for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	out, err := tensor.NewRaw(newShape, t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	// For source dimension d, the stride its coordinate contributes to the
	// destination index.
	srcStrides := shape.ComputeStrides()
	dstStrides := newShape.ComputeStrides()
	permStrides := make([]int, ndim)
	for outDim, ax := range axes {
		permStrides[ax] = dstStrides[outDim]
	}

	// Walk source elements and move them as byte runs so all dtypes share
	// one path.
	elem := t.DType().Size()
	srcData, dstData := t.Data(), out.Data()
	total := t.NumElements()
	for i := 0; i < total; i++ {
		rem := i
		dstIdx := 0
		for d := 0; d < ndim; d++ {
			coord := rem / srcStrides[d]
			rem %= srcStrides[d]
			dstIdx += coord * permStrides[d]
		}
		copy(dstData[dstIdx*elem:(dstIdx+1)*elem], srcData[i*elem:(i+1)*elem])
	}
	return out
}
