package cpu

import (
	"fmt"

	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// Embedding gathers rows of weight [V, H] by int32 indices of any shape S,
// producing a float tensor of shape S + [H]. Out-of-range indices panic.
func (c *CPUBackend) Embedding(weight, indices *tensor.RawTensor) *tensor.RawTensor {
	wShape := weight.Shape()
	if len(wShape) != 2 {
		panic(fmt.Sprintf("embedding: weight must be 2D [num, dim], got %v", wShape))
	}
	if weight.DType() != tensor.Float32 {
		panic(fmt.Sprintf("embedding: weight must be float32, got %s", weight.DType()))
	}
	if indices.DType() != tensor.Int32 {
		panic(fmt.Sprintf("embedding: indices must be int32, got %s", indices.DType()))
	}

	num, dim := wShape[0], wShape[1]
	outShape := append(indices.Shape().Clone(), dim)
	out, err := tensor.NewRaw(outShape, tensor.Float32, c.device)
	if err != nil {
		panic(fmt.Sprintf("embedding: %v", err))
	}

	rowBytes := dim * tensor.Float32.Size()
	src := weight.Data()
	dst := out.Data()
	for i, idx := range indices.AsInt32() {
		if idx < 0 || int(idx) >= num {
			panic(fmt.Sprintf("embedding: index %d out of range [0, %d)", idx, num))
		}
		copy(dst[i*rowBytes:(i+1)*rowBytes], src[int(idx)*rowBytes:(int(idx)+1)*rowBytes])
	}
	return out
}
