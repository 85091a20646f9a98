package ops

import (
	"fmt"

	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// CatOp records y = cat(inputs, dim). The backward pass slices the upstream
// gradient along dim back into per-input pieces.
type CatOp struct {
	inputs []*tensor.RawTensor
	dim    int
	output *tensor.RawTensor
}

func NewCatOp(inputs []*tensor.RawTensor, dim int, output *tensor.RawTensor) *CatOp {
	return &CatOp{inputs: inputs, dim: dim, output: output}
}

func (op *CatOp) Backward(gradOutput *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	outShape := gradOutput.Shape()
	dim := op.dim
	if dim < 0 {
		dim += len(outShape)
	}

	inner := 1
	for d := dim + 1; d < len(outShape); d++ {
		inner *= outShape[d]
	}
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= outShape[d]
	}

	elemSize := gradOutput.DType().Size()
	srcRowBytes := outShape[dim] * inner * elemSize
	srcData := gradOutput.Data()

	grads := make([]*tensor.RawTensor, len(op.inputs))
	offset := 0
	for i, in := range op.inputs {
		grad, err := tensor.NewRaw(in.Shape(), gradOutput.DType(), gradOutput.Device())
		if err != nil {
			panic(fmt.Sprintf("cat backward: %v", err))
		}
		partRowBytes := in.Shape()[dim] * inner * elemSize
		dstData := grad.Data()
		for o := 0; o < outer; o++ {
			src := o*srcRowBytes + offset
			copy(dstData[o*partRowBytes:(o+1)*partRowBytes], srcData[src:src+partRowBytes])
		}
		offset += partRowBytes
		grads[i] = grad
	}
	return grads
}

func (op *CatOp) Inputs() []*tensor.RawTensor { return op.inputs }

func (op *CatOp) Output() *tensor.RawTensor { return op.output }
