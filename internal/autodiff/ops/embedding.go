package ops

import (
	"fmt"

	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// EmbeddingOp records y = weight[indices]. The gradient scatter-adds each
// output row back into the looked-up weight row; indices take no gradient.
type EmbeddingOp struct {
	weight  *tensor.RawTensor
	indices *tensor.RawTensor
	output  *tensor.RawTensor
}

func NewEmbeddingOp(weight, indices, output *tensor.RawTensor) *EmbeddingOp {
	return &EmbeddingOp{weight: weight, indices: indices, output: output}
}

func (op *EmbeddingOp) Backward(gradOutput *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	grad, err := tensor.NewRaw(op.weight.Shape(), op.weight.DType(), op.weight.Device())
	if err != nil {
		panic(fmt.Sprintf("embedding backward: %v", err))
	}

	dim := op.weight.Shape()[1]
	dst := grad.AsFloat32()
	src := gradOutput.AsFloat32()
	for i, idx := range op.indices.AsInt32() {
		row := int(idx) * dim
		out := i * dim
		for d := 0; d < dim; d++ {
			dst[row+d] += src[out+d]
		}
	}
	return []*tensor.RawTensor{grad}
}

// Inputs reports only the weight: the tape should not chase gradients into
// integer index tensors.
func (op *EmbeddingOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.weight} }

func (op *EmbeddingOp) Output() *tensor.RawTensor { return op.output }
