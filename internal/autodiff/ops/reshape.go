package ops

import (
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// ReshapeOp records z = reshape(a, shape). The gradient is reshaped back to
// the input's original shape.
type ReshapeOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

func NewReshapeOp(input, output *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{input: input, output: output}
}

func (op *ReshapeOp) Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(gradOutput, op.input.Shape())}
}

func (op *ReshapeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

func (op *ReshapeOp) Output() *tensor.RawTensor { return op.output }
