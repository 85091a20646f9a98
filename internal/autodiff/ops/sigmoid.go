package ops

import (
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// SigmoidOp records y = sigmoid(x). The backward pass uses the saved output:
// dy/dx = y * (1 - y).
type SigmoidOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

func NewSigmoidOp(input, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{input: input, output: output}
}

func (op *SigmoidOp) Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	oneMinus := backend.AddScalar(backend.MulScalar(op.output, -1.0), 1.0)
	local := backend.Mul(op.output, oneMinus)
	return []*tensor.RawTensor{backend.Mul(gradOutput, local)}
}

func (op *SigmoidOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

func (op *SigmoidOp) Output() *tensor.RawTensor { return op.output }
