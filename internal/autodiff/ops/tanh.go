package ops

import (
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// TanhOp records y = tanh(x). The backward pass uses the saved output:
// dy/dx = 1 - y^2.
type TanhOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

func NewTanhOp(input, output *tensor.RawTensor) *TanhOp {
	return &TanhOp{input: input, output: output}
}

func (op *TanhOp) Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	ySquared := backend.Mul(op.output, op.output)
	oneMinus := backend.AddScalar(backend.MulScalar(ySquared, -1.0), 1.0)
	return []*tensor.RawTensor{backend.Mul(gradOutput, oneMinus)}
}

func (op *TanhOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

func (op *TanhOp) Output() *tensor.RawTensor { return op.output }
