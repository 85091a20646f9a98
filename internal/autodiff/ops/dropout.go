package ops

import (
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// DropoutOp records y = x * mask where mask holds 0 or 1/(1-p) per element
// (inverted dropout). The same mask scales the gradient on the way back.
type DropoutOp struct {
	input  *tensor.RawTensor
	mask   *tensor.RawTensor
	output *tensor.RawTensor
}

func NewDropoutOp(input, mask, output *tensor.RawTensor) *DropoutOp {
	return &DropoutOp{input: input, mask: mask, output: output}
}

func (op *DropoutOp) Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(gradOutput, op.mask)}
}

func (op *DropoutOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

func (op *DropoutOp) Output() *tensor.RawTensor { return op.output }
