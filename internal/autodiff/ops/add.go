package ops

import (
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// AddOp records z = a + b.
type AddOp struct {
	a, b   *tensor.RawTensor
	output *tensor.RawTensor
}

func NewAddOp(a, b, output *tensor.RawTensor) *AddOp {
	return &AddOp{a: a, b: b, output: output}
}

func (op *AddOp) Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradA := reduceBroadcast(gradOutput, op.a.Shape(), backend)
	gradB := reduceBroadcast(gradOutput, op.b.Shape(), backend)
	return []*tensor.RawTensor{gradA, gradB}
}

func (op *AddOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }

func (op *AddOp) Output() *tensor.RawTensor { return op.output }
