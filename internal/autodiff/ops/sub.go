package ops

import (
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// SubOp records z = a - b.
type SubOp struct {
	a, b   *tensor.RawTensor
	output *tensor.RawTensor
}

func NewSubOp(a, b, output *tensor.RawTensor) *SubOp {
	return &SubOp{a: a, b: b, output: output}
}

func (op *SubOp) Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradA := reduceBroadcast(gradOutput, op.a.Shape(), backend)
	gradB := reduceBroadcast(negate(gradOutput, backend), op.b.Shape(), backend)
	return []*tensor.RawTensor{gradA, gradB}
}

func (op *SubOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }

func (op *SubOp) Output() *tensor.RawTensor { return op.output }
