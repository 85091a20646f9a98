package ops

import (
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// MulOp records z = a * b (elementwise).
type MulOp struct {
	a, b   *tensor.RawTensor
	output *tensor.RawTensor
}

func NewMulOp(a, b, output *tensor.RawTensor) *MulOp {
	return &MulOp{a: a, b: b, output: output}
}

func (op *MulOp) Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradA := reduceBroadcast(backend.Mul(gradOutput, op.b), op.a.Shape(), backend)
	gradB := reduceBroadcast(backend.Mul(gradOutput, op.a), op.b.Shape(), backend)
	return []*tensor.RawTensor{gradA, gradB}
}

func (op *MulOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }

func (op *MulOp) Output() *tensor.RawTensor { return op.output }
