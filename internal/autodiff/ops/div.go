package ops

import (
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// DivOp records z = a / b (elementwise).
type DivOp struct {
	a, b   *tensor.RawTensor
	output *tensor.RawTensor
}

func NewDivOp(a, b, output *tensor.RawTensor) *DivOp {
	return &DivOp{a: a, b: b, output: output}
}

func (op *DivOp) Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	// dz/da = 1/b, dz/db = -a/b^2 = -output/b
	gradA := reduceBroadcast(backend.Div(gradOutput, op.b), op.a.Shape(), backend)
	gradB := reduceBroadcast(
		negate(backend.Div(backend.Mul(gradOutput, op.output), op.b), backend),
		op.b.Shape(), backend)
	return []*tensor.RawTensor{gradA, gradB}
}

func (op *DivOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }

func (op *DivOp) Output() *tensor.RawTensor { return op.output }
