package ops

import (
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// MatMulOp records z = a @ b for 2D operands.
type MatMulOp struct {
	a, b   *tensor.RawTensor
	output *tensor.RawTensor
}

func NewMatMulOp(a, b, output *tensor.RawTensor) *MatMulOp {
	return &MatMulOp{a: a, b: b, output: output}
}

func (op *MatMulOp) Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	// gradA = grad @ b^T, gradB = a^T @ grad
	gradA := backend.MatMul(gradOutput, backend.Transpose(op.b))
	gradB := backend.MatMul(backend.Transpose(op.a), gradOutput)
	return []*tensor.RawTensor{gradA, gradB}
}

func (op *MatMulOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }

func (op *MatMulOp) Output() *tensor.RawTensor { return op.output }
