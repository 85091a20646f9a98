package ops

import (
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// MulScalarOp records z = a * c for a constant c.
type MulScalarOp struct {
	input  *tensor.RawTensor
	scalar any
	output *tensor.RawTensor
}

func NewMulScalarOp(input *tensor.RawTensor, scalar any, output *tensor.RawTensor) *MulScalarOp {
	return &MulScalarOp{input: input, scalar: scalar, output: output}
}

func (op *MulScalarOp) Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(gradOutput, op.scalar)}
}

func (op *MulScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

func (op *MulScalarOp) Output() *tensor.RawTensor { return op.output }

// AddScalarOp records z = a + c for a constant c.
type AddScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

func NewAddScalarOp(input *tensor.RawTensor, output *tensor.RawTensor) *AddScalarOp {
	return &AddScalarOp{input: input, output: output}
}

func (op *AddScalarOp) Backward(gradOutput *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{gradOutput.Clone()}
}

func (op *AddScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

func (op *AddScalarOp) Output() *tensor.RawTensor { return op.output }
