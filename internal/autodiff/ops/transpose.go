package ops

import (
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// TransposeOp records z = transpose(a, axes). The gradient is permuted back
// through the inverse permutation.
type TransposeOp struct {
	input  *tensor.RawTensor
	axes   []int
	output *tensor.RawTensor
}

func NewTransposeOp(input *tensor.RawTensor, axes []int, output *tensor.RawTensor) *TransposeOp {
	return &TransposeOp{input: input, axes: axes, output: output}
}

func (op *TransposeOp) Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inverse := make([]int, len(op.axes))
	for i, ax := range op.axes {
		inverse[ax] = i
	}
	return []*tensor.RawTensor{backend.Transpose(gradOutput, inverse...)}
}

func (op *TransposeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

func (op *TransposeOp) Output() *tensor.RawTensor { return op.output }
