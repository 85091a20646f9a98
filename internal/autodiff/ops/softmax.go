package ops

import (
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// SoftmaxOp records y = softmax(x, dim). The backward pass uses the saved
// output: dx = y * (g - sum(g*y, dim)).
type SoftmaxOp struct {
	input  *tensor.RawTensor
	dim    int
	output *tensor.RawTensor
}

func NewSoftmaxOp(input *tensor.RawTensor, dim int, output *tensor.RawTensor) *SoftmaxOp {
	return &SoftmaxOp{input: input, dim: dim, output: output}
}

func (op *SoftmaxOp) Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	dim := op.dim
	if dim < 0 {
		dim += len(op.output.Shape())
	}
	gy := backend.Mul(gradOutput, op.output)
	// sumAlongDim keeps the reduced dimension with size 1, so the
	// subtraction broadcasts back over it.
	total := sumAlongDim(gy, dim)
	return []*tensor.RawTensor{backend.Mul(op.output, backend.Sub(gradOutput, total))}
}

func (op *SoftmaxOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

func (op *SoftmaxOp) Output() *tensor.RawTensor { return op.output }
