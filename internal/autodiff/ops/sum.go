package ops

import (
	"fmt"

	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// SumOp records y = sum(x) over all elements. The gradient broadcasts the
// scalar upstream gradient to the input's shape.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{input: input, output: output}
}

func (op *SumOp) Backward(gradOutput *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	grad, err := tensor.NewRaw(op.input.Shape(), op.input.DType(), op.input.Device())
	if err != nil {
		panic(fmt.Sprintf("sum backward: %v", err))
	}
	switch grad.DType() {
	case tensor.Float32:
		g := gradOutput.AsFloat32()[0]
		dst := grad.AsFloat32()
		for i := range dst {
			dst[i] = g
		}
	case tensor.Float64:
		g := gradOutput.AsFloat64()[0]
		dst := grad.AsFloat64()
		for i := range dst {
			dst[i] = g
		}
	default:
		panic(fmt.Sprintf("sum backward: unsupported dtype %s", grad.DType()))
	}
	return []*tensor.RawTensor{grad}
}

func (op *SumOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

func (op *SumOp) Output() *tensor.RawTensor { return op.output }
