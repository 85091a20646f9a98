package ops

import (
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// ChunkOp records ys = chunk(x, n, dim). It is the one multi-output
// operation on the tape: the backward pass concatenates the per-chunk
// gradients back along dim.
type ChunkOp struct {
	input   *tensor.RawTensor
	dim     int
	outputs []*tensor.RawTensor
}

func NewChunkOp(input *tensor.RawTensor, dim int, outputs []*tensor.RawTensor) *ChunkOp {
	return &ChunkOp{input: input, dim: dim, outputs: outputs}
}

func (op *ChunkOp) Backward(_ *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	panic("chunk: use BackwardMulti, chunk has multiple outputs")
}

func (op *ChunkOp) BackwardMulti(gradOutputs []*tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Cat(gradOutputs, op.dim)}
}

func (op *ChunkOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the first chunk; the tape uses Outputs for seeding.
func (op *ChunkOp) Output() *tensor.RawTensor { return op.outputs[0] }

func (op *ChunkOp) Outputs() []*tensor.RawTensor { return op.outputs }
