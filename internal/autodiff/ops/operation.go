// Package ops defines the recorded operations the gradient tape replays
// backwards. Each operation saves what its backward pass needs (inputs,
// sometimes the output, sometimes a mask) and computes input gradients from
// the output gradient via the backend.
package ops

import "github.com/seqlab-ml/seqlab/internal/tensor"

// Operation is a single recorded computation step.
type Operation interface {
	// Backward computes input gradients from the output gradient.
	// The returned slice is parallel to Inputs().
	Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the tensors gradients flow to.
	Inputs() []*tensor.RawTensor

	// Output returns the result tensor of the forward computation.
	Output() *tensor.RawTensor
}

// MultiOutputOperation is implemented by operations producing several result
// tensors (Chunk). The tape gathers all output gradients before calling
// BackwardMulti; Backward must not be used on these.
type MultiOutputOperation interface {
	Operation

	// Outputs returns all result tensors.
	Outputs() []*tensor.RawTensor

	// BackwardMulti computes input gradients from all output gradients.
	BackwardMulti(gradOutputs []*tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor
}
