// Package nn implements the neural network modules the sequence tagger is
// assembled from: token embedding, a multi-layer optionally bidirectional
// LSTM encoder, dropout, a shared per-timestep linear projection, and a
// cross-entropy loss that skips padded positions.
//
// Modules hold their trainable tensors as Parameters and stay backend
// generic: built on a plain backend they just compute, built on the autodiff
// decorator every forward lands on its tape.
package nn

import (
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// Module is the common shape of network components: a float32 forward pass
// plus access to trainable parameters. Components whose input is not a
// float32 tensor (Embedding takes int32 token ids) expose the same two
// methods without satisfying the interface.
type Module[B tensor.Backend] interface {
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters, nested modules included.
	// Parameter-free modules return an empty slice.
	Parameters() []*Parameter[B]
}
