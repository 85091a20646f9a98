package nn

import (
	"fmt"
	"math/rand"

	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// Dropout zeroes each element with probability p during training and scales
// the survivors by 1/(1-p), so activations keep their expected magnitude and
// evaluation needs no rescaling (inverted dropout). In eval mode it is the
// identity.
//
// The tagger puts one Dropout between the LSTM encoder and the projection.
type Dropout[B tensor.Backend] struct {
	p        float32
	training bool
	backend  B
}

// NewDropout creates a Dropout layer in training mode. Panics if p is
// outside [0, 1).
func NewDropout[B tensor.Backend](p float32, backend B) *Dropout[B] {
	if p < 0 || p >= 1 {
		panic(fmt.Sprintf("dropout: probability %v outside [0, 1)", p))
	}
	return &Dropout[B]{p: p, training: true, backend: backend}
}

// SetTraining switches between training (mask applied) and eval (identity).
func (d *Dropout[B]) SetTraining(training bool) {
	d.training = training
}

// Training reports whether the mask is currently applied.
func (d *Dropout[B]) Training() bool {
	return d.training
}

// P returns the drop probability.
func (d *Dropout[B]) P() float32 {
	return d.p
}

// Forward applies the dropout mask in training mode and passes the input
// through untouched otherwise.
//
// When the backend is autodiff-aware the mask multiply is recorded on its
// tape so the backward pass reuses the identical mask.
func (d *Dropout[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !d.training || d.p == 0 {
		return input
	}

	// Autodiff-aware backends tape the mask themselves.
	type DropoutBackend interface {
		Dropout(x *tensor.RawTensor, p float32, training bool) *tensor.RawTensor
	}
	if adBackend, ok := any(d.backend).(DropoutBackend); ok {
		return tensor.New[float32, B](adBackend.Dropout(input.Raw(), d.p, d.training), d.backend)
	}

	// Plain backend: sample the mask here and multiply untaped.
	mask, err := tensor.NewRaw(input.Shape(), tensor.Float32, d.backend.Device())
	if err != nil {
		panic(fmt.Sprintf("dropout: %v", err))
	}
	scale := 1 / (1 - d.p)
	data := mask.AsFloat32()
	for i := range data {
		if rand.Float32() >= d.p {
			data[i] = scale
		}
	}
	return tensor.New[float32, B](d.backend.Mul(input.Raw(), mask), d.backend)
}

// Parameters returns an empty slice; dropout has nothing to train.
func (d *Dropout[B]) Parameters() []*Parameter[B] {
	return nil
}
