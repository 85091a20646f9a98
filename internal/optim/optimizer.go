// Package optim implements the gradient-descent optimizers used to train
// the tagger: plain SGD with optional momentum, and Adam.
//
// Optimizers consume the gradient map produced by autodiff.Backward and
// update parameter tensors in place:
//
//	backend.Tape().StartRecording()
//	loss := criterion.Forward(model.Forward(tokens), tags)
//	grads := autodiff.Backward(loss)
//	optimizer.Step(grads)
//	optimizer.ZeroGrad()
//	backend.Tape().Clear()
package optim

import (
	"github.com/seqlab-ml/seqlab/internal/nn"
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// Optimizer updates parameters from a gradient map.
type Optimizer interface {
	// Step applies one update to every parameter that has a gradient in
	// grads. Parameters absent from the map are left untouched.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// ZeroGrad clears all parameter gradients before the next step.
	ZeroGrad()

	// LR returns the current learning rate.
	LR() float32
}

// getGradient looks up a parameter's gradient. Nil means the parameter did
// not participate in the forward pass.
func getGradient[B tensor.Backend](param *nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor().Raw()]
}
