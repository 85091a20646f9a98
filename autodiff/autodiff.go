// Copyright 2025 The Seqlab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// This package implements backpropagation using a gradient tape. It wraps
// any compute backend: operations run through the wrapper are recorded
// during the forward pass and replayed in reverse to produce gradients.
//
// Example:
//
//	import (
//	    "github.com/seqlab-ml/seqlab/autodiff"
//	    "github.com/seqlab-ml/seqlab/backend/cpu"
//	    "github.com/seqlab-ml/seqlab/tensor"
//	)
//
//	func main() {
//	    // Wrap the CPU backend with gradient recording.
//	    backend := autodiff.New(cpu.New())
//
//	    w := tensor.Randn[float32](tensor.Shape{3, 3}, backend)
//	    backend.Tape().StartRecording()
//	    loss := w.MatMul(w).Sum()
//
//	    // Gradients for every tensor reachable from loss.
//	    grads := autodiff.Backward(loss)
//	    _ = grads[w.Raw()]
//	}
package autodiff

import (
	"github.com/seqlab-ml/seqlab/internal/autodiff"
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// Backend decorates a compute backend with gradient recording.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New wraps the given backend with a fresh, non-recording gradient tape.
//
// Example:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for reverse-mode differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates an empty tape. Nothing is recorded until
// StartRecording is called.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// BackwardCapable is a backend that carries a gradient tape. The autodiff
// Backend satisfies it; plain compute backends do not.
type BackwardCapable = autodiff.BackwardCapable

// Backward computes gradients via backpropagation, walking the tape of t's
// backend in reverse from a ones seed shaped like t.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B]) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(t)
}
