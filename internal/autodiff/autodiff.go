// Package autodiff implements reverse-mode automatic differentiation as a
// backend decorator.
//
// AutodiffBackend wraps any tensor.Backend and records every differentiable
// operation on a GradientTape during the forward pass. Backward walks the
// tape in reverse, applying each operation's chain rule and accumulating
// gradients for tensors used more than once.
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	// ... forward pass ...
//	grads := autodiff.Backward(loss)
//	backend.Tape().Clear()
//
// Two training-only operations live on the decorator rather than on
// tensor.Backend: CrossEntropy and Dropout. Model code reaches them through a
// runtime interface assertion, so inference against a plain backend never
// needs them.
package autodiff

import (
	"fmt"
	"math/rand"

	"github.com/seqlab-ml/seqlab/internal/autodiff/ops"
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// AutodiffBackend decorates a Backend with gradient tracking. It satisfies
// tensor.Backend itself, so tensors built on it tape their operations
// transparently.
type AutodiffBackend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New wraps a backend with a fresh, non-recording tape.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for recording control.
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Name returns the decorated backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "autodiff(" + b.inner.Name() + ")"
}

// Device returns the wrapped backend's device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// Add computes x + y and tapes the operation.
func (b *AutodiffBackend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Add(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewAddOp(x, y, out))
	}
	return out
}

// Sub computes x - y and tapes the operation.
func (b *AutodiffBackend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Sub(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewSubOp(x, y, out))
	}
	return out
}

// Mul computes x * y elementwise and tapes the operation.
func (b *AutodiffBackend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Mul(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMulOp(x, y, out))
	}
	return out
}

// Div computes x / y elementwise and tapes the operation.
func (b *AutodiffBackend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Div(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewDivOp(x, y, out))
	}
	return out
}

// MatMul computes the 2D matrix product and tapes the operation.
func (b *AutodiffBackend[B]) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.MatMul(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMatMulOp(x, y, out))
	}
	return out
}

// MulScalar computes x * scalar and tapes the operation.
func (b *AutodiffBackend[B]) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	out := b.inner.MulScalar(x, scalar)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMulScalarOp(x, scalar, out))
	}
	return out
}

// AddScalar computes x + scalar and tapes the operation.
func (b *AutodiffBackend[B]) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	out := b.inner.AddScalar(x, scalar)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewAddScalarOp(x, out))
	}
	return out
}

// Reshape returns x with a new shape and tapes the operation.
func (b *AutodiffBackend[B]) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	out := b.inner.Reshape(x, newShape)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewReshapeOp(x, out))
	}
	return out
}

// Transpose permutes x's axes and tapes the operation with the effective
// permutation, so the backward pass can invert the default reversal too.
func (b *AutodiffBackend[B]) Transpose(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	out := b.inner.Transpose(x, axes...)
	if b.tape.IsRecording() {
		effective := axes
		if len(effective) == 0 {
			n := len(x.Shape())
			effective = make([]int, n)
			for i := range effective {
				effective[i] = n - 1 - i
			}
		}
		b.tape.Record(ops.NewTransposeOp(x, effective, out))
	}
	return out
}

// Tanh applies tanh elementwise and tapes the operation.
func (b *AutodiffBackend[B]) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Tanh(x)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewTanhOp(x, out))
	}
	return out
}

// Sigmoid applies the logistic function elementwise and tapes the operation.
func (b *AutodiffBackend[B]) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Sigmoid(x)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewSigmoidOp(x, out))
	}
	return out
}

// Softmax normalizes along dim and tapes the operation.
func (b *AutodiffBackend[B]) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	out := b.inner.Softmax(x, dim)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewSoftmaxOp(x, dim, out))
	}
	return out
}

// Sum reduces x to a scalar and tapes the operation.
func (b *AutodiffBackend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Sum(x)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewSumOp(x, out))
	}
	return out
}

// Argmax reduces along dim. Integer-valued, so it is never taped.
func (b *AutodiffBackend[B]) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	return b.inner.Argmax(x, dim)
}

// Cat concatenates tensors along dim and tapes the operation.
func (b *AutodiffBackend[B]) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	out := b.inner.Cat(tensors, dim)
	if b.tape.IsRecording() {
		inputs := make([]*tensor.RawTensor, len(tensors))
		copy(inputs, tensors)
		b.tape.Record(ops.NewCatOp(inputs, dim, out))
	}
	return out
}

// Chunk splits x into n parts along dim and tapes the one multi-output
// operation on the tape.
func (b *AutodiffBackend[B]) Chunk(x *tensor.RawTensor, n, dim int) []*tensor.RawTensor {
	outs := b.inner.Chunk(x, n, dim)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewChunkOp(x, dim, outs))
	}
	return outs
}

// Embedding gathers weight rows by index and tapes the operation. Gradients
// scatter-add back into the weight; indices take none.
func (b *AutodiffBackend[B]) Embedding(weight, indices *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Embedding(weight, indices)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewEmbeddingOp(weight, indices, out))
	}
	return out
}

// CrossEntropy computes mean cross-entropy over [N, C] logits against [N]
// int32 targets, skipping rows whose target equals ignoreIndex, and tapes
// the operation. Lives on the decorator because the loss only exists while
// training.
func (b *AutodiffBackend[B]) CrossEntropy(logits, targets *tensor.RawTensor, ignoreIndex int) *tensor.RawTensor {
	out := ops.CrossEntropyForward(logits, targets, ignoreIndex)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewCrossEntropyOp(logits, targets, ignoreIndex, out))
	}
	return out
}

// Dropout applies inverted dropout with keep scaling 1/(1-p). In eval mode
// (training false) or with p == 0 it is the identity. The sampled mask is
// taped so the backward pass reuses the exact same pattern.
func (b *AutodiffBackend[B]) Dropout(x *tensor.RawTensor, p float32, training bool) *tensor.RawTensor {
	if !training || p == 0 {
		return x
	}
	if p < 0 || p >= 1 {
		panic(fmt.Sprintf("dropout: probability %v outside [0, 1)", p))
	}

	mask, err := tensor.NewRaw(x.Shape(), x.DType(), x.Device())
	if err != nil {
		panic(fmt.Sprintf("dropout: %v", err))
	}
	switch x.DType() {
	case tensor.Float32:
		scale := 1 / (1 - p)
		data := mask.AsFloat32()
		for i := range data {
			if rand.Float32() >= p {
				data[i] = scale
			}
		}
	case tensor.Float64:
		scale := 1 / (1 - float64(p))
		data := mask.AsFloat64()
		for i := range data {
			if rand.Float64() >= float64(p) {
				data[i] = scale
			}
		}
	default:
		panic(fmt.Sprintf("dropout: unsupported dtype %s", x.DType()))
	}

	out := b.inner.Mul(x, mask)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewDropoutOp(x, mask, out))
	}
	return out
}
