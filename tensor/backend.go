// Copyright 2025 The Seqlab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/seqlab-ml/seqlab/internal/tensor"

// Backend is the compute interface tensor operations dispatch to.
//
// The operation set is sized to a recurrent sequence tagger: elementwise
// arithmetic with broadcasting, the 2D matrix product, the shape and slicing
// ops an LSTM unrolled over time needs, gate activations, reductions, and
// embedding lookup.
//
// Implementations:
//   - backend/cpu: pure Go kernels with worker fan-out on large rows
//
// Decorator backends:
//   - autodiff: gradient recording over any backend
//
// Example:
//
//	import (
//	    "github.com/seqlab-ml/seqlab/backend/cpu"
//	    "github.com/seqlab-ml/seqlab/tensor"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y) // dispatches to backend.Add
type Backend interface {
	// Elementwise binary operations with broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul computes the 2D matrix product [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *RawTensor) *RawTensor

	// Elementwise operations against a scalar.
	MulScalar(x *RawTensor, scalar any) *RawTensor
	AddScalar(x *RawTensor, scalar any) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Activations.
	Tanh(x *RawTensor) *RawTensor
	Sigmoid(x *RawTensor) *RawTensor
	Softmax(x *RawTensor, dim int) *RawTensor

	// Reductions.
	Sum(x *RawTensor) *RawTensor
	Argmax(x *RawTensor, dim int) *RawTensor

	// Concatenation and splitting along a dimension.
	Cat(tensors []*RawTensor, dim int) *RawTensor
	Chunk(x *RawTensor, n, dim int) []*RawTensor

	// Embedding gathers rows of weight by int32 indices.
	Embedding(weight, indices *RawTensor) *RawTensor

	// Identification.
	Name() string
	Device() Device
}

// Compile-time check that the internal interface and this one agree.
var _ Backend = tensor.Backend(nil)
