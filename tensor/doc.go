// Copyright 2025 The Seqlab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor is the public tensor API of seqlab.
//
// # Overview
//
// Tensors are the data structure every other package computes on. This
// package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting for elementwise arithmetic
//   - The Backend interface compute implementations satisfy
//   - Shape, DataType and Device definitions
//
// # Basic Usage
//
//	import (
//	    "github.com/seqlab-ml/seqlab/backend/cpu"
//	    "github.com/seqlab-ml/seqlab/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//
//	    z := x.Add(y)
//	    logits := x.MatMul(y.Transpose())
//	    _ = z
//	    _ = logits
//	}
//
// # Supported Data Types
//
// The DType constraint admits:
//   - float32, float64 (parameters, activations, gradients)
//   - int32 (token indices and label codes)
//   - bool (masks)
//
// # Backends
//
// Operations dispatch through the Backend interface. The in-tree
// implementation is backend/cpu; wrapping any backend in autodiff.New gives
// the same operations gradient recording.
package tensor
