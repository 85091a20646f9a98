// Copyright 2025 The Seqlab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go kernels (no CGO)
//   - Float32, Float64, Int32 and Bool support
//   - NumPy-compatible broadcasting
//   - Worker fan-out for large row-parallel loops
//
// # Basic Usage
//
//	import (
//	    "github.com/seqlab-ml/seqlab/backend/cpu"
//	    "github.com/seqlab-ml/seqlab/nn"
//	    "github.com/seqlab-ml/seqlab/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//	    _ = z
//
//	    layer := nn.NewLinear(128, 10, backend)
//	    _ = layer
//	}
//
// # Thread Safety
//
// Operations do not share mutable state; distinct tensors may be computed
// on concurrently. The matrix-product kernel fans rows out across workers
// internally, invisible to callers.
package cpu
