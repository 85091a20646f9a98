// Copyright 2025 The Seqlab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// RawTensor is the untyped tensor representation backends operate on: a flat
// buffer plus shape, strides and runtime type information.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Typed buffer views via AsFloat32(), AsInt32(), ...
//   - Deep copies via Clone()
//
// Most callers should use the typed Tensor[T, B] instead.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32()
type RawTensor = tensor.RawTensor
