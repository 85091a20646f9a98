// Copyright 2025 The Seqlab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/seqlab-ml/seqlab/internal/nn"
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Layers

// Embedding represents a lookup table for token embeddings.
type Embedding[B tensor.Backend] = nn.Embedding[B]

// NewEmbedding creates a new embedding layer.
//
// Example:
//
//	backend := cpu.New()
//	embed := nn.NewEmbedding(10000, 256, backend)  // vocab=10000, dim=256
//	tokenIDs := tensor.FromSlice([]int32{1, 5, 10}, tensor.Shape{1, 3}, backend)
//	embeddings := embed.Forward(tokenIDs)  // [1, 3, 256]
func NewEmbedding[B tensor.Backend](numEmbeddings, embeddingDim int, backend B) *Embedding[B] {
	return nn.NewEmbedding(numEmbeddings, embeddingDim, backend)
}

// LSTM represents a multi-layer, optionally bidirectional LSTM encoder.
type LSTM[B tensor.Backend] = nn.LSTM[B]

// NewLSTM creates a new LSTM encoder.
//
// Example:
//
//	backend := cpu.New()
//	encoder := nn.NewLSTM(256, 256, 2, true, backend)  // 2 layers, bidirectional
//	hidden := encoder.Forward(embedded)  // [B, L, 256] -> [B, L, 512]
func NewLSTM[B tensor.Backend](inputSize, hiddenSize, numLayers int, bidirectional bool, backend B) *LSTM[B] {
	return nn.NewLSTM(inputSize, hiddenSize, numLayers, bidirectional, backend)
}

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(512, 9, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// Dropout represents a dropout layer.
type Dropout[B tensor.Backend] = nn.Dropout[B]

// NewDropout creates a new dropout layer with drop probability p.
//
// Example:
//
//	backend := cpu.New()
//	drop := nn.NewDropout(0.5, backend)
//	drop.SetTraining(false)  // identity in evaluation mode
func NewDropout[B tensor.Backend](p float32, backend B) *Dropout[B] {
	return nn.NewDropout(p, backend)
}

// Loss Functions

// CrossEntropyLoss represents the cross-entropy loss for classification.
type CrossEntropyLoss[B tensor.Backend] = nn.CrossEntropyLoss[B]

// NewCrossEntropyLoss creates a new cross-entropy loss function. Target
// positions equal to ignoreIndex contribute nothing to the loss.
//
// Example:
//
//	backend := cpu.New()
//	criterion := nn.NewCrossEntropyLoss(-100, backend)
//	loss := criterion.Forward(logits, labels)
func NewCrossEntropyLoss[B tensor.Backend](ignoreIndex int, backend B) *CrossEntropyLoss[B] {
	return nn.NewCrossEntropyLoss(ignoreIndex, backend)
}

// Initialization functions

// Xavier initializes a tensor using Xavier/Glorot initialization.
//
// Example:
//
//	backend := cpu.New()
//	weights := nn.Xavier(512, 9, tensor.Shape{9, 512}, backend)
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// Zeros initializes a tensor with zeros (for biases).
//
// Example:
//
//	backend := cpu.New()
//	bias := nn.Zeros(tensor.Shape{9}, backend)
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}

// NormalInit initializes a tensor with random values from N(0, 1).
//
// Example:
//
//	backend := cpu.New()
//	embedTable := nn.NormalInit(tensor.Shape{10000, 256}, backend)
func NormalInit[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.NormalInit(shape, backend)
}
