// Copyright 2025 The Seqlab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers for sequence labelling.
//
// # Overview
//
// This package contains:
//   - Layers: Embedding, LSTM, Linear, Dropout
//   - Loss functions: CrossEntropyLoss
//   - Utilities: Module interface, Parameter
//   - Initialization: Xavier, Zeros, NormalInit
//
// # Basic Usage
//
//	import (
//	    "github.com/seqlab-ml/seqlab/nn"
//	    "github.com/seqlab-ml/seqlab/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Embed token ids, encode, project to tag scores.
//	    embed := nn.NewEmbedding(10000, 256, backend)
//	    encoder := nn.NewLSTM(256, 256, 1, true, backend)
//	    project := nn.NewLinear(encoder.OutputSize(), 9, backend)
//
//	    hidden := encoder.Forward(embed.Forward(tokenIDs)) // [B, L, 512]
//	    flat := hidden.Reshape(tensor.Shape{batch * seqLen, encoder.OutputSize()})
//	    logits := project.Forward(flat) // [B*L, 9]
//	}
//
// # Layers
//
// Embedding: lookup table mapping int32 token ids to dense vectors
//
//	embed := nn.NewEmbedding(numEmbeddings, embeddingDim, backend)
//
// LSTM: multi-layer, optionally bidirectional recurrent encoder
//
//	encoder := nn.NewLSTM(inputSize, hiddenSize, numLayers, bidirectional, backend)
//
// Linear: fully connected layer with Xavier initialization; flatten
// timesteps into the batch dimension to score every position with one
// weight matrix
//
//	layer := nn.NewLinear(inFeatures, outFeatures, backend)
//
// Dropout: zeroes activations with probability p during training, identity
// in evaluation mode
//
//	drop := nn.NewDropout(0.5, backend)
//	drop.SetTraining(false)
//
// # Loss Functions
//
// CrossEntropyLoss: for classification, numerically stable, with an ignore
// index for padded targets
//
//	criterion := nn.NewCrossEntropyLoss(-100, backend)
//	loss := criterion.Forward(logits, targets)
//
// # Parameter Management
//
// Access model parameters for optimization:
//
//	params := encoder.Parameters()
//	for _, param := range params {
//	    fmt.Println(param.Name(), param.Tensor().Shape())
//	}
package nn
