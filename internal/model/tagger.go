// Package model assembles the sequence tagging network: embedding, LSTM
// encoder, dropout, and a shared per-timestep projection producing raw
// per-label logits.
package model

import (
	"fmt"

	"github.com/seqlab-ml/seqlab/internal/nn"
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// Config sizes the tagger. The embedding dimension equals HiddenSize, so
// one knob controls the model's width end to end.
type Config struct {
	VocabSize     int
	NumLabels     int
	HiddenSize    int
	NumLayers     int
	Bidirectional bool
	Dropout       float32
}

// Validate reports the first structurally impossible setting.
func (c Config) Validate() error {
	if c.VocabSize <= 0 {
		return fmt.Errorf("vocab size must be positive, got %d", c.VocabSize)
	}
	if c.NumLabels <= 0 {
		return fmt.Errorf("number of labels must be positive, got %d", c.NumLabels)
	}
	if c.HiddenSize <= 0 {
		return fmt.Errorf("hidden size must be positive, got %d", c.HiddenSize)
	}
	if c.NumLayers < 1 {
		return fmt.Errorf("need at least one encoder layer, got %d", c.NumLayers)
	}
	if c.Dropout < 0 || c.Dropout >= 1 {
		return fmt.Errorf("dropout must be in [0, 1), got %v", c.Dropout)
	}
	return nil
}

// Tagger scores every position of a batch of token sequences against every
// label:
//
//	tokens [batch, seq] int32
//	  -> embedding  [batch, seq, H]
//	  -> LSTM       [batch, seq, H or 2H]
//	  -> dropout
//	  -> projection [batch, seq, numLabels]
//
// The projection weight is shared across timesteps: sequences are flattened
// to [batch*seq, features] so a single linear scores all positions.
// Outputs are raw logits; the loss applies its own softmax and callers who
// want predictions take an argmax.
type Tagger[B tensor.Backend] struct {
	embedding  *nn.Embedding[B]
	encoder    *nn.LSTM[B]
	dropout    *nn.Dropout[B]
	projection *nn.Linear[B]
	config     Config
}

// NewTagger builds a tagger from the config. Panics on an invalid config;
// validate first when the values come from user input.
func NewTagger[B tensor.Backend](config Config, backend B) *Tagger[B] {
	if err := config.Validate(); err != nil {
		panic(fmt.Sprintf("tagger: %v", err))
	}

	encoder := nn.NewLSTM(config.HiddenSize, config.HiddenSize, config.NumLayers, config.Bidirectional, backend)
	return &Tagger[B]{
		embedding:  nn.NewEmbedding(config.VocabSize, config.HiddenSize, backend),
		encoder:    encoder,
		dropout:    nn.NewDropout(config.Dropout, backend),
		projection: nn.NewLinear(encoder.OutputSize(), config.NumLabels, backend),
		config:     config,
	}
}

// Forward maps token indices [batch, seq] to logits [batch, seq, numLabels].
func (t *Tagger[B]) Forward(tokens *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	shape := tokens.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("tagger: expected 2D token input [batch, seq], got %v", shape))
	}
	batch, seq := shape[0], shape[1]

	embedded := t.embedding.Forward(tokens)
	encoded := t.encoder.Forward(embedded)
	dropped := t.dropout.Forward(encoded)

	flat := dropped.Reshape(tensor.Shape{batch * seq, t.encoder.OutputSize()})
	scored := t.projection.Forward(flat)
	return scored.Reshape(tensor.Shape{batch, seq, t.config.NumLabels})
}

// Predict returns the argmax label code per position, [batch, seq].
func (t *Tagger[B]) Predict(tokens *tensor.Tensor[int32, B]) *tensor.Tensor[int32, B] {
	return t.Forward(tokens).Argmax(2)
}

// SetTraining toggles training-only behavior; currently that is dropout.
func (t *Tagger[B]) SetTraining(training bool) {
	t.dropout.SetTraining(training)
}

// Parameters returns all trainable parameters in forward order.
func (t *Tagger[B]) Parameters() []*nn.Parameter[B] {
	var params []*nn.Parameter[B]
	params = append(params, t.embedding.Parameters()...)
	params = append(params, t.encoder.Parameters()...)
	params = append(params, t.projection.Parameters()...)
	return params
}

// Config returns the sizing the tagger was built with.
func (t *Tagger[B]) Config() Config {
	return t.config
}

// Encoder exposes the LSTM, mainly for inspecting OutputSize in tests.
func (t *Tagger[B]) Encoder() *nn.LSTM[B] {
	return t.encoder
}
