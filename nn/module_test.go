// Copyright 2025 The Seqlab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/seqlab-ml/seqlab/internal/backend/cpu"
	"github.com/seqlab-ml/seqlab/internal/tensor"
	"github.com/seqlab-ml/seqlab/nn"
)

// TestModuleInterface verifies that concrete types implement Module interface.
func TestModuleInterface(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		name       string
		module     nn.Module[*cpu.CPUBackend]
		input      tensor.Shape
		wantParams int
	}{
		{
			name:       "Linear",
			module:     nn.NewLinear(10, 5, backend),
			input:      tensor.Shape{2, 10},
			wantParams: 2,
		},
		{
			name:       "LSTM",
			module:     nn.NewLSTM(10, 5, 1, false, backend),
			input:      tensor.Shape{2, 3, 10},
			wantParams: 3,
		},
		{
			name:       "Dropout",
			module:     nn.NewDropout(0.5, backend),
			input:      tensor.Shape{2, 10},
			wantParams: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Verify Forward works
			input := tensor.Randn[float32](tt.input, backend)
			_ = tt.module.Forward(input)

			// Verify Parameters works
			if got := len(tt.module.Parameters()); got != tt.wantParams {
				t.Errorf("Parameters() returned %d params, want %d", got, tt.wantParams)
			}
		})
	}
}

// TestParameterInterface verifies the Parameter accessor and gradient methods.
func TestParameterInterface(t *testing.T) {
	backend := cpu.New()
	tensorData := tensor.Randn[float32](tensor.Shape{3, 3}, backend)

	param := nn.NewParameter("test.weight", tensorData)

	if name := param.Name(); name != "test.weight" {
		t.Errorf("Name() = %q, want %q", name, "test.weight")
	}

	if got := param.Tensor(); got != tensorData {
		t.Error("Tensor() returned different tensor than provided")
	}

	if grad := param.Grad(); grad != nil {
		t.Error("Grad() should be nil before backward pass")
	}

	// Test SetGrad
	gradTensor := tensor.Zeros[float32](tensor.Shape{3, 3}, backend)
	param.SetGrad(gradTensor)
	if got := param.Grad(); got != gradTensor {
		t.Error("Grad() returned different tensor after SetGrad")
	}

	// Test ZeroGrad
	param.ZeroGrad()
	if grad := param.Grad(); grad != nil {
		t.Error("Grad() should be nil after ZeroGrad()")
	}
}

// TestModuleComposition verifies the embed-encode-project chain composes.
func TestModuleComposition(t *testing.T) {
	backend := cpu.New()

	const (
		vocab  = 50
		dim    = 8
		labels = 4
		batch  = 2
		seqLen = 3
	)

	embed := nn.NewEmbedding(vocab, dim, backend)
	encoder := nn.NewLSTM(dim, dim, 1, true, backend)
	project := nn.NewLinear(encoder.OutputSize(), labels, backend)

	ids := tensor.FromSlice([]int32{1, 2, 3, 4, 5, 6}, tensor.Shape{batch, seqLen}, backend)

	hidden := encoder.Forward(embed.Forward(ids))
	flat := hidden.Reshape(tensor.Shape{batch * seqLen, encoder.OutputSize()})
	logits := project.Forward(flat)

	expectedShape := tensor.Shape{batch * seqLen, labels}
	if !logits.Shape().Equal(expectedShape) {
		t.Errorf("Output shape = %v, want %v", logits.Shape(), expectedShape)
	}

	// embedding table + 2 directions x (wih, whh, bias) + weight + bias
	total := len(embed.Parameters()) + len(encoder.Parameters()) + len(project.Parameters())
	if total != 9 {
		t.Errorf("parameter count = %d, want 9", total)
	}
}

// TestNewParameter verifies parameter creation.
func TestNewParameter(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		name        string
		paramName   string
		tensorShape tensor.Shape
	}{
		{
			name:        "weight parameter",
			paramName:   "projection.weight",
			tensorShape: tensor.Shape{4, 16},
		},
		{
			name:        "bias parameter",
			paramName:   "projection.bias",
			tensorShape: tensor.Shape{4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tensorData := tensor.Randn[float32](tt.tensorShape, backend)
			param := nn.NewParameter(tt.paramName, tensorData)

			if got := param.Name(); got != tt.paramName {
				t.Errorf("Name() = %q, want %q", got, tt.paramName)
			}

			if got := param.Tensor(); got != tensorData {
				t.Error("Tensor() returned different tensor")
			}
		})
	}
}
