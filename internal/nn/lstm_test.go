package nn_test

import (
	"testing"

	"github.com/seqlab-ml/seqlab/internal/autodiff"
	"github.com/seqlab-ml/seqlab/internal/backend/cpu"
	"github.com/seqlab-ml/seqlab/internal/nn"
	"github.com/seqlab-ml/seqlab/internal/optim"
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

func TestLSTM_ForwardShape(t *testing.T) {
	backend := autodiff.New(cpu.New())

	lstm := nn.NewLSTM(8, 16, 1, false, backend)
	x := tensor.FromSlice(make([]float32, 2*5*8), tensor.Shape{2, 5, 8}, backend)

	out := lstm.Forward(x)
	if !out.Shape().Equal(tensor.Shape{2, 5, 16}) {
		t.Errorf("Forward shape = %v, want [2 5 16]", out.Shape())
	}
}

func TestLSTM_BidirectionalDoublesOutput(t *testing.T) {
	backend := autodiff.New(cpu.New())

	lstm := nn.NewLSTM(8, 128, 1, true, backend)
	if lstm.OutputSize() != 256 {
		t.Fatalf("OutputSize = %d, want 256", lstm.OutputSize())
	}

	x := tensor.FromSlice(make([]float32, 1*3*8), tensor.Shape{1, 3, 8}, backend)
	out := lstm.Forward(x)
	if !out.Shape().Equal(tensor.Shape{1, 3, 256}) {
		t.Errorf("Forward shape = %v, want [1 3 256]", out.Shape())
	}
}

func TestLSTM_MultiLayerShape(t *testing.T) {
	backend := autodiff.New(cpu.New())

	// Layer 1 consumes layer 0's 2H-wide output.
	lstm := nn.NewLSTM(4, 6, 2, true, backend)
	x := tensor.FromSlice(make([]float32, 1*2*4), tensor.Shape{1, 2, 4}, backend)

	out := lstm.Forward(x)
	if !out.Shape().Equal(tensor.Shape{1, 2, 12}) {
		t.Errorf("Forward shape = %v, want [1 2 12]", out.Shape())
	}
}

func TestLSTM_OutputsBounded(t *testing.T) {
	backend := autodiff.New(cpu.New())

	lstm := nn.NewLSTM(3, 4, 1, false, backend)
	x := tensor.FromSlice([]float32{
		100, -100, 50,
		-7, 3, 0,
	}, tensor.Shape{1, 2, 3}, backend)

	// h = sigmoid(o) * tanh(c) is bounded to (-1, 1) regardless of input
	// magnitude.
	out := lstm.Forward(x)
	for i, v := range out.Data() {
		if v <= -1 || v >= 1 {
			t.Errorf("out[%d] = %f outside (-1, 1)", i, v)
		}
	}
}

func TestLSTM_ParameterCountAndNames(t *testing.T) {
	backend := autodiff.New(cpu.New())

	lstm := nn.NewLSTM(4, 6, 2, true, backend)
	params := lstm.Parameters()

	// 2 layers * 2 directions * (wih, whh, bias).
	if len(params) != 12 {
		t.Fatalf("Parameters() returned %d, want 12", len(params))
	}

	names := make(map[string]bool)
	for _, p := range params {
		names[p.Name()] = true
	}
	for _, want := range []string{
		"lstm.0.wih", "lstm.0.rev.whh", "lstm.1.bias", "lstm.1.rev.wih",
	} {
		if !names[want] {
			t.Errorf("missing parameter %q", want)
		}
	}
}

func TestLSTM_WeightShapes(t *testing.T) {
	backend := autodiff.New(cpu.New())

	lstm := nn.NewLSTM(3, 5, 1, false, backend)
	params := lstm.Parameters()

	// wih [4H, in], whh [4H, H], bias [4H].
	if !params[0].Tensor().Shape().Equal(tensor.Shape{20, 3}) {
		t.Errorf("wih shape = %v, want [20 3]", params[0].Tensor().Shape())
	}
	if !params[1].Tensor().Shape().Equal(tensor.Shape{20, 5}) {
		t.Errorf("whh shape = %v, want [20 5]", params[1].Tensor().Shape())
	}
	if !params[2].Tensor().Shape().Equal(tensor.Shape{20}) {
		t.Errorf("bias shape = %v, want [20]", params[2].Tensor().Shape())
	}
}

func TestLSTM_InvalidConstructionPanics(t *testing.T) {
	backend := autodiff.New(cpu.New())

	for name, build := range map[string]func(){
		"zero input":  func() { nn.NewLSTM(0, 4, 1, false, backend) },
		"zero hidden": func() { nn.NewLSTM(4, 0, 1, false, backend) },
		"zero layers": func() { nn.NewLSTM(4, 4, 0, false, backend) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("%s should panic", name)
				}
			}()
			build()
		})
	}
}

func TestLSTM_RejectsWrongFeatureWidth(t *testing.T) {
	backend := autodiff.New(cpu.New())

	lstm := nn.NewLSTM(4, 4, 1, false, backend)
	x := tensor.FromSlice(make([]float32, 1*2*3), tensor.Shape{1, 2, 3}, backend)

	defer func() {
		if r := recover(); r == nil {
			t.Error("wrong feature width should panic")
		}
	}()
	lstm.Forward(x)
}

// TestLSTM_LearnsThroughTime drives one training step end to end and checks
// that gradients reach every weight, including the recurrent ones, through
// the unrolled timesteps.
func TestLSTM_LearnsThroughTime(t *testing.T) {
	backend := autodiff.New(cpu.New())

	lstm := nn.NewLSTM(2, 3, 1, true, backend)
	params := lstm.Parameters()

	before := make([][]float32, len(params))
	for i, p := range params {
		before[i] = append([]float32(nil), p.Tensor().Data()...)
	}

	backend.Tape().StartRecording()
	x := tensor.FromSlice([]float32{1, -1, 0.5, 2, -0.5, 1}, tensor.Shape{1, 3, 2}, backend)
	out := lstm.Forward(x)
	loss := out.Sum()

	grads := autodiff.Backward(loss)
	backend.Tape().StopRecording()
	backend.Tape().Clear()

	for _, p := range params {
		if _, ok := grads[p.Tensor().Raw()]; !ok {
			t.Errorf("no gradient reached %s", p.Name())
		}
	}

	optimizer := optim.NewSGD(params, optim.SGDConfig{LR: 0.5}, backend)
	optimizer.Step(grads)

	moved := false
	for i, p := range params {
		for j, v := range p.Tensor().Data() {
			if v != before[i][j] {
				moved = true
				break
			}
		}
	}
	if !moved {
		t.Error("optimizer step left every weight unchanged")
	}
}
