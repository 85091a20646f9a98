package nn_test

import (
	"testing"

	"github.com/seqlab-ml/seqlab/internal/autodiff"
	"github.com/seqlab-ml/seqlab/internal/backend/cpu"
	"github.com/seqlab-ml/seqlab/internal/nn"
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// Helper to check float equality with tolerance.
func floatEqual(a, b, eps float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

func TestEmbedding_ForwardShape(t *testing.T) {
	backend := autodiff.New(cpu.New())

	emb := nn.NewEmbedding(10, 4, backend)
	indices := tensor.FromSlice([]int32{1, 5, 0, 2, 9, 1}, tensor.Shape{2, 3}, backend)

	out := emb.Forward(indices)
	if !out.Shape().Equal(tensor.Shape{2, 3, 4}) {
		t.Errorf("Forward shape = %v, want [2 3 4]", out.Shape())
	}
}

func TestEmbedding_SameIndexSameRow(t *testing.T) {
	backend := autodiff.New(cpu.New())

	emb := nn.NewEmbedding(5, 3, backend)
	indices := tensor.FromSlice([]int32{2, 2}, tensor.Shape{1, 2}, backend)

	out := emb.Forward(indices)
	for d := 0; d < 3; d++ {
		if out.At(0, 0, d) != out.At(0, 1, d) {
			t.Errorf("same index produced different vectors at dim %d", d)
		}
	}
}

func TestEmbedding_Parameters(t *testing.T) {
	backend := autodiff.New(cpu.New())

	emb := nn.NewEmbedding(7, 2, backend)
	params := emb.Parameters()

	if len(params) != 1 {
		t.Fatalf("Parameters() returned %d, want 1", len(params))
	}
	if !params[0].Tensor().Shape().Equal(tensor.Shape{7, 2}) {
		t.Errorf("weight shape = %v, want [7 2]", params[0].Tensor().Shape())
	}
}

func TestLinear_ForwardComputesXWTPlusBias(t *testing.T) {
	backend := autodiff.New(cpu.New())

	layer := nn.NewLinear(2, 3, backend)

	// Overwrite the random init with known values.
	// Weight is [out, in] = [3, 2].
	copy(layer.Weight().Tensor().Data(), []float32{
		1, 0,
		0, 1,
		1, 1,
	})
	copy(layer.Bias().Tensor().Data(), []float32{10, 20, 30})

	x := tensor.FromSlice([]float32{2, 5}, tensor.Shape{1, 2}, backend)
	out := layer.Forward(x)

	if !out.Shape().Equal(tensor.Shape{1, 3}) {
		t.Fatalf("Forward shape = %v, want [1 3]", out.Shape())
	}

	// y = x @ W^T + b = [2, 5, 7] + [10, 20, 30]
	want := []float32{12, 25, 37}
	for i, v := range want {
		if !floatEqual(out.Data()[i], v, 1e-5) {
			t.Errorf("out[%d] = %f, want %f", i, out.Data()[i], v)
		}
	}
}

func TestLinear_RejectsNon2DInput(t *testing.T) {
	backend := autodiff.New(cpu.New())
	layer := nn.NewLinear(2, 2, backend)

	x := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{1, 2, 2}, backend)

	defer func() {
		if r := recover(); r == nil {
			t.Error("3D input to Linear should panic")
		}
	}()
	layer.Forward(x)
}

func TestLinear_Parameters(t *testing.T) {
	backend := autodiff.New(cpu.New())
	layer := nn.NewLinear(4, 6, backend)

	params := layer.Parameters()
	if len(params) != 2 {
		t.Fatalf("Parameters() returned %d, want 2", len(params))
	}
	if !params[0].Tensor().Shape().Equal(tensor.Shape{6, 4}) {
		t.Errorf("weight shape = %v, want [6 4]", params[0].Tensor().Shape())
	}
	if !params[1].Tensor().Shape().Equal(tensor.Shape{6}) {
		t.Errorf("bias shape = %v, want [6]", params[1].Tensor().Shape())
	}
}

func TestXavier_BoundScalesWithFanIn(t *testing.T) {
	backend := autodiff.New(cpu.New())

	w := nn.Xavier(1000, 1000, tensor.Shape{1000, 1000}, backend)

	// Glorot uniform bound for fan 1000/1000 is sqrt(6/2000) ~ 0.0548.
	bound := float32(0.06)
	for i, v := range w.Data()[:100] {
		if v < -bound || v > bound {
			t.Errorf("init[%d] = %f outside [%f, %f]", i, v, -bound, bound)
		}
	}
}

func TestCrossEntropyLoss_Forward(t *testing.T) {
	backend := autodiff.New(cpu.New())

	// Logits [2, 1], target 0:
	// log_sum_exp = 2 + log(1 + e^-1) = 2.3133
	// loss = 2.3133 - 2 = 0.3133
	logits := tensor.FromSlice([]float32{2, 1}, tensor.Shape{1, 2}, backend)
	targets := tensor.FromSlice([]int32{0}, tensor.Shape{1}, backend)

	criterion := nn.NewCrossEntropyLoss(-100, backend)
	loss := criterion.Forward(logits, targets)

	if !floatEqual(loss.Item(), 0.3133, 1e-3) {
		t.Errorf("loss = %f, want 0.3133", loss.Item())
	}
}

func TestCrossEntropyLoss_IgnoreIndexSkipsRows(t *testing.T) {
	backend := autodiff.New(cpu.New())

	// Second row is ignored; loss is the mean over the remaining row only.
	logits := tensor.FromSlice([]float32{
		2, 1,
		50, -50,
	}, tensor.Shape{2, 2}, backend)
	targets := tensor.FromSlice([]int32{0, -100}, tensor.Shape{2}, backend)

	criterion := nn.NewCrossEntropyLoss(-100, backend)
	loss := criterion.Forward(logits, targets)

	if !floatEqual(loss.Item(), 0.3133, 1e-3) {
		t.Errorf("loss with ignored row = %f, want 0.3133", loss.Item())
	}
}

func TestCrossEntropyLoss_TrainsThroughBackward(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()
	defer backend.Tape().StopRecording()

	logits := tensor.FromSlice([]float32{1, 2}, tensor.Shape{1, 2}, backend)
	targets := tensor.FromSlice([]int32{1}, tensor.Shape{1}, backend)

	criterion := nn.NewCrossEntropyLoss(-100, backend)
	loss := criterion.Forward(logits, targets)

	grads := autodiff.Backward(loss)
	grad, ok := grads[logits.Raw()]
	if !ok {
		t.Fatal("no gradient for logits")
	}

	// softmax([1,2]) = [0.269, 0.731]; grad = softmax - onehot(1).
	if !floatEqual(grad.AsFloat32()[0], 0.269, 1e-2) {
		t.Errorf("grad[0] = %f, want 0.269", grad.AsFloat32()[0])
	}
	if !floatEqual(grad.AsFloat32()[1], -0.269, 1e-2) {
		t.Errorf("grad[1] = %f, want -0.269", grad.AsFloat32()[1])
	}
}

func TestDropout_EvalIdentity(t *testing.T) {
	backend := autodiff.New(cpu.New())

	drop := nn.NewDropout(0.8, backend)
	drop.SetTraining(false)

	x := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	out := drop.Forward(x)

	for i, v := range x.Data() {
		if out.Data()[i] != v {
			t.Errorf("eval dropout changed data[%d]: %f != %f", i, out.Data()[i], v)
		}
	}
}

func TestDropout_TrainingZeroesAndScales(t *testing.T) {
	backend := autodiff.New(cpu.New())

	drop := nn.NewDropout(0.5, backend)
	drop.SetTraining(true)

	n := 1000
	data := make([]float32, n)
	for i := range data {
		data[i] = 1
	}
	x := tensor.FromSlice(data, tensor.Shape{1, n}, backend)
	out := drop.Forward(x)

	kept := 0
	for i, v := range out.Data() {
		switch v {
		case 0:
		case 2:
			kept++
		default:
			t.Fatalf("out[%d] = %f, want 0 or 2", i, v)
		}
	}
	if kept < n/4 || kept > 3*n/4 {
		t.Errorf("kept %d of %d, far from p=0.5", kept, n)
	}
}

func TestDropout_InvalidProbabilityPanics(t *testing.T) {
	backend := autodiff.New(cpu.New())

	defer func() {
		if r := recover(); r == nil {
			t.Error("NewDropout(1.0) should panic")
		}
	}()
	nn.NewDropout(1.0, backend)
}
