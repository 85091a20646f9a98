package cpu_test

import (
	"math"
	"testing"

	"github.com/seqlab-ml/seqlab/internal/backend/cpu"
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

func floatNear(a, b, eps float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

func rawFrom(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func TestCPU_NameAndDevice(t *testing.T) {
	backend := cpu.New()
	if backend.Name() != "cpu" {
		t.Errorf("Name = %q, want cpu", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Device = %v, want CPU", backend.Device())
	}
}

func TestCPU_AddBroadcastsRow(t *testing.T) {
	backend := cpu.New()

	// [2,3] + [3] broadcasts the row vector over both rows.
	a := rawFrom(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := rawFrom(t, []float32{10, 20, 30}, tensor.Shape{3})

	out := backend.Add(a, b)
	want := []float32{11, 22, 33, 14, 25, 36}
	for i, v := range want {
		if out.AsFloat32()[i] != v {
			t.Errorf("Add[%d] = %f, want %f", i, out.AsFloat32()[i], v)
		}
	}
}

func TestCPU_AddBroadcastsColumn(t *testing.T) {
	backend := cpu.New()

	// [2,1] + [1,3] -> [2,3].
	a := rawFrom(t, []float32{1, 2}, tensor.Shape{2, 1})
	b := rawFrom(t, []float32{10, 20, 30}, tensor.Shape{1, 3})

	out := backend.Add(a, b)
	if !out.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", out.Shape())
	}
	want := []float32{11, 21, 31, 12, 22, 32}
	for i, v := range want {
		if out.AsFloat32()[i] != v {
			t.Errorf("Add[%d] = %f, want %f", i, out.AsFloat32()[i], v)
		}
	}
}

func TestCPU_IncompatibleBroadcastPanics(t *testing.T) {
	backend := cpu.New()

	a := rawFrom(t, []float32{1, 2, 3}, tensor.Shape{3})
	b := rawFrom(t, []float32{1, 2}, tensor.Shape{2})

	defer func() {
		if r := recover(); r == nil {
			t.Error("incompatible shapes should panic")
		}
	}()
	backend.Add(a, b)
}

func TestCPU_MatMul(t *testing.T) {
	backend := cpu.New()

	// [2,3] @ [3,2] = [2,2]
	a := rawFrom(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := rawFrom(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	out := backend.MatMul(a, b)
	if !out.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("shape = %v, want [2 2]", out.Shape())
	}

	// Row 0: [1*7+2*9+3*11, 1*8+2*10+3*12] = [58, 64]
	// Row 1: [4*7+5*9+6*11, 4*8+5*10+6*12] = [139, 154]
	want := []float32{58, 64, 139, 154}
	for i, v := range want {
		if out.AsFloat32()[i] != v {
			t.Errorf("MatMul[%d] = %f, want %f", i, out.AsFloat32()[i], v)
		}
	}
}

func TestCPU_MatMul_ShapeMismatchPanics(t *testing.T) {
	backend := cpu.New()

	a := rawFrom(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFrom(t, []float32{1, 2, 3}, tensor.Shape{3, 1})

	defer func() {
		if r := recover(); r == nil {
			t.Error("inner dimension mismatch should panic")
		}
	}()
	backend.MatMul(a, b)
}

func TestCPU_MatMul_ManyRows(t *testing.T) {
	backend := cpu.New()

	// Enough rows to cross the worker fan-out threshold. Row i of a is
	// [i+1, i+1], so out row i = [3(i+1), 30(i+1)].
	const m = 128
	aData := make([]float32, m*2)
	for i := 0; i < m; i++ {
		aData[i*2] = float32(i + 1)
		aData[i*2+1] = float32(i + 1)
	}
	a := rawFrom(t, aData, tensor.Shape{m, 2})
	b := rawFrom(t, []float32{1, 10, 2, 20}, tensor.Shape{2, 2})

	out := backend.MatMul(a, b).AsFloat32()
	for i := 0; i < m; i++ {
		if out[i*2] != float32(3*(i+1)) || out[i*2+1] != float32(30*(i+1)) {
			t.Fatalf("row %d = [%f %f], want [%f %f]",
				i, out[i*2], out[i*2+1], float32(3*(i+1)), float32(30*(i+1)))
		}
	}
}

func TestCPU_ScalarOps(t *testing.T) {
	backend := cpu.New()

	x := rawFrom(t, []float32{1, 2, 3}, tensor.Shape{3})

	scaled := backend.MulScalar(x, float32(2))
	for i, want := range []float32{2, 4, 6} {
		if scaled.AsFloat32()[i] != want {
			t.Errorf("MulScalar[%d] = %f, want %f", i, scaled.AsFloat32()[i], want)
		}
	}

	shifted := backend.AddScalar(x, float32(10))
	for i, want := range []float32{11, 12, 13} {
		if shifted.AsFloat32()[i] != want {
			t.Errorf("AddScalar[%d] = %f, want %f", i, shifted.AsFloat32()[i], want)
		}
	}
}

func TestCPU_TanhSigmoid(t *testing.T) {
	backend := cpu.New()

	x := rawFrom(t, []float32{-1, 0, 1}, tensor.Shape{3})

	tanh := backend.Tanh(x).AsFloat32()
	if !floatNear(tanh[1], 0, 1e-6) {
		t.Errorf("tanh(0) = %f, want 0", tanh[1])
	}
	if !floatNear(tanh[2], float32(math.Tanh(1)), 1e-6) {
		t.Errorf("tanh(1) = %f, want %f", tanh[2], math.Tanh(1))
	}
	if !floatNear(tanh[0], -tanh[2], 1e-6) {
		t.Error("tanh should be odd")
	}

	sig := backend.Sigmoid(x).AsFloat32()
	if !floatNear(sig[1], 0.5, 1e-6) {
		t.Errorf("sigmoid(0) = %f, want 0.5", sig[1])
	}
	if !floatNear(sig[0]+sig[2], 1, 1e-6) {
		t.Error("sigmoid(-x) + sigmoid(x) should be 1")
	}
}

func TestCPU_SoftmaxRowsSumToOne(t *testing.T) {
	backend := cpu.New()

	x := rawFrom(t, []float32{1, 2, 3, 1000, 1001, 1002}, tensor.Shape{2, 3})
	out := backend.Softmax(x, 1).AsFloat32()

	for row := 0; row < 2; row++ {
		var sum float32
		for col := 0; col < 3; col++ {
			v := out[row*3+col]
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				t.Fatalf("softmax[%d,%d] not finite: %f", row, col, v)
			}
			sum += v
		}
		if !floatNear(sum, 1, 1e-5) {
			t.Errorf("row %d sums to %f, want 1", row, sum)
		}
	}

	// Shifted logits give identical distributions.
	for col := 0; col < 3; col++ {
		if !floatNear(out[col], out[3+col], 1e-5) {
			t.Errorf("softmax shift invariance broken at col %d: %f vs %f", col, out[col], out[3+col])
		}
	}
}

func TestCPU_ArgmaxTiesToLowestIndex(t *testing.T) {
	backend := cpu.New()

	x := rawFrom(t, []float32{5, 5, 1}, tensor.Shape{1, 3})
	out := backend.Argmax(x, 1)
	if out.AsInt32()[0] != 0 {
		t.Errorf("Argmax tie = %d, want 0", out.AsInt32()[0])
	}
}

func TestCPU_CatChunkRoundTrip(t *testing.T) {
	backend := cpu.New()

	x := rawFrom(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{2, 4})

	parts := backend.Chunk(x, 2, 1)
	if len(parts) != 2 {
		t.Fatalf("Chunk returned %d parts, want 2", len(parts))
	}
	if !parts[0].Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("part shape = %v, want [2 2]", parts[0].Shape())
	}

	// First part takes columns 0..1 of each row.
	want0 := []float32{1, 2, 5, 6}
	for i, v := range want0 {
		if parts[0].AsFloat32()[i] != v {
			t.Errorf("part0[%d] = %f, want %f", i, parts[0].AsFloat32()[i], v)
		}
	}

	back := backend.Cat(parts, 1)
	if !back.Shape().Equal(x.Shape()) {
		t.Fatalf("Cat shape = %v, want %v", back.Shape(), x.Shape())
	}
	for i, v := range x.AsFloat32() {
		if back.AsFloat32()[i] != v {
			t.Errorf("roundtrip[%d] = %f, want %f", i, back.AsFloat32()[i], v)
		}
	}
}

func TestCPU_ChunkIndivisiblePanics(t *testing.T) {
	backend := cpu.New()

	x := rawFrom(t, []float32{1, 2, 3}, tensor.Shape{1, 3})

	defer func() {
		if r := recover(); r == nil {
			t.Error("chunking 3 into 2 should panic")
		}
	}()
	backend.Chunk(x, 2, 1)
}

func TestCPU_Transpose2D(t *testing.T) {
	backend := cpu.New()

	x := rawFrom(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	out := backend.Transpose(x)

	if !out.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", out.Shape())
	}
	want := []float32{1, 4, 2, 5, 3, 6}
	for i, v := range want {
		if out.AsFloat32()[i] != v {
			t.Errorf("Transpose[%d] = %f, want %f", i, out.AsFloat32()[i], v)
		}
	}
}

func TestCPU_Transpose3DAxes(t *testing.T) {
	backend := cpu.New()

	// [2,1,3] with axes (1,0,2) -> [1,2,3]; data order is preserved for
	// this particular permutation because the middle axis is size 1.
	x := rawFrom(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 1, 3})
	out := backend.Transpose(x, 1, 0, 2)

	if !out.Shape().Equal(tensor.Shape{1, 2, 3}) {
		t.Fatalf("shape = %v, want [1 2 3]", out.Shape())
	}
	for i, v := range x.AsFloat32() {
		if out.AsFloat32()[i] != v {
			t.Errorf("data[%d] = %f, want %f", i, out.AsFloat32()[i], v)
		}
	}
}

func TestCPU_Embedding(t *testing.T) {
	backend := cpu.New()

	weight := rawFrom(t, []float32{
		0, 0,
		10, 11,
		20, 21,
	}, tensor.Shape{3, 2})

	indices, err := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Int32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(indices.AsInt32(), []int32{1, 2, 0, 1})

	out := backend.Embedding(weight, indices)
	if !out.Shape().Equal(tensor.Shape{2, 2, 2}) {
		t.Fatalf("shape = %v, want [2 2 2]", out.Shape())
	}

	want := []float32{10, 11, 20, 21, 0, 0, 10, 11}
	for i, v := range want {
		if out.AsFloat32()[i] != v {
			t.Errorf("Embedding[%d] = %f, want %f", i, out.AsFloat32()[i], v)
		}
	}
}

func TestCPU_EmbeddingOutOfRangePanics(t *testing.T) {
	backend := cpu.New()

	weight := rawFrom(t, []float32{1, 2}, tensor.Shape{1, 2})
	indices, err := tensor.NewRaw(tensor.Shape{1}, tensor.Int32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	indices.AsInt32()[0] = 3

	defer func() {
		if r := recover(); r == nil {
			t.Error("out-of-range index should panic")
		}
	}()
	backend.Embedding(weight, indices)
}

func TestCPU_Sum(t *testing.T) {
	backend := cpu.New()

	x := rawFrom(t, []float32{1.5, 2.5, 3}, tensor.Shape{3})
	out := backend.Sum(x)

	if !out.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("shape = %v, want [1]", out.Shape())
	}
	if out.AsFloat32()[0] != 7 {
		t.Errorf("Sum = %f, want 7", out.AsFloat32()[0])
	}
}

func TestCPU_DivByZeroGivesInf(t *testing.T) {
	backend := cpu.New()

	a := rawFrom(t, []float32{1}, tensor.Shape{1})
	b := rawFrom(t, []float32{0}, tensor.Shape{1})

	out := backend.Div(a, b)
	if !math.IsInf(float64(out.AsFloat32()[0]), 1) {
		t.Errorf("1/0 = %f, want +Inf", out.AsFloat32()[0])
	}
}
