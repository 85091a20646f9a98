package tensor_test

import (
	"testing"

	"github.com/seqlab-ml/seqlab/internal/backend/cpu"
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

func TestFromSlice_Basics(t *testing.T) {
	backend := cpu.New()

	x := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)

	if !x.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape = %v, want [2 3]", x.Shape())
	}
	if x.NumElements() != 6 {
		t.Errorf("NumElements = %d, want 6", x.NumElements())
	}
	if x.DType() != tensor.Float32 {
		t.Errorf("DType = %v, want Float32", x.DType())
	}

	// Row-major layout: [1 2 3; 4 5 6].
	if x.At(0, 2) != 3 {
		t.Errorf("At(0,2) = %f, want 3", x.At(0, 2))
	}
	if x.At(1, 0) != 4 {
		t.Errorf("At(1,0) = %f, want 4", x.At(1, 0))
	}
}

func TestFromSlice_LengthMismatchPanics(t *testing.T) {
	backend := cpu.New()

	defer func() {
		if r := recover(); r == nil {
			t.Error("FromSlice with wrong element count should panic")
		}
	}()
	tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 2}, backend)
}

func TestNew_DTypeMismatchPanics(t *testing.T) {
	backend := cpu.New()

	raw, err := tensor.NewRaw(tensor.Shape{2}, tensor.Float32, backend.Device())
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("New[int32] over a Float32 raw should panic")
		}
	}()
	tensor.New[int32](raw, backend)
}

func TestTensor_DataWritesThrough(t *testing.T) {
	backend := cpu.New()

	x := tensor.FromSlice([]float32{0, 0}, tensor.Shape{2}, backend)
	x.Data()[1] = 7

	if x.At(1) != 7 {
		t.Errorf("At(1) = %f, want 7 after Data() write", x.At(1))
	}
}

func TestTensor_Item(t *testing.T) {
	backend := cpu.New()

	s := tensor.FromSlice([]float32{42}, tensor.Shape{1}, backend)
	if s.Item() != 42 {
		t.Errorf("Item = %f, want 42", s.Item())
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Item on a multi-element tensor should panic")
		}
	}()
	tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend).Item()
}

func TestTensor_CloneIndependentBuffer(t *testing.T) {
	backend := cpu.New()

	x := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	y := x.Clone()
	y.Data()[0] = 99

	if x.At(0) != 1 {
		t.Errorf("Clone mutation leaked into original: At(0) = %f", x.At(0))
	}
}

func TestTensor_AddAndMatMul(t *testing.T) {
	backend := cpu.New()

	a := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	b := tensor.FromSlice([]float32{5, 6, 7, 8}, tensor.Shape{2, 2}, backend)

	sum := a.Add(b)
	wantSum := []float32{6, 8, 10, 12}
	for i, v := range wantSum {
		if sum.Data()[i] != v {
			t.Errorf("Add[%d] = %f, want %f", i, sum.Data()[i], v)
		}
	}

	// [1 2; 3 4] @ [5 6; 7 8] = [19 22; 43 50]
	prod := a.MatMul(b)
	wantProd := []float32{19, 22, 43, 50}
	for i, v := range wantProd {
		if prod.Data()[i] != v {
			t.Errorf("MatMul[%d] = %f, want %f", i, prod.Data()[i], v)
		}
	}
}

func TestTensor_ReshapePreservesData(t *testing.T) {
	backend := cpu.New()

	x := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	y := x.Reshape(tensor.Shape{3, 2})

	if !y.Shape().Equal(tensor.Shape{3, 2}) {
		t.Errorf("Reshape shape = %v, want [3 2]", y.Shape())
	}
	for i := 0; i < 6; i++ {
		if y.Data()[i] != float32(i+1) {
			t.Errorf("Reshape data[%d] = %f, want %d", i, y.Data()[i], i+1)
		}
	}
}

func TestTensor_Argmax(t *testing.T) {
	backend := cpu.New()

	// Two rows: max at column 2 and column 0.
	x := tensor.FromSlice([]float32{1, 2, 5, 9, 3, 1}, tensor.Shape{2, 3}, backend)
	idx := x.Argmax(1)

	if !idx.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("Argmax shape = %v, want [2]", idx.Shape())
	}
	if idx.Data()[0] != 2 || idx.Data()[1] != 0 {
		t.Errorf("Argmax = %v, want [2 0]", idx.Data())
	}
}

func TestTensor_EmbeddingGathersRows(t *testing.T) {
	backend := cpu.New()

	// 3-row table, 2 columns.
	table := tensor.FromSlice([]float32{
		10, 11,
		20, 21,
		30, 31,
	}, tensor.Shape{3, 2}, backend)
	indices := tensor.FromSlice([]int32{2, 0, 2}, tensor.Shape{1, 3}, backend)

	out := table.Embedding(indices)
	if !out.Shape().Equal(tensor.Shape{1, 3, 2}) {
		t.Fatalf("Embedding shape = %v, want [1 3 2]", out.Shape())
	}

	want := []float32{30, 31, 10, 11, 30, 31}
	for i, v := range want {
		if out.Data()[i] != v {
			t.Errorf("Embedding data[%d] = %f, want %f", i, out.Data()[i], v)
		}
	}
}

func TestZerosOnesFull(t *testing.T) {
	backend := cpu.New()

	z := tensor.Zeros[float32](tensor.Shape{2, 2}, backend)
	for i, v := range z.Data() {
		if v != 0 {
			t.Errorf("Zeros[%d] = %f", i, v)
		}
	}

	o := tensor.Ones[float32](tensor.Shape{3}, backend)
	for i, v := range o.Data() {
		if v != 1 {
			t.Errorf("Ones[%d] = %f", i, v)
		}
	}

	f := tensor.Full[float32](tensor.Shape{2}, 3.5, backend)
	for i, v := range f.Data() {
		if v != 3.5 {
			t.Errorf("Full[%d] = %f", i, v)
		}
	}
}
