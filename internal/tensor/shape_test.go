package tensor_test

import (
	"testing"

	"github.com/seqlab-ml/seqlab/internal/tensor"
)

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		shape tensor.Shape
		want  int
	}{
		{tensor.Shape{}, 1}, // scalar
		{tensor.Shape{5}, 5},
		{tensor.Shape{2, 3}, 6},
		{tensor.Shape{2, 3, 4}, 24},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShape_Equal(t *testing.T) {
	a := tensor.Shape{2, 3}
	if !a.Equal(tensor.Shape{2, 3}) {
		t.Error("equal shapes reported unequal")
	}
	if a.Equal(tensor.Shape{3, 2}) {
		t.Error("different shapes reported equal")
	}
	if a.Equal(tensor.Shape{2, 3, 1}) {
		t.Error("different ranks reported equal")
	}
}

func TestShape_ComputeStrides(t *testing.T) {
	s := tensor.Shape{2, 3, 4}
	strides := s.ComputeStrides()

	want := []int{12, 4, 1}
	for i, v := range want {
		if strides[i] != v {
			t.Errorf("strides[%d] = %d, want %d", i, strides[i], v)
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b tensor.Shape
		want tensor.Shape
		ok   bool
	}{
		{tensor.Shape{2, 3}, tensor.Shape{2, 3}, tensor.Shape{2, 3}, true},
		{tensor.Shape{2, 3}, tensor.Shape{3}, tensor.Shape{2, 3}, true},
		{tensor.Shape{2, 1}, tensor.Shape{1, 3}, tensor.Shape{2, 3}, true},
		{tensor.Shape{4, 1, 5}, tensor.Shape{3, 1}, tensor.Shape{4, 3, 5}, true},
		{tensor.Shape{2, 3}, tensor.Shape{4}, nil, false},
	}
	for _, tt := range tests {
		got, _, err := tensor.BroadcastShapes(tt.a, tt.b)
		if tt.ok {
			if err != nil {
				t.Errorf("BroadcastShapes(%v, %v) unexpected error: %v", tt.a, tt.b, err)
				continue
			}
			if !got.Equal(tt.want) {
				t.Errorf("BroadcastShapes(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		} else if err == nil {
			t.Errorf("BroadcastShapes(%v, %v) should fail", tt.a, tt.b)
		}
	}
}

func TestShape_Validate(t *testing.T) {
	if err := (tensor.Shape{2, 3}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (tensor.Shape{2, -1}).Validate(); err == nil {
		t.Error("negative dimension accepted")
	}
}
