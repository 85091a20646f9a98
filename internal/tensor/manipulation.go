package tensor

// Cat concatenates tensors along dim. All inputs must share every dimension
// except the concatenation dimension. Negative dim counts from the end.
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	// A single input still goes through the backend so the copy is taped.
	raws := make([]*RawTensor, len(tensors))
	for i, t := range tensors {
		raws[i] = t.raw
	}

	backend := tensors[0].backend
	return New[T, B](backend.Cat(raws, dim), backend)
}

// Chunk splits the tensor into n equal parts along dim.
// The dimension size must be divisible by n. Negative dim counts from the end.
func (t *Tensor[T, B]) Chunk(n, dim int) []*Tensor[T, B] {
	raws := t.backend.Chunk(t.raw, n, dim)
	parts := make([]*Tensor[T, B], len(raws))
	for i, raw := range raws {
		parts[i] = New[T, B](raw, t.backend)
	}
	return parts
}
