package tensor

// Backend is the compute interface tensors dispatch to.
//
// The operation set is sized to a recurrent sequence tagger: elementwise
// arithmetic with NumPy-style broadcasting, 2D matrix product, the shape and
// slicing ops an LSTM unrolled over time needs (Reshape, Transpose, Cat,
// Chunk), gate activations, a softmax for confidence readout, reductions, and
// embedding lookup.
//
// Backends panic on shape or dtype violations; those are programming errors,
// not runtime conditions.
type Backend interface {
	// Elementwise binary operations with broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul computes the 2D matrix product [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *RawTensor) *RawTensor

	// Elementwise operations against a scalar.
	MulScalar(x *RawTensor, scalar any) *RawTensor
	AddScalar(x *RawTensor, scalar any) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Activations.
	Tanh(x *RawTensor) *RawTensor
	Sigmoid(x *RawTensor) *RawTensor
	Softmax(x *RawTensor, dim int) *RawTensor

	// Reductions.
	Sum(x *RawTensor) *RawTensor
	Argmax(x *RawTensor, dim int) *RawTensor

	// Concatenation and splitting along a dimension.
	Cat(tensors []*RawTensor, dim int) *RawTensor
	Chunk(x *RawTensor, n, dim int) []*RawTensor

	// Embedding gathers rows of weight by int32 indices.
	Embedding(weight, indices *RawTensor) *RawTensor

	// Identification.
	Name() string
	Device() Device
}
