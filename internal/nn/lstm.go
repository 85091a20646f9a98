package nn

import (
	"fmt"

	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// LSTM is a multi-layer long short-term memory encoder over batched
// sequences. Input is [batch, seq, features]; output is [batch, seq, H] for
// a unidirectional encoder and [batch, seq, 2H] for a bidirectional one,
// where the reverse pass runs over the same sequence back to front and its
// hidden states are concatenated feature-wise with the forward pass.
//
// The recurrence is expressed entirely through backend tensor operations, so
// on an autodiff backend full backpropagation through time falls out of the
// tape: every timestep's gate arithmetic is recorded and replayed in
// reverse.
//
// Gate layout follows the packed convention: the input-hidden and
// hidden-hidden weights are [4H, in] and [4H, H], and chunking the combined
// preactivation into four [batch, H] blocks yields input, forget, cell and
// output gates in that order.
type LSTM[B tensor.Backend] struct {
	inputSize     int
	hiddenSize    int
	numLayers     int
	bidirectional bool
	forward       []*lstmCell[B]
	reverse       []*lstmCell[B]
	backend       B
}

// lstmCell holds the weights for one direction of one layer.
type lstmCell[B tensor.Backend] struct {
	wih    *Parameter[B] // [4H, in]
	whh    *Parameter[B] // [4H, H]
	bias   *Parameter[B] // [4H]
	hidden int
}

// NewLSTM creates an LSTM encoder. Layer 0 consumes inputSize features;
// deeper layers consume the previous layer's output (H or 2H features).
func NewLSTM[B tensor.Backend](inputSize, hiddenSize, numLayers int, bidirectional bool, backend B) *LSTM[B] {
	if inputSize <= 0 || hiddenSize <= 0 {
		panic(fmt.Sprintf("lstm: sizes must be positive, got input=%d hidden=%d", inputSize, hiddenSize))
	}
	if numLayers < 1 {
		panic(fmt.Sprintf("lstm: need at least one layer, got %d", numLayers))
	}

	l := &LSTM[B]{
		inputSize:     inputSize,
		hiddenSize:    hiddenSize,
		numLayers:     numLayers,
		bidirectional: bidirectional,
		backend:       backend,
	}

	dirs := 1
	if bidirectional {
		dirs = 2
	}
	for layer := 0; layer < numLayers; layer++ {
		in := inputSize
		if layer > 0 {
			in = hiddenSize * dirs
		}
		l.forward = append(l.forward, newLSTMCell(fmt.Sprintf("lstm.%d", layer), in, hiddenSize, backend))
		if bidirectional {
			l.reverse = append(l.reverse, newLSTMCell(fmt.Sprintf("lstm.%d.rev", layer), in, hiddenSize, backend))
		}
	}
	return l
}

func newLSTMCell[B tensor.Backend](prefix string, in, hidden int, backend B) *lstmCell[B] {
	return &lstmCell[B]{
		wih:    NewParameter(prefix+".wih", Xavier(in, 4*hidden, tensor.Shape{4 * hidden, in}, backend)),
		whh:    NewParameter(prefix+".whh", Xavier(hidden, 4*hidden, tensor.Shape{4 * hidden, hidden}, backend)),
		bias:   NewParameter(prefix+".bias", Zeros(tensor.Shape{4 * hidden}, backend)),
		hidden: hidden,
	}
}

// Forward encodes input [batch, seq, inputSize] into
// [batch, seq, OutputSize()]. Hidden and cell states start at zero for every
// batch.
func (l *LSTM[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 3 {
		panic(fmt.Sprintf("lstm: expected 3D input [batch, seq, features], got %v", shape))
	}
	if shape[2] != l.inputSize {
		panic(fmt.Sprintf("lstm: expected %d input features, got %d", l.inputSize, shape[2]))
	}

	output := input
	for layer := 0; layer < l.numLayers; layer++ {
		fwd := l.runDirection(l.forward[layer], output, false)
		if l.bidirectional {
			rev := l.runDirection(l.reverse[layer], output, true)
			output = tensor.Cat([]*tensor.Tensor[float32, B]{fwd, rev}, 2)
		} else {
			output = fwd
		}
	}
	return output
}

// runDirection unrolls one cell over time. With reversed set, timesteps are
// visited back to front but outputs are still stored at their original
// positions, so both directions line up timestep for timestep.
func (l *LSTM[B]) runDirection(cell *lstmCell[B], input *tensor.Tensor[float32, B], reversed bool) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	batch, seq, features := shape[0], shape[1], shape[2]

	steps := input.Chunk(seq, 1)

	h := Zeros(tensor.Shape{batch, l.hiddenSize}, l.backend)
	c := Zeros(tensor.Shape{batch, l.hiddenSize}, l.backend)

	outs := make([]*tensor.Tensor[float32, B], seq)
	for k := 0; k < seq; k++ {
		t := k
		if reversed {
			t = seq - 1 - k
		}
		x := steps[t].Reshape(tensor.Shape{batch, features})
		h, c = cell.step(x, h, c)
		outs[t] = h.Reshape(tensor.Shape{batch, 1, l.hiddenSize})
	}
	return tensor.Cat(outs, 1)
}

// step advances the recurrence one timestep:
//
//	i, f, g, o = chunk4(x @ Wih.T + h @ Whh.T + b)
//	c' = sigmoid(f) * c + sigmoid(i) * tanh(g)
//	h' = sigmoid(o) * tanh(c')
func (cell *lstmCell[B]) step(x, h, c *tensor.Tensor[float32, B]) (hNext, cNext *tensor.Tensor[float32, B]) {
	gates := x.MatMul(cell.wih.Tensor().Transpose()).
		Add(h.MatMul(cell.whh.Tensor().Transpose())).
		Add(cell.bias.Tensor().Reshape(tensor.Shape{1, 4 * cell.hidden}))

	parts := gates.Chunk(4, 1)
	i := parts[0].Sigmoid()
	f := parts[1].Sigmoid()
	g := parts[2].Tanh()
	o := parts[3].Sigmoid()

	cNext = f.Mul(c).Add(i.Mul(g))
	hNext = o.Mul(cNext.Tanh())
	return hNext, cNext
}

// Parameters returns every direction's weights in layer order.
func (l *LSTM[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for layer := 0; layer < l.numLayers; layer++ {
		cell := l.forward[layer]
		params = append(params, cell.wih, cell.whh, cell.bias)
		if l.bidirectional {
			cell = l.reverse[layer]
			params = append(params, cell.wih, cell.whh, cell.bias)
		}
	}
	return params
}

// InputSize returns the expected feature width of layer 0.
func (l *LSTM[B]) InputSize() int { return l.inputSize }

// HiddenSize returns H, the per-direction hidden width.
func (l *LSTM[B]) HiddenSize() int { return l.hiddenSize }

// NumLayers returns the number of stacked layers.
func (l *LSTM[B]) NumLayers() int { return l.numLayers }

// Bidirectional reports whether a reverse pass runs alongside the forward one.
func (l *LSTM[B]) Bidirectional() bool { return l.bidirectional }

// OutputSize returns the encoder's feature width: H, or 2H when
// bidirectional.
func (l *LSTM[B]) OutputSize() int {
	if l.bidirectional {
		return 2 * l.hiddenSize
	}
	return l.hiddenSize
}
