package autodiff

import (
	"fmt"

	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// BackwardCapable is a backend that carries a gradient tape. The autodiff
// decorator satisfies it; plain compute backends do not.
type BackwardCapable interface {
	tensor.Backend
	GetTape() *GradientTape
}

// GetTape returns the decorator's tape, satisfying BackwardCapable.
func (b *AutodiffBackend[B]) GetTape() *GradientTape {
	return b.tape
}

// Backward seeds a ones gradient shaped like t and walks its backend's tape
// in reverse, returning the gradient for every tensor reachable from t.
//
// Panics if nothing was recorded: an empty tape here means the forward pass
// ran before StartRecording, which is a programming error.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B]) map[*tensor.RawTensor]*tensor.RawTensor {
	backend := t.Backend()
	tape := backend.GetTape()
	if tape.NumOps() == 0 {
		panic("backward: no operations recorded (did you forget StartRecording?)")
	}

	seed, err := tensor.NewRaw(t.Shape(), t.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("backward: %v", err))
	}
	switch t.DType() {
	case tensor.Float32:
		data := seed.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float64:
		data := seed.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	default:
		panic(fmt.Sprintf("backward: unsupported dtype %s", t.DType()))
	}

	return tape.Backward(seed, backend)
}
