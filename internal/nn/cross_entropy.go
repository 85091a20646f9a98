package nn

import (
	"fmt"
	"math"

	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// CrossEntropyLoss computes mean cross-entropy over [N, numClasses] logits
// against [N] int32 class targets, via the numerically stable
// LogSoftmax + NLL decomposition.
//
// Rows whose target equals IgnoreIndex are excluded from both the sum and
// the mean's denominator, and receive exactly zero gradient. The tagger sets
// IgnoreIndex to the tag padding sentinel so padded positions never train
// the model. If every row is ignored the loss is 0.
type CrossEntropyLoss[B tensor.Backend] struct {
	IgnoreIndex int
	backend     B
}

// NewCrossEntropyLoss creates the loss. Pass a negative ignoreIndex that can
// never collide with a real class code, or any out-of-range value to
// effectively disable ignoring.
func NewCrossEntropyLoss[B tensor.Backend](ignoreIndex int, backend B) *CrossEntropyLoss[B] {
	return &CrossEntropyLoss[B]{IgnoreIndex: ignoreIndex, backend: backend}
}

// Forward computes the scalar mean loss for logits [N, numClasses] and
// targets [N].
//
// When the backend is autodiff-aware the loss is recorded on its tape as a
// single fused operation; otherwise it is computed here without gradient
// support.
func (c *CrossEntropyLoss[B]) Forward(
	logits *tensor.Tensor[float32, B],
	targets *tensor.Tensor[int32, B],
) *tensor.Tensor[float32, B] {
	type CrossEntropyBackend interface {
		CrossEntropy(logits, targets *tensor.RawTensor, ignoreIndex int) *tensor.RawTensor
	}
	if adBackend, ok := any(c.backend).(CrossEntropyBackend); ok {
		raw := adBackend.CrossEntropy(logits.Raw(), targets.Raw(), c.IgnoreIndex)
		return tensor.New[float32, B](raw, c.backend)
	}

	shape := logits.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("cross_entropy: logits must be 2D [N, classes], got %v", shape))
	}
	n, classes := shape[0], shape[1]

	targetsData := targets.Raw().AsInt32()
	if len(targetsData) != n {
		panic(fmt.Sprintf("cross_entropy: targets must have shape [%d], got %v", n, targets.Shape()))
	}
	logitsData := logits.Raw().AsFloat32()

	var total float64
	valid := 0
	for i := 0; i < n; i++ {
		target := int(targetsData[i])
		if target == c.IgnoreIndex {
			continue
		}
		if target < 0 || target >= classes {
			panic(fmt.Sprintf("cross_entropy: target %d out of range [0, %d)", target, classes))
		}
		row := logitsData[i*classes : (i+1)*classes]
		total += -logSoftmaxAt(row, target)
		valid++
	}

	var mean float32
	if valid > 0 {
		mean = float32(total / float64(valid))
	}

	raw, err := tensor.NewRaw(tensor.Shape{1}, tensor.Float32, c.backend.Device())
	if err != nil {
		panic(err)
	}
	raw.AsFloat32()[0] = mean
	return tensor.New[float32, B](raw, c.backend)
}

// Parameters returns nil; the loss has nothing to train.
func (c *CrossEntropyLoss[B]) Parameters() []*Parameter[B] {
	return nil
}

// logSoftmaxAt returns log(softmax(row))[target] using the log-sum-exp
// trick.
func logSoftmaxAt(row []float32, target int) float64 {
	maxVal := float64(row[0])
	for _, v := range row[1:] {
		if float64(v) > maxVal {
			maxVal = float64(v)
		}
	}
	var sumExp float64
	for _, v := range row {
		sumExp += math.Exp(float64(v) - maxVal)
	}
	return float64(row[target]) - maxVal - math.Log(sumExp)
}
