package ops

import (
	"fmt"
	"math"

	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// CrossEntropyForward computes mean token-level cross-entropy over [N, C]
// logits against [N] int32 class targets. Rows whose target equals
// ignoreIndex contribute neither to the sum nor to the denominator; if every
// row is ignored the loss is 0. Returns a scalar tensor of the logits' dtype.
func CrossEntropyForward(logits, targets *tensor.RawTensor, ignoreIndex int) *tensor.RawTensor {
	n, classes := checkCrossEntropyShapes(logits, targets)

	out, err := tensor.NewRaw(tensor.Shape{1}, logits.DType(), logits.Device())
	if err != nil {
		panic(fmt.Sprintf("cross_entropy: %v", err))
	}

	idx := targets.AsInt32()
	switch logits.DType() {
	case tensor.Float32:
		out.AsFloat32()[0] = float32(crossEntropyKernel(logits.AsFloat32(), idx, n, classes, ignoreIndex))
	case tensor.Float64:
		out.AsFloat64()[0] = crossEntropyKernel(logits.AsFloat64(), idx, n, classes, ignoreIndex)
	default:
		panic(fmt.Sprintf("cross_entropy: unsupported dtype %s", logits.DType()))
	}
	return out
}

func crossEntropyKernel[T float32 | float64](logits []T, targets []int32, n, classes, ignoreIndex int) float64 {
	var total float64
	valid := 0
	for i := 0; i < n; i++ {
		t := int(targets[i])
		if t == ignoreIndex {
			continue
		}
		if t < 0 || t >= classes {
			panic(fmt.Sprintf("cross_entropy: target %d out of range [0, %d)", t, classes))
		}
		row := logits[i*classes : (i+1)*classes]
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
		total += maxVal + math.Log(sumExp) - float64(row[t])
		valid++
	}
	if valid == 0 {
		return 0
	}
	return total / float64(valid)
}

// CrossEntropyOp records loss = cross_entropy(logits, targets, ignoreIndex).
// The gradient with respect to the logits is (softmax - onehot) * g / valid
// on contributing rows and exactly zero on ignored rows. Targets take no
// gradient.
type CrossEntropyOp struct {
	logits      *tensor.RawTensor
	targets     *tensor.RawTensor
	ignoreIndex int
	output      *tensor.RawTensor
}

func NewCrossEntropyOp(logits, targets *tensor.RawTensor, ignoreIndex int, output *tensor.RawTensor) *CrossEntropyOp {
	return &CrossEntropyOp{logits: logits, targets: targets, ignoreIndex: ignoreIndex, output: output}
}

func (op *CrossEntropyOp) Backward(gradOutput *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	n, classes := checkCrossEntropyShapes(op.logits, op.targets)

	grad, err := tensor.NewRaw(op.logits.Shape(), op.logits.DType(), op.logits.Device())
	if err != nil {
		panic(fmt.Sprintf("cross_entropy backward: %v", err))
	}

	idx := op.targets.AsInt32()
	switch op.logits.DType() {
	case tensor.Float32:
		crossEntropyBackwardKernel(grad.AsFloat32(), op.logits.AsFloat32(), idx,
			float64(gradOutput.AsFloat32()[0]), n, classes, op.ignoreIndex)
	case tensor.Float64:
		crossEntropyBackwardKernel(grad.AsFloat64(), op.logits.AsFloat64(), idx,
			gradOutput.AsFloat64()[0], n, classes, op.ignoreIndex)
	default:
		panic(fmt.Sprintf("cross_entropy backward: unsupported dtype %s", op.logits.DType()))
	}
	return []*tensor.RawTensor{grad}
}

func crossEntropyBackwardKernel[T float32 | float64](dst, logits []T, targets []int32, g float64, n, classes, ignoreIndex int) {
	valid := 0
	for i := 0; i < n; i++ {
		if int(targets[i]) != ignoreIndex {
			valid++
		}
	}
	if valid == 0 {
		return
	}
	scale := g / float64(valid)

	for i := 0; i < n; i++ {
		t := int(targets[i])
		if t == ignoreIndex {
			continue
		}
		row := logits[i*classes : (i+1)*classes]
		out := dst[i*classes : (i+1)*classes]

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
		for c := 0; c < classes; c++ {
			p := math.Exp(float64(row[c])-maxVal) / sumExp
			if c == t {
				p -= 1
			}
			out[c] = T(p * scale)
		}
	}
}

func checkCrossEntropyShapes(logits, targets *tensor.RawTensor) (n, classes int) {
	ls := logits.Shape()
	ts := targets.Shape()
	if len(ls) != 2 {
		panic(fmt.Sprintf("cross_entropy: logits must be 2D [N, C], got %v", ls))
	}
	if len(ts) != 1 || ts[0] != ls[0] {
		panic(fmt.Sprintf("cross_entropy: targets must be 1D [N=%d], got %v", ls[0], ts))
	}
	if targets.DType() != tensor.Int32 {
		panic(fmt.Sprintf("cross_entropy: targets must be int32, got %s", targets.DType()))
	}
	return ls[0], ls[1]
}

// Inputs reports only the logits; targets are integers and take no gradient.
func (op *CrossEntropyOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.logits} }

func (op *CrossEntropyOp) Output() *tensor.RawTensor { return op.output }
