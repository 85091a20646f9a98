package autodiff

import (
	"fmt"

	"github.com/seqlab-ml/seqlab/internal/autodiff/ops"
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// GradientTape records operations during the forward pass and replays them in
// reverse to compute gradients. Recording is off until StartRecording; a
// training step is StartRecording, forward, Backward, Clear.
//
// The tape is not safe for concurrent use. One training loop owns one tape.
type GradientTape struct {
	operations []ops.Operation
	recording  bool
}

// NewGradientTape returns a tape with recording disabled.
func NewGradientTape() *GradientTape {
	return &GradientTape{operations: make([]ops.Operation, 0, 64)}
}

// StartRecording enables recording of subsequent operations.
func (t *GradientTape) StartRecording() { t.recording = true }

// StopRecording disables recording. Already-recorded operations are kept.
func (t *GradientTape) StopRecording() { t.recording = false }

// IsRecording reports whether operations are currently being recorded.
func (t *GradientTape) IsRecording() bool { return t.recording }

// Record appends an operation if recording is enabled.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int { return len(t.operations) }

// Clear drops all recorded operations. Recording state is preserved so a
// loop can Clear between steps without re-arming the tape.
func (t *GradientTape) Clear() { t.operations = t.operations[:0] }

// Backward walks the tape in reverse from outputGrad, applying each
// operation's chain rule and accumulating gradients for tensors that feed
// more than one operation. Recording is suspended for the duration so the
// gradient arithmetic itself is not taped.
//
// Returns a map from each reachable tensor to its accumulated gradient.
func (t *GradientTape) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) map[*tensor.RawTensor]*tensor.RawTensor {
	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	if len(t.operations) == 0 {
		return grads
	}

	wasRecording := t.recording
	t.recording = false
	defer func() { t.recording = wasRecording }()

	last := t.operations[len(t.operations)-1]
	grads[last.Output()] = outputGrad

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]

		var inputGrads []*tensor.RawTensor
		if multi, ok := op.(ops.MultiOutputOperation); ok {
			gradOutputs, any := collectOutputGrads(multi.Outputs(), grads)
			if !any {
				continue
			}
			inputGrads = multi.BackwardMulti(gradOutputs, backend)
		} else {
			gradOutput, ok := grads[op.Output()]
			if !ok {
				continue
			}
			inputGrads = op.Backward(gradOutput, backend)
		}

		for j, input := range op.Inputs() {
			if existing, ok := grads[input]; ok {
				grads[input] = backend.Add(existing, inputGrads[j])
			} else {
				grads[input] = inputGrads[j]
			}
		}
	}

	return grads
}

// collectOutputGrads gathers the gradient for each output of a multi-output
// operation, zero-filling outputs no gradient reached. The second result is
// false when no output has a gradient at all.
func collectOutputGrads(outputs []*tensor.RawTensor, grads map[*tensor.RawTensor]*tensor.RawTensor) ([]*tensor.RawTensor, bool) {
	gradOutputs := make([]*tensor.RawTensor, len(outputs))
	any := false
	for j, out := range outputs {
		if g, ok := grads[out]; ok {
			gradOutputs[j] = g
			any = true
		}
	}
	if !any {
		return nil, false
	}
	for j, out := range outputs {
		if gradOutputs[j] != nil {
			continue
		}
		zero, err := tensor.NewRaw(out.Shape(), out.DType(), out.Device())
		if err != nil {
			panic(fmt.Sprintf("backward: %v", err))
		}
		gradOutputs[j] = zero
	}
	return gradOutputs, true
}
