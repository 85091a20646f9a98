// Package train runs the tagger training loop: every epoch trains over a
// freshly shuffled pass of the training split, every EvalEvery-th epoch
// evaluates on the held-out split, and the collected history feeds the
// learning-curve and report output.
package train

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seqlab-ml/seqlab/internal/autodiff"
	"github.com/seqlab-ml/seqlab/internal/corpus"
	"github.com/seqlab-ml/seqlab/internal/logger"
	"github.com/seqlab-ml/seqlab/internal/metrics"
	"github.com/seqlab-ml/seqlab/internal/model"
	"github.com/seqlab-ml/seqlab/internal/nn"
	"github.com/seqlab-ml/seqlab/internal/optim"
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// Config controls the loop. Zero values take the defaults below.
type Config struct {
	// MaxEpochs is the number of training epochs (default 20). Early
	// stopping may end the run sooner.
	MaxEpochs int

	// EvalEvery evaluates after every n-th epoch (default 10).
	EvalEvery int

	// Patience stops training after this many consecutive evaluations
	// without a macro-F1 improvement. 0 disables early stopping.
	Patience int

	Log logger.Logger
}

func (c *Config) applyDefaults() {
	if c.MaxEpochs == 0 {
		c.MaxEpochs = 20
	}
	if c.EvalEvery == 0 {
		c.EvalEvery = 10
	}
	if c.Log == nil {
		c.Log = logger.Default()
	}
}

// EvalPoint is one evaluation's summary, the unit of the learning curve.
type EvalPoint struct {
	Epoch   int
	MacroF1 float64
	Loss    float64 // mean eval batch loss
}

// Result is what a completed (or early-stopped) run produced.
type Result struct {
	RunID     string
	History   []EvalPoint
	Final     *metrics.Report
	TrainLoss []float64 // mean loss per epoch, index = epoch
	Epochs    int       // epochs actually run
}

// Trainer owns one training run. The backend must be autodiff-capable; the
// loop records the forward pass on its tape, walks it backward and feeds the
// gradients to the optimizer.
type Trainer[B autodiff.BackwardCapable] struct {
	model     *model.Tagger[B]
	criterion *nn.CrossEntropyLoss[B]
	optimizer optim.Optimizer
	trainSet  *corpus.BatchLoader
	evalSet   *corpus.BatchLoader
	labels    []string
	config    Config
	backend   B
}

// NewTrainer wires a run together. trainSet should shuffle, evalSet should
// not; the caller configures the loaders. labels are the tag names in code
// order, i.e. LabelEncoder.Labels().
func NewTrainer[B autodiff.BackwardCapable](
	tagger *model.Tagger[B],
	optimizer optim.Optimizer,
	trainSet, evalSet *corpus.BatchLoader,
	labels []string,
	config Config,
	backend B,
) *Trainer[B] {
	config.applyDefaults()
	return &Trainer[B]{
		model:     tagger,
		criterion: nn.NewCrossEntropyLoss[B](corpus.IgnoreIndex, backend),
		optimizer: optimizer,
		trainSet:  trainSet,
		evalSet:   evalSet,
		labels:    labels,
		config:    config,
		backend:   backend,
	}
}

// Run executes the loop. Cancelling the context ends the run after the
// current epoch; the partial result is still returned alongside the
// context's error.
//
// A final evaluation always runs after the last epoch, so Result.Final and
// the last history point reflect the model that training actually produced
// even when MaxEpochs is not a multiple of EvalEvery.
func (t *Trainer[B]) Run(ctx context.Context) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	log := t.config.Log.With("run_id", result.RunID)

	log.Info("training started",
		"epochs", t.config.MaxEpochs,
		"eval_every", t.config.EvalEvery,
		"train_batches", t.trainSet.NumBatches(),
		"eval_batches", t.evalSet.NumBatches(),
		"backend", t.backend.Name())

	bestF1 := -1.0
	stale := 0
	lastEvalEpoch := 0

	for epoch := 0; epoch < t.config.MaxEpochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("training interrupted: %w", err)
		}

		start := time.Now()
		loss := t.trainEpoch()
		result.TrainLoss = append(result.TrainLoss, loss)
		result.Epochs = epoch + 1

		log.Info("epoch complete",
			"epoch", epoch+1,
			"of", t.config.MaxEpochs,
			"loss", fmt.Sprintf("%.4f", loss),
			"elapsed", time.Since(start).Round(time.Millisecond))

		if (epoch+1)%t.config.EvalEvery != 0 {
			continue
		}

		report, evalLoss := t.Evaluate()
		lastEvalEpoch = epoch + 1
		f1 := report.MacroF1()
		result.History = append(result.History, EvalPoint{Epoch: epoch + 1, MacroF1: f1, Loss: evalLoss})
		result.Final = report
		log.Info("evaluation",
			"epoch", epoch+1,
			"loss", fmt.Sprintf("%.4f", evalLoss),
			"macro_f1", fmt.Sprintf("%.4f", f1))

		if f1 > bestF1 {
			bestF1 = f1
			stale = 0
		} else {
			stale++
		}
		if t.config.Patience > 0 && stale >= t.config.Patience {
			log.Info("early stop",
				"epoch", epoch+1,
				"stale_evaluations", stale,
				"best_macro_f1", fmt.Sprintf("%.4f", bestF1))
			break
		}
	}

	if lastEvalEpoch != result.Epochs {
		report, evalLoss := t.Evaluate()
		f1 := report.MacroF1()
		result.History = append(result.History, EvalPoint{Epoch: result.Epochs, MacroF1: f1, Loss: evalLoss})
		result.Final = report
		log.Info("final evaluation",
			"epoch", result.Epochs,
			"loss", fmt.Sprintf("%.4f", evalLoss),
			"macro_f1", fmt.Sprintf("%.4f", f1))
	}

	return result, nil
}

// trainEpoch runs one full pass over the training loader and returns the
// mean batch loss.
func (t *Trainer[B]) trainEpoch() float64 {
	t.model.SetTraining(true)
	numLabels := t.model.Config().NumLabels
	tape := t.backend.GetTape()

	var total float64
	batches := t.trainSet.Epoch()
	for _, batch := range batches {
		tokens := tensor.FromSlice(batch.Tokens, tensor.Shape{batch.Size, batch.SeqLen}, t.backend)
		tags := tensor.FromSlice(batch.Tags, tensor.Shape{batch.Size * batch.SeqLen}, t.backend)

		t.optimizer.ZeroGrad()
		tape.StartRecording()

		logits := t.model.Forward(tokens)
		flat := logits.Reshape(tensor.Shape{batch.Size * batch.SeqLen, numLabels})
		loss := t.criterion.Forward(flat, tags)

		grads := autodiff.Backward(loss)
		tape.StopRecording()
		tape.Clear()

		t.optimizer.Step(grads)
		total += float64(loss.Item())
	}
	return total / float64(len(batches))
}

// Evaluate scores the evaluation split with dropout disabled and nothing
// taped, comparing argmax predictions against gold codes at every position
// whose gold is not the ignore sentinel. Positions are collected in
// encounter order: batch by batch, row by row, left to right. The second
// return is the mean eval batch loss.
func (t *Trainer[B]) Evaluate() (*metrics.Report, float64) {
	t.model.SetTraining(false)
	defer t.model.SetTraining(true)

	numLabels := t.model.Config().NumLabels

	var golds, preds []int
	var total float64
	batches := t.evalSet.Epoch()
	for _, batch := range batches {
		tokens := tensor.FromSlice(batch.Tokens, tensor.Shape{batch.Size, batch.SeqLen}, t.backend)
		tags := tensor.FromSlice(batch.Tags, tensor.Shape{batch.Size * batch.SeqLen}, t.backend)

		logits := t.model.Forward(tokens)
		flat := logits.Reshape(tensor.Shape{batch.Size * batch.SeqLen, numLabels})
		total += float64(t.criterion.Forward(flat, tags).Item())

		predicted := logits.Argmax(2).Data()
		for i, gold := range batch.Tags {
			if gold == corpus.IgnoreIndex {
				continue
			}
			golds = append(golds, int(gold))
			preds = append(preds, int(predicted[i]))
		}
	}
	return metrics.Compute(golds, preds, t.labels), total / float64(len(batches))
}
