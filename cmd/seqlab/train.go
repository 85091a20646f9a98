package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/seqlab-ml/seqlab/internal/autodiff"
	"github.com/seqlab-ml/seqlab/internal/backend"
	"github.com/seqlab-ml/seqlab/internal/backend/cpu"
	"github.com/seqlab-ml/seqlab/internal/corpus"
	"github.com/seqlab-ml/seqlab/internal/logger"
	"github.com/seqlab-ml/seqlab/internal/model"
	"github.com/seqlab-ml/seqlab/internal/nn"
	"github.com/seqlab-ml/seqlab/internal/optim"
	"github.com/seqlab-ml/seqlab/internal/report"
	"github.com/seqlab-ml/seqlab/internal/train"
)

// trainBackend is the concrete backend stack the CLI runs on: autodiff
// recording over the CPU kernels.
type trainBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

// trainOptions collects every knob on the train command. Flags write here
// through Destination pointers; an optional config file fills in whatever
// the command line left alone.
type trainOptions struct {
	trainPath  string
	evalPath   string
	configPath string

	epochs    int64
	evalEvery int64
	patience  int64
	batchSize int64
	seed      int64

	hiddenSize    int64
	numLayers     int64
	bidirectional bool
	dropout       float64
	maxLen        int64

	learningRate float64
	optimizer    string

	device      string
	outDir      string
	sampleCount int64
	logLevel    string
	logFormat   string
}

func trainCmd() *cli.Command {
	opts := &trainOptions{}
	return &cli.Command{
		Name:  "train",
		Usage: "Train a tagger on an annotated corpus and report evaluation metrics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "train",
				Usage:       "training split as JSON `FILE`",
				Destination: &opts.trainPath,
			},
			&cli.StringFlag{
				Name:        "eval",
				Usage:       "evaluation split as JSON `FILE`",
				Destination: &opts.evalPath,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "YAML config `FILE`; explicit flags win over it",
				Destination: &opts.configPath,
			},
			&cli.IntFlag{
				Name:        "epochs",
				Value:       20,
				Usage:       "number of training epochs",
				Destination: &opts.epochs,
			},
			&cli.IntFlag{
				Name:        "eval-every",
				Value:       10,
				Usage:       "evaluate every `N` epochs",
				Destination: &opts.evalEvery,
			},
			&cli.IntFlag{
				Name:        "patience",
				Value:       0,
				Usage:       "stop after `N` evaluations without macro-F1 improvement, 0 disables",
				Destination: &opts.patience,
			},
			&cli.IntFlag{
				Name:        "batch-size",
				Value:       corpus.DefaultBatchSize,
				Usage:       "examples per batch",
				Destination: &opts.batchSize,
			},
			&cli.IntFlag{
				Name:        "hidden",
				Value:       128,
				Usage:       "hidden size, also the embedding dimension",
				Destination: &opts.hiddenSize,
			},
			&cli.IntFlag{
				Name:        "layers",
				Value:       1,
				Usage:       "number of stacked recurrent layers",
				Destination: &opts.numLayers,
			},
			&cli.BoolFlag{
				Name:        "bidirectional",
				Value:       true,
				Usage:       "run the encoder in both directions",
				Destination: &opts.bidirectional,
			},
			&cli.FloatFlag{
				Name:        "dropout",
				Value:       0.8,
				Usage:       "dropout probability before the projection",
				Destination: &opts.dropout,
			},
			&cli.IntFlag{
				Name:        "max-len",
				Value:       50,
				Usage:       "sequence length; longer sentences are truncated, shorter ones padded",
				Destination: &opts.maxLen,
			},
			&cli.FloatFlag{
				Name:        "lr",
				Value:       0.001,
				Usage:       "learning rate",
				Destination: &opts.learningRate,
			},
			&cli.StringFlag{
				Name:        "optimizer",
				Value:       "adam",
				Usage:       "optimizer: adam or sgd",
				Destination: &opts.optimizer,
			},
			&cli.StringFlag{
				Name:        "device",
				Value:       "cpu",
				Usage:       "compute device: cpu, cuda, webgpu or auto",
				Destination: &opts.device,
			},
			&cli.StringFlag{
				Name:        "out",
				Value:       "out",
				Usage:       "output `DIR` for the curve plot and the report",
				Destination: &opts.outDir,
			},
			&cli.IntFlag{
				Name:        "samples",
				Value:       10,
				Usage:       "evaluation examples to dump with predictions, 0 disables",
				Destination: &opts.sampleCount,
			},
			&cli.IntFlag{
				Name:        "seed",
				Value:       42,
				Usage:       "seed for batch shuffling",
				Destination: &opts.seed,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Value:       "info",
				Usage:       "log level: debug, info, warn or error",
				Destination: &opts.logLevel,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Value:       "pretty",
				Usage:       "log format: pretty or json",
				Destination: &opts.logFormat,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if opts.configPath != "" {
				cfg, err := loadFileConfig(opts.configPath)
				if err != nil {
					return err
				}
				applyFileConfig(c, cfg, opts)
			}
			return runTraining(ctx, opts)
		},
	}
}

func runTraining(ctx context.Context, opts *trainOptions) error {
	log, err := buildLogger(opts.logFormat, opts.logLevel)
	if err != nil {
		return err
	}
	if opts.trainPath == "" || opts.evalPath == "" {
		return fmt.Errorf("both --train and --eval are required")
	}
	if opts.epochs <= 0 {
		return fmt.Errorf("epochs must be positive, got %d", opts.epochs)
	}

	device, note, err := backend.Resolve(opts.device)
	if err != nil {
		return err
	}
	if note != "" {
		log.Warn(note)
	}
	log.Info("backend ready", "device", device.String(), "cpu", backend.CPUDescription())

	trainSamples, err := corpus.Load(opts.trainPath)
	if err != nil {
		return err
	}
	evalSamples, err := corpus.Load(opts.evalPath)
	if err != nil {
		return err
	}
	log.Info("corpus loaded",
		"train_samples", len(trainSamples),
		"eval_samples", len(evalSamples))

	// Vocabulary comes from the train split only; labels from both, so an
	// eval-only tag still gets a code instead of failing mid-run.
	vocab := corpus.BuildVocabulary(trainSamples)
	labels := corpus.BuildLabelEncoder(trainSamples, evalSamples)
	log.Info("vocabulary built", "tokens", vocab.Size(), "labels", labels.NumLabels())

	maxLen := int(opts.maxLen)
	trainSet, err := corpus.NewDataset(trainSamples, vocab, labels, maxLen)
	if err != nil {
		return fmt.Errorf("encode train split: %w", err)
	}
	evalSet, err := corpus.NewDataset(evalSamples, vocab, labels, maxLen)
	if err != nil {
		return fmt.Errorf("encode eval split: %w", err)
	}

	be := autodiff.New(cpu.New())

	modelCfg := model.Config{
		VocabSize:     vocab.Size(),
		NumLabels:     labels.NumLabels(),
		HiddenSize:    int(opts.hiddenSize),
		NumLayers:     int(opts.numLayers),
		Bidirectional: opts.bidirectional,
		Dropout:       float32(opts.dropout),
	}
	if err := modelCfg.Validate(); err != nil {
		return fmt.Errorf("model config: %w", err)
	}
	tagger := model.NewTagger(modelCfg, be)

	optimizer, err := buildOptimizer(opts, tagger.Parameters(), be)
	if err != nil {
		return err
	}

	trainLoader := corpus.NewBatchLoader(trainSet, int(opts.batchSize), true, opts.seed)
	evalLoader := corpus.NewBatchLoader(evalSet, int(opts.batchSize), false, opts.seed)

	trainer := train.NewTrainer(tagger, optimizer, trainLoader, evalLoader, labels.Labels(), train.Config{
		MaxEpochs: int(opts.epochs),
		EvalEvery: int(opts.evalEvery),
		Patience:  int(opts.patience),
		Log:       log,
	}, be)

	result, err := trainer.Run(ctx)
	if err != nil {
		return err
	}
	return writeArtifacts(opts, log, result, tagger, evalSet, vocab, labels, be)
}

func buildLogger(format, level string) (logger.Logger, error) {
	lvl := logger.ParseLevel(level)
	switch format {
	case "pretty", "":
		return logger.Pretty(os.Stderr, lvl), nil
	case "json":
		return logger.JSON(os.Stderr, lvl), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want pretty or json)", format)
	}
}

func buildOptimizer(opts *trainOptions, params []*nn.Parameter[trainBackend], be trainBackend) (optim.Optimizer, error) {
	lr := float32(opts.learningRate)
	switch opts.optimizer {
	case "adam", "":
		return optim.NewAdam(params, optim.AdamConfig{LR: lr}, be), nil
	case "sgd":
		return optim.NewSGD(params, optim.SGDConfig{LR: lr}, be), nil
	default:
		return nil, fmt.Errorf("unknown optimizer %q (want adam or sgd)", opts.optimizer)
	}
}

func writeArtifacts(
	opts *trainOptions,
	log logger.Logger,
	result *train.Result,
	tagger *model.Tagger[trainBackend],
	evalSet *corpus.Dataset,
	vocab *corpus.Vocabulary,
	labels *corpus.LabelEncoder,
	be trainBackend,
) error {
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	curvePath := filepath.Join(opts.outDir, "macro_f1.png")
	if err := report.WriteCurve(curvePath, result.History); err != nil {
		return fmt.Errorf("write curve: %w", err)
	}
	log.Info("curve written", "path", curvePath)

	if opts.sampleCount > 0 {
		fmt.Println()
		if err := report.WriteSamples(os.Stdout, tagger, evalSet, vocab, labels, int(opts.sampleCount), be); err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
	}

	last := result.History[len(result.History)-1]
	text := fmt.Sprintf("final eval loss: %.4f\n\n%s", last.Loss, result.Final.String())
	fmt.Println(text)

	reportPath := filepath.Join(opts.outDir, "report.txt")
	if err := os.WriteFile(reportPath, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Info("report written", "path", reportPath, "macro_f1", result.Final.MacroF1())
	return nil
}
