package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML run configuration. Numeric and boolean
// fields are pointers so an absent key is distinguishable from an explicit
// zero. Precedence is flag defaults < config file < flags set on the
// command line.
type fileConfig struct {
	Train string `yaml:"train"`
	Eval  string `yaml:"eval"`

	Epochs    *int64 `yaml:"epochs"`
	EvalEvery *int64 `yaml:"eval_every"`
	Patience  *int64 `yaml:"patience"`
	BatchSize *int64 `yaml:"batch_size"`
	Seed      *int64 `yaml:"seed"`

	HiddenSize    *int64   `yaml:"hidden_size"`
	NumLayers     *int64   `yaml:"num_layers"`
	Bidirectional *bool    `yaml:"bidirectional"`
	Dropout       *float64 `yaml:"dropout"`
	MaxLen        *int64   `yaml:"max_len"`

	LearningRate *float64 `yaml:"learning_rate"`
	Optimizer    string   `yaml:"optimizer"`

	Device      string `yaml:"device"`
	OutDir      string `yaml:"out_dir"`
	SampleCount *int64 `yaml:"sample_count"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
}

// loadFileConfig reads and parses the YAML config at path.
func loadFileConfig(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyFileConfig copies config file values into opts for every flag the
// user did not set explicitly.
func applyFileConfig(c *cli.Command, cfg fileConfig, opts *trainOptions) {
	if cfg.Train != "" && !c.IsSet("train") {
		opts.trainPath = cfg.Train
	}
	if cfg.Eval != "" && !c.IsSet("eval") {
		opts.evalPath = cfg.Eval
	}
	if cfg.Epochs != nil && !c.IsSet("epochs") {
		opts.epochs = *cfg.Epochs
	}
	if cfg.EvalEvery != nil && !c.IsSet("eval-every") {
		opts.evalEvery = *cfg.EvalEvery
	}
	if cfg.Patience != nil && !c.IsSet("patience") {
		opts.patience = *cfg.Patience
	}
	if cfg.BatchSize != nil && !c.IsSet("batch-size") {
		opts.batchSize = *cfg.BatchSize
	}
	if cfg.Seed != nil && !c.IsSet("seed") {
		opts.seed = *cfg.Seed
	}
	if cfg.HiddenSize != nil && !c.IsSet("hidden") {
		opts.hiddenSize = *cfg.HiddenSize
	}
	if cfg.NumLayers != nil && !c.IsSet("layers") {
		opts.numLayers = *cfg.NumLayers
	}
	if cfg.Bidirectional != nil && !c.IsSet("bidirectional") {
		opts.bidirectional = *cfg.Bidirectional
	}
	if cfg.Dropout != nil && !c.IsSet("dropout") {
		opts.dropout = *cfg.Dropout
	}
	if cfg.MaxLen != nil && !c.IsSet("max-len") {
		opts.maxLen = *cfg.MaxLen
	}
	if cfg.LearningRate != nil && !c.IsSet("lr") {
		opts.learningRate = *cfg.LearningRate
	}
	if cfg.Optimizer != "" && !c.IsSet("optimizer") {
		opts.optimizer = cfg.Optimizer
	}
	if cfg.Device != "" && !c.IsSet("device") {
		opts.device = cfg.Device
	}
	if cfg.OutDir != "" && !c.IsSet("out") {
		opts.outDir = cfg.OutDir
	}
	if cfg.SampleCount != nil && !c.IsSet("samples") {
		opts.sampleCount = *cfg.SampleCount
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		opts.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		opts.logFormat = cfg.LogFormat
	}
}
