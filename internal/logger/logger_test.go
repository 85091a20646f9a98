package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPretty_RendersLevelMessageAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelInfo)

	log.Info("epoch complete", "epoch", 3, "loss", "0.4123")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "epoch complete")
	assert.Contains(t, out, "epoch=3")
	assert.Contains(t, out, "loss=0.4123")
}

func TestPretty_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelWarn)

	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "kept")
}

func TestPretty_WithAttrsPrefixesRecords(t *testing.T) {
	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelInfo).With("run_id", "abc123")

	log.Info("training started")
	assert.Contains(t, buf.String(), "run_id=abc123")
}

func TestPretty_QuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelInfo)

	log.Info("loading", "path", "data/train set.json")
	assert.Contains(t, buf.String(), `path="data/train set.json"`)
}

func TestPrettyHandler_WithGroupQualifiesKeys(t *testing.T) {
	var buf bytes.Buffer
	handler := NewPrettyHandler(&buf, slog.LevelInfo).WithGroup("optim")

	slog.New(handler).Info("step", "lr", "0.001")
	assert.Contains(t, buf.String(), "optim.lr=0.001")
}

func TestJSON_MachineReadable(t *testing.T) {
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)

	log.Info("training started", "epochs", 20)

	out := buf.String()
	assert.Contains(t, out, `"msg":"training started"`)
	assert.Contains(t, out, `"epochs":20`)
}

func TestDiscard_DropsEverything(t *testing.T) {
	assert.NotPanics(t, func() {
		log := Discard().With("k", "v")
		log.Debug("a")
		log.Info("b")
		log.Warn("c")
		log.Error("d")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}
