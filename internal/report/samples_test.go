package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqlab-ml/seqlab/internal/backend/cpu"
	"github.com/seqlab-ml/seqlab/internal/corpus"
	"github.com/seqlab-ml/seqlab/internal/model"
	"github.com/seqlab-ml/seqlab/internal/report"
)

// sampleFixture builds a dataset whose two-token sentences sit inside a
// longer padded window, so the dump has padding to stop at.
func sampleFixture(t *testing.T) (*model.Tagger[*cpu.CPUBackend], *corpus.Dataset, *corpus.Vocabulary, *corpus.LabelEncoder, *cpu.CPUBackend) {
	t.Helper()

	samples := []corpus.Sample{
		{Tokens: []string{"soup", "spoon"}, Tags: []string{"B-FOOD", "O"}},
		{Tokens: []string{"fork", "soup"}, Tags: []string{"O", "B-FOOD"}},
	}
	vocab := corpus.BuildVocabulary(samples)
	labels := corpus.BuildLabelEncoder(samples)
	dataset, err := corpus.NewDataset(samples, vocab, labels, 4)
	require.NoError(t, err)

	backend := cpu.New()
	tagger := model.NewTagger(model.Config{
		VocabSize:  vocab.Size(),
		NumLabels:  labels.NumLabels(),
		HiddenSize: 4,
		NumLayers:  1,
	}, backend)

	return tagger, dataset, vocab, labels, backend
}

func TestWriteSamples(t *testing.T) {
	tagger, dataset, vocab, labels, backend := sampleFixture(t)

	var buf bytes.Buffer
	require.NoError(t, report.WriteSamples(&buf, tagger, dataset, vocab, labels, 2, backend))

	out := buf.String()
	assert.Contains(t, out, "sample 1")
	assert.Contains(t, out, "sample 2")
	assert.Contains(t, out, "token")
	assert.Contains(t, out, "gold")
	assert.Contains(t, out, "pred")
	assert.Contains(t, out, "conf")
	assert.Contains(t, out, "soup")
	assert.Contains(t, out, "B-FOOD")
	assert.Contains(t, out, "0.")

	// Rows stop at the first padded position.
	assert.NotContains(t, out, corpus.PadToken)
}

func TestWriteSamples_ClampsToDatasetSize(t *testing.T) {
	tagger, dataset, vocab, labels, backend := sampleFixture(t)

	var buf bytes.Buffer
	require.NoError(t, report.WriteSamples(&buf, tagger, dataset, vocab, labels, 50, backend))

	out := buf.String()
	assert.Contains(t, out, "sample 2")
	assert.NotContains(t, out, "sample 3")
}

func TestWriteSamples_NoExamples(t *testing.T) {
	tagger, dataset, vocab, labels, backend := sampleFixture(t)

	var buf bytes.Buffer
	err := report.WriteSamples(&buf, tagger, dataset, vocab, labels, 0, backend)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no examples to dump")
}

func TestWriteSamples_UnknownTokensRenderAsUnk(t *testing.T) {
	tagger, _, vocab, labels, backend := sampleFixture(t)

	// A sentence with a word the vocabulary never saw encodes to the
	// unknown index, and the dump decodes it back through the reverse map.
	eval := []corpus.Sample{
		{Tokens: []string{"chopsticks", "soup"}, Tags: []string{"O", "B-FOOD"}},
	}
	dataset, err := corpus.NewDataset(eval, vocab, labels, 4)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteSamples(&buf, tagger, dataset, vocab, labels, 1, backend))

	assert.Contains(t, buf.String(), corpus.UnkToken)
}
