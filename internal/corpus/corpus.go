// Package corpus handles the data side of tagger training: parsing annotated
// token/tag samples from JSON, building the token vocabulary and the label
// encoder, encoding samples into fixed-length integer examples, and batching
// them for the training loop.
package corpus

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
)

// Sample is one annotated sentence: parallel token and tag sequences of
// equal length.
type Sample struct {
	Tokens []string `json:"tokens"`
	Tags   []string `json:"tags"`
}

// fileFormat is the on-disk shape: {"samples": [{"tokens": [...], "tags": [...]}]}.
type fileFormat struct {
	Samples []Sample `json:"samples"`
}

// Load reads and validates a sample file. Any malformed input (unreadable
// file, bad JSON, token/tag length mismatch, empty sample list) is an error;
// the caller is expected to treat it as fatal.
func Load(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	samples, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	return samples, nil
}

// Parse decodes and validates samples from a reader.
func Parse(r io.Reader) ([]Sample, error) {
	var file fileFormat
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if len(file.Samples) == 0 {
		return nil, fmt.Errorf("no samples found")
	}
	for i, s := range file.Samples {
		if len(s.Tokens) != len(s.Tags) {
			return nil, fmt.Errorf("sample %d: %d tokens but %d tags", i, len(s.Tokens), len(s.Tags))
		}
	}
	return file.Samples, nil
}
