package corpus

import (
	"fmt"
)

// IgnoreIndex marks padded tag positions. It is negative so it can never
// collide with a class code, and the loss and metrics skip any position
// carrying it.
const IgnoreIndex = -100

// Example is one encoded sample: token indices and tag codes, both exactly
// maxLen long. Token padding is PadIndex; tag padding is IgnoreIndex.
type Example struct {
	Tokens []int32
	Tags   []int32
}

// Dataset holds encoded examples of uniform length.
type Dataset struct {
	examples []Example
	maxLen   int
}

// NewDataset encodes samples to fixed length maxLen: longer sequences are
// truncated, shorter ones right-padded. An unknown tag in any sample is an
// error; unknown tokens silently become UnkIndex.
func NewDataset(samples []Sample, vocab *Vocabulary, labels *LabelEncoder, maxLen int) (*Dataset, error) {
	if maxLen <= 0 {
		return nil, fmt.Errorf("max length must be positive, got %d", maxLen)
	}

	examples := make([]Example, 0, len(samples))
	for i, s := range samples {
		ex, err := encodeSample(s, vocab, labels, maxLen)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		examples = append(examples, ex)
	}
	return &Dataset{examples: examples, maxLen: maxLen}, nil
}

func encodeSample(s Sample, vocab *Vocabulary, labels *LabelEncoder, maxLen int) (Example, error) {
	n := len(s.Tokens)
	if n > maxLen {
		n = maxLen
	}

	ex := Example{
		Tokens: make([]int32, maxLen),
		Tags:   make([]int32, maxLen),
	}
	for i := 0; i < n; i++ {
		ex.Tokens[i] = int32(vocab.Encode(s.Tokens[i]))
		code, err := labels.Encode(s.Tags[i])
		if err != nil {
			return Example{}, err
		}
		ex.Tags[i] = int32(code)
	}
	// Token padding is already 0 == PadIndex; tag padding needs the sentinel.
	for i := n; i < maxLen; i++ {
		ex.Tags[i] = IgnoreIndex
	}
	return ex, nil
}

// Len returns the number of examples.
func (d *Dataset) Len() int {
	return len(d.examples)
}

// MaxLen returns the uniform sequence length.
func (d *Dataset) MaxLen() int {
	return d.maxLen
}

// Example returns the i-th encoded example.
func (d *Dataset) Example(i int) Example {
	return d.examples[i]
}
