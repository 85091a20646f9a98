package corpus

import (
	"fmt"
	"math/rand"
)

// DefaultBatchSize is used when a loader is configured with batch size 0.
const DefaultBatchSize = 32

// Batch is a contiguous group of examples, flattened row-major so it can be
// viewed directly as [Size, SeqLen] tensors.
type Batch struct {
	Tokens []int32 // Size * SeqLen token indices
	Tags   []int32 // Size * SeqLen tag codes with IgnoreIndex padding
	Size   int
	SeqLen int
}

// BatchLoader slices a dataset into batches. A shuffling loader draws a
// fresh permutation every epoch from its own seeded source, so epochs visit
// different orders while runs with the same seed stay reproducible. A
// non-shuffling loader yields dataset order, which keeps evaluation output
// aligned with the input file.
//
// The final batch keeps its short tail rather than dropping it; every
// example is seen every epoch.
type BatchLoader struct {
	dataset   *Dataset
	batchSize int
	shuffle   bool
	rng       *rand.Rand
}

// NewBatchLoader creates a loader. A batchSize of 0 takes DefaultBatchSize;
// negative sizes panic.
func NewBatchLoader(dataset *Dataset, batchSize int, shuffle bool, seed int64) *BatchLoader {
	if batchSize < 0 {
		panic(fmt.Sprintf("batch size must not be negative, got %d", batchSize))
	}
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	return &BatchLoader{
		dataset:   dataset,
		batchSize: batchSize,
		shuffle:   shuffle,
		rng:       rand.New(rand.NewSource(seed)), //nolint:gosec // reproducible shuffling, not crypto
	}
}

// Epoch materializes one epoch's batches. Shuffling loaders reshuffle on
// every call.
func (l *BatchLoader) Epoch() []Batch {
	n := l.dataset.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if l.shuffle {
		l.rng.Shuffle(n, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	seqLen := l.dataset.MaxLen()
	batches := make([]Batch, 0, (n+l.batchSize-1)/l.batchSize)
	for start := 0; start < n; start += l.batchSize {
		end := start + l.batchSize
		if end > n {
			end = n
		}
		size := end - start

		b := Batch{
			Tokens: make([]int32, 0, size*seqLen),
			Tags:   make([]int32, 0, size*seqLen),
			Size:   size,
			SeqLen: seqLen,
		}
		for _, idx := range order[start:end] {
			ex := l.dataset.Example(idx)
			b.Tokens = append(b.Tokens, ex.Tokens...)
			b.Tags = append(b.Tags, ex.Tags...)
		}
		batches = append(batches, b)
	}
	return batches
}

// NumBatches returns the batch count per epoch, the short tail included.
func (l *BatchLoader) NumBatches() int {
	n := l.dataset.Len()
	return (n + l.batchSize - 1) / l.batchSize
}

// BatchSize returns the configured batch size.
func (l *BatchLoader) BatchSize() int {
	return l.batchSize
}
