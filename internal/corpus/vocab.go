package corpus

import (
	"sort"
)

// Reserved vocabulary entries. Padding occupies index 0 so zero-filled token
// buffers are already padded; unknown tokens map to index 1.
const (
	PadToken = "<PAD>"
	UnkToken = "<UNK>"

	PadIndex = 0
	UnkIndex = 1
)

// Vocabulary maps tokens to dense indices and back. Indices 0 and 1 are the
// padding and unknown tokens; real tokens start at 2, ordered by descending
// corpus frequency with first-encountered order breaking ties, so the layout
// is stable across runs over the same data.
//
// The vocabulary is built from the training split only. Tokens that appear
// only in evaluation data encode to UnkIndex, which is the point: evaluation
// should see the same out-of-vocabulary behavior as production.
type Vocabulary struct {
	index  map[string]int
	tokens []string // reverse map, position = index
}

// BuildVocabulary counts tokens across the samples and assigns indices.
func BuildVocabulary(samples []Sample) *Vocabulary {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string

	for _, s := range samples {
		for _, tok := range s.Tokens {
			if counts[tok] == 0 {
				firstSeen[tok] = len(order)
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		return firstSeen[a] < firstSeen[b]
	})

	v := &Vocabulary{
		index:  make(map[string]int, len(order)+2),
		tokens: make([]string, 0, len(order)+2),
	}
	v.add(PadToken)
	v.add(UnkToken)
	for _, tok := range order {
		v.add(tok)
	}
	return v
}

func (v *Vocabulary) add(token string) {
	v.index[token] = len(v.tokens)
	v.tokens = append(v.tokens, token)
}

// Encode returns the token's index, or UnkIndex for tokens outside the
// vocabulary.
func (v *Vocabulary) Encode(token string) int {
	if idx, ok := v.index[token]; ok {
		return idx
	}
	return UnkIndex
}

// Decode returns the token at an index. Out-of-range indices decode to the
// unknown token.
func (v *Vocabulary) Decode(index int) string {
	if index < 0 || index >= len(v.tokens) {
		return UnkToken
	}
	return v.tokens[index]
}

// Contains reports whether the token is in the vocabulary.
func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.index[token]
	return ok
}

// Size returns the number of entries including the two reserved ones.
func (v *Vocabulary) Size() int {
	return len(v.tokens)
}
