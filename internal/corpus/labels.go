package corpus

import (
	"fmt"
	"sort"
)

// LabelEncoder is a reversible mapping between tag strings and class codes
// 0..NumLabels-1, assigned in sorted tag order.
//
// Unlike the token vocabulary it is built over every split, train and
// evaluation together: an evaluation-only tag is not an out-of-vocabulary
// condition to soften but a schema the model must be able to score.
type LabelEncoder struct {
	index  map[string]int
	labels []string
}

// BuildLabelEncoder collects the tag set across all given splits and assigns
// codes in sorted order.
func BuildLabelEncoder(splits ...[]Sample) *LabelEncoder {
	seen := make(map[string]bool)
	for _, samples := range splits {
		for _, s := range samples {
			for _, tag := range s.Tags {
				seen[tag] = true
			}
		}
	}

	labels := make([]string, 0, len(seen))
	for tag := range seen {
		labels = append(labels, tag)
	}
	sort.Strings(labels)

	index := make(map[string]int, len(labels))
	for i, tag := range labels {
		index[tag] = i
	}
	return &LabelEncoder{index: index, labels: labels}
}

// Encode returns the tag's class code. A tag outside the known set is a
// data error the caller must treat as fatal: silently mapping it would train
// against a wrong gold label.
func (e *LabelEncoder) Encode(tag string) (int, error) {
	code, ok := e.index[tag]
	if !ok {
		return 0, fmt.Errorf("unknown tag %q", tag)
	}
	return code, nil
}

// Decode returns the tag for a class code. Panics on an out-of-range code;
// codes come from the encoder or from argmax over NumLabels logits, so a bad
// one is a programming error.
func (e *LabelEncoder) Decode(code int) string {
	if code < 0 || code >= len(e.labels) {
		panic(fmt.Sprintf("label code %d out of range [0, %d)", code, len(e.labels)))
	}
	return e.labels[code]
}

// NumLabels returns the number of distinct tags.
func (e *LabelEncoder) NumLabels() int {
	return len(e.labels)
}

// Labels returns the tags in code order.
func (e *LabelEncoder) Labels() []string {
	out := make([]string, len(e.labels))
	copy(out, e.labels)
	return out
}
