// Package metrics computes tagging quality from aligned gold and predicted
// label codes. One Report carries everything both consumers need: the
// training loop reads MacroF1 for its per-evaluation summary line and curve,
// and the final output formats the full per-label precision/recall/F1 table.
// Computing once and presenting twice keeps the two views consistent by
// construction.
package metrics

import (
	"fmt"
	"strings"
)

// LabelMetrics holds one label's counts and derived scores.
type LabelMetrics struct {
	Name      string
	Precision float64
	Recall    float64
	F1        float64
	Support   int // gold occurrences
	predicted int
}

// Report is the evaluation result over a set of compared positions.
type Report struct {
	labels  []LabelMetrics
	total   int
	correct int
}

// Compute builds a report from aligned gold and predicted codes. Codes index
// into labels, which must be in code order. Panics on length mismatch or an
// out-of-range code; both inputs come from the pipeline's own encoder and
// argmax, so either is a programming error.
func Compute(golds, preds []int, labels []string) *Report {
	if len(golds) != len(preds) {
		panic(fmt.Sprintf("metrics: %d golds but %d predictions", len(golds), len(preds)))
	}

	tp := make([]int, len(labels))
	fp := make([]int, len(labels))
	fn := make([]int, len(labels))
	correct := 0

	for i := range golds {
		g, p := golds[i], preds[i]
		if g < 0 || g >= len(labels) {
			panic(fmt.Sprintf("metrics: gold code %d out of range [0, %d)", g, len(labels)))
		}
		if p < 0 || p >= len(labels) {
			panic(fmt.Sprintf("metrics: predicted code %d out of range [0, %d)", p, len(labels)))
		}
		if g == p {
			tp[g]++
			correct++
		} else {
			fn[g]++
			fp[p]++
		}
	}

	r := &Report{total: len(golds), correct: correct}
	for c, name := range labels {
		support := tp[c] + fn[c]
		predicted := tp[c] + fp[c]

		var precision, recall, f1 float64
		if predicted > 0 {
			precision = float64(tp[c]) / float64(predicted)
		}
		if support > 0 {
			recall = float64(tp[c]) / float64(support)
		}
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}
		r.labels = append(r.labels, LabelMetrics{
			Name:      name,
			Precision: precision,
			Recall:    recall,
			F1:        f1,
			Support:   support,
			predicted: predicted,
		})
	}
	return r
}

// MacroF1 averages F1 over labels observed in the golds or the predictions.
// Labels absent from both are excluded, so perfect predictions score exactly
// 1.0 regardless of how many schema labels the evaluation split exercises.
// An empty report scores 0.
func (r *Report) MacroF1() float64 {
	var sum float64
	observed := 0
	for _, l := range r.labels {
		if l.Support == 0 && l.predicted == 0 {
			continue
		}
		sum += l.F1
		observed++
	}
	if observed == 0 {
		return 0
	}
	return sum / float64(observed)
}

// Accuracy is the fraction of compared positions tagged correctly.
func (r *Report) Accuracy() float64 {
	if r.total == 0 {
		return 0
	}
	return float64(r.correct) / float64(r.total)
}

// Total returns the number of compared positions.
func (r *Report) Total() int {
	return r.total
}

// Labels returns per-label metrics in code order.
func (r *Report) Labels() []LabelMetrics {
	out := make([]LabelMetrics, len(r.labels))
	copy(out, r.labels)
	return out
}

// Label returns one label's metrics by name.
func (r *Report) Label(name string) (LabelMetrics, bool) {
	for _, l := range r.labels {
		if l.Name == name {
			return l, true
		}
	}
	return LabelMetrics{}, false
}

// String formats the classification report: one row per label plus accuracy
// and macro-average summary rows.
func (r *Report) String() string {
	nameWidth := len("macro avg")
	for _, l := range r.labels {
		if len(l.Name) > nameWidth {
			nameWidth = len(l.Name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s  %9s  %9s  %9s  %9s\n", nameWidth, "label", "precision", "recall", "f1-score", "support")
	b.WriteString("\n")
	for _, l := range r.labels {
		fmt.Fprintf(&b, "%-*s  %9.4f  %9.4f  %9.4f  %9d\n",
			nameWidth, l.Name, l.Precision, l.Recall, l.F1, l.Support)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-*s  %9s  %9s  %9.4f  %9d\n", nameWidth, "accuracy", "", "", r.Accuracy(), r.total)
	fmt.Fprintf(&b, "%-*s  %9s  %9s  %9.4f  %9d\n", nameWidth, "macro avg", "", "", r.MacroF1(), r.total)
	return b.String()
}
