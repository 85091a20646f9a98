package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/seqlab-ml/seqlab/internal/corpus"
	"github.com/seqlab-ml/seqlab/internal/model"
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// WriteSamples dumps the model's predictions for the first n dataset
// examples as aligned token/gold/pred/conf columns, one block per example.
// conf is the softmax probability of the predicted class. Padded positions
// are skipped, so each block is exactly as long as the original (possibly
// truncated) sentence.
//
// Tokens are decoded through the vocabulary's reverse map, so out-of-vocab
// words render as <UNK>, exactly what the model saw.
func WriteSamples[B tensor.Backend](
	w io.Writer,
	tagger *model.Tagger[B],
	dataset *corpus.Dataset,
	vocab *corpus.Vocabulary,
	labels *corpus.LabelEncoder,
	n int,
	backend B,
) error {
	if n > dataset.Len() {
		n = dataset.Len()
	}
	if n <= 0 {
		return fmt.Errorf("no examples to dump")
	}

	// Inference output: dropout must be off.
	tagger.SetTraining(false)

	seqLen := dataset.MaxLen()
	tokens := make([]int32, 0, n*seqLen)
	for i := 0; i < n; i++ {
		tokens = append(tokens, dataset.Example(i).Tokens...)
	}
	batch := tensor.FromSlice(tokens, tensor.Shape{n, seqLen}, backend)

	probs := tagger.Forward(batch).Softmax(2)
	preds := probs.Argmax(2).Data()

	for i := 0; i < n; i++ {
		ex := dataset.Example(i)
		fmt.Fprintf(w, "sample %d\n", i+1)

		tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  token\tgold\tpred\tconf")
		for j := 0; j < seqLen; j++ {
			if ex.Tags[j] == corpus.IgnoreIndex {
				break
			}
			pred := int(preds[i*seqLen+j])
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%.2f\n",
				vocab.Decode(int(ex.Tokens[j])),
				labels.Decode(int(ex.Tags[j])),
				labels.Decode(pred),
				probs.At(i, j, pred))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}
