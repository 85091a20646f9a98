package nn

import (
	"github.com/seqlab-ml/seqlab/internal/tensor"
)

// Embedding maps token ids to dense vectors through a learnable
// [NumEmbed, EmbedDim] table. Gradients scatter-add into the looked-up rows,
// so only rows that appeared in a batch move.
//
// Row 0 is conventionally the padding token; it still receives gradient when
// padded positions reach the loss, which the ignore-index loss prevents.
type Embedding[B tensor.Backend] struct {
	Weight   *Parameter[B]
	NumEmbed int
	EmbedDim int
}

// NewEmbedding creates an embedding table initialized from N(0, 1).
func NewEmbedding[B tensor.Backend](numEmbeddings, embeddingDim int, backend B) *Embedding[B] {
	weight := NormalInit(tensor.Shape{numEmbeddings, embeddingDim}, backend)
	return &Embedding[B]{
		Weight:   NewParameter[B]("embedding.weight", weight),
		NumEmbed: numEmbeddings,
		EmbedDim: embeddingDim,
	}
}

// Forward looks up the embedding row for every index. Indices of any shape
// [...] produce output [..., EmbedDim]. Panics if an index falls outside
// [0, NumEmbed).
func (e *Embedding[B]) Forward(indices *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	return e.Weight.Tensor().Embedding(indices)
}

// Parameters returns the embedding table.
func (e *Embedding[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{e.Weight}
}
