package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildVocabulary_ReservedEntries(t *testing.T) {
	v := BuildVocabulary([]Sample{
		{Tokens: []string{"hello"}, Tags: []string{"O"}},
	})

	assert.Equal(t, PadIndex, v.Encode(PadToken))
	assert.Equal(t, UnkIndex, v.Encode(UnkToken))
	assert.Equal(t, PadToken, v.Decode(0))
	assert.Equal(t, UnkToken, v.Decode(1))
	assert.Equal(t, 3, v.Size())
}

func TestBuildVocabulary_FrequencyOrder(t *testing.T) {
	// "the" appears 3 times, "cat" twice, "sat" once. Indices follow
	// descending frequency after the two reserved entries.
	v := BuildVocabulary([]Sample{
		{Tokens: []string{"the", "cat", "sat"}, Tags: []string{"O", "O", "O"}},
		{Tokens: []string{"the", "cat"}, Tags: []string{"O", "O"}},
		{Tokens: []string{"the"}, Tags: []string{"O"}},
	})

	assert.Equal(t, 2, v.Encode("the"))
	assert.Equal(t, 3, v.Encode("cat"))
	assert.Equal(t, 4, v.Encode("sat"))
}

func TestBuildVocabulary_TieBreaksByFirstSeen(t *testing.T) {
	// "b" and "a" both appear once; "b" comes first in the corpus so it
	// gets the lower index despite sorting after "a" alphabetically.
	v := BuildVocabulary([]Sample{
		{Tokens: []string{"b", "a"}, Tags: []string{"O", "O"}},
	})

	assert.Equal(t, 2, v.Encode("b"))
	assert.Equal(t, 3, v.Encode("a"))
}

func TestVocabulary_EncodeUnknown(t *testing.T) {
	v := BuildVocabulary([]Sample{
		{Tokens: []string{"hello"}, Tags: []string{"O"}},
	})

	assert.Equal(t, UnkIndex, v.Encode("never-seen"))
	assert.False(t, v.Contains("never-seen"))
	assert.True(t, v.Contains("hello"))
}

func TestVocabulary_DecodeRoundTrip(t *testing.T) {
	v := BuildVocabulary([]Sample{
		{Tokens: []string{"one", "two", "three"}, Tags: []string{"O", "O", "O"}},
	})

	for _, tok := range []string{"one", "two", "three"} {
		assert.Equal(t, tok, v.Decode(v.Encode(tok)))
	}
}

func TestVocabulary_DecodeOutOfRange(t *testing.T) {
	v := BuildVocabulary([]Sample{
		{Tokens: []string{"hello"}, Tags: []string{"O"}},
	})

	assert.Equal(t, UnkToken, v.Decode(-1))
	assert.Equal(t, UnkToken, v.Decode(v.Size()))
}

func TestBuildVocabulary_Deterministic(t *testing.T) {
	samples := []Sample{
		{Tokens: []string{"x", "y", "z", "y"}, Tags: []string{"O", "O", "O", "O"}},
		{Tokens: []string{"z", "z"}, Tags: []string{"O", "O"}},
	}

	a := BuildVocabulary(samples)
	b := BuildVocabulary(samples)
	require.Equal(t, a.Size(), b.Size())
	for i := 0; i < a.Size(); i++ {
		assert.Equal(t, a.Decode(i), b.Decode(i), "index %d", i)
	}
}
