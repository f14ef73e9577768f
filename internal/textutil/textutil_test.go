package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Hello, World! It's a test.")
	assert.Equal(t, []string{"hello", "world", "it's", "a", "test"}, tokens)
}

func TestMeaningfulWordsDropsStopwordsAndShortTokens(t *testing.T) {
	words := MeaningfulWords("The cat sat on the large mat")
	assert.Equal(t, []string{"cat", "sat", "large", "mat"}, words)
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "dragon castle siege", "dragon castle siege", 1.0},
		{"disjoint", "dragon castle", "ocean voyage", 0.0},
		{"both empty", "", "", 1.0},
		{"one empty", "dragon", "", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Overlap(tt.a, tt.b), 1e-9)
		})
	}
}

func TestOverlapPartial(t *testing.T) {
	// {dragon, castle} vs {dragon, ocean}: intersection 1, union 3.
	got := Overlap("dragon castle", "dragon ocean")
	assert.InDelta(t, 1.0/3.0, got, 1e-9)
}

func TestSharedWords(t *testing.T) {
	assert.Equal(t, 2, SharedWords("the dragon guards the castle", "castle dragon lore"))
	assert.Equal(t, 0, SharedWords("", "castle"))
}
