package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookforge/internal/model"
)

const characterHeavyChapter = `Elena felt a deep love for her brother Marcus, though anger
simmered beneath the surface. "You never understood me," she said quietly.
Marcus replied with a gentle smile, but fear crept into his heart.

Their friendship with the old mentor had changed everything. Elena realized
she had grown, had learned what family truly meant. Tears came as grief and
hope mixed together. She felt the longing for the mother they had lost.

The personality clash between them had always been there. Elena was stubborn
and proud, Marcus was kind and curious. Their relationship was the heart of
this story, and their emotions ran deep. Love and regret, joy and sorrow,
all of it felt real in that quiet room.`

func TestAnalyzeShortContentReturnsMarker(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	got := a.Analyze("too short", "Chapter One")

	assert.False(t, got.AnalysisPossible)
	assert.Equal(t, len("too short"), got.ContentLength)
	assert.Zero(t, got.WordCount)
}

func TestAnalyzeShortContentTrimsWhitespace(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	padded := "   brief   " + strings.Repeat(" ", 100)
	got := a.Analyze(padded, "")
	assert.False(t, got.AnalysisPossible)
}

func TestAnalyzeCharacterHeavyChapter(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	got := a.Analyze(characterHeavyChapter, "A Family Divided")

	require.True(t, got.AnalysisPossible)
	assert.Greater(t, got.WordCount, 100)
	assert.Greater(t, got.SentenceCount, 5)
	assert.Equal(t, 3, got.ParagraphCount)

	// Character keywords dominate this text.
	char := got.Themes[model.ThemeCharacter]
	assert.Greater(t, char.Score, got.Themes[model.ThemeSetting].Score)
	assert.Equal(t, model.ThemeCharacter, got.Focus.Primary)

	assert.True(t, got.Narrative.HasDialogue)
	assert.True(t, got.Narrative.EmotionalContent)
	assert.Contains(t, got.Style, "dialogue-driven")
	assert.Contains(t, got.Style, "emotional")
}

func TestAnalyzeProperNouns(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	got := a.Analyze(characterHeavyChapter, "")

	require.True(t, got.AnalysisPossible)
	assert.Contains(t, got.ProperNouns, "Marcus")
}

func TestProminenceCapsAtOne(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	// 25 occurrences of a single character keyword: score 25, prominence capped.
	text := strings.Repeat("love and friendship mattered here. ", 25)
	got := a.Analyze(text, "")

	require.True(t, got.AnalysisPossible)
	char := got.Themes[model.ThemeCharacter]
	assert.GreaterOrEqual(t, char.Score, 20)
	assert.Equal(t, 1.0, char.Prominence)
}

func TestLexicalDiversityBounds(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())

	repetitive := strings.Repeat("castle castle castle castle castle castle castle. ", 5)
	got := a.Analyze(repetitive, "")
	require.True(t, got.AnalysisPossible)
	assert.Less(t, got.LexicalDiversity, 0.1)

	varied := a.Analyze(characterHeavyChapter, "")
	assert.Greater(t, varied.LexicalDiversity, got.LexicalDiversity)
}

func TestConfidenceBuckets(t *testing.T) {
	tests := []struct {
		name      string
		wordCount int
		diversity float64
		unique    int
		want      float64
	}{
		{"tiny flat text", 50, 0.0, 10, 0.2},
		{"long rich text", 1200, 1.0, 150, 1.0},
		{"medium text", 600, 0.5, 80, 0.65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := confidence(tt.wordCount, tt.diversity, tt.unique)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	first := a.Analyze(characterHeavyChapter, "A Family Divided")
	second := a.Analyze(characterHeavyChapter, "A Family Divided")
	assert.Equal(t, first, second)
}

func TestRepeatedPhrases(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	text := strings.Repeat("The silver dragon circled the ruined tower again and again, and the silver dragon roared. ", 3)
	got := a.Analyze(text, "")

	require.True(t, got.AnalysisPossible)
	assert.Contains(t, got.KeyPhrases, "silver dragon")
}
