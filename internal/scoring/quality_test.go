package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookforge/internal/model"
)

func testContext() model.ChapterContext {
	return model.ChapterContext{
		Title:   "The Siege of Ravenholt",
		Content: "The castle walls shook as the siege engines fired. Mira watched from the tower, wondering whether her brother would survive the battle below.",
		Genre:   "fantasy",
	}
}

func TestQualityWeightsSumToOne(t *testing.T) {
	w := DefaultConfig().Quality
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
}

func TestQualityScoreBounds(t *testing.T) {
	s := NewQualityScorer(DefaultConfig())
	questions := []model.CandidateQuestion{
		{QuestionText: "What drives Mira to stay in the tower during the siege?", QuestionType: model.QuestionTypeCharacter, Difficulty: model.DifficultyMedium},
		{QuestionText: "", QuestionType: model.QuestionType("bogus")},
		{QuestionText: "what happens in this chapter?", QuestionType: model.QuestionTypeGeneral},
		{QuestionText: "x?!?!?!...", QuestionType: model.QuestionTypePlot},
	}
	for _, q := range questions {
		score := s.Score(q, testContext())
		assert.GreaterOrEqual(t, score, 0.0, "question %q", q.QuestionText)
		assert.LessOrEqual(t, score, 1.0, "question %q", q.QuestionText)
	}
}

func TestQualityScoreDeterministic(t *testing.T) {
	s := NewQualityScorer(DefaultConfig())
	q := model.CandidateQuestion{
		QuestionText: "How does the siege change Mira's view of her brother?",
		QuestionType: model.QuestionTypeCharacter,
		Difficulty:   model.DifficultyMedium,
	}
	first := s.Score(q, testContext())
	second := s.Score(q, testContext())
	assert.Equal(t, first, second)
}

func TestGenericPenaltyExactness(t *testing.T) {
	assert.Equal(t, 0.2, scoreGenericPenalty("What happens in this chapter?"))
	assert.Equal(t, 0.6, scoreGenericPenalty("What are the key concepts?"))
	assert.Equal(t, 1.0, scoreGenericPenalty("What drives Mira to defend the tower?"))
}

func TestFormatCorrectness(t *testing.T) {
	assert.Equal(t, 1.0, scoreFormat("What are the main benefits?"))
	assert.Less(t, scoreFormat("what are the main benefits"), 1.0)
	assert.Equal(t, 0.2, scoreFormat(""))
	assert.Less(t, scoreFormat("What now?!?!"), 1.0)
}

func TestLengthComplexityBands(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"optimal", "How does the siege change the relationship between Mira and her brother?", 1.0},
		{"short but acceptable", "Why does Mira stay behind?", 0.6},
		{"empty", "", 0.0},
		{"single word", "Why?", 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreLengthComplexity(tt.text))
		})
	}
}

func TestQuestionWordStrength(t *testing.T) {
	assert.Equal(t, 1.0, scoreQuestionWord("What is at stake in the siege?"))
	assert.Equal(t, 0.8, scoreQuestionWord("Would Mira ever forgive him?"))
	assert.Equal(t, 0.7, scoreQuestionWord("Describe the moment the walls fell."))
	assert.Equal(t, 0.2, scoreQuestionWord("List three events."))
}

func TestChapterRelevanceEmptyContext(t *testing.T) {
	got := scoreChapterRelevance("What drives Mira?", model.ChapterContext{})
	assert.Equal(t, 0.0, got)
}

func TestChapterRelevanceRewardsOverlap(t *testing.T) {
	ctx := testContext()
	onTopic := scoreChapterRelevance("Why does the siege of Ravenholt matter to Mira?", ctx)
	offTopic := scoreChapterRelevance("What cuisine does the protagonist prefer?", ctx)
	assert.Greater(t, onTopic, offTopic)
}

func TestTypeValidity(t *testing.T) {
	assert.Equal(t, 1.0, scoreTypeValidity(model.QuestionTypeCharacter))
	assert.Equal(t, 1.0, scoreTypeValidity(model.QuestionType("CHARACTER")))
	assert.Equal(t, 0.0, scoreTypeValidity(model.QuestionType("vibes")))
}

func TestFilterByQualitySortsAndTruncates(t *testing.T) {
	s := NewQualityScorer(DefaultConfig())
	ctx := testContext()
	questions := []model.CandidateQuestion{
		{QuestionText: "what happens in this chapter?", QuestionType: model.QuestionTypeGeneral, Difficulty: model.DifficultyEasy},
		{QuestionText: "How does the siege of Ravenholt change Mira's loyalty to her brother?", QuestionType: model.QuestionTypeCharacter, Difficulty: model.DifficultyMedium},
		{QuestionText: "Why does the battle below the tower matter to the story?", QuestionType: model.QuestionTypePlot, Difficulty: model.DifficultyMedium},
	}

	filtered := s.FilterByQuality(questions, ctx, 0.0, 2)
	require.Len(t, filtered, 2)
	assert.GreaterOrEqual(t, filtered[0].QualityScore, filtered[1].QualityScore)

	// The heavily generic question should not outrank the specific ones.
	for _, q := range filtered {
		assert.NotEqual(t, "what happens in this chapter?", q.QuestionText)
	}
}

func TestFilterByQualityMinScore(t *testing.T) {
	s := NewQualityScorer(DefaultConfig())
	filtered := s.FilterByQuality([]model.CandidateQuestion{
		{QuestionText: "", QuestionType: model.QuestionType("bogus")},
	}, testContext(), 0.9, 10)
	assert.Empty(t, filtered)
}
