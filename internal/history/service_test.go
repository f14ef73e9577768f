package history

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookforge/internal/model"
)

func corpusRecord(genre, title string, contentLen int, rating, completion float64, questions ...model.HistoricalQuestion) model.HistoricalChapterRecord {
	return model.HistoricalChapterRecord{
		Genre:          genre,
		Title:          title,
		Content:        strings.Repeat("a", contentLen),
		AvgRating:      rating,
		CompletionRate: completion,
		Questions:      questions,
	}
}

func histQuestion(text string, qtype model.QuestionType, diff model.Difficulty, rating, completion, quality float64) model.HistoricalQuestion {
	return model.HistoricalQuestion{
		CandidateQuestion: model.CandidateQuestion{QuestionText: text, QuestionType: qtype, Difficulty: diff},
		Metrics:           model.QuestionMetrics{AvgRating: rating, CompletionRate: completion, QualityScore: quality},
	}
}

func chapterCtx() model.ChapterContext {
	return model.ChapterContext{
		Title:   "The Siege of Ravenholt",
		Content: strings.Repeat("a", 400),
		Genre:   "fantasy",
	}
}

func TestFindSimilarChaptersScoring(t *testing.T) {
	s := NewService(DefaultConfig())
	corpus := []model.HistoricalChapterRecord{
		corpusRecord("fantasy", "Siege of the Ravenholt Keep", 400, 4.0, 0.8),
		corpusRecord("fantasy", "A Quiet Morning", 400, 4.0, 0.8),
		corpusRecord("romance", "Tea in the Garden", 4000, 4.0, 0.8),
	}

	got := s.FindSimilarChapters(chapterCtx(), corpus)

	require.Len(t, got, 2)
	// Genre 0.4 + two shared title words 0.2 + equal length 0.3.
	assert.InDelta(t, 0.9, got[0].Similarity, 1e-9)
	assert.Equal(t, "Siege of the Ravenholt Keep", got[0].Record.Title)
	// Genre 0.4 + equal length 0.3.
	assert.InDelta(t, 0.7, got[1].Similarity, 1e-9)
}

func TestFindSimilarChaptersTitleOverlapCapped(t *testing.T) {
	s := NewService(DefaultConfig())
	corpus := []model.HistoricalChapterRecord{
		corpusRecord("fantasy", "Siege Ravenholt Siege Ravenholt Castle Walls Tower Battle", 400, 4, 0.8),
	}
	ctx := model.ChapterContext{
		Title:   "Siege Ravenholt Castle Walls Tower Battle",
		Content: strings.Repeat("a", 400),
		Genre:   "fantasy",
	}

	got := s.FindSimilarChapters(ctx, corpus)

	require.Len(t, got, 1)
	// Six shared words would give 0.6; the title component caps at 0.3.
	assert.InDelta(t, 1.0, got[0].Similarity, 1e-9)
}

func TestFindSimilarChaptersCap(t *testing.T) {
	s := NewService(DefaultConfig())
	var corpus []model.HistoricalChapterRecord
	for i := 0; i < 12; i++ {
		corpus = append(corpus, corpusRecord("fantasy", "The Siege of Ravenholt", 400, 4, 0.8))
	}

	assert.Len(t, s.FindSimilarChapters(chapterCtx(), corpus), 10)
}

func TestExtractSuccessfulPatterns(t *testing.T) {
	s := NewService(DefaultConfig())
	char := histQuestion("What drives Mira?", model.QuestionTypeCharacter, model.DifficultyEasy, 4.5, 0.9, 0.8)
	plot := histQuestion("What event triggers the uprising?", model.QuestionTypePlot, model.DifficultyMedium, 4.5, 0.9, 0.8)
	matches := []model.ChapterMatch{
		{Record: corpusRecord("fantasy", "A", 400, 4.5, 0.8, char, char, char, plot)},
		{Record: corpusRecord("fantasy", "B", 400, 4.2, 0.9, char, char, plot, plot, plot, plot)},
		{Record: corpusRecord("fantasy", "C", 400, 3.0, 0.9, char)}, // Below rating threshold
	}

	got := s.ExtractSuccessfulPatterns(matches)

	assert.Equal(t, 2, got.SampleSize)
	assert.InDelta(t, 5.0, got.OptimalCount, 1e-9)
	assert.Equal(t, 4, got.CountMin)
	assert.Equal(t, 6, got.CountMax)
	assert.InDelta(t, 0.5, got.TypeDistribution[model.QuestionTypeCharacter], 1e-9)
	assert.InDelta(t, 0.5, got.TypeDistribution[model.QuestionTypePlot], 1e-9)
}

func TestExtractSuccessfulPatternsEmpty(t *testing.T) {
	s := NewService(DefaultConfig())
	got := s.ExtractSuccessfulPatterns(nil)
	assert.Equal(t, 0, got.SampleSize)
	assert.Empty(t, got.TypeDistribution)
}

func TestPredictQuestionSuccessExactNeighbor(t *testing.T) {
	s := NewService(DefaultConfig())
	q := model.CandidateQuestion{
		QuestionText: "What drives Mira to stay?",
		QuestionType: model.QuestionTypeCharacter,
		Difficulty:   model.DifficultyEasy,
	}
	corpus := []model.HistoricalChapterRecord{
		corpusRecord("fantasy", "A", 400, 4.5, 0.8,
			histQuestion("What drives Mira to stay?", model.QuestionTypeCharacter, model.DifficultyEasy, 5, 1, 1)),
	}

	got := s.PredictQuestionSuccess(q, corpus)

	assert.Equal(t, 1, got.SimilarCount)
	assert.InDelta(t, 1.0, got.PredictedScore, 1e-9)
	// One neighbor 0.1, perfect similarity 0.3, zero variance 0.3.
	assert.InDelta(t, 0.7, got.Confidence, 1e-9)
}

func TestPredictQuestionSuccessNeutralFallback(t *testing.T) {
	s := NewService(DefaultConfig())
	q := model.CandidateQuestion{QuestionText: "What drives Mira?", QuestionType: model.QuestionTypeCharacter}

	got := s.PredictQuestionSuccess(q, nil)

	assert.Equal(t, 0.5, got.PredictedScore)
	assert.Equal(t, 0.1, got.Confidence)
	assert.Equal(t, 0, got.SimilarCount)
}

func TestPredictQuestionSuccessIgnoresDissimilar(t *testing.T) {
	s := NewService(DefaultConfig())
	q := model.CandidateQuestion{
		QuestionText: "What drives Mira to stay?",
		QuestionType: model.QuestionTypeCharacter,
		Difficulty:   model.DifficultyEasy,
	}
	corpus := []model.HistoricalChapterRecord{
		corpusRecord("fantasy", "A", 400, 4.5, 0.8,
			histQuestion("Describe the mountain pass and the fortress that guards the valley approach below.",
				model.QuestionTypeResearch, model.DifficultyHard, 1, 0.1, 0.1)),
	}

	got := s.PredictQuestionSuccess(q, corpus)
	assert.Equal(t, 0, got.SimilarCount)
	assert.Equal(t, 0.5, got.PredictedScore)
}

func TestOptimizeQuestionSequencePreference(t *testing.T) {
	s := NewService(DefaultConfig())
	theme := model.ScoredQuestion{CandidateQuestion: model.CandidateQuestion{
		QuestionText: "What idea recurs?", QuestionType: model.QuestionTypeTheme, Difficulty: model.DifficultyHard}}
	char := model.ScoredQuestion{CandidateQuestion: model.CandidateQuestion{
		QuestionText: "Who is Mira?", QuestionType: model.QuestionTypeCharacter, Difficulty: model.DifficultyEasy}}

	got := s.OptimizeQuestionSequence([]model.ScoredQuestion{theme, char})

	require.Len(t, got, 2)
	assert.Equal(t, model.QuestionTypeCharacter, got[0].QuestionType)
	assert.Equal(t, model.QuestionTypeTheme, got[1].QuestionType)
}

func TestOptimizeQuestionSequenceEasyToHardTiebreak(t *testing.T) {
	s := NewService(DefaultConfig())
	settingHard := model.ScoredQuestion{CandidateQuestion: model.CandidateQuestion{
		QuestionText: "How does the city fall?", QuestionType: model.QuestionTypeSetting, Difficulty: model.DifficultyHard}}
	plotEasy := model.ScoredQuestion{CandidateQuestion: model.CandidateQuestion{
		QuestionText: "What happens first?", QuestionType: model.QuestionTypePlot, Difficulty: model.DifficultyEasy}}

	// Equal position scores; the easy_to_hard policy breaks the tie.
	got := s.OptimizeQuestionSequence([]model.ScoredQuestion{settingHard, plotEasy})

	require.Len(t, got, 2)
	assert.Equal(t, model.DifficultyEasy, got[0].Difficulty)
	assert.Equal(t, model.DifficultyHard, got[1].Difficulty)
}

func TestAnalyzeDistribution(t *testing.T) {
	s := NewService(DefaultConfig())
	qs := []model.ScoredQuestion{
		{CandidateQuestion: model.CandidateQuestion{QuestionType: model.QuestionTypeCharacter}, QualityScore: 0.9},
		{CandidateQuestion: model.CandidateQuestion{QuestionType: model.QuestionTypeCharacter}, QualityScore: 0.5},
		{CandidateQuestion: model.CandidateQuestion{QuestionType: model.QuestionTypePlot}, QualityScore: 0.7},
	}

	got := s.AnalyzeDistribution(qs)

	assert.Equal(t, 3, got.TotalQuestions)
	assert.Equal(t, 2, got.TypeCounts[model.QuestionTypeCharacter])
	assert.InDelta(t, 0.7, got.AverageQuality, 1e-9)
	assert.Equal(t, 0.5, got.MinQuality)
	assert.Equal(t, 0.9, got.MaxQuality)
	assert.Contains(t, got.Recommendations, "consider adding a setting question for broader coverage")
	assert.Contains(t, got.Recommendations, "consider adding a theme question for broader coverage")
}

func TestAnalyzeDistributionEmpty(t *testing.T) {
	s := NewService(DefaultConfig())
	got := s.AnalyzeDistribution(nil)
	assert.Equal(t, 0, got.TotalQuestions)
	assert.NotEmpty(t, got.Recommendations)
}
