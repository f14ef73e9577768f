package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookforge/internal/model"
)

func record(ftype model.FeedbackType, rating int, level model.WritingLevel) model.FeedbackRecord {
	return model.FeedbackRecord{
		QuestionID: "q1",
		Type:       ftype,
		Rating:     rating,
		UserLevel:  level,
		Weight:     typeWeights[ftype],
	}
}

func TestProcessNormalizesAndWeighs(t *testing.T) {
	a := NewAnalyzer()
	got := a.Process(Submission{
		QuestionID: "q1",
		Type:       "THUMBS_DOWN",
		Rating:     1,
		Comment:    "confusing and too hard for me",
		UserLevel:  "beginner",
	})

	assert.Equal(t, model.FeedbackRating, got.Type) // unrecognized degrades to rating
	assert.Equal(t, typeWeights[model.FeedbackRating], got.Weight)
	assert.Equal(t, model.LevelBeginner, got.UserLevel)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Contains(t, got.Insights, "user found this question unsatisfactory")
	assert.Contains(t, got.Insights, "question wording may need improvement")
	assert.Contains(t, got.Insights, "question may be too challenging")
}

func TestProcessPositiveInsight(t *testing.T) {
	a := NewAnalyzer()
	got := a.Process(Submission{Type: "helpful", Rating: 5})
	assert.Equal(t, model.FeedbackHelpful, got.Type)
	assert.Contains(t, got.Insights, "user found this question helpful")
}

func TestAnalyzeTrendsRequiresRecords(t *testing.T) {
	a := NewAnalyzer()
	_, err := a.AnalyzeTrends("q1", nil)
	assert.ErrorIs(t, err, ErrNoFeedback)
}

func TestActionGateBelowThreeRecords(t *testing.T) {
	a := NewAnalyzer()
	ta, err := a.AnalyzeTrends("q1", []model.FeedbackRecord{
		record(model.FeedbackRating, 1, model.LevelIntermediate),
		record(model.FeedbackRating, 1, model.LevelIntermediate),
	})
	require.NoError(t, err)
	assert.Equal(t, []model.RefinementAction{model.ActionNone}, ta.Actions)
}

func TestLowRatingMarksForRemoval(t *testing.T) {
	a := NewAnalyzer()
	ta, err := a.AnalyzeTrends("q1", []model.FeedbackRecord{
		record(model.FeedbackTooHard, 2, model.LevelIntermediate),
		record(model.FeedbackTooHard, 2, model.LevelIntermediate),
		record(model.FeedbackTooHard, 2, model.LevelIntermediate),
	})
	require.NoError(t, err)

	assert.Contains(t, ta.Actions, model.ActionMarkForRemoval)
	assert.Equal(t, 2.0, ta.AverageRating)
	assert.Equal(t, 0.0, ta.RatingStdDev)
	// Count bucket 0.1, zero stdev 0.3, full type dominance 0.3.
	assert.InDelta(t, 0.7, ta.Confidence, 1e-9)
	// (5-2)/5 * (1 + 3/10), no urgency multiplier.
	assert.InDelta(t, 0.78, ta.Priority, 1e-9)
}

func TestMidBandRatingActions(t *testing.T) {
	a := NewAnalyzer()
	ta, err := a.AnalyzeTrends("q1", []model.FeedbackRecord{
		record(model.FeedbackTooHard, 3, model.LevelIntermediate),
		record(model.FeedbackTooHard, 3, model.LevelIntermediate),
		record(model.FeedbackUnclear, 3, model.LevelIntermediate),
	})
	require.NoError(t, err)

	assert.Contains(t, ta.Actions, model.ActionDecreaseDifficulty)
	assert.Contains(t, ta.Actions, model.ActionAddClarity)
	assert.NotContains(t, ta.Actions, model.ActionIncreaseDifficulty)
}

func TestHighRatingBoostsPriority(t *testing.T) {
	a := NewAnalyzer()
	ta, err := a.AnalyzeTrends("q1", []model.FeedbackRecord{
		record(model.FeedbackHelpful, 5, model.LevelAdvanced),
		record(model.FeedbackHelpful, 5, model.LevelAdvanced),
		record(model.FeedbackPerfect, 4, model.LevelAdvanced),
	})
	require.NoError(t, err)
	assert.Contains(t, ta.Actions, model.ActionBoostPriority)
}

func TestNeedsExamplesAlwaysAddsExamples(t *testing.T) {
	a := NewAnalyzer()
	ta, err := a.AnalyzeTrends("q1", []model.FeedbackRecord{
		record(model.FeedbackRating, 5, model.LevelIntermediate),
		record(model.FeedbackRating, 5, model.LevelIntermediate),
		record(model.FeedbackNeedsExamples, 0, model.LevelIntermediate),
	})
	require.NoError(t, err)

	assert.Contains(t, ta.Actions, model.ActionAddExamples)
	assert.Contains(t, ta.Actions, model.ActionBoostPriority)
}

func TestBeginnerTooHardOverride(t *testing.T) {
	a := NewAnalyzer()
	ta, err := a.AnalyzeTrends("q1", []model.FeedbackRecord{
		record(model.FeedbackTooHard, 4, model.LevelBeginner),
		record(model.FeedbackTooHard, 4, model.LevelBeginner),
		record(model.FeedbackRating, 4, model.LevelAdvanced),
	})
	require.NoError(t, err)
	assert.Contains(t, ta.Actions, model.ActionDecreaseDifficulty)
}

func TestAdvancedTooEasyOverride(t *testing.T) {
	a := NewAnalyzer()
	ta, err := a.AnalyzeTrends("q1", []model.FeedbackRecord{
		record(model.FeedbackTooEasy, 4, model.LevelAdvanced),
		record(model.FeedbackTooEasy, 4, model.LevelAdvanced),
		record(model.FeedbackRating, 4, model.LevelBeginner),
	})
	require.NoError(t, err)
	assert.Contains(t, ta.Actions, model.ActionIncreaseDifficulty)
}

func TestUrgencyMultiplierRaisesPriority(t *testing.T) {
	a := NewAnalyzer()
	calm, err := a.AnalyzeTrends("q1", []model.FeedbackRecord{
		record(model.FeedbackRating, 3, model.LevelIntermediate),
		record(model.FeedbackRating, 3, model.LevelIntermediate),
		record(model.FeedbackRating, 3, model.LevelIntermediate),
	})
	require.NoError(t, err)
	urgent, err := a.AnalyzeTrends("q1", []model.FeedbackRecord{
		record(model.FeedbackIrrelevant, 3, model.LevelIntermediate),
		record(model.FeedbackRating, 3, model.LevelIntermediate),
		record(model.FeedbackRating, 3, model.LevelIntermediate),
	})
	require.NoError(t, err)

	assert.Greater(t, urgent.Priority, calm.Priority)
	assert.LessOrEqual(t, urgent.Priority, 1.0)
}

func TestLevelBreakdown(t *testing.T) {
	a := NewAnalyzer()
	ta, err := a.AnalyzeTrends("q1", []model.FeedbackRecord{
		record(model.FeedbackRating, 2, model.LevelBeginner),
		record(model.FeedbackRating, 4, model.LevelBeginner),
		record(model.FeedbackRating, 5, model.LevelAdvanced),
	})
	require.NoError(t, err)

	require.Contains(t, ta.LevelBreakdown, model.LevelBeginner)
	assert.Equal(t, 2, ta.LevelBreakdown[model.LevelBeginner].Count)
	assert.InDelta(t, 3.0, ta.LevelBreakdown[model.LevelBeginner].AverageRating, 1e-9)
	assert.Equal(t, 1, ta.LevelBreakdown[model.LevelAdvanced].Count)
}
