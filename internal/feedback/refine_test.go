package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookforge/internal/model"
)

func trendWith(actions ...model.RefinementAction) model.TrendAnalysis {
	return model.TrendAnalysis{
		QuestionID:    "q1",
		FeedbackCount: 5,
		Confidence:    0.6,
		Actions:       actions,
	}
}

func TestRefineDecreaseDifficulty(t *testing.T) {
	a := NewAnalyzer()
	q := model.CandidateQuestion{
		QuestionText: "Analyze Mira's loyalty as the siege wears on through winter.",
		QuestionType: model.QuestionTypeCharacter,
		Difficulty:   model.DifficultyHard,
	}

	got := a.Refine(q, trendWith(model.ActionDecreaseDifficulty))

	assert.Equal(t, "Think about Mira's loyalty as the siege wears on through winter.", got.QuestionText)
	assert.Equal(t, model.DifficultyMedium, got.Difficulty)
}

func TestRefineIncreaseDifficulty(t *testing.T) {
	a := NewAnalyzer()
	q := model.CandidateQuestion{
		QuestionText: "Describe the harbor at dawn and what it hides from the watch.",
		QuestionType: model.QuestionTypeSetting,
		Difficulty:   model.DifficultyEasy,
	}

	got := a.Refine(q, trendWith(model.ActionIncreaseDifficulty))

	assert.Equal(t, "Articulate the harbor at dawn and what it hides from the watch.", got.QuestionText)
	assert.Equal(t, model.DifficultyMedium, got.Difficulty)
}

func TestRefineAddClarityShortQuestion(t *testing.T) {
	a := NewAnalyzer()
	q := model.CandidateQuestion{
		QuestionText: "Why does Mira stay?",
		QuestionType: model.QuestionTypeCharacter,
	}

	got := a.Refine(q, trendWith(model.ActionAddClarity))

	assert.Equal(t, "Why does Mira stay? Be as specific as you can.", got.QuestionText)
	assert.Contains(t, got.HelpText, clarityElaboration)
}

func TestRefineAddClarityLeavesLongQuestionText(t *testing.T) {
	a := NewAnalyzer()
	long := "Why does Mira stay behind when every other guard abandons the tower?"
	got := a.Refine(model.CandidateQuestion{QuestionText: long}, trendWith(model.ActionAddClarity))

	assert.Equal(t, long, got.QuestionText)
	assert.Contains(t, got.HelpText, clarityElaboration)
}

func TestRefineAddExamples(t *testing.T) {
	a := NewAnalyzer()
	got := a.Refine(model.CandidateQuestion{
		QuestionText: "What event triggers the uprising?",
		QuestionType: model.QuestionTypePlot,
	}, trendWith(model.ActionAddExamples))

	assert.Equal(t, refinementExamples[model.QuestionTypePlot], got.Examples)
}

func TestRefineImproveRelevance(t *testing.T) {
	a := NewAnalyzer()
	got := a.Refine(model.CandidateQuestion{
		QuestionText: "What drives Mira?",
		QuestionType: model.QuestionTypeCharacter,
	}, trendWith(model.ActionImproveRelevance))

	assert.Equal(t, "In this specific chapter, what drives Mira?", got.QuestionText)
	assert.Contains(t, got.HelpText, relevanceHelp)
}

func TestRefineImproveRelevanceAlreadyScoped(t *testing.T) {
	a := NewAnalyzer()
	scoped := "What does this chapter reveal about Mira?"
	got := a.Refine(model.CandidateQuestion{QuestionText: scoped}, trendWith(model.ActionImproveRelevance))
	assert.Equal(t, scoped, got.QuestionText)
}

func TestRefineRecordsAuditBlock(t *testing.T) {
	a := NewAnalyzer()
	trend := trendWith(model.ActionDecreaseDifficulty, model.ActionAddClarity)
	q := model.CandidateQuestion{
		QuestionText: "Analyze the fall of the outer wall.",
		QuestionType: model.QuestionTypePlot,
		Difficulty:   model.DifficultyHard,
		HelpText:     "Consider the defenders' choices.",
	}

	got := a.Refine(q, trend)

	require.NotNil(t, got.Refinement)
	assert.Equal(t, "Analyze the fall of the outer wall.", got.Refinement.OriginalText)
	assert.Equal(t, "Consider the defenders' choices.", got.Refinement.OriginalHelpText)
	assert.Equal(t, trend.Actions, got.Refinement.Actions)
	assert.Equal(t, 5, got.Refinement.BasedOnFeedback)
	assert.Equal(t, 0.6, got.Refinement.Confidence)
	assert.False(t, got.Refinement.RefinedAt.IsZero())
}

func TestRefineNoActionLeavesTextUntouched(t *testing.T) {
	a := NewAnalyzer()
	got := a.Refine(model.CandidateQuestion{
		QuestionText: "What color is the banner?",
		Difficulty:   model.DifficultyEasy,
	}, trendWith(model.ActionNone))

	assert.Equal(t, "What color is the banner?", got.QuestionText)
	assert.Equal(t, model.DifficultyEasy, got.Difficulty)
	require.NotNil(t, got.Refinement)
}
