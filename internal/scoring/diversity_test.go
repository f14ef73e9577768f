package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookforge/internal/model"
)

func scoredQ(text string, qtype model.QuestionType, score float64) model.ScoredQuestion {
	return model.ScoredQuestion{
		CandidateQuestion: model.CandidateQuestion{QuestionText: text, QuestionType: qtype},
		QualityScore:      score,
	}
}

func TestEnsureDiversityTypeCap(t *testing.T) {
	f := NewDiversityFilter(DefaultConfig())
	questions := []model.ScoredQuestion{
		scoredQ("What drives the blacksmith's ambition?", model.QuestionTypeCharacter, 0.9),
		scoredQ("How does the queen justify her betrayal?", model.QuestionTypeCharacter, 0.8),
		scoredQ("Why does the orphan trust the stranger?", model.QuestionTypeCharacter, 0.7),
		scoredQ("Where did the merchant learn the ancient tongue?", model.QuestionTypeCharacter, 0.6),
		scoredQ("What event triggers the uprising?", model.QuestionTypePlot, 0.5),
	}

	got := f.EnsureDiversity(questions, 2, 0.7)

	perType := make(map[model.QuestionType]int)
	for _, q := range got {
		perType[q.QuestionType]++
	}
	assert.Equal(t, 2, perType[model.QuestionTypeCharacter])
	assert.Equal(t, 1, perType[model.QuestionTypePlot])
}

func TestEnsureDiversityDropsNearDuplicates(t *testing.T) {
	f := NewDiversityFilter(DefaultConfig())
	questions := []model.ScoredQuestion{
		scoredQ("What secret does the lighthouse keeper hide from the village?", model.QuestionTypePlot, 0.9),
		scoredQ("What secret does the village lighthouse keeper hide?", model.QuestionTypePlot, 0.8),
		scoredQ("How does the storm change the captain's plans?", model.QuestionTypePlot, 0.7),
	}

	got := f.EnsureDiversity(questions, 5, 0.7)

	require.Len(t, got, 2)
	assert.Equal(t, questions[0].QuestionText, got[0].QuestionText)
	assert.Equal(t, questions[2].QuestionText, got[1].QuestionText)
}

func TestEnsureDiversityPreservesOrder(t *testing.T) {
	f := NewDiversityFilter(DefaultConfig())
	questions := []model.ScoredQuestion{
		scoredQ("Why does the river matter to the valley farmers?", model.QuestionTypeSetting, 0.5),
		scoredQ("What does the harvest festival reveal about the town?", model.QuestionTypeSetting, 0.9),
	}

	got := f.EnsureDiversity(questions, 5, 0.7)

	require.Len(t, got, 2)
	assert.Equal(t, questions[0].QuestionText, got[0].QuestionText)
	assert.Equal(t, questions[1].QuestionText, got[1].QuestionText)
}

// The similarity check runs against previously accepted questions in one
// forward pass, so which duplicate survives depends on input order.
func TestEnsureDiversityOrderDependence(t *testing.T) {
	f := NewDiversityFilter(DefaultConfig())
	a := scoredQ("What secret does the lighthouse keeper hide from the village?", model.QuestionTypePlot, 0.6)
	b := scoredQ("What secret does the village lighthouse keeper hide?", model.QuestionTypePlot, 0.9)

	forward := f.EnsureDiversity([]model.ScoredQuestion{a, b}, 5, 0.7)
	reversed := f.EnsureDiversity([]model.ScoredQuestion{b, a}, 5, 0.7)

	require.Len(t, forward, 1)
	require.Len(t, reversed, 1)
	assert.Equal(t, a.QuestionText, forward[0].QuestionText)
	assert.Equal(t, b.QuestionText, reversed[0].QuestionText)
}

func TestEnsureDiversityEmptyInput(t *testing.T) {
	f := NewDiversityFilter(DefaultConfig())
	got := f.EnsureDiversity(nil, 3, 0.7)
	assert.Empty(t, got)
}

func TestEnsureDiversityDefaultsFromConfig(t *testing.T) {
	f := NewDiversityFilter(DefaultConfig())
	questions := []model.ScoredQuestion{
		scoredQ("What drives the blacksmith's ambition?", model.QuestionTypeCharacter, 0.9),
		scoredQ("How does the queen justify her betrayal?", model.QuestionTypeCharacter, 0.8),
		scoredQ("Why does the orphan trust the stranger?", model.QuestionTypeCharacter, 0.7),
		scoredQ("Where did the merchant learn the ancient tongue?", model.QuestionTypeCharacter, 0.6),
	}

	// Zero arguments fall back to config defaults (3 per type, 0.7).
	got := f.EnsureDiversity(questions, 0, 0)
	assert.Len(t, got, 3)
}
