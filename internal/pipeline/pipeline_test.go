package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookforge/internal/analysis"
	"bookforge/internal/history"
	"bookforge/internal/model"
	"bookforge/internal/scoring"
)

func newPipeline() *Pipeline {
	return New(analysis.DefaultConfig(), scoring.DefaultConfig())
}

// characterChapter builds ~1,200 words of dialogue-heavy, character-focused
// content.
func characterChapter() model.ChapterContext {
	para := `"I can't lose you too," Elena whispered, her voice trembling with fear and love. ` +
		`Marcus reached for her hand, feeling the weight of their friendship shift into something deeper. ` +
		`Her family had warned her about trusting a soldier, but her heart refused to listen. ` +
		`He smiled at the memory of their first meeting, the laughter they had shared by the river.`
	paragraphs := make([]string, 20)
	for i := range paragraphs {
		paragraphs[i] = para
	}
	return model.ChapterContext{
		Title:   "Elena and the Soldier",
		Content: strings.Join(paragraphs, "\n\n"),
		Genre:   "romance",
	}
}

func mixedCandidates() []model.CandidateQuestion {
	c := func(text string, qtype model.QuestionType, diff model.Difficulty) model.CandidateQuestion {
		return model.CandidateQuestion{QuestionText: text, QuestionType: qtype, Difficulty: diff}
	}
	return []model.CandidateQuestion{
		c("What does Elena fear losing the most in this moment?", model.QuestionTypeCharacter, model.DifficultyEasy),
		c("How does Marcus show his feelings without speaking them aloud?", model.QuestionTypeCharacter, model.DifficultyMedium),
		c("Why does Elena's family distrust the soldier she loves?", model.QuestionTypeCharacter, model.DifficultyHard),
		c("What memory keeps drawing Marcus back to the river?", model.QuestionTypeCharacter, model.DifficultyMedium),
		c("What warning from the family sets the conflict in motion?", model.QuestionTypePlot, model.DifficultyMedium),
		c("What choice will Elena be forced into by the end of the war?", model.QuestionTypePlot, model.DifficultyHard),
		c("How does the first meeting between them shape everything after?", model.QuestionTypePlot, model.DifficultyMedium),
		c("How does the river setting mirror the couple's shifting bond?", model.QuestionTypeSetting, model.DifficultyMedium),
		c("Where do Elena and Marcus feel safest together?", model.QuestionTypeSetting, model.DifficultyEasy),
		c("What does this story say about love and duty in wartime?", model.QuestionTypeTheme, model.DifficultyHard),
	}
}

func TestGenerateEndToEndBeginner(t *testing.T) {
	p := newPipeline()
	res := p.Generate(Request{
		Chapter:        characterChapter(),
		Candidates:     mixedCandidates(),
		Profile:        model.UserWritingProfile{WritingLevel: model.LevelBeginner},
		RequestedCount: 10,
		MaxPerType:     3,
	})

	require.NotEmpty(t, res.Questions)
	assert.True(t, res.Analysis.AnalysisPossible)
	assert.Equal(t, model.ThemeCharacter, res.Analysis.Focus.Primary)
	assert.False(t, res.UsedFallback)

	perType := make(map[model.QuestionType]int)
	for _, q := range res.Questions {
		perType[q.QuestionType]++
		assert.NotEqual(t, model.DifficultyHard, q.Difficulty, "beginner difficulties remap downward: %q", q.QuestionText)
		assert.NotEmpty(t, q.HelpText, "beginner questions always carry guidance: %q", q.QuestionText)
		assert.NotEmpty(t, q.Examples)
		require.NotNil(t, q.Relevance)
	}
	for qtype, n := range perType {
		assert.LessOrEqual(t, n, 3, "type %s over cap", qtype)
	}
}

func TestGenerateFallsBackOnEmptyCandidates(t *testing.T) {
	p := newPipeline()
	res := p.Generate(Request{
		Chapter:        characterChapter(),
		Profile:        model.UserWritingProfile{WritingLevel: model.LevelIntermediate},
		RequestedCount: 8,
	})

	assert.True(t, res.UsedFallback)
	assert.GreaterOrEqual(t, len(res.Questions), 3)
	assert.LessOrEqual(t, len(res.Questions), 8)
	for _, q := range res.Questions {
		assert.True(t, strings.HasSuffix(q.QuestionText, "?"))
	}
}

func TestGenerateNeverFailsOnEmptyEverything(t *testing.T) {
	p := newPipeline()
	res := p.Generate(Request{})

	assert.True(t, res.UsedFallback)
	assert.False(t, res.Analysis.AnalysisPossible)
	assert.GreaterOrEqual(t, len(res.Questions), 3)
}

func TestGenerateSmallRequestedCount(t *testing.T) {
	p := newPipeline()
	res := p.Generate(Request{
		Chapter:        characterChapter(),
		RequestedCount: 2,
	})
	assert.Len(t, res.Questions, 2)
}

func TestGenerateNormalizesCandidateEnums(t *testing.T) {
	p := newPipeline()
	res := p.Generate(Request{
		Chapter: characterChapter(),
		Candidates: []model.CandidateQuestion{
			{QuestionText: "What does Elena fear losing the most?", QuestionType: "CHARACTER", Difficulty: "impossible"},
		},
		Profile:        model.UserWritingProfile{WritingLevel: model.LevelIntermediate},
		RequestedCount: 3,
	})

	var found bool
	for _, q := range res.Questions {
		if q.QuestionText == "What does Elena fear losing the most?" {
			found = true
			assert.Equal(t, model.QuestionTypeCharacter, q.QuestionType)
			assert.Equal(t, model.DifficultyMedium, q.Difficulty)
		}
	}
	assert.True(t, found)
}

func TestGenerateMinQualityDropsJunk(t *testing.T) {
	p := newPipeline()
	candidates := append(mixedCandidates()[:5],
		model.CandidateQuestion{QuestionText: "x?!?!?!...", QuestionType: model.QuestionTypePlot})
	res := p.Generate(Request{
		Chapter:        characterChapter(),
		Candidates:     candidates,
		RequestedCount: 6,
		MinQuality:     0.5,
	})

	for _, q := range res.Questions {
		assert.NotEqual(t, "x?!?!?!...", q.QuestionText)
	}
}

func TestGenerateWithHistorySequencing(t *testing.T) {
	p := newPipeline().WithHistory(history.NewService(history.DefaultConfig()))
	res := p.Generate(Request{
		Chapter:        characterChapter(),
		Candidates:     mixedCandidates(),
		Profile:        model.UserWritingProfile{WritingLevel: model.LevelIntermediate},
		RequestedCount: 6,
		MaxPerType:     2,
	})
	assert.NotEmpty(t, res.Questions)
}

func TestRegeneratePreservesAnswered(t *testing.T) {
	p := newPipeline()
	existing := []model.Question{
		{ID: "q1", Answered: true},
		{ID: "q2", Answered: false},
		{ID: "q3", Answered: true},
		{ID: "q4", Answered: false},
	}

	got := p.Regenerate(existing, Request{
		Chapter:    characterChapter(),
		Candidates: mixedCandidates(),
		Profile:    model.UserWritingProfile{WritingLevel: model.LevelIntermediate},
	})

	assert.Equal(t, 2, got.PreservedCount)
	assert.Equal(t, 2, got.NewCount)
	assert.Equal(t, 4, got.Total)
	assert.Len(t, got.Removed, 2)
	assert.Len(t, got.Questions, 2)
	for _, q := range got.Preserved {
		assert.True(t, q.Answered)
	}
}

func TestRegenerateAllAnswered(t *testing.T) {
	p := newPipeline()
	existing := []model.Question{
		{ID: "q1", Answered: true},
		{ID: "q2", Answered: true},
	}

	got := p.Regenerate(existing, Request{Chapter: characterChapter()})

	assert.Equal(t, 2, got.PreservedCount)
	assert.Equal(t, 0, got.NewCount)
	assert.Equal(t, 2, got.Total)
	assert.Empty(t, got.Questions)
	assert.Empty(t, got.Removed)
}

func TestFallbackCandidatesRoundRobin(t *testing.T) {
	got := FallbackCandidates(7)
	require.Len(t, got, 7)

	counts := make(map[model.QuestionType]int)
	for _, c := range got {
		counts[c.QuestionType]++
	}
	assert.Equal(t, 2, counts[model.QuestionTypeCharacter])
	assert.Equal(t, 2, counts[model.QuestionTypePlot])
	assert.Equal(t, 1, counts[model.QuestionTypeSetting])
	assert.Equal(t, 1, counts[model.QuestionTypeTheme])
	assert.Equal(t, 1, counts[model.QuestionTypeGeneral])
}

func TestFallbackCandidatesExhaustsBank(t *testing.T) {
	got := FallbackCandidates(100)
	assert.Len(t, got, 25)
}

func TestBuildMetadata(t *testing.T) {
	q := model.ScoredQuestion{CandidateQuestion: model.CandidateQuestion{
		Difficulty: model.DifficultyEasy,
		HelpText:   "Start small.",
		Examples:   []string{"example"},
	}}

	md := BuildMetadata(q)

	assert.Equal(t, "2-3 sentences", md.SuggestedResponseLength)
	assert.Equal(t, "Start small.", md.HelpText)
	assert.Equal(t, []string{"example"}, md.Examples)
}
