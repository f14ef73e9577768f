// Package adapt personalizes scored questions for an author's writing level:
// template substitution, help-text expansion or condensation, canned examples,
// encouragement, difficulty remapping and level-aware ordering. It also infers
// a writing level from an author's response history.
package adapt

import (
	"fmt"
	"sort"
	"strings"

	"bookforge/internal/model"
)

// LevelAdapter rewrites questions to match a user's writing profile.
type LevelAdapter struct{}

// NewLevelAdapter creates a LevelAdapter.
func NewLevelAdapter() *LevelAdapter {
	return &LevelAdapter{}
}

// ConfigFor exposes the static configuration for a level.
func ConfigFor(level model.WritingLevel) LevelConfig {
	return levelConfigs[model.NormalizeWritingLevel(string(level))]
}

// Adapt returns a level-adapted copy of questions. The input slice is not
// modified. Questions are re-ordered by preferred-type adjustment and, for
// beginners and professionals, by difficulty (easy-first and hard-first
// respectively).
func (a *LevelAdapter) Adapt(questions []model.ScoredQuestion, profile model.UserWritingProfile) []model.ScoredQuestion {
	level := model.NormalizeWritingLevel(string(profile.WritingLevel))
	cfg := levelConfigs[level]

	adapted := make([]model.ScoredQuestion, len(questions))
	for i, q := range questions {
		adapted[i] = a.adaptQuestion(q, level, cfg, profile.Guidance)
	}

	sort.SliceStable(adapted, func(i, j int) bool {
		return typeAdjustment(adapted[i], cfg) > typeAdjustment(adapted[j], cfg)
	})

	switch level {
	case model.LevelBeginner:
		sort.SliceStable(adapted, func(i, j int) bool {
			return difficultyRank[adapted[i].Difficulty] < difficultyRank[adapted[j].Difficulty]
		})
	case model.LevelProfessional:
		sort.SliceStable(adapted, func(i, j int) bool {
			return difficultyRank[adapted[i].Difficulty] > difficultyRank[adapted[j].Difficulty]
		})
	}
	return adapted
}

func (a *LevelAdapter) adaptQuestion(q model.ScoredQuestion, level model.WritingLevel, cfg LevelConfig, guidance model.GuidancePreference) model.ScoredQuestion {
	qtype := model.NormalizeQuestionType(string(q.QuestionType))

	if tmpl, ok := questionTemplates[qtype][level]; ok {
		q.QuestionText = fmt.Sprintf(tmpl, q.QuestionText)
	}

	q.HelpText = adaptHelpText(q.HelpText, qtype, level, cfg, guidance)

	if cfg.InjectExamples && len(q.Examples) == 0 {
		q.Examples = append([]string(nil), exampleBank[qtype]...)
	}
	if cfg.InjectEncouragement && q.Encouragement == "" {
		q.Encouragement = encouragements[qtype]
	}
	if remapped, ok := difficultyRemap[level][q.Difficulty]; ok {
		q.Difficulty = remapped
	}
	return q
}

func adaptHelpText(help string, qtype model.QuestionType, level model.WritingLevel, cfg LevelConfig, guidance model.GuidancePreference) string {
	expand := level == model.LevelBeginner || guidance == model.GuidanceDetailed
	condense := level == model.LevelAdvanced || level == model.LevelProfessional || guidance == model.GuidanceMinimal

	switch {
	case expand:
		elaboration := helpElaborations[qtype]
		if help == "" {
			help = elaboration
		} else if !strings.Contains(help, elaboration) {
			help = help + "\n\n" + elaboration
		}
		if cfg.InjectStepByStep && !strings.Contains(help, stepByStepHint) {
			help = help + "\n\n" + stepByStepHint
		}
	case condense:
		help = firstSentence(help)
	}
	return help
}

func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	for i, r := range s {
		if r == '.' || r == '!' || r == '?' {
			return s[:i+1]
		}
	}
	return s
}

// typeAdjustment boosts preferred types and penalizes each configured avoid
// phrase occurring in the question text.
func typeAdjustment(q model.ScoredQuestion, cfg LevelConfig) int {
	adj := 0
	for _, t := range cfg.PreferredTypes {
		if q.QuestionType == t {
			adj += 10
			break
		}
	}
	text := strings.ToLower(q.QuestionText)
	for _, phrase := range cfg.AvoidPhrases {
		if strings.Contains(text, phrase) {
			adj -= 5
		}
	}
	return adj
}

// AnalyzeUserProgression infers a writing level from an author's response
// history using a fixed rubric: response length, hard-question share and
// average quality each contribute points, and the total maps onto a level.
// With no history the author is treated as a beginner.
func (a *LevelAdapter) AnalyzeUserProgression(responses []model.Response) model.WritingLevel {
	if len(responses) == 0 {
		return model.LevelBeginner
	}

	totalWords := 0
	hardCount := 0
	totalQuality := 0.0
	for _, r := range responses {
		totalWords += len(strings.Fields(r.Text))
		if r.Difficulty == model.DifficultyHard {
			hardCount++
		}
		totalQuality += r.Quality
	}
	n := float64(len(responses))
	avgWords := float64(totalWords) / n
	hardShare := float64(hardCount) / n
	avgQuality := totalQuality / n

	score := 0
	switch {
	case avgWords < 25:
		score++
	case avgWords < 60:
		score += 2
	case avgWords < 120:
		score += 3
	default:
		score += 4
	}
	switch {
	case hardShare >= 0.5:
		score += 2
	case hardShare >= 0.25:
		score++
	}
	switch {
	case avgQuality >= 0.8:
		score += 2
	case avgQuality >= 0.6:
		score++
	}

	switch {
	case score <= 2:
		return model.LevelBeginner
	case score <= 4:
		return model.LevelIntermediate
	case score <= 6:
		return model.LevelAdvanced
	default:
		return model.LevelProfessional
	}
}
