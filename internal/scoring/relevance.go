package scoring

import (
	"fmt"
	"sort"
	"strings"

	"bookforge/internal/model"
	"bookforge/internal/textutil"
)

// RelevanceScorer scores a candidate question against a ContentAnalysis
// (not raw chapter text) along five weighted components, and explains its
// verdict with reasoning and recommendations.
type RelevanceScorer struct {
	cfg Config
}

// NewRelevanceScorer creates a scorer with the given config.
func NewRelevanceScorer(cfg Config) *RelevanceScorer {
	return &RelevanceScorer{cfg: cfg}
}

// thematicKeywords maps a question type to the words that signal the same
// theme inside the question text itself.
var thematicKeywords = map[model.QuestionType][]string{
	model.QuestionTypeCharacter: {"character", "personality", "feel", "relationship", "motivation", "emotion"},
	model.QuestionTypePlot:      {"plot", "event", "happen", "conflict", "action", "consequence"},
	model.QuestionTypeSetting:   {"setting", "place", "location", "atmosphere", "world", "environment"},
	model.QuestionTypeTheme:     {"theme", "meaning", "message", "symbol", "represent", "moral"},
	model.QuestionTypeResearch:  {"research", "fact", "accurate", "detail", "source", "historical"},
	model.QuestionTypeGeneral:   {"chapter", "scene", "story", "reader", "write"},
}

// Score evaluates the question against the analysis. When the analysis is
// unusable it short-circuits to a neutral result rather than attempting
// partial scoring.
func (s *RelevanceScorer) Score(q model.CandidateQuestion, ca model.ContentAnalysis) model.RelevanceResult {
	if !ca.AnalysisPossible {
		return model.RelevanceResult{
			RelevanceScore: s.cfg.NeutralRelevance,
			Confidence:     s.cfg.NeutralConfidence,
			Reasoning:      "chapter content too short to analyze; neutral relevance assumed",
		}
	}

	components := map[string]float64{
		"keyword_overlap":     s.scoreKeywordOverlap(q.QuestionText, ca),
		"thematic_alignment":  scoreThematicAlignment(q, ca),
		"narrative_relevance": scoreNarrativeRelevance(q, ca.Narrative),
		"focus_alignment":     scoreFocusAlignment(q.QuestionType, ca.Focus),
		"depth_appropriate":   scoreDepthAppropriateness(q.Difficulty, ca),
	}

	w := s.cfg.Relevance
	total := components["keyword_overlap"]*w.KeywordOverlap +
		components["thematic_alignment"]*w.ThematicAlignment +
		components["narrative_relevance"]*w.NarrativeRelevance +
		components["focus_alignment"]*w.FocusAlignment +
		components["depth_appropriate"]*w.DepthAppropriate

	return model.RelevanceResult{
		RelevanceScore:  clamp01(total),
		Confidence:      clamp01(ca.Confidence),
		ComponentScores: components,
		Reasoning:       buildReasoning(components),
		Recommendations: buildRecommendations(components),
	}
}

// RankByRelevance returns the questions sorted descending by relevance
// score, stable on ties.
func (s *RelevanceScorer) RankByRelevance(questions []model.ScoredQuestion) []model.ScoredQuestion {
	ranked := make([]model.ScoredQuestion, len(questions))
	copy(ranked, questions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return relevanceOf(ranked[i]) > relevanceOf(ranked[j])
	})
	return ranked
}

func relevanceOf(q model.ScoredQuestion) float64 {
	if q.Relevance == nil {
		return 0
	}
	return q.Relevance.RelevanceScore
}

// SuggestContentBasedQuestions generates template-based candidates for the
// chapter's focus areas, scores them, and returns the top count. Used when
// no AI candidates are available.
func (s *RelevanceScorer) SuggestContentBasedQuestions(ca model.ContentAnalysis, count int) []model.ScoredQuestion {
	if !ca.AnalysisPossible || count <= 0 {
		return nil
	}

	categories := append([]model.ThemeCategory{ca.Focus.Primary}, ca.Focus.Secondary...)
	var candidates []model.CandidateQuestion
	for _, category := range categories {
		candidates = append(candidates, focusTemplates(category, ca)...)
	}

	scored := make([]model.ScoredQuestion, 0, len(candidates))
	for _, c := range candidates {
		result := s.Score(c, ca)
		scored = append(scored, model.ScoredQuestion{
			CandidateQuestion: c,
			QualityScore:      result.RelevanceScore,
			Relevance:         &result,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return relevanceOf(scored[i]) > relevanceOf(scored[j])
	})
	if len(scored) > count {
		scored = scored[:count]
	}
	return scored
}

func focusTemplates(category model.ThemeCategory, ca model.ContentAnalysis) []model.CandidateQuestion {
	subject := "this chapter"
	if len(ca.ProperNouns) > 0 {
		subject = ca.ProperNouns[0]
	}
	topic := ""
	if len(ca.KeyWords) > 0 {
		topic = ca.KeyWords[0]
	}

	switch category {
	case model.ThemeCharacter:
		return []model.CandidateQuestion{
			{QuestionText: fmt.Sprintf("What does %s want most in this chapter, and what stands in the way?", subject), QuestionType: model.QuestionTypeCharacter, Difficulty: model.DifficultyMedium},
			{QuestionText: fmt.Sprintf("How does %s change between the beginning and end of this chapter?", subject), QuestionType: model.QuestionTypeCharacter, Difficulty: model.DifficultyMedium},
		}
	case model.ThemePlot:
		return []model.CandidateQuestion{
			{QuestionText: "What event in this chapter most changes the direction of the story?", QuestionType: model.QuestionTypePlot, Difficulty: model.DifficultyMedium},
			{QuestionText: fmt.Sprintf("What consequences should follow from the events around %s?", orDefault(topic, "the climax")), QuestionType: model.QuestionTypePlot, Difficulty: model.DifficultyHard},
		}
	case model.ThemeSetting:
		return []model.CandidateQuestion{
			{QuestionText: "Which details of the setting matter most to what happens in this chapter?", QuestionType: model.QuestionTypeSetting, Difficulty: model.DifficultyEasy},
			{QuestionText: "How does the atmosphere of this chapter shape the reader's expectations?", QuestionType: model.QuestionTypeSetting, Difficulty: model.DifficultyMedium},
		}
	default:
		return []model.CandidateQuestion{
			{QuestionText: "What deeper meaning do you want readers to take from this chapter?", QuestionType: model.QuestionTypeTheme, Difficulty: model.DifficultyHard},
			{QuestionText: fmt.Sprintf("What does %s represent beyond its literal role in the story?", orDefault(topic, "the central image")), QuestionType: model.QuestionTypeTheme, Difficulty: model.DifficultyMedium},
		}
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// scoreKeywordOverlap intersects question tokens with the analyzer's top
// terms (weight 1.0), proper nouns (1.5x) and multi-word phrases (2x),
// normalized by min(cap, |keyWords|+|properNouns|). When the denominator is
// zero the component defaults to 0.5.
func (s *RelevanceScorer) scoreKeywordOverlap(text string, ca model.ContentAnalysis) float64 {
	denom := len(ca.KeyWords) + len(ca.ProperNouns)
	if denom == 0 {
		return 0.5
	}
	if denom > s.cfg.KeywordDenominatorCap {
		denom = s.cfg.KeywordDenominatorCap
	}

	questionTokens := textutil.TokenSet(text)
	lowerText := strings.ToLower(text)

	weighted := 0.0
	for _, kw := range ca.KeyWords {
		if questionTokens[kw] {
			weighted += 1.0
		}
	}
	for _, pn := range ca.ProperNouns {
		if questionTokens[strings.ToLower(pn)] {
			weighted += 1.5
		}
	}
	for _, phrase := range ca.KeyPhrases {
		if strings.Contains(lowerText, phrase) {
			weighted += 2.0
		}
	}

	return clamp01(weighted / float64(denom))
}

// scoreThematicAlignment blends the matching category's prominence (0.7x)
// with a normalized count of thematic keywords inside the question itself
// (0.3x, capped at 3 hits).
func scoreThematicAlignment(q model.CandidateQuestion, ca model.ContentAnalysis) float64 {
	category := themeCategoryFor(q.QuestionType, ca)
	prominence := ca.Themes[category].Prominence

	hits := 0
	tokens := textutil.TokenSet(q.QuestionText)
	for _, kw := range thematicKeywords[q.QuestionType] {
		if tokens[kw] {
			hits++
		}
	}
	if hits > 3 {
		hits = 3
	}

	return clamp01(0.7*prominence + 0.3*float64(hits)/3.0)
}

// themeCategoryFor maps a question type to a theme category. Research and
// general questions borrow the chapter's primary focus.
func themeCategoryFor(t model.QuestionType, ca model.ContentAnalysis) model.ThemeCategory {
	switch t {
	case model.QuestionTypeCharacter:
		return model.ThemeCharacter
	case model.QuestionTypePlot:
		return model.ThemePlot
	case model.QuestionTypeSetting:
		return model.ThemeSetting
	case model.QuestionTypeTheme:
		return model.ThemeTheme
	default:
		return ca.Focus.Primary
	}
}

// scoreNarrativeRelevance applies type-specific rules against the detected
// narrative elements plus generic keyword-to-element matches.
func scoreNarrativeRelevance(q model.CandidateQuestion, n model.NarrativeElements) float64 {
	score := 0.3

	switch q.QuestionType {
	case model.QuestionTypeCharacter:
		if n.HasDialogue {
			score += 0.3
		}
		if n.EmotionalContent {
			score += 0.2
		}
	case model.QuestionTypePlot:
		if n.ActionHeavy {
			score += 0.3
		}
		if n.ConflictPresent {
			score += 0.2
		}
	case model.QuestionTypeSetting:
		if n.DescriptiveRich {
			score += 0.3
		}
		if n.PlaceReferences > 0 {
			score += 0.2
		}
	case model.QuestionTypeTheme:
		if n.EmotionalContent {
			score += 0.3
		}
		if n.MysteryElements {
			score += 0.2
		}
	case model.QuestionTypeResearch:
		if n.TimeReferences > 0 {
			score += 0.2
		}
		if n.PlaceReferences > 0 {
			score += 0.2
		}
	default:
		if n.HasDialogue || n.ActionHeavy || n.DescriptiveRich || n.EmotionalContent {
			score += 0.1
		}
	}

	tokens := textutil.TokenSet(q.QuestionText)
	if (tokens["dialogue"] || tokens["conversation"]) && n.HasDialogue {
		score += 0.1
	}
	if (tokens["conflict"] || tokens["tension"]) && n.ConflictPresent {
		score += 0.1
	}
	if (tokens["mystery"] || tokens["secret"]) && n.MysteryElements {
		score += 0.1
	}

	return clamp01(score)
}

// scoreFocusAlignment rewards questions matching the chapter's primary
// (0.6 x strength) or secondary (0.3 x strength) focus; any recognized type
// gets a flat 0.1 floor.
func scoreFocusAlignment(t model.QuestionType, focus model.ChapterFocus) float64 {
	score := 0.0
	if model.IsValidQuestionType(string(t)) {
		score = 0.1
	}
	if string(t) == string(focus.Primary) {
		score += 0.6 * focus.FocusStrength
	} else {
		for _, sec := range focus.Secondary {
			if string(t) == string(sec) {
				score += 0.3 * focus.FocusStrength
				break
			}
		}
	}
	return clamp01(score)
}

// scoreDepthAppropriateness compares question difficulty against content
// length/complexity buckets. Exact matches score 1.0; graded mismatches
// score 0.7 (adjacent) or 0.4 (opposite).
func scoreDepthAppropriateness(d model.Difficulty, ca model.ContentAnalysis) float64 {
	var favored model.Difficulty
	switch {
	case ca.WordCount < 300 || ca.LexicalDiversity < 0.4:
		favored = model.DifficultyEasy
	case ca.WordCount > 1000 && ca.LexicalDiversity > 0.6:
		favored = model.DifficultyHard
	default:
		favored = model.DifficultyMedium
	}

	if d == favored {
		return 1.0
	}
	if d == model.DifficultyMedium || favored == model.DifficultyMedium {
		return 0.7
	}
	return 0.4
}

func buildReasoning(components map[string]float64) string {
	var clauses []string
	if components["keyword_overlap"] >= 0.6 {
		clauses = append(clauses, "strong lexical overlap with chapter content")
	}
	if components["thematic_alignment"] >= 0.6 {
		clauses = append(clauses, "aligns with the chapter's dominant themes")
	}
	if components["narrative_relevance"] >= 0.6 {
		clauses = append(clauses, "fits the chapter's narrative style")
	}
	if components["focus_alignment"] >= 0.5 {
		clauses = append(clauses, "matches the chapter's focus area")
	}
	if components["depth_appropriate"] >= 1.0 {
		clauses = append(clauses, "difficulty suits the content depth")
	}
	if len(clauses) == 0 {
		return "limited alignment with chapter content"
	}
	return strings.Join(clauses, "; ")
}

func buildRecommendations(components map[string]float64) []string {
	var recs []string
	if components["keyword_overlap"] < 0.3 {
		recs = append(recs, "reference specific names or terms from the chapter")
	}
	if components["thematic_alignment"] < 0.3 {
		recs = append(recs, "tie the question to one of the chapter's themes")
	}
	if components["focus_alignment"] < 0.2 {
		recs = append(recs, "target the chapter's primary focus area")
	}
	if components["depth_appropriate"] < 0.5 {
		recs = append(recs, "adjust the difficulty to the chapter's depth")
	}
	if len(recs) > 3 {
		recs = recs[:3]
	}
	return recs
}
