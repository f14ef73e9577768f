package scoring

import (
	"sort"
	"strings"

	"bookforge/internal/model"
	"bookforge/internal/textutil"
)

// QualityScorer scores a candidate's intrinsic quality against chapter
// context, independent of any content analysis. Its chapter-relevance signal
// deliberately duplicates (with simpler math) what RelevanceScorer computes;
// the two are weighted independently in the pipeline by design.
type QualityScorer struct {
	cfg Config
}

// NewQualityScorer creates a scorer with the given config.
func NewQualityScorer(cfg Config) *QualityScorer {
	return &QualityScorer{cfg: cfg}
}

var primaryInterrogatives = []string{"what", "how", "why", "who", "when", "where"}

var modalWords = []string{"would", "could", "should"}

var imperativeVerbs = []string{"describe", "explain", "analyze", "compare", "discuss"}

// Heavily generic phrases that add nothing to an interview.
var genericPhrases = map[string]bool{
	"what happens in this chapter?":   true,
	"what happens in this chapter":    true,
	"describe what happens next":      true,
	"describe what happens next.":     true,
	"what is this chapter about?":     true,
	"what is this chapter about":      true,
	"tell me about this chapter":      true,
	"tell me about this chapter.":     true,
	"what do you want to write about": true,
}

// Moderately generic phrases — penalized but usable.
var moderateGenericPhrases = map[string]bool{
	"what are the key concepts?":        true,
	"what are the key concepts":         true,
	"what are the main ideas?":          true,
	"what are the main ideas":           true,
	"what should readers know?":         true,
	"what should readers know":          true,
	"what is important here?":           true,
	"what is important here":            true,
	"what are the important points?":    true,
	"what are the important points":     true,
	"what would you like to add?":       true,
	"what would you like to add":        true,
	"describe the chapter in one word.": true,
}

var genreTerms = map[string][]string{
	"fantasy":    {"magic", "quest", "kingdom", "dragon", "spell", "prophecy"},
	"mystery":    {"clue", "suspect", "motive", "alibi", "detective", "evidence"},
	"romance":    {"love", "relationship", "attraction", "heartbreak", "passion"},
	"sci-fi":     {"technology", "future", "ship", "planet", "alien", "system"},
	"thriller":   {"danger", "threat", "chase", "escape", "stakes", "betrayal"},
	"nonfiction": {"research", "source", "evidence", "argument", "example", "data"},
}

// Score returns the weighted aggregate quality score in [0,1].
func (s *QualityScorer) Score(q model.CandidateQuestion, ctx model.ChapterContext) float64 {
	w := s.cfg.Quality
	total := scoreLengthComplexity(q.QuestionText)*w.LengthComplexity +
		scoreQuestionWord(q.QuestionText)*w.QuestionWord +
		scoreChapterRelevance(q.QuestionText, ctx)*w.ChapterRelevance +
		scoreTypeValidity(q.QuestionType)*w.TypeValidity +
		scoreGenericPenalty(q.QuestionText)*w.GenericPenalty +
		scoreFormat(q.QuestionText)*w.FormatCorrectness
	return clamp01(total)
}

// FilterByQuality scores every question, keeps those at or above minScore,
// sorts descending by score (stable on ties) and truncates to maxQuestions.
func (s *QualityScorer) FilterByQuality(questions []model.CandidateQuestion, ctx model.ChapterContext, minScore float64, maxQuestions int) []model.ScoredQuestion {
	scored := make([]model.ScoredQuestion, 0, len(questions))
	for _, q := range questions {
		score := s.Score(q, ctx)
		if score >= minScore {
			scored = append(scored, model.ScoredQuestion{
				CandidateQuestion: q,
				QualityScore:      score,
			})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].QualityScore > scored[j].QualityScore
	})
	if maxQuestions > 0 && len(scored) > maxQuestions {
		scored = scored[:maxQuestions]
	}
	return scored
}

// scoreLengthComplexity checks the question against an optimal band
// (8-25 words and 40-150 chars) and a wider acceptable band.
func scoreLengthComplexity(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0.0
	}
	words := len(strings.Fields(text))
	chars := len(text)

	if words >= 8 && words <= 25 && chars >= 40 && chars <= 150 {
		return 1.0
	}
	if words >= 5 && words <= 35 && chars >= 25 && chars <= 200 {
		return 0.6
	}
	return 0.2
}

// scoreQuestionWord rewards interrogative strength. Absence of every signal
// floors at 0.2 rather than zero so valid imperative-form questions are not
// over-penalized.
func scoreQuestionWord(text string) float64 {
	tokens := textutil.Tokenize(text)
	if len(tokens) == 0 {
		return 0.2
	}
	first := tokens[0]

	for _, w := range primaryInterrogatives {
		if first == w {
			return 1.0
		}
	}
	if containsAny(tokens, primaryInterrogatives) {
		return 0.8
	}
	for _, w := range modalWords {
		if first == w {
			return 0.8
		}
	}
	if containsAny(tokens, modalWords) {
		return 0.5
	}
	for _, w := range imperativeVerbs {
		if first == w {
			return 0.7
		}
	}
	if containsAny(tokens, imperativeVerbs) {
		return 0.4
	}
	return 0.2
}

// scoreChapterRelevance measures lexical overlap with the chapter title and
// content plus a small genre-term bonus. Returns 0.0 when the chapter
// context is entirely empty.
func scoreChapterRelevance(text string, ctx model.ChapterContext) float64 {
	if ctx.Title == "" && ctx.Content == "" && ctx.Genre == "" {
		return 0.0
	}

	questionWords := textutil.TokenSet(text)
	if len(questionWords) == 0 {
		return 0.0
	}

	score := 0.0

	titleWords := textutil.TokenSet(ctx.Title)
	if len(titleWords) > 0 {
		shared := 0
		for w := range titleWords {
			if questionWords[w] {
				shared++
			}
		}
		score += 0.5 * float64(shared) / float64(len(titleWords))
	}

	contentWords := textutil.TokenSet(ctx.Content)
	if len(contentWords) > 0 {
		shared := 0
		for w := range questionWords {
			if contentWords[w] {
				shared++
			}
		}
		score += 0.4 * float64(shared) / float64(len(questionWords))
	}

	if terms, ok := genreTerms[strings.ToLower(ctx.Genre)]; ok {
		for _, term := range terms {
			if questionWords[term] {
				score += 0.1
				break
			}
		}
	}

	return clamp01(score)
}

func scoreTypeValidity(t model.QuestionType) float64 {
	if model.IsValidQuestionType(string(t)) {
		return 1.0
	}
	return 0.0
}

// scoreGenericPenalty is a three-tier exact phrase-membership lookup, not
// fuzzy matching.
func scoreGenericPenalty(text string) float64 {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if genericPhrases[normalized] {
		return 0.2
	}
	if moderateGenericPhrases[normalized] {
		return 0.6
	}
	return 1.0
}

// scoreFormat starts from 1.0 and deducts for a missing terminal "?", a
// lowercase first character, and runs of three or more punctuation marks.
// The empty string scores the 0.2 floor: absence of all signals is distinct
// from clearly malformed text.
func scoreFormat(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0.2
	}

	score := 1.0
	if !strings.HasSuffix(text, "?") {
		score -= 0.3
	}
	first := rune(text[0])
	if first >= 'a' && first <= 'z' {
		score -= 0.2
	}
	if hasExcessivePunctuation(text) {
		score -= 0.3
	}
	if score < 0 {
		score = 0
	}
	return score
}

func hasExcessivePunctuation(text string) bool {
	run := 0
	for _, r := range text {
		if strings.ContainsRune(".,!?;:", r) {
			run++
			if run >= 3 {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

func containsAny(tokens []string, words []string) bool {
	for _, t := range tokens {
		for _, w := range words {
			if t == w {
				return true
			}
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
