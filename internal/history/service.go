// Package history mines a read-only corpus of past chapters for similarity
// matches, success patterns and per-question success predictions, and applies
// position-preference sequencing to fresh question sets.
package history

import (
	"math"
	"sort"
	"strings"

	"bookforge/internal/model"
	"bookforge/internal/textutil"
)

// Config holds the similarity weights and thresholds for corpus mining.
type Config struct {
	GenreWeight        float64
	TitleWeight        float64 // Upper bound of the title-overlap contribution
	PerSharedTitleWord float64
	LengthWeight       float64

	MinChapterSimilarity float64
	MaxMatches           int

	SuccessMinRating     float64
	SuccessMinCompletion float64

	QuestionSimilarityThreshold float64

	// SequencePolicy selects the secondary ordering; "easy_to_hard" adds an
	// ascending difficulty key.
	SequencePolicy string
}

// DefaultConfig returns the standard mining configuration.
func DefaultConfig() Config {
	return Config{
		GenreWeight:                 0.4,
		TitleWeight:                 0.3,
		PerSharedTitleWord:          0.1,
		LengthWeight:                0.3,
		MinChapterSimilarity:        0.3,
		MaxMatches:                  10,
		SuccessMinRating:            4.0,
		SuccessMinCompletion:        0.7,
		QuestionSimilarityThreshold: 0.5,
		SequencePolicy:              "easy_to_hard",
	}
}

// Service answers trend queries over an externally supplied corpus.
type Service struct {
	cfg Config
}

// NewService creates a Service with the given config.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// FindSimilarChapters scores every corpus entry against the chapter context
// and returns entries above the similarity floor, best first, capped.
func (s *Service) FindSimilarChapters(ctx model.ChapterContext, corpus []model.HistoricalChapterRecord) []model.ChapterMatch {
	matches := make([]model.ChapterMatch, 0, len(corpus))
	for _, rec := range corpus {
		sim := s.chapterSimilarity(ctx, rec)
		if sim >= s.cfg.MinChapterSimilarity {
			matches = append(matches, model.ChapterMatch{Record: rec, Similarity: sim})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > s.cfg.MaxMatches {
		matches = matches[:s.cfg.MaxMatches]
	}
	return matches
}

func (s *Service) chapterSimilarity(ctx model.ChapterContext, rec model.HistoricalChapterRecord) float64 {
	sim := 0.0
	if ctx.Genre != "" && strings.EqualFold(ctx.Genre, rec.Genre) {
		sim += s.cfg.GenreWeight
	}

	shared := textutil.SharedWords(ctx.Title, rec.Title)
	sim += math.Min(s.cfg.TitleWeight, float64(shared)*s.cfg.PerSharedTitleWord)

	sim += s.cfg.LengthWeight * lengthRatio(len(ctx.Content), len(rec.Content))
	return sim
}

func lengthRatio(a, b int) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > b {
		a, b = b, a
	}
	return float64(a) / float64(b)
}

// ExtractSuccessfulPatterns derives the question-type distribution and count
// statistics from the successful subset of similar chapters. A chapter counts
// as successful when both its rating and completion clear the thresholds.
func (s *Service) ExtractSuccessfulPatterns(matches []model.ChapterMatch) model.SuccessPattern {
	pattern := model.SuccessPattern{
		TypeDistribution: make(map[model.QuestionType]float64),
	}

	totalQuestions := 0
	typeCounts := make(map[model.QuestionType]int)
	countSum := 0
	for _, m := range matches {
		rec := m.Record
		if rec.AvgRating < s.cfg.SuccessMinRating || rec.CompletionRate < s.cfg.SuccessMinCompletion {
			continue
		}
		pattern.SampleSize++
		n := len(rec.Questions)
		countSum += n
		totalQuestions += n
		if pattern.SampleSize == 1 {
			pattern.CountMin, pattern.CountMax = n, n
		} else {
			if n < pattern.CountMin {
				pattern.CountMin = n
			}
			if n > pattern.CountMax {
				pattern.CountMax = n
			}
		}
		for _, q := range rec.Questions {
			typeCounts[model.NormalizeQuestionType(string(q.QuestionType))]++
		}
	}

	if pattern.SampleSize == 0 {
		return pattern
	}
	pattern.OptimalCount = float64(countSum) / float64(pattern.SampleSize)
	for qtype, c := range typeCounts {
		if totalQuestions > 0 {
			pattern.TypeDistribution[qtype] = float64(c) / float64(totalQuestions)
		}
	}
	return pattern
}

// PredictQuestionSuccess estimates how well a question will perform from the
// outcomes of similar historical questions. With no similar questions it
// returns a neutral low-confidence prediction rather than an error.
func (s *Service) PredictQuestionSuccess(q model.CandidateQuestion, corpus []model.HistoricalChapterRecord) model.SuccessPrediction {
	var similarities, composites []float64
	for _, rec := range corpus {
		for _, hq := range rec.Questions {
			sim := questionSimilarity(q, hq)
			if sim >= s.cfg.QuestionSimilarityThreshold {
				similarities = append(similarities, sim)
				composites = append(composites, compositeSuccess(hq.Metrics))
			}
		}
	}

	if len(composites) == 0 {
		return model.SuccessPrediction{PredictedScore: 0.5, Confidence: 0.1}
	}

	predicted := mean(composites)
	conf := predictionConfidence(len(composites), mean(similarities), variance(composites))
	return model.SuccessPrediction{
		PredictedScore: predicted,
		Confidence:     conf,
		SimilarCount:   len(composites),
	}
}

// questionSimilarity compares two questions on type, difficulty, length and
// leading question word.
func questionSimilarity(q model.CandidateQuestion, h model.HistoricalQuestion) float64 {
	sim := 0.0
	if model.NormalizeQuestionType(string(q.QuestionType)) == model.NormalizeQuestionType(string(h.QuestionType)) {
		sim += 0.4
	}
	if model.NormalizeDifficulty(string(q.Difficulty)) == model.NormalizeDifficulty(string(h.Difficulty)) {
		sim += 0.2
	}
	sim += 0.2 * lengthRatio(len(strings.Fields(q.QuestionText)), len(strings.Fields(h.QuestionText)))
	if leadingWord(q.QuestionText) == leadingWord(h.QuestionText) && leadingWord(q.QuestionText) != "" {
		sim += 0.2
	}
	return sim
}

func leadingWord(text string) string {
	tokens := textutil.Tokenize(text)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// compositeSuccess folds a question's metrics into one 0-1 score.
func compositeSuccess(m model.QuestionMetrics) float64 {
	return (m.AvgRating/5)*0.4 + m.CompletionRate*0.4 + m.QualityScore*0.2
}

func predictionConfidence(count int, avgSimilarity, scoreVariance float64) float64 {
	conf := math.Min(0.4, float64(count)*0.1)
	conf += 0.3 * avgSimilarity
	conf += 0.3 * (1 - math.Min(1, scoreVariance*4))
	return clamp01(conf)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	v := 0.0
	for _, x := range values {
		d := x - m
		v += d * d
	}
	return v / float64(len(values))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

var positionPreference = map[model.QuestionType]float64{
	model.QuestionTypeCharacter: -2, // Warm-up territory
	model.QuestionTypeSetting:   -1,
	model.QuestionTypeResearch:  1,
	model.QuestionTypeTheme:     2, // Works best once the author is warmed up
}

var difficultyRank = map[model.Difficulty]int{
	model.DifficultyEasy:   0,
	model.DifficultyMedium: 1,
	model.DifficultyHard:   2,
}

// OptimizeQuestionSequence reorders questions by position preference. Under
// the easy_to_hard policy a stable difficulty key keeps easier questions
// ahead within the same preference band.
func (s *Service) OptimizeQuestionSequence(questions []model.ScoredQuestion) []model.ScoredQuestion {
	ordered := append([]model.ScoredQuestion(nil), questions...)

	if s.cfg.SequencePolicy == "easy_to_hard" {
		sort.SliceStable(ordered, func(i, j int) bool {
			return difficultyRank[ordered[i].Difficulty] < difficultyRank[ordered[j].Difficulty]
		})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return positionScore(ordered[i]) < positionScore(ordered[j])
	})
	return ordered
}

func positionScore(q model.ScoredQuestion) float64 {
	score := positionPreference[q.QuestionType]
	switch q.Difficulty {
	case model.DifficultyEasy:
		score -= 0.5
	case model.DifficultyHard:
		score += 0.5
	}
	return score
}

// AnalyzeDistribution summarizes a chapter's current question set and flags
// coverage or quality gaps.
func (s *Service) AnalyzeDistribution(questions []model.ScoredQuestion) model.DistributionReport {
	report := model.DistributionReport{
		TypeCounts: make(map[model.QuestionType]int),
	}
	if len(questions) == 0 {
		report.Recommendations = []string{"no questions to analyze yet; generate a question set first"}
		return report
	}

	sum := 0.0
	report.MinQuality = questions[0].QualityScore
	report.MaxQuality = questions[0].QualityScore
	for _, q := range questions {
		report.TypeCounts[q.QuestionType]++
		sum += q.QualityScore
		if q.QualityScore < report.MinQuality {
			report.MinQuality = q.QualityScore
		}
		if q.QualityScore > report.MaxQuality {
			report.MaxQuality = q.QualityScore
		}
	}
	report.TotalQuestions = len(questions)
	report.AverageQuality = sum / float64(len(questions))

	for _, qtype := range []model.QuestionType{model.QuestionTypeCharacter, model.QuestionTypePlot, model.QuestionTypeSetting, model.QuestionTypeTheme} {
		if report.TypeCounts[qtype] == 0 {
			report.Recommendations = append(report.Recommendations, "consider adding a "+string(qtype)+" question for broader coverage")
		}
	}
	if report.AverageQuality < 0.5 {
		report.Recommendations = append(report.Recommendations, "overall question quality is low; consider regenerating this set")
	}
	return report
}
