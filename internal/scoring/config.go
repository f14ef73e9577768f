// Package scoring evaluates candidate questions against chapter context.
// QualityScorer judges intrinsic question quality, RelevanceScorer judges
// alignment with a content analysis, and DiversityFilter dedups and caps the
// scored set. All components are stateless pure functions of their inputs.
package scoring

// QualityWeights are the six QualityScorer component weights. They must sum
// to exactly 1.0.
type QualityWeights struct {
	LengthComplexity  float64
	QuestionWord      float64
	ChapterRelevance  float64
	TypeValidity      float64
	GenericPenalty    float64
	FormatCorrectness float64
}

// Sum returns the total of all weights.
func (w QualityWeights) Sum() float64 {
	return w.LengthComplexity + w.QuestionWord + w.ChapterRelevance +
		w.TypeValidity + w.GenericPenalty + w.FormatCorrectness
}

// RelevanceWeights are the five RelevanceScorer component weights. They must
// sum to exactly 1.0.
type RelevanceWeights struct {
	KeywordOverlap     float64
	ThematicAlignment  float64
	NarrativeRelevance float64
	FocusAlignment     float64
	DepthAppropriate   float64
}

// Sum returns the total of all weights.
func (w RelevanceWeights) Sum() float64 {
	return w.KeywordOverlap + w.ThematicAlignment + w.NarrativeRelevance +
		w.FocusAlignment + w.DepthAppropriate
}

// Config collects every weight and threshold the scorers use, so tests can
// exercise boundary values deterministically.
type Config struct {
	Quality   QualityWeights
	Relevance RelevanceWeights

	// DiversityFilter
	MaxPerType          int
	SimilarityThreshold float64

	// RelevanceScorer keyword-overlap normalization cap
	KeywordDenominatorCap int

	// Neutral result for unusable content analysis
	NeutralRelevance  float64
	NeutralConfidence float64
}

// DefaultConfig returns the production weights and thresholds.
func DefaultConfig() Config {
	return Config{
		Quality: QualityWeights{
			LengthComplexity:  0.20,
			QuestionWord:      0.15,
			ChapterRelevance:  0.25,
			TypeValidity:      0.15,
			GenericPenalty:    0.15,
			FormatCorrectness: 0.10,
		},
		Relevance: RelevanceWeights{
			KeywordOverlap:     0.25,
			ThematicAlignment:  0.25,
			NarrativeRelevance: 0.20,
			FocusAlignment:     0.15,
			DepthAppropriate:   0.15,
		},
		MaxPerType:            3,
		SimilarityThreshold:   0.7,
		KeywordDenominatorCap: 10,
		NeutralRelevance:      0.5,
		NeutralConfidence:     0.1,
	}
}
