package scoring

import (
	"bookforge/internal/model"
	"bookforge/internal/textutil"
)

// DiversityFilter caps how many questions of each type survive and drops
// near-duplicates. It processes questions in input order, so callers wanting
// "best N survive" must pre-sort by score.
type DiversityFilter struct {
	cfg Config
}

// NewDiversityFilter creates a filter with the given config.
func NewDiversityFilter(cfg Config) *DiversityFilter {
	return &DiversityFilter{cfg: cfg}
}

// EnsureDiversity returns the filtered list preserving relative order.
// Similarity is only checked against previously accepted questions in a
// single forward pass, which makes the outcome order-dependent when several
// near-duplicates are present; this is the intended O(n*k) behavior.
func (f *DiversityFilter) EnsureDiversity(questions []model.ScoredQuestion, maxPerType int, similarityThreshold float64) []model.ScoredQuestion {
	if maxPerType <= 0 {
		maxPerType = f.cfg.MaxPerType
	}
	if similarityThreshold <= 0 {
		similarityThreshold = f.cfg.SimilarityThreshold
	}

	typeCounts := make(map[model.QuestionType]int)
	accepted := make([]model.ScoredQuestion, 0, len(questions))

	for _, q := range questions {
		if typeCounts[q.QuestionType] >= maxPerType {
			continue
		}
		if tooSimilar(q, accepted, similarityThreshold) {
			continue
		}
		typeCounts[q.QuestionType]++
		accepted = append(accepted, q)
	}
	return accepted
}

func tooSimilar(q model.ScoredQuestion, accepted []model.ScoredQuestion, threshold float64) bool {
	for _, a := range accepted {
		if textutil.Overlap(q.QuestionText, a.QuestionText) >= threshold {
			return true
		}
	}
	return false
}
