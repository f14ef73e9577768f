// Package feedback turns raw reader feedback into weighted records, aggregates
// them into per-question trend analyses, and rewrites questions according to
// the recommended refinement actions.
package feedback

import (
	"errors"
	"math"
	"strings"
	"time"

	"bookforge/internal/model"
)

// ErrNoFeedback is returned when a trend analysis is requested with zero
// records.
var ErrNoFeedback = errors.New("no feedback records to analyze")

// minActionableCount is the hard gate below which no action beyond no_action
// is ever recommended.
const minActionableCount = 3

// typeWeights assigns each feedback type a fixed influence weight.
var typeWeights = map[model.FeedbackType]float64{
	model.FeedbackRating:        1.0,
	model.FeedbackTooEasy:       0.9,
	model.FeedbackTooHard:       0.9,
	model.FeedbackIrrelevant:    1.2,
	model.FeedbackUnclear:       1.1,
	model.FeedbackHelpful:       0.8,
	model.FeedbackRepetitive:    0.7,
	model.FeedbackNeedsExamples: 0.85,
	model.FeedbackPerfect:       0.8,
}

// Submission is a raw, untrusted feedback payload.
type Submission struct {
	QuestionID string
	Type       string
	Rating     int
	Comment    string
	UserLevel  string
}

// Analyzer processes, aggregates and acts on question feedback.
type Analyzer struct {
	now func() time.Time
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{now: time.Now}
}

// Process normalizes a submission into a weighted FeedbackRecord. Unrecognized
// feedback types degrade to "rating"; the call never fails.
func (a *Analyzer) Process(sub Submission) model.FeedbackRecord {
	ftype := model.NormalizeFeedbackType(sub.Type)
	return model.FeedbackRecord{
		QuestionID: sub.QuestionID,
		Type:       ftype,
		Rating:     sub.Rating,
		Comment:    sub.Comment,
		UserLevel:  model.NormalizeWritingLevel(sub.UserLevel),
		Weight:     typeWeights[ftype],
		Insights:   deriveInsights(sub.Rating, sub.Comment),
		CreatedAt:  a.now().UTC(),
	}
}

func deriveInsights(rating int, comment string) []string {
	var insights []string
	if rating >= 1 && rating <= 2 {
		insights = append(insights, "user found this question unsatisfactory")
	}
	if rating >= 4 {
		insights = append(insights, "user found this question helpful")
	}
	c := strings.ToLower(comment)
	if strings.Contains(c, "confusing") || strings.Contains(c, "unclear") {
		insights = append(insights, "question wording may need improvement")
	}
	if strings.Contains(c, "easy") || strings.Contains(c, "simple") {
		insights = append(insights, "question may be too easy for this user")
	}
	if strings.Contains(c, "hard") || strings.Contains(c, "difficult") {
		insights = append(insights, "question may be too challenging")
	}
	if strings.Contains(c, "irrelevant") {
		insights = append(insights, "question relevance to chapter content questioned")
	}
	return insights
}

// AnalyzeTrends aggregates a question's feedback into a TrendAnalysis. At
// least one record is required. Ratings of zero mean "not rated" and are
// excluded from rating statistics.
func (a *Analyzer) AnalyzeTrends(questionID string, records []model.FeedbackRecord) (model.TrendAnalysis, error) {
	if len(records) == 0 {
		return model.TrendAnalysis{}, ErrNoFeedback
	}

	typeCounts := make(map[model.FeedbackType]int)
	levelCounts := make(map[model.WritingLevel]int)
	levelRatingSums := make(map[model.WritingLevel]float64)
	levelRated := make(map[model.WritingLevel]int)
	levelTypeCounts := make(map[model.WritingLevel]map[model.FeedbackType]int)

	var ratings []float64
	for _, r := range records {
		typeCounts[r.Type]++
		levelCounts[r.UserLevel]++
		if levelTypeCounts[r.UserLevel] == nil {
			levelTypeCounts[r.UserLevel] = make(map[model.FeedbackType]int)
		}
		levelTypeCounts[r.UserLevel][r.Type]++
		if r.Rating > 0 {
			ratings = append(ratings, float64(r.Rating))
			levelRatingSums[r.UserLevel] += float64(r.Rating)
			levelRated[r.UserLevel]++
		}
	}

	mean, stdev := meanStdDev(ratings)

	breakdown := make(map[model.WritingLevel]model.LevelStats, len(levelCounts))
	for level, count := range levelCounts {
		stats := model.LevelStats{Count: count}
		if levelRated[level] > 0 {
			stats.AverageRating = levelRatingSums[level] / float64(levelRated[level])
		}
		breakdown[level] = stats
	}

	ta := model.TrendAnalysis{
		QuestionID:     questionID,
		FeedbackCount:  len(records),
		AverageRating:  mean,
		RatingStdDev:   stdev,
		TypeCounts:     typeCounts,
		LevelBreakdown: breakdown,
	}
	ta.Actions = recommendActions(ta, len(ratings) > 0, levelTypeCounts)
	ta.Confidence = trendConfidence(ta)
	ta.Priority = trendPriority(ta, len(ratings) > 0)
	return ta, nil
}

func meanStdDev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func recommendActions(ta model.TrendAnalysis, hasRatings bool, levelTypeCounts map[model.WritingLevel]map[model.FeedbackType]int) []model.RefinementAction {
	if ta.FeedbackCount < minActionableCount {
		return []model.RefinementAction{model.ActionNone}
	}

	var actions []model.RefinementAction
	add := func(a model.RefinementAction) {
		for _, existing := range actions {
			if existing == a {
				return
			}
		}
		actions = append(actions, a)
	}

	if hasRatings {
		switch {
		case ta.AverageRating <= 2.0:
			add(model.ActionMarkForRemoval)
		case ta.AverageRating <= 3.0:
			tooHard := ta.TypeCounts[model.FeedbackTooHard]
			tooEasy := ta.TypeCounts[model.FeedbackTooEasy]
			if tooHard > tooEasy {
				add(model.ActionDecreaseDifficulty)
			} else if tooEasy > tooHard {
				add(model.ActionIncreaseDifficulty)
			}
			if ta.TypeCounts[model.FeedbackUnclear] > 0 {
				add(model.ActionAddClarity)
			}
			if ta.TypeCounts[model.FeedbackIrrelevant] > 0 {
				add(model.ActionImproveRelevance)
			}
		case ta.AverageRating >= 4.5:
			add(model.ActionBoostPriority)
		}
	}

	// Examples requests count regardless of how the question rates overall.
	if ta.TypeCounts[model.FeedbackNeedsExamples] > 0 {
		add(model.ActionAddExamples)
	}

	if levelTypeCounts[model.LevelBeginner][model.FeedbackTooHard] >= 2 {
		add(model.ActionDecreaseDifficulty)
	}
	if levelTypeCounts[model.LevelAdvanced][model.FeedbackTooEasy] >= 2 {
		add(model.ActionIncreaseDifficulty)
	}

	if len(actions) == 0 {
		return []model.RefinementAction{model.ActionNone}
	}
	return actions
}

func trendConfidence(ta model.TrendAnalysis) float64 {
	conf := 0.0

	switch {
	case ta.FeedbackCount >= 20:
		conf += 0.4
	case ta.FeedbackCount >= 10:
		conf += 0.3
	case ta.FeedbackCount >= 5:
		conf += 0.2
	default:
		conf += 0.1
	}

	switch {
	case ta.RatingStdDev < 0.5:
		conf += 0.3
	case ta.RatingStdDev < 1.0:
		conf += 0.2
	default:
		conf += 0.1
	}

	dominant := 0
	for _, c := range ta.TypeCounts {
		if c > dominant {
			dominant = c
		}
	}
	if float64(dominant)/float64(ta.FeedbackCount) >= 0.6 {
		conf += 0.3
	} else {
		conf += 0.2
	}

	return math.Min(conf, 1.0)
}

func trendPriority(ta model.TrendAnalysis, hasRatings bool) float64 {
	mean := ta.AverageRating
	if !hasRatings {
		mean = 3.0
	}
	priority := math.Max(0, (5-mean)/5)
	priority *= math.Min(2.0, 1+float64(ta.FeedbackCount)/10)
	if ta.TypeCounts[model.FeedbackIrrelevant] > 0 || ta.TypeCounts[model.FeedbackUnclear] > 0 {
		priority *= 1.5
	}
	return math.Min(priority, 1.0)
}
