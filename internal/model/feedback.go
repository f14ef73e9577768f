package model

import (
	"strings"
	"time"
)

// FeedbackType is the closed set of feedback categories a reader can submit
type FeedbackType string

const (
	FeedbackRating        FeedbackType = "rating"
	FeedbackTooEasy       FeedbackType = "too_easy"
	FeedbackTooHard       FeedbackType = "too_hard"
	FeedbackIrrelevant    FeedbackType = "irrelevant"
	FeedbackUnclear       FeedbackType = "unclear"
	FeedbackHelpful       FeedbackType = "helpful"
	FeedbackRepetitive    FeedbackType = "repetitive"
	FeedbackNeedsExamples FeedbackType = "needs_examples"
	FeedbackPerfect       FeedbackType = "perfect"
)

// FeedbackTypes lists all valid feedback types
var FeedbackTypes = []FeedbackType{
	FeedbackRating,
	FeedbackTooEasy,
	FeedbackTooHard,
	FeedbackIrrelevant,
	FeedbackUnclear,
	FeedbackHelpful,
	FeedbackRepetitive,
	FeedbackNeedsExamples,
	FeedbackPerfect,
}

// NormalizeFeedbackType maps a free-form string onto the enum, defaulting to
// "rating" on unrecognized input. Submissions never fail on a bad type.
func NormalizeFeedbackType(s string) FeedbackType {
	t := FeedbackType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range FeedbackTypes {
		if t == known {
			return known
		}
	}
	return FeedbackRating
}

// RefinementAction is a textual-transform directive derived from feedback
// trends.
type RefinementAction string

const (
	ActionNone               RefinementAction = "no_action"
	ActionMarkForRemoval     RefinementAction = "mark_for_removal"
	ActionDecreaseDifficulty RefinementAction = "decrease_difficulty"
	ActionIncreaseDifficulty RefinementAction = "increase_difficulty"
	ActionAddClarity         RefinementAction = "add_clarity"
	ActionImproveRelevance   RefinementAction = "improve_relevance"
	ActionAddExamples        RefinementAction = "add_examples"
	ActionBoostPriority      RefinementAction = "boost_priority"
)

// FeedbackRecord is a single, immutable user feedback submission
type FeedbackRecord struct {
	ID         string       `json:"id" bson:"_id,omitempty"`
	QuestionID string       `json:"questionId" bson:"questionId"`
	Type       FeedbackType `json:"feedbackType" bson:"feedbackType"`
	Rating     int          `json:"rating,omitempty" bson:"rating,omitempty"` // 1-5, 0 when absent
	Comment    string       `json:"comment,omitempty" bson:"comment,omitempty"`
	UserLevel  WritingLevel `json:"userLevel,omitempty" bson:"userLevel,omitempty"`
	Weight     float64      `json:"weight" bson:"weight"`
	Insights   []string     `json:"insights,omitempty" bson:"insights,omitempty"`
	CreatedAt  time.Time    `json:"createdAt" bson:"createdAt"`
}

// LevelStats is the per-writing-level slice of a trend analysis
type LevelStats struct {
	Count         int     `json:"count" bson:"count"`
	AverageRating float64 `json:"averageRating" bson:"averageRating"`
}

// TrendAnalysis is the transient aggregate over a question's feedback.
// Recomputed on demand, never persisted as a long-lived entity.
type TrendAnalysis struct {
	QuestionID     string                      `json:"questionId"`
	FeedbackCount  int                         `json:"feedbackCount"`
	AverageRating  float64                     `json:"averageRating"`
	RatingStdDev   float64                     `json:"ratingStdDev"`
	TypeCounts     map[FeedbackType]int        `json:"typeCounts"`
	LevelBreakdown map[WritingLevel]LevelStats `json:"levelBreakdown"`
	Actions        []RefinementAction          `json:"recommendedActions"`
	Confidence     float64                     `json:"confidenceScore"`
	Priority       float64                     `json:"priorityScore"`
}
