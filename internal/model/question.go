package model

import (
	"strings"
	"time"
)

// QuestionType classifies what aspect of the chapter a question probes
type QuestionType string

const (
	QuestionTypeCharacter QuestionType = "character"
	QuestionTypePlot      QuestionType = "plot"
	QuestionTypeSetting   QuestionType = "setting"
	QuestionTypeTheme     QuestionType = "theme"
	QuestionTypeResearch  QuestionType = "research"
	QuestionTypeGeneral   QuestionType = "general"
)

// QuestionTypes lists all valid question types in declaration order
var QuestionTypes = []QuestionType{
	QuestionTypeCharacter,
	QuestionTypePlot,
	QuestionTypeSetting,
	QuestionTypeTheme,
	QuestionTypeResearch,
	QuestionTypeGeneral,
}

// NormalizeQuestionType maps a free-form type string onto the closed enum.
// Unrecognized values degrade to "general" rather than failing, since these
// strings originate from an LLM.
func NormalizeQuestionType(s string) QuestionType {
	t := QuestionType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range QuestionTypes {
		if t == known {
			return known
		}
	}
	return QuestionTypeGeneral
}

// IsValidQuestionType reports whether s matches the enum, case-insensitively.
func IsValidQuestionType(s string) bool {
	t := QuestionType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Difficulty is the declared difficulty tier of a question
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// NormalizeDifficulty maps a free-form difficulty string onto the enum,
// defaulting to medium.
func NormalizeDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// CandidateQuestion is an unscored question produced by the AI source, a
// fallback template, or a refinement pass.
type CandidateQuestion struct {
	QuestionText  string          `json:"questionText" bson:"questionText"`
	QuestionType  QuestionType    `json:"questionType" bson:"questionType"`
	Difficulty    Difficulty      `json:"difficulty" bson:"difficulty"`
	HelpText      string          `json:"helpText,omitempty" bson:"helpText,omitempty"`
	Examples      []string        `json:"examples,omitempty" bson:"examples,omitempty"`
	Encouragement string          `json:"encouragement,omitempty" bson:"encouragement,omitempty"`
	Refinement    *RefinementInfo `json:"refinementInfo,omitempty" bson:"refinementInfo,omitempty"`
}

// RefinementInfo is the mandatory audit block attached whenever a question
// is rewritten from feedback trends.
type RefinementInfo struct {
	OriginalText     string             `json:"originalText" bson:"originalText"`
	OriginalHelpText string             `json:"originalHelpText,omitempty" bson:"originalHelpText,omitempty"`
	Actions          []RefinementAction `json:"actions" bson:"actions"`
	BasedOnFeedback  int                `json:"basedOnFeedback" bson:"basedOnFeedback"`
	Confidence       float64            `json:"confidence" bson:"confidence"`
	RefinedAt        time.Time          `json:"refinedAt" bson:"refinedAt"`
}

// RelevanceResult is RelevanceScorer's output for one question
type RelevanceResult struct {
	RelevanceScore  float64            `json:"relevanceScore" bson:"relevanceScore"`
	Confidence      float64            `json:"confidence" bson:"confidence"`
	ComponentScores map[string]float64 `json:"componentScores" bson:"componentScores"`
	Reasoning       string             `json:"reasoning" bson:"reasoning"`
	Recommendations []string           `json:"recommendations,omitempty" bson:"recommendations,omitempty"`
}

// ScoredQuestion is a candidate plus its scoring results
type ScoredQuestion struct {
	CandidateQuestion `bson:",inline"`

	QualityScore float64          `json:"qualityScore" bson:"qualityScore"`
	Relevance    *RelevanceResult `json:"relevanceAnalysis,omitempty" bson:"relevanceAnalysis,omitempty"`
}

// QuestionMetadata is stored verbatim alongside a persisted question so the
// frontend can render guidance without re-running the pipeline.
type QuestionMetadata struct {
	SuggestedResponseLength string   `json:"suggestedResponseLength" bson:"suggestedResponseLength"`
	HelpText                string   `json:"helpText,omitempty" bson:"helpText,omitempty"`
	Examples                []string `json:"examples,omitempty" bson:"examples,omitempty"`
}

// Question is the persisted form of a pipeline-produced question
type Question struct {
	ID        string           `json:"id" bson:"_id,omitempty"`
	BookID    string           `json:"bookId" bson:"bookId"`
	ChapterID string           `json:"chapterId" bson:"chapterId"`
	Scored    ScoredQuestion   `json:"question" bson:"question"`
	Metadata  QuestionMetadata `json:"metadata" bson:"metadata"`
	Order     int              `json:"order" bson:"order"`
	Answered  bool             `json:"answered" bson:"answered"`
	CreatedAt time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// Response is an author's answer to an interview question
type Response struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	QuestionID string     `json:"questionId" bson:"questionId"`
	ChapterID  string     `json:"chapterId" bson:"chapterId"`
	AuthorID   string     `json:"authorId" bson:"authorId"`
	Text       string     `json:"text" bson:"text"`
	Difficulty Difficulty `json:"difficulty" bson:"difficulty"` // Of the question answered
	Quality    float64    `json:"quality" bson:"quality"`       // 0-1, heuristic
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
}
