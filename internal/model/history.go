package model

// QuestionMetrics are the observed outcomes for a historical question
type QuestionMetrics struct {
	AvgRating      float64 `json:"avgRating" bson:"avgRating"`           // 1-5
	CompletionRate float64 `json:"completionRate" bson:"completionRate"` // 0-1
	QualityScore   float64 `json:"qualityScore" bson:"qualityScore"`     // 0-1
}

// HistoricalQuestion is a past question together with its outcomes
type HistoricalQuestion struct {
	CandidateQuestion `bson:",inline"`
	Metrics           QuestionMetrics `json:"metrics" bson:"metrics"`
}

// HistoricalChapterRecord is a read-only corpus entry describing a past
// chapter and how its interview questions performed. This subsystem never
// writes to the corpus.
type HistoricalChapterRecord struct {
	ID             string               `json:"id" bson:"_id,omitempty"`
	Genre          string               `json:"genre" bson:"genre"`
	Title          string               `json:"title" bson:"title"`
	Content        string               `json:"content" bson:"content"`
	Questions      []HistoricalQuestion `json:"questions" bson:"questions"`
	AvgRating      float64              `json:"avgRating" bson:"avgRating"`
	CompletionRate float64              `json:"completionRate" bson:"completionRate"`
}

// ChapterMatch pairs a corpus entry with its similarity to the current chapter
type ChapterMatch struct {
	Record     HistoricalChapterRecord `json:"record"`
	Similarity float64                 `json:"similarity"`
}

// SuccessPattern summarizes what worked across similar successful chapters
type SuccessPattern struct {
	TypeDistribution map[QuestionType]float64 `json:"typeDistribution"` // Frequency share per type
	OptimalCount     float64                  `json:"optimalCount"`     // Mean question count
	CountMin         int                      `json:"countMin"`
	CountMax         int                      `json:"countMax"`
	SampleSize       int                      `json:"sampleSize"` // Number of successful chapters
}

// SuccessPrediction is a nearest-neighbor estimate of a question's likely
// success. Neutral (0.5, low confidence) when no similar questions exist.
type SuccessPrediction struct {
	PredictedScore float64 `json:"predictedScore"` // 0-1
	Confidence     float64 `json:"confidence"`     // 0-1
	SimilarCount   int     `json:"similarCount"`
}

// DistributionReport summarizes a chapter's current question set
type DistributionReport struct {
	TypeCounts      map[QuestionType]int `json:"typeCounts"`
	TotalQuestions  int                  `json:"totalQuestions"`
	AverageQuality  float64              `json:"averageQuality"`
	MinQuality      float64              `json:"minQuality"`
	MaxQuality      float64              `json:"maxQuality"`
	Recommendations []string             `json:"recommendations"`
}
