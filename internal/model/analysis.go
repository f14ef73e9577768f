package model

// ThemeCategory is one of the four fixed thematic categories the analyzer
// scores. The values deliberately mirror the matching question types.
type ThemeCategory string

const (
	ThemeCharacter ThemeCategory = "character"
	ThemePlot      ThemeCategory = "plot"
	ThemeSetting   ThemeCategory = "setting"
	ThemeTheme     ThemeCategory = "theme"
)

// ThemeCategories lists the categories in declaration order. Order matters:
// it is the tie-break for chapter focus selection.
var ThemeCategories = []ThemeCategory{
	ThemeCharacter,
	ThemePlot,
	ThemeSetting,
	ThemeTheme,
}

// ThemeScore is the analyzer's score for one thematic category
type ThemeScore struct {
	Score      int     `json:"score"`      // Raw keyword hit count across sub-themes
	Prominence float64 `json:"prominence"` // min(1.0, score/20), a linear cap not a probability
}

// NarrativeElements flags structural signals detected in chapter text
type NarrativeElements struct {
	HasDialogue      bool `json:"hasDialogue"`
	ActionHeavy      bool `json:"actionHeavy"`
	DescriptiveRich  bool `json:"descriptiveRich"`
	EmotionalContent bool `json:"emotionalContent"`
	ConflictPresent  bool `json:"conflictPresent"`
	MysteryElements  bool `json:"mysteryElements"`
	TimeReferences   int  `json:"timeReferences"`
	PlaceReferences  int  `json:"placeReferences"`
}

// ChapterFocus names the dominant thematic angle of a chapter
type ChapterFocus struct {
	Primary       ThemeCategory   `json:"primary"`
	Secondary     []ThemeCategory `json:"secondary"`
	FocusStrength float64         `json:"focusStrength"` // 0-1, how decisively the primary won
}

// ContentAnalysis is the full output of the content analyzer for one
// chapter. When AnalysisPossible is false only ContentLength is meaningful
// and callers must fall back to neutral defaults.
type ContentAnalysis struct {
	AnalysisPossible bool `json:"analysisPossible"`
	ContentLength    int  `json:"contentLength"`

	WordCount      int `json:"wordCount"`
	SentenceCount  int `json:"sentenceCount"`
	ParagraphCount int `json:"paragraphCount"`

	LexicalDiversity float64 `json:"lexicalDiversity"` // unique meaningful words / meaningful words

	KeyWords    []string `json:"keyWords"`    // Top frequent non-stopword terms
	ProperNouns []string `json:"properNouns"` // Capitalized-token candidates
	KeyPhrases  []string `json:"keyPhrases"`  // Repeated two-word phrases

	Themes    map[ThemeCategory]ThemeScore `json:"themes"`
	Narrative NarrativeElements            `json:"narrative"`
	Style     []string                     `json:"narrativeStyle"`
	Focus     ChapterFocus                 `json:"chapterFocus"`

	Confidence float64 `json:"analysisConfidence"`
}
