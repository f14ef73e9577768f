// Package analysis extracts lexical and thematic features from chapter text.
// The analyzer is a pure function of its input: same text in, same
// ContentAnalysis out, so results are safe to cache per chapter revision.
package analysis

import (
	"regexp"
	"sort"
	"strings"

	"bookforge/internal/model"
	"bookforge/internal/textutil"
)

// Config holds the analyzer's tunable constants.
type Config struct {
	MinContentLength int // Below this (trimmed) the analysis is skipped
	TopTerms         int
	TopProperNouns   int
	TopPhrases       int
}

// DefaultConfig returns the production constants.
func DefaultConfig() Config {
	return Config{
		MinContentLength: 50,
		TopTerms:         10,
		TopProperNouns:   10,
		TopPhrases:       10,
	}
}

// Analyzer computes ContentAnalysis records from chapter text.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an analyzer with the given config.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	capitalized   = regexp.MustCompile(`^[A-Z][a-z]+$`)
)

// Analyze extracts all features from the chapter content. When the trimmed
// content is shorter than MinContentLength it returns a marker record with
// AnalysisPossible=false; callers must then skip relevance-dependent scoring
// and use neutral defaults.
func (a *Analyzer) Analyze(content, title string) model.ContentAnalysis {
	trimmed := strings.TrimSpace(content)
	if len(trimmed) < a.cfg.MinContentLength {
		return model.ContentAnalysis{
			AnalysisPossible: false,
			ContentLength:    len(trimmed),
		}
	}

	words := textutil.Tokenize(trimmed)
	meaningful := textutil.MeaningfulWords(trimmed)

	analysis := model.ContentAnalysis{
		AnalysisPossible: true,
		ContentLength:    len(trimmed),
		WordCount:        len(words),
		SentenceCount:    countSentences(trimmed),
		ParagraphCount:   countParagraphs(trimmed),
		LexicalDiversity: lexicalDiversity(meaningful),
		KeyWords:         topTerms(meaningful, a.cfg.TopTerms),
		ProperNouns:      properNouns(trimmed, a.cfg.TopProperNouns),
		KeyPhrases:       repeatedPhrases(meaningful, a.cfg.TopPhrases),
		Themes:           scoreThemes(words),
	}

	analysis.Narrative = detectNarrativeElements(trimmed, words)
	analysis.Style = narrativeStyle(analysis.Narrative)
	analysis.Focus = deriveFocus(title, analysis.Themes, analysis.Narrative)
	analysis.Confidence = confidence(analysis.WordCount, analysis.LexicalDiversity, countUnique(meaningful))

	return analysis
}

func countSentences(text string) int {
	parts := sentenceSplit.Split(text, -1)
	n := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}

func countParagraphs(text string) int {
	n := 0
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}

func countUnique(words []string) int {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return len(set)
}

func lexicalDiversity(meaningful []string) float64 {
	if len(meaningful) == 0 {
		return 0
	}
	return float64(countUnique(meaningful)) / float64(len(meaningful))
}

// topTerms returns the n most frequent meaningful words, most frequent
// first, ties broken alphabetically for determinism.
func topTerms(meaningful []string, n int) []string {
	freq := make(map[string]int)
	for _, w := range meaningful {
		freq[w]++
	}
	terms := make([]string, 0, len(freq))
	for w := range freq {
		terms = append(terms, w)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}

// properNouns collects capitalized tokens that do not open a sentence.
// Sentence-initial words are skipped since their capitalization carries no
// signal.
func properNouns(text string, limit int) []string {
	seen := make(map[string]bool)
	var nouns []string
	for _, sentence := range sentenceSplit.Split(text, -1) {
		fields := strings.Fields(sentence)
		for i, f := range fields {
			if i == 0 {
				continue
			}
			f = strings.Trim(f, ".,!?;:\"'()")
			if capitalized.MatchString(f) && !seen[f] {
				seen[f] = true
				nouns = append(nouns, f)
				if len(nouns) >= limit {
					return nouns
				}
			}
		}
	}
	return nouns
}

// repeatedPhrases finds two-word phrases that occur at least twice.
func repeatedPhrases(meaningful []string, limit int) []string {
	counts := make(map[string]int)
	for i := 0; i+1 < len(meaningful); i++ {
		counts[meaningful[i]+" "+meaningful[i+1]]++
	}
	phrases := make([]string, 0)
	for p, c := range counts {
		if c >= 2 {
			phrases = append(phrases, p)
		}
	}
	sort.Slice(phrases, func(i, j int) bool {
		if counts[phrases[i]] != counts[phrases[j]] {
			return counts[phrases[i]] > counts[phrases[j]]
		}
		return phrases[i] < phrases[j]
	})
	if len(phrases) > limit {
		phrases = phrases[:limit]
	}
	return phrases
}

// scoreThemes counts keyword hits per category across its sub-themes.
// Prominence is min(1.0, score/20) — a linear cap, not a probability.
func scoreThemes(words []string) map[model.ThemeCategory]model.ThemeScore {
	freq := make(map[string]int, len(words))
	for _, w := range words {
		freq[w]++
	}

	themes := make(map[model.ThemeCategory]model.ThemeScore, len(themeTaxonomy))
	for category, subThemes := range themeTaxonomy {
		score := 0
		for _, keywords := range subThemes {
			for _, kw := range keywords {
				score += freq[kw]
			}
		}
		prominence := float64(score) / 20.0
		if prominence > 1.0 {
			prominence = 1.0
		}
		themes[category] = model.ThemeScore{Score: score, Prominence: prominence}
	}
	return themes
}

func detectNarrativeElements(text string, words []string) model.NarrativeElements {
	freq := make(map[string]int, len(words))
	for _, w := range words {
		freq[w]++
	}
	countHits := func(list []string) int {
		n := 0
		for _, kw := range list {
			n += freq[kw]
		}
		return n
	}

	hasQuotes := strings.ContainsAny(text, `"“”`)

	return model.NarrativeElements{
		HasDialogue:      hasQuotes || countHits(dialogueMarkers) >= 2,
		ActionHeavy:      countHits(actionWords) >= 3,
		DescriptiveRich:  countHits(descriptiveWords) >= 3,
		EmotionalContent: countHits(emotionWords) >= 2,
		ConflictPresent:  countHits(conflictWords) >= 2,
		MysteryElements:  countHits(mysteryWords) >= 2,
		TimeReferences:   countHits(timeWords),
		PlaceReferences:  countHits(placeWords),
	}
}

func narrativeStyle(n model.NarrativeElements) []string {
	var tags []string
	if n.HasDialogue {
		tags = append(tags, "dialogue-driven")
	}
	if n.ActionHeavy {
		tags = append(tags, "action-oriented")
	}
	if n.DescriptiveRich {
		tags = append(tags, "descriptive")
	}
	if n.EmotionalContent {
		tags = append(tags, "emotional")
	}
	if n.ConflictPresent {
		tags = append(tags, "tension-driven")
	}
	if n.MysteryElements {
		tags = append(tags, "mysterious")
	}
	if len(tags) == 0 {
		tags = []string{"neutral"}
	}
	return tags
}

// deriveFocus combines title keyword hits, thematic prominence and narrative
// signals into a per-category score. Ties break by score, then by category
// declaration order.
func deriveFocus(title string, themes map[model.ThemeCategory]model.ThemeScore, narrative model.NarrativeElements) model.ChapterFocus {
	titleWords := make(map[string]bool)
	for _, w := range textutil.Tokenize(title) {
		titleWords[w] = true
	}

	scores := make(map[model.ThemeCategory]float64, len(model.ThemeCategories))
	for _, category := range model.ThemeCategories {
		titleHits := 0
		for _, keywords := range themeTaxonomy[category] {
			for _, kw := range keywords {
				if titleWords[kw] {
					titleHits++
				}
			}
		}
		score := float64(titleHits)*2.0 + themes[category].Prominence*3.0 + narrativeBonus(category, narrative)
		scores[category] = score
	}

	primary := model.ThemeCategories[0]
	for _, category := range model.ThemeCategories[1:] {
		if scores[category] > scores[primary] {
			primary = category
		}
	}

	var secondary []model.ThemeCategory
	for _, category := range model.ThemeCategories {
		if category == primary {
			continue
		}
		if scores[primary] > 0 && scores[category] >= scores[primary]/2 {
			secondary = append(secondary, category)
		}
		if len(secondary) == 2 {
			break
		}
	}

	strength := scores[primary] / 5.0
	if strength > 1.0 {
		strength = 1.0
	}

	return model.ChapterFocus{
		Primary:       primary,
		Secondary:     secondary,
		FocusStrength: strength,
	}
}

func narrativeBonus(category model.ThemeCategory, n model.NarrativeElements) float64 {
	bonus := 0.0
	switch category {
	case model.ThemeCharacter:
		if n.HasDialogue {
			bonus += 0.5
		}
		if n.EmotionalContent {
			bonus += 0.5
		}
	case model.ThemePlot:
		if n.ActionHeavy {
			bonus += 0.5
		}
		if n.ConflictPresent {
			bonus += 0.5
		}
	case model.ThemeSetting:
		if n.DescriptiveRich {
			bonus += 0.5
		}
		if n.PlaceReferences > 2 {
			bonus += 0.5
		}
	case model.ThemeTheme:
		if n.EmotionalContent {
			bonus += 0.5
		}
		if n.MysteryElements {
			bonus += 0.5
		}
	}
	return bonus
}

// confidence combines a word-count bucket (0.1-0.4, stepped at 200/500/1000
// words), a complexity contribution capped at 0.3, and a unique-term bucket
// (0.1-0.3, stepped at 50/100 terms). Capped at 1.0.
func confidence(wordCount int, diversity float64, uniqueTerms int) float64 {
	var wordScore float64
	switch {
	case wordCount >= 1000:
		wordScore = 0.4
	case wordCount >= 500:
		wordScore = 0.3
	case wordCount >= 200:
		wordScore = 0.2
	default:
		wordScore = 0.1
	}

	complexity := diversity * 0.3
	if complexity > 0.3 {
		complexity = 0.3
	}

	var termScore float64
	switch {
	case uniqueTerms >= 100:
		termScore = 0.3
	case uniqueTerms >= 50:
		termScore = 0.2
	default:
		termScore = 0.1
	}

	total := wordScore + complexity + termScore
	if total > 1.0 {
		total = 1.0
	}
	return total
}
