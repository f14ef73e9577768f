package feedback

import (
	"strings"
	"unicode"

	"bookforge/internal/model"
)

type phrasePair struct {
	from, to string
}

// Ordered so substitution is deterministic; pairs must not overlap.
var simplifications = []phrasePair{
	{"analyze", "think about"},
	{"evaluate", "consider"},
	{"examine", "look at"},
	{"justify", "explain"},
	{"synthesize", "combine"},
	{"articulate", "describe"},
}

var complications = []phrasePair{
	{"think about", "analyze"},
	{"look at", "examine"},
	{"talk about", "evaluate"},
	{"describe", "articulate"},
	{"explain", "justify"},
}

const clarityElaboration = "In other words, focus on the specific details from this chapter and say what you actually picture happening."

const relevanceHelp = "Tie your answer to events and people that appear in this chapter, not the book in general."

var refinementExamples = map[model.QuestionType][]string{
	model.QuestionTypeCharacter: {
		"\"She apologizes twice in one scene, which tells us she doubts herself.\"",
		"\"His silence at dinner says more than his speech at the gate.\"",
	},
	model.QuestionTypePlot: {
		"\"The theft in scene two is what forces the confession in scene five.\"",
		"\"If the storm never hit, the brothers would never have shared the cabin.\"",
	},
	model.QuestionTypeSetting: {
		"\"The orchard only appears in chapters where someone forgives someone.\"",
		"\"The city narrows as the chapter darkens: wide squares, then alleys.\"",
	},
	model.QuestionTypeTheme: {
		"\"Every promise made in this chapter gets broken by its end.\"",
		"\"Debt, favors, obligation: the chapter keeps pricing relationships.\"",
	},
	model.QuestionTypeResearch: {
		"\"Look up how long grain stores actually last through a siege.\"",
		"\"Find one firsthand account of a night crossing like this one.\"",
	},
	model.QuestionTypeGeneral: {
		"\"The image I started with was a door left open in winter.\"",
		"\"Readers should leave this chapter suspicious of the narrator.\"",
	},
}

// Refine applies the trend's recommended actions to a question as textual
// transforms and stamps the mandatory refinement audit block. Actions with no
// textual effect (removal, priority, no_action) leave the question unchanged
// but are still recorded.
func (a *Analyzer) Refine(q model.CandidateQuestion, trend model.TrendAnalysis) model.CandidateQuestion {
	original := q.QuestionText
	originalHelp := q.HelpText

	for _, action := range trend.Actions {
		switch action {
		case model.ActionDecreaseDifficulty:
			q.QuestionText = substitute(q.QuestionText, simplifications)
			q.Difficulty = stepDown(q.Difficulty)
		case model.ActionIncreaseDifficulty:
			q.QuestionText = substitute(q.QuestionText, complications)
			q.Difficulty = stepUp(q.Difficulty)
		case model.ActionAddClarity:
			q.HelpText = appendSentence(q.HelpText, clarityElaboration)
			if len(strings.Fields(q.QuestionText)) < 8 {
				q.QuestionText = strings.TrimSpace(q.QuestionText) + " Be as specific as you can."
			}
		case model.ActionAddExamples:
			if len(q.Examples) == 0 {
				qtype := model.NormalizeQuestionType(string(q.QuestionType))
				q.Examples = append([]string(nil), refinementExamples[qtype]...)
			}
		case model.ActionImproveRelevance:
			if !strings.Contains(strings.ToLower(q.QuestionText), "chapter") {
				q.QuestionText = "In this specific chapter, " + lowerFirst(q.QuestionText)
			}
			q.HelpText = appendSentence(q.HelpText, relevanceHelp)
		}
	}

	q.Refinement = &model.RefinementInfo{
		OriginalText:     original,
		OriginalHelpText: originalHelp,
		Actions:          append([]model.RefinementAction(nil), trend.Actions...),
		BasedOnFeedback:  trend.FeedbackCount,
		Confidence:       trend.Confidence,
		RefinedAt:        a.now().UTC(),
	}
	return q
}

// substitute replaces each phrase in both lowercase and sentence-case form.
func substitute(text string, table []phrasePair) string {
	for _, p := range table {
		text = strings.ReplaceAll(text, p.from, p.to)
		text = strings.ReplaceAll(text, upperFirst(p.from), upperFirst(p.to))
	}
	return text
}

func appendSentence(help, sentence string) string {
	if strings.Contains(help, sentence) {
		return help
	}
	if help == "" {
		return sentence
	}
	return strings.TrimSpace(help) + " " + sentence
}

func stepDown(d model.Difficulty) model.Difficulty {
	switch d {
	case model.DifficultyHard:
		return model.DifficultyMedium
	default:
		return model.DifficultyEasy
	}
}

func stepUp(d model.Difficulty) model.Difficulty {
	switch d {
	case model.DifficultyEasy:
		return model.DifficultyMedium
	default:
		return model.DifficultyHard
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
