package adapt

import "bookforge/internal/model"

// LevelConfig is the static adaptation profile for one writing level.
type LevelConfig struct {
	ComplexityLevel     string
	GuidanceLevel       string
	PreferredTypes      []model.QuestionType
	AvoidPhrases        []string
	InjectExamples      bool
	InjectStepByStep    bool
	InjectEncouragement bool
}

var levelConfigs = map[model.WritingLevel]LevelConfig{
	model.LevelBeginner: {
		ComplexityLevel:     "simple",
		GuidanceLevel:       "detailed",
		PreferredTypes:      []model.QuestionType{model.QuestionTypeCharacter, model.QuestionTypePlot},
		AvoidPhrases:        []string{"subtext", "symbolism", "narrative structure", "allegory"},
		InjectExamples:      true,
		InjectStepByStep:    true,
		InjectEncouragement: true,
	},
	model.LevelIntermediate: {
		ComplexityLevel: "moderate",
		GuidanceLevel:   "standard",
		PreferredTypes:  []model.QuestionType{model.QuestionTypeCharacter, model.QuestionTypePlot, model.QuestionTypeSetting},
	},
	model.LevelAdvanced: {
		ComplexityLevel: "complex",
		GuidanceLevel:   "minimal",
		PreferredTypes:  []model.QuestionType{model.QuestionTypeTheme, model.QuestionTypeCharacter, model.QuestionTypePlot},
	},
	model.LevelProfessional: {
		ComplexityLevel: "sophisticated",
		GuidanceLevel:   "minimal",
		PreferredTypes:  []model.QuestionType{model.QuestionTypeTheme, model.QuestionTypeResearch},
		AvoidPhrases:    []string{"simple", "basic", "easy"},
	},
}

// questionTemplates rewrites a question for a (type, level) pair. The %s slot
// receives the original question text; pairs without an entry keep the text
// as-is.
var questionTemplates = map[model.QuestionType]map[model.WritingLevel]string{
	model.QuestionTypeCharacter: {
		model.LevelBeginner: "Picture this character as a real person you know. %s",
	},
	model.QuestionTypePlot: {
		model.LevelBeginner: "Walk through the events in the order they happen. %s",
	},
	model.QuestionTypeTheme: {
		model.LevelProfessional: "Consider the thematic architecture of the chapter. %s",
	},
}

// helpElaborations is the per-type paragraph appended to help text for
// beginners and detailed-guidance users.
var helpElaborations = map[model.QuestionType]string{
	model.QuestionTypeCharacter: "Think about what this character wants, what stands in their way, and how they might change. Small concrete details (a habit, a fear, a favorite phrase) make characters feel real.",
	model.QuestionTypePlot:      "Focus on cause and effect: what event leads to the next one, and what would break if you removed it? It can help to retell the sequence out loud in a few sentences.",
	model.QuestionTypeSetting:   "Describe the place using the five senses. What does a visitor notice first, and how does the location shape what can happen there?",
	model.QuestionTypeTheme:     "Ask yourself what idea keeps showing up across scenes. You don't need a grand statement; a question the chapter keeps circling is enough.",
	model.QuestionTypeResearch:  "List what you already know and what you'd need to look up. One or two trustworthy sources are plenty at this stage.",
	model.QuestionTypeGeneral:   "There's no wrong answer here. Write whatever comes to mind first, then pick the part that feels most true to your story.",
}

var stepByStepHint = "Take it one step at a time: jot a rough answer first, then add one detail, then read it back."

var exampleBank = map[model.QuestionType][]string{
	model.QuestionTypeCharacter: {
		"\"Marta counts doorways when she's nervous, a habit from the war.\"",
		"\"He forgives everyone except himself.\"",
	},
	model.QuestionTypePlot: {
		"\"The letter arrives a day late, so she boards the wrong train.\"",
		"\"Because the well runs dry, the brothers finally have to talk.\"",
	},
	model.QuestionTypeSetting: {
		"\"The mill smells of rust and river water even in summer.\"",
		"\"Every house on the street keeps its curtains drawn by noon.\"",
	},
	model.QuestionTypeTheme: {
		"\"Every character in this chapter lies to protect someone.\"",
		"\"The chapter keeps asking what loyalty costs.\"",
	},
	model.QuestionTypeResearch: {
		"\"How long would a letter take to cross the country in 1912?\"",
		"\"What does a field hospital actually sound like?\"",
	},
	model.QuestionTypeGeneral: {
		"\"The scene I keep picturing is the kitchen argument.\"",
		"\"If this chapter were a color it would be overcast grey.\"",
	},
}

var encouragements = map[model.QuestionType]string{
	model.QuestionTypeCharacter: "You know these characters better than anyone. Trust that.",
	model.QuestionTypePlot:      "Every plot hole you find now is one your readers never will.",
	model.QuestionTypeSetting:   "A single vivid detail beats a page of description. You've got this.",
	model.QuestionTypeTheme:     "Themes emerge from honest answers. Just write what you believe.",
	model.QuestionTypeResearch:  "A little curiosity goes a long way here. Have fun digging.",
	model.QuestionTypeGeneral:   "There are no wrong answers, only material for your next draft.",
}

// difficultyRemap collapses or escalates question difficulty per level.
// Intermediate and advanced keep difficulties unchanged.
var difficultyRemap = map[model.WritingLevel]map[model.Difficulty]model.Difficulty{
	model.LevelBeginner: {
		model.DifficultyHard:   model.DifficultyMedium,
		model.DifficultyMedium: model.DifficultyEasy,
	},
	model.LevelProfessional: {
		model.DifficultyEasy:   model.DifficultyMedium,
		model.DifficultyMedium: model.DifficultyHard,
	},
}

var difficultyRank = map[model.Difficulty]int{
	model.DifficultyEasy:   0,
	model.DifficultyMedium: 1,
	model.DifficultyHard:   2,
}
