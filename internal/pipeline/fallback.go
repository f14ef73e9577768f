package pipeline

import "bookforge/internal/model"

type fallbackTemplate struct {
	text       string
	difficulty model.Difficulty
}

// fallbackOrder fixes the round-robin order across template types.
var fallbackOrder = []model.QuestionType{
	model.QuestionTypeCharacter,
	model.QuestionTypePlot,
	model.QuestionTypeSetting,
	model.QuestionTypeTheme,
	model.QuestionTypeGeneral,
}

// fallbackBank is the static template bank used when the AI candidate source
// fails or returns nothing usable.
var fallbackBank = map[model.QuestionType][]fallbackTemplate{
	model.QuestionTypeCharacter: {
		{"Who changes the most in this chapter, and what causes that change?", model.DifficultyMedium},
		{"What does your main character want here, and what stands in the way?", model.DifficultyEasy},
		{"How would a stranger describe your protagonist after reading this chapter?", model.DifficultyMedium},
		{"What is your character afraid to say out loud in these scenes?", model.DifficultyMedium},
		{"Which relationship shifts in this chapter, and why does it matter?", model.DifficultyHard},
	},
	model.QuestionTypePlot: {
		{"What event sets this chapter in motion?", model.DifficultyEasy},
		{"What would break in the story if this chapter were removed?", model.DifficultyHard},
		{"What question should readers be asking by the end of this chapter?", model.DifficultyMedium},
		{"Where does the tension peak in this chapter, and how is it released?", model.DifficultyMedium},
		{"What choice does a character make here that cannot be undone?", model.DifficultyMedium},
	},
	model.QuestionTypeSetting: {
		{"Where does this chapter take place, and how does the location shape events?", model.DifficultyEasy},
		{"What sensory detail anchors the reader in this chapter's world?", model.DifficultyMedium},
		{"How does the time of day or season color the chapter's mood?", model.DifficultyMedium},
		{"What does the setting reveal that the characters do not say?", model.DifficultyHard},
		{"Which place in this chapter deserves a fuller description?", model.DifficultyEasy},
	},
	model.QuestionTypeTheme: {
		{"What idea keeps resurfacing across the scenes of this chapter?", model.DifficultyMedium},
		{"What belief is tested in this chapter, and does it hold?", model.DifficultyHard},
		{"What should readers feel when they finish this chapter?", model.DifficultyEasy},
		{"Which image or object in this chapter carries more meaning than it seems?", model.DifficultyMedium},
		{"How does this chapter complicate the book's central question?", model.DifficultyHard},
	},
	model.QuestionTypeGeneral: {
		{"What part of this chapter are you most unsure about?", model.DifficultyEasy},
		{"What do you want readers to remember from this chapter?", model.DifficultyEasy},
		{"If you could expand one scene in this chapter, which would it be?", model.DifficultyMedium},
		{"What surprised you while writing this chapter?", model.DifficultyEasy},
		{"What still feels unfinished in this chapter?", model.DifficultyMedium},
	},
}

// FallbackCandidates draws up to count questions from the template bank,
// round-robin across types so small counts still get mixed coverage.
func FallbackCandidates(count int) []model.CandidateQuestion {
	if count <= 0 {
		return nil
	}
	out := make([]model.CandidateQuestion, 0, count)
	for round := 0; round < len(fallbackBank[model.QuestionTypeCharacter]); round++ {
		for _, qtype := range fallbackOrder {
			templates := fallbackBank[qtype]
			if round >= len(templates) {
				continue
			}
			out = append(out, model.CandidateQuestion{
				QuestionText: templates[round].text,
				QuestionType: qtype,
				Difficulty:   templates[round].difficulty,
			})
			if len(out) == count {
				return out
			}
		}
	}
	return out
}
