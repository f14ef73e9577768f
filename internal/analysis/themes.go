package analysis

import "bookforge/internal/model"

// themeTaxonomy maps each thematic category to its sub-themes and their
// keyword lists. A category's score is the raw count of keyword hits across
// all of its sub-themes.
var themeTaxonomy = map[model.ThemeCategory]map[string][]string{
	model.ThemeCharacter: {
		"personality":   {"personality", "stubborn", "brave", "kind", "cruel", "gentle", "proud", "shy", "curious"},
		"relationships": {"friend", "friendship", "family", "mother", "father", "brother", "sister", "lover", "rival", "mentor"},
		"emotions":      {"felt", "feeling", "love", "fear", "anger", "joy", "grief", "hope", "regret", "longing"},
		"growth":        {"learned", "changed", "realized", "grew", "became", "understood", "transformed"},
	},
	model.ThemePlot: {
		"action":      {"ran", "fought", "chased", "escaped", "attacked", "grabbed", "rushed", "struck", "leapt"},
		"conflict":    {"conflict", "battle", "struggle", "argued", "against", "enemy", "threat", "danger", "war"},
		"events":      {"happened", "suddenly", "discovered", "arrived", "revealed", "began", "ended", "returned"},
		"progression": {"then", "next", "after", "before", "finally", "meanwhile", "eventually", "soon"},
	},
	model.ThemeSetting: {
		"location":    {"city", "town", "village", "castle", "forest", "mountain", "river", "house", "room", "street"},
		"time_period": {"morning", "evening", "night", "dawn", "dusk", "winter", "summer", "century", "era"},
		"atmosphere":  {"dark", "bright", "cold", "warm", "silent", "quiet", "loud", "misty", "gloomy"},
		"environment": {"landscape", "weather", "rain", "snow", "wind", "sky", "ground", "air", "light"},
	},
	model.ThemeTheme: {
		"morality": {"right", "wrong", "justice", "honor", "truth", "betrayal", "guilt", "redemption", "sacrifice"},
		"love":     {"love", "heart", "devotion", "passion", "romance", "affection", "loyalty"},
		"power":    {"power", "control", "rule", "authority", "freedom", "oppression", "rebellion", "crown"},
		"identity": {"identity", "self", "belong", "purpose", "destiny", "choice", "memory", "past"},
	},
}

// Narrative-element keyword lists. These drive the boolean flags rather than
// the theme scores.
var (
	dialogueMarkers = []string{"said", "asked", "replied", "whispered", "shouted", "answered", "muttered"}

	actionWords = []string{
		"ran", "jumped", "fought", "grabbed", "rushed", "chased", "struck",
		"threw", "leapt", "dodged", "sprinted", "slammed",
	}

	descriptiveWords = []string{
		"beautiful", "ancient", "vast", "towering", "delicate", "ornate",
		"crumbling", "gleaming", "shadowy", "sprawling", "intricate",
	}

	emotionWords = []string{
		"love", "fear", "anger", "joy", "tears", "grief", "hope", "despair",
		"fury", "sorrow", "delight", "dread",
	}

	conflictWords = []string{
		"argued", "fight", "battle", "conflict", "against", "struggle",
		"confronted", "clash", "enemy", "opposed",
	}

	mysteryWords = []string{
		"secret", "mystery", "hidden", "unknown", "strange", "disappeared",
		"vanished", "puzzle", "clue", "whisper",
	}

	timeWords = []string{
		"morning", "evening", "night", "noon", "yesterday", "tomorrow",
		"year", "month", "week", "day", "hour", "winter", "spring",
		"summer", "autumn", "dawn", "dusk",
	}

	placeWords = []string{
		"city", "town", "village", "castle", "forest", "house", "room",
		"mountain", "river", "street", "valley", "harbor", "field", "garden",
	}
)
