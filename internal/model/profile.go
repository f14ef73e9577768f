package model

import "strings"

// WritingLevel is the author's declared or inferred writing skill tier
type WritingLevel string

const (
	LevelBeginner     WritingLevel = "beginner"
	LevelIntermediate WritingLevel = "intermediate"
	LevelAdvanced     WritingLevel = "advanced"
	LevelProfessional WritingLevel = "professional"
)

// WritingLevels lists the tiers from least to most experienced
var WritingLevels = []WritingLevel{
	LevelBeginner,
	LevelIntermediate,
	LevelAdvanced,
	LevelProfessional,
}

// NormalizeWritingLevel maps a free-form level string onto the enum,
// defaulting to intermediate.
func NormalizeWritingLevel(s string) WritingLevel {
	l := WritingLevel(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range WritingLevels {
		if l == known {
			return known
		}
	}
	return LevelIntermediate
}

// GuidancePreference controls how much help text a user wants
type GuidancePreference string

const (
	GuidanceMinimal  GuidancePreference = "minimal"
	GuidanceStandard GuidancePreference = "standard"
	GuidanceDetailed GuidancePreference = "detailed"
)

// UserWritingProfile parameterizes level adaptation. Supplied by the caller
// or inferred from response history; this subsystem does not store it.
type UserWritingProfile struct {
	WritingLevel    WritingLevel       `json:"writingLevel"`
	ExperienceAreas []string           `json:"experienceAreas,omitempty"`
	Guidance        GuidancePreference `json:"guidancePreference,omitempty"`
}
