package domain

import (
	"fmt"
	"time"
)

// SkillLevel represents self-assessed proficiency for a skill.
type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "beginner"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelAdvanced     SkillLevel = "advanced"
	SkillLevelExpert       SkillLevel = "expert"
)

// Skill represents a single skill entry on the public site.
type Skill struct {
	ID           string
	Name         string
	Category     string
	Level        SkillLevel
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidateSkill validates a Skill instance.
func ValidateSkill(s *Skill) error {
	if s == nil {
		return fmt.Errorf("skill cannot be nil")
	}

	if s.ID == "" {
		return fmt.Errorf("skill ID is required")
	}

	if s.Name == "" {
		return fmt.Errorf("skill Name is required")
	}

	if !isValidSkillLevel(s.Level) {
		return fmt.Errorf("skill Level is invalid: %s", s.Level)
	}

	return nil
}

func isValidSkillLevel(l SkillLevel) bool {
	switch l {
	case SkillLevelBeginner, SkillLevelIntermediate, SkillLevelAdvanced, SkillLevelExpert:
		return true
	}
	return false
}
