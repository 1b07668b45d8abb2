package enums

import (
	"fmt"
	"strings"
)

// QuestCategory maps to the quest_category enum in Postgres.
type QuestCategory string

const (
	CategoryMindfulness  QuestCategory = "mindfulness"
	CategoryProductivity QuestCategory = "productivity"
	CategoryMovement     QuestCategory = "movement"
	CategoryLearning     QuestCategory = "learning"
	CategoryCreativity   QuestCategory = "creativity"
	CategoryConnection   QuestCategory = "connection"
	CategoryAdventure    QuestCategory = "adventure"
	CategoryKindness     QuestCategory = "kindness"
)

var validQuestCategories = []QuestCategory{
	CategoryMindfulness,
	CategoryProductivity,
	CategoryMovement,
	CategoryLearning,
	CategoryCreativity,
	CategoryConnection,
	CategoryAdventure,
	CategoryKindness,
}

// IsValid reports whether the value matches the canonical quest_category enum.
func (c QuestCategory) IsValid() bool {
	for _, candidate := range validQuestCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseQuestCategory converts raw input into QuestCategory.
func ParseQuestCategory(raw string) (QuestCategory, error) {
	candidate := QuestCategory(strings.ToLower(strings.TrimSpace(raw)))
	if !candidate.IsValid() {
		return "", fmt.Errorf("invalid quest category %q", raw)
	}
	return candidate, nil
}

// QuestCategories returns the full set of valid categories.
func QuestCategories() []QuestCategory {
	out := make([]QuestCategory, len(validQuestCategories))
	copy(out, validQuestCategories)
	return out
}
