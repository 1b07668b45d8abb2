package quests

import (
	"strings"

	"github.com/froliik/froliik-backend/pkg/enums"
)

// interestCategories maps onboarding interest labels to quest categories.
// Unmapped interests are dropped silently.
var interestCategories = map[string]enums.QuestCategory{
	"mindfulness":  enums.CategoryMindfulness,
	"productivity": enums.CategoryProductivity,
	"health":       enums.CategoryMovement,
	"learning":     enums.CategoryLearning,
	"creativity":   enums.CategoryCreativity,
	"social":       enums.CategoryConnection,
	"growth":       enums.CategoryMindfulness,
	"adventure":    enums.CategoryAdventure,
}

// fallbackCategories guarantees callers never receive zero categories.
var fallbackCategories = []enums.QuestCategory{
	enums.CategoryMindfulness,
	enums.CategoryCreativity,
	enums.CategoryMovement,
}

// questLevelDifficulties maps the onboarding quest-level answer to a difficulty.
var questLevelDifficulties = map[string]enums.Difficulty{
	"gentle":      enums.DifficultyGentle,
	"balanced":    enums.DifficultyModerate,
	"moderate":    enums.DifficultyModerate,
	"adventurous": enums.DifficultyAdventurous,
}

// CategoriesForInterests maps interest labels to quest categories, dropping
// anything unknown. An empty result yields the fixed fallback set.
func CategoriesForInterests(interests []string) []enums.QuestCategory {
	seen := make(map[enums.QuestCategory]struct{}, len(interests))
	out := make([]enums.QuestCategory, 0, len(interests))
	for _, interest := range interests {
		category, ok := interestCategories[strings.ToLower(strings.TrimSpace(interest))]
		if !ok {
			continue
		}
		if _, dup := seen[category]; dup {
			continue
		}
		seen[category] = struct{}{}
		out = append(out, category)
	}
	if len(out) == 0 {
		return append([]enums.QuestCategory(nil), fallbackCategories...)
	}
	return out
}

// DifficultyForQuestLevel maps the onboarding quest-level answer to a
// difficulty, defaulting to moderate for anything unknown.
func DifficultyForQuestLevel(level string) enums.Difficulty {
	if difficulty, ok := questLevelDifficulties[strings.ToLower(strings.TrimSpace(level))]; ok {
		return difficulty
	}
	return enums.DifficultyModerate
}
