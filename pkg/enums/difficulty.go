package enums

import (
	"fmt"
	"strings"
)

// Difficulty maps to the quest_difficulty enum in Postgres.
type Difficulty string

const (
	DifficultyGentle      Difficulty = "gentle"
	DifficultyModerate    Difficulty = "moderate"
	DifficultyAdventurous Difficulty = "adventurous"
)

var validDifficulties = []Difficulty{
	DifficultyGentle,
	DifficultyModerate,
	DifficultyAdventurous,
}

// IsValid reports whether the value matches the canonical quest_difficulty enum.
func (d Difficulty) IsValid() bool {
	for _, candidate := range validDifficulties {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDifficulty converts raw input into Difficulty.
func ParseDifficulty(raw string) (Difficulty, error) {
	candidate := Difficulty(strings.ToLower(strings.TrimSpace(raw)))
	if !candidate.IsValid() {
		return "", fmt.Errorf("invalid difficulty %q", raw)
	}
	return candidate, nil
}
