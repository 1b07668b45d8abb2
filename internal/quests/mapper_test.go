package quests

import (
	"testing"

	"github.com/froliik/froliik-backend/pkg/enums"
)

func TestCategoriesForInterests(t *testing.T) {
	t.Parallel()

	fallback := []enums.QuestCategory{
		enums.CategoryMindfulness,
		enums.CategoryCreativity,
		enums.CategoryMovement,
	}

	tests := []struct {
		name      string
		interests []string
		want      []enums.QuestCategory
	}{
		{name: "empty input returns fallback", interests: nil, want: fallback},
		{name: "unknown interests return fallback", interests: []string{"unknown"}, want: fallback},
		{name: "all unknown returns fallback", interests: []string{"surfing", "opera"}, want: fallback},
		{
			name:      "known interests map through the table",
			interests: []string{"health", "social", "growth"},
			want: []enums.QuestCategory{
				enums.CategoryMovement,
				enums.CategoryConnection,
				enums.CategoryMindfulness,
			},
		},
		{
			name:      "unknown entries are dropped silently",
			interests: []string{"learning", "yodeling"},
			want:      []enums.QuestCategory{enums.CategoryLearning},
		},
		{
			name:      "duplicate mappings collapse",
			interests: []string{"mindfulness", "growth"},
			want:      []enums.QuestCategory{enums.CategoryMindfulness},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CategoriesForInterests(tc.interests)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestDifficultyForQuestLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  enums.Difficulty
	}{
		{level: "gentle", want: enums.DifficultyGentle},
		{level: "balanced", want: enums.DifficultyModerate},
		{level: "moderate", want: enums.DifficultyModerate},
		{level: "adventurous", want: enums.DifficultyAdventurous},
		{level: "nonsense", want: enums.DifficultyModerate},
		{level: "", want: enums.DifficultyModerate},
	}

	for _, tc := range tests {
		if got := DifficultyForQuestLevel(tc.level); got != tc.want {
			t.Fatalf("DifficultyForQuestLevel(%q) = %q, want %q", tc.level, got, tc.want)
		}
	}
}
