package progression

import (
	"time"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/pkg/db/models"
	"github.com/froliik/froliik-backend/pkg/enums"
)

// StatsDTO is the API projection of a user's progression counters. Users who
// have never completed a quest get the zero-value projection rather than an
// error.
type StatsDTO struct {
	UserID               uuid.UUID  `json:"userId"`
	TotalQuestsCompleted int        `json:"totalQuestsCompleted"`
	TotalPoints          int        `json:"totalPoints"`
	CurrentStreak        int        `json:"currentStreak"`
	LongestStreak        int        `json:"longestStreak"`
	Experience           int        `json:"experience"`
	Level                int        `json:"level"`
	AchievementsUnlocked int        `json:"achievementsUnlocked"`
	LastActive           *time.Time `json:"lastActive,omitempty"`
}

// AchievementDTO is the API projection of one unlock record.
type AchievementDTO struct {
	ID          uuid.UUID               `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Rarity      enums.AchievementRarity `json:"rarity"`
	Points      int                     `json:"points"`
	UnlockedAt  time.Time               `json:"unlockedAt"`
}

func statsFromModel(userID uuid.UUID, stats *models.UserStats) StatsDTO {
	if stats == nil {
		return StatsDTO{UserID: userID, Level: 1}
	}
	dto := StatsDTO{
		UserID:               stats.UserID,
		TotalQuestsCompleted: stats.TotalQuestsCompleted,
		TotalPoints:          stats.TotalPoints,
		CurrentStreak:        stats.CurrentStreak,
		LongestStreak:        stats.LongestStreak,
		Experience:           stats.Experience,
		Level:                stats.Level,
		AchievementsUnlocked: stats.AchievementsUnlocked,
	}
	if !stats.LastActive.IsZero() {
		lastActive := stats.LastActive
		dto.LastActive = &lastActive
	}
	return dto
}

func achievementFromModel(achievement models.Achievement) AchievementDTO {
	return AchievementDTO{
		ID:          achievement.ID,
		Name:        achievement.Name,
		Description: achievement.Description,
		Rarity:      achievement.Rarity,
		Points:      achievement.Points,
		UnlockedAt:  achievement.UnlockedAt,
	}
}
