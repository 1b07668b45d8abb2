package models

import (
	"time"

	"github.com/google/uuid"
)

// UserStats aggregates progression counters for one user. Created lazily on
// the first quest completion. Level is always floor(experience/100)+1.
type UserStats struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	TotalQuestsCompleted int       `gorm:"column:total_quests_completed;not null;default:0"`
	TotalPoints          int       `gorm:"column:total_points;not null;default:0"`
	CurrentStreak        int       `gorm:"column:current_streak;not null;default:0"`
	LongestStreak        int       `gorm:"column:longest_streak;not null;default:0"`
	Experience           int       `gorm:"not null;default:0"`
	Level                int       `gorm:"not null;default:1"`
	AchievementsUnlocked int       `gorm:"column:achievements_unlocked;not null;default:0"`
	LastActive           time.Time `gorm:"column:last_active"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
