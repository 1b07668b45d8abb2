package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/pkg/enums"
)

// Achievement is an immutable unlock record appended once a threshold is crossed.
type Achievement struct {
	ID          uuid.UUID               `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID               `gorm:"column:user_id;type:uuid;not null;index:achievements_user_id_idx"`
	Name        string                  `gorm:"type:text;not null"`
	Description string                  `gorm:"type:text;not null"`
	Rarity      enums.AchievementRarity `gorm:"type:achievement_rarity;not null"`
	Points      int                     `gorm:"not null;default:0"`
	UnlockedAt  time.Time               `gorm:"column:unlocked_at;autoCreateTime"`
}
