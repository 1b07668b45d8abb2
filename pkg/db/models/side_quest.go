package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/pkg/enums"
)

// SideQuest is a single user-facing task with a one-way completion flag.
// UserID is immutable after creation; only the owner may complete or delete.
type SideQuest struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index:side_quests_user_id_idx"`
	Title           string              `gorm:"type:text;not null"`
	Description     string              `gorm:"type:text;not null"`
	Category        enums.QuestCategory `gorm:"type:quest_category;not null"`
	DifficultyLevel enums.Difficulty    `gorm:"column:difficulty_level;type:quest_difficulty;not null"`
	Completed       bool                `gorm:"not null;default:false"`
	Reward          *string             `gorm:"type:text"`
	QuestGiver      *string             `gorm:"column:quest_giver;type:text"`
	Location        *string             `gorm:"type:text"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
