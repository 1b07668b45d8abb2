package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/pkg/enums"
)

// CommunityUpdate is an append-only feed entry. Only the likes/comments
// counters mutate after insert, and neither ever goes below zero.
type CommunityUpdate struct {
	ID         uuid.UUID             `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index:community_updates_user_id_idx"`
	Action     enums.CommunityAction `gorm:"type:community_action;not null"`
	QuestTitle string                `gorm:"column:quest_title;type:text;not null"`
	Category   *enums.QuestCategory  `gorm:"type:quest_category"`
	Points     *int                  `gorm:""`
	Level      *int                  `gorm:""`
	Likes      int                   `gorm:"not null;default:0"`
	Comments   int                   `gorm:"not null;default:0"`
	CreatedAt  time.Time             `gorm:"column:created_at;autoCreateTime"`
}
