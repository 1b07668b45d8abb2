package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/pkg/enums"
)

// SocialInteraction is one like or comment on a community update. Like
// uniqueness per (user, update) is enforced by the partial unique index
// ux_social_interactions_like created in migrations; comments may repeat.
type SocialInteraction struct {
	ID        uuid.UUID             `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index:social_interactions_user_id_idx"`
	UpdateID  uuid.UUID             `gorm:"column:update_id;type:uuid;not null;index:social_interactions_update_id_idx"`
	Kind      enums.InteractionKind `gorm:"type:interaction_kind;not null"`
	Content   *string               `gorm:"type:text"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
}
