package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the canonical identity entity. Accounts are created on first
// sign-in with the external identity provider; the backend never stores
// credentials itself.
type User struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExternalAuthID      string    `gorm:"column:external_auth_id;type:text;not null;uniqueIndex"`
	Email               string    `gorm:"type:text;not null;uniqueIndex"`
	DisplayName         string    `gorm:"column:display_name;type:text;not null"`
	OnboardingCompleted bool      `gorm:"column:onboarding_completed;not null;default:false"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
