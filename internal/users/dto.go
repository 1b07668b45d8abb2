package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/pkg/db/models"
)

// UserDTO is the transport shape for the authenticated user's profile.
type UserDTO struct {
	ID                  uuid.UUID `json:"id"`
	Email               string    `json:"email"`
	DisplayName         string    `json:"display_name"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// EnsureUserDTO carries the identity-provider claims used to upsert a user.
type EnsureUserDTO struct {
	ExternalAuthID string
	Email          string
	DisplayName    string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:                  u.ID,
		Email:               u.Email,
		DisplayName:         u.DisplayName,
		OnboardingCompleted: u.OnboardingCompleted,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}
