package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/froliik/froliik-backend/pkg/db/models"
)

// Repository exposes user persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByExternalAuthID retrieves the user matching the identity provider subject.
func (r *Repository) FindByExternalAuthID(ctx context.Context, externalAuthID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("external_auth_id = ?", externalAuthID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert inserts the user or refreshes email/display name on conflict, keyed on
// external_auth_id so repeated logins stay idempotent.
func (r *Repository) Upsert(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_auth_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "display_name", "updated_at"}),
		}).
		Create(user).Error
}

// SetOnboardingCompleted flips the user's onboarding flag.
func (r *Repository) SetOnboardingCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("onboarding_completed", completed).Error
}

// DeleteCascadeTx removes the user and every row they own inside the given
// transaction. Child tables also carry ON DELETE CASCADE; the explicit deletes
// keep the behavior identical on databases where the FK is not enforced.
func (r *Repository) DeleteCascadeTx(tx *gorm.DB, userID uuid.UUID) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	steps := []struct {
		model any
		where string
	}{
		{&models.SocialInteraction{}, "user_id = ?"},
		{&models.CommunityUpdate{}, "user_id = ?"},
		{&models.Notification{}, "user_id = ?"},
		{&models.Achievement{}, "user_id = ?"},
		{&models.UserStats{}, "user_id = ?"},
		{&models.SideQuest{}, "user_id = ?"},
		{&models.UserSettings{}, "user_id = ?"},
		{&models.User{}, "id = ?"},
	}
	for _, step := range steps {
		if err := tx.Where(step.where, userID).Delete(step.model).Error; err != nil {
			return err
		}
	}
	return nil
}
