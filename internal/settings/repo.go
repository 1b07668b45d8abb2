package settings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/froliik/froliik-backend/pkg/db/models"
)

// Repository persists the per-user settings document.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a settings repo bound to the provided GORM DB.
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

// FindByUserID loads the stored row, or nil when the user has no row yet.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	var row models.UserSettings
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Create inserts an empty settings row for the user.
func (r *Repository) Create(ctx context.Context, row *models.UserSettings) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Save writes the full settings row back.
func (r *Repository) Save(ctx context.Context, row *models.UserSettings) error {
	return r.db.WithContext(ctx).Save(row).Error
}
