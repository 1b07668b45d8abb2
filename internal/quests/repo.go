package quests

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/froliik/froliik-backend/pkg/db/models"
	"github.com/froliik/froliik-backend/pkg/pagination"
)

// Repository exposes persistence helpers for side quests.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, quest *models.SideQuest) error
	FindByIDForUser(ctx context.Context, questID, userID uuid.UUID) (*models.SideQuest, error)
	MarkCompleted(ctx context.Context, questID uuid.UUID, now time.Time) (bool, error)
	List(ctx context.Context, params listQuestsParams) ([]models.SideQuest, *pagination.Cursor, error)
	Delete(ctx context.Context, questID, userID uuid.UUID) (bool, error)
	ActiveCount(ctx context.Context, userID uuid.UUID) (int64, error)
	CompletedCount(ctx context.Context, userID uuid.UUID) (int64, error)
	LastQuestAt(ctx context.Context, userID uuid.UUID) (*time.Time, error)
	RecentTitles(ctx context.Context, userID uuid.UUID, limit int) ([]string, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a quest repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listQuestsParams struct {
	UserID    uuid.UUID
	Limit     int
	Cursor    *pagination.Cursor
	Completed *bool
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, quest *models.SideQuest) error {
	return r.db.WithContext(ctx).Create(quest).Error
}

func (r *repositoryImpl) FindByIDForUser(ctx context.Context, questID, userID uuid.UUID) (*models.SideQuest, error) {
	var quest models.SideQuest
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", questID, userID).
		First(&quest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quest, nil
}

// MarkCompleted flips the one-way completed flag. The completed = false guard
// makes a concurrent second completion report not-updated instead of
// double-applying.
func (r *repositoryImpl) MarkCompleted(ctx context.Context, questID uuid.UUID, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SideQuest{}).
		Where("id = ? AND completed = ?", questID, false).
		Updates(map[string]any{"completed": true, "updated_at": now})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) List(ctx context.Context, params listQuestsParams) ([]models.SideQuest, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.SideQuest{}).Where("user_id = ?", params.UserID)
	if params.Completed != nil {
		query = query.Where("completed = ?", *params.Completed)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var quests []models.SideQuest
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&quests).Error; err != nil {
		return nil, nil, err
	}

	if len(quests) > normalized {
		quests = quests[:normalized]
		last := quests[len(quests)-1]
		return quests, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return quests, nil, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, questID, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", questID, userID).
		Delete(&models.SideQuest{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) ActiveCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SideQuest{}).
		Where("user_id = ? AND completed = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *repositoryImpl) CompletedCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SideQuest{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *repositoryImpl) LastQuestAt(ctx context.Context, userID uuid.UUID) (*time.Time, error) {
	var quest models.SideQuest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&quest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	createdAt := quest.CreatedAt
	return &createdAt, nil
}

func (r *repositoryImpl) RecentTitles(ctx context.Context, userID uuid.UUID, limit int) ([]string, error) {
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	var titles []string
	err := r.db.WithContext(ctx).
		Model(&models.SideQuest{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Pluck("title", &titles).Error
	return titles, err
}
