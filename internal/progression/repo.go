package progression

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/froliik/froliik-backend/pkg/db/models"
)

// StatsRepository exposes persistence helpers for user progression counters.
type StatsRepository interface {
	WithTx(tx *gorm.DB) StatsRepository
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.UserStats, error)
	Create(ctx context.Context, stats *models.UserStats) error
	Save(ctx context.Context, stats *models.UserStats) error
}

type statsRepositoryImpl struct {
	db *gorm.DB
}

// NewStatsRepository returns a stats repository bound to the provided database.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepositoryImpl{db: db}
}

func (r *statsRepositoryImpl) WithTx(tx *gorm.DB) StatsRepository {
	if tx == nil {
		return r
	}
	return &statsRepositoryImpl{db: tx}
}

func (r *statsRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.UserStats, error) {
	var stats models.UserStats
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepositoryImpl) Create(ctx context.Context, stats *models.UserStats) error {
	return r.db.WithContext(ctx).Create(stats).Error
}

func (r *statsRepositoryImpl) Save(ctx context.Context, stats *models.UserStats) error {
	return r.db.WithContext(ctx).Save(stats).Error
}

// AchievementsRepository exposes persistence helpers for unlock records.
type AchievementsRepository interface {
	WithTx(tx *gorm.DB) AchievementsRepository
	Insert(ctx context.Context, achievement *models.Achievement) error
	ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Achievement, error)
}

type achievementsRepositoryImpl struct {
	db *gorm.DB
}

// NewAchievementsRepository returns an achievements repository bound to the provided database.
func NewAchievementsRepository(db *gorm.DB) AchievementsRepository {
	return &achievementsRepositoryImpl{db: db}
}

func (r *achievementsRepositoryImpl) WithTx(tx *gorm.DB) AchievementsRepository {
	if tx == nil {
		return r
	}
	return &achievementsRepositoryImpl{db: tx}
}

func (r *achievementsRepositoryImpl) Insert(ctx context.Context, achievement *models.Achievement) error {
	return r.db.WithContext(ctx).Create(achievement).Error
}

func (r *achievementsRepositoryImpl) ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Achievement{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error
	return count > 0, err
}

func (r *achievementsRepositoryImpl) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at DESC, id DESC").
		Find(&achievements).Error
	return achievements, err
}
