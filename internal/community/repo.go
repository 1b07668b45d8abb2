package community

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/froliik/froliik-backend/pkg/db/models"
	"github.com/froliik/froliik-backend/pkg/enums"
	"github.com/froliik/froliik-backend/pkg/pagination"
)

// Repository exposes persistence helpers for the community feed and its
// social interactions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Append(ctx context.Context, update *models.CommunityUpdate) error
	FindUpdateByID(ctx context.Context, updateID uuid.UUID) (*models.CommunityUpdate, error)
	ListFeed(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.CommunityUpdate, *pagination.Cursor, error)
	InsertLike(ctx context.Context, interaction *models.SocialInteraction) (bool, error)
	DeleteLike(ctx context.Context, userID, updateID uuid.UUID) (bool, error)
	InsertComment(ctx context.Context, interaction *models.SocialInteraction) error
	FindCommentByID(ctx context.Context, commentID uuid.UUID) (*models.SocialInteraction, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) error
	AdjustLikes(ctx context.Context, updateID uuid.UUID, delta int) error
	AdjustComments(ctx context.Context, updateID uuid.UUID, delta int) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a community repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Append(ctx context.Context, update *models.CommunityUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

func (r *repositoryImpl) FindUpdateByID(ctx context.Context, updateID uuid.UUID) (*models.CommunityUpdate, error) {
	var update models.CommunityUpdate
	err := r.db.WithContext(ctx).Where("id = ?", updateID).First(&update).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &update, nil
}

func (r *repositoryImpl) ListFeed(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.CommunityUpdate, *pagination.Cursor, error) {
	bufferLimit := pagination.LimitWithBuffer(limit)
	normalized := pagination.NormalizeLimit(limit)
	query := r.db.WithContext(ctx).Model(&models.CommunityUpdate{})
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var updates []models.CommunityUpdate
	if err := query.Order("created_at DESC, id DESC").Limit(bufferLimit).Find(&updates).Error; err != nil {
		return nil, nil, err
	}

	if len(updates) > normalized {
		updates = updates[:normalized]
		last := updates[len(updates)-1]
		return updates, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return updates, nil, nil
}

// InsertLike inserts the like row unless one already exists for this
// (user, update) pair. The partial unique index ux_social_interactions_like
// makes the insert-or-ignore atomic; the bool reports whether a row was
// actually inserted.
func (r *repositoryImpl) InsertLike(ctx context.Context, interaction *models.SocialInteraction) (bool, error) {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "update_id"}},
		// The predicate must be rendered literally so it matches the
		// partial index definition; bound parameters are rejected in
		// conflict targets.
		TargetWhere: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "kind = 'like'"},
		}},
		DoNothing: true,
	}).Create(interaction)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) DeleteLike(ctx context.Context, userID, updateID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND update_id = ? AND kind = ?", userID, updateID, enums.InteractionLike).
		Delete(&models.SocialInteraction{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) InsertComment(ctx context.Context, interaction *models.SocialInteraction) error {
	return r.db.WithContext(ctx).Create(interaction).Error
}

func (r *repositoryImpl) FindCommentByID(ctx context.Context, commentID uuid.UUID) (*models.SocialInteraction, error) {
	var interaction models.SocialInteraction
	err := r.db.WithContext(ctx).
		Where("id = ? AND kind = ?", commentID, enums.InteractionComment).
		First(&interaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &interaction, nil
}

func (r *repositoryImpl) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND kind = ?", commentID, enums.InteractionComment).
		Delete(&models.SocialInteraction{}).Error
}

// AdjustLikes shifts the likes counter by delta, clamped at zero.
func (r *repositoryImpl) AdjustLikes(ctx context.Context, updateID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.CommunityUpdate{}).
		Where("id = ?", updateID).
		UpdateColumn("likes", gorm.Expr("CASE WHEN likes + ? < 0 THEN 0 ELSE likes + ? END", delta, delta)).Error
}

// AdjustComments shifts the comments counter by delta, clamped at zero.
func (r *repositoryImpl) AdjustComments(ctx context.Context, updateID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.CommunityUpdate{}).
		Where("id = ?", updateID).
		UpdateColumn("comments", gorm.Expr("CASE WHEN comments + ? < 0 THEN 0 ELSE comments + ? END", delta, delta)).Error
}
