package community

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/froliik/froliik-backend/pkg/db"
	"github.com/froliik/froliik-backend/pkg/db/models"
	"github.com/froliik/froliik-backend/pkg/enums"
	pkgerrors "github.com/froliik/froliik-backend/pkg/errors"
	"github.com/froliik/froliik-backend/pkg/logger"
	"github.com/froliik/froliik-backend/pkg/pagination"
)

const maxCommentLength = 500

// ServiceParams groups dependencies for the community service.
type ServiceParams struct {
	DB     *db.Client
	Repo   Repository
	Logger *logger.Logger
}

// Service exposes the community feed and its like/comment operations.
type Service interface {
	ListFeed(ctx context.Context, params pagination.Params) (FeedPageDTO, error)
	Like(ctx context.Context, userID, updateID uuid.UUID) error
	Unlike(ctx context.Context, userID, updateID uuid.UUID) error
	Comment(ctx context.Context, userID, updateID uuid.UUID, content string) (CommentDTO, error)
	DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error
}

type service struct {
	db   *db.Client
	repo Repository
	logg *logger.Logger
}

// NewService builds a community service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "db client is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "community repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger is required")
	}
	return &service{db: params.DB, repo: params.Repo, logg: params.Logger}, nil
}

// ListFeed returns one page of the global feed, newest first.
func (s *service) ListFeed(ctx context.Context, params pagination.Params) (FeedPageDTO, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return FeedPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	updates, next, err := s.repo.ListFeed(ctx, params.Limit, cursor)
	if err != nil {
		return FeedPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list community feed")
	}

	page := FeedPageDTO{Updates: make([]UpdateDTO, 0, len(updates))}
	for _, update := range updates {
		page.Updates = append(page.Updates, updateFromModel(update))
	}
	if next != nil {
		page.NextCursor = pagination.EncodeCursor(*next)
	}
	return page, nil
}

// Like records a like on a feed entry. A second like by the same user is a
// conflict; the counter only moves when a row was actually inserted.
func (s *service) Like(ctx context.Context, userID, updateID uuid.UUID) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		update, err := repo.FindUpdateByID(ctx, updateID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load community update")
		}
		if update == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "community update not found")
		}

		inserted, err := repo.InsertLike(ctx, &models.SocialInteraction{
			ID:       uuid.New(),
			UserID:   userID,
			UpdateID: updateID,
			Kind:     enums.InteractionLike,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert like")
		}
		if !inserted {
			return pkgerrors.New(pkgerrors.CodeConflict, "update already liked")
		}

		if err := repo.AdjustLikes(ctx, updateID, 1); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "increment likes")
		}
		return nil
	})
}

// Unlike removes the caller's like. Unliking something never liked is a
// not-found; the counter never goes below zero.
func (s *service) Unlike(ctx context.Context, userID, updateID uuid.UUID) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		deleted, err := repo.DeleteLike(ctx, userID, updateID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete like")
		}
		if !deleted {
			return pkgerrors.New(pkgerrors.CodeNotFound, "like not found")
		}

		if err := repo.AdjustLikes(ctx, updateID, -1); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement likes")
		}
		return nil
	})
}

// Comment appends a comment to a feed entry and bumps its counter.
func (s *service) Comment(ctx context.Context, userID, updateID uuid.UUID, content string) (CommentDTO, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return CommentDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "comment content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return CommentDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "comment exceeds 500 characters")
	}

	var created models.SocialInteraction
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		update, err := repo.FindUpdateByID(ctx, updateID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load community update")
		}
		if update == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "community update not found")
		}

		created = models.SocialInteraction{
			ID:       uuid.New(),
			UserID:   userID,
			UpdateID: updateID,
			Kind:     enums.InteractionComment,
			Content:  &content,
		}
		if err := repo.InsertComment(ctx, &created); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert comment")
		}
		return repo.AdjustComments(ctx, updateID, 1)
	})
	if err != nil {
		return CommentDTO{}, err
	}
	return commentFromModel(created), nil
}

// DeleteComment removes a comment. Only the comment's author may delete it.
func (s *service) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		comment, err := repo.FindCommentByID(ctx, commentID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load comment")
		}
		if comment == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "comment not found")
		}
		if comment.UserID != userID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the author may delete a comment")
		}

		if err := repo.DeleteComment(ctx, commentID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete comment")
		}
		return repo.AdjustComments(ctx, comment.UpdateID, -1)
	})
}
