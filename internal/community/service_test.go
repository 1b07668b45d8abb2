package community

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/pkg/config"
	"github.com/froliik/froliik-backend/pkg/db"
	"github.com/froliik/froliik-backend/pkg/db/models"
	"github.com/froliik/froliik-backend/pkg/enums"
	pkgerrors "github.com/froliik/froliik-backend/pkg/errors"
	"github.com/froliik/froliik-backend/pkg/logger"
	"github.com/froliik/froliik-backend/pkg/pagination"
)

type testEnv struct {
	client *db.Client
	svc    Service
	repo   Repository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "community.db")
	client, err := db.New(context.Background(), config.DBConfig{Driver: "sqlite", DSN: dsn}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	conn := client.DB()
	if err := conn.AutoMigrate(&models.CommunityUpdate{}, &models.SocialInteraction{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// The insert-or-ignore like path targets this partial unique index; in
	// production it comes from the goose migrations.
	if err := conn.Exec(
		`CREATE UNIQUE INDEX ux_social_interactions_like ON social_interactions (user_id, update_id) WHERE kind = 'like'`,
	).Error; err != nil {
		t.Fatalf("create like index: %v", err)
	}

	repo := NewRepository(conn)
	svc, err := NewService(ServiceParams{
		DB:     client,
		Repo:   repo,
		Logger: logger.New(logger.Options{ServiceName: "community-test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("community service: %v", err)
	}
	return &testEnv{client: client, svc: svc, repo: repo}
}

func (e *testEnv) seedUpdate(t *testing.T) uuid.UUID {
	t.Helper()
	points := 10
	category := enums.CategoryMovement
	update := models.CommunityUpdate{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		Action:     enums.ActionCompleted,
		QuestTitle: "Stretch like you mean it",
		Category:   &category,
		Points:     &points,
	}
	if err := e.client.DB().Create(&update).Error; err != nil {
		t.Fatalf("seed update: %v", err)
	}
	return update.ID
}

func (e *testEnv) loadUpdate(t *testing.T, id uuid.UUID) models.CommunityUpdate {
	t.Helper()
	var update models.CommunityUpdate
	if err := e.client.DB().First(&update, "id = ?", id).Error; err != nil {
		t.Fatalf("load update: %v", err)
	}
	return update
}

func TestLikeIsUniquePerUser(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	updateID := env.seedUpdate(t)
	userID := uuid.New()

	if err := env.svc.Like(ctx, userID, updateID); err != nil {
		t.Fatalf("first like: %v", err)
	}

	err := env.svc.Like(ctx, userID, updateID)
	if pkgErr := pkgerrors.As(err); pkgErr == nil || pkgErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict on second like, got %v", err)
	}

	// The duplicate attempt must not bump the counter.
	if update := env.loadUpdate(t, updateID); update.Likes != 1 {
		t.Fatalf("expected likes=1, got %d", update.Likes)
	}

	// A different user can still like it.
	if err := env.svc.Like(ctx, uuid.New(), updateID); err != nil {
		t.Fatalf("second user's like: %v", err)
	}
	if update := env.loadUpdate(t, updateID); update.Likes != 2 {
		t.Fatalf("expected likes=2, got %d", update.Likes)
	}
}

func TestLikeMissingUpdate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	err := env.svc.Like(context.Background(), uuid.New(), uuid.New())
	if pkgErr := pkgerrors.As(err); pkgErr == nil || pkgErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestUnlikeRequiresExistingLike(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	updateID := env.seedUpdate(t)
	userID := uuid.New()

	err := env.svc.Unlike(ctx, userID, updateID)
	if pkgErr := pkgerrors.As(err); pkgErr == nil || pkgErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found unliking without a like, got %v", err)
	}
	if update := env.loadUpdate(t, updateID); update.Likes != 0 {
		t.Fatalf("counter moved on failed unlike: %d", update.Likes)
	}

	if err := env.svc.Like(ctx, userID, updateID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := env.svc.Unlike(ctx, userID, updateID); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if update := env.loadUpdate(t, updateID); update.Likes != 0 {
		t.Fatalf("expected likes back to 0, got %d", update.Likes)
	}
}

func TestCommentValidationAndCounters(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	updateID := env.seedUpdate(t)
	author := uuid.New()

	if _, err := env.svc.Comment(ctx, author, updateID, "   "); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank comment")
	}
	if _, err := env.svc.Comment(ctx, author, updateID, strings.Repeat("x", 501)); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for long comment")
	}

	comment, err := env.svc.Comment(ctx, author, updateID, "Nice one!")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	if comment.Content != "Nice one!" || comment.UpdateID != updateID {
		t.Fatalf("unexpected comment: %+v", comment)
	}
	if update := env.loadUpdate(t, updateID); update.Comments != 1 {
		t.Fatalf("expected comments=1, got %d", update.Comments)
	}
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	updateID := env.seedUpdate(t)
	author := uuid.New()

	comment, err := env.svc.Comment(ctx, author, updateID, "Keep going!")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}

	err = env.svc.DeleteComment(ctx, uuid.New(), comment.ID)
	if pkgErr := pkgerrors.As(err); pkgErr == nil || pkgErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for non-author, got %v", err)
	}
	if update := env.loadUpdate(t, updateID); update.Comments != 1 {
		t.Fatalf("failed delete moved the counter: %d", update.Comments)
	}

	if err := env.svc.DeleteComment(ctx, author, comment.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if update := env.loadUpdate(t, updateID); update.Comments != 0 {
		t.Fatalf("expected comments=0, got %d", update.Comments)
	}

	// Deleting again reports not-found and the counter stays clamped at 0.
	if err := env.svc.DeleteComment(ctx, author, comment.ID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found on repeated delete")
	}
	if update := env.loadUpdate(t, updateID); update.Comments != 0 {
		t.Fatalf("counter went negative: %d", update.Comments)
	}
}

func TestListFeedPagination(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		env.seedUpdate(t)
	}

	first, err := env.svc.ListFeed(ctx, pagination.Params{Limit: 3})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Updates) != 3 || first.NextCursor == "" {
		t.Fatalf("unexpected first page: %d updates, cursor %q", len(first.Updates), first.NextCursor)
	}

	second, err := env.svc.ListFeed(ctx, pagination.Params{Limit: 3, Cursor: first.NextCursor})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Updates) != 2 || second.NextCursor != "" {
		t.Fatalf("unexpected second page: %d updates, cursor %q", len(second.Updates), second.NextCursor)
	}

	if _, err := env.svc.ListFeed(ctx, pagination.Params{Cursor: "not-base64!"}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad cursor")
	}
}
