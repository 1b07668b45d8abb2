package users

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/pkg/config"
	"github.com/froliik/froliik-backend/pkg/db"
	"github.com/froliik/froliik-backend/pkg/db/models"
	"github.com/froliik/froliik-backend/pkg/enums"
	pkgerrors "github.com/froliik/froliik-backend/pkg/errors"
	"github.com/froliik/froliik-backend/pkg/logger"
	"github.com/froliik/froliik-backend/pkg/outbox"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "users.db")
	client, err := db.New(context.Background(), config.DBConfig{Driver: "sqlite", DSN: dsn}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	conn := client.DB()
	if err := conn.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
		&models.SideQuest{},
		&models.UserStats{},
		&models.Achievement{},
		&models.CommunityUpdate{},
		&models.SocialInteraction{},
		&models.Notification{},
		&models.OutboxEvent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	logg := logger.New(logger.Options{ServiceName: "users-test", Output: io.Discard})
	svc, err := NewService(ServiceParams{
		DB:     client,
		Repo:   NewRepository(conn),
		Outbox: outbox.NewService(outbox.NewRepository(conn), logg),
		Logger: logg,
	})
	if err != nil {
		t.Fatalf("users service: %v", err)
	}
	return svc, client
}

func TestEnsureUserUpsert(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.EnsureUser(ctx, EnsureUserDTO{
		ExternalAuthID: "auth-1",
		Email:          "  Quester@Example.COM ",
	})
	if err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	if first.Email != "quester@example.com" {
		t.Fatalf("email not normalized: %q", first.Email)
	}
	if first.DisplayName != "quester" {
		t.Fatalf("display name should fall back to the email local part, got %q", first.DisplayName)
	}

	second, err := svc.EnsureUser(ctx, EnsureUserDTO{
		ExternalAuthID: "auth-1",
		Email:          "quester@example.com",
		DisplayName:    "The Quester",
	})
	if err != nil {
		t.Fatalf("ensure user again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a second user: %s vs %s", second.ID, first.ID)
	}
	if second.DisplayName != "The Quester" {
		t.Fatalf("display name not updated: %q", second.DisplayName)
	}
}

func TestEnsureUserValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.EnsureUser(ctx, EnsureUserDTO{Email: "a@b.c"}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error without external auth id")
	}
	if _, err := svc.EnsureUser(ctx, EnsureUserDTO{ExternalAuthID: "auth-2"}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error without email")
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	t.Parallel()

	svc, client := newTestService(t)
	ctx := context.Background()
	conn := client.DB()

	profile, err := svc.EnsureUser(ctx, EnsureUserDTO{ExternalAuthID: "auth-3", Email: "gone@example.com"})
	if err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	userID := profile.ID

	seed := []any{
		&models.UserSettings{ID: uuid.New(), UserID: userID},
		&models.SideQuest{ID: uuid.New(), UserID: userID, Title: "t", Description: "d", Category: enums.CategoryMindfulness, DifficultyLevel: enums.DifficultyGentle},
		&models.UserStats{ID: uuid.New(), UserID: userID, Level: 1},
		&models.Achievement{ID: uuid.New(), UserID: userID, Name: "First Quest", Description: "d", Rarity: enums.RarityCommon},
		&models.CommunityUpdate{ID: uuid.New(), UserID: userID, Action: enums.ActionCompleted, QuestTitle: "t"},
		&models.Notification{ID: uuid.New(), UserID: userID, Type: enums.NotificationQuestCompleted, Title: "t", Message: "m"},
	}
	for _, row := range seed {
		if err := conn.Create(row).Error; err != nil {
			t.Fatalf("seed row %T: %v", row, err)
		}
	}

	if err := svc.DeleteAccount(ctx, userID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	for _, model := range []any{
		&models.User{}, &models.UserSettings{}, &models.SideQuest{}, &models.UserStats{},
		&models.Achievement{}, &models.CommunityUpdate{}, &models.Notification{},
	} {
		var count int64
		if err := conn.Model(model).Where("1 = 1").Count(&count).Error; err != nil {
			t.Fatalf("count %T: %v", model, err)
		}
		if count != 0 {
			t.Fatalf("%T rows survived deletion: %d", model, count)
		}
	}

	var eventCount int64
	if err := conn.Model(&models.OutboxEvent{}).Where("event_type = ?", enums.EventAccountDeleted).Count(&eventCount).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if eventCount != 1 {
		t.Fatalf("expected 1 account.deleted event, got %d", eventCount)
	}

	if err := svc.DeleteAccount(ctx, userID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found deleting twice")
	}
}
