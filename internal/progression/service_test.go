package progression

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/froliik/froliik-backend/pkg/db/models"
	"github.com/froliik/froliik-backend/pkg/enums"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "progression.db")), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.UserStats{}, &models.Achievement{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc, err := NewService(ServiceParams{
		StatsRepo:        NewStatsRepository(conn),
		AchievementsRepo: NewAchievementsRepository(conn),
	})
	if err != nil {
		t.Fatalf("progression service: %v", err)
	}
	return svc, conn
}

func TestGetStatsZeroProjection(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	userID := uuid.New()

	stats, err := svc.GetStats(context.Background(), userID)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.UserID != userID || stats.Level != 1 || stats.TotalPoints != 0 || stats.LastActive != nil {
		t.Fatalf("unexpected zero projection: %+v", stats)
	}
}

func TestGetStatsProjectsStoredRow(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	userID := uuid.New()
	lastActive := time.Now().UTC().Truncate(time.Second)

	if err := conn.Create(&models.UserStats{
		ID:                   uuid.New(),
		UserID:               userID,
		TotalQuestsCompleted: 12,
		TotalPoints:          170,
		CurrentStreak:        5,
		LongestStreak:        9,
		Experience:           120,
		Level:                2,
		AchievementsUnlocked: 2,
		LastActive:           lastActive,
	}).Error; err != nil {
		t.Fatalf("seed stats: %v", err)
	}

	stats, err := svc.GetStats(context.Background(), userID)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.TotalQuestsCompleted != 12 || stats.Level != 2 || stats.LongestStreak != 9 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.LastActive == nil || !stats.LastActive.Equal(lastActive) {
		t.Fatalf("unexpected last active: %v", stats.LastActive)
	}
}

func TestListAchievementsNewestFirst(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	userID := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)

	names := []string{"First Quest", "Streak Master"}
	for i, name := range names {
		if err := conn.Create(&models.Achievement{
			ID:          uuid.New(),
			UserID:      userID,
			Name:        name,
			Description: name,
			Rarity:      enums.RarityCommon,
			Points:      10,
			UnlockedAt:  base.Add(time.Duration(i) * time.Minute),
		}).Error; err != nil {
			t.Fatalf("seed achievement: %v", err)
		}
	}
	// Another user's unlocks stay invisible.
	if err := conn.Create(&models.Achievement{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Name:        "First Quest",
		Description: "someone else",
		Rarity:      enums.RarityCommon,
		UnlockedAt:  base,
	}).Error; err != nil {
		t.Fatalf("seed other user: %v", err)
	}

	achievements, err := svc.ListAchievements(context.Background(), userID)
	if err != nil {
		t.Fatalf("list achievements: %v", err)
	}
	if len(achievements) != 2 {
		t.Fatalf("expected 2 achievements, got %d", len(achievements))
	}
	if achievements[0].Name != "Streak Master" || achievements[1].Name != "First Quest" {
		t.Fatalf("unexpected order: %+v", achievements)
	}
}
