package quests

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/pkg/db/models"
	"github.com/froliik/froliik-backend/pkg/enums"
	pkgerrors "github.com/froliik/froliik-backend/pkg/errors"
)

func TestLevelForExperience(t *testing.T) {
	t.Parallel()

	for experience := 0; experience <= 1000; experience += 10 {
		want := experience/100 + 1
		if got := levelForExperience(experience); got != want {
			t.Fatalf("levelForExperience(%d) = %d, want %d", experience, got, want)
		}
	}
	if got := levelForExperience(-5); got != 1 {
		t.Fatalf("negative experience should clamp to level 1, got %d", got)
	}
}

func (e *testEnv) createQuest(t *testing.T, userID uuid.UUID) uuid.UUID {
	t.Helper()
	quest := models.SideQuest{
		ID:              uuid.New(),
		UserID:          userID,
		Title:           "Stretch like you mean it",
		Description:     "Five minutes, full body.",
		Category:        enums.CategoryMovement,
		DifficultyLevel: enums.DifficultyGentle,
	}
	if err := e.conn.Create(&quest).Error; err != nil {
		t.Fatalf("create quest: %v", err)
	}
	return quest.ID
}

func (e *testEnv) loadStats(t *testing.T, userID uuid.UUID) models.UserStats {
	t.Helper()
	var stats models.UserStats
	if err := e.conn.First(&stats, "user_id = ?", userID).Error; err != nil {
		t.Fatalf("load stats: %v", err)
	}
	return stats
}

func TestCompleteOwnershipCheck(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, true)
	stranger := env.createUser(t, true)
	questID := env.createQuest(t, owner)

	_, err := env.svc.Complete(ctx, questID, stranger)
	if pkgErr := pkgerrors.As(err); pkgErr == nil || pkgErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found for non-owner, got %v", err)
	}
	if _, err := env.svc.Complete(ctx, uuid.New(), owner); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found for missing quest, got %v", err)
	}

	// No partial mutation: quest still open, no stats row created.
	var quest models.SideQuest
	if err := env.conn.First(&quest, "id = ?", questID).Error; err != nil {
		t.Fatalf("load quest: %v", err)
	}
	if quest.Completed {
		t.Fatalf("quest must stay open after failed completions")
	}
	var statsCount int64
	if err := env.conn.Model(&models.UserStats{}).Count(&statsCount).Error; err != nil {
		t.Fatalf("count stats: %v", err)
	}
	if statsCount != 0 {
		t.Fatalf("no stats rows expected, got %d", statsCount)
	}
}

func TestCompleteFirstQuestProgression(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.createUser(t, true)
	questID := env.createQuest(t, userID)

	outcome, err := env.svc.Complete(ctx, questID, userID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if outcome.PointsAwarded != 10 || outcome.TotalPoints != 10 || outcome.Level != 1 || outcome.CurrentStreak != 1 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	stats := env.loadStats(t, userID)
	if stats.TotalQuestsCompleted != 1 || stats.Experience != 10 || stats.LongestStreak != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.AchievementsUnlocked != 1 {
		t.Fatalf("expected 1 achievement unlocked, got %d", stats.AchievementsUnlocked)
	}

	var achievements []models.Achievement
	if err := env.conn.Find(&achievements, "user_id = ?", userID).Error; err != nil {
		t.Fatalf("load achievements: %v", err)
	}
	if len(achievements) != 1 || achievements[0].Name != firstQuestAchievementName {
		t.Fatalf("expected exactly one First Quest achievement, got %+v", achievements)
	}
	if achievements[0].Rarity != enums.RarityCommon || achievements[0].Points != 10 {
		t.Fatalf("unexpected achievement attributes: %+v", achievements[0])
	}

	if got := env.outboxEventCount(t, enums.EventQuestCompleted); got != 1 {
		t.Fatalf("expected 1 quest.completed event, got %d", got)
	}
	if got := env.outboxEventCount(t, enums.EventAchievementUnlocked); got != 1 {
		t.Fatalf("expected 1 achievement.unlocked event, got %d", got)
	}

	var feed []models.CommunityUpdate
	if err := env.conn.Order("created_at ASC").Find(&feed, "action = ?", enums.ActionCompleted).Error; err != nil {
		t.Fatalf("load feed: %v", err)
	}
	if len(feed) != 1 || feed[0].Points == nil || *feed[0].Points != 10 {
		t.Fatalf("unexpected completion feed entry: %+v", feed)
	}
}

// A second completion of the same quest must fail with a state conflict and
// leave the counters untouched; the whole progression update is transactional.
func TestCompleteTwiceDoesNotDoubleAward(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.createUser(t, true)
	questID := env.createQuest(t, userID)

	if _, err := env.svc.Complete(ctx, questID, userID); err != nil {
		t.Fatalf("first completion: %v", err)
	}

	_, err := env.svc.Complete(ctx, questID, userID)
	if pkgErr := pkgerrors.As(err); pkgErr == nil || pkgErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict on second completion, got %v", err)
	}

	stats := env.loadStats(t, userID)
	if stats.TotalQuestsCompleted != 1 || stats.TotalPoints != 10 || stats.CurrentStreak != 1 {
		t.Fatalf("second completion mutated stats: %+v", stats)
	}
	if got := env.outboxEventCount(t, enums.EventQuestCompleted); got != 1 {
		t.Fatalf("expected exactly 1 quest.completed event, got %d", got)
	}
}

func TestStreakMasterAtSevenCompletions(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.createUser(t, true)

	for i := 0; i < 7; i++ {
		questID := env.createQuest(t, userID)
		if _, err := env.svc.Complete(ctx, questID, userID); err != nil {
			t.Fatalf("completion %d: %v", i+1, err)
		}
	}

	stats := env.loadStats(t, userID)
	if stats.CurrentStreak != 7 || stats.LongestStreak != 7 {
		t.Fatalf("unexpected streak: %+v", stats)
	}
	// 7 completions x 10 points plus the 50 point streak bonus.
	if stats.TotalPoints != 120 {
		t.Fatalf("expected 120 total points, got %d", stats.TotalPoints)
	}
	if stats.AchievementsUnlocked != 2 {
		t.Fatalf("expected 2 achievements unlocked, got %d", stats.AchievementsUnlocked)
	}

	var streakMasters []models.Achievement
	if err := env.conn.Find(&streakMasters, "user_id = ? AND name = ?", userID, streakMasterAchievementName).Error; err != nil {
		t.Fatalf("load streak master: %v", err)
	}
	if len(streakMasters) != 1 {
		t.Fatalf("expected exactly one Streak Master, got %d", len(streakMasters))
	}
	if streakMasters[0].Rarity != enums.RarityRare || streakMasters[0].Points != 50 {
		t.Fatalf("unexpected streak master attributes: %+v", streakMasters[0])
	}
}

func TestLevelUpEmitsFeedEntryAndEvent(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.createUser(t, true)

	// Ten completions cross the 100 experience boundary into level 2.
	var outcome CompletionDTO
	var err error
	for i := 0; i < 10; i++ {
		questID := env.createQuest(t, userID)
		outcome, err = env.svc.Complete(ctx, questID, userID)
		if err != nil {
			t.Fatalf("completion %d: %v", i+1, err)
		}
	}
	if !outcome.LeveledUp || outcome.Level != 2 {
		t.Fatalf("expected level up to 2, got %+v", outcome)
	}

	var entries []models.CommunityUpdate
	if err := env.conn.Find(&entries, "action = ?", enums.ActionLevelUp).Error; err != nil {
		t.Fatalf("load level-up entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 level-up feed entry, got %d", len(entries))
	}
	if entries[0].Level == nil || *entries[0].Level != 2 || entries[0].Points == nil || *entries[0].Points != 20 {
		t.Fatalf("unexpected level-up entry: %+v", entries[0])
	}
	if got := env.outboxEventCount(t, enums.EventLevelUp); got != 1 {
		t.Fatalf("expected 1 level.up event, got %d", got)
	}
}
