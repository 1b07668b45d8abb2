package notifications

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/pkg/enums"
	"github.com/froliik/froliik-backend/pkg/outbox/payloads"
)

func mustMarshal(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return data
}

func TestBuildNotificationQuestCreated(t *testing.T) {
	c := &Consumer{}
	userID := uuid.New()

	notification, err := c.buildNotification(enums.EventQuestCreated, mustMarshal(t, payloads.QuestCreatedEvent{
		QuestID: uuid.New(),
		UserID:  userID,
		Title:   "Take a mindful walk",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notification.UserID != userID {
		t.Fatalf("expected user %s, got %s", userID, notification.UserID)
	}
	if notification.Type != enums.NotificationQuestCreated {
		t.Fatalf("unexpected type %s", notification.Type)
	}
	if notification.Title != "New quest awaits" {
		t.Fatalf("unexpected title %q", notification.Title)
	}
	if !strings.Contains(notification.Message, "Take a mindful walk") {
		t.Fatalf("message missing quest title: %q", notification.Message)
	}
}

func TestBuildNotificationFirstQuestTitle(t *testing.T) {
	c := &Consumer{}

	notification, err := c.buildNotification(enums.EventQuestCreated, mustMarshal(t, payloads.QuestCreatedEvent{
		UserID:     uuid.New(),
		Title:      "Write down three gratitudes",
		FirstQuest: true,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notification.Title != "Your first quest awaits" {
		t.Fatalf("unexpected title %q", notification.Title)
	}
}

func TestBuildNotificationQuestCompleted(t *testing.T) {
	c := &Consumer{}

	notification, err := c.buildNotification(enums.EventQuestCompleted, mustMarshal(t, payloads.QuestCompletedEvent{
		UserID:        uuid.New(),
		Title:         "Sketch for ten minutes",
		PointsAwarded: 10,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notification.Type != enums.NotificationQuestCompleted {
		t.Fatalf("unexpected type %s", notification.Type)
	}
	if !strings.Contains(notification.Message, "10 points") {
		t.Fatalf("message missing points: %q", notification.Message)
	}
}

func TestBuildNotificationAchievementAndLevelUp(t *testing.T) {
	c := &Consumer{}

	achievement, err := c.buildNotification(enums.EventAchievementUnlocked, mustMarshal(t, payloads.AchievementUnlockedEvent{
		UserID: uuid.New(),
		Name:   "Streak Master",
		Rarity: enums.RarityRare,
		Points: 50,
	}))
	if err != nil {
		t.Fatalf("unexpected achievement error: %v", err)
	}
	if achievement.Type != enums.NotificationAchievementUnlocked {
		t.Fatalf("unexpected type %s", achievement.Type)
	}
	if !strings.Contains(achievement.Message, "Streak Master") {
		t.Fatalf("message missing achievement name: %q", achievement.Message)
	}

	levelUp, err := c.buildNotification(enums.EventLevelUp, mustMarshal(t, payloads.LevelUpEvent{
		UserID:        uuid.New(),
		PreviousLevel: 1,
		Level:         2,
	}))
	if err != nil {
		t.Fatalf("unexpected level up error: %v", err)
	}
	if levelUp.Title != "Level 2 reached" {
		t.Fatalf("unexpected title %q", levelUp.Title)
	}
}

func TestBuildNotificationRejectsMissingUser(t *testing.T) {
	c := &Consumer{}
	if _, err := c.buildNotification(enums.EventQuestCreated, mustMarshal(t, payloads.QuestCreatedEvent{Title: "Orphan"})); err == nil {
		t.Fatal("expected error for missing user id")
	}
}

func TestBuildNotificationIgnoresUnknownEvent(t *testing.T) {
	c := &Consumer{}
	notification, err := c.buildNotification(enums.EventAccountDeleted, json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notification != nil {
		t.Fatalf("expected nil notification, got %+v", notification)
	}
}
