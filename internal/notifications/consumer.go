package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/pkg/db/models"
	"github.com/froliik/froliik-backend/pkg/enums"
	"github.com/froliik/froliik-backend/pkg/logger"
	"github.com/froliik/froliik-backend/pkg/outbox"
	"github.com/froliik/froliik-backend/pkg/outbox/idempotency"
	"github.com/froliik/froliik-backend/pkg/outbox/payloads"
)

const questNotificationConsumer = "quest-notifications"

type repository interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// Consumer watches quest lifecycle events and writes in-app notifications.
type Consumer struct {
	repo         repository
	subscription *pubsub.Subscriber
	idempotency  *idempotency.Manager
	logg         *logger.Logger
}

// NewConsumer builds a quest notification consumer.
func NewConsumer(repo repository, subscription *pubsub.Subscriber, manager *idempotency.Manager, logg *logger.Logger) (*Consumer, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("quest subscription required")
	}
	if manager == nil {
		return nil, fmt.Errorf("idempotency manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		repo:         repo,
		subscription: subscription,
		idempotency:  manager,
		logg:         logg,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := enums.OutboxEventType(msg.Attributes["event_type"])
	fields := map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	}
	logCtx := c.logg.WithFields(ctx, fields)

	if !notifiableEvent(eventType) {
		c.logg.Info(logCtx, "skipping event without notification")
		return processResult{ack: true}
	}

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		c.logg.Error(logCtx, "failed to decode envelope", err)
		return processResult{ack: true}
	}

	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		c.logg.Error(logCtx, "invalid event id", err)
		return processResult{ack: true}
	}

	already, err := c.idempotency.CheckAndMarkProcessed(ctx, questNotificationConsumer, eventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	}

	notification, err := c.buildNotification(eventType, envelope.Data)
	if err != nil {
		c.logg.Error(logCtx, "failed to parse payload", err)
		_ = c.idempotency.Delete(ctx, questNotificationConsumer, eventID)
		return processResult{nack: true}
	}
	if notification == nil {
		return processResult{ack: true}
	}

	if err := c.repo.Create(ctx, notification); err != nil {
		c.logg.Error(logCtx, "notification write failed", err)
		_ = c.idempotency.Delete(ctx, questNotificationConsumer, eventID)
		return processResult{nack: true}
	}

	c.logg.Info(c.logg.WithField(logCtx, "user_id", notification.UserID.String()), "notification created")
	return processResult{ack: true}
}

func notifiableEvent(eventType enums.OutboxEventType) bool {
	switch eventType {
	case enums.EventQuestCreated, enums.EventQuestCompleted, enums.EventAchievementUnlocked, enums.EventLevelUp:
		return true
	default:
		return false
	}
}

func (c *Consumer) buildNotification(eventType enums.OutboxEventType, data json.RawMessage) (*models.Notification, error) {
	switch eventType {
	case enums.EventQuestCreated:
		var payload payloads.QuestCreatedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
		if payload.UserID == uuid.Nil {
			return nil, fmt.Errorf("user id missing")
		}
		title := "New quest awaits"
		if payload.FirstQuest {
			title = "Your first quest awaits"
		}
		return &models.Notification{
			ID:      uuid.New(),
			UserID:  payload.UserID,
			Type:    enums.NotificationQuestCreated,
			Title:   title,
			Message: fmt.Sprintf("%q is ready for you.", payload.Title),
		}, nil

	case enums.EventQuestCompleted:
		var payload payloads.QuestCompletedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
		if payload.UserID == uuid.Nil {
			return nil, fmt.Errorf("user id missing")
		}
		return &models.Notification{
			ID:      uuid.New(),
			UserID:  payload.UserID,
			Type:    enums.NotificationQuestCompleted,
			Title:   "Quest completed",
			Message: fmt.Sprintf("You finished %q and earned %d points.", payload.Title, payload.PointsAwarded),
		}, nil

	case enums.EventAchievementUnlocked:
		var payload payloads.AchievementUnlockedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
		if payload.UserID == uuid.Nil {
			return nil, fmt.Errorf("user id missing")
		}
		return &models.Notification{
			ID:      uuid.New(),
			UserID:  payload.UserID,
			Type:    enums.NotificationAchievementUnlocked,
			Title:   "Achievement unlocked",
			Message: fmt.Sprintf("%s (%s, %d points)", payload.Name, payload.Rarity, payload.Points),
		}, nil

	case enums.EventLevelUp:
		var payload payloads.LevelUpEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
		if payload.UserID == uuid.Nil {
			return nil, fmt.Errorf("user id missing")
		}
		return &models.Notification{
			ID:      uuid.New(),
			UserID:  payload.UserID,
			Type:    enums.NotificationLevelUp,
			Title:   fmt.Sprintf("Level %d reached", payload.Level),
			Message: fmt.Sprintf("You leveled up from %d to %d. Keep it going!", payload.PreviousLevel, payload.Level),
		}, nil
	}
	return nil, nil
}
