package enums

import (
	"fmt"
	"strings"
)

// OutboxAggregateType maps to the aggregate_type enum in Postgres.
type OutboxAggregateType string

const (
	AggregateQuest       OutboxAggregateType = "quest"
	AggregateUserStats   OutboxAggregateType = "user_stats"
	AggregateAchievement OutboxAggregateType = "achievement"
	AggregateUser        OutboxAggregateType = "user"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregateQuest,
	AggregateUserStats,
	AggregateAchievement,
	AggregateUser,
}

// IsValid reports whether the value matches the canonical aggregate_type enum.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOutboxAggregateType converts raw input into OutboxAggregateType.
func ParseOutboxAggregateType(raw string) (OutboxAggregateType, error) {
	candidate := OutboxAggregateType(strings.ToLower(strings.TrimSpace(raw)))
	if !candidate.IsValid() {
		return "", fmt.Errorf("invalid aggregate type %q", raw)
	}
	return candidate, nil
}

// OutboxEventType maps to the event_type enum in Postgres.
type OutboxEventType string

const (
	EventQuestCreated        OutboxEventType = "quest.created"
	EventQuestCompleted      OutboxEventType = "quest.completed"
	EventQuestDeleted        OutboxEventType = "quest.deleted"
	EventAchievementUnlocked OutboxEventType = "achievement.unlocked"
	EventLevelUp             OutboxEventType = "level.up"
	EventAccountDeleted      OutboxEventType = "account.deleted"
)

var validOutboxEventTypes = []OutboxEventType{
	EventQuestCreated,
	EventQuestCompleted,
	EventQuestDeleted,
	EventAchievementUnlocked,
	EventLevelUp,
	EventAccountDeleted,
}

// IsValid reports whether the value matches the canonical event_type enum.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(raw string) (OutboxEventType, error) {
	candidate := OutboxEventType(strings.ToLower(strings.TrimSpace(raw)))
	if !candidate.IsValid() {
		return "", fmt.Errorf("invalid event type %q", raw)
	}
	return candidate, nil
}

// OutboxDLQErrorReason maps to the outbox_dlq_error_reason enum in Postgres.
type OutboxDLQErrorReason string

const (
	OutboxDLQReasonMaxAttempts  OutboxDLQErrorReason = "max_attempts"
	OutboxDLQReasonNonRetryable OutboxDLQErrorReason = "non_retryable"
)

// IsValid reports whether the value matches the canonical outbox_dlq_error_reason enum.
func (r OutboxDLQErrorReason) IsValid() bool {
	return r == OutboxDLQReasonMaxAttempts || r == OutboxDLQReasonNonRetryable
}
