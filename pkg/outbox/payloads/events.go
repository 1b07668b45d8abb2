package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/pkg/enums"
)

// QuestCreatedEvent signals a freshly generated quest.
type QuestCreatedEvent struct {
	QuestID    uuid.UUID           `json:"quest_id"`
	UserID     uuid.UUID           `json:"user_id"`
	Title      string              `json:"title"`
	Category   enums.QuestCategory `json:"category"`
	Difficulty enums.Difficulty    `json:"difficulty"`
	Source     string              `json:"source"`
	FirstQuest bool                `json:"first_quest,omitempty"`
}

// QuestCompletedEvent carries the full progression outcome of a completion.
type QuestCompletedEvent struct {
	QuestID       uuid.UUID           `json:"quest_id"`
	UserID        uuid.UUID           `json:"user_id"`
	Title         string              `json:"title"`
	Category      enums.QuestCategory `json:"category"`
	PointsAwarded int                 `json:"points_awarded"`
	TotalPoints   int                 `json:"total_points"`
	Level         int                 `json:"level"`
	LeveledUp     bool                `json:"leveled_up"`
	CurrentStreak int                 `json:"current_streak"`
	CompletedAt   time.Time           `json:"completed_at"`
}

// QuestDeletedEvent is emitted when a user removes an uncompleted quest.
type QuestDeletedEvent struct {
	QuestID uuid.UUID `json:"quest_id"`
	UserID  uuid.UUID `json:"user_id"`
}

// AchievementUnlockedEvent is emitted once per achievement per user.
type AchievementUnlockedEvent struct {
	AchievementID uuid.UUID               `json:"achievement_id"`
	UserID        uuid.UUID               `json:"user_id"`
	Name          string                  `json:"name"`
	Rarity        enums.AchievementRarity `json:"rarity"`
	Points        int                     `json:"points"`
	UnlockedAt    time.Time               `json:"unlocked_at"`
}

// LevelUpEvent is emitted when a completion crosses a level boundary.
type LevelUpEvent struct {
	UserID        uuid.UUID `json:"user_id"`
	PreviousLevel int       `json:"previous_level"`
	Level         int       `json:"level"`
	Experience    int       `json:"experience"`
}

// AccountDeletedEvent tells downstream systems to purge user data.
type AccountDeletedEvent struct {
	UserID    uuid.UUID `json:"user_id"`
	DeletedAt time.Time `json:"deleted_at"`
}
