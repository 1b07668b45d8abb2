package quests

import (
	"time"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/pkg/db/models"
	"github.com/froliik/froliik-backend/pkg/enums"
)

// QuestDTO is the API projection of one side quest.
type QuestDTO struct {
	ID          uuid.UUID           `json:"id"`
	UserID      uuid.UUID           `json:"userId"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    enums.QuestCategory `json:"category"`
	Difficulty  enums.Difficulty    `json:"difficulty"`
	Completed   bool                `json:"completed"`
	Reward      *string             `json:"reward,omitempty"`
	QuestGiver  *string             `json:"questGiver,omitempty"`
	Location    *string             `json:"location,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// QuestsPageDTO is one page of a user's quest list.
type QuestsPageDTO struct {
	Quests     []QuestDTO `json:"quests"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

// CreateQuestDTO carries a manually authored quest.
type CreateQuestDTO struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required,max=2000"`
	Category    string  `json:"category" validate:"required"`
	Difficulty  string  `json:"difficulty" validate:"required"`
	Reward      *string `json:"reward" validate:"omitempty,max=200"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
}

// GenerateResult is the outcome of a generation attempt. Generation never
// returns an error; every failure is folded into Success=false plus a reason.
type GenerateResult struct {
	Success    bool                `json:"success"`
	QuestID    *uuid.UUID          `json:"questId,omitempty"`
	Category   enums.QuestCategory `json:"category,omitempty"`
	Difficulty enums.Difficulty    `json:"difficulty,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// UnlockedAchievementDTO describes an achievement granted during a completion.
type UnlockedAchievementDTO struct {
	ID     uuid.UUID               `json:"id"`
	Name   string                  `json:"name"`
	Rarity enums.AchievementRarity `json:"rarity"`
	Points int                     `json:"points"`
}

// CompletionDTO is the progression outcome returned to the completing user.
type CompletionDTO struct {
	QuestID        uuid.UUID                `json:"questId"`
	PointsAwarded  int                      `json:"pointsAwarded"`
	TotalPoints    int                      `json:"totalPoints"`
	Experience     int                      `json:"experience"`
	Level          int                      `json:"level"`
	LeveledUp      bool                     `json:"leveledUp"`
	CurrentStreak  int                      `json:"currentStreak"`
	LongestStreak  int                      `json:"longestStreak"`
	Achievements   []UnlockedAchievementDTO `json:"achievements,omitempty"`
	CompletedQuest QuestDTO                 `json:"quest"`
}

func questFromModel(quest models.SideQuest) QuestDTO {
	return QuestDTO{
		ID:          quest.ID,
		UserID:      quest.UserID,
		Title:       quest.Title,
		Description: quest.Description,
		Category:    quest.Category,
		Difficulty:  quest.DifficultyLevel,
		Completed:   quest.Completed,
		Reward:      quest.Reward,
		QuestGiver:  quest.QuestGiver,
		Location:    quest.Location,
		CreatedAt:   quest.CreatedAt,
		UpdatedAt:   quest.UpdatedAt,
	}
}
