package community

import (
	"time"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/pkg/db/models"
	"github.com/froliik/froliik-backend/pkg/enums"
)

// UpdateDTO is the API projection of one feed entry.
type UpdateDTO struct {
	ID         uuid.UUID             `json:"id"`
	UserID     uuid.UUID             `json:"userId"`
	Action     enums.CommunityAction `json:"action"`
	QuestTitle string                `json:"questTitle"`
	Category   *enums.QuestCategory  `json:"category,omitempty"`
	Points     *int                  `json:"points,omitempty"`
	Level      *int                  `json:"level,omitempty"`
	Likes      int                   `json:"likes"`
	Comments   int                   `json:"comments"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// FeedPageDTO is one page of the community feed.
type FeedPageDTO struct {
	Updates    []UpdateDTO `json:"updates"`
	NextCursor string      `json:"nextCursor,omitempty"`
}

// CommentDTO is the API projection of one comment on a feed entry.
type CommentDTO struct {
	ID        uuid.UUID `json:"id"`
	UpdateID  uuid.UUID `json:"updateId"`
	UserID    uuid.UUID `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Entry describes a feed row to append. Category, Points and Level are
// optional and depend on the action.
type Entry struct {
	UserID     uuid.UUID
	Action     enums.CommunityAction
	QuestTitle string
	Category   *enums.QuestCategory
	Points     *int
	Level      *int
}

func updateFromModel(update models.CommunityUpdate) UpdateDTO {
	return UpdateDTO{
		ID:         update.ID,
		UserID:     update.UserID,
		Action:     update.Action,
		QuestTitle: update.QuestTitle,
		Category:   update.Category,
		Points:     update.Points,
		Level:      update.Level,
		Likes:      update.Likes,
		Comments:   update.Comments,
		CreatedAt:  update.CreatedAt,
	}
}

func commentFromModel(interaction models.SocialInteraction) CommentDTO {
	content := ""
	if interaction.Content != nil {
		content = *interaction.Content
	}
	return CommentDTO{
		ID:        interaction.ID,
		UpdateID:  interaction.UpdateID,
		UserID:    interaction.UserID,
		Content:   content,
		CreatedAt: interaction.CreatedAt,
	}
}
