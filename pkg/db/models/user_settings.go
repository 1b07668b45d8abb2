package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationToggles is the stored shape of the notification preference group.
// Fields are pointers so that rows written by older app versions can be told
// apart from explicit false values when merging with defaults.
type NotificationToggles struct {
	QuestReminders   *bool `json:"questReminders,omitempty"`
	DailyDigest      *bool `json:"dailyDigest,omitempty"`
	AchievementAlert *bool `json:"achievementAlert,omitempty"`
	CommunityUpdates *bool `json:"communityUpdates,omitempty"`
}

// PrivacyToggles is the stored shape of the privacy preference group.
type PrivacyToggles struct {
	ShareProgress     *bool `json:"shareProgress,omitempty"`
	PublicProfile     *bool `json:"publicProfile,omitempty"`
	ShowOnLeaderboard *bool `json:"showOnLeaderboard,omitempty"`
}

// DuplicatePrevention configures retrying generation away from recent titles.
type DuplicatePrevention struct {
	Enabled             *bool    `json:"enabled,omitempty"`
	SimilarityThreshold *float64 `json:"similarityThreshold,omitempty"`
	CheckLastNDays      *int     `json:"checkLastNDays,omitempty"`
	MaxRetries          *int     `json:"maxRetries,omitempty"`
}

// AIPreferences configures the optional AI-backed quest text path.
type AIPreferences struct {
	Enabled      *bool   `json:"enabled,omitempty"`
	Tone         *string `json:"tone,omitempty"`
	DurationHint *string `json:"durationHint,omitempty"`
	LocationHint *string `json:"locationHint,omitempty"`
}

// QuestPreferenceSettings is the stored shape of the quest preference group.
type QuestPreferenceSettings struct {
	PreferredCategories []string            `json:"preferredCategories,omitempty"`
	DefaultDifficulty   *string             `json:"defaultDifficulty,omitempty"`
	AutoGenerateQuests  *bool               `json:"autoGenerateQuests,omitempty"`
	Paused              *bool               `json:"paused,omitempty"`
	AIPreferences       AIPreferences       `json:"aiPreferences,omitempty"`
	DuplicatePrevention DuplicatePrevention `json:"duplicatePrevention,omitempty"`
}

// OnboardingProgress is the stored shape of the three-step onboarding flow.
type OnboardingProgress struct {
	Completed      *bool    `json:"completed,omitempty"`
	Step1Completed *bool    `json:"step1Completed,omitempty"`
	Step2Completed *bool    `json:"step2Completed,omitempty"`
	Step3Completed *bool    `json:"step3Completed,omitempty"`
	Interests      []string `json:"interests,omitempty"`
	QuestLevel     *string  `json:"questLevel,omitempty"`
	FullName       *string  `json:"fullName,omitempty"`
}

// UserSettings holds one settings document per user. The JSON groups may be
// partial on disk; reads go through the settings service merge so callers
// always see a fully-populated shape.
type UserSettings struct {
	ID               uuid.UUID               `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID               `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Notifications    NotificationToggles     `gorm:"column:notifications;type:jsonb;serializer:json"`
	Privacy          PrivacyToggles          `gorm:"column:privacy;type:jsonb;serializer:json"`
	QuestPreferences QuestPreferenceSettings `gorm:"column:quest_preferences;type:jsonb;serializer:json"`
	Onboarding       OnboardingProgress      `gorm:"column:onboarding;type:jsonb;serializer:json"`
	CreatedAt        time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
