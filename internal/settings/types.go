package settings

import (
	"time"

	"github.com/google/uuid"
)

// NotificationsDTO is the fully-populated notification preference group.
type NotificationsDTO struct {
	QuestReminders   bool `json:"quest_reminders"`
	DailyDigest      bool `json:"daily_digest"`
	AchievementAlert bool `json:"achievement_alert"`
	CommunityUpdates bool `json:"community_updates"`
}

// PrivacyDTO is the fully-populated privacy preference group.
type PrivacyDTO struct {
	ShareProgress     bool `json:"share_progress"`
	PublicProfile     bool `json:"public_profile"`
	ShowOnLeaderboard bool `json:"show_on_leaderboard"`
}

// AIPreferencesDTO configures the AI quest-text path.
type AIPreferencesDTO struct {
	Enabled      bool   `json:"enabled"`
	Tone         string `json:"tone"`
	DurationHint string `json:"duration_hint"`
	LocationHint string `json:"location_hint"`
}

// DuplicatePreventionDTO configures retrying generation away from recent titles.
type DuplicatePreventionDTO struct {
	Enabled             bool    `json:"enabled"`
	SimilarityThreshold float64 `json:"similarity_threshold"`
	CheckLastNDays      int     `json:"check_last_n_days"`
	MaxRetries          int     `json:"max_retries"`
}

// QuestPreferencesDTO is the fully-populated quest preference group.
// DifficultyChosen reports whether DefaultDifficulty came from an explicit
// user choice rather than the defaults; it is merge metadata, not part of
// the document.
type QuestPreferencesDTO struct {
	PreferredCategories []string               `json:"preferred_categories"`
	DefaultDifficulty   string                 `json:"default_difficulty"`
	DifficultyChosen    bool                   `json:"-"`
	AutoGenerateQuests  bool                   `json:"auto_generate_quests"`
	Paused              bool                   `json:"paused"`
	AIPreferences       AIPreferencesDTO       `json:"ai_preferences"`
	DuplicatePrevention DuplicatePreventionDTO `json:"duplicate_prevention"`
}

// OnboardingDTO is the fully-populated onboarding progress group.
type OnboardingDTO struct {
	Completed      bool     `json:"completed"`
	Step1Completed bool     `json:"step1_completed"`
	Step2Completed bool     `json:"step2_completed"`
	Step3Completed bool     `json:"step3_completed"`
	Interests      []string `json:"interests"`
	QuestLevel     string   `json:"quest_level"`
	FullName       string   `json:"full_name"`
}

// SettingsDTO is the complete settings document returned to callers. Every
// group is fully populated regardless of how sparse the stored row is.
type SettingsDTO struct {
	UserID           uuid.UUID           `json:"user_id"`
	Notifications    NotificationsDTO    `json:"notifications"`
	Privacy          PrivacyDTO          `json:"privacy"`
	QuestPreferences QuestPreferencesDTO `json:"quest_preferences"`
	Onboarding       OnboardingDTO       `json:"onboarding"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// UpdateNotificationsDTO carries a partial notifications update; nil fields stay unchanged.
type UpdateNotificationsDTO struct {
	QuestReminders   *bool `json:"quest_reminders"`
	DailyDigest      *bool `json:"daily_digest"`
	AchievementAlert *bool `json:"achievement_alert"`
	CommunityUpdates *bool `json:"community_updates"`
}

// UpdatePrivacyDTO carries a partial privacy update; nil fields stay unchanged.
type UpdatePrivacyDTO struct {
	ShareProgress     *bool `json:"share_progress"`
	PublicProfile     *bool `json:"public_profile"`
	ShowOnLeaderboard *bool `json:"show_on_leaderboard"`
}

// UpdateAIPreferencesDTO carries a partial AI preference update.
type UpdateAIPreferencesDTO struct {
	Enabled      *bool   `json:"enabled"`
	Tone         *string `json:"tone"`
	DurationHint *string `json:"duration_hint"`
	LocationHint *string `json:"location_hint"`
}

// UpdateDuplicatePreventionDTO carries a partial duplicate prevention update.
type UpdateDuplicatePreventionDTO struct {
	Enabled             *bool    `json:"enabled"`
	SimilarityThreshold *float64 `json:"similarity_threshold"`
	CheckLastNDays      *int     `json:"check_last_n_days"`
	MaxRetries          *int     `json:"max_retries"`
}

// UpdateQuestPreferencesDTO carries a partial quest preference update.
type UpdateQuestPreferencesDTO struct {
	PreferredCategories *[]string                     `json:"preferred_categories"`
	DefaultDifficulty   *string                       `json:"default_difficulty"`
	AutoGenerateQuests  *bool                         `json:"auto_generate_quests"`
	Paused              *bool                         `json:"paused"`
	AIPreferences       *UpdateAIPreferencesDTO       `json:"ai_preferences"`
	DuplicatePrevention *UpdateDuplicatePreventionDTO `json:"duplicate_prevention"`
}

// OnboardingStepDTO carries the data captured at each onboarding step.
type OnboardingStepDTO struct {
	FullName   *string  `json:"full_name"`
	Interests  []string `json:"interests"`
	QuestLevel *string  `json:"quest_level"`
}
