package quests

import (
	"time"
)

// EligibilityInputs are the facts the gate decides on.
type EligibilityInputs struct {
	OnboardingCompleted bool
	Paused              bool
	AutoGenerateQuests  bool
	ActiveQuestCount    int64
	SettingsMissing     bool
}

// Decide is the pure eligibility predicate. Missing settings fail closed.
func Decide(in EligibilityInputs) bool {
	if in.SettingsMissing {
		return false
	}
	return in.OnboardingCompleted &&
		!in.Paused &&
		in.AutoGenerateQuests &&
		in.ActiveQuestCount == 0
}

// EligibilityStatus is the richer projection surfaced to the UI. Same inputs
// as Decide, no additional logic.
type EligibilityStatus struct {
	CanGenerate         bool       `json:"can_generate"`
	OnboardingCompleted bool       `json:"onboarding_completed"`
	Paused              bool       `json:"paused"`
	AutoGenerateQuests  bool       `json:"auto_generate_quests"`
	ActiveQuestCount    int64      `json:"active_quest_count"`
	CompletedQuestCount int64      `json:"completed_quest_count"`
	LastQuestAt         *time.Time `json:"last_quest_at,omitempty"`
}
