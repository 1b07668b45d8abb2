package settings

import (
	"github.com/froliik/froliik-backend/pkg/db/models"
)

// merged overlays the stored row's explicit values on top of Defaults so
// callers always receive a fully-populated document.
func merged(row *models.UserSettings) SettingsDTO {
	out := Defaults()
	if row == nil {
		return out
	}
	out.UserID = row.UserID
	out.UpdatedAt = row.UpdatedAt

	mergeNotifications(&out.Notifications, row.Notifications)
	mergePrivacy(&out.Privacy, row.Privacy)
	mergeQuestPreferences(&out.QuestPreferences, row.QuestPreferences)
	mergeOnboarding(&out.Onboarding, row.Onboarding)
	return out
}

func mergeNotifications(dst *NotificationsDTO, stored models.NotificationToggles) {
	applyBool(&dst.QuestReminders, stored.QuestReminders)
	applyBool(&dst.DailyDigest, stored.DailyDigest)
	applyBool(&dst.AchievementAlert, stored.AchievementAlert)
	applyBool(&dst.CommunityUpdates, stored.CommunityUpdates)
}

func mergePrivacy(dst *PrivacyDTO, stored models.PrivacyToggles) {
	applyBool(&dst.ShareProgress, stored.ShareProgress)
	applyBool(&dst.PublicProfile, stored.PublicProfile)
	applyBool(&dst.ShowOnLeaderboard, stored.ShowOnLeaderboard)
}

func mergeQuestPreferences(dst *QuestPreferencesDTO, stored models.QuestPreferenceSettings) {
	if stored.PreferredCategories != nil {
		dst.PreferredCategories = uniqueStrings(stored.PreferredCategories)
	}
	applyString(&dst.DefaultDifficulty, stored.DefaultDifficulty)
	dst.DifficultyChosen = stored.DefaultDifficulty != nil
	applyBool(&dst.AutoGenerateQuests, stored.AutoGenerateQuests)
	applyBool(&dst.Paused, stored.Paused)

	applyBool(&dst.AIPreferences.Enabled, stored.AIPreferences.Enabled)
	applyString(&dst.AIPreferences.Tone, stored.AIPreferences.Tone)
	applyString(&dst.AIPreferences.DurationHint, stored.AIPreferences.DurationHint)
	applyString(&dst.AIPreferences.LocationHint, stored.AIPreferences.LocationHint)

	applyBool(&dst.DuplicatePrevention.Enabled, stored.DuplicatePrevention.Enabled)
	applyFloat(&dst.DuplicatePrevention.SimilarityThreshold, stored.DuplicatePrevention.SimilarityThreshold)
	applyInt(&dst.DuplicatePrevention.CheckLastNDays, stored.DuplicatePrevention.CheckLastNDays)
	applyInt(&dst.DuplicatePrevention.MaxRetries, stored.DuplicatePrevention.MaxRetries)
}

func mergeOnboarding(dst *OnboardingDTO, stored models.OnboardingProgress) {
	applyBool(&dst.Completed, stored.Completed)
	applyBool(&dst.Step1Completed, stored.Step1Completed)
	applyBool(&dst.Step2Completed, stored.Step2Completed)
	applyBool(&dst.Step3Completed, stored.Step3Completed)
	if stored.Interests != nil {
		dst.Interests = uniqueStrings(stored.Interests)
	}
	applyString(&dst.QuestLevel, stored.QuestLevel)
	applyString(&dst.FullName, stored.FullName)
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func applyInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func applyFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
