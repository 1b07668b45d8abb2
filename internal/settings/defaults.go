package settings

// Defaults returns the hardcoded settings every read is merged over. Stored
// rows only carry explicit overrides; anything unset resolves to these values.
func Defaults() SettingsDTO {
	return SettingsDTO{
		Notifications: NotificationsDTO{
			QuestReminders:   true,
			DailyDigest:      false,
			AchievementAlert: true,
			CommunityUpdates: true,
		},
		Privacy: PrivacyDTO{
			ShareProgress:     true,
			PublicProfile:     false,
			ShowOnLeaderboard: true,
		},
		QuestPreferences: QuestPreferencesDTO{
			PreferredCategories: []string{},
			DefaultDifficulty:   "moderate",
			AutoGenerateQuests:  true,
			Paused:              false,
			AIPreferences: AIPreferencesDTO{
				Enabled:      true,
				Tone:         "encouraging",
				DurationHint: "",
				LocationHint: "",
			},
			DuplicatePrevention: DuplicatePreventionDTO{
				Enabled:             true,
				SimilarityThreshold: 0.8,
				CheckLastNDays:      7,
				MaxRetries:          3,
			},
		},
		Onboarding: OnboardingDTO{
			Completed:      false,
			Step1Completed: false,
			Step2Completed: false,
			Step3Completed: false,
			Interests:      []string{},
			QuestLevel:     "",
			FullName:       "",
		},
	}
}
