package enums

// NotificationType maps to the notification_type enum in Postgres.
type NotificationType string

const (
	NotificationQuestCreated        NotificationType = "quest_created"
	NotificationQuestCompleted      NotificationType = "quest_completed"
	NotificationAchievementUnlocked NotificationType = "achievement_unlocked"
	NotificationLevelUp             NotificationType = "level_up"
)

// IsValid reports whether the value matches the canonical notification_type enum.
func (n NotificationType) IsValid() bool {
	switch n {
	case NotificationQuestCreated, NotificationQuestCompleted,
		NotificationAchievementUnlocked, NotificationLevelUp:
		return true
	}
	return false
}
