package quests

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/froliik/froliik-backend/pkg/db/models"
	"github.com/froliik/froliik-backend/pkg/enums"
	pkgerrors "github.com/froliik/froliik-backend/pkg/errors"
	"github.com/froliik/froliik-backend/pkg/outbox"
	"github.com/froliik/froliik-backend/pkg/outbox/payloads"
)

const (
	experiencePerLevel = 100

	firstQuestAchievementName = "First Quest"
	firstQuestAchievementDesc = "Completed your very first side quest."
	firstQuestAchievementPts  = 10

	streakMasterAchievementName = "Streak Master"
	streakMasterAchievementDesc = "Kept a quest streak going seven completions strong."
	streakMasterAchievementPts  = 50
)

func levelForExperience(experience int) int {
	if experience < 0 {
		experience = 0
	}
	return experience/experiencePerLevel + 1
}

// Complete marks a quest done and applies the full progression outcome:
// stats counters, streak, level, achievements, feed entries and outbox
// events. Everything happens in one transaction; a second completion of the
// same quest fails with a state conflict instead of double-awarding.
func (s *service) Complete(ctx context.Context, questID, actorID uuid.UUID) (CompletionDTO, error) {
	var outcome CompletionDTO

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		statsRepo := s.stats.WithTx(tx)
		achievementsRepo := s.achievements.WithTx(tx)
		communityRepo := s.community.WithTx(tx)

		quest, err := repo.FindByIDForUser(ctx, questID, actorID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load quest")
		}
		if quest == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "quest not found or access denied")
		}
		if quest.Completed {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "quest already completed")
		}

		now := time.Now().UTC()
		updated, err := repo.MarkCompleted(ctx, quest.ID, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark quest completed")
		}
		if !updated {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "quest already completed")
		}
		quest.Completed = true
		quest.UpdatedAt = now

		stats, err := statsRepo.FindByUserID(ctx, actorID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user stats")
		}
		created := stats == nil
		if created {
			stats = &models.UserStats{ID: uuid.New(), UserID: actorID, Level: 1}
		}

		points := s.cfg.CompletionPoints
		if points <= 0 {
			points = 10
		}
		previousLevel := stats.Level
		lastActive := stats.LastActive

		stats.TotalQuestsCompleted++
		stats.TotalPoints += points
		stats.Experience += points
		stats.Level = levelForExperience(stats.Experience)
		stats.CurrentStreak = s.streak.Next(stats.CurrentStreak, lastActive, now)
		if stats.CurrentStreak > stats.LongestStreak {
			stats.LongestStreak = stats.CurrentStreak
		}
		stats.LastActive = now

		leveledUp := stats.Level > previousLevel

		// Completed feed entry carries the base award.
		questCategory := quest.Category
		completionPoints := points
		if err := communityRepo.Append(ctx, &models.CommunityUpdate{
			ID:         uuid.New(),
			UserID:     actorID,
			Action:     enums.ActionCompleted,
			QuestTitle: quest.Title,
			Category:   &questCategory,
			Points:     &completionPoints,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append completion feed entry")
		}

		var unlocked []models.Achievement
		if stats.TotalQuestsCompleted == 1 {
			unlocked = append(unlocked, models.Achievement{
				ID:          uuid.New(),
				UserID:      actorID,
				Name:        firstQuestAchievementName,
				Description: firstQuestAchievementDesc,
				Rarity:      enums.RarityCommon,
				Points:      firstQuestAchievementPts,
				UnlockedAt:  now,
			})
		}
		streakBonusAt := s.cfg.StreakBonusAt
		if streakBonusAt <= 0 {
			streakBonusAt = 7
		}
		if stats.CurrentStreak == streakBonusAt {
			unlocked = append(unlocked, models.Achievement{
				ID:          uuid.New(),
				UserID:      actorID,
				Name:        streakMasterAchievementName,
				Description: streakMasterAchievementDesc,
				Rarity:      enums.RarityRare,
				Points:      streakMasterAchievementPts,
				UnlockedAt:  now,
			})
			stats.TotalPoints += streakMasterAchievementPts
		}

		for i := range unlocked {
			achievement := unlocked[i]
			if err := achievementsRepo.Insert(ctx, &achievement); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert achievement")
			}
			stats.AchievementsUnlocked++

			achievementPoints := achievement.Points
			if err := communityRepo.Append(ctx, &models.CommunityUpdate{
				ID:         uuid.New(),
				UserID:     actorID,
				Action:     enums.ActionAchievement,
				QuestTitle: achievement.Name,
				Points:     &achievementPoints,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append achievement feed entry")
			}

			if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventAchievementUnlocked,
				AggregateType: enums.AggregateAchievement,
				AggregateID:   achievement.ID,
				Actor:         &outbox.ActorRef{UserID: actorID},
				Version:       1,
				Data: payloads.AchievementUnlockedEvent{
					AchievementID: achievement.ID,
					UserID:        actorID,
					Name:          achievement.Name,
					Rarity:        achievement.Rarity,
					Points:        achievement.Points,
					UnlockedAt:    achievement.UnlockedAt,
				},
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit achievement event")
			}
		}

		if leveledUp {
			levelPoints := stats.Level * 10
			newLevel := stats.Level
			if err := communityRepo.Append(ctx, &models.CommunityUpdate{
				ID:         uuid.New(),
				UserID:     actorID,
				Action:     enums.ActionLevelUp,
				QuestTitle: quest.Title,
				Points:     &levelPoints,
				Level:      &newLevel,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append level-up feed entry")
			}
			if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventLevelUp,
				AggregateType: enums.AggregateUserStats,
				AggregateID:   stats.ID,
				Actor:         &outbox.ActorRef{UserID: actorID},
				Version:       1,
				Data: payloads.LevelUpEvent{
					UserID:        actorID,
					PreviousLevel: previousLevel,
					Level:         stats.Level,
					Experience:    stats.Experience,
				},
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit level-up event")
			}
		}

		if created {
			err = statsRepo.Create(ctx, stats)
		} else {
			err = statsRepo.Save(ctx, stats)
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist user stats")
		}

		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventQuestCompleted,
			AggregateType: enums.AggregateQuest,
			AggregateID:   quest.ID,
			Actor:         &outbox.ActorRef{UserID: actorID},
			Version:       1,
			Data: payloads.QuestCompletedEvent{
				QuestID:       quest.ID,
				UserID:        actorID,
				Title:         quest.Title,
				Category:      quest.Category,
				PointsAwarded: points,
				TotalPoints:   stats.TotalPoints,
				Level:         stats.Level,
				LeveledUp:     leveledUp,
				CurrentStreak: stats.CurrentStreak,
				CompletedAt:   now,
			},
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit completion event")
		}

		outcome = CompletionDTO{
			QuestID:        quest.ID,
			PointsAwarded:  points,
			TotalPoints:    stats.TotalPoints,
			Experience:     stats.Experience,
			Level:          stats.Level,
			LeveledUp:      leveledUp,
			CurrentStreak:  stats.CurrentStreak,
			LongestStreak:  stats.LongestStreak,
			CompletedQuest: questFromModel(*quest),
		}
		for _, achievement := range unlocked {
			outcome.Achievements = append(outcome.Achievements, UnlockedAchievementDTO{
				ID:     achievement.ID,
				Name:   achievement.Name,
				Rarity: achievement.Rarity,
				Points: achievement.Points,
			})
		}
		return nil
	})
	if err != nil {
		return CompletionDTO{}, err
	}

	s.metrics.IncCompleted(string(outcome.CompletedQuest.Category))
	for _, achievement := range outcome.Achievements {
		s.metrics.IncAchievementUnlocked(string(achievement.Rarity))
	}
	if outcome.LeveledUp {
		s.metrics.IncLevelUp()
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"quest_id":       outcome.QuestID.String(),
		"user_id":        actorID.String(),
		"total_points":   outcome.TotalPoints,
		"level":          outcome.Level,
		"current_streak": outcome.CurrentStreak,
	})
	s.logg.Info(logCtx, "quest completed")

	return outcome, nil
}
