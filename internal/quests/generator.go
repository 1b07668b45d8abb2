package quests

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/froliik/froliik-backend/internal/settings"
	"github.com/froliik/froliik-backend/pkg/db/models"
	"github.com/froliik/froliik-backend/pkg/enums"
	"github.com/froliik/froliik-backend/pkg/openai"
	"github.com/froliik/froliik-backend/pkg/outbox"
	"github.com/froliik/froliik-backend/pkg/outbox/payloads"
)

// Typed rejection reasons. These are contract values surfaced to the client,
// not free-form messages.
const (
	RejectOnboardingIncomplete = "must complete onboarding"
	RejectPaused               = "generation is paused"
	RejectAutoGenerateDisabled = "auto-generation disabled"
)

// generateFallbackCategories is the pool used when the user has no preferred
// categories. Wider than the mapper fallback on purpose.
var generateFallbackCategories = []enums.QuestCategory{
	enums.CategoryMindfulness,
	enums.CategoryCreativity,
	enums.CategoryMovement,
	enums.CategoryLearning,
	enums.CategoryConnection,
}

var firstQuestFallbackCategories = []enums.QuestCategory{
	enums.CategoryMindfulness,
}

// Generate creates a new quest for the user. Failures of any kind are folded
// into the result; this method never returns an error to the caller.
func (s *service) Generate(ctx context.Context, userID uuid.UUID, override *enums.QuestCategory, force bool) GenerateResult {
	start := time.Now()
	defer func() {
		s.metrics.ObserveGenerateLatency(time.Since(start))
	}()

	doc, err := s.settings.Get(ctx, userID)
	if err != nil {
		s.logg.Error(ctx, "load settings for generation", err)
		return s.rejected("settings unavailable")
	}

	if !force {
		if reason := s.gateReason(ctx, userID, doc); reason != "" {
			return s.rejected(reason)
		}
	}

	prefs := doc.QuestPreferences
	category := s.resolveCategory(override, prefs.PreferredCategories, generateFallbackCategories)
	difficulty := resolveDifficulty(prefs.DefaultDifficulty, enums.DifficultyModerate)

	return s.generate(ctx, userID, category, difficulty, prefs, "generated", false)
}

// GenerateFirstQuest runs right after onboarding completes, so the
// eligibility gate is skipped and the defaults are gentler. Satisfies the
// settings package's first-quest hook; failures are logged, never surfaced.
func (s *service) GenerateFirstQuest(ctx context.Context, userID uuid.UUID) {
	doc, err := s.settings.Get(ctx, userID)
	if err != nil {
		s.logg.Error(ctx, "load settings for first quest", err)
		return
	}

	prefs := doc.QuestPreferences
	category := s.resolveCategory(nil, prefs.PreferredCategories, firstQuestFallbackCategories)
	// The merged document always carries a difficulty; only an explicit
	// choice overrides the gentle first-quest default.
	difficulty := enums.DifficultyGentle
	if prefs.DifficultyChosen {
		difficulty = resolveDifficulty(prefs.DefaultDifficulty, enums.DifficultyGentle)
	}

	result := s.generate(ctx, userID, category, difficulty, prefs, "first_quest", true)
	if !result.Success {
		logCtx := s.logg.WithFields(ctx, map[string]any{"user_id": userID.String(), "reason": result.Error})
		s.logg.Warn(logCtx, "first quest generation failed")
	}
}

func (s *service) gateReason(ctx context.Context, userID uuid.UUID, doc *settings.SettingsDTO) string {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.logg.Error(ctx, "load user for generation", err)
		return RejectOnboardingIncomplete
	}
	if user == nil || !user.OnboardingCompleted {
		return RejectOnboardingIncomplete
	}
	if doc.QuestPreferences.Paused {
		return RejectPaused
	}
	if !doc.QuestPreferences.AutoGenerateQuests {
		return RejectAutoGenerateDisabled
	}
	return ""
}

func (s *service) generate(
	ctx context.Context,
	userID uuid.UUID,
	category enums.QuestCategory,
	difficulty enums.Difficulty,
	prefs settings.QuestPreferencesDTO,
	source string,
	firstQuest bool,
) GenerateResult {
	title, description := s.questText(ctx, userID, category, difficulty, prefs)

	questGiver := questGiverAI
	quest := models.SideQuest{
		ID:              uuid.New(),
		UserID:          userID,
		Title:           title,
		Description:     description,
		Category:        category,
		DifficultyLevel: difficulty,
		QuestGiver:      &questGiver,
	}

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, &quest); err != nil {
			return err
		}
		questCategory := category
		if err := s.community.WithTx(tx).Append(ctx, &models.CommunityUpdate{
			ID:         uuid.New(),
			UserID:     userID,
			Action:     enums.ActionCreated,
			QuestTitle: quest.Title,
			Category:   &questCategory,
		}); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventQuestCreated,
			AggregateType: enums.AggregateQuest,
			AggregateID:   quest.ID,
			Actor:         &outbox.ActorRef{UserID: userID},
			Version:       1,
			Data: payloads.QuestCreatedEvent{
				QuestID:    quest.ID,
				UserID:     userID,
				Title:      quest.Title,
				Category:   category,
				Difficulty: difficulty,
				Source:     source,
				FirstQuest: firstQuest,
			},
		})
	})
	if err != nil {
		s.logg.Error(ctx, "persist generated quest", err)
		return s.rejected("could not create quest")
	}

	s.rememberTitle(ctx, userID, quest.Title)
	s.metrics.IncGenerated(string(category), source)

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"quest_id": quest.ID.String(),
		"user_id":  userID.String(),
		"category": string(category),
		"source":   source,
	})
	s.logg.Info(logCtx, "quest generated")

	questID := quest.ID
	return GenerateResult{
		Success:    true,
		QuestID:    &questID,
		Category:   category,
		Difficulty: difficulty,
	}
}

func (s *service) rejected(reason string) GenerateResult {
	s.metrics.IncGenerateRejected(reason)
	return GenerateResult{Success: false, Error: reason}
}

// resolveCategory applies override > preferred > fallback precedence.
func (s *service) resolveCategory(override *enums.QuestCategory, preferred []string, fallback []enums.QuestCategory) enums.QuestCategory {
	if override != nil {
		return *override
	}
	pool := make([]enums.QuestCategory, 0, len(preferred))
	for _, raw := range preferred {
		if category, err := enums.ParseQuestCategory(raw); err == nil {
			pool = append(pool, category)
		}
	}
	if len(pool) == 0 {
		pool = fallback
	}
	return pool[rand.Intn(len(pool))]
}

func resolveDifficulty(raw string, fallback enums.Difficulty) enums.Difficulty {
	if difficulty, err := enums.ParseDifficulty(raw); err == nil {
		return difficulty
	}
	return fallback
}

// questText produces the title/description pair. The AI path runs first when
// configured and enabled; the template tables are the reliability floor.
func (s *service) questText(
	ctx context.Context,
	userID uuid.UUID,
	category enums.QuestCategory,
	difficulty enums.Difficulty,
	prefs settings.QuestPreferencesDTO,
) (string, string) {
	recent := s.recentTitles(ctx, userID, prefs.DuplicatePrevention)

	if s.texter != nil && prefs.AIPreferences.Enabled {
		text, err := s.texter.GenerateQuestText(ctx, openai.QuestPrompt{
			Category:     category,
			Difficulty:   difficulty,
			Tone:         prefs.AIPreferences.Tone,
			DurationHint: prefs.AIPreferences.DurationHint,
			LocationHint: prefs.AIPreferences.LocationHint,
			RecentTitles: recent,
		})
		if err == nil && text != nil && text.Title != "" && text.Description != "" {
			return text.Title, text.Description
		}
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "user_id", userID.String()), "ai quest text failed, using templates")
		}
	}

	title := templateTitle(category)
	if prefs.DuplicatePrevention.Enabled {
		title = s.avoidRecentTitle(category, title, recent, prefs.DuplicatePrevention.MaxRetries)
	}
	return title, templateDescription(category, difficulty)
}

// avoidRecentTitle redraws up to maxRetries times while the pick collides
// with a recently used title. A collision after the last retry stands.
func (s *service) avoidRecentTitle(category enums.QuestCategory, title string, recent []string, maxRetries int) string {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	seen := make(map[string]struct{}, len(recent))
	for _, t := range recent {
		seen[t] = struct{}{}
	}
	for attempt := 0; attempt < maxRetries; attempt++ {
		if _, dup := seen[title]; !dup {
			return title
		}
		title = templateTitle(category)
	}
	return title
}

// recentTitles prefers the redis set and falls back to a DB scan when redis
// is missing or unavailable.
func (s *service) recentTitles(ctx context.Context, userID uuid.UUID, prevention settings.DuplicatePreventionDTO) []string {
	if !prevention.Enabled {
		return nil
	}
	if s.titles != nil {
		titles, err := s.titles.RecentTitles(ctx, userID.String())
		if err == nil {
			return titles
		}
		s.logg.Warn(ctx, "recent titles cache unavailable, falling back to database")
	}
	titles, err := s.repo.RecentTitles(ctx, userID, 25)
	if err != nil {
		s.logg.Error(ctx, "recent titles fallback scan", err)
		return nil
	}
	return titles
}

func (s *service) rememberTitle(ctx context.Context, userID uuid.UUID, title string) {
	if s.titles == nil {
		return
	}
	ttlDays := s.cfg.RecentTitleTTLDays
	if ttlDays <= 0 {
		ttlDays = 7
	}
	ttl := time.Duration(ttlDays) * 24 * time.Hour
	if err := s.titles.RememberTitle(ctx, userID.String(), title, ttl); err != nil {
		s.logg.Warn(ctx, "remember generated title")
	}
}
