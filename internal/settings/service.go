package settings

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/pkg/db/models"
	"github.com/froliik/froliik-backend/pkg/enums"
	pkgerrors "github.com/froliik/froliik-backend/pkg/errors"
	"github.com/froliik/froliik-backend/pkg/logger"
)

// OnboardingFlagger flips the denormalized onboarding flag on the user row.
type OnboardingFlagger interface {
	SetOnboardingCompleted(ctx context.Context, userID uuid.UUID, completed bool) error
}

// FirstQuestStarter kicks off the first-quest generation path after onboarding
// completes. Generation failures are logged, never surfaced to the caller.
type FirstQuestStarter interface {
	GenerateFirstQuest(ctx context.Context, userID uuid.UUID)
}

// CategoryMapper converts onboarding interest labels into quest category
// preference values.
type CategoryMapper func(interests []string) []enums.QuestCategory

// DifficultyMapper converts the onboarding quest-level answer into a default
// quest difficulty.
type DifficultyMapper func(level string) enums.Difficulty

// ServiceParams groups dependencies for the settings service.
type ServiceParams struct {
	Repo       *Repository
	UserFlags  OnboardingFlagger
	FirstQuest FirstQuestStarter
	Categories CategoryMapper
	Difficulty DifficultyMapper
	Logger     *logger.Logger
}

// Service exposes the settings document and onboarding flow.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*SettingsDTO, error)
	UpdateNotifications(ctx context.Context, userID uuid.UUID, dto UpdateNotificationsDTO) (*SettingsDTO, error)
	UpdatePrivacy(ctx context.Context, userID uuid.UUID, dto UpdatePrivacyDTO) (*SettingsDTO, error)
	UpdateQuestPreferences(ctx context.Context, userID uuid.UUID, dto UpdateQuestPreferencesDTO) (*SettingsDTO, error)
	RecordOnboardingStep(ctx context.Context, userID uuid.UUID, step int, dto OnboardingStepDTO) (*SettingsDTO, error)
	CompleteOnboarding(ctx context.Context, userID uuid.UUID) (*SettingsDTO, error)
}

type service struct {
	repo          *Repository
	userFlags     OnboardingFlagger
	firstQuest    FirstQuestStarter
	mapCategories CategoryMapper
	mapDifficulty DifficultyMapper
	logg          *logger.Logger
}

// NewService builds a settings service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "settings repo is required")
	}
	if params.UserFlags == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user flag writer is required")
	}
	return &service{
		repo:          params.Repo,
		userFlags:     params.UserFlags,
		firstQuest:    params.FirstQuest,
		mapCategories: params.Categories,
		mapDifficulty: params.Difficulty,
		logg:          params.Logger,
	}, nil
}

// Get returns the merged settings document, lazily creating the stored row.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*SettingsDTO, error) {
	row, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := merged(row)
	return &out, nil
}

func (s *service) UpdateNotifications(ctx context.Context, userID uuid.UUID, dto UpdateNotificationsDTO) (*SettingsDTO, error) {
	row, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if dto.QuestReminders != nil {
		row.Notifications.QuestReminders = dto.QuestReminders
	}
	if dto.DailyDigest != nil {
		row.Notifications.DailyDigest = dto.DailyDigest
	}
	if dto.AchievementAlert != nil {
		row.Notifications.AchievementAlert = dto.AchievementAlert
	}
	if dto.CommunityUpdates != nil {
		row.Notifications.CommunityUpdates = dto.CommunityUpdates
	}

	return s.save(ctx, row)
}

func (s *service) UpdatePrivacy(ctx context.Context, userID uuid.UUID, dto UpdatePrivacyDTO) (*SettingsDTO, error) {
	row, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if dto.ShareProgress != nil {
		row.Privacy.ShareProgress = dto.ShareProgress
	}
	if dto.PublicProfile != nil {
		row.Privacy.PublicProfile = dto.PublicProfile
	}
	if dto.ShowOnLeaderboard != nil {
		row.Privacy.ShowOnLeaderboard = dto.ShowOnLeaderboard
	}

	return s.save(ctx, row)
}

func (s *service) UpdateQuestPreferences(ctx context.Context, userID uuid.UUID, dto UpdateQuestPreferencesDTO) (*SettingsDTO, error) {
	if dto.DefaultDifficulty != nil {
		if _, err := enums.ParseDifficulty(*dto.DefaultDifficulty); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid default difficulty")
		}
	}

	row, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if dto.PreferredCategories != nil {
		row.QuestPreferences.PreferredCategories = uniqueStrings(*dto.PreferredCategories)
	}
	if dto.DefaultDifficulty != nil {
		row.QuestPreferences.DefaultDifficulty = dto.DefaultDifficulty
	}
	if dto.AutoGenerateQuests != nil {
		row.QuestPreferences.AutoGenerateQuests = dto.AutoGenerateQuests
	}
	if dto.Paused != nil {
		row.QuestPreferences.Paused = dto.Paused
	}
	if ai := dto.AIPreferences; ai != nil {
		if ai.Enabled != nil {
			row.QuestPreferences.AIPreferences.Enabled = ai.Enabled
		}
		if ai.Tone != nil {
			row.QuestPreferences.AIPreferences.Tone = ai.Tone
		}
		if ai.DurationHint != nil {
			row.QuestPreferences.AIPreferences.DurationHint = ai.DurationHint
		}
		if ai.LocationHint != nil {
			row.QuestPreferences.AIPreferences.LocationHint = ai.LocationHint
		}
	}
	if dp := dto.DuplicatePrevention; dp != nil {
		if dp.Enabled != nil {
			row.QuestPreferences.DuplicatePrevention.Enabled = dp.Enabled
		}
		if dp.SimilarityThreshold != nil {
			row.QuestPreferences.DuplicatePrevention.SimilarityThreshold = dp.SimilarityThreshold
		}
		if dp.CheckLastNDays != nil {
			row.QuestPreferences.DuplicatePrevention.CheckLastNDays = dp.CheckLastNDays
		}
		if dp.MaxRetries != nil {
			row.QuestPreferences.DuplicatePrevention.MaxRetries = dp.MaxRetries
		}
	}

	return s.save(ctx, row)
}

// RecordOnboardingStep stores the data captured at one of the three onboarding steps.
func (s *service) RecordOnboardingStep(ctx context.Context, userID uuid.UUID, step int, dto OnboardingStepDTO) (*SettingsDTO, error) {
	if step < 1 || step > 3 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "onboarding step must be 1, 2 or 3")
	}

	row, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	done := true
	switch step {
	case 1:
		if dto.FullName != nil {
			name := strings.TrimSpace(*dto.FullName)
			row.Onboarding.FullName = &name
		}
		row.Onboarding.Step1Completed = &done
	case 2:
		if dto.Interests != nil {
			row.Onboarding.Interests = uniqueStrings(dto.Interests)
			// interests seed the initial quest category preferences
			row.QuestPreferences.PreferredCategories = s.preferredCategories(dto.Interests)
		}
		row.Onboarding.Step2Completed = &done
	case 3:
		if dto.QuestLevel != nil {
			level := strings.TrimSpace(*dto.QuestLevel)
			row.Onboarding.QuestLevel = &level
			if s.mapDifficulty != nil {
				difficulty := string(s.mapDifficulty(level))
				row.QuestPreferences.DefaultDifficulty = &difficulty
			}
		}
		row.Onboarding.Step3Completed = &done
	}

	return s.save(ctx, row)
}

// CompleteOnboarding marks the flow finished, flips the user flag, and kicks
// off first-quest generation.
func (s *service) CompleteOnboarding(ctx context.Context, userID uuid.UUID) (*SettingsDTO, error) {
	row, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	done := true
	row.Onboarding.Completed = &done

	out, err := s.save(ctx, row)
	if err != nil {
		return nil, err
	}

	if err := s.userFlags.SetOnboardingCompleted(ctx, userID, true); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set onboarding flag")
	}

	if s.firstQuest != nil {
		s.firstQuest.GenerateFirstQuest(ctx, userID)
	}

	return out, nil
}

// preferredCategories derives the stored category preferences from the
// onboarding interests. Without a mapper the raw labels are kept as-is.
func (s *service) preferredCategories(interests []string) []string {
	if s.mapCategories == nil {
		return uniqueStrings(interests)
	}
	categories := s.mapCategories(interests)
	out := make([]string, 0, len(categories))
	for _, category := range categories {
		out = append(out, string(category))
	}
	return out
}

func (s *service) loadOrCreate(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	row, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}
	if row != nil {
		return row, nil
	}

	row = &models.UserSettings{ID: uuid.New(), UserID: userID}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create settings")
	}
	return row, nil
}

func (s *service) save(ctx context.Context, row *models.UserSettings) (*SettingsDTO, error) {
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save settings")
	}
	out := merged(row)
	return &out, nil
}
