package quests

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/froliik/froliik-backend/internal/community"
	"github.com/froliik/froliik-backend/internal/progression"
	"github.com/froliik/froliik-backend/internal/settings"
	"github.com/froliik/froliik-backend/internal/users"
	"github.com/froliik/froliik-backend/pkg/config"
	"github.com/froliik/froliik-backend/pkg/db"
	"github.com/froliik/froliik-backend/pkg/db/models"
	"github.com/froliik/froliik-backend/pkg/enums"
	pkgerrors "github.com/froliik/froliik-backend/pkg/errors"
	"github.com/froliik/froliik-backend/pkg/logger"
	"github.com/froliik/froliik-backend/pkg/metrics"
	"github.com/froliik/froliik-backend/pkg/openai"
	"github.com/froliik/froliik-backend/pkg/outbox"
	"github.com/froliik/froliik-backend/pkg/outbox/payloads"
	"github.com/froliik/froliik-backend/pkg/pagination"
)

const questGiverAI = "AI Quest Generator"

// TitleStore remembers recently generated titles for duplicate prevention.
// Satisfied by the redis client; the repository provides the fallback scan.
type TitleStore interface {
	RememberTitle(ctx context.Context, userID, title string, ttl time.Duration) error
	RecentTitles(ctx context.Context, userID string) ([]string, error)
}

// ServiceParams groups dependencies for the quest service. Titles and Texter
// are optional; everything else is required.
type ServiceParams struct {
	DB           *db.Client
	Repo         Repository
	Community    community.Repository
	Stats        progression.StatsRepository
	Achievements progression.AchievementsRepository
	Settings     settings.Service
	Users        *users.Repository
	Outbox       *outbox.Service
	Titles       TitleStore
	Texter       openai.Texter
	Streak       StreakPolicy
	Metrics      *metrics.EngineMetrics
	Logger       *logger.Logger
	Config       config.QuestsConfig
}

// Service exposes the quest lifecycle: generation, manual creation,
// completion with progression, listing and deletion.
type Service interface {
	Generate(ctx context.Context, userID uuid.UUID, override *enums.QuestCategory, force bool) GenerateResult
	GenerateFirstQuest(ctx context.Context, userID uuid.UUID)
	Complete(ctx context.Context, questID, actorID uuid.UUID) (CompletionDTO, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateQuestDTO) (QuestDTO, error)
	List(ctx context.Context, userID uuid.UUID, completed *bool, params pagination.Params) (QuestsPageDTO, error)
	Delete(ctx context.Context, questID, actorID uuid.UUID) error
	Eligibility(ctx context.Context, userID uuid.UUID) (EligibilityStatus, error)
}

type service struct {
	db           *db.Client
	repo         Repository
	community    community.Repository
	stats        progression.StatsRepository
	achievements progression.AchievementsRepository
	settings     settings.Service
	users        *users.Repository
	outbox       *outbox.Service
	titles       TitleStore
	texter       openai.Texter
	streak       StreakPolicy
	metrics      *metrics.EngineMetrics
	logg         *logger.Logger
	cfg          config.QuestsConfig
}

// NewService builds a quest service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "db client is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "quest repo is required")
	}
	if params.Community == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "community repo is required")
	}
	if params.Stats == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stats repo is required")
	}
	if params.Achievements == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "achievements repo is required")
	}
	if params.Settings == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "settings service is required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repo is required")
	}
	if params.Outbox == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "outbox service is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger is required")
	}
	streak := params.Streak
	if streak == nil {
		streak = NewPerCompletionStreak()
	}
	return &service{
		db:           params.DB,
		repo:         params.Repo,
		community:    params.Community,
		stats:        params.Stats,
		achievements: params.Achievements,
		settings:     params.Settings,
		users:        params.Users,
		outbox:       params.Outbox,
		titles:       params.Titles,
		texter:       params.Texter,
		streak:       streak,
		metrics:      params.Metrics,
		logg:         params.Logger,
		cfg:          params.Config,
	}, nil
}

// List returns one page of the user's quests, newest first, optionally
// filtered by completion state.
func (s *service) List(ctx context.Context, userID uuid.UUID, completed *bool, params pagination.Params) (QuestsPageDTO, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return QuestsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, next, err := s.repo.List(ctx, listQuestsParams{
		UserID:    userID,
		Limit:     params.Limit,
		Cursor:    cursor,
		Completed: completed,
	})
	if err != nil {
		return QuestsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list quests")
	}

	page := QuestsPageDTO{Quests: make([]QuestDTO, 0, len(rows))}
	for _, row := range rows {
		page.Quests = append(page.Quests, questFromModel(row))
	}
	if next != nil {
		page.NextCursor = pagination.EncodeCursor(*next)
	}
	return page, nil
}

// Create persists a manually authored quest and announces it on the feed.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateQuestDTO) (QuestDTO, error) {
	category, err := enums.ParseQuestCategory(input.Category)
	if err != nil {
		return QuestDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	difficulty, err := enums.ParseDifficulty(input.Difficulty)
	if err != nil {
		return QuestDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid difficulty")
	}

	quest := models.SideQuest{
		ID:              uuid.New(),
		UserID:          userID,
		Title:           input.Title,
		Description:     input.Description,
		Category:        category,
		DifficultyLevel: difficulty,
		Reward:          input.Reward,
		Location:        input.Location,
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, &quest); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create quest")
		}
		questCategory := quest.Category
		if err := s.community.WithTx(tx).Append(ctx, &models.CommunityUpdate{
			ID:         uuid.New(),
			UserID:     userID,
			Action:     enums.ActionCreated,
			QuestTitle: quest.Title,
			Category:   &questCategory,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append feed entry")
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
				Category:   quest.Category,
				Difficulty: quest.DifficultyLevel,
				Source:     "manual",
			},
		})
	})
	if err != nil {
		return QuestDTO{}, err
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"quest_id": quest.ID.String(), "user_id": userID.String()})
	s.logg.Info(logCtx, "quest created")
	return questFromModel(quest), nil
}

// Delete removes one of the caller's quests. The feed stays untouched;
// downstream consumers learn about it from the outbox event.
func (s *service) Delete(ctx context.Context, questID, actorID uuid.UUID) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		deleted, err := s.repo.WithTx(tx).Delete(ctx, questID, actorID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete quest")
		}
		if !deleted {
			return pkgerrors.New(pkgerrors.CodeNotFound, "quest not found or access denied")
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventQuestDeleted,
			AggregateType: enums.AggregateQuest,
			AggregateID:   questID,
			Actor:         &outbox.ActorRef{UserID: actorID},
			Version:       1,
			Data:          payloads.QuestDeletedEvent{QuestID: questID, UserID: actorID},
		})
	})
}

// Eligibility returns the generation gate plus the counters the UI shows
// alongside it. Missing settings read as not eligible rather than an error.
func (s *service) Eligibility(ctx context.Context, userID uuid.UUID) (EligibilityStatus, error) {
	inputs, err := s.eligibilityInputs(ctx, userID)
	if err != nil {
		return EligibilityStatus{}, err
	}

	completedCount, err := s.repo.CompletedCount(ctx, userID)
	if err != nil {
		return EligibilityStatus{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count completed quests")
	}
	lastQuestAt, err := s.repo.LastQuestAt(ctx, userID)
	if err != nil {
		return EligibilityStatus{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load last quest time")
	}

	return EligibilityStatus{
		CanGenerate:         Decide(inputs),
		OnboardingCompleted: inputs.OnboardingCompleted,
		Paused:              inputs.Paused,
		AutoGenerateQuests:  inputs.AutoGenerateQuests,
		ActiveQuestCount:    inputs.ActiveQuestCount,
		CompletedQuestCount: completedCount,
		LastQuestAt:         lastQuestAt,
	}, nil
}

func (s *service) eligibilityInputs(ctx context.Context, userID uuid.UUID) (EligibilityInputs, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return EligibilityInputs{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	if user == nil {
		return EligibilityInputs{SettingsMissing: true}, nil
	}

	doc, err := s.settings.Get(ctx, userID)
	if err != nil || doc == nil {
		return EligibilityInputs{
			OnboardingCompleted: user.OnboardingCompleted,
			SettingsMissing:     true,
		}, nil
	}

	activeCount, err := s.repo.ActiveCount(ctx, userID)
	if err != nil {
		return EligibilityInputs{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count active quests")
	}

	return EligibilityInputs{
		OnboardingCompleted: user.OnboardingCompleted,
		Paused:              doc.QuestPreferences.Paused,
		AutoGenerateQuests:  doc.QuestPreferences.AutoGenerateQuests,
		ActiveQuestCount:    activeCount,
	}, nil
}
