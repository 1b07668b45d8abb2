package progression

import (
	"context"

	"github.com/google/uuid"

	pkgerrors "github.com/froliik/froliik-backend/pkg/errors"
)

// ServiceParams groups dependencies for the progression service.
type ServiceParams struct {
	StatsRepo        StatsRepository
	AchievementsRepo AchievementsRepository
}

// Service exposes read APIs for the stats and achievements screens.
type Service interface {
	GetStats(ctx context.Context, userID uuid.UUID) (StatsDTO, error)
	ListAchievements(ctx context.Context, userID uuid.UUID) ([]AchievementDTO, error)
}

type service struct {
	statsRepo        StatsRepository
	achievementsRepo AchievementsRepository
}

// NewService builds a progression service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.StatsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stats repo is required")
	}
	if params.AchievementsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "achievements repo is required")
	}
	return &service{
		statsRepo:        params.StatsRepo,
		achievementsRepo: params.AchievementsRepo,
	}, nil
}

// GetStats returns the user's progression counters, or the zero projection
// when the user has not completed a quest yet.
func (s *service) GetStats(ctx context.Context, userID uuid.UUID) (StatsDTO, error) {
	stats, err := s.statsRepo.FindByUserID(ctx, userID)
	if err != nil {
		return StatsDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user stats")
	}
	return statsFromModel(userID, stats), nil
}

// ListAchievements returns the user's unlock records, newest first.
func (s *service) ListAchievements(ctx context.Context, userID uuid.UUID) ([]AchievementDTO, error) {
	records, err := s.achievementsRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list achievements")
	}
	out := make([]AchievementDTO, 0, len(records))
	for _, record := range records {
		out = append(out, achievementFromModel(record))
	}
	return out, nil
}
