package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/froliik/froliik-backend/pkg/db"
	"github.com/froliik/froliik-backend/pkg/db/models"
	"github.com/froliik/froliik-backend/pkg/enums"
	pkgerrors "github.com/froliik/froliik-backend/pkg/errors"
	"github.com/froliik/froliik-backend/pkg/logger"
	"github.com/froliik/froliik-backend/pkg/outbox"
	"github.com/froliik/froliik-backend/pkg/outbox/payloads"
)

// ServiceParams groups dependencies for the users service.
type ServiceParams struct {
	DB     *db.Client
	Repo   *Repository
	Outbox *outbox.Service
	Logger *logger.Logger
}

// Service exposes identity and account lifecycle operations.
type Service interface {
	EnsureUser(ctx context.Context, dto EnsureUserDTO) (*UserDTO, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	db     *db.Client
	repo   *Repository
	outbox *outbox.Service
	logg   *logger.Logger
}

// NewService builds a users service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "db client is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repo is required")
	}
	if params.Outbox == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "outbox service is required")
	}
	return &service{
		db:     params.DB,
		repo:   params.Repo,
		outbox: params.Outbox,
		logg:   params.Logger,
	}, nil
}

// EnsureUser upserts the user row from verified token claims and returns the profile.
func (s *service) EnsureUser(ctx context.Context, dto EnsureUserDTO) (*UserDTO, error) {
	externalAuthID := strings.TrimSpace(dto.ExternalAuthID)
	if externalAuthID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "external auth id is required")
	}
	email := strings.TrimSpace(strings.ToLower(dto.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	displayName := strings.TrimSpace(dto.DisplayName)
	if displayName == "" {
		displayName = email
		if at := strings.Index(email, "@"); at > 0 {
			displayName = email[:at]
		}
	}

	user := &models.User{
		ID:             uuid.New(),
		ExternalAuthID: externalAuthID,
		Email:          email,
		DisplayName:    displayName,
	}
	if err := s.repo.Upsert(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert user")
	}

	// Upsert on conflict does not populate generated columns; reload.
	stored, err := s.repo.FindByExternalAuthID(ctx, externalAuthID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModel(stored), nil
}

// GetProfile returns the stored profile for the user.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModel(user), nil
}

// DeleteAccount removes the user and all owned records in one transaction and
// queues the account.deleted event for downstream purges.
func (s *service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	deletedAt := time.Now().UTC()
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.DeleteCascadeTx(tx, userID); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventAccountDeleted,
			AggregateType: enums.AggregateUser,
			AggregateID:   userID,
			Actor:         &outbox.ActorRef{UserID: userID},
			Data: payloads.AccountDeletedEvent{
				UserID:    userID,
				DeletedAt: deletedAt,
			},
			Version: 1,
		})
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete account")
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"user_id": userID.String()})
		s.logg.Info(logCtx, "account deleted")
	}
	return nil
}
