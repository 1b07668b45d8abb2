package controllers

import (
	"net/http"

	"github.com/froliik/froliik-backend/api/responses"
	"github.com/froliik/froliik-backend/internal/progression"
	pkgerrors "github.com/froliik/froliik-backend/pkg/errors"
	"github.com/froliik/froliik-backend/pkg/logger"
)

// GetStats returns the caller's points, level, and streak projection.
func GetStats(svc progression.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "progression service unavailable"))
			return
		}

		userID, err := authedUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		stats, err := svc.GetStats(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// ListAchievements returns the caller's unlocked achievements, newest first.
func ListAchievements(svc progression.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "progression service unavailable"))
			return
		}

		userID, err := authedUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		achievements, err := svc.ListAchievements(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, achievements)
	}
}
