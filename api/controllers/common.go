package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/api/middleware"
	pkgerrors "github.com/froliik/froliik-backend/pkg/errors"
)

func authedUser(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}
