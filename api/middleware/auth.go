package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/api/responses"
	pkgAuth "github.com/froliik/froliik-backend/pkg/auth"
	"github.com/froliik/froliik-backend/pkg/config"
	pkgerrors "github.com/froliik/froliik-backend/pkg/errors"
	"github.com/froliik/froliik-backend/pkg/logger"
)

// UserResolver maps verified identity-provider claims to a local user id,
// creating the user row on first sight.
type UserResolver interface {
	ResolveUser(ctx context.Context, externalAuthID, email, displayName string) (uuid.UUID, error)
}

// UserResolverFunc adapts a function to the UserResolver interface.
type UserResolverFunc func(ctx context.Context, externalAuthID, email, displayName string) (uuid.UUID, error)

func (f UserResolverFunc) ResolveUser(ctx context.Context, externalAuthID, email, displayName string) (uuid.UUID, error) {
	return f(ctx, externalAuthID, email, displayName)
}

// Auth validates a bearer token, upserts the user projection, and seeds the
// request context with the local user id.
func Auth(cfg config.JWTConfig, resolver UserResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if resolver == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user resolver unavailable"))
				return
			}

			userID, err := resolver.ResolveUser(r.Context(), claims.ExternalAuthID, claims.Email, claims.DisplayName)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if userID == uuid.Nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown user"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserID, userID.String())
			if logg != nil {
				ctx = logg.WithUserID(ctx, userID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
