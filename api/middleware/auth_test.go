package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/pkg/auth"
	"github.com/froliik/froliik-backend/pkg/config"
	pkgerrors "github.com/froliik/froliik-backend/pkg/errors"
)

func staticResolver(id uuid.UUID) UserResolver {
	return UserResolverFunc(func(ctx context.Context, externalAuthID, email, displayName string) (uuid.UUID, error) {
		return id, nil
	})
}

func TestAuthRejectsMissingToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 10}
	handler := Auth(cfg, staticResolver(uuid.New()), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 10}
	handler := Auth(cfg, staticResolver(uuid.New()), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSeedsUserContext(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
	token := mintTestToken(t, cfg, "auth0|quester", "quester@froliik.com")

	userID := uuid.New()
	var resolvedExternal, resolvedEmail string
	resolver := UserResolverFunc(func(ctx context.Context, externalAuthID, email, displayName string) (uuid.UUID, error) {
		resolvedExternal = externalAuthID
		resolvedEmail = email
		return userID, nil
	})

	var captured string
	handler := Auth(cfg, resolver, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured != userID.String() {
		t.Fatalf("expected user %s in context, got %q", userID, captured)
	}
	if resolvedExternal != "auth0|quester" {
		t.Fatalf("resolver saw external id %q", resolvedExternal)
	}
	if resolvedEmail != "quester@froliik.com" {
		t.Fatalf("resolver saw email %q", resolvedEmail)
	}
}

func TestAuthSurfacesResolverError(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
	token := mintTestToken(t, cfg, "auth0|quester", "quester@froliik.com")

	resolver := UserResolverFunc(func(ctx context.Context, externalAuthID, email, displayName string) (uuid.UUID, error) {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeDependency, "user store down")
	})

	handler := Auth(cfg, resolver, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatal("expected error status when resolver fails")
	}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, externalAuthID, email string) string {
	t.Helper()
	token, err := auth.MintAccessToken(cfg, time.Now(), auth.AccessTokenPayload{
		ExternalAuthID: externalAuthID,
		Email:          email,
		DisplayName:    "Quester",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}
