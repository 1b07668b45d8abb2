package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/froliik/froliik-backend/api/middleware"
	"github.com/froliik/froliik-backend/internal/progression"
	"github.com/froliik/froliik-backend/internal/quests"
	pkgAuth "github.com/froliik/froliik-backend/pkg/auth"
	"github.com/froliik/froliik-backend/pkg/config"
	"github.com/froliik/froliik-backend/pkg/enums"
	"github.com/froliik/froliik-backend/pkg/pagination"
)

type fakeQuestsService struct {
	listPage quests.QuestsPageDTO
}

func (f *fakeQuestsService) Generate(ctx context.Context, userID uuid.UUID, override *enums.QuestCategory, force bool) quests.GenerateResult {
	return quests.GenerateResult{Success: true}
}

func (f *fakeQuestsService) GenerateFirstQuest(ctx context.Context, userID uuid.UUID) {}

func (f *fakeQuestsService) Complete(ctx context.Context, questID, actorID uuid.UUID) (quests.CompletionDTO, error) {
	return quests.CompletionDTO{}, nil
}

func (f *fakeQuestsService) Create(ctx context.Context, userID uuid.UUID, input quests.CreateQuestDTO) (quests.QuestDTO, error) {
	return quests.QuestDTO{}, nil
}

func (f *fakeQuestsService) List(ctx context.Context, userID uuid.UUID, completed *bool, params pagination.Params) (quests.QuestsPageDTO, error) {
	return f.listPage, nil
}

func (f *fakeQuestsService) Delete(ctx context.Context, questID, actorID uuid.UUID) error {
	return nil
}

func (f *fakeQuestsService) Eligibility(ctx context.Context, userID uuid.UUID) (quests.EligibilityStatus, error) {
	return quests.EligibilityStatus{CanGenerate: true, OnboardingCompleted: true, AutoGenerateQuests: true}, nil
}

type fakeProgressionService struct{}

func (f *fakeProgressionService) GetStats(ctx context.Context, userID uuid.UUID) (progression.StatsDTO, error) {
	return progression.StatsDTO{UserID: userID, Level: 3, TotalPoints: 240}, nil
}

func (f *fakeProgressionService) ListAchievements(ctx context.Context, userID uuid.UUID) ([]progression.AchievementDTO, error) {
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{Secret: "router-test-secret", Issuer: "froliik-test", ExpirationMinutes: 30},
	}
}

func testRouter(t *testing.T, svcs Services) http.Handler {
	t.Helper()
	resolver := middleware.UserResolverFunc(func(ctx context.Context, externalAuthID, email, displayName string) (uuid.UUID, error) {
		return uuid.New(), nil
	})
	return NewRouter(testConfig(), nil, nil, nil, resolver, nil, svcs)
}

func bearerToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		ExternalAuthID: "auth0|router-test",
		Email:          "router@froliik.com",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := testRouter(t, Services{})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Froliik-Env") != "test" {
		t.Fatalf("expected env header, got %q", resp.Header().Get("X-Froliik-Env"))
	}
}

func TestPublicPingNeedsNoAuth(t *testing.T) {
	router := testRouter(t, Services{})

	req := httptest.NewRequest(http.MethodGet, "/api/public/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestQuestRoutesRequireAuth(t *testing.T) {
	router := testRouter(t, Services{Quests: &fakeQuestsService{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quests", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestListQuestsWithToken(t *testing.T) {
	questID := uuid.New()
	svc := &fakeQuestsService{listPage: quests.QuestsPageDTO{Quests: []quests.QuestDTO{{ID: questID, Title: "Take a mindful walk"}}}}
	router := testRouter(t, Services{Quests: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quests?limit=10", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, testConfig()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data quests.QuestsPageDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Quests) != 1 || envelope.Data.Quests[0].ID != questID {
		t.Fatalf("unexpected page %+v", envelope.Data)
	}
}

func TestStatsRoute(t *testing.T) {
	router := testRouter(t, Services{Progression: &fakeProgressionService{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, testConfig()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data progression.StatsDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Level != 3 || envelope.Data.TotalPoints != 240 {
		t.Fatalf("unexpected stats %+v", envelope.Data)
	}
}

func TestEligibilityRoute(t *testing.T) {
	router := testRouter(t, Services{Quests: &fakeQuestsService{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quests/eligibility", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, testConfig()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data quests.EligibilityStatus `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.CanGenerate {
		t.Fatalf("expected eligible projection, got %+v", envelope.Data)
	}
}
