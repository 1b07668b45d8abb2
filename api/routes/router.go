package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/froliik/froliik-backend/api/controllers"
	"github.com/froliik/froliik-backend/api/middleware"
	"github.com/froliik/froliik-backend/internal/community"
	"github.com/froliik/froliik-backend/internal/notifications"
	"github.com/froliik/froliik-backend/internal/progression"
	"github.com/froliik/froliik-backend/internal/quests"
	"github.com/froliik/froliik-backend/internal/settings"
	"github.com/froliik/froliik-backend/internal/users"
	"github.com/froliik/froliik-backend/pkg/config"
	"github.com/froliik/froliik-backend/pkg/logger"
	"github.com/froliik/froliik-backend/pkg/redis"
)

// Services groups the domain services the router exposes.
type Services struct {
	Quests        quests.Service
	Settings      settings.Service
	Community     community.Service
	Progression   progression.Service
	Notifications notifications.Service
	Users         users.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	resolver middleware.UserResolver,
	gatherer prometheus.Gatherer,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, resolver, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/quests", func(r chi.Router) {
			r.Get("/", controllers.ListQuests(svcs.Quests, logg))
			r.Post("/", controllers.CreateQuest(svcs.Quests, logg))
			r.Post("/generate", controllers.GenerateQuest(svcs.Quests, logg))
			r.Get("/eligibility", controllers.QuestEligibility(svcs.Quests, logg))
			r.Post("/{questId}/complete", controllers.CompleteQuest(svcs.Quests, logg))
			r.Delete("/{questId}", controllers.DeleteQuest(svcs.Quests, logg))
		})

		r.Route("/v1/settings", func(r chi.Router) {
			r.Get("/", controllers.GetSettings(svcs.Settings, logg))
			r.Patch("/", controllers.UpdateSettings(svcs.Settings, logg))
			r.Patch("/notifications", controllers.UpdateNotificationSettings(svcs.Settings, logg))
			r.Patch("/privacy", controllers.UpdatePrivacySettings(svcs.Settings, logg))
			r.Patch("/quest-preferences", controllers.UpdateQuestPreferenceSettings(svcs.Settings, logg))
		})

		r.Route("/v1/onboarding", func(r chi.Router) {
			r.Post("/step/{step}", controllers.OnboardingStep(svcs.Settings, logg))
			r.Post("/complete", controllers.OnboardingComplete(svcs.Settings, logg))
		})

		r.Route("/v1/community", func(r chi.Router) {
			r.Get("/", controllers.CommunityFeed(svcs.Community, logg))
			r.Post("/{updateId}/like", controllers.LikeUpdate(svcs.Community, logg))
			r.Delete("/{updateId}/like", controllers.UnlikeUpdate(svcs.Community, logg))
			r.Post("/{updateId}/comments", controllers.CreateComment(svcs.Community, logg))
			r.Delete("/comments/{commentId}", controllers.DeleteComment(svcs.Community, logg))
		})

		r.Get("/v1/stats", controllers.GetStats(svcs.Progression, logg))
		r.Get("/v1/achievements", controllers.ListAchievements(svcs.Progression, logg))

		r.Route("/v1/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(svcs.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(svcs.Notifications, logg))
		})

		r.Get("/v1/profile", controllers.GetProfile(svcs.Users, logg))
		r.Delete("/v1/account", controllers.DeleteAccount(svcs.Users, logg))
	})

	return r
}
