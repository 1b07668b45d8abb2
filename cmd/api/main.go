package main

import (
	"context"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/froliik/froliik-backend/api/middleware"
	"github.com/froliik/froliik-backend/api/routes"
	"github.com/froliik/froliik-backend/internal/community"
	"github.com/froliik/froliik-backend/internal/notifications"
	"github.com/froliik/froliik-backend/internal/progression"
	"github.com/froliik/froliik-backend/internal/quests"
	"github.com/froliik/froliik-backend/internal/settings"
	"github.com/froliik/froliik-backend/internal/users"
	"github.com/froliik/froliik-backend/pkg/config"
	"github.com/froliik/froliik-backend/pkg/db"
	"github.com/froliik/froliik-backend/pkg/logger"
	"github.com/froliik/froliik-backend/pkg/metrics"
	"github.com/froliik/froliik-backend/pkg/migrate"
	"github.com/froliik/froliik-backend/pkg/openai"
	"github.com/froliik/froliik-backend/pkg/outbox"
	"github.com/froliik/froliik-backend/pkg/redis"
)

// firstQuestRelay breaks the construction cycle between the settings and
// quest services: settings needs a first-quest starter before the quest
// service exists, so the relay is wired first and bound afterwards.
type firstQuestRelay struct {
	quests quests.Service
}

func (r *firstQuestRelay) GenerateFirstQuest(ctx context.Context, userID uuid.UUID) {
	if r.quests == nil {
		return
	}
	r.quests.GenerateFirstQuest(ctx, userID)
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	engineMetrics := metrics.NewEngineMetrics(registry)

	gormDB := dbClient.DB()
	outboxService := outbox.NewService(outbox.NewRepository(gormDB), logg)

	usersRepo := users.NewRepository(gormDB)
	usersService, err := users.NewService(users.ServiceParams{
		DB:     dbClient,
		Repo:   usersRepo,
		Outbox: outboxService,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	firstQuest := &firstQuestRelay{}
	settingsService, err := settings.NewService(settings.ServiceParams{
		Repo:       settings.NewRepository(gormDB),
		UserFlags:  usersRepo,
		FirstQuest: firstQuest,
		Categories: quests.CategoriesForInterests,
		Difficulty: quests.DifficultyForQuestLevel,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	communityRepo := community.NewRepository(gormDB)
	communityService, err := community.NewService(community.ServiceParams{
		DB:     dbClient,
		Repo:   communityRepo,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create community service", err)
		os.Exit(1)
	}

	statsRepo := progression.NewStatsRepository(gormDB)
	achievementsRepo := progression.NewAchievementsRepository(gormDB)
	progressionService, err := progression.NewService(progression.ServiceParams{
		StatsRepo:        statsRepo,
		AchievementsRepo: achievementsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create progression service", err)
		os.Exit(1)
	}

	var texter openai.Texter
	if cfg.OpenAI.Enabled() {
		openaiClient, err := openai.NewClient(cfg.OpenAI, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create openai client", err)
			os.Exit(1)
		}
		texter = openaiClient
	} else {
		logg.Warn(context.Background(), "openai api key not configured, using template quest text")
	}

	questsService, err := quests.NewService(quests.ServiceParams{
		DB:           dbClient,
		Repo:         quests.NewRepository(gormDB),
		Community:    communityRepo,
		Stats:        statsRepo,
		Achievements: achievementsRepo,
		Settings:     settingsService,
		Users:        usersRepo,
		Outbox:       outboxService,
		Titles:       redisClient,
		Texter:       texter,
		Metrics:      engineMetrics,
		Logger:       logg,
		Config:       cfg.Quests,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create quests service", err)
		os.Exit(1)
	}
	firstQuest.quests = questsService

	notificationsService, err := notifications.NewService(notifications.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	resolver := middleware.UserResolverFunc(func(ctx context.Context, externalAuthID, email, displayName string) (uuid.UUID, error) {
		user, err := usersService.EnsureUser(ctx, users.EnsureUserDTO{
			ExternalAuthID: externalAuthID,
			Email:          email,
			DisplayName:    displayName,
		})
		if err != nil {
			return uuid.Nil, err
		}
		return user.ID, nil
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, resolver, registry, routes.Services{
			Quests:        questsService,
			Settings:      settingsService,
			Community:     communityService,
			Progression:   progressionService,
			Notifications: notificationsService,
			Users:         usersService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
