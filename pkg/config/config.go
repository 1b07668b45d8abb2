package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	OpenAI       OpenAIConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
	Quests       QuestsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FROLIIK_APP_ENV" required:"true"`
	Port         string `envconfig:"FROLIIK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FROLIIK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FROLIIK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"FROLIIK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"FROLIIK_DB_DSN"`
	Driver string `envconfig:"FROLIIK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FROLIIK_DB_HOST"`
	LegacyPort     int    `envconfig:"FROLIIK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FROLIIK_DB_USER"`
	LegacyPassword string `envconfig:"FROLIIK_DB_PASSWORD"`
	LegacyName     string `envconfig:"FROLIIK_DB_NAME"`
	LegacySSLMode  string `envconfig:"FROLIIK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FROLIIK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FROLIIK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FROLIIK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FROLIIK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FROLIIK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FROLIIK_REDIS_ADDR"`
	Password     string        `envconfig:"FROLIIK_REDIS_PASSWORD"`
	DB           int           `envconfig:"FROLIIK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FROLIIK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FROLIIK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FROLIIK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FROLIIK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FROLIIK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FROLIIK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FROLIIK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FROLIIK_JWT_EXPIRATION_MINUTES" default:"60"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"FROLIIK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"FROLIIK_AUTO_MIGRATE" default:"false"`
}

type OpenAIConfig struct {
	APIKey  string        `envconfig:"FROLIIK_OPENAI_API_KEY"`
	Model   string        `envconfig:"FROLIIK_OPENAI_MODEL" default:"gpt-4o-mini"`
	BaseURL string        `envconfig:"FROLIIK_OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	Timeout time.Duration `envconfig:"FROLIIK_OPENAI_TIMEOUT" default:"10s"`
}

// Enabled reports whether the AI quest-text path is configured at all.
func (o OpenAIConfig) Enabled() bool {
	return strings.TrimSpace(o.APIKey) != ""
}

type GCPConfig struct {
	ProjectID              string `envconfig:"FROLIIK_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"FROLIIK_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"FROLIIK_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	QuestTopic        string `envconfig:"FROLIIK_PUBSUB_QUEST_TOPIC" default:"froliik-quest-events"`
	QuestSubscription string `envconfig:"FROLIIK_PUBSUB_QUEST_SUBSCRIPTION" required:"true"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"FROLIIK_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"FROLIIK_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"FROLIIK_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type QuestsConfig struct {
	CompletionPoints   int           `envconfig:"FROLIIK_QUESTS_COMPLETION_POINTS" default:"10"`
	StreakBonusAt      int           `envconfig:"FROLIIK_QUESTS_STREAK_BONUS_AT" default:"7"`
	RecentTitleTTLDays int           `envconfig:"FROLIIK_QUESTS_RECENT_TITLE_TTL_DAYS" default:"7"`
	GenerateTimeout    time.Duration `envconfig:"FROLIIK_QUESTS_GENERATE_TIMEOUT" default:"15s"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
