package config

// EnvPrefix scopes every variable envconfig reads.
const EnvPrefix = "FROLIIK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv      = "FROLIIK_APP_ENV"
	EnvPort        = "FROLIIK_APP_PORT"
	EnvDBDSN       = "FROLIIK_DB_DSN"
	EnvDBHost      = "FROLIIK_DB_HOST"
	EnvDBUser      = "FROLIIK_DB_USER"
	EnvDBName      = "FROLIIK_DB_NAME"
	EnvRedisURL    = "FROLIIK_REDIS_URL"
	EnvJWTSecret   = "FROLIIK_JWT_SECRET"
	EnvJWTIssuer   = "FROLIIK_JWT_ISSUER"
	EnvPubSubTopic = "FROLIIK_PUBSUB_QUEST_TOPIC"
	EnvPubSubSub   = "FROLIIK_PUBSUB_QUEST_SUBSCRIPTION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
