package config

// EnvPrefix is the envconfig prefix shared by every variable below.
const EnvPrefix = "PRICING"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "PRICING_APP_ENV"
	EnvPort     = "PRICING_APP_PORT"
	EnvLogLevel = "PRICING_LOG_LEVEL"

	EnvDBDSN    = "PRICING_DB_DSN"
	EnvDBHost   = "PRICING_DB_HOST"
	EnvDBPort   = "PRICING_DB_PORT"
	EnvDBUser   = "PRICING_DB_USER"
	EnvDBName   = "PRICING_DB_NAME"
	EnvRedisURL = "PRICING_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
