package config

// EnvPrefix is shared by every EMarket environment variable.
const EnvPrefix = "EMARKET"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Env var names referenced outside struct tags (tests, error messages).
const (
	EnvAppEnv          = "EMARKET_APP_ENV"
	EnvPort            = "EMARKET_APP_PORT"
	EnvDBDSN           = "EMARKET_DB_DSN"
	EnvDBDriver        = "EMARKET_DB_DRIVER"
	EnvRedisURL        = "EMARKET_REDIS_URL"
	EnvUpstreamBaseURL = "EMARKET_UPSTREAM_BASE_URL"
)
