package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Upstream     UpstreamConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"EMARKET_APP_ENV" required:"true"`
	Port         string `envconfig:"EMARKET_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"EMARKET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"EMARKET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DBConfig describes the basket store connection. The default is a local
// SQLite file, mirroring the embedded store the basket was designed around;
// Postgres is available for shared deployments.
type DBConfig struct {
	DSN    string `envconfig:"EMARKET_DB_DSN" default:"emarket.db"`
	Driver string `envconfig:"EMARKET_DB_DRIVER" default:"sqlite"`

	MaxOpenConns    int           `envconfig:"EMARKET_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"EMARKET_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"EMARKET_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"EMARKET_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate() error {
	switch strings.ToLower(db.Driver) {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%s must be %q or %q, got %q", EnvDBDriver, DriverSQLite, DriverPostgres, db.Driver)
	}
	if db.DSN == "" {
		return fmt.Errorf("%s is required", EnvDBDSN)
	}
	return nil
}

// RedisConfig is optional; when URL is empty the idempotency guard on order
// submission is disabled.
type RedisConfig struct {
	URL          string        `envconfig:"EMARKET_REDIS_URL"`
	PoolSize     int           `envconfig:"EMARKET_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"EMARKET_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"EMARKET_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"EMARKET_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"EMARKET_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

// UpstreamConfig points at the catalog/order API the storefront proxies.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"EMARKET_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"EMARKET_UPSTREAM_TIMEOUT" default:"10s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"EMARKET_AUTO_MIGRATE" default:"false"`
}
