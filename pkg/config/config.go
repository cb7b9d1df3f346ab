package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "WFM"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "WFM_APP_ENV"
	EnvPort     = "WFM_APP_PORT"
	EnvDBDSN    = "WFM_DB_DSN"
	EnvDBHost   = "WFM_DB_HOST"
	EnvDBUser   = "WFM_DB_USER"
	EnvDBName   = "WFM_DB_NAME"
	EnvRedisURL = "WFM_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App      AppConfig
	Service  ServiceConfig
	DB       DBConfig
	Redis    RedisConfig
	Worker   WorkerConfig
	Planning PlanningConfig
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
	Env          string `envconfig:"WFM_APP_ENV" required:"true"`
	Port         string `envconfig:"WFM_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WFM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WFM_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"WFM_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"WFM_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"WFM_DB_DSN"`
	Driver string `envconfig:"WFM_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WFM_DB_HOST"`
	LegacyPort     int    `envconfig:"WFM_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WFM_DB_USER"`
	LegacyPassword string `envconfig:"WFM_DB_PASSWORD"`
	LegacyName     string `envconfig:"WFM_DB_NAME"`
	LegacySSLMode  string `envconfig:"WFM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WFM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WFM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WFM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WFM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WFM_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WFM_REDIS_ADDR"`
	Password     string        `envconfig:"WFM_REDIS_PASSWORD"`
	DB           int           `envconfig:"WFM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WFM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WFM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WFM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WFM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WFM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// WorkerConfig drives the planning worker cadence.
type WorkerConfig struct {
	Interval    time.Duration `envconfig:"WFM_WORKER_INTERVAL" default:"24h"`
	LockTTL     time.Duration `envconfig:"WFM_WORKER_LOCK_TTL" default:"2h"`
	MetricsPort string        `envconfig:"WFM_WORKER_METRICS_PORT" default:"9090"`
}

// PlanningConfig controls the nightly planning pipeline. The staffing SLA
// targets (20s / 0.8) and labor limits (45h week, 11h rest) are fixed by the
// scheduling engine and intentionally not configurable.
type PlanningConfig struct {
	ForecastModel       string `envconfig:"WFM_PLANNING_FORECAST_MODEL" default:"weighted-average"`
	ForecastHorizonDays int    `envconfig:"WFM_PLANNING_FORECAST_HORIZON_DAYS" default:"7"`
	ScheduleHorizonDays int    `envconfig:"WFM_PLANNING_SCHEDULE_HORIZON_DAYS" default:"7"`
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
