package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is shared by every BEBIFRESH_* environment variable.
const EnvPrefix = "BEBIFRESH"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "BEBIFRESH_DB_DSN"
	EnvDBHost = "BEBIFRESH_DB_HOST"
	EnvDBUser = "BEBIFRESH_DB_USER"
	EnvDBName = "BEBIFRESH_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Dashboard     DashboardConfig
	Drafts        DraftsConfig
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
	Env          string `envconfig:"BEBIFRESH_APP_ENV" required:"true"`
	Port         string `envconfig:"BEBIFRESH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BEBIFRESH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BEBIFRESH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BEBIFRESH_DB_DSN"`
	Driver string `envconfig:"BEBIFRESH_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BEBIFRESH_DB_HOST"`
	LegacyPort     int    `envconfig:"BEBIFRESH_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BEBIFRESH_DB_USER"`
	LegacyPassword string `envconfig:"BEBIFRESH_DB_PASSWORD"`
	LegacyName     string `envconfig:"BEBIFRESH_DB_NAME"`
	LegacySSLMode  string `envconfig:"BEBIFRESH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BEBIFRESH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BEBIFRESH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BEBIFRESH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BEBIFRESH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BEBIFRESH_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BEBIFRESH_REDIS_ADDR"`
	Password     string        `envconfig:"BEBIFRESH_REDIS_PASSWORD"`
	DB           int           `envconfig:"BEBIFRESH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BEBIFRESH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BEBIFRESH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BEBIFRESH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BEBIFRESH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BEBIFRESH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"BEBIFRESH_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"BEBIFRESH_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"BEBIFRESH_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"BEBIFRESH_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BEBIFRESH_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BEBIFRESH_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BEBIFRESH_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BEBIFRESH_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BEBIFRESH_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"BEBIFRESH_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"BEBIFRESH_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"BEBIFRESH_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BEBIFRESH_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"BEBIFRESH_AUTO_MIGRATE" default:"false"`
}

// DashboardConfig tunes the cached back-office summary.
type DashboardConfig struct {
	RefreshQuiescence time.Duration `envconfig:"BEBIFRESH_DASHBOARD_REFRESH_QUIESCENCE" default:"500ms"`
	LowStockThreshold int           `envconfig:"BEBIFRESH_DASHBOARD_LOW_STOCK_THRESHOLD" default:"10"`
}

// DraftsConfig tunes purchase-order draft sessions.
type DraftsConfig struct {
	TTL              time.Duration `envconfig:"BEBIFRESH_DRAFT_TTL" default:"2h"`
	SubmitLockTTL    time.Duration `envconfig:"BEBIFRESH_DRAFT_SUBMIT_LOCK_TTL" default:"30s"`
	SweepInterval    time.Duration `envconfig:"BEBIFRESH_DRAFT_SWEEP_INTERVAL" default:"5m"`
	MaxLinesPerDraft int           `envconfig:"BEBIFRESH_DRAFT_MAX_LINES" default:"200"`
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
