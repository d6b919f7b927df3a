package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "COH"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Worker        WorkerConfig
	Analytics     AnalyticsConfig
	CORS          CORSConfig
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
	Env          string `envconfig:"COH_APP_ENV" required:"true"`
	Port         string `envconfig:"COH_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"COH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"COH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"COH_DB_DSN"`
	Driver string `envconfig:"COH_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"COH_DB_HOST"`
	Port     int    `envconfig:"COH_DB_PORT" default:"5432"`
	User     string `envconfig:"COH_DB_USER"`
	Password string `envconfig:"COH_DB_PASSWORD"`
	Name     string `envconfig:"COH_DB_NAME"`
	SSLMode  string `envconfig:"COH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"COH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"COH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"COH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"COH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"COH_REDIS_URL"`
	Address      string        `envconfig:"COH_REDIS_ADDR"`
	Password     string        `envconfig:"COH_REDIS_PASSWORD"`
	DB           int           `envconfig:"COH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"COH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"COH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"COH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"COH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"COH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"COH_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"COH_JWT_ISSUER" default:"coh-backoffice"`
	ExpirationMinutes int    `envconfig:"COH_JWT_EXPIRATION_MINUTES" default:"720"`
}

// TokenTTL returns the access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"COH_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"COH_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"COH_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"COH_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"COH_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"COH_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"COH_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"COH_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

// WorkerConfig points at the sibling worker process that owns background
// jobs, log storage and the Shopify sync loop.
type WorkerConfig struct {
	BaseURL string        `envconfig:"COH_WORKER_BASE_URL" default:"http://127.0.0.1:4100"`
	Timeout time.Duration `envconfig:"COH_WORKER_TIMEOUT" default:"30s"`
}

type AnalyticsConfig struct {
	// Timezone is the civil timezone used for dashboard period boundaries.
	Timezone string `envconfig:"COH_ANALYTICS_TIMEZONE" default:"Asia/Kolkata"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"COH_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for env, val := range map[string]string{
		"COH_DB_HOST": db.Host,
		"COH_DB_USER": db.User,
		"COH_DB_NAME": db.Name,
	} {
		if val == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either COH_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
