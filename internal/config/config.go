package config // package config loads application configuration from environment variables

import (
	"errors"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ErrMissingSecret is returned when JWT_SECRET is unset or blank.
// There is no built-in fallback secret.
var ErrMissingSecret = errors.New("config: JWT_SECRET must be set")

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; nested structs group related settings.
type Config struct {
	Env      string `env:"APP_ENV" env-default:"dev"`
	Port     string `env:"APP_PORT" env-default:"8080"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	DB   DBConfig
	Auth AuthConfig

	// RequestTimeout bounds every request; handlers that exceed it
	// answer 504.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"30s"`
	// TokenSweepInterval is how often expired revocation rows are
	// deleted.
	TokenSweepInterval time.Duration `env:"TOKEN_SWEEP_INTERVAL" env-default:"1h"`

	RateLimit RateLimitConfig
	Redis     RedisConfig
}

// DBConfig holds the MySQL connection settings.
type DBConfig struct {
	User        string `env:"DB_USER" env-required:"true"`
	Pass        string `env:"DB_PASS"` // empty allowed
	Host        string `env:"DB_HOST" env-default:"127.0.0.1"`
	Port        string `env:"DB_PORT" env-default:"3306"`
	Name        string `env:"DB_NAME" env-required:"true"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" env-default:"true"`
}

// AuthConfig holds token and password hashing settings.
type AuthConfig struct {
	JWTSecret    string `env:"JWT_SECRET" env-required:"true"`
	AccessTTLMin int    `env:"ACCESS_TOKEN_TTL_MIN" env-default:"60"`
	BcryptCost   int    `env:"BCRYPT_COST" env-default:"10"`
}

// AccessTTL returns the access token lifetime.  Non-positive values
// fall back to one hour.
func (a AuthConfig) AccessTTL() time.Duration {
	if a.AccessTTLMin <= 0 {
		return time.Hour
	}
	return time.Duration(a.AccessTTLMin) * time.Minute
}

// Load reads configuration from the process environment.  A missing
// DB_USER, DB_NAME or JWT_SECRET is an error; everything else has a
// default.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		// cleanenv names the struct field, not the variable.
		if strings.Contains(err.Error(), `"JWTSecret"`) {
			return nil, errors.Join(ErrMissingSecret, err)
		}
		return nil, err
	}
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, ErrMissingSecret
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.TokenSweepInterval <= 0 {
		cfg.TokenSweepInterval = time.Hour
	}
	cfg.RateLimit = cfg.RateLimit.normalize()
	return &cfg, nil
}
