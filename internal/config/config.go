package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Storage   StorageConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	Session   SessionConfig
	Keycloak  KeycloakConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	MinIO     MinIOConfig
	Finance   FinanceConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LogConfig struct {
	Level string
}

// StorageConfig selects the backend for users and record collections.
type StorageConfig struct {
	Backend string // memory | mongo
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

type SessionConfig struct {
	Store         string // memory | mongo | redis
	CookieName    string
	CookieSecure  bool
	TTL           time.Duration
	LookupTimeout time.Duration
}

type KeycloakConfig struct {
	URL      string
	Realm    string
	ClientID string
	// AllowInsecureToken skips signature checks when no provider is reachable.
	// Local and integration setups only.
	AllowInsecureToken bool
}

// Issuer returns the realm issuer URL, or "" when OIDC login is not configured.
func (k KeycloakConfig) Issuer() string {
	if k.URL == "" || k.ClientID == "" {
		return ""
	}
	if k.Realm == "" {
		return k.URL
	}
	return strings.TrimRight(k.URL, "/") + "/realms/" + k.Realm
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	URLExpiry time.Duration
}

// FinanceConfig carries business figures that must be configured explicitly.
// Zero means "not set".
type FinanceConfig struct {
	AuthorizedShares int64
	DefaultCash      float64
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "5001")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_BACKEND", "memory")
	v.SetDefault("MONGODB_DATABASE", "founderdash")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_STORE", "memory")
	v.SetDefault("SESSION_COOKIE_NAME", "session-token")
	v.SetDefault("SESSION_TTL_HOURS", 168)
	v.SetDefault("SESSION_LOOKUP_TIMEOUT_MS", 2000)
	v.SetDefault("JWT_ACCESS_TOKEN_TTL", 15)
	v.SetDefault("RATE_LIMIT_RPS", 10.0)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	v.SetDefault("MINIO_BUCKET", "founderdash")
	v.SetDefault("MINIO_URL_EXPIRY_MINUTES", 15)

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Log: LogConfig{Level: v.GetString("LOG_LEVEL")},
		Storage: StorageConfig{
			Backend: strings.ToLower(v.GetString("STORAGE_BACKEND")),
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			Store:         strings.ToLower(v.GetString("SESSION_STORE")),
			CookieName:    v.GetString("SESSION_COOKIE_NAME"),
			CookieSecure:  v.GetBool("COOKIE_SECURE"),
			TTL:           time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,
			LookupTimeout: time.Duration(v.GetInt("SESSION_LOOKUP_TIMEOUT_MS")) * time.Millisecond,
		},
		Keycloak: KeycloakConfig{
			URL:      v.GetString("KEYCLOAK_URL"),
			Realm:    v.GetString("KEYCLOAK_REALM"),
			ClientID: v.GetString("KEYCLOAK_CLIENT_ID"),

			AllowInsecureToken: v.GetBool("ALLOW_INSECURE_TOKEN"),
		},
		JWT: JWTConfig{
			Secret:         v.GetString("JWT_SECRET"),
			AccessTokenTTL: time.Duration(v.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			URLExpiry: time.Duration(v.GetInt("MINIO_URL_EXPIRY_MINUTES")) * time.Minute,
		},
		Finance: FinanceConfig{
			AuthorizedShares: v.GetInt64("CAPTABLE_AUTHORIZED_SHARES"),
			DefaultCash:      v.GetFloat64("BURNRATE_DEFAULT_CASH"),
		},
	}

	return cfg, cfg.Validate()
}

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "memory":
	case "mongo":
		if c.MongoDB.URI == "" {
			return errMissing("MONGODB_URI", "STORAGE_BACKEND=mongo")
		}
	default:
		return errInvalid("STORAGE_BACKEND", c.Storage.Backend)
	}
	switch c.Session.Store {
	case "memory":
	case "mongo":
		if c.MongoDB.URI == "" {
			return errMissing("MONGODB_URI", "SESSION_STORE=mongo")
		}
	case "redis":
		if c.Redis.Host == "" {
			return errMissing("REDIS_HOST", "SESSION_STORE=redis")
		}
	default:
		return errInvalid("SESSION_STORE", c.Session.Store)
	}
	if c.Session.TTL <= 0 {
		return errInvalid("SESSION_TTL_HOURS", c.Session.TTL.String())
	}
	if c.Finance.AuthorizedShares < 0 {
		return errInvalid("CAPTABLE_AUTHORIZED_SHARES", "negative")
	}
	return nil
}
