package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Transfer TransferConfig `yaml:"transfer"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// CORSConfig holds CORS settings. AllowCredentials defaults to true, see
// defaults.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings. TrustForwardedFor takes the
// client address from X-Forwarded-For (behind a reverse proxy).
type ServerConfig struct {
	Host              string        `yaml:"host"                env:"SERVER_HOST"                env-default:"0.0.0.0"`
	Port              int           `yaml:"port"                env:"SERVER_PORT"                env-default:"8080"`
	ReadTimeout       time.Duration `yaml:"read_timeout"        env:"SERVER_READ_TIMEOUT"        env-default:"10s"`
	WriteTimeout      time.Duration `yaml:"write_timeout"       env:"SERVER_WRITE_TIMEOUT"       env-default:"30s"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"        env:"SERVER_IDLE_TIMEOUT"        env-default:"60s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"    env:"SERVER_SHUTDOWN_TIMEOUT"    env-default:"10s"`
	TrustForwardedFor bool          `yaml:"trust_forwarded_for" env:"SERVER_TRUST_FORWARDED_FOR" env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	AppName         string        `yaml:"app_name"           env:"DATABASE_APP_NAME"           env-default:"appseed"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds caller token settings. Sessions are issued elsewhere;
// this service only validates access tokens.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"appseed"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// IngestConfig holds webhook ingestion settings. Serializable defaults to
// true, see defaults.
type IngestConfig struct {
	DedupWindow        time.Duration `yaml:"dedup_window"          env:"INGEST_DEDUP_WINDOW"          env-default:"24h"`
	Serializable       bool          `yaml:"serializable"          env:"INGEST_SERIALIZABLE"`
	MaxRetries         int           `yaml:"max_retries"           env:"INGEST_MAX_RETRIES"           env-default:"3"`
	MaxBodyBytes       int64         `yaml:"max_body_bytes"        env:"INGEST_MAX_BODY_BYTES"        env-default:"1048576"`
	ForwardTimeout     time.Duration `yaml:"forward_timeout"       env:"INGEST_FORWARD_TIMEOUT"       env-default:"5s"`
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute" env:"INGEST_RATE_LIMIT_PER_MINUTE" env-default:"120"`
}

// TransferConfig holds cross-pipeline migration settings.
type TransferConfig struct {
	ActivityCopyWindow time.Duration `yaml:"activity_copy_window" env:"TRANSFER_ACTIVITY_COPY_WINDOW" env-default:"720h"`
}

// MetricsConfig holds Prometheus exposition settings. Enabled defaults to
// true, see defaults.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

// defaults presets the settings that default to true. cleanenv treats false
// as unset, so these cannot be env-default tags.
func defaults() Config {
	return Config{
		CORS:    CORSConfig{AllowCredentials: true},
		Ingest:  IngestConfig{Serializable: true},
		Metrics: MetricsConfig{Enabled: true},
	}
}
