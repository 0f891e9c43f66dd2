package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
	Migrate   MigrateConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"2"`
}

// An empty URL disables Redis; deal listings are then served straight from Postgres
// and rate limiting falls back to an in-process limiter.
type RedisConfig struct {
	URL          string        `envconfig:"REDIS_URL"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REDIS_MIN_IDLE_CONNS" default:"2"`
	DealListTTL  time.Duration `envconfig:"REDIS_DEAL_LIST_TTL" default:"5m"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:5173,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-RateLimit-Remaining"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret               string `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration  string `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"1h"`
	RefreshTokenDuration string `envconfig:"JWT_REFRESH_TOKEN_DURATION" default:"168h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type UploadConfig struct {
	Dir          string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	PublicPrefix string `envconfig:"UPLOAD_PUBLIC_PREFIX" default:"/uploads"`
	MaxBytes     int64  `envconfig:"UPLOAD_MAX_BYTES" default:"6291456"`
}

type RateLimitConfig struct {
	AuthPerMinute int  `envconfig:"RATE_LIMIT_AUTH_PER_MINUTE" default:"20"`
	AuthBurst     int  `envconfig:"RATE_LIMIT_AUTH_BURST" default:"5"`
	FailOpen      bool `envconfig:"RATE_LIMIT_FAIL_OPEN" default:"true"`
}

type JobsConfig struct {
	ExpirySweepSpec string `envconfig:"EXPIRY_SWEEP_SPEC" default:"@every 5m"`
}

type MigrateConfig struct {
	Enabled   bool   `envconfig:"MIGRATE_ON_START" default:"false"`
	Dir       string `envconfig:"MIGRATE_DIR" default:"file://migrations"`
	AtlasPath string `envconfig:"MIGRATE_ATLAS_BIN" default:"atlas"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c JWTConfig) Durations() (access, refresh time.Duration, err error) {
	access, err = time.ParseDuration(c.AccessTokenDuration)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid JWT_ACCESS_TOKEN_DURATION: %w", err)
	}
	refresh, err = time.ParseDuration(c.RefreshTokenDuration)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid JWT_REFRESH_TOKEN_DURATION: %w", err)
	}
	return access, refresh, nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
			MinConns: 1,
		},
		Redis: RedisConfig{
			DealListTTL: time.Minute,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:               "test-secret-key-for-local-deals",
			AccessTokenDuration:  "15m",
			RefreshTokenDuration: "24h",
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Upload: UploadConfig{
			Dir:          "./testdata/uploads",
			PublicPrefix: "/uploads",
			MaxBytes:     6 << 20,
		},
		RateLimit: RateLimitConfig{
			AuthPerMinute: 1000,
			AuthBurst:     100,
			FailOpen:      true,
		},
		Jobs: JobsConfig{
			ExpirySweepSpec: "@every 1h",
		},
	}
}
