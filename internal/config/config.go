package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Log        LogConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	PublicData PublicDataConfig
	PDF        PDFConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type LogConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
	SlowQueryThreshold    time.Duration

	RunMigrations bool
	RunSeeders    bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
	MatchTTL time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type PublicDataConfig struct {
	BaseURL      string
	ServiceKey   string
	Timeout      time.Duration
	SyncWorkers  int
	SyncRPS      int
	SyncPerPage  int
	SyncInterval time.Duration
}

type PDFConfig struct {
	ChromePath string
	Timeout    time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return LoadFrom(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("DB_POOL_MAX_CONNS", 10)
	v.SetDefault("DB_POOL_MIN_CONNS", 0)
	v.SetDefault("DB_POOL_MAX_CONN_LIFETIME", "1h")
	v.SetDefault("DB_POOL_MAX_CONN_IDLE_TIME", "30m")
	v.SetDefault("DB_POOL_HEALTH_CHECK_PERIOD", "1m")
	v.SetDefault("DB_SLOW_QUERY_THRESHOLD", "200ms")
	v.SetDefault("DB_RUN_MIGRATIONS", true)
	v.SetDefault("DB_RUN_SEEDERS", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TTL", "600s")
	v.SetDefault("REDIS_MATCH_TTL", "120s")
	v.SetDefault("JWT_ACCESS_EXPIRES_IN", "15m")
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", "168h")
	v.SetDefault("PUBLIC_DATA_BASE_URL", "https://api.odcloud.kr/api")
	v.SetDefault("PUBLIC_DATA_TIMEOUT", "10s")
	v.SetDefault("SYNC_WORKERS", 3)
	v.SetDefault("SYNC_RPS", 2)
	v.SetDefault("SYNC_PER_PAGE", 50)
	v.SetDefault("SYNC_INTERVAL", "0s")
	v.SetDefault("PDF_TIMEOUT", "30s")

	return v
}

// LoadFrom builds a Config from an already populated viper instance.
func LoadFrom(v *viper.Viper) (Config, error) {
	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg := Config{}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Log = LogConfig{
		Level:  strings.ToLower(opt("LOG_LEVEL")),
		Format: strings.ToLower(opt("LOG_FORMAT")),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                req("DB_HOST"),
		DBPort:                req("DB_PORT"),
		DBName:                req("DB_NAME"),
		DBUser:                req("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
		SlowQueryThreshold:    v.GetDuration("DB_SLOW_QUERY_THRESHOLD"),
		RunMigrations:         v.GetBool("DB_RUN_MIGRATIONS"),
		RunSeeders:            v.GetBool("DB_RUN_SEEDERS"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TTL:      v.GetDuration("REDIS_TTL"),
		MatchTTL: v.GetDuration("REDIS_MATCH_TTL"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  v.GetDuration("JWT_ACCESS_EXPIRES_IN"),
		RefreshExpiresIn: v.GetDuration("JWT_REFRESH_EXPIRES_IN"),
	}

	cfg.PublicData = PublicDataConfig{
		BaseURL:      strings.TrimRight(opt("PUBLIC_DATA_BASE_URL"), "/"),
		ServiceKey:   opt("DATA_GO_KR_API_KEY"),
		Timeout:      v.GetDuration("PUBLIC_DATA_TIMEOUT"),
		SyncWorkers:  v.GetInt("SYNC_WORKERS"),
		SyncRPS:      v.GetInt("SYNC_RPS"),
		SyncPerPage:  v.GetInt("SYNC_PER_PAGE"),
		SyncInterval: v.GetDuration("SYNC_INTERVAL"),
	}

	cfg.PDF = PDFConfig{
		ChromePath: opt("CHROME_PATH"),
		Timeout:    v.GetDuration("PDF_TIMEOUT"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	if cfg.JWT.AccessExpiresIn <= 0 || cfg.JWT.RefreshExpiresIn <= 0 {
		return Config{}, fmt.Errorf("invalid JWT expiry: access=%s refresh=%s", cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)
	}

	return cfg, nil
}

// IsMissingRequired reports whether err came from absent required keys.
func IsMissingRequired(err error) bool {
	return errors.Is(err, errMissingRequiredEnv)
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
