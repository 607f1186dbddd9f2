package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	CORS         CORSConfig
	Log          LogConfig
	Shift        ShiftConfig
	TrackingCode TrackingCodeConfig
	Cache        CacheConfig
	Archive      ArchiveConfig
	Docs         DocsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
	Audience   []string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ShiftHours is the only supported shift length. The hourly feed grid, hour labels and
// tonnage totals are laid out for exactly this many slots.
const ShiftHours = 12

// ShiftConfig holds the plant's shift rules.
type ShiftConfig struct {
	// RotationReference is the Jalali date on which crew A works DAY_1.
	RotationReference string
	Hours             int
	DraftTTL          time.Duration
}

// DefaultDuration renders Hours as the HH:MM shift duration.
func (s ShiftConfig) DefaultDuration() string {
	return fmt.Sprintf("%d:00", s.Hours)
}

// TrackingCodeConfig controls report code issuance.
type TrackingCodeConfig struct {
	Prefix         string
	RandomFallback bool
}

// CacheConfig tunes the report read cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// ArchiveConfig controls PDF archiving of submitted reports.
type ArchiveConfig struct {
	Enabled         bool
	StorageDir      string
	Workers         int
	Retries         int
	Retention       time.Duration
	CleanupInterval time.Duration
	LinkSecret      string
	LinkTTL         time.Duration
}

// DocsConfig toggles the swagger UI.
type DocsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
		Audience:   splitAndTrim(v.GetString("JWT_AUDIENCE")),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Shift = ShiftConfig{
		RotationReference: v.GetString("ROTATION_REFERENCE_DATE"),
		Hours:             v.GetInt("SHIFT_HOURS"),
		DraftTTL:          parseDuration(v.GetString("DRAFT_TTL"), 24*time.Hour),
	}
	if cfg.Shift.Hours != ShiftHours {
		return nil, fmt.Errorf("SHIFT_HOURS must be %d, got %d", ShiftHours, cfg.Shift.Hours)
	}

	cfg.TrackingCode = TrackingCodeConfig{
		Prefix:         v.GetString("TRACKING_CODE_PREFIX"),
		RandomFallback: v.GetBool("TRACKING_CODE_RANDOM_FALLBACK"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_CACHE"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), 10*time.Minute),
	}

	cfg.Archive = ArchiveConfig{
		Enabled:         v.GetBool("ENABLE_ARCHIVE"),
		StorageDir:      v.GetString("ARCHIVE_STORAGE_DIR"),
		Workers:         v.GetInt("ARCHIVE_WORKERS"),
		Retries:         v.GetInt("ARCHIVE_RETRIES"),
		Retention:       parseDuration(v.GetString("ARCHIVE_RETENTION"), 0),
		CleanupInterval: parseDuration(v.GetString("ARCHIVE_CLEANUP_INTERVAL"), time.Hour),
		LinkSecret:      v.GetString("ARCHIVE_LINK_SECRET"),
		LinkTTL:         parseDuration(v.GetString("ARCHIVE_LINK_TTL"), time.Hour),
	}
	if cfg.Archive.LinkSecret == "" {
		cfg.Archive.LinkSecret = cfg.JWT.Secret
	}

	cfg.Docs = DocsConfig{Enabled: v.GetBool("ENABLE_DOCS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "plant_shift")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("JWT_AUDIENCE", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ROTATION_REFERENCE_DATE", "1402/12/25")
	v.SetDefault("SHIFT_HOURS", ShiftHours)
	v.SetDefault("DRAFT_TTL", "24h")

	v.SetDefault("TRACKING_CODE_PREFIX", "SR-")
	v.SetDefault("TRACKING_CODE_RANDOM_FALLBACK", false)

	v.SetDefault("ENABLE_CACHE", true)
	v.SetDefault("CACHE_TTL", "10m")

	v.SetDefault("ENABLE_ARCHIVE", false)
	v.SetDefault("ARCHIVE_STORAGE_DIR", "./archive")
	v.SetDefault("ARCHIVE_WORKERS", 1)
	v.SetDefault("ARCHIVE_RETRIES", 3)
	v.SetDefault("ARCHIVE_RETENTION", "")
	v.SetDefault("ARCHIVE_CLEANUP_INTERVAL", "1h")

	v.SetDefault("ENABLE_DOCS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
