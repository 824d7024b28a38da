package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Cron       CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds token verification settings. Tokens are issued elsewhere.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

// AttendanceConfig holds the defaults a company policy falls back to.
type AttendanceConfig struct {
	ReferenceTimezone string
	LateInHour        int
	EarlyOutHour      int
	HalfDayMaxHours   float64
}

type CronConfig struct {
	DriftCheckInterval time.Duration
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Attendance defaults
	lateIn, err := strconv.Atoi(getEnv("ATTENDANCE_LATE_IN_HOUR", "9"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_LATE_IN_HOUR: %w", err)
	}
	earlyOut, err := strconv.Atoi(getEnv("ATTENDANCE_EARLY_OUT_HOUR", "17"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_EARLY_OUT_HOUR: %w", err)
	}
	halfDay, err := strconv.ParseFloat(getEnv("ATTENDANCE_HALF_DAY_MAX_HOURS", "4"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_HALF_DAY_MAX_HOURS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		ReferenceTimezone: getEnv("ATTENDANCE_REFERENCE_TZ", "UTC"),
		LateInHour:        lateIn,
		EarlyOutHour:      earlyOut,
		HalfDayMaxHours:   halfDay,
	}

	driftInterval, err := time.ParseDuration(getEnv("DRIFT_CHECK_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid DRIFT_CHECK_INTERVAL: %w", err)
	}
	config.Cron = CronConfig{DriftCheckInterval: driftInterval}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := calendar.NewNormalizer(c.Attendance.ReferenceTimezone); err != nil {
		return fmt.Errorf("ATTENDANCE_REFERENCE_TZ: %w", err)
	}
	if err := c.Thresholds().Validate(); err != nil {
		return fmt.Errorf("ATTENDANCE_* thresholds: %w", err)
	}
	if c.Cron.DriftCheckInterval <= 0 {
		return fmt.Errorf("DRIFT_CHECK_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Thresholds returns the default classification thresholds.
func (c *Config) Thresholds() attendance.Thresholds {
	return attendance.Thresholds{
		LateInHour:      c.Attendance.LateInHour,
		EarlyOutHour:    c.Attendance.EarlyOutHour,
		HalfDayMaxHours: c.Attendance.HalfDayMaxHours,
	}
}

// Normalizer returns the default reference zone. Validate has already
// checked that it loads.
func (c *Config) Normalizer() calendar.Normalizer {
	n, err := calendar.NewNormalizer(c.Attendance.ReferenceTimezone)
	if err != nil {
		return calendar.UTC
	}
	return n
}

// SlogLevel maps LOG_LEVEL to a slog level, info when unrecognised.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
