package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Reprocess  ReprocessConfig
	Policy     PolicyConfig
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
	// SeedFile is a YAML fixture loaded into the memory driver at startup.
	SeedFile string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
}

// AttendanceConfig tunes the punch path
type AttendanceConfig struct {
	PunchOrder attendance.OrderMode
	// CodeAttempts is how many code collisions are tolerated before every
	// retry switches to a salted code.
	CodeAttempts int
}

// ReprocessConfig controls the hours balance batch
type ReprocessConfig struct {
	Timeout      time.Duration
	Interval     time.Duration
	SystemUserID string
}

type PolicyConfig struct {
	File string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Driver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
		SeedFile: getEnv("MEMORY_SEED_FILE", ""),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "Local"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance configuration
	codeAttempts, err := strconv.Atoi(getEnv("ATTENDANCE_CODE_ATTEMPTS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_CODE_ATTEMPTS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		PunchOrder:   attendance.OrderMode(strings.ToLower(getEnv("ATTENDANCE_PUNCH_ORDER", string(attendance.OrderLenient)))),
		CodeAttempts: codeAttempts,
	}

	// Reprocess configuration
	timeout, err := time.ParseDuration(getEnv("REPROCESS_TIMEOUT", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPROCESS_TIMEOUT: %w", err)
	}
	interval, err := time.ParseDuration(getEnv("REPROCESS_INTERVAL", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPROCESS_INTERVAL: %w", err)
	}

	config.Reprocess = ReprocessConfig{
		Timeout:      timeout,
		Interval:     interval,
		SystemUserID: getEnv("REPROCESS_SYSTEM_USER_ID", ""),
	}

	config.Policy = PolicyConfig{
		File: getEnv("POLICY_FILE", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q", DriverPostgres, DriverMemory)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	switch c.Attendance.PunchOrder {
	case attendance.OrderLenient, attendance.OrderStrict:
	default:
		return fmt.Errorf("ATTENDANCE_PUNCH_ORDER must be %q or %q", attendance.OrderLenient, attendance.OrderStrict)
	}
	if c.Attendance.CodeAttempts < 1 {
		return fmt.Errorf("ATTENDANCE_CODE_ATTEMPTS must be at least 1")
	}
	if c.Reprocess.Timeout <= 0 {
		return fmt.Errorf("REPROCESS_TIMEOUT must be positive")
	}
	if c.Reprocess.Interval < 0 {
		return fmt.Errorf("REPROCESS_INTERVAL must not be negative")
	}
	return nil
}

// Location returns the timezone every calendar computation runs in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
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
