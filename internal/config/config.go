package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Logging    LoggingConfig
	Simulation SimulationConfig
	SMTP       SMTPConfig
	Roster     RosterConfig
	Notify     NotifyConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// SimulationConfig contains simulation engine configuration
type SimulationConfig struct {
	TickInterval time.Duration
	Source       string // simulated is the only source shipped today
	Seed         int64  // 0 means time-seeded
	AutoStart    bool
	FleetFile    string // optional YAML overriding sensors/thresholds/roster
}

// SMTPConfig contains outbound mail transport configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// RosterConfig contains officials roster lookup configuration
type RosterConfig struct {
	Backend string // sqlite, http or static
	Path    string // sqlite database path
	BaseURL string // records service base URL for the http backend
	Timeout time.Duration
}

// NotifyConfig contains alert notification configuration
type NotifyConfig struct {
	CCAddresses     []string
	SummarySchedule string // cron expression for the daily digest
	SummaryEnabled  bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Simulation: SimulationConfig{
			TickInterval: getEnvAsDuration("SIM_TICK_INTERVAL", 10*time.Second),
			Source:       getEnv("SIM_SOURCE", "simulated"),
			Seed:         getEnvAsInt64("SIM_SEED", 0),
			AutoStart:    getEnvAsBool("SIM_AUTO_START", false),
			FleetFile:    getEnv("SIM_FLEET_FILE", ""),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "alerts@aquaalert.local"),
			Timeout:  getEnvAsDuration("SMTP_TIMEOUT", 15*time.Second),
		},
		Roster: RosterConfig{
			Backend: getEnv("ROSTER_BACKEND", "static"),
			Path:    getEnv("ROSTER_DB_PATH", "./officials.db"),
			BaseURL: getEnv("ROSTER_BASE_URL", ""),
			Timeout: getEnvAsDuration("ROSTER_TIMEOUT", 10*time.Second),
		},
		Notify: NotifyConfig{
			CCAddresses:     getEnvAsSlice("NOTIFY_CC", []string{"phc.monitoring@aquaalert.local", "district.health@aquaalert.local"}),
			SummarySchedule: getEnv("SUMMARY_SCHEDULE", "0 8 * * *"),
			SummaryEnabled:  getEnvAsBool("SUMMARY_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Simulation.TickInterval < time.Second {
		return fmt.Errorf("tick interval too small: %s", c.Simulation.TickInterval)
	}

	switch c.Roster.Backend {
	case "sqlite", "http", "static":
	default:
		return fmt.Errorf("unsupported roster backend: %s", c.Roster.Backend)
	}

	if c.Roster.Backend == "http" && c.Roster.BaseURL == "" {
		return fmt.Errorf("ROSTER_BASE_URL must be set for the http roster backend")
	}

	if len(c.Notify.CCAddresses) == 0 {
		return fmt.Errorf("at least one CC address is required")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
