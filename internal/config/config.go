package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/DoyleJ11/solar-dashboard/internal/engine"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Schedule ScheduleConfig
	UI       UIConfig
	Log      LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Addr string
}

// DataConfig says where report files are read from. BaseURL wins over Root.
type DataConfig struct {
	Root         string
	BaseURL      string
	WatchReports bool
	FetchTimeout time.Duration
}

// ScheduleConfig holds report refresh settings
type ScheduleConfig struct {
	PollPage     string
	PollInterval time.Duration
	BlogSlugs    []string
}

// UIConfig holds page behaviour settings
type UIConfig struct {
	ScrollThreshold int
	SubmitDelay     time.Duration
	ResetDelay      time.Duration
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string
	Dev   bool
}

const defaultSlugs = "solar-roi-for-industrial-clients"

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Addr: getEnvOrDefault("ADDR", ":8080"),
		},
		Data: DataConfig{
			Root:         getEnvOrDefault("DATA_ROOT", "."),
			BaseURL:      getEnvOrDefault("DATA_BASE_URL", ""),
			WatchReports: getEnvBoolOrDefault("WATCH_REPORTS", false),
			FetchTimeout: getEnvDurationOrDefault("FETCH_TIMEOUT", 10*time.Second),
		},
		Schedule: ScheduleConfig{
			PollPage:     getEnvOrDefault("POLL_PAGE", engine.PageDashboard),
			PollInterval: getEnvDurationOrDefault("POLL_INTERVAL", 30*time.Second),
			BlogSlugs:    splitList(getEnvOrDefault("BLOG_SLUGS", defaultSlugs)),
		},
		UI: UIConfig{
			ScrollThreshold: getEnvIntOrDefault("SCROLL_THRESHOLD", 50),
			SubmitDelay:     getEnvDurationOrDefault("SUBMIT_DELAY", 2*time.Second),
			ResetDelay:      getEnvDurationOrDefault("RESET_DELAY", 5*time.Second),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
			Dev:   getEnvBoolOrDefault("LOG_DEV", false),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Addr == "" {
		return errors.New("ADDR is required")
	}
	if config.Data.BaseURL != "" {
		u, err := url.Parse(config.Data.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("DATA_BASE_URL must be an http(s) URL, got %q", config.Data.BaseURL)
		}
	}
	if !slices.Contains(engine.Pages(), config.Schedule.PollPage) {
		return fmt.Errorf("POLL_PAGE %q is not a known page", config.Schedule.PollPage)
	}
	if config.Schedule.PollInterval <= 0 {
		return errors.New("POLL_INTERVAL must be positive")
	}
	if config.Data.FetchTimeout <= 0 {
		return errors.New("FETCH_TIMEOUT must be positive")
	}
	if config.UI.SubmitDelay < 0 || config.UI.ResetDelay < 0 {
		return errors.New("form delays must not be negative")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
