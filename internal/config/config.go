package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/hourline/internal/calendar"
)

const envPrefix = "HOURLINE_"

// RuntimeConfig holds every setting the cli and the TUI read at startup.
type RuntimeConfig struct {
	DBPath               string        `mapstructure:"db_path" yaml:"db_path"`
	WeekStart            string        `mapstructure:"week_start" yaml:"week_start"`
	ReminderTimeout      time.Duration `mapstructure:"reminder_timeout" yaml:"reminder_timeout"`
	SchedulerBuffer      int           `mapstructure:"scheduler_buffer" yaml:"scheduler_buffer"`
	DesktopNotifications bool          `mapstructure:"desktop_notifications" yaml:"desktop_notifications"`
	LogLevel             string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile              string        `mapstructure:"log_file" yaml:"log_file"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:               filepath.Join(DataDir(), "hourline.db"),
		WeekStart:            "sunday",
		ReminderTimeout:      5 * time.Second,
		SchedulerBuffer:      64,
		DesktopNotifications: false,
		LogLevel:             "info",
		LogFile:              "",
	}
}

// RuntimeConfigFromEnv applies HOURLINE_* overrides on top of base.
// Malformed values are ignored.
func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("WEEK_START"); ok {
		cfg.WeekStart = v
	}
	if v, ok := getEnvDuration("REMINDER_TIMEOUT"); ok && v > 0 {
		cfg.ReminderTimeout = v
	}
	if v, ok := getEnvInt("SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvBool("DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvString("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("LOG_FILE"); ok {
		cfg.LogFile = v
	}
	return cfg
}

// Validate rejects settings the application cannot start with.
func (c RuntimeConfig) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("config: db_path is required")
	}
	if _, err := c.FirstWeekday(); err != nil {
		return err
	}
	if c.ReminderTimeout <= 0 {
		return fmt.Errorf("config: reminder_timeout must be positive, got %s", c.ReminderTimeout)
	}
	if c.SchedulerBuffer <= 0 {
		return fmt.Errorf("config: scheduler_buffer must be positive, got %d", c.SchedulerBuffer)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func (c RuntimeConfig) FirstWeekday() (time.Weekday, error) {
	day, err := calendar.ParseWeekday(c.WeekStart)
	if err != nil {
		return time.Sunday, fmt.Errorf("config: week_start: %w", err)
	}
	return day, nil
}

// DataDir is where the database lives unless db_path says otherwise.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "hourline")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "hourline")
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(envPrefix + name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvDuration(name string) (time.Duration, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
