// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/arashpm/courseplan/internal/course"
)

// Config holds the application configuration.
type Config struct {
	Planner PlannerConfig `toml:"planner"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// PlannerConfig holds the weekly window settings.
type PlannerConfig struct {
	DayStart string   `toml:"day_start"` // e.g., "08:00"
	DayEnd   string   `toml:"day_end"`   // e.g., "20:00"
	Weekdays []string `toml:"weekdays"`  // the five planning days, in grid order
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	Backend  string `toml:"backend"` // "sqlite" or "json"
	DBPath   string `toml:"db_path"`
	FilePath string `toml:"file_path"`
}

// UIConfig holds terminal output settings.
type UIConfig struct {
	Color bool `toml:"color"`
}

// Default returns the default configuration. The default week runs
// Saturday through Wednesday, the planner's original locale.
func Default() *Config {
	return &Config{
		Planner: PlannerConfig{
			DayStart: "08:00",
			DayEnd:   "20:00",
			Weekdays: []string{"saturday", "sunday", "monday", "tuesday", "wednesday"},
		},
		Storage: StorageConfig{
			Backend:  "sqlite",
			DBPath:   defaultDataPath("courseplan.db"),
			FilePath: defaultDataPath("courses.json"),
		},
		UI: UIConfig{
			Color: true,
		},
	}
}

func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".local", "share", "courseplan", name)
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "courseplan", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Storage.FilePath = expandPath(cfg.Storage.FilePath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COURSEPLAN_DAY_START"); v != "" {
		cfg.Planner.DayStart = v
	}
	if v := os.Getenv("COURSEPLAN_DAY_END"); v != "" {
		cfg.Planner.DayEnd = v
	}
	if v := os.Getenv("COURSEPLAN_WEEKDAYS"); v != "" {
		cfg.Planner.Weekdays = strings.Split(v, ",")
	}
	if v := os.Getenv("COURSEPLAN_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("COURSEPLAN_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("COURSEPLAN_FILE_PATH"); v != "" {
		cfg.Storage.FilePath = v
	}
	if v := os.Getenv("COURSEPLAN_NO_COLOR"); v != "" {
		cfg.UI.Color = false
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Planner.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Planner.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Planner.DayStart >= c.Planner.DayEnd {
		return errors.New("day_start must be before day_end")
	}

	if len(c.Planner.Weekdays) != 5 {
		return errors.New("exactly five weekdays must be configured")
	}
	seen := make(map[string]bool, len(c.Planner.Weekdays))
	for _, day := range c.Planner.Weekdays {
		name := strings.ToLower(day)
		if !validWeekdays[name] {
			return fmt.Errorf("invalid weekday: %s", day)
		}
		if seen[name] {
			return fmt.Errorf("duplicate weekday: %s", day)
		}
		seen[name] = true
	}

	switch c.Storage.Backend {
	case "sqlite":
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set")
		}
	case "json":
		if c.Storage.FilePath == "" {
			return errors.New("file_path must be set")
		}
	default:
		return fmt.Errorf("storage backend must be %q or %q, got %q", "sqlite", "json", c.Storage.Backend)
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	hour := t[0:2]
	min := t[3:5]
	if !isDigits(hour) || !isDigits(min) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

var validWeekdays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

// Week returns the configured planning days in grid order.
func (c *Config) Week() []course.Weekday {
	week := make([]course.Weekday, len(c.Planner.Weekdays))
	for i, d := range c.Planner.Weekdays {
		week[i] = course.Weekday(strings.ToLower(d))
	}
	return week
}

// DayIndex returns the grid column (0..4) for a weekday, or -1 when the
// day is not part of the configured week.
func (c *Config) DayIndex(day course.Weekday) int {
	for i, d := range c.Week() {
		if d == day {
			return i
		}
	}
	return -1
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
