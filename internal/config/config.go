package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/tablero/internal/analytics"
	"github.com/thenoetrevino/tablero/internal/export"
	"github.com/thenoetrevino/tablero/internal/filter"
)

// Environment overrides
const (
	EnvDatabase  = "TABLERO_DB"
	EnvUser      = "TABLERO_USER"
	EnvThemeFile = "TABLERO_THEME_FILE"
)

// Defaults
const (
	DefaultServerAddr   = "127.0.0.1:7420"
	DefaultLogLevel     = "info"
	DefaultDailyTarget  = 5
	DefaultWeeklyTarget = 25
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig  `yaml:"database"`
	Server      ServerConfig    `yaml:"server"`
	User        UserConfig      `yaml:"user"`
	Logging     LoggingConfig   `yaml:"logging"`
	Dashboard   DashboardConfig `yaml:"dashboard"`
	ColorScheme ColorScheme     `yaml:"theme"`
}

// DatabaseConfig locates the SQLite file ("" = ~/.tablero/tablero.db)
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig configures `tablero serve`
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// UserConfig names the active user ("" = OS username)
type UserConfig struct {
	Active string `yaml:"active"`
}

// LoggingConfig sets the log level and directory ("" = ~/.tablero/logs)
type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// DashboardConfig holds the dashboard preferences
type DashboardConfig struct {
	DefaultDateRange   string          `yaml:"default_date_range"`
	DefaultQuickFilter string          `yaml:"default_quick_filter"`
	PersonalTargets    PersonalTargets `yaml:"personal_targets"`
	Layout             DashboardLayout `yaml:"layout"`
}

// PersonalTargets are completion goals for the active user
type PersonalTargets struct {
	Daily  int `yaml:"daily"`
	Weekly int `yaml:"weekly"`
}

// DashboardLayout toggles dashboard sections. Pointers tell an explicit
// false apart from an unset field.
type DashboardLayout struct {
	ShowTeamPerformance    *bool `yaml:"show_team_performance"`
	ShowTimeInsights       *bool `yaml:"show_time_insights"`
	ShowActionableInsights *bool `yaml:"show_actionable_insights"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		c := Default()
		c.applyEnv()
		return c, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the config file at path, falling back to defaults when
// it does not exist
func LoadFrom(path string) (*Config, error) {
	var c Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	loadThemeFile(&c)
	c.applyDefaults()
	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config as YAML to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Path returns the path to the config file
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tablero", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tablero", "config.yaml"), nil
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	var errs []error
	if _, err := analytics.ParseDateRange(c.Dashboard.DefaultDateRange); err != nil {
		errs = append(errs, fmt.Errorf("dashboard.default_date_range: %w", err))
	}
	if _, err := filter.ParseQuickFilter(c.Dashboard.DefaultQuickFilter); err != nil {
		errs = append(errs, fmt.Errorf("dashboard.default_quick_filter: %w", err))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	if c.Dashboard.PersonalTargets.Daily < 0 || c.Dashboard.PersonalTargets.Weekly < 0 {
		errs = append(errs, errors.New("dashboard.personal_targets: targets cannot be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// DateRange returns the parsed default date range
func (d DashboardConfig) DateRange() analytics.DateRange {
	r, err := analytics.ParseDateRange(d.DefaultDateRange)
	if err != nil {
		return analytics.RangeWeek
	}
	return r
}

// QuickFilter returns the parsed default quick filter
func (d DashboardConfig) QuickFilter() filter.QuickFilter {
	q, err := filter.ParseQuickFilter(d.DefaultQuickFilter)
	if err != nil {
		return filter.QuickAll
	}
	return q
}

// ReportLayout turns the show_* toggles into the report layout. An unset
// toggle shows its sections.
func (d DashboardConfig) ReportLayout() export.Layout {
	hidden := func(show *bool) bool { return show != nil && !*show }
	return export.Layout{
		HideTeamPerformance:    hidden(d.Layout.ShowTeamPerformance),
		HideTimeInsights:       hidden(d.Layout.ShowTimeInsights),
		HideActionableInsights: hidden(d.Layout.ShowActionableInsights),
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Dashboard.DefaultDateRange == "" {
		c.Dashboard.DefaultDateRange = string(analytics.RangeWeek)
	}
	if c.Dashboard.DefaultQuickFilter == "" {
		c.Dashboard.DefaultQuickFilter = string(filter.QuickAll)
	}
	if c.Dashboard.PersonalTargets.Daily == 0 {
		c.Dashboard.PersonalTargets.Daily = DefaultDailyTarget
	}
	if c.Dashboard.PersonalTargets.Weekly == 0 {
		c.Dashboard.PersonalTargets.Weekly = DefaultWeeklyTarget
	}
	c.Dashboard.Layout.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}

func (l *DashboardLayout) applyDefaults() {
	for _, p := range []**bool{&l.ShowTeamPerformance, &l.ShowTimeInsights, &l.ShowActionableInsights} {
		if *p == nil {
			on := true
			*p = &on
		}
	}
}

// applyEnv lets TABLERO_DB and TABLERO_USER override the file
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvUser); v != "" {
		c.User.Active = v
	}
}
