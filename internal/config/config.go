package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Paths    PathsConfig    `mapstructure:"paths"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Log      LogConfig      `mapstructure:"log"`
}

// PathsConfig locates inputs and outputs
type PathsConfig struct {
	LookupDir        string `mapstructure:"lookup_dir"`
	SettingsFile     string `mapstructure:"settings_file"`
	IndexTemplate    string `mapstructure:"index_template"`    // empty = embedded default
	ArtLinksTemplate string `mapstructure:"artlinks_template"` // empty = embedded default
	IndexOutput      string `mapstructure:"index_output"`
	ArtLinksOutput   string `mapstructure:"artlinks_output"`
}

// ScheduleConfig tunes the calendar facts shown on the page
type ScheduleConfig struct {
	Timezone           string `mapstructure:"timezone"`
	CleaningCount      int    `mapstructure:"cleaning_count"`
	TempleSearchMonths int    `mapstructure:"temple_search_months"`
	TempleDayTitle     string `mapstructure:"temple_day_title"`
}

// WatchConfig represents watch mode configuration
type WatchConfig struct {
	Debounce  string `mapstructure:"debounce"`
	DailyTime string `mapstructure:"daily_time"` // HH:MM in schedule.timezone
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

const envPrefix = "WARD"

func setDefaults(v *viper.Viper) {
	v.SetDefault("paths.lookup_dir", "lookup")
	v.SetDefault("paths.settings_file", "settings.yaml")
	v.SetDefault("paths.index_template", "")
	v.SetDefault("paths.artlinks_template", "")
	v.SetDefault("paths.index_output", "index.html")
	v.SetDefault("paths.artlinks_output", "artlinks.html")

	v.SetDefault("schedule.timezone", "America/Chicago")
	v.SetDefault("schedule.cleaning_count", 3)
	v.SetDefault("schedule.temple_search_months", 24)
	v.SetDefault("schedule.temple_day_title", "Next ward temple day: ")

	v.SetDefault("watch.debounce", "500ms")
	v.SetDefault("watch.daily_time", "00:05")

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load loads configuration from file.
// With an empty configPath a missing config.yaml is fine: defaults and
// WARD_* environment variables are used.
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.ward-program")
	}

	// Read environment variables
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.LookupDir == "" {
		errs = append(errs, errors.New("paths.lookup_dir is required"))
	}
	if c.Paths.SettingsFile == "" {
		errs = append(errs, errors.New("paths.settings_file is required"))
	}
	if c.Paths.IndexOutput == "" || c.Paths.ArtLinksOutput == "" {
		errs = append(errs, errors.New("paths.index_output and paths.artlinks_output are required"))
	}
	if c.Paths.IndexOutput != "" && filepath.Clean(c.Paths.IndexOutput) == filepath.Clean(c.Paths.ArtLinksOutput) {
		errs = append(errs, fmt.Errorf("paths.index_output and paths.artlinks_output are both %q", c.Paths.IndexOutput))
	}

	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("schedule.timezone %q: %w", c.Schedule.Timezone, err))
	}
	if c.Schedule.CleaningCount < 0 {
		errs = append(errs, fmt.Errorf("schedule.cleaning_count must not be negative, got %d", c.Schedule.CleaningCount))
	}
	if c.Schedule.TempleSearchMonths < 1 || c.Schedule.TempleSearchMonths > 120 {
		errs = append(errs, fmt.Errorf("schedule.temple_search_months must be between 1 and 120, got %d", c.Schedule.TempleSearchMonths))
	}

	if c.Watch.Debounce != "" {
		if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
			errs = append(errs, fmt.Errorf("watch.debounce %q: %w", c.Watch.Debounce, err))
		}
	}
	if c.Watch.DailyTime != "" {
		if _, _, err := parseClock(c.Watch.DailyTime); err != nil {
			errs = append(errs, fmt.Errorf("watch.daily_time: %w", err))
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", c.Log.Level))
	}

	return errors.Join(errs...)
}

// GetLocation returns the configured timezone, falling back to local time
func (c *ScheduleConfig) GetLocation() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetDebounce returns how long the watcher waits for a burst of file events to settle
func (c *WatchConfig) GetDebounce() time.Duration {
	if c.Debounce == "" {
		return 500 * time.Millisecond
	}
	duration, err := time.ParseDuration(c.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return duration
}

// GetDailyTime returns the configured daily rebuild time.
// Returns hour and minute (0-23, 0-59). Default: 00:05
func (c *WatchConfig) GetDailyTime() (hour, minute int) {
	if c.DailyTime == "" {
		return 0, 5
	}
	h, m, err := parseClock(c.DailyTime)
	if err != nil {
		return 0, 5
	}
	return h, m
}

func parseClock(s string) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("%q is not HH:MM", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%q is out of range", s)
	}
	return hour, minute, nil
}

// ExpandEnvVars expands environment variables in path settings
func (c *Config) ExpandEnvVars() {
	c.Paths.LookupDir = os.ExpandEnv(c.Paths.LookupDir)
	c.Paths.SettingsFile = os.ExpandEnv(c.Paths.SettingsFile)
	c.Paths.IndexTemplate = os.ExpandEnv(c.Paths.IndexTemplate)
	c.Paths.ArtLinksTemplate = os.ExpandEnv(c.Paths.ArtLinksTemplate)
	c.Paths.IndexOutput = os.ExpandEnv(c.Paths.IndexOutput)
	c.Paths.ArtLinksOutput = os.ExpandEnv(c.Paths.ArtLinksOutput)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
