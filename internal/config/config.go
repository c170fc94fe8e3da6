package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"gopkg.in/yaml.v3"
)

const appName = "planner"

// ErrInvalidConfig indicates a config value outside its allowed range
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	DataDir     string      `yaml:"data_dir"`
	LogLevel    string      `yaml:"log_level"`
	Workflow    Workflow    `yaml:"workflow"`
	Events      Events      `yaml:"events"`
	ColorScheme ColorScheme `yaml:"theme"`
}

// Workflow holds the defaults stamped onto items as they change stage
type Workflow struct {
	DefaultProductionStatus string `yaml:"default_production_status"`
	DefaultStartTime        string `yaml:"default_start_time"`
	SlotMinutes             int    `yaml:"slot_minutes"`
}

// Events tunes the change bus and the journal other processes follow
type Events struct {
	BufferSize     int `yaml:"buffer_size"`
	PublishRetries int `yaml:"publish_retries"`
	PollIntervalMs int `yaml:"poll_interval_ms"`
}

// PollInterval returns how often long-lived views read the event journal
func (e Events) PollInterval() time.Duration {
	return time.Duration(e.PollIntervalMs) * time.Millisecond
}

// Slot returns the default scheduled slot length
func (w Workflow) Slot() time.Duration {
	return time.Duration(w.SlotMinutes) * time.Minute
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// loadThemeFile merges the theme from PLANNER_THEME_FILE when set
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("PLANNER_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// Load loads config from PLANNER_CONFIG_FILE or the user's config directory.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		// Return default config if we can't determine config path
		config := &Config{}
		loadThemeFile(config)
		config.applyDefaults()
		return config, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads config from an explicit path
func LoadFrom(configPath string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
		}
	}

	loadThemeFile(&config)
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Validate rejects values the workflow cannot run with
func (c *Config) Validate() error {
	if c.Workflow.SlotMinutes <= 0 || c.Workflow.SlotMinutes > 24*60 {
		return fmt.Errorf("%w: workflow.slot_minutes must be between 1 and 1440", ErrInvalidConfig)
	}
	if _, err := time.Parse("15:04", c.Workflow.DefaultStartTime); err != nil {
		return fmt.Errorf("%w: workflow.default_start_time must be HH:MM", ErrInvalidConfig)
	}
	if !models.IsProductionStatus(c.Workflow.DefaultProductionStatus) {
		return fmt.Errorf("%w: unknown workflow.default_production_status %q", ErrInvalidConfig, c.Workflow.DefaultProductionStatus)
	}
	if c.Events.BufferSize < 1 {
		return fmt.Errorf("%w: events.buffer_size must be positive", ErrInvalidConfig)
	}
	if c.Events.PollIntervalMs < 1 {
		return fmt.Errorf("%w: events.poll_interval_ms must be positive", ErrInvalidConfig)
	}
	return nil
}

// Path returns the path to the config file
func Path() (string, error) {
	if override := os.Getenv("PLANNER_CONFIG_FILE"); override != "" {
		return override, nil
	}

	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// defaultDataDir returns ~/.planner, or a temp dir when home is unknown
func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(homeDir, "."+appName)
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Workflow.DefaultProductionStatus == "" {
		c.Workflow.DefaultProductionStatus = models.DefaultProductionStatus
	}
	if c.Workflow.DefaultStartTime == "" {
		c.Workflow.DefaultStartTime = "09:00"
	}
	if c.Workflow.SlotMinutes == 0 {
		c.Workflow.SlotMinutes = 60
	}
	if c.Events.BufferSize == 0 {
		c.Events.BufferSize = 64
	}
	if c.Events.PublishRetries == 0 {
		c.Events.PublishRetries = 3
	}
	if c.Events.PollIntervalMs == 0 {
		c.Events.PollIntervalMs = 500
	}
	c.ColorScheme.ApplyDefaults()
}
