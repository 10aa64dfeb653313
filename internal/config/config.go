// Package config handles configuration management using Viper
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/phanxgames/arbor"
)

// Config represents the application configuration
type Config struct {
	// Debug enables arbor debug checks and focus traces
	Debug bool `mapstructure:"debug"`

	// Logging configuration
	Log LogConfig `mapstructure:"log"`

	// Pointer gesture tuning
	Pointer PointerConfig `mapstructure:"pointer"`

	// Viewer window
	View ViewConfig `mapstructure:"view"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// PointerConfig contains gesture translation settings
type PointerConfig struct {
	DoubleClickMsec     int     `mapstructure:"double_click_ms"`
	DoubleClickDistance float64 `mapstructure:"double_click_distance"` // pixels
}

// ViewConfig contains viewer window settings
type ViewConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
	TPS    int    `mapstructure:"tps"`
}

// RootConfig converts the pointer settings for arbor.NewRoot.
func (c *Config) RootConfig() arbor.RootConfig {
	return arbor.RootConfig{
		DoubleClickInterval: time.Duration(c.Pointer.DoubleClickMsec) * time.Millisecond,
		DoubleClickDistance: c.Pointer.DoubleClickDistance,
	}
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Debug: false,
		Log: LogConfig{
			Level: "info",
		},
		Pointer: PointerConfig{
			DoubleClickMsec:     400,
			DoubleClickDistance: 4,
		},
		View: ViewConfig{
			Width:  800,
			Height: 600,
			Title:  "arbor",
			TPS:    60,
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// EnvPrefix is the prefix of environment overrides, e.g. ARBOR_LOG_LEVEL.
const EnvPrefix = "ARBOR"

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("arbor")
	viper.SetConfigType("toml")

	// If a specific path is set, use only that
	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		// Add config paths in order of precedence
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			viper.AddConfigPath(filepath.Join(xdg, "arbor"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arbor"))
		}
		viper.AddConfigPath(".") // Current directory (lowest priority)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults - need to set individual fields for proper merging
	viper.SetDefault("debug", DefaultConfig.Debug)
	viper.SetDefault("log.level", DefaultConfig.Log.Level)
	viper.SetDefault("pointer.double_click_ms", DefaultConfig.Pointer.DoubleClickMsec)
	viper.SetDefault("pointer.double_click_distance", DefaultConfig.Pointer.DoubleClickDistance)
	viper.SetDefault("view.width", DefaultConfig.View.Width)
	viper.SetDefault("view.height", DefaultConfig.View.Height)
	viper.SetDefault("view.title", DefaultConfig.View.Title)
	viper.SetDefault("view.tps", DefaultConfig.View.TPS)

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

// Validate rejects settings that cannot drive a viewer or a root.
func (c *Config) Validate() error {
	if c.Pointer.DoubleClickMsec < 0 {
		return fmt.Errorf("pointer.double_click_ms must not be negative, got %d", c.Pointer.DoubleClickMsec)
	}
	if c.Pointer.DoubleClickDistance < 0 {
		return fmt.Errorf("pointer.double_click_distance must not be negative, got %g", c.Pointer.DoubleClickDistance)
	}
	if c.View.Width <= 0 || c.View.Height <= 0 {
		return fmt.Errorf("view size must be positive, got %dx%d", c.View.Width, c.View.Height)
	}
	if c.View.TPS <= 0 {
		return fmt.Errorf("view.tps must be positive, got %d", c.View.TPS)
	}
	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Save writes the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	// If override is set, use that
	if configPathOverride != "" {
		return configPathOverride
	}

	// Check if config file is already loaded
	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "arbor", "arbor.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "arbor.toml"
	}
	return filepath.Join(home, ".config", "arbor", "arbor.toml")
}
