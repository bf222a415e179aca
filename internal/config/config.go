package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Unsplash UnsplashConfig `mapstructure:"unsplash"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// APIConfig holds moderation API configuration
type APIConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	PageSize int    `mapstructure:"page_size"`
}

// UnsplashConfig holds image search provider configuration
type UnsplashConfig struct {
	AccessKey string `mapstructure:"access_key"`
	PerPage   int    `mapstructure:"per_page"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:  "",
			PageSize: 10,
		},
		Unsplash: UnsplashConfig{
			AccessKey: "",
			PerPage:   20,
		},
		UI: UIConfig{
			Theme: "dark",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "storydesk", "storydesk.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "storydesk", "storydesk.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "storydesk")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "storydesk")
	}
}

// DefaultDataPath returns the directory for durable client state (session
// database, logs) for the current OS.
func DefaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "storydesk")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "storydesk")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("STORYDESK")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.API.PageSize <= 0 {
		cfg.API.PageSize = 10
	}
	if cfg.Unsplash.PerPage <= 0 {
		cfg.Unsplash.PerPage = 20
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("api.base_url", cfg.API.BaseURL)
	viper.Set("api.page_size", cfg.API.PageSize)
	viper.Set("unsplash.access_key", cfg.Unsplash.AccessKey)
	viper.Set("unsplash.per_page", cfg.Unsplash.PerPage)
	viper.Set("ui.theme", cfg.UI.Theme)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveTheme updates just the UI theme preference in the configuration.
func SaveTheme(theme string) error {
	viper.Set("ui.theme", theme)

	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the moderation API base URL is set
func (c *Config) IsConfigured() bool {
	return c.API.BaseURL != ""
}
