package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "streampick"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Search  SearchConfig  `mapstructure:"search"`
	History HistoryConfig `mapstructure:"history"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds recommendation service configuration
type ServerConfig struct {
	URL     string        `mapstructure:"url"`     // Base URL, e.g. http://localhost:8000/api
	Timeout time.Duration `mapstructure:"timeout"` // 0 waits indefinitely
}

// SearchConfig holds search defaults
type SearchConfig struct {
	DefaultTitle string `mapstructure:"default_title"` // Searched on startup, empty to skip
	DefaultK     int    `mapstructure:"default_k"`
	KChoices     []int  `mapstructure:"k_choices"` // Values offered by the result-count selector
}

// HistoryConfig holds search history configuration
type HistoryConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	MaxEntries int    `mapstructure:"max_entries"`
	Dir        string `mapstructure:"dir"` // Empty keeps history in memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	CardWidth int    `mapstructure:"card_width"`
	Opener    string `mapstructure:"opener"` // Command used to open poster URLs, empty for system default
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:8000/api",
		},
		Search: SearchConfig{
			DefaultTitle: "Toy Story",
			DefaultK:     6,
			KChoices:     []int{3, 6, 9, 12},
		},
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: 200,
			Dir:        defaultCachePath(),
		},
		UI: UIConfig{
			CardWidth: 24,
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
		return filepath.Join(os.Getenv("APPDATA"), appName, appName+".log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, appName+".log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName, "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, "cache")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultConfigPath())
	v.AddConfigPath(".")
	return load(v)
}

// LoadConfigFile loads configuration from an explicit file path
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	// Environment variable overrides, e.g. STREAMPICK_SERVER_URL
	v.SetEnvPrefix("STREAMPICK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// never appear in the config file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("search.default_title", cfg.Search.DefaultTitle)
	v.SetDefault("search.default_k", cfg.Search.DefaultK)
	v.SetDefault("search.k_choices", cfg.Search.KChoices)
	v.SetDefault("history.enabled", cfg.History.Enabled)
	v.SetDefault("history.max_entries", cfg.History.MaxEntries)
	v.SetDefault("history.dir", cfg.History.Dir)
	v.SetDefault("ui.card_width", cfg.UI.CardWidth)
	v.SetDefault("ui.opener", cfg.UI.Opener)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate checks the configuration and normalizes the k selector so the
// default k is always one of the offered choices.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return errors.New("server.url is required")
	}
	if c.Search.DefaultK < 1 {
		return fmt.Errorf("search.default_k must be positive, got %d", c.Search.DefaultK)
	}
	for _, k := range c.Search.KChoices {
		if k < 1 {
			return fmt.Errorf("search.k_choices must be positive, got %d", k)
		}
	}
	if !slices.Contains(c.Search.KChoices, c.Search.DefaultK) {
		c.Search.KChoices = append(c.Search.KChoices, c.Search.DefaultK)
	}
	slices.Sort(c.Search.KChoices)
	c.Search.KChoices = slices.Compact(c.Search.KChoices)

	if c.UI.CardWidth < 12 {
		c.UI.CardWidth = 12
	}
	return nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return saveTo(cfg, filepath.Join(configPath, "config.yaml"))
}

func saveTo(cfg *Config, configFile string) error {
	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.timeout", cfg.Server.Timeout.String())

	v.Set("search.default_title", cfg.Search.DefaultTitle)
	v.Set("search.default_k", cfg.Search.DefaultK)
	v.Set("search.k_choices", cfg.Search.KChoices)

	v.Set("history.enabled", cfg.History.Enabled)
	v.Set("history.max_entries", cfg.History.MaxEntries)
	v.Set("history.dir", cfg.History.Dir)

	v.Set("ui.card_width", cfg.UI.CardWidth)
	v.Set("ui.opener", cfg.UI.Opener)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ClearCache removes all cached data
func ClearCache(cfg *Config) error {
	if cfg.History.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(cfg.History.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
