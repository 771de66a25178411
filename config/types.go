package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDB      TMDBConfig      `mapstructure:"tmdb"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Watchlist WatchlistConfig `mapstructure:"watchlist"`
	Filter    FilterConfig    `mapstructure:"filter"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// TMDBConfig holds TMDB API connection details
type TMDBConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// GeminiConfig holds the settings for AI generated commentary
type GeminiConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float32       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Active reports whether Gemini should be called at all
func (g GeminiConfig) Active() bool {
	return g.Enabled && g.APIKey != ""
}

// WatchlistConfig controls where the watchlist is persisted
type WatchlistConfig struct {
	Dir string `mapstructure:"dir"`
	Key string `mapstructure:"key"`
}

// FilterConfig contains named watchlist filter expressions
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string        `mapstructure:"level"`
	Format string        `mapstructure:"format"`
	Color  bool          `mapstructure:"color"`
	File   LogFileConfig `mapstructure:"file"`
}

// LogFileConfig enables a rotating log file next to stderr output
type LogFileConfig struct {
	Path       string `mapstructure:"path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}
