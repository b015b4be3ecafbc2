package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the default config file looked up in the working directory
const ConfigFileName = "nutri-dash.yaml"

// Dataset sources
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
	SourceURL    = "url"
)

// ValidSources lists the accepted dataset.source values
var ValidSources = []string{SourceCSV, SourceSQLite, SourceURL}

// Config holds all nutri-dash configuration
type Config struct {
	Dataset DatasetConfig `yaml:"dataset"`
	Server  ServerConfig  `yaml:"server"`
	Render  RenderConfig  `yaml:"render"`
}

// DatasetConfig says where the food table comes from
type DatasetConfig struct {
	Source         string `yaml:"source"`
	Path           string `yaml:"path"`
	DBPath         string `yaml:"db_path"`
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RenderConfig holds SVG chart dimensions
type RenderConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Timeout returns the remote fetch timeout.
func (d DatasetConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadFromPath reads config from a specific path.
// A missing file yields defaults; otherwise the file is merged with defaults
// and validated.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())
	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// Validate checks that config values are valid.
func Validate(cfg *Config) error {
	if !IsValidSource(cfg.Dataset.Source) {
		return fmt.Errorf("%w: dataset.source must be one of %v, got %q",
			ErrInvalidConfig, ValidSources, cfg.Dataset.Source)
	}

	switch cfg.Dataset.Source {
	case SourceCSV:
		if cfg.Dataset.Path == "" {
			return fmt.Errorf("%w: dataset.path is required for csv source", ErrInvalidConfig)
		}
	case SourceSQLite:
		if cfg.Dataset.DBPath == "" {
			return fmt.Errorf("%w: dataset.db_path is required for sqlite source", ErrInvalidConfig)
		}
	case SourceURL:
		if cfg.Dataset.URL == "" {
			return fmt.Errorf("%w: dataset.url is required for url source", ErrInvalidConfig)
		}
	}

	if cfg.Dataset.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: dataset.timeout_seconds must be positive, got %d",
			ErrInvalidConfig, cfg.Dataset.TimeoutSeconds)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port must be between 1 and 65535, got %d",
			ErrInvalidConfig, cfg.Server.Port)
	}

	if cfg.Render.Width < 200 || cfg.Render.Height < 200 {
		return fmt.Errorf("%w: render width and height must be at least 200, got %dx%d",
			ErrInvalidConfig, cfg.Render.Width, cfg.Render.Height)
	}

	return nil
}

// IsValidSource reports whether s names a supported dataset source.
func IsValidSource(s string) bool {
	for _, v := range ValidSources {
		if v == s {
			return true
		}
	}
	return false
}

// SaveDefault writes the default configuration to path.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	header := "# nutri-dash configuration\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
