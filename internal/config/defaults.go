package config

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Source:         SourceCSV,
			Path:           "v1_veg.csv",
			DBPath:         "nutri-dash.db",
			TimeoutSeconds: 30,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8011,
		},
		Render: RenderConfig{
			Width:  800,
			Height: 500,
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
func Merge(loaded, defaults *Config) *Config {
	return &Config{
		Dataset: mergeDatasetConfig(loaded.Dataset, defaults.Dataset),
		Server:  mergeServerConfig(loaded.Server, defaults.Server),
		Render:  mergeRenderConfig(loaded.Render, defaults.Render),
	}
}

func mergeDatasetConfig(loaded, defaults DatasetConfig) DatasetConfig {
	result := defaults
	if loaded.Source != "" {
		result.Source = loaded.Source
	}
	if loaded.Path != "" {
		result.Path = loaded.Path
	}
	if loaded.DBPath != "" {
		result.DBPath = loaded.DBPath
	}
	if loaded.URL != "" {
		result.URL = loaded.URL
	}
	if loaded.TimeoutSeconds != 0 {
		result.TimeoutSeconds = loaded.TimeoutSeconds
	}
	return result
}

func mergeServerConfig(loaded, defaults ServerConfig) ServerConfig {
	result := defaults
	if loaded.Host != "" {
		result.Host = loaded.Host
	}
	if loaded.Port != 0 {
		result.Port = loaded.Port
	}
	return result
}

func mergeRenderConfig(loaded, defaults RenderConfig) RenderConfig {
	result := defaults
	if loaded.Width != 0 {
		result.Width = loaded.Width
	}
	if loaded.Height != 0 {
		result.Height = loaded.Height
	}
	return result
}
