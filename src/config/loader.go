package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Loader handles loading and merging configurations from multiple sources
type Loader struct {
	precedence ConfigPrecedence
	validator  *Validator
}

// NewLoader creates a new configuration loader
func NewLoader(precedence ConfigPrecedence) *Loader {
	return &Loader{
		precedence: precedence,
		validator:  NewValidator(),
	}
}

// Load loads configuration from all sources and merges them
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	sources := []struct {
		path   string
		source ConfigSource
	}{
		{l.precedence.UserConfig, SourceUser},
		{l.precedence.ProjectConfig, SourceProject},
		{l.precedence.LocalConfig, SourceLocal},
	}

	for _, src := range sources {
		if src.path == "" {
			continue
		}

		if cfg, err := l.loadFile(src.path); err == nil {
			config = l.mergeConfigs(config, cfg)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s config from %s: %w", src.source, src.path, err)
		}
	}

	if l.precedence.EnvironmentPrefix != "" {
		l.applyEnvironmentOverrides(config)
	}

	if err := l.validator.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFile loads a single configuration file
func (l *Loader) loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &config, nil
}

// SaveFile saves configuration to a file
func (l *Loader) SaveFile(config *Config, path string) error {
	if err := l.validator.Validate(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// mergeConfigs merges two configurations with the second taking precedence
func (l *Loader) mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}

	result.Model = l.mergeModelConfig(result.Model, override.Model)
	result.Search = l.mergeSearchConfig(result.Search, override.Search)
	result.Email = l.mergeEmailConfig(result.Email, override.Email)

	if override.Storage.DatabasePath != "" {
		result.Storage.DatabasePath = override.Storage.DatabasePath
	}

	if override.Logging.Level != "" {
		result.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		result.Logging.Format = override.Logging.Format
	}
	if override.Logging.File != "" {
		result.Logging.File = override.Logging.File
	}

	return &result
}

func (l *Loader) mergeModelConfig(base, override ModelConfig) ModelConfig {
	result := base

	if override.Provider != "" {
		result.Provider = override.Provider
	}
	if override.BaseURL != "" {
		result.BaseURL = override.BaseURL
	}
	if override.APIKey != "" {
		result.APIKey = override.APIKey
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	if override.Temperature != 0 {
		result.Temperature = override.Temperature
	}
	if override.MaxRetries != 0 {
		result.MaxRetries = override.MaxRetries
	}
	if override.RetryDelayMs != 0 {
		result.RetryDelayMs = override.RetryDelayMs
	}
	if override.TimeoutSeconds != 0 {
		result.TimeoutSeconds = override.TimeoutSeconds
	}

	return result
}

func (l *Loader) mergeSearchConfig(base, override SearchConfig) SearchConfig {
	result := base

	if override.APIKey != "" {
		result.APIKey = override.APIKey
	}
	if override.BaseURL != "" {
		result.BaseURL = override.BaseURL
	}
	if override.Currency != "" {
		result.Currency = override.Currency
	}
	if override.TimeoutSeconds != 0 {
		result.TimeoutSeconds = override.TimeoutSeconds
	}
	if override.AirportDataPath != "" {
		result.AirportDataPath = override.AirportDataPath
	}

	return result
}

func (l *Loader) mergeEmailConfig(base, override EmailConfig) EmailConfig {
	result := base

	if override.APIKey != "" {
		result.APIKey = override.APIKey
	}
	if override.BaseURL != "" {
		result.BaseURL = override.BaseURL
	}
	if override.FromAddress != "" {
		result.FromAddress = override.FromAddress
	}
	if override.FromName != "" {
		result.FromName = override.FromName
	}
	if override.DefaultRecipient != "" {
		result.DefaultRecipient = override.DefaultRecipient
	}

	return result
}

// applyEnvironmentOverrides applies environment variable overrides to config.
// Provider-native variables (GROQ_API_KEY, SERPAPI_API_KEY, SENDGRID_API_KEY)
// are honored alongside the prefixed ones.
func (l *Loader) applyEnvironmentOverrides(config *Config) {
	prefix := l.precedence.EnvironmentPrefix

	if apiKey := os.Getenv(prefix + "_MODEL_API_KEY"); apiKey != "" {
		config.Model.APIKey = apiKey
	}
	if config.Model.APIKey == "" {
		if apiKey := os.Getenv("GROQ_API_KEY"); apiKey != "" {
			config.Model.APIKey = apiKey
		}
	}

	if apiKey := os.Getenv(prefix + "_SEARCH_API_KEY"); apiKey != "" {
		config.Search.APIKey = apiKey
	}
	if config.Search.APIKey == "" {
		if apiKey := os.Getenv("SERPAPI_API_KEY"); apiKey != "" {
			config.Search.APIKey = apiKey
		}
	}

	if apiKey := os.Getenv(prefix + "_EMAIL_API_KEY"); apiKey != "" {
		config.Email.APIKey = apiKey
	}
	if config.Email.APIKey == "" {
		if apiKey := os.Getenv("SENDGRID_API_KEY"); apiKey != "" {
			config.Email.APIKey = apiKey
		}
	}

	if model := os.Getenv(prefix + "_MODEL"); model != "" {
		config.Model.Model = model
	}
	if baseURL := os.Getenv(prefix + "_MODEL_BASE_URL"); baseURL != "" {
		config.Model.BaseURL = baseURL
	}
	if from := os.Getenv(prefix + "_EMAIL_FROM"); from != "" {
		config.Email.FromAddress = from
	}
	if to := os.Getenv(prefix + "_EMAIL_TO"); to != "" {
		config.Email.DefaultRecipient = to
	}
	if dbPath := os.Getenv(prefix + "_DB_PATH"); dbPath != "" {
		config.Storage.DatabasePath = dbPath
	}
	if level := os.Getenv(prefix + "_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// FindConfigFile searches for a configuration file in standard locations
func FindConfigFile() (string, error) {
	paths := GetConfigPaths()

	checkPaths := []string{
		paths.LocalConfig,
		paths.ProjectConfig,
		paths.UserConfig,
	}

	for _, path := range checkPaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no configuration file found")
}
