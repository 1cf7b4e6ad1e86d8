// Package config loads, merges, and validates voyagent configuration from
// files and the environment.
package config

import "fmt"

// ConfigSource identifies where a configuration layer came from.
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceLocal   ConfigSource = "local"
	SourceEnv     ConfigSource = "environment"
)

// Config is the complete voyagent configuration.
type Config struct {
	Version string        `json:"version"`
	Model   ModelConfig   `json:"model"`
	Search  SearchConfig  `json:"search"`
	Email   EmailConfig   `json:"email"`
	Storage StorageConfig `json:"storage"`
	Logging LoggingConfig `json:"logging"`
}

// ModelConfig configures the chat-completion provider.
type ModelConfig struct {
	Provider    string  `json:"provider" validate:"omitempty,provider"`
	BaseURL     string  `json:"base_url" validate:"omitempty,url"`
	APIKey      string  `json:"api_key"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature" validate:"gte=0,lte=2"`
	MaxRetries  int     `json:"max_retries" validate:"gte=0,lte=10"`
	// RetryDelayMs is the base delay between retries; attempts back off
	// linearly from it.
	RetryDelayMs   int `json:"retry_delay_ms" validate:"gte=0"`
	TimeoutSeconds int `json:"timeout_seconds" validate:"gte=0,lte=600"`
}

// SearchConfig configures the flight and hotel search provider.
type SearchConfig struct {
	APIKey         string `json:"api_key"`
	BaseURL        string `json:"base_url" validate:"omitempty,url"`
	Currency       string `json:"currency" validate:"omitempty,len=3"`
	TimeoutSeconds int    `json:"timeout_seconds" validate:"gte=0,lte=600"`
	// AirportDataPath overrides the embedded airport dataset when set.
	AirportDataPath string `json:"airport_data_path"`
}

// EmailConfig configures itinerary delivery.
type EmailConfig struct {
	APIKey           string `json:"api_key"`
	BaseURL          string `json:"base_url" validate:"omitempty,url"`
	FromAddress      string `json:"from_address" validate:"omitempty,email"`
	FromName         string `json:"from_name"`
	DefaultRecipient string `json:"default_recipient" validate:"omitempty,email"`
}

// StorageConfig configures session persistence.
type StorageConfig struct {
	DatabasePath string `json:"database_path"`
}

// LoggingConfig configures diagnostic output.
type LoggingConfig struct {
	Level  string `json:"level" validate:"omitempty,log_level"`
	Format string `json:"format" validate:"omitempty,log_format"`
	File   string `json:"file"`
}

// ConfigPrecedence lists the file layers merged into the final config, in
// ascending precedence, plus the env var prefix applied on top.
type ConfigPrecedence struct {
	UserConfig        string
	ProjectConfig     string
	LocalConfig       string
	EnvironmentPrefix string
}

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config field %s: %s", e.Field, e.Message)
}
