package groqclient

import (
	"log/slog"
	"time"
)

// Config holds the configuration for the Groq API client.
type Config struct {
	APIKey     string
	BaseURL    string
	RetryCount int
	RetryDelay time.Duration
	Timeout    time.Duration
	Logger     *slog.Logger
}
