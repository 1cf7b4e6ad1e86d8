package config

// DefaultConfig returns the built-in configuration that file and environment
// layers override.
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Model: ModelConfig{
			Provider:       "groq",
			BaseURL:        "https://api.groq.com/openai/v1",
			Model:          "llama-3.3-70b-versatile",
			Temperature:    0.7,
			MaxRetries:     3,
			RetryDelayMs:   1000,
			TimeoutSeconds: 30,
		},
		Search: SearchConfig{
			BaseURL:        "https://serpapi.com",
			Currency:       "USD",
			TimeoutSeconds: 20,
		},
		Email: EmailConfig{
			BaseURL:     "https://api.sendgrid.com",
			FromAddress: "itineraries@voyagent.dev",
			FromName:    "Voyagent",
		},
		Storage: StorageConfig{
			DatabasePath: DefaultDatabasePath(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
