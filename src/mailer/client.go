// Package mailer delivers itineraries by email through the SendGrid v3 API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.sendgrid.com"
	defaultTimeout = 15 * time.Second
)

// ErrNoAPIKey is returned when a client is constructed without credentials.
var ErrNoAPIKey = errors.New("no sendgrid api key provided")

// Config holds client configuration.
type Config struct {
	APIKey      string
	BaseURL     string
	FromAddress string
	FromName    string
	Timeout     time.Duration
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

// Client sends mail through SendGrid. Safe for concurrent use.
type Client struct {
	apiKey      string
	baseURL     string
	fromAddress string
	fromName    string
	timeout     time.Duration
	httpClient  *http.Client
	logger      *slog.Logger
}

// Message is one outbound email. HTMLBody is sanitized before sending and a
// text/plain alternative is derived from it.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// NewClient creates a mail client from config.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		timeout:     cfg.Timeout,
		httpClient:  cfg.HTTPClient,
		logger:      cfg.Logger.With("component", "mailer"),
	}, nil
}

// sendgrid v3 mail/send request body
type mailSendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []mailContent     `json:"content"`
}

type personalization struct {
	To []emailAddress `json:"to"`
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Send sanitizes the HTML body, derives the plain-text part, and submits the
// message. Failures are safe to retry; nothing is consumed from the caller.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("message has no recipient")
	}

	html, err := SanitizeHTML(msg.HTMLBody)
	if err != nil {
		return err
	}
	plain, err := PlainText(html)
	if err != nil {
		return err
	}

	// the plain part must precede the html part per the v3 API
	reqBody := mailSendRequest{
		Personalizations: []personalization{{To: []emailAddress{{Email: msg.To}}}},
		From:             emailAddress{Email: c.fromAddress, Name: c.fromName},
		Subject:          msg.Subject,
		Content: []mailContent{
			{Type: "text/plain", Value: plain},
			{Type: "text/html", Value: html},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/mail/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("mail send returned status %d: %s", resp.StatusCode, string(body))
	}

	c.logger.Info("mail delivered", "to", msg.To, "subject", msg.Subject, "status", resp.StatusCode)
	return nil
}
