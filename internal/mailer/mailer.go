// Package mailer sends transactional email through a Brevo-compatible REST
// API. Only the /smtp/email endpoint is used.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/minima-hotel/backoffice-api/internal/config"
	"go.uber.org/zap"
)

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Message is one outbound email.
type Message struct {
	To          string
	ToName      string
	Subject     string
	HTMLContent string
}

// Client talks to the provider's REST API.
type Client struct {
	baseURL     string
	apiKey      string
	senderName  string
	senderEmail string
	httpClient  *http.Client
	logger      *zap.Logger
}

func NewClient(cfg *config.MailConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		senderName:  cfg.SenderName,
		senderEmail: cfg.SenderEmail,
		httpClient:  &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:      logger,
	}
}

type sendRequest struct {
	Sender      party   `json:"sender"`
	To          []party `json:"to"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"htmlContent"`
}

type party struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Send posts the message to the provider. Non-2xx responses are returned as
// errors with the provider's body included for diagnosis.
func (c *Client) Send(ctx context.Context, msg *Message) error {
	payload := sendRequest{
		Sender:      party{Name: c.senderName, Email: c.senderEmail},
		To:          []party{{Name: msg.ToName, Email: msg.To}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTMLContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/smtp/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("mail provider rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("to", msg.To),
		)
		return fmt.Errorf("mail provider returned status %d: %s", resp.StatusCode, string(respBody))
	}

	c.logger.Info("email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
