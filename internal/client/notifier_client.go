package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"postforge-api/internal/metrics"
)

// EmailMessage represents an outbound notification email
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	SentAt  string `json:"sentAt,omitempty"`
}

// NotifierClient defines the interface for the email notification
// service. Delivery is best effort: a failing notifier never fails the
// operation that triggered it.
type NotifierClient interface {
	SendEmail(ctx context.Context, message EmailMessage) error
}

// notifierClient implements NotifierClient interface
type notifierClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewNotifierClient creates a new notification service client
func NewNotifierClient(baseURL string, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) NotifierClient {
	return &notifierClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// SendEmail sends one email through the notification service
func (c *notifierClient) SendEmail(ctx context.Context, message EmailMessage) error {
	url := fmt.Sprintf("%s/api/internal/emails", c.baseURL)

	if message.SentAt == "" {
		message.SentAt = time.Now().UTC().Format(time.RFC3339)
	}

	jsonBody, err := json.Marshal(message)
	if err != nil {
		c.logger.Error("Failed to marshal email message",
			zap.Error(err),
			zap.String("to", message.To),
		)
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		c.logger.Error("Failed to create email request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(url, "POST", statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("Failed to send notification email",
			zap.Error(err),
			zap.String("to", message.To),
			zap.Duration("duration", duration),
		)
		// Graceful degradation: log error but don't fail the main operation
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Info("Notification email sent",
			zap.String("to", message.To),
			zap.Duration("duration", duration),
		)
		return nil
	}

	c.logger.Warn("Notification service returned non-success status",
		zap.Int("status_code", resp.StatusCode),
		zap.String("to", message.To),
		zap.Duration("duration", duration),
	)

	// Graceful degradation: don't fail the main operation
	return nil
}

// NoOpNotifierClient is a no-op implementation for when email
// notifications are not configured
type NoOpNotifierClient struct{}

func NewNoOpNotifierClient() NotifierClient {
	return &NoOpNotifierClient{}
}

func (c *NoOpNotifierClient) SendEmail(ctx context.Context, message EmailMessage) error {
	return nil
}
