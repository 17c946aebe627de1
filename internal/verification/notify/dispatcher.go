// Package notify delivers verification outcome notifications to the
// configured downstream endpoints. Delivery is best-effort: one attempt, no
// retry, no queue, and failures never propagate to the verification pipeline.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"quod/internal/verification/models"
)

// Delivery is the structured outcome of one dispatch attempt. NotificationID
// is empty when delivery failed; callers must tolerate that without failing
// the verification. Reason is populated only on failure, for observability.
type Delivery struct {
	NotificationID string
	Delivered      bool
	Reason         string
}

// payload is the JSON body POSTed to the notification endpoints.
type payload struct {
	NotificationID   string                  `json:"notificationId"`
	VerificationID   string                  `json:"verificationId"`
	UserID           string                  `json:"userId"`
	VerificationType models.VerificationType `json:"verificationType"`
	FraudTypes       []string                `json:"fraudTypes,omitempty"`
	Timestamp        time.Time               `json:"timestamp"`
}

// Config holds the notification endpoints and the per-call timeout.
type Config struct {
	FraudURL   string
	SuccessURL string
	Timeout    time.Duration
}

// HTTPDispatcher posts notifications over HTTP. A fresh notification id is
// generated per call; the response body is not consumed beyond the status.
type HTTPDispatcher struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
	newID  func() string
}

// Option configures an HTTPDispatcher.
type Option func(*HTTPDispatcher)

// WithHTTPClient overrides the HTTP client (tests, custom transports).
func WithHTTPClient(client *http.Client) Option {
	return func(d *HTTPDispatcher) {
		if client != nil {
			d.client = client
		}
	}
}

// WithIDGenerator overrides notification id generation for tests.
func WithIDGenerator(newID func() string) Option {
	return func(d *HTTPDispatcher) {
		if newID != nil {
			d.newID = newID
		}
	}
}

// NewHTTPDispatcher constructs a dispatcher. A zero timeout defaults to 5s.
func NewHTTPDispatcher(cfg Config, logger *slog.Logger, opts ...Option) *HTTPDispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	d := &HTTPDispatcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SendFraudNotification notifies the fraud endpoint, including the detected
// fraud types in the payload.
func (d *HTTPDispatcher) SendFraudNotification(ctx context.Context, result *models.VerificationResult) Delivery {
	notificationID := d.newID()
	return d.send(ctx, d.cfg.FraudURL, payload{
		NotificationID:   notificationID,
		VerificationID:   result.ID,
		UserID:           result.UserID,
		VerificationType: result.Type,
		FraudTypes:       result.FraudTypes,
		Timestamp:        result.ProcessedAt,
	})
}

// SendSuccessNotification notifies the success endpoint.
func (d *HTTPDispatcher) SendSuccessNotification(ctx context.Context, result *models.VerificationResult) Delivery {
	notificationID := d.newID()
	return d.send(ctx, d.cfg.SuccessURL, payload{
		NotificationID:   notificationID,
		VerificationID:   result.ID,
		UserID:           result.UserID,
		VerificationType: result.Type,
		Timestamp:        result.ProcessedAt,
	})
}

func (d *HTTPDispatcher) send(ctx context.Context, url string, p payload) Delivery {
	failed := func(reason string) Delivery {
		d.logger.WarnContext(ctx, "notification delivery failed",
			"notification_id", p.NotificationID,
			"verification_id", p.VerificationID,
			"url", url,
			"reason", reason,
		)
		return Delivery{Delivered: false, Reason: reason}
	}

	body, err := json.Marshal(p)
	if err != nil {
		return failed(fmt.Sprintf("marshal payload: %v", err))
	}

	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return failed(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return failed(fmt.Sprintf("post notification: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failed(fmt.Sprintf("notification endpoint returned %d", resp.StatusCode))
	}

	d.logger.InfoContext(ctx, "notification delivered",
		"notification_id", p.NotificationID,
		"verification_id", p.VerificationID,
		"url", url,
	)
	return Delivery{NotificationID: p.NotificationID, Delivered: true}
}
