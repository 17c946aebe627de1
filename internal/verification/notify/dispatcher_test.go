package notify

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"quod/internal/verification/models"
)

type DispatcherSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *DispatcherSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func testResult() *models.VerificationResult {
	return &models.VerificationResult{
		ID:            "ver-123",
		UserID:        "user-1",
		Type:          models.TypeFacialBiometry,
		ProcessedAt:   time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		FraudDetected: true,
		FraudTypes:    []string{"DEEPFAKE", "MASK"},
		Status:        models.StatusRejected,
	}
}

func newTestDispatcher(fraudURL, successURL string) *HTTPDispatcher {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHTTPDispatcher(
		Config{FraudURL: fraudURL, SuccessURL: successURL, Timeout: time.Second},
		logger,
		WithIDGenerator(func() string { return "notif-1" }),
	)
}

func (s *DispatcherSuite) TestSendFraudNotification() {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(s.T(), http.MethodPost, r.Method)
		assert.Equal(s.T(), "application/json", r.Header.Get("Content-Type"))
		require.NoError(s.T(), json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	delivery := newTestDispatcher(srv.URL, "").SendFraudNotification(s.ctx, testResult())

	assert.True(s.T(), delivery.Delivered)
	assert.Equal(s.T(), "notif-1", delivery.NotificationID)
	assert.Empty(s.T(), delivery.Reason)

	assert.Equal(s.T(), "notif-1", received["notificationId"])
	assert.Equal(s.T(), "ver-123", received["verificationId"])
	assert.Equal(s.T(), "user-1", received["userId"])
	assert.Equal(s.T(), "FACIAL_BIOMETRY", received["verificationType"])
	assert.Equal(s.T(), []any{"DEEPFAKE", "MASK"}, received["fraudTypes"])
	assert.Contains(s.T(), received, "timestamp")
}

func (s *DispatcherSuite) TestSendSuccessNotificationOmitsFraudTypes() {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(s.T(), json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	result := testResult()
	result.FraudDetected = false
	result.FraudTypes = nil
	result.Status = models.StatusApproved

	delivery := newTestDispatcher("", srv.URL).SendSuccessNotification(s.ctx, result)

	assert.True(s.T(), delivery.Delivered)
	assert.NotContains(s.T(), received, "fraudTypes")
}

func (s *DispatcherSuite) TestNon2xxIsFailure() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	delivery := newTestDispatcher(srv.URL, "").SendFraudNotification(s.ctx, testResult())

	assert.False(s.T(), delivery.Delivered)
	assert.Empty(s.T(), delivery.NotificationID)
	assert.Contains(s.T(), delivery.Reason, "502")
}

func (s *DispatcherSuite) TestUnreachableEndpointIsFailure() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	delivery := newTestDispatcher(srv.URL, "").SendFraudNotification(s.ctx, testResult())

	assert.False(s.T(), delivery.Delivered)
	assert.NotEmpty(s.T(), delivery.Reason)
}

func (s *DispatcherSuite) TestFreshNotificationIDPerCall() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ids := []string{"notif-a", "notif-b"}
	next := 0
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := NewHTTPDispatcher(
		Config{FraudURL: srv.URL, SuccessURL: srv.URL},
		logger,
		WithIDGenerator(func() string {
			id := ids[next]
			next++
			return id
		}),
	)

	first := dispatcher.SendFraudNotification(s.ctx, testResult())
	second := dispatcher.SendSuccessNotification(s.ctx, testResult())

	assert.Equal(s.T(), "notif-a", first.NotificationID)
	assert.Equal(s.T(), "notif-b", second.NotificationID)
}
