// Package service orchestrates the verification pipeline: image validation,
// fraud assessment, result materialization, persistence, and notification
// dispatch. It owns the lifecycle of a VerificationResult end to end.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"quod/internal/audit"
	"quod/internal/verification/fraud"
	vmetrics "quod/internal/verification/metrics"
	"quod/internal/verification/models"
	"quod/internal/verification/notify"
	"quod/internal/verification/store"
	dErrors "quod/pkg/domain-errors"
	"quod/pkg/requestcontext"
)

// Validator runs the structural checks for one image asset.
type Validator interface {
	Validate(asset models.ImageAsset) models.ValidationOutcome
}

// Notifier dispatches outcome notifications. Implementations never propagate
// delivery failures; a failed dispatch surfaces as Delivered=false.
type Notifier interface {
	SendFraudNotification(ctx context.Context, result *models.VerificationResult) notify.Delivery
	SendSuccessNotification(ctx context.Context, result *models.VerificationResult) notify.Delivery
}

// AuditPublisher records pipeline decisions on the audit trail.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Config bounds the calls that leave the process. Zero values default to 5s.
type Config struct {
	AssessTimeout time.Duration
	NotifyTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.AssessTimeout <= 0 {
		c.AssessTimeout = 5 * time.Second
	}
	if c.NotifyTimeout <= 0 {
		c.NotifyTimeout = 5 * time.Second
	}
	return c
}

// Service is the verification orchestrator. It holds no cross-request state;
// concurrent requests, including for the same user, proceed independently.
type Service struct {
	validator Validator
	assessor  fraud.Assessor
	notifier  Notifier
	results   store.ResultStore
	auditor   AuditPublisher
	metrics   *vmetrics.Metrics
	logger    *slog.Logger
	cfg       Config
}

// Option configures optional service dependencies.
type Option func(*Service)

// WithAuditPublisher attaches the audit trail.
func WithAuditPublisher(auditor AuditPublisher) Option {
	return func(s *Service) { s.auditor = auditor }
}

// WithMetrics attaches prometheus metrics.
func WithMetrics(m *vmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConfig overrides the outbound-call timeouts.
func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg.withDefaults() }
}

// New constructs the orchestrator. Validator, assessor, notifier, and result
// store are required.
func New(validator Validator, assessor fraud.Assessor, notifier Notifier, results store.ResultStore, opts ...Option) (*Service, error) {
	if validator == nil {
		return nil, fmt.Errorf("image validator is required")
	}
	if assessor == nil {
		return nil, fmt.Errorf("fraud assessor is required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if results == nil {
		return nil, fmt.Errorf("result store is required")
	}

	s := &Service{
		validator: validator,
		assessor:  assessor,
		notifier:  notifier,
		results:   results,
		logger:    slog.Default(),
		cfg:       Config{}.withDefaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ProcessFacial runs the facial biometry pipeline.
func (s *Service) ProcessFacial(ctx context.Context, req models.FacialRequest) (*models.VerificationResponse, error) {
	start := time.Now()
	s.logger.InfoContext(ctx, "processing facial biometry", "user_id", req.UserID)

	outcome := s.validator.Validate(req.FaceImage)
	if !outcome.Valid {
		return s.rejectWithoutPersisting(ctx, req.UserID, models.TypeFacialBiometry,
			"Image validation failed: "+formatErrors(outcome.Errors)), nil
	}

	assessment, err := s.assess(ctx, func(ctx context.Context) (models.FraudAssessment, error) {
		return s.assessor.AssessFacial(ctx, req.FaceImage)
	})
	if err != nil {
		return nil, err
	}

	metadata := mergeMetadata(outcome.Metadata, nil)
	attachRequestFields(metadata, req.DeviceInfo, req.GeoLocation)

	result := s.buildResult(ctx, req.UserID, models.TypeFacialBiometry, assessment, metadata)
	return s.finalize(ctx, result, start)
}

// ProcessFingerprint runs the fingerprint biometry pipeline.
func (s *Service) ProcessFingerprint(ctx context.Context, req models.FingerprintRequest) (*models.VerificationResponse, error) {
	start := time.Now()
	s.logger.InfoContext(ctx, "processing fingerprint biometry", "user_id", req.UserID)

	outcome := s.validator.Validate(req.FingerprintImage)
	if !outcome.Valid {
		return s.rejectWithoutPersisting(ctx, req.UserID, models.TypeFingerprintBiometry,
			"Image validation failed: "+formatErrors(outcome.Errors)), nil
	}

	assessment, err := s.assess(ctx, func(ctx context.Context) (models.FraudAssessment, error) {
		return s.assessor.AssessFingerprint(ctx, req.FingerprintImage)
	})
	if err != nil {
		return nil, err
	}

	metadata := mergeMetadata(outcome.Metadata, map[string]any{
		"fingerPosition": req.FingerPosition,
	})
	attachRequestFields(metadata, req.DeviceInfo, req.GeoLocation)

	result := s.buildResult(ctx, req.UserID, models.TypeFingerprintBiometry, assessment, metadata)
	return s.finalize(ctx, result, start)
}

// ProcessDocumentPair runs the document analysis pipeline. Both images are
// validated concurrently; rejection examines the document outcome first so
// the error message stays deterministic regardless of scheduling.
func (s *Service) ProcessDocumentPair(ctx context.Context, req models.DocumentPairRequest) (*models.VerificationResponse, error) {
	start := time.Now()
	s.logger.InfoContext(ctx, "processing document analysis", "user_id", req.UserID)

	var docOutcome, faceOutcome models.ValidationOutcome
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		docOutcome = s.validator.Validate(req.DocumentImage)
		return nil
	})
	g.Go(func() error {
		faceOutcome = s.validator.Validate(req.FaceImage)
		return nil
	})
	_ = g.Wait() // validations are side-effect-free and never error

	if !docOutcome.Valid {
		return s.rejectWithoutPersisting(ctx, req.UserID, models.TypeDocumentAnalysis,
			"Document image validation failed: "+formatErrors(docOutcome.Errors)), nil
	}
	if !faceOutcome.Valid {
		return s.rejectWithoutPersisting(ctx, req.UserID, models.TypeDocumentAnalysis,
			"Face image validation failed: "+formatErrors(faceOutcome.Errors)), nil
	}

	assessment, err := s.assess(ctx, func(ctx context.Context) (models.FraudAssessment, error) {
		return s.assessor.AssessDocumentPair(ctx, req.DocumentImage, req.FaceImage)
	})
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{
		"documentMetadata": docOutcome.Metadata,
		"faceMetadata":     faceOutcome.Metadata,
		"documentType":     req.DocumentType,
	}
	attachRequestFields(metadata, req.DeviceInfo, req.GeoLocation)

	result := s.buildResult(ctx, req.UserID, models.TypeDocumentAnalysis, assessment, metadata)
	return s.finalize(ctx, result, start)
}

// ResultsForUser lists a user's verification history, optionally filtered by type.
func (s *Service) ResultsForUser(ctx context.Context, userID string, verificationType *models.VerificationType) ([]*models.VerificationResult, error) {
	if userID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID is required")
	}
	var (
		results []*models.VerificationResult
		err     error
	)
	if verificationType != nil {
		results, err = s.results.FindByUserAndType(ctx, userID, *verificationType)
	} else {
		results, err = s.results.FindByUser(ctx, userID)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list verification results")
	}
	return results, nil
}

// ResultsByFraudFlag lists results by fraud verdict.
func (s *Service) ResultsByFraudFlag(ctx context.Context, fraudDetected bool) ([]*models.VerificationResult, error) {
	results, err := s.results.FindByFraudFlag(ctx, fraudDetected)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list verification results")
	}
	return results, nil
}

// assess invokes the assessor under a bounded timeout. Assessment errors are
// hard failures; a submission must never be approved because the detector was
// unavailable.
func (s *Service) assess(ctx context.Context, call func(context.Context) (models.FraudAssessment, error)) (models.FraudAssessment, error) {
	actx, cancel := context.WithTimeout(ctx, s.cfg.AssessTimeout)
	defer cancel()

	assessment, err := call(actx)
	if err != nil {
		if errors.Is(err, fraud.ErrAssessmentUnavailable) || errors.Is(err, context.DeadlineExceeded) {
			return models.FraudAssessment{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "fraud assessment unavailable")
		}
		return models.FraudAssessment{}, dErrors.Wrap(err, dErrors.CodeInternal, "fraud assessment failed")
	}
	return assessment, nil
}

// buildResult materializes the verification outcome. Status is decided here,
// once: REJECTED when fraud was detected, APPROVED otherwise.
func (s *Service) buildResult(ctx context.Context, userID string, verificationType models.VerificationType, assessment models.FraudAssessment, metadata map[string]any) *models.VerificationResult {
	now := requestcontext.Now(ctx)
	status := models.StatusApproved
	if assessment.FraudDetected {
		status = models.StatusRejected
	}
	return &models.VerificationResult{
		UserID:        userID,
		Type:          verificationType,
		CreatedAt:     now,
		ProcessedAt:   now,
		FraudDetected: assessment.FraudDetected,
		FraudTypes:    assessment.FraudTypes,
		Status:        status,
		Metadata:      metadata,
	}
}

// finalize persists the result, dispatches the notification, attaches the
// notification id with a second write, and maps the outcome to a response.
//
// The two writes are intentionally not atomic: a failure between them leaves
// a durable record without a notification id, which is a valid terminal
// state. Persistence failures propagate; notification failures never do.
func (s *Service) finalize(ctx context.Context, result *models.VerificationResult, start time.Time) (*models.VerificationResponse, error) {
	saved, err := s.results.Save(ctx, result)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist verification result")
	}

	nctx, cancel := context.WithTimeout(ctx, s.cfg.NotifyTimeout)
	var delivery notify.Delivery
	if saved.FraudDetected {
		delivery = s.notifier.SendFraudNotification(nctx, saved)
	} else {
		delivery = s.notifier.SendSuccessNotification(nctx, saved)
	}
	cancel()

	if delivery.Delivered {
		saved.NotificationID = delivery.NotificationID
		saved, err = s.results.Save(ctx, saved)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist notification id")
		}
	} else {
		s.incrementNotificationFailed()
		s.emitAudit(ctx, audit.Event{
			UserID:           saved.UserID,
			VerificationID:   saved.ID,
			VerificationType: string(saved.Type),
			Action:           audit.ActionNotificationDeliveryFailed,
			Reason:           delivery.Reason,
		})
	}

	action := audit.ActionVerificationApproved
	if saved.FraudDetected {
		action = audit.ActionVerificationRejected
		s.incrementFraudDetected()
	}
	s.emitAudit(ctx, audit.Event{
		UserID:           saved.UserID,
		VerificationID:   saved.ID,
		VerificationType: string(saved.Type),
		Action:           action,
		Details:          auditDetails(saved),
	})
	s.incrementProcessed(saved.Type, saved.Status)
	s.observeProcess(start)

	s.logger.InfoContext(ctx, "verification processed",
		"verification_id", saved.ID,
		"user_id", saved.UserID,
		"type", saved.Type,
		"status", saved.Status,
		"fraud_detected", saved.FraudDetected,
		"notification_delivered", delivery.Delivered,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return MapToResponse(saved), nil
}

// rejectWithoutPersisting builds the early-rejection response. Nothing is
// written to the store on this path.
func (s *Service) rejectWithoutPersisting(ctx context.Context, userID string, verificationType models.VerificationType, message string) *models.VerificationResponse {
	s.logger.InfoContext(ctx, "verification rejected by image validation",
		"user_id", userID,
		"type", verificationType,
		"message", message,
	)
	s.incrementValidationRejected()
	s.emitAudit(ctx, audit.Event{
		UserID:           userID,
		VerificationType: string(verificationType),
		Action:           audit.ActionVerificationRejectedNoSave,
		Reason:           message,
	})
	return &models.VerificationResponse{
		UserID:           userID,
		VerificationType: verificationType,
		ProcessedAt:      requestcontext.Now(ctx),
		FraudDetected:    false,
		Status:           models.StatusRejected,
		Message:          message,
	}
}

// MapToResponse derives the caller-facing view from a persisted result.
// Mapping is pure: the same result always yields the same response.
func MapToResponse(result *models.VerificationResult) *models.VerificationResponse {
	message := "Verification successful"
	if result.FraudDetected {
		message = "Fraud detected: " + strings.Join(result.FraudTypes, ", ")
	}
	return &models.VerificationResponse{
		ID:               result.ID,
		UserID:           result.UserID,
		VerificationType: result.Type,
		ProcessedAt:      result.ProcessedAt,
		FraudDetected:    result.FraudDetected,
		FraudTypes:       result.FraudTypes,
		Status:           result.Status,
		Message:          message,
	}
}

// formatErrors renders validation errors the way responses expose them:
// "[first, second]".
func formatErrors(errs []string) string {
	return "[" + strings.Join(errs, ", ") + "]"
}

// mergeMetadata copies the validation metadata and overlays extra fields so
// the outcome passed between stages is never mutated.
func mergeMetadata(base, extra map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

func attachRequestFields(metadata map[string]any, deviceInfo, geoLocation string) {
	if deviceInfo != "" {
		metadata["deviceInfo"] = deviceInfo
	}
	if geoLocation != "" {
		metadata["geoLocation"] = geoLocation
	}
}

func auditDetails(result *models.VerificationResult) map[string]any {
	if !result.FraudDetected {
		return nil
	}
	return map[string]any{"fraudTypes": result.FraudTypes}
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}

func (s *Service) incrementProcessed(verificationType models.VerificationType, status models.Status) {
	if s.metrics != nil {
		s.metrics.IncrementProcessed(string(verificationType), string(status))
	}
}

func (s *Service) incrementValidationRejected() {
	if s.metrics != nil {
		s.metrics.IncrementValidationRejected()
	}
}

func (s *Service) incrementFraudDetected() {
	if s.metrics != nil {
		s.metrics.IncrementFraudDetected()
	}
}

func (s *Service) incrementNotificationFailed() {
	if s.metrics != nil {
		s.metrics.IncrementNotificationFailed()
	}
}

func (s *Service) observeProcess(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveProcess(start)
	}
}
