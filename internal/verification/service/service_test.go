package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"quod/internal/audit"
	"quod/internal/verification/fraud"
	fraudmocks "quod/internal/verification/fraud/mocks"
	"quod/internal/verification/models"
	"quod/internal/verification/notify"
	"quod/internal/verification/service/mocks"
	"quod/internal/verification/store"
	dErrors "quod/pkg/domain-errors"
	"quod/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Validator,Notifier,AuditPublisher

var processedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type ServiceSuite struct {
	suite.Suite
	ctx        context.Context
	ctrl       *gomock.Controller
	validator  *mocks.MockValidator
	assessor   *fraudmocks.MockAssessor
	notifier   *mocks.MockNotifier
	results    *store.InMemoryStore
	auditStore *audit.InMemoryStore
	service    *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), processedAt)
	s.ctrl = gomock.NewController(s.T())
	s.validator = mocks.NewMockValidator(s.ctrl)
	s.assessor = fraudmocks.NewMockAssessor(s.ctrl)
	s.notifier = mocks.NewMockNotifier(s.ctrl)
	s.results = store.NewInMemoryStore()
	s.auditStore = audit.NewInMemoryStore()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := New(s.validator, s.assessor, s.notifier, s.results,
		WithAuditPublisher(audit.NewPublisher(s.auditStore, audit.WithLogger(logger))),
		WithLogger(logger),
	)
	require.NoError(s.T(), err)
	s.service = svc
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func validOutcome(filename string) models.ValidationOutcome {
	return models.ValidationOutcome{
		Valid: true,
		Metadata: map[string]any{
			"filename":    filename,
			"contentType": "image/jpeg",
			"size":        int64(1024),
		},
	}
}

func facialRequest() models.FacialRequest {
	return models.FacialRequest{
		UserID:      "user-1",
		FaceImage:   models.ImageAsset{Filename: "face.jpg", ContentType: "image/jpeg", Size: 1024},
		DeviceInfo:  "iPhone 15",
		GeoLocation: "-23.55,-46.63",
	}
}

func (s *ServiceSuite) auditActions(userID string) []string {
	events, err := s.auditStore.ListByUser(s.ctx, userID)
	require.NoError(s.T(), err)
	actions := make([]string, 0, len(events))
	for _, e := range events {
		actions = append(actions, e.Action)
	}
	return actions
}

func (s *ServiceSuite) TestFacialCleanSubmissionApproved() {
	req := facialRequest()
	s.validator.EXPECT().Validate(req.FaceImage).Return(validOutcome("face.jpg"))
	s.assessor.EXPECT().AssessFacial(gomock.Any(), req.FaceImage).
		Return(models.NewFraudAssessment(nil), nil)
	s.notifier.EXPECT().SendSuccessNotification(gomock.Any(), gomock.Any()).
		Return(notify.Delivery{NotificationID: "notif-1", Delivered: true})

	resp, err := s.service.ProcessFacial(s.ctx, req)
	require.NoError(s.T(), err)

	assert.NotEmpty(s.T(), resp.ID)
	assert.Equal(s.T(), "user-1", resp.UserID)
	assert.Equal(s.T(), models.TypeFacialBiometry, resp.VerificationType)
	assert.Equal(s.T(), processedAt, resp.ProcessedAt)
	assert.False(s.T(), resp.FraudDetected)
	assert.Equal(s.T(), models.StatusApproved, resp.Status)
	assert.Equal(s.T(), "Verification successful", resp.Message)

	stored, err := s.results.FindByID(s.ctx, resp.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "notif-1", stored.NotificationID)
	assert.Equal(s.T(), "iPhone 15", stored.Metadata["deviceInfo"])
	assert.Equal(s.T(), "-23.55,-46.63", stored.Metadata["geoLocation"])
	assert.Equal(s.T(), "face.jpg", stored.Metadata["filename"])

	assert.Equal(s.T(), []string{audit.ActionVerificationApproved}, s.auditActions("user-1"))
}

func (s *ServiceSuite) TestFacialFraudDetectedRejected() {
	req := facialRequest()
	s.validator.EXPECT().Validate(req.FaceImage).Return(validOutcome("face.jpg"))
	s.assessor.EXPECT().AssessFacial(gomock.Any(), req.FaceImage).
		Return(models.NewFraudAssessment([]string{"DEEPFAKE", "MASK"}), nil)
	s.notifier.EXPECT().SendFraudNotification(gomock.Any(), gomock.Any()).
		Return(notify.Delivery{NotificationID: "notif-1", Delivered: true})

	resp, err := s.service.ProcessFacial(s.ctx, req)
	require.NoError(s.T(), err)

	assert.True(s.T(), resp.FraudDetected)
	assert.Equal(s.T(), []string{"DEEPFAKE", "MASK"}, resp.FraudTypes)
	assert.Equal(s.T(), models.StatusRejected, resp.Status)
	assert.Equal(s.T(), "Fraud detected: DEEPFAKE, MASK", resp.Message)

	stored, err := s.results.FindByID(s.ctx, resp.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), stored.FraudDetected)
	assert.Equal(s.T(), "notif-1", stored.NotificationID)

	assert.Equal(s.T(), []string{audit.ActionVerificationRejected}, s.auditActions("user-1"))
}

func (s *ServiceSuite) TestFacialValidationFailureNotPersisted() {
	req := facialRequest()
	s.validator.EXPECT().Validate(req.FaceImage).Return(models.ValidationOutcome{
		Valid:  false,
		Errors: []string{"File is empty"},
	})

	resp, err := s.service.ProcessFacial(s.ctx, req)
	require.NoError(s.T(), err)

	assert.Empty(s.T(), resp.ID)
	assert.Equal(s.T(), models.StatusRejected, resp.Status)
	assert.False(s.T(), resp.FraudDetected)
	assert.Equal(s.T(), "Image validation failed: [File is empty]", resp.Message)
	assert.Equal(s.T(), processedAt, resp.ProcessedAt)
	assert.Equal(s.T(), 0, s.results.Len())

	assert.Equal(s.T(), []string{audit.ActionVerificationRejectedNoSave}, s.auditActions("user-1"))
}

func (s *ServiceSuite) TestFacialValidationFailureMultipleErrors() {
	req := facialRequest()
	s.validator.EXPECT().Validate(req.FaceImage).Return(models.ValidationOutcome{
		Valid: false,
		Errors: []string{
			"File size exceeds the maximum allowed size of 5MB",
			"File format not supported. Allowed formats: image/jpeg, image/png",
		},
	})

	resp, err := s.service.ProcessFacial(s.ctx, req)
	require.NoError(s.T(), err)

	assert.Equal(s.T(),
		"Image validation failed: [File size exceeds the maximum allowed size of 5MB, File format not supported. Allowed formats: image/jpeg, image/png]",
		resp.Message)
}

func (s *ServiceSuite) TestFacialNotificationFailureStillSucceeds() {
	req := facialRequest()
	s.validator.EXPECT().Validate(req.FaceImage).Return(validOutcome("face.jpg"))
	s.assessor.EXPECT().AssessFacial(gomock.Any(), req.FaceImage).
		Return(models.NewFraudAssessment(nil), nil)
	s.notifier.EXPECT().SendSuccessNotification(gomock.Any(), gomock.Any()).
		Return(notify.Delivery{Delivered: false, Reason: "notification endpoint returned 502"})

	resp, err := s.service.ProcessFacial(s.ctx, req)
	require.NoError(s.T(), err)

	assert.Equal(s.T(), models.StatusApproved, resp.Status)

	stored, err := s.results.FindByID(s.ctx, resp.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), stored.NotificationID)

	assert.Equal(s.T(), []string{
		audit.ActionNotificationDeliveryFailed,
		audit.ActionVerificationApproved,
	}, s.auditActions("user-1"))
}

func (s *ServiceSuite) TestFacialAssessmentUnavailableIsHardFailure() {
	req := facialRequest()
	s.validator.EXPECT().Validate(req.FaceImage).Return(validOutcome("face.jpg"))
	s.assessor.EXPECT().AssessFacial(gomock.Any(), req.FaceImage).
		Return(models.FraudAssessment{}, fmt.Errorf("detector down: %w", fraud.ErrAssessmentUnavailable))

	_, err := s.service.ProcessFacial(s.ctx, req)
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUnavailable))
	assert.Equal(s.T(), 0, s.results.Len())
}

func (s *ServiceSuite) TestFacialPersistenceFailurePropagates() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := New(s.validator, s.assessor, s.notifier, failingStore{}, WithLogger(logger))
	require.NoError(s.T(), err)

	req := facialRequest()
	s.validator.EXPECT().Validate(req.FaceImage).Return(validOutcome("face.jpg"))
	s.assessor.EXPECT().AssessFacial(gomock.Any(), req.FaceImage).
		Return(models.NewFraudAssessment(nil), nil)

	_, err = svc.ProcessFacial(s.ctx, req)
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestFingerprintMetadataCarriesPosition() {
	req := models.FingerprintRequest{
		UserID:           "user-1",
		FingerprintImage: models.ImageAsset{Filename: "print.png", ContentType: "image/png", Size: 2048},
		FingerPosition:   "RIGHT_INDEX",
	}
	s.validator.EXPECT().Validate(req.FingerprintImage).Return(validOutcome("print.png"))
	s.assessor.EXPECT().AssessFingerprint(gomock.Any(), req.FingerprintImage).
		Return(models.NewFraudAssessment(nil), nil)
	s.notifier.EXPECT().SendSuccessNotification(gomock.Any(), gomock.Any()).
		Return(notify.Delivery{NotificationID: "notif-1", Delivered: true})

	resp, err := s.service.ProcessFingerprint(s.ctx, req)
	require.NoError(s.T(), err)

	assert.Equal(s.T(), models.TypeFingerprintBiometry, resp.VerificationType)

	stored, err := s.results.FindByID(s.ctx, resp.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "RIGHT_INDEX", stored.Metadata["fingerPosition"])
}

func (s *ServiceSuite) TestDocumentPairApproved() {
	req := documentRequest()
	s.validator.EXPECT().Validate(req.DocumentImage).Return(validOutcome("doc.jpg"))
	s.validator.EXPECT().Validate(req.FaceImage).Return(validOutcome("face.jpg"))
	s.assessor.EXPECT().AssessDocumentPair(gomock.Any(), req.DocumentImage, req.FaceImage).
		Return(models.NewFraudAssessment(nil), nil)
	s.notifier.EXPECT().SendSuccessNotification(gomock.Any(), gomock.Any()).
		Return(notify.Delivery{NotificationID: "notif-1", Delivered: true})

	resp, err := s.service.ProcessDocumentPair(s.ctx, req)
	require.NoError(s.T(), err)

	assert.Equal(s.T(), models.TypeDocumentAnalysis, resp.VerificationType)

	stored, err := s.results.FindByID(s.ctx, resp.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "RG", stored.Metadata["documentType"])
	assert.Equal(s.T(), validOutcome("doc.jpg").Metadata, stored.Metadata["documentMetadata"])
	assert.Equal(s.T(), validOutcome("face.jpg").Metadata, stored.Metadata["faceMetadata"])
}

func (s *ServiceSuite) TestDocumentPairDocumentErrorTakesPrecedence() {
	req := documentRequest()
	s.validator.EXPECT().Validate(req.DocumentImage).Return(models.ValidationOutcome{
		Valid:  false,
		Errors: []string{"File is empty"},
	})
	s.validator.EXPECT().Validate(req.FaceImage).Return(models.ValidationOutcome{
		Valid:  false,
		Errors: []string{"File format not supported. Allowed formats: image/jpeg, image/png"},
	})

	resp, err := s.service.ProcessDocumentPair(s.ctx, req)
	require.NoError(s.T(), err)

	assert.Equal(s.T(), "Document image validation failed: [File is empty]", resp.Message)
	assert.Equal(s.T(), 0, s.results.Len())
}

func (s *ServiceSuite) TestDocumentPairFaceValidationFailure() {
	req := documentRequest()
	s.validator.EXPECT().Validate(req.DocumentImage).Return(validOutcome("doc.jpg"))
	s.validator.EXPECT().Validate(req.FaceImage).Return(models.ValidationOutcome{
		Valid:  false,
		Errors: []string{"File is empty"},
	})

	resp, err := s.service.ProcessDocumentPair(s.ctx, req)
	require.NoError(s.T(), err)

	assert.Equal(s.T(), "Face image validation failed: [File is empty]", resp.Message)
	assert.Equal(s.T(), 0, s.results.Len())
}

func (s *ServiceSuite) TestResultsForUser() {
	seedResult(s.T(), s.results, "user-1", models.TypeFacialBiometry, false)
	seedResult(s.T(), s.results, "user-1", models.TypeFingerprintBiometry, true)
	seedResult(s.T(), s.results, "user-2", models.TypeFacialBiometry, false)

	results, err := s.service.ResultsForUser(s.ctx, "user-1", nil)
	require.NoError(s.T(), err)
	assert.Len(s.T(), results, 2)

	facial := models.TypeFacialBiometry
	results, err = s.service.ResultsForUser(s.ctx, "user-1", &facial)
	require.NoError(s.T(), err)
	require.Len(s.T(), results, 1)
	assert.Equal(s.T(), models.TypeFacialBiometry, results[0].Type)
}

func (s *ServiceSuite) TestResultsForUserRequiresID() {
	_, err := s.service.ResultsForUser(s.ctx, "", nil)
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *ServiceSuite) TestResultsByFraudFlag() {
	seedResult(s.T(), s.results, "user-1", models.TypeFacialBiometry, false)
	seedResult(s.T(), s.results, "user-2", models.TypeDocumentAnalysis, true)

	flagged, err := s.service.ResultsByFraudFlag(s.ctx, true)
	require.NoError(s.T(), err)
	require.Len(s.T(), flagged, 1)
	assert.Equal(s.T(), "user-2", flagged[0].UserID)
}

func (s *ServiceSuite) TestMapToResponseIsPure() {
	result := &models.VerificationResult{
		ID:            "ver-1",
		UserID:        "user-1",
		Type:          models.TypeFacialBiometry,
		ProcessedAt:   processedAt,
		FraudDetected: true,
		FraudTypes:    []string{"DEEPFAKE"},
		Status:        models.StatusRejected,
	}

	first := MapToResponse(result)
	second := MapToResponse(result)

	assert.Equal(s.T(), first, second)
	assert.Equal(s.T(), "Fraud detected: DEEPFAKE", first.Message)
}

func documentRequest() models.DocumentPairRequest {
	return models.DocumentPairRequest{
		UserID:        "user-1",
		DocumentImage: models.ImageAsset{Filename: "doc.jpg", ContentType: "image/jpeg", Size: 1024},
		FaceImage:     models.ImageAsset{Filename: "face.jpg", ContentType: "image/jpeg", Size: 1024},
		DocumentType:  "RG",
	}
}

func seedResult(t *testing.T, s *store.InMemoryStore, userID string, verificationType models.VerificationType, fraud bool) {
	t.Helper()
	_, err := s.Save(context.Background(), &models.VerificationResult{
		UserID:        userID,
		Type:          verificationType,
		CreatedAt:     processedAt,
		ProcessedAt:   processedAt,
		FraudDetected: fraud,
		Status:        models.StatusApproved,
	})
	require.NoError(t, err)
}

// failingStore rejects every write.
type failingStore struct{}

func (failingStore) Save(context.Context, *models.VerificationResult) (*models.VerificationResult, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) FindByID(context.Context, string) (*models.VerificationResult, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) FindByUser(context.Context, string) ([]*models.VerificationResult, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) FindByUserAndType(context.Context, string, models.VerificationType) ([]*models.VerificationResult, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) FindByFraudFlag(context.Context, bool) ([]*models.VerificationResult, error) {
	return nil, errors.New("connection refused")
}
