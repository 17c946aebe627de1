// Package handler is the thin HTTP layer over the verification service:
// multipart parsing, required-field checks, and response writing. Pipeline
// logic stays in the service.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"quod/internal/verification/models"
	"quod/internal/verification/service"
	dErrors "quod/pkg/domain-errors"
	"quod/pkg/platform/httputil"
	"quod/pkg/requestcontext"
)

// Service defines the verification operations the handler exposes.
type Service interface {
	ProcessFacial(ctx context.Context, req models.FacialRequest) (*models.VerificationResponse, error)
	ProcessFingerprint(ctx context.Context, req models.FingerprintRequest) (*models.VerificationResponse, error)
	ProcessDocumentPair(ctx context.Context, req models.DocumentPairRequest) (*models.VerificationResponse, error)
	ResultsForUser(ctx context.Context, userID string, verificationType *models.VerificationType) ([]*models.VerificationResult, error)
	ResultsByFraudFlag(ctx context.Context, fraudDetected bool) ([]*models.VerificationResult, error)
}

// Handler wires verification endpoints to the verification service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a verification handler.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts verification endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/v1/verification/facial", h.HandleFacial)
	r.Post("/api/v1/verification/fingerprint", h.HandleFingerprint)
	r.Post("/api/v1/verification/document", h.HandleDocument)
	r.Get("/api/v1/verification/user/{userID}", h.HandleListByUser)
	r.Get("/api/v1/verification/fraud", h.HandleListByFraudFlag)
}

// HandleFacial handles POST /api/v1/verification/facial.
func (h *Handler) HandleFacial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := decodeFacialRequest(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "received facial biometry request",
		"request_id", requestcontext.RequestID(ctx), "user_id", req.UserID)

	resp, err := h.service.ProcessFacial(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "facial biometry failed", req.UserID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleFingerprint handles POST /api/v1/verification/fingerprint.
func (h *Handler) HandleFingerprint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := decodeFingerprintRequest(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "received fingerprint biometry request",
		"request_id", requestcontext.RequestID(ctx), "user_id", req.UserID)

	resp, err := h.service.ProcessFingerprint(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "fingerprint biometry failed", req.UserID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleDocument handles POST /api/v1/verification/document.
func (h *Handler) HandleDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := decodeDocumentPairRequest(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "received document analysis request",
		"request_id", requestcontext.RequestID(ctx), "user_id", req.UserID)

	resp, err := h.service.ProcessDocumentPair(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "document analysis failed", req.UserID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleListByUser handles GET /api/v1/verification/user/{userID}.
func (h *Handler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")

	var verificationType *models.VerificationType
	if raw := r.URL.Query().Get("type"); raw != "" {
		parsed, err := models.ParseVerificationType(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, err.Error()))
			return
		}
		verificationType = &parsed
	}

	results, err := h.service.ResultsForUser(ctx, userID, verificationType)
	if err != nil {
		h.writeServiceError(ctx, w, "listing verifications failed", userID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponses(results))
}

// HandleListByFraudFlag handles GET /api/v1/verification/fraud.
func (h *Handler) HandleListByFraudFlag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fraudDetected := true
	if raw := r.URL.Query().Get("detected"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "detected must be a boolean"))
			return
		}
		fraudDetected = parsed
	}

	results, err := h.service.ResultsByFraudFlag(ctx, fraudDetected)
	if err != nil {
		h.writeServiceError(ctx, w, "listing verifications failed", "", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponses(results))
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg, userID string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID,
		"error", err,
	)
	httputil.WriteError(w, err)
}

func toResponses(results []*models.VerificationResult) []*models.VerificationResponse {
	responses := make([]*models.VerificationResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, service.MapToResponse(result))
	}
	return responses
}
