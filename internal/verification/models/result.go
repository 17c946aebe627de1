package models

import (
	"fmt"
	"time"
)

// VerificationType identifies the biometric modality of a verification.
type VerificationType string

const (
	TypeFacialBiometry      VerificationType = "FACIAL_BIOMETRY"
	TypeFingerprintBiometry VerificationType = "FINGERPRINT_BIOMETRY"
	TypeDocumentAnalysis    VerificationType = "DOCUMENT_ANALYSIS"
)

// ParseVerificationType converts the wire representation into a
// VerificationType, rejecting unknown values.
func ParseVerificationType(s string) (VerificationType, error) {
	switch VerificationType(s) {
	case TypeFacialBiometry, TypeFingerprintBiometry, TypeDocumentAnalysis:
		return VerificationType(s), nil
	default:
		return "", fmt.Errorf("unknown verification type %q", s)
	}
}

// Status is the lifecycle state of a persisted verification result.
//
// StatusPending and StatusProcessing are reserved for queued assessment; the
// current synchronous pipeline assigns only StatusApproved or StatusRejected.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
)

// VerificationResult is the persisted outcome of one verification. The
// orchestrator owns its lifecycle: constructed after a successful validation
// pass, persisted, mutated exactly once more to attach the notification id,
// and persisted again. NotificationID stays empty when dispatch failed or the
// second write never happened; that is a valid terminal state, not corruption.
type VerificationResult struct {
	ID             string
	UserID         string
	Type           VerificationType
	CreatedAt      time.Time
	ProcessedAt    time.Time
	FraudDetected  bool
	FraudTypes     []string
	Status         Status
	Metadata       map[string]any
	NotificationID string
}

// VerificationResponse is the caller-facing view of a verification. It is
// derived 1:1 from a persisted result, or synthesized directly for
// early-rejection paths that never reach the store (ID absent).
type VerificationResponse struct {
	ID               string           `json:"id,omitempty"`
	UserID           string           `json:"userId"`
	VerificationType VerificationType `json:"verificationType"`
	ProcessedAt      time.Time        `json:"processedAt"`
	FraudDetected    bool             `json:"fraudDetected"`
	FraudTypes       []string         `json:"fraudTypes,omitempty"`
	Status           Status           `json:"status"`
	Message          string           `json:"message"`
}
