package audit

import "time"

// Actions recorded by the verification pipeline.
const (
	ActionVerificationApproved       = "verification.approved"
	ActionVerificationRejected       = "verification.rejected"
	ActionVerificationRejectedNoSave = "verification.rejected_no_persist"
	ActionNotificationDeliveryFailed = "notification.delivery_failed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID               string         `json:"id"`
	Timestamp        time.Time      `json:"timestamp"`
	UserID           string         `json:"userId"`
	VerificationID   string         `json:"verificationId,omitempty"`
	VerificationType string         `json:"verificationType"`
	Action           string         `json:"action"`
	Reason           string         `json:"reason,omitempty"`
	Details          map[string]any `json:"details,omitempty"`
}
