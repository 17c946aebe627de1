// Package fraud defines the fraud-assessment capability consumed by the
// verification pipeline. The pipeline only depends on the Assessor contract;
// the shipped implementation is a probabilistic stand-in and production use
// requires a real detector behind the same three methods.
package fraud

import (
	"context"
	"errors"

	"quod/internal/verification/models"
)

// ErrAssessmentUnavailable signals that a verdict could not be produced at
// all (detector down, timeout). The orchestrator treats it as a hard failure;
// a submission is never silently approved because the detector was absent.
var ErrAssessmentUnavailable = errors.New("fraud assessment unavailable")

// Fraud categories per modality.
const (
	FraudDeepfake     = "DEEPFAKE"
	FraudMask         = "MASK"
	FraudPhotoOfPhoto = "PHOTO_OF_PHOTO"

	FraudSyntheticFingerprint = "SYNTHETIC_FINGERPRINT"
	FraudFingerprintReplica   = "FINGERPRINT_REPLICA"

	FraudDoctoredDocument     = "DOCTORED_DOCUMENT"
	FraudFakeDocument         = "FAKE_DOCUMENT"
	FraudFaceDocumentMismatch = "FACE_DOCUMENT_MISMATCH"
)

// Assessor produces a fraud verdict for a given biometric modality.
//
// Contract: deterministic given the same injected decision source; an empty
// FraudTypes set when no category triggers; an error only when no verdict
// could be produced (wrap ErrAssessmentUnavailable), never for a well-formed
// input that simply looks fraudulent.
type Assessor interface {
	// AssessFacial checks a face image for deepfake, mask, and
	// photo-of-photo presentation attacks.
	AssessFacial(ctx context.Context, image models.ImageAsset) (models.FraudAssessment, error)

	// AssessFingerprint checks a fingerprint image for synthetic prints and
	// replica material.
	AssessFingerprint(ctx context.Context, image models.ImageAsset) (models.FraudAssessment, error)

	// AssessDocumentPair checks a document image for doctoring and
	// fabrication and compares it against the live face image.
	AssessDocumentPair(ctx context.Context, documentImage, faceImage models.ImageAsset) (models.FraudAssessment, error)
}
