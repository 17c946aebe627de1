package models

import dErrors "quod/pkg/domain-errors"

// FacialRequest asks for verification of a single face image.
type FacialRequest struct {
	UserID      string
	FaceImage   ImageAsset
	DeviceInfo  string
	GeoLocation string
}

// FingerprintRequest asks for verification of a single fingerprint image.
type FingerprintRequest struct {
	UserID           string
	FingerprintImage ImageAsset
	FingerPosition   string
	DeviceInfo       string
	GeoLocation      string
}

// DocumentPairRequest asks for verification of a document image against a
// live face image.
type DocumentPairRequest struct {
	UserID        string
	DocumentImage ImageAsset
	FaceImage     ImageAsset
	DocumentType  string // e.g. "ID_CARD", "PASSPORT", "DRIVER_LICENSE"
	DeviceInfo    string
	GeoLocation   string
}

// Validate enforces required-field presence. The transport layer calls this
// before handing the request to the orchestrator.
func (r FacialRequest) Validate() error {
	if r.UserID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "User ID is required")
	}
	if r.FaceImage.Open == nil {
		return dErrors.New(dErrors.CodeBadRequest, "Face image is required")
	}
	return nil
}

// Validate enforces required-field presence.
func (r FingerprintRequest) Validate() error {
	if r.UserID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "User ID is required")
	}
	if r.FingerprintImage.Open == nil {
		return dErrors.New(dErrors.CodeBadRequest, "Fingerprint image is required")
	}
	if r.FingerPosition == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Finger position is required")
	}
	return nil
}

// Validate enforces required-field presence.
func (r DocumentPairRequest) Validate() error {
	if r.UserID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "User ID is required")
	}
	if r.DocumentImage.Open == nil {
		return dErrors.New(dErrors.CodeBadRequest, "Document image is required")
	}
	if r.FaceImage.Open == nil {
		return dErrors.New(dErrors.CodeBadRequest, "Face image is required")
	}
	if r.DocumentType == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Document type is required")
	}
	return nil
}
