package models

import "io"

// ImageAsset is a handle to a submitted binary image. The transport layer owns
// the bytes; the pipeline only reads the declared attributes and, when a real
// detector needs pixels, streams them through Open. Size and ContentType come
// from the multipart part as declared by the client.
type ImageAsset struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// IsEmpty reports whether the asset carries no bytes.
func (a ImageAsset) IsEmpty() bool {
	return a.Size == 0
}

// ValidationOutcome is the typed result of one image validation pass.
// Produced once per image and never mutated afterwards.
type ValidationOutcome struct {
	Valid    bool
	Errors   []string
	Metadata map[string]any
}

// FraudAssessment is the typed verdict of one assessor call. FraudTypes is a
// set; the assessor reports each category at most once, in its fixed check
// order, so the slice is deterministic for a given decision source.
type FraudAssessment struct {
	FraudDetected bool
	FraudTypes    []string
}

// NewFraudAssessment derives the detected flag from set membership so the two
// fields can never disagree.
func NewFraudAssessment(fraudTypes []string) FraudAssessment {
	return FraudAssessment{
		FraudDetected: len(fraudTypes) > 0,
		FraudTypes:    fraudTypes,
	}
}

// Has reports whether the assessment contains the given fraud category.
func (a FraudAssessment) Has(fraudType string) bool {
	for _, t := range a.FraudTypes {
		if t == fraudType {
			return true
		}
	}
	return false
}
