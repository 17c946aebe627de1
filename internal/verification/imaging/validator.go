// Package imaging performs structural validation of submitted image assets:
// presence, size, and declared format, plus metadata extraction. Validation is
// a pure function of the asset and the injected configuration; it performs no
// I/O and never fails the request itself.
package imaging

import (
	"fmt"
	"strings"

	"quod/internal/verification/models"
)

// Config holds the immutable validation thresholds. Injected at construction
// rather than read from mutable service fields.
type Config struct {
	MaxFileSize    int64
	AllowedFormats []string
	MinResolution  string
}

// DefaultConfig mirrors the production defaults: 5MB cap, JPEG/PNG only.
func DefaultConfig() Config {
	return Config{
		MaxFileSize:    5 * 1024 * 1024,
		AllowedFormats: []string{"image/jpeg", "image/png"},
		MinResolution:  "640x480",
	}
}

// Validator runs the structural checks against one asset at a time.
type Validator struct {
	cfg       Config
	extractor Extractor
}

// NewValidator constructs a validator. A nil extractor falls back to the
// simulated one so callers that only care about the checks stay simple.
func NewValidator(cfg Config, extractor Extractor) *Validator {
	if extractor == nil {
		extractor = NewSimulatedExtractor(nil, nil)
	}
	return &Validator{cfg: cfg, extractor: extractor}
}

// Validate checks the asset and extracts its metadata.
//
// An empty asset fails closed with a single error and no metadata. Otherwise
// the size and format checks accumulate errors in a fixed order and metadata
// extraction runs unconditionally, so a rejected submission still carries
// whatever could be read from it.
func (v *Validator) Validate(asset models.ImageAsset) models.ValidationOutcome {
	if asset.IsEmpty() {
		return models.ValidationOutcome{
			Valid:  false,
			Errors: []string{"File is empty"},
		}
	}

	var errs []string
	if asset.Size > v.cfg.MaxFileSize {
		errs = append(errs, fmt.Sprintf(
			"File size exceeds the maximum allowed size of %dMB",
			v.cfg.MaxFileSize/1024/1024))
	}
	if !v.formatAllowed(asset.ContentType) {
		errs = append(errs, fmt.Sprintf(
			"File format not supported. Allowed formats: %s",
			strings.Join(v.cfg.AllowedFormats, ", ")))
	}

	return models.ValidationOutcome{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Metadata: v.extractor.Extract(asset),
	}
}

func (v *Validator) formatAllowed(contentType string) bool {
	if contentType == "" {
		return false
	}
	for _, f := range v.cfg.AllowedFormats {
		if f == contentType {
			return true
		}
	}
	return false
}
