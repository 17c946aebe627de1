package imaging

import (
	"time"

	"quod/internal/verification/models"
)

// Extractor pulls metadata out of an image asset. Real EXIF parsing satisfies
// this contract; the simulated implementation below stands in until it lands.
type Extractor interface {
	Extract(asset models.ImageAsset) map[string]any
}

// SimulatedExtractor fabricates the metadata a real extractor would read from
// EXIF. The GPS decision and the clock are injected so outputs are
// deterministic under test; never reach for an ambient random source here.
type SimulatedExtractor struct {
	clock func() time.Time
	gps   func() bool
}

// NewSimulatedExtractor builds a simulated extractor. Nil arguments default
// to the wall clock and to never attaching coordinates.
func NewSimulatedExtractor(clock func() time.Time, gps func() bool) *SimulatedExtractor {
	if clock == nil {
		clock = time.Now
	}
	if gps == nil {
		gps = func() bool { return false }
	}
	return &SimulatedExtractor{clock: clock, gps: gps}
}

// Extract captures the declared asset attributes plus simulated EXIF fields.
func (e *SimulatedExtractor) Extract(asset models.ImageAsset) map[string]any {
	metadata := map[string]any{
		"filename":           asset.Filename,
		"contentType":        asset.ContentType,
		"size":               asset.Size,
		"captureDate":        e.clock(),
		"deviceManufacturer": "Simulated Device Manufacturer",
	}
	if e.gps() {
		metadata["gpsLatitude"] = "40.7128° N"
		metadata["gpsLongitude"] = "74.0060° W"
	}
	return metadata
}
