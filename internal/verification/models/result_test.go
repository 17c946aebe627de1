package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerificationType(t *testing.T) {
	for _, valid := range []string{"FACIAL_BIOMETRY", "FINGERPRINT_BIOMETRY", "DOCUMENT_ANALYSIS"} {
		parsed, err := ParseVerificationType(valid)
		require.NoError(t, err)
		assert.Equal(t, VerificationType(valid), parsed)
	}

	_, err := ParseVerificationType("RETINA_SCAN")
	assert.EqualError(t, err, `unknown verification type "RETINA_SCAN"`)

	_, err = ParseVerificationType("facial_biometry")
	assert.Error(t, err)
}

func TestVerificationResponseJSONOmitsEmptyFields(t *testing.T) {
	resp := VerificationResponse{
		UserID:           "user-1",
		VerificationType: TypeFacialBiometry,
		ProcessedAt:      time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Status:           StatusRejected,
		Message:          "Image validation failed: [File is empty]",
	}

	payload, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.NotContains(t, decoded, "id")
	assert.NotContains(t, decoded, "fraudTypes")
	assert.Equal(t, "REJECTED", decoded["status"])
	assert.Equal(t, false, decoded["fraudDetected"])
}

func TestFraudAssessment(t *testing.T) {
	clean := NewFraudAssessment(nil)
	assert.False(t, clean.FraudDetected)
	assert.Empty(t, clean.FraudTypes)

	flagged := NewFraudAssessment([]string{"DEEPFAKE"})
	assert.True(t, flagged.FraudDetected)
	assert.True(t, flagged.Has("DEEPFAKE"))
	assert.False(t, flagged.Has("MASK"))
}
