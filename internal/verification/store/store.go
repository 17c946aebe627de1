// Package store persists verification results. The service layer depends on
// the ResultStore contract only; memory and PostgreSQL implementations are
// interchangeable, with an optional Redis read-through decorator on top.
package store

import (
	"context"

	"quod/internal/verification/models"
)

// ResultStore is the persistence boundary for verification outcomes.
//
// Save is insert-or-update by identity: a result without an ID is inserted
// and assigned one; a result with an ID is updated in place. There is no
// uniqueness constraint beyond the assigned identity; multiple results per
// user are expected and retained indefinitely.
type ResultStore interface {
	Save(ctx context.Context, result *models.VerificationResult) (*models.VerificationResult, error)
	FindByID(ctx context.Context, id string) (*models.VerificationResult, error)
	FindByUser(ctx context.Context, userID string) ([]*models.VerificationResult, error)
	FindByUserAndType(ctx context.Context, userID string, verificationType models.VerificationType) ([]*models.VerificationResult, error)
	FindByFraudFlag(ctx context.Context, fraudDetected bool) ([]*models.VerificationResult, error)
}
