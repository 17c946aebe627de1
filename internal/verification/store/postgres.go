package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"quod/internal/verification/models"
	"quod/pkg/platform/sentinel"
)

// PostgresStore persists verification results in PostgreSQL. Schema lives in
// migrations/0001_verification_results.sql; metadata is stored as JSONB and
// fraud types as a text array.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed result store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const resultColumns = `id, user_id, verification_type, created_at, processed_at,
	fraud_detected, fraud_types, status, metadata, notification_id`

// Save inserts the result (assigning an ID) or updates an existing row.
func (s *PostgresStore) Save(ctx context.Context, result *models.VerificationResult) (*models.VerificationResult, error) {
	if result == nil {
		return nil, fmt.Errorf("verification result is required")
	}

	metadata, err := json.Marshal(result.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal result metadata: %w", err)
	}

	stored := *result
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}

	query := `
		INSERT INTO verification_results
			(id, user_id, verification_type, created_at, processed_at,
			 fraud_detected, fraud_types, status, metadata, notification_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			fraud_detected = EXCLUDED.fraud_detected,
			fraud_types = EXCLUDED.fraud_types,
			status = EXCLUDED.status,
			metadata = EXCLUDED.metadata,
			processed_at = EXCLUDED.processed_at,
			notification_id = EXCLUDED.notification_id
	`
	_, err = s.db.ExecContext(ctx, query,
		stored.ID,
		stored.UserID,
		string(stored.Type),
		stored.CreatedAt,
		stored.ProcessedAt,
		stored.FraudDetected,
		pq.Array(stored.FraudTypes),
		string(stored.Status),
		metadata,
		nullString(stored.NotificationID),
	)
	if err != nil {
		return nil, fmt.Errorf("save verification result: %w", err)
	}
	return &stored, nil
}

// FindByID returns the result with the given identity.
func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.VerificationResult, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+resultColumns+` FROM verification_results WHERE id = $1`, id)
	result, err := scanResult(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find verification result: %w", err)
	}
	return result, nil
}

// FindByUser returns all results for a user, oldest first.
func (s *PostgresStore) FindByUser(ctx context.Context, userID string) ([]*models.VerificationResult, error) {
	return s.query(ctx,
		`SELECT `+resultColumns+` FROM verification_results
		 WHERE user_id = $1 ORDER BY created_at, id`, userID)
}

// FindByUserAndType returns all results for a user and modality, oldest first.
func (s *PostgresStore) FindByUserAndType(ctx context.Context, userID string, verificationType models.VerificationType) ([]*models.VerificationResult, error) {
	return s.query(ctx,
		`SELECT `+resultColumns+` FROM verification_results
		 WHERE user_id = $1 AND verification_type = $2 ORDER BY created_at, id`,
		userID, string(verificationType))
}

// FindByFraudFlag returns all results matching the fraud flag, oldest first.
func (s *PostgresStore) FindByFraudFlag(ctx context.Context, fraudDetected bool) ([]*models.VerificationResult, error) {
	return s.query(ctx,
		`SELECT `+resultColumns+` FROM verification_results
		 WHERE fraud_detected = $1 ORDER BY created_at, id`, fraudDetected)
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]*models.VerificationResult, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query verification results: %w", err)
	}
	defer rows.Close()

	results := []*models.VerificationResult{}
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan verification result: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verification results: %w", err)
	}
	return results, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*models.VerificationResult, error) {
	var (
		result         models.VerificationResult
		fraudTypes     pq.StringArray
		metadata       []byte
		notificationID sql.NullString
	)
	err := row.Scan(
		&result.ID,
		&result.UserID,
		&result.Type,
		&result.CreatedAt,
		&result.ProcessedAt,
		&result.FraudDetected,
		&fraudTypes,
		&result.Status,
		&metadata,
		&notificationID,
	)
	if err != nil {
		return nil, err
	}

	result.FraudTypes = []string(fraudTypes)
	result.NotificationID = notificationID.String
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &result.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal result metadata: %w", err)
		}
	}
	return &result, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
