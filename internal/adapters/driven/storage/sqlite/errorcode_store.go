package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
)

// errorCodeStore implements driven.ErrorCodeStore.
type errorCodeStore struct {
	store *Store
}

var _ driven.ErrorCodeStore = (*errorCodeStore)(nil)

// SaveErrorCode stores or updates an error code, upserting on the
// (manufacturer, normalized code) pair. The code is normalized on the
// way in so lookups always hit the canonical form.
func (s *errorCodeStore) SaveErrorCode(ctx context.Context, ec *domain.ErrorCode) error {
	if ec.ID == "" {
		ec.ID = uuid.NewString()
	}
	ec.Code = domain.NormalizeCode(ec.Code)
	if ec.Code == "" {
		return fmt.Errorf("%w: error code is empty after normalization", domain.ErrInvalidInput)
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO error_codes (id, manufacturer_id, code, description, solution, severity)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(manufacturer_id, code) DO UPDATE SET
			description = excluded.description,
			solution = excluded.solution,
			severity = excluded.severity
	`, ec.ID, ec.ManufacturerID, ec.Code, ec.Description, ec.Solution, string(ec.Severity))
	if err != nil {
		return fmt.Errorf("saving error code: %w", err)
	}
	return nil
}

// GetErrorCode retrieves a code by manufacturer and code. The lookup
// normalizes the code first, so raw forms like "SC-542" resolve.
func (s *errorCodeStore) GetErrorCode(ctx context.Context, manufacturerID, code string) (*domain.ErrorCode, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, manufacturer_id, code, description, solution, severity
		FROM error_codes
		WHERE manufacturer_id = ? AND code = ?
	`, manufacturerID, domain.NormalizeCode(code))

	ec, err := scanErrorCode(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return ec, nil
}

// ListErrorCodes returns all codes for a manufacturer, all when empty.
func (s *errorCodeStore) ListErrorCodes(ctx context.Context, manufacturerID string) ([]domain.ErrorCode, error) {
	query := `
		SELECT id, manufacturer_id, code, description, solution, severity
		FROM error_codes`
	args := []any{}
	if manufacturerID != "" {
		query += " WHERE manufacturer_id = ?"
		args = append(args, manufacturerID)
	}
	query += " ORDER BY code"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying error codes: %w", err)
	}
	defer rows.Close()

	var codes []domain.ErrorCode //nolint:prealloc // size unknown from query
	for rows.Next() {
		ec, err := scanErrorCode(rows.Scan)
		if err != nil {
			return nil, err
		}
		codes = append(codes, *ec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating error codes: %w", err)
	}
	return codes, nil
}

// scanErrorCode reads one error code row via the given scan function.
func scanErrorCode(scan func(...any) error) (*domain.ErrorCode, error) {
	var ec domain.ErrorCode
	var severity string
	if err := scan(&ec.ID, &ec.ManufacturerID, &ec.Code, &ec.Description,
		&ec.Solution, &severity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scanning error code: %w", err)
	}
	ec.Severity = domain.Severity(severity)
	return &ec, nil
}
