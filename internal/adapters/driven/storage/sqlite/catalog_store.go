package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
)

// catalogStore implements driven.CatalogStore.
type catalogStore struct {
	store *Store
}

var _ driven.CatalogStore = (*catalogStore)(nil)

// SaveManufacturer stores or updates a manufacturer.
func (s *catalogStore) SaveManufacturer(ctx context.Context, m *domain.Manufacturer) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO manufacturers (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name
	`, m.ID, m.Name, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving manufacturer: %w", err)
	}
	return nil
}

// GetManufacturer retrieves a manufacturer by ID.
func (s *catalogStore) GetManufacturer(ctx context.Context, id string) (*domain.Manufacturer, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, created_at FROM manufacturers WHERE id = ?
	`, id)

	var m domain.Manufacturer
	var createdAt sql.NullTime
	if err := row.Scan(&m.ID, &m.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning manufacturer: %w", err)
	}
	if createdAt.Valid {
		m.CreatedAt = createdAt.Time
	}
	return &m, nil
}

// ListManufacturers returns all manufacturers ordered by name.
func (s *catalogStore) ListManufacturers(ctx context.Context) ([]domain.Manufacturer, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, created_at FROM manufacturers ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying manufacturers: %w", err)
	}
	defer rows.Close()

	var manufacturers []domain.Manufacturer //nolint:prealloc // size unknown from query
	for rows.Next() {
		var m domain.Manufacturer
		var createdAt sql.NullTime
		if err := rows.Scan(&m.ID, &m.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning manufacturer: %w", err)
		}
		if createdAt.Valid {
			m.CreatedAt = createdAt.Time
		}
		manufacturers = append(manufacturers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating manufacturers: %w", err)
	}
	return manufacturers, nil
}

// SaveProduct stores or updates a product.
func (s *catalogStore) SaveProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO products (id, manufacturer_id, name, type, parent_id, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			manufacturer_id = excluded.manufacturer_id,
			name = excluded.name,
			type = excluded.type,
			parent_id = excluded.parent_id,
			active = excluded.active,
			updated_at = excluded.updated_at
	`, p.ID, p.ManufacturerID, p.Name, string(p.Type), nullStringPtr(p.ParentID),
		p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving product: %w", err)
	}
	return nil
}

// GetProduct retrieves a product by ID.
func (s *catalogStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, manufacturer_id, name, type, parent_id, active, created_at, updated_at
		FROM products WHERE id = ?
	`, id)

	p, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListProducts returns products for a manufacturer, all when empty.
func (s *catalogStore) ListProducts(ctx context.Context, manufacturerID string) ([]domain.Product, error) {
	query := `
		SELECT id, manufacturer_id, name, type, parent_id, active, created_at, updated_at
		FROM products`
	args := []any{}
	if manufacturerID != "" {
		query += " WHERE manufacturer_id = ?"
		args = append(args, manufacturerID)
	}
	query += " ORDER BY id"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product //nolint:prealloc // size unknown from query
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	return products, nil
}

// DeleteProduct removes a product.
func (s *catalogStore) DeleteProduct(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	return nil
}

// scanProduct reads one product row via the given scan function.
func scanProduct(scan func(...any) error) (*domain.Product, error) {
	var p domain.Product
	var typ string
	var parentID sql.NullString
	var createdAt, updatedAt sql.NullTime
	if err := scan(&p.ID, &p.ManufacturerID, &p.Name, &typ, &parentID,
		&p.Active, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scanning product: %w", err)
	}
	p.Type = domain.ProductType(typ)
	p.ParentID = ptrFromNull(parentID)
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	}
	return &p, nil
}
