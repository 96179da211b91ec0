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

// ruleStore implements driven.RuleStore.
type ruleStore struct {
	store *Store
}

var _ driven.RuleStore = (*ruleStore)(nil)

// SaveRule stores or updates a compatibility rule, upserting on the
// (base, option) pair.
func (s *ruleStore) SaveRule(ctx context.Context, r *domain.CompatibilityRule) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	exclusive, err := marshalStrings(r.MutuallyExclusive)
	if err != nil {
		return err
	}
	requires, err := marshalStrings(r.Requires)
	if err != nil {
		return err
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO compatibility_rules (
			id, base_product_id, option_product_id, is_compatible,
			mutually_exclusive, requires, priority, notes, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(base_product_id, option_product_id) DO UPDATE SET
			is_compatible = excluded.is_compatible,
			mutually_exclusive = excluded.mutually_exclusive,
			requires = excluded.requires,
			priority = excluded.priority,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`, r.ID, r.BaseProductID, r.OptionProductID, r.IsCompatible,
		exclusive, requires, r.Priority, r.Notes, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving compatibility rule: %w", err)
	}
	return nil
}

// GetRule retrieves the rule for a (base, option) pair.
func (s *ruleStore) GetRule(ctx context.Context, baseID, optionID string) (*domain.CompatibilityRule, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, base_product_id, option_product_id, is_compatible,
		       mutually_exclusive, requires, priority, notes, created_at, updated_at
		FROM compatibility_rules
		WHERE base_product_id = ? AND option_product_id = ?
	`, baseID, optionID)

	r, err := scanRule(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

// ListRules returns all rules for a base product, all rules when empty.
func (s *ruleStore) ListRules(ctx context.Context, baseID string) ([]domain.CompatibilityRule, error) {
	query := `
		SELECT id, base_product_id, option_product_id, is_compatible,
		       mutually_exclusive, requires, priority, notes, created_at, updated_at
		FROM compatibility_rules`
	args := []any{}
	if baseID != "" {
		query += " WHERE base_product_id = ?"
		args = append(args, baseID)
	}
	query += " ORDER BY base_product_id, option_product_id"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying compatibility rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.CompatibilityRule //nolint:prealloc // size unknown from query
	for rows.Next() {
		r, err := scanRule(rows.Scan)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating compatibility rules: %w", err)
	}
	return rules, nil
}

// SaveGroup stores or updates an option group, upserting on the
// (manufacturer, name) pair.
func (s *ruleStore) SaveGroup(ctx context.Context, g *domain.OptionGroup) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}

	members, err := marshalStrings(g.Members)
	if err != nil {
		return err
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO option_groups (
			id, manufacturer_id, name, type, min_selections, max_selections,
			members, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(manufacturer_id, name) DO UPDATE SET
			type = excluded.type,
			min_selections = excluded.min_selections,
			max_selections = excluded.max_selections,
			members = excluded.members
	`, g.ID, g.ManufacturerID, g.Name, string(g.Type),
		g.MinSelections, g.MaxSelections, members, g.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving option group: %w", err)
	}
	return nil
}

// ListGroups returns all option groups for a manufacturer, all when empty.
func (s *ruleStore) ListGroups(ctx context.Context, manufacturerID string) ([]domain.OptionGroup, error) {
	query := `
		SELECT id, manufacturer_id, name, type, min_selections, max_selections,
		       members, created_at
		FROM option_groups`
	args := []any{}
	if manufacturerID != "" {
		query += " WHERE manufacturer_id = ?"
		args = append(args, manufacturerID)
	}
	query += " ORDER BY id"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying option groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.OptionGroup //nolint:prealloc // size unknown from query
	for rows.Next() {
		var g domain.OptionGroup
		var typ, members string
		var createdAt sql.NullTime
		if err := rows.Scan(&g.ID, &g.ManufacturerID, &g.Name, &typ,
			&g.MinSelections, &g.MaxSelections, &members, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning option group: %w", err)
		}
		g.Type = domain.GroupType(typ)
		if g.Members, err = unmarshalStrings(members); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			g.CreatedAt = createdAt.Time
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating option groups: %w", err)
	}
	return groups, nil
}

// scanRule reads one compatibility rule row via the given scan function.
func scanRule(scan func(...any) error) (*domain.CompatibilityRule, error) {
	var r domain.CompatibilityRule
	var exclusive, requires string
	var createdAt, updatedAt sql.NullTime
	if err := scan(&r.ID, &r.BaseProductID, &r.OptionProductID, &r.IsCompatible,
		&exclusive, &requires, &r.Priority, &r.Notes, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scanning compatibility rule: %w", err)
	}

	var err error
	if r.MutuallyExclusive, err = unmarshalStrings(exclusive); err != nil {
		return nil, err
	}
	if r.Requires, err = unmarshalStrings(requires); err != nil {
		return nil, err
	}
	if createdAt.Valid {
		r.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		r.UpdatedAt = updatedAt.Time
	}
	return &r, nil
}
