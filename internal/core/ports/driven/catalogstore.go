package driven

import (
	"context"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
)

// CatalogStore provides manufacturer and product persistence.
type CatalogStore interface {
	// SaveManufacturer stores or updates a manufacturer.
	SaveManufacturer(ctx context.Context, m *domain.Manufacturer) error

	// GetManufacturer retrieves a manufacturer by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetManufacturer(ctx context.Context, id string) (*domain.Manufacturer, error)

	// ListManufacturers returns all manufacturers.
	ListManufacturers(ctx context.Context) ([]domain.Manufacturer, error)

	// SaveProduct stores or updates a product.
	SaveProduct(ctx context.Context, p *domain.Product) error

	// GetProduct retrieves a product by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetProduct(ctx context.Context, id string) (*domain.Product, error)

	// ListProducts returns all products for a manufacturer.
	// An empty manufacturerID returns every product.
	ListProducts(ctx context.Context, manufacturerID string) ([]domain.Product, error)

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, id string) error
}

// RuleStore provides compatibility rule and option group persistence.
type RuleStore interface {
	// SaveRule stores or updates a compatibility rule. At most one rule
	// exists per (base, option) pair; saving upserts on that pair.
	SaveRule(ctx context.Context, r *domain.CompatibilityRule) error

	// GetRule retrieves the rule for a (base, option) pair.
	// Returns domain.ErrNotFound if no rule has been authored.
	GetRule(ctx context.Context, baseID, optionID string) (*domain.CompatibilityRule, error)

	// ListRules returns all rules for a base product.
	// An empty baseID returns every rule.
	ListRules(ctx context.Context, baseID string) ([]domain.CompatibilityRule, error)

	// SaveGroup stores or updates an option group.
	SaveGroup(ctx context.Context, g *domain.OptionGroup) error

	// ListGroups returns all option groups for a manufacturer.
	// An empty manufacturerID returns every group.
	ListGroups(ctx context.Context, manufacturerID string) ([]domain.OptionGroup, error)
}
