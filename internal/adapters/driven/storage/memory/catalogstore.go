// Package memory provides in-memory store implementations.
// Used by tests and as a lightweight backend for demos; the durable
// backend is the sqlite package.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
type CatalogStore struct {
	mu            sync.RWMutex
	manufacturers map[string]domain.Manufacturer
	products      map[string]domain.Product
}

// NewCatalogStore creates a new in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		manufacturers: make(map[string]domain.Manufacturer),
		products:      make(map[string]domain.Product),
	}
}

// SaveManufacturer stores or updates a manufacturer.
func (s *CatalogStore) SaveManufacturer(_ context.Context, m *domain.Manufacturer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manufacturers[m.ID] = *m
	return nil
}

// GetManufacturer retrieves a manufacturer by ID.
func (s *CatalogStore) GetManufacturer(_ context.Context, id string) (*domain.Manufacturer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.manufacturers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

// ListManufacturers returns all manufacturers sorted by ID.
func (s *CatalogStore) ListManufacturers(_ context.Context) ([]domain.Manufacturer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Manufacturer, 0, len(s.manufacturers))
	for _, m := range s.manufacturers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SaveProduct stores or updates a product.
func (s *CatalogStore) SaveProduct(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = *p
	return nil
}

// GetProduct retrieves a product by ID.
func (s *CatalogStore) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// ListProducts returns products for a manufacturer, all when empty.
func (s *CatalogStore) ListProducts(_ context.Context, manufacturerID string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if manufacturerID != "" && p.ManufacturerID != manufacturerID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteProduct removes a product.
func (s *CatalogStore) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
	return nil
}
