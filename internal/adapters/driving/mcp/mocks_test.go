package mcp

import (
	"context"
	"time"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	matches     []domain.SearchMatch
	err         error
	lastQuery   string
	lastFilters domain.SearchFilters
	lastLimit   int
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	filters domain.SearchFilters,
	limit int,
) ([]domain.SearchMatch, error) {
	m.lastQuery = query
	m.lastFilters = filters
	m.lastLimit = limit
	return m.matches, m.err
}

// mockConfigurationService is a mock implementation of driving.ConfigurationService.
type mockConfigurationService struct {
	result  *domain.ValidationResult
	options []domain.OptionInfo
	err     error
}

func (m *mockConfigurationService) ValidateConfiguration(
	_ context.Context,
	_ string,
	_ []string,
) (*domain.ValidationResult, error) {
	return m.result, m.err
}

func (m *mockConfigurationService) GetAvailableOptions(
	_ context.Context,
	_ string,
) ([]domain.OptionInfo, error) {
	return m.options, m.err
}

// mockProjectionService is a mock implementation of driving.ProjectionService.
type mockProjectionService struct {
	age        time.Duration
	ageErr     error
	refreshErr error
	refreshed  bool
	triggered  bool
}

func (m *mockProjectionService) Refresh(_ context.Context) error {
	m.refreshed = true
	return m.refreshErr
}

func (m *mockProjectionService) Trigger() {
	m.triggered = true
}

func (m *mockProjectionService) Age() (time.Duration, error) {
	return m.age, m.ageErr
}

func (m *mockProjectionService) Start(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// mockCatalogStore is a mock implementation of driven.CatalogStore.
type mockCatalogStore struct {
	manufacturers []domain.Manufacturer
	products      []domain.Product
	err           error
}

func (m *mockCatalogStore) SaveManufacturer(_ context.Context, _ *domain.Manufacturer) error {
	return m.err
}

func (m *mockCatalogStore) GetManufacturer(_ context.Context, _ string) (*domain.Manufacturer, error) {
	return nil, domain.ErrNotFound
}

func (m *mockCatalogStore) ListManufacturers(_ context.Context) ([]domain.Manufacturer, error) {
	return m.manufacturers, m.err
}

func (m *mockCatalogStore) SaveProduct(_ context.Context, _ *domain.Product) error {
	return m.err
}

func (m *mockCatalogStore) GetProduct(_ context.Context, _ string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (m *mockCatalogStore) ListProducts(_ context.Context, _ string) ([]domain.Product, error) {
	return m.products, m.err
}

func (m *mockCatalogStore) DeleteProduct(_ context.Context, _ string) error {
	return m.err
}
