package cli

import (
	"context"
	"time"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
)

// mockSearchService returns canned matches and records the last call.
type mockSearchService struct {
	matches     []domain.SearchMatch
	err         error
	lastQuery   string
	lastFilters domain.SearchFilters
	lastLimit   int
}

func (m *mockSearchService) Search(_ context.Context, query string, filters domain.SearchFilters, limit int) ([]domain.SearchMatch, error) {
	m.lastQuery = query
	m.lastFilters = filters
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.matches, nil
}

// mockConfigurationService returns canned validation results and options.
type mockConfigurationService struct {
	result       *domain.ValidationResult
	options      []domain.OptionInfo
	err          error
	lastBaseID   string
	lastSelected []string
}

func (m *mockConfigurationService) ValidateConfiguration(_ context.Context, baseID string, selected []string) (*domain.ValidationResult, error) {
	m.lastBaseID = baseID
	m.lastSelected = selected
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.ValidationResult{IsValid: true}, nil
}

func (m *mockConfigurationService) GetAvailableOptions(_ context.Context, modelID string) ([]domain.OptionInfo, error) {
	m.lastBaseID = modelID
	if m.err != nil {
		return nil, m.err
	}
	return m.options, nil
}

// mockProjectionService tracks refresh and trigger calls.
type mockProjectionService struct {
	refreshErr error
	age        time.Duration
	ageErr     error
	refreshed  bool
	triggered  bool
}

func (m *mockProjectionService) Refresh(context.Context) error {
	m.refreshed = true
	return m.refreshErr
}

func (m *mockProjectionService) Trigger() {
	m.triggered = true
}

func (m *mockProjectionService) Age() (time.Duration, error) {
	if m.ageErr != nil {
		return 0, m.ageErr
	}
	return m.age, nil
}

func (m *mockProjectionService) Start(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// setupTestServices injects mock services into the package-level wiring
// so commands run without touching a real store. The returned cleanup
// restores the previous state.
func setupTestServices() func() {
	oldSearch := searchService
	oldConfiguration := configurationService
	oldProjection := projectionService

	searchService = &mockSearchService{
		matches: []domain.SearchMatch{
			{
				ChunkID:       "chunk-1",
				DocumentID:    "doc-1",
				DocumentTitle: "Test Document",
				Score:         0.95,
				Snippet:       "a matching snippet",
			},
		},
	}
	configurationService = &mockConfigurationService{}
	projectionService = &mockProjectionService{age: 1500 * time.Millisecond}

	return func() {
		searchService = oldSearch
		configurationService = oldConfiguration
		projectionService = oldProjection
	}
}
