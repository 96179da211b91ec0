package tui

import (
	"context"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
)

// mockSearchService is a test double for driving.SearchService.
type mockSearchService struct {
	matches   []domain.SearchMatch
	err       error
	lastQuery string
	lastLimit int
}

func (m *mockSearchService) Search(_ context.Context, query string, _ domain.SearchFilters, limit int) ([]domain.SearchMatch, error) {
	m.lastQuery = query
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.matches, nil
}
