package driving

import (
	"context"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
)

// SearchService provides multi-signal relevance search over the indexed
// documentation corpus.
type SearchService interface {
	// Search returns ranked matches for the query, narrowed by filters
	// and truncated to limit (default 50 when limit <= 0).
	// Returns domain.ErrMalformedQuery for a query that is empty after
	// trimming, and domain.ErrCacheUnavailable before the first
	// projection refresh completes.
	Search(ctx context.Context, query string, filters domain.SearchFilters, limit int) ([]domain.SearchMatch, error)
}
