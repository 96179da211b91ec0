package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
	"github.com/techdex-labs/techdex-cli/internal/core/projection"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driving"
	"github.com/techdex-labs/techdex-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Default search tuning values.
const (
	// DefaultLimit caps results when the caller does not specify one.
	DefaultLimit = 50

	// DefaultMinFuzzy is the fuzzy signal's activation threshold.
	DefaultMinFuzzy = 0.75

	// DefaultMinVector is the vector signal's activation threshold,
	// only consulted when vector-only inclusion is enabled.
	DefaultMinVector = 0.65
)

// SearchConfig tunes the multi-signal engine.
type SearchConfig struct {
	// MinFuzzy is the fuzzy similarity needed for the fuzzy signal to
	// fire (default: DefaultMinFuzzy).
	MinFuzzy float64

	// MinVector is the cosine similarity needed for a vector-only match
	// (default: DefaultMinVector).
	MinVector float64

	// VectorOnly includes fragments matched solely by embedding
	// proximity above MinVector. Off by default: without another signal
	// firing, low-similarity neighbours are noise.
	VectorOnly bool
}

// SearchService fuses lexical, fuzzy, exact-code, and vector signals
// into one ranked result set over the search projection.
type SearchService struct {
	snapshots SnapshotProvider
	embedder  driven.EmbeddingService // optional
	cfg       SearchConfig
}

// NewSearchService creates a search engine over the given snapshot
// provider. The embedder is optional (can be nil); without it the vector
// signal is simply absent.
func NewSearchService(snapshots SnapshotProvider, embedder driven.EmbeddingService, cfg SearchConfig) *SearchService {
	if cfg.MinFuzzy <= 0 {
		cfg.MinFuzzy = DefaultMinFuzzy
	}
	if cfg.MinVector <= 0 {
		cfg.MinVector = DefaultMinVector
	}
	return &SearchService{
		snapshots: snapshots,
		embedder:  embedder,
		cfg:       cfg,
	}
}

// candidate carries one fragment's per-signal scores during ranking.
type candidate struct {
	fragment *projection.Fragment
	signals  domain.SignalScores
	lexHit   bool
}

// Search returns ranked matches for the query, narrowed by filters and
// truncated to limit.
func (s *SearchService) Search(
	ctx context.Context, query string, filters domain.SearchFilters, limit int,
) ([]domain.SearchMatch, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q, filters: %+v", query, filters)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrMalformedQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	snap, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}
	proj := &snap.Search

	candidates := s.collectCandidates(proj, filters)
	logger.Debug("Candidates after filters: %d of %d fragments", len(candidates), len(proj.Fragments))
	if len(candidates) == 0 {
		return []domain.SearchMatch{}, nil
	}

	queryTokens := domain.Tokenize(query)
	normalizedQuery := domain.NormalizeCode(query)

	if err := s.scoreLexical(ctx, proj, candidates, query); err != nil {
		return nil, err
	}
	s.scoreFuzzyAndCode(candidates, queryTokens, normalizedQuery)
	if err := s.scoreVector(ctx, proj, candidates, query); err != nil {
		return nil, err
	}

	matches := s.rank(candidates, queryTokens, limit)
	logger.Info("Final results: %d", len(matches))
	return matches, nil
}

// collectCandidates applies the structural filters before any scoring.
func (s *SearchService) collectCandidates(
	proj *projection.SearchProjection, filters domain.SearchFilters,
) map[string]*candidate {
	candidates := make(map[string]*candidate)
	for id, f := range proj.Fragments {
		if filters.ManufacturerID != "" && f.ManufacturerID != filters.ManufacturerID {
			continue
		}
		if filters.ProductID != "" && f.ProductID != filters.ProductID {
			continue
		}
		if filters.DocumentType != "" && f.DocumentType != filters.DocumentType {
			continue
		}
		candidates[id] = &candidate{fragment: f}
	}
	return candidates
}

// scoreLexical queries the token index and records coverage scores.
func (s *SearchService) scoreLexical(
	ctx context.Context, proj *projection.SearchProjection, candidates map[string]*candidate, query string,
) error {
	hits, err := proj.Lexical.Search(ctx, query, 0)
	if err != nil {
		return fmt.Errorf("lexical search: %w", err)
	}
	for _, hit := range hits {
		if c, ok := candidates[hit.ChunkID]; ok {
			c.signals.Lexical = hit.Score
			c.lexHit = true
		}
	}
	logger.Debug("Lexical index: %d hits", len(hits))
	return nil
}

// scoreFuzzyAndCode computes the per-candidate fuzzy similarity and the
// exact normalized-code signal.
func (s *SearchService) scoreFuzzyAndCode(
	candidates map[string]*candidate, queryTokens []string, normalizedQuery string,
) {
	for _, c := range candidates {
		c.signals.Fuzzy = fuzzySimilarity(queryTokens, c.fragment.Tokens)
		if normalizedQuery != "" {
			if _, ok := c.fragment.Codes[normalizedQuery]; ok {
				c.signals.Code = 1
			}
		}
	}
}

// scoreVector embeds the query and records cosine similarities.
// Absent embedder or empty vector index just means the signal stays zero.
func (s *SearchService) scoreVector(
	ctx context.Context, proj *projection.SearchProjection, candidates map[string]*candidate, query string,
) error {
	if s.embedder == nil || proj.Vector == nil {
		logger.Debug("Vector signal absent: embedder=%t, index=%t", s.embedder != nil, proj.Vector != nil)
		return nil
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		// Degrade rather than fail: the other three signals still rank.
		logger.Warn("Query embedding failed, vector signal skipped: %v", err)
		return nil
	}

	hits, err := proj.Vector.Search(ctx, embedding, 0)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("vector search: %w", err)
	}

	for _, hit := range hits {
		if c, ok := candidates[hit.ChunkID]; ok {
			c.signals.Vector = hit.Similarity
		}
	}
	logger.Debug("Vector index: %d hits", len(hits))
	return nil
}

// rank gates candidates on signal activation, fuses scores by maximum,
// orders deterministically, and truncates to limit.
func (s *SearchService) rank(
	candidates map[string]*candidate, queryTokens []string, limit int,
) []domain.SearchMatch {
	included := make([]*candidate, 0, len(candidates))
	for _, c := range candidates {
		fired := c.lexHit ||
			c.signals.Fuzzy >= s.cfg.MinFuzzy ||
			c.signals.Code == 1
		if !fired && s.cfg.VectorOnly && c.signals.Vector >= s.cfg.MinVector {
			fired = true
		}
		if fired {
			included = append(included, c)
		}
	}

	sort.Slice(included, func(i, j int) bool {
		si, sj := included[i].signals.Max(), included[j].signals.Max()
		if si != sj {
			return si > sj
		}
		ti, tj := included[i].fragment.UpdatedAt, included[j].fragment.UpdatedAt
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return included[i].fragment.ChunkID < included[j].fragment.ChunkID
	})

	if len(included) > limit {
		included = included[:limit]
	}

	matches := make([]domain.SearchMatch, len(included))
	for i, c := range included {
		matches[i] = domain.SearchMatch{
			ChunkID:       c.fragment.ChunkID,
			DocumentID:    c.fragment.DocumentID,
			DocumentTitle: c.fragment.DocumentTitle,
			Score:         c.signals.Max(),
			Signals:       c.signals,
			Snippet:       makeSnippet(c.fragment.Content, queryTokens),
		}
	}
	return matches
}

// makeSnippet returns the first sentence containing a query token,
// trimmed to 200 characters, falling back to the fragment head.
func makeSnippet(content string, queryTokens []string) string {
	for _, sentence := range splitSentences(content) {
		lower := strings.ToLower(sentence)
		for _, token := range queryTokens {
			if strings.Contains(lower, token) {
				return truncate(sentence, 200)
			}
		}
	}
	return truncate(strings.TrimSpace(content), 200)
}

// splitSentences splits content on common sentence terminators.
func splitSentences(content string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range content {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
