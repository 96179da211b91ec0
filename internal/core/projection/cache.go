package projection

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driving"
	"github.com/techdex-labs/techdex-cli/internal/logger"
)

// Ensure Cache implements the interface.
var _ driving.ProjectionService = (*Cache)(nil)

// DefaultRefreshInterval bounds snapshot staleness when no explicit
// trigger arrives.
const DefaultRefreshInterval = 5 * time.Minute

// Config holds construction parameters for the Cache.
type Config struct {
	// RefreshInterval is the periodic rebuild cadence
	// (default: DefaultRefreshInterval).
	RefreshInterval time.Duration

	// NewLexical constructs an empty lexical index per refresh.
	NewLexical func() driven.LexicalIndex

	// NewVector constructs an empty vector index per refresh.
	NewVector func() driven.VectorIndex
}

// Cache builds projection snapshots from the content store and publishes
// them through an atomic pointer. All methods are safe for concurrent use.
type Cache struct {
	catalog   driven.CatalogStore
	rules     driven.RuleStore
	documents driven.DocumentStore

	interval   time.Duration
	newLexical func() driven.LexicalIndex
	newVector  func() driven.VectorIndex

	snap    atomic.Pointer[Snapshot]
	version atomic.Uint64
	trigger chan struct{}
}

// NewCache creates a projection cache over the given stores.
// No snapshot is served until the first Refresh completes.
func NewCache(
	catalog driven.CatalogStore,
	rules driven.RuleStore,
	documents driven.DocumentStore,
	cfg Config,
) *Cache {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}

	return &Cache{
		catalog:    catalog,
		rules:      rules,
		documents:  documents,
		interval:   cfg.RefreshInterval,
		newLexical: cfg.NewLexical,
		newVector:  cfg.NewVector,
		trigger:    make(chan struct{}, 1),
	}
}

// Current returns the serving snapshot.
// Returns domain.ErrCacheUnavailable before the first successful refresh.
func (c *Cache) Current() (*Snapshot, error) {
	snap := c.snap.Load()
	if snap == nil {
		return nil, domain.ErrCacheUnavailable
	}
	return snap, nil
}

// Refresh rebuilds both projections and swaps the new snapshot in.
// On failure the previous snapshot keeps serving.
func (c *Cache) Refresh(ctx context.Context) error {
	logger.Section("Projection Refresh")
	start := time.Now()

	products, err := c.catalog.ListProducts(ctx, "")
	if err != nil {
		return fmt.Errorf("listing products: %w", err)
	}
	rules, err := c.rules.ListRules(ctx, "")
	if err != nil {
		return fmt.Errorf("listing rules: %w", err)
	}
	groups, err := c.rules.ListGroups(ctx, "")
	if err != nil {
		return fmt.Errorf("listing groups: %w", err)
	}
	docs, err := c.documents.ListDocuments(ctx, "")
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	chunks, err := c.documents.ListChunks(ctx)
	if err != nil {
		return fmt.Errorf("listing chunks: %w", err)
	}

	logger.Debug("Read content store: %d products, %d rules, %d groups, %d documents, %d chunks",
		len(products), len(rules), len(groups), len(docs), len(chunks))

	search, err := buildSearch(ctx, docs, chunks, c.newLexical, c.newVector)
	if err != nil {
		return fmt.Errorf("building search projection: %w", err)
	}

	snap := &Snapshot{
		Catalog: buildCatalog(products, rules, groups),
		Search:  search,
		BuiltAt: start,
		Version: c.version.Add(1),
	}

	c.snap.Store(snap)
	logger.Info("Snapshot v%d published: %d fragments, built in %s",
		snap.Version, len(snap.Search.Fragments), time.Since(start).Round(time.Millisecond))

	return nil
}

// Trigger schedules an asynchronous refresh. Coalesces with a pending one.
func (c *Cache) Trigger() {
	select {
	case c.trigger <- struct{}{}:
	default:
	}
}

// Age returns how far the serving snapshot lags the content store.
func (c *Cache) Age() (time.Duration, error) {
	snap := c.snap.Load()
	if snap == nil {
		return 0, domain.ErrCacheUnavailable
	}
	return time.Since(snap.BuiltAt), nil
}

// Start runs the periodic refresh loop until ctx is cancelled.
// Refresh failures are logged; the loop keeps the previous snapshot
// serving and retries on the next tick or trigger.
func (c *Cache) Start(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-c.trigger:
		}

		if err := c.Refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("Projection refresh failed, previous snapshot keeps serving: %v", err)
		}
	}
}
