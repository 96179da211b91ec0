// Package cli provides the cobra command tree for the techdex binary.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/techdex-labs/techdex-cli/internal/adapters/driven/config/file"
	"github.com/techdex-labs/techdex-cli/internal/adapters/driven/embedding"
	indexmemory "github.com/techdex-labs/techdex-cli/internal/adapters/driven/index/memory"
	"github.com/techdex-labs/techdex-cli/internal/adapters/driven/storage/sqlite"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driving"
	"github.com/techdex-labs/techdex-cli/internal/core/projection"
	"github.com/techdex-labs/techdex-cli/internal/core/services"
	"github.com/techdex-labs/techdex-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flag values.
var (
	verbose   bool
	dataDir   string
	configDir string
)

// Wired services. Populated by initServices on first use; tests inject
// mocks directly.
var (
	configStore          driven.ConfigStore
	contentStore         *sqlite.Store
	catalogStore         driven.CatalogStore
	projectionService    driving.ProjectionService
	searchService        driving.SearchService
	configurationService driving.ConfigurationService
)

var rootCmd = &cobra.Command{
	Use:   "techdex",
	Short: "Service documentation and option compatibility for imaging equipment",
	Long: `Techdex answers two questions about printer and copier fleets:

  - does this combination of options fit this machine?
  - where in the service documentation is this error code, part, or symptom?

It serves both to technicians on the command line and to AI agents over MCP.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.techdex/data)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.techdex)")
}

// Execute runs the root command. v is the build version.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

// initServices wires the real service graph and performs the initial
// projection refresh. Idempotent: a second call is a no-op, which also
// lets tests pre-inject mock services.
func initServices(ctx context.Context) error {
	if searchService != nil && configurationService != nil {
		return nil
	}

	cfg, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	configStore = cfg

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening content store: %w", err)
	}
	contentStore = store
	catalogStore = store.CatalogStore()
	logger.Debug("Content store: %s", store.Path())

	cache := projection.NewCache(
		store.CatalogStore(),
		store.RuleStore(),
		store.DocumentStore(),
		projection.Config{
			RefreshInterval: refreshInterval(cfg),
			NewLexical:      func() driven.LexicalIndex { return indexmemory.NewLexicalIndex() },
			NewVector:       func() driven.VectorIndex { return indexmemory.NewVectorIndex() },
		},
	)
	projectionService = cache

	embedder, err := embedding.NewValidatedFromConfig(cfg)
	if err != nil {
		// A broken embedding provider degrades search, it does not
		// block it.
		logger.Warn("Embedding provider unavailable: %v", err)
		embedder = nil
	}
	if embedder != nil {
		logger.Debug("Embedding model: %s (%d dims)", embedder.ModelName(), embedder.Dimensions())
	}

	searchService = services.NewSearchService(cache, embedder, services.SearchConfig{
		MinFuzzy:   cfg.GetFloat("search.min_fuzzy"),
		MinVector:  cfg.GetFloat("search.min_vector"),
		VectorOnly: cfg.GetBool("search.vector_only"),
	})
	configurationService = services.NewValidationService(cache)

	logger.Section("Building projections")
	if err := cache.Refresh(ctx); err != nil {
		return fmt.Errorf("initial projection refresh: %w", err)
	}
	return nil
}

// refreshInterval reads projection.refresh_interval (seconds) from config.
func refreshInterval(cfg driven.ConfigStore) time.Duration {
	if secs := cfg.GetInt("projection.refresh_interval"); secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return projection.DefaultRefreshInterval
}

// startBackground runs the refresh loop and the content-store watcher
// for long-running commands (mcp serve, tui). Returns a stop function.
func startBackground(ctx context.Context) (func(), error) {
	bgCtx, cancel := context.WithCancel(ctx)

	go func() {
		if err := projectionService.Start(bgCtx); err != nil && bgCtx.Err() == nil {
			logger.Error("Projection refresh loop stopped: %v", err)
		}
	}()

	watcher, err := sqlite.NewWatcher(contentStore, projectionService.Trigger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("starting content watcher: %w", err)
	}
	watcher.Start(bgCtx)

	return func() {
		cancel()
		watcher.Close() //nolint:errcheck
	}, nil
}
