package driving

import (
	"context"
	"time"
)

// ProjectionService manages the derived projection cache that both
// engines read. Snapshots are rebuilt in the background and swapped in
// atomically; requests always see either the previous complete snapshot
// or the new one, never a partial build.
type ProjectionService interface {
	// Refresh rebuilds the projections from the content store and swaps
	// the new snapshot in. On failure the previous snapshot keeps serving.
	Refresh(ctx context.Context) error

	// Trigger schedules an asynchronous refresh (e.g. after ingestion
	// completes). Non-blocking; coalesces with pending triggers.
	Trigger()

	// Age returns how far the serving snapshot lags the content store.
	// Returns domain.ErrCacheUnavailable before the first refresh.
	Age() (time.Duration, error)

	// Start runs the periodic refresh loop until ctx is cancelled.
	Start(ctx context.Context) error
}
