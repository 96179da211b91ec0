package services

import "github.com/techdex-labs/techdex-cli/internal/core/projection"

// SnapshotProvider hands out the current projection snapshot.
// Implemented by projection.Cache; narrowed to an interface here so
// service tests can serve hand-built snapshots.
type SnapshotProvider interface {
	// Current returns the serving snapshot, or
	// domain.ErrCacheUnavailable before the first refresh.
	Current() (*projection.Snapshot, error)
}
