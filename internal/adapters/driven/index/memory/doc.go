// Package memory provides in-memory relevance index implementations.
// Both indexes are rebuilt from scratch on every projection refresh and
// handed to an immutable snapshot, so they optimise for build-then-read:
// writes are only expected before the first Search call.
package memory
