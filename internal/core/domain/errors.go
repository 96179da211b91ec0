package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
//
// Rule violations are NOT errors: a configuration that breaks a
// compatibility rule still produces a successful ValidationResult
// with IsValid=false. Errors are reserved for structural failures.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownProduct indicates a referenced product id does not exist,
	// or references a product of the wrong type (e.g. validating against
	// a series instead of a model).
	ErrUnknownProduct = errors.New("unknown product")

	// ErrMalformedQuery indicates a search query that is empty after trimming.
	ErrMalformedQuery = errors.New("malformed query")

	// ErrCacheUnavailable indicates the projection cache has not been built yet.
	// Fatal for validation and search until the first refresh completes.
	ErrCacheUnavailable = errors.New("projection cache unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// The vector signal is disabled without embeddings; other signals still fire.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrIndexUnavailable indicates a relevance index is not configured.
	ErrIndexUnavailable = errors.New("relevance index unavailable")
)
