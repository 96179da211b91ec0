package driven

import (
	"context"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
)

// DocumentStore provides document and chunk persistence.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents in the given processing state.
	// An empty state returns every document.
	ListDocuments(ctx context.Context, state domain.ProcessingState) ([]domain.Document, error)

	// DeleteDocument removes a document and its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// SaveChunks stores chunks for a document, replacing existing ones.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetChunk retrieves a single chunk by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// ListChunks returns all chunks belonging to ready documents,
	// ordered by document then position. This is the projection
	// refresh's bulk read path.
	ListChunks(ctx context.Context) ([]domain.Chunk, error)
}

// ErrorCodeStore provides normalized fault code persistence.
type ErrorCodeStore interface {
	// SaveErrorCode stores or updates an error code, upserting on the
	// (manufacturer, normalized code) pair.
	SaveErrorCode(ctx context.Context, ec *domain.ErrorCode) error

	// GetErrorCode retrieves a code by manufacturer and normalized code.
	// Returns domain.ErrNotFound if it does not exist.
	GetErrorCode(ctx context.Context, manufacturerID, code string) (*domain.ErrorCode, error)

	// ListErrorCodes returns all codes for a manufacturer.
	// An empty manufacturerID returns every code.
	ListErrorCodes(ctx context.Context, manufacturerID string) ([]domain.ErrorCode, error)
}
