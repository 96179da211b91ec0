package domain

import "time"

// DocumentType classifies service documentation.
type DocumentType string

const (
	// DocumentTypeServiceManual is a full service/repair manual.
	DocumentTypeServiceManual DocumentType = "service_manual"

	// DocumentTypePartsCatalog is a parts list with part numbers.
	DocumentTypePartsCatalog DocumentType = "parts_catalog"

	// DocumentTypeBulletin is a technical bulletin or field notice.
	DocumentTypeBulletin DocumentType = "bulletin"

	// DocumentTypeUserGuide is end-user documentation.
	DocumentTypeUserGuide DocumentType = "user_guide"
)

// ProcessingState tracks a document through the ingestion pipeline.
// Ingestion is an external collaborator; the engines only ever read
// documents in StateReady.
type ProcessingState string

const (
	// StatePending means the document is uploaded but not yet processed.
	StatePending ProcessingState = "pending"

	// StateProcessing means ingestion is extracting and embedding chunks.
	StateProcessing ProcessingState = "processing"

	// StateReady means the document is fully indexed and searchable.
	StateReady ProcessingState = "ready"

	// StateFailed means ingestion gave up on the document.
	StateFailed ProcessingState = "failed"
)

// Document represents one piece of service documentation after ingestion.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// ManufacturerID links to the Manufacturer the document covers.
	ManufacturerID string

	// ProductID optionally links to a specific product.
	ProductID *string

	// Title is the human-readable title.
	Title string

	// Type classifies the document.
	Type DocumentType

	// State is the ingestion processing state.
	State ProcessingState

	// Metadata contains arbitrary key-value pairs from ingestion.
	Metadata map[string]any

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the document was last updated. Search uses this
	// as the recency tie-breaker.
	UpdatedAt time.Time
}

// Chunk is the atomic unit of search: a fragment of document text with
// its extracted codes and optional embedding.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document. A chunk belongs to
	// exactly one document.
	DocumentID string

	// Content is the raw fragment text.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// ErrorCodes are fault codes extracted from the text, already
	// normalized (see NormalizeCode).
	ErrorCodes []string

	// PartNumbers are part numbers extracted from the text, already
	// normalized.
	PartNumbers []string

	// Embedding is the vector representation for semantic search.
	// Nil when ingestion has not embedded this chunk; the vector
	// signal is simply absent then.
	Embedding []float32
}
