package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    map[string][]domain.Chunk // document id -> chunks
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string][]domain.Chunk),
	}
}

// SaveDocument stores or updates a document.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns documents in the given state, all when empty.
func (s *DocumentStore) ListDocuments(_ context.Context, state domain.ProcessingState) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		if state != "" && doc.State != state {
			continue
		}
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteDocument removes a document and its chunks.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
	delete(s.chunks, id)
	return nil
}

// SaveChunks stores chunks for a document, replacing existing ones.
func (s *DocumentStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docID := chunks[0].DocumentID
	s.chunks[docID] = append([]domain.Chunk(nil), chunks...)
	return nil
}

// GetChunk retrieves a single chunk by ID.
func (s *DocumentStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, chunks := range s.chunks {
		for i := range chunks {
			if chunks[i].ID == id {
				c := chunks[i]
				return &c, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

// ListChunks returns all chunks of ready documents, ordered by document
// then position.
func (s *DocumentStore) ListChunks(_ context.Context) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docIDs := make([]string, 0, len(s.chunks))
	for id := range s.chunks {
		if doc, ok := s.documents[id]; ok && doc.State == domain.StateReady {
			docIDs = append(docIDs, id)
		}
	}
	sort.Strings(docIDs)

	var out []domain.Chunk
	for _, id := range docIDs {
		chunks := append([]domain.Chunk(nil), s.chunks[id]...)
		sort.Slice(chunks, func(i, j int) bool { return chunks[i].Position < chunks[j].Position })
		out = append(out, chunks...)
	}
	return out, nil
}
