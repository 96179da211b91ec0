package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
)

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// SaveDocument stores or updates a document.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling document metadata: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO documents (
			id, manufacturer_id, product_id, title, type, state, metadata,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			manufacturer_id = excluded.manufacturer_id,
			product_id = excluded.product_id,
			title = excluded.title,
			type = excluded.type,
			state = excluded.state,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at
	`, doc.ID, doc.ManufacturerID, nullStringPtr(doc.ProductID), doc.Title,
		string(doc.Type), string(doc.State), string(metadata),
		doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, manufacturer_id, product_id, title, type, state, metadata,
		       created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	doc, err := scanDocument(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// ListDocuments returns documents in the given state, all when empty.
func (s *documentStore) ListDocuments(ctx context.Context, state domain.ProcessingState) ([]domain.Document, error) {
	query := `
		SELECT id, manufacturer_id, product_id, title, type, state, metadata,
		       created_at, updated_at
		FROM documents`
	args := []any{}
	if state != "" {
		query += " WHERE state = ?"
		args = append(args, string(state))
	}
	query += " ORDER BY id"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// DeleteDocument removes a document. Chunks cascade.
func (s *documentStore) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// SaveChunks stores chunks for a document, replacing any existing ones.
// All chunks must belong to the same document.
func (s *documentStore) SaveChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	documentID := chunks[0].DocumentID
	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, content, position, error_codes, part_numbers, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	for i := range chunks {
		c := &chunks[i]
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.DocumentID != documentID {
			return fmt.Errorf("%w: chunk %s belongs to a different document", domain.ErrInvalidInput, c.ID)
		}

		codes, err := marshalStrings(c.ErrorCodes)
		if err != nil {
			return err
		}
		parts, err := marshalStrings(c.PartNumbers)
		if err != nil {
			return err
		}

		if _, err := stmt.ExecContext(ctx, c.ID, c.DocumentID, c.Content,
			c.Position, codes, parts, encodeEmbedding(c.Embedding)); err != nil {
			return fmt.Errorf("inserting chunk %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing chunks: %w", err)
	}
	return nil
}

// GetChunk retrieves a single chunk by ID.
func (s *documentStore) GetChunk(ctx context.Context, id string) (*domain.Chunk, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, document_id, content, position, error_codes, part_numbers, embedding
		FROM chunks WHERE id = ?
	`, id)

	c, err := scanChunk(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListChunks returns all chunks of ready documents, ordered by document
// then position. This is the projection refresh's bulk read path.
func (s *documentStore) ListChunks(ctx context.Context) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT c.id, c.document_id, c.content, c.position, c.error_codes,
		       c.part_numbers, c.embedding
		FROM chunks c
		JOIN documents d ON d.id = c.document_id
		WHERE d.state = ?
		ORDER BY c.document_id, c.position
	`, string(domain.StateReady))
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		c, err := scanChunk(rows.Scan)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return chunks, nil
}

// scanDocument reads one document row via the given scan function.
func scanDocument(scan func(...any) error) (*domain.Document, error) {
	var doc domain.Document
	var productID sql.NullString
	var typ, state, metadata string
	var createdAt, updatedAt sql.NullTime
	if err := scan(&doc.ID, &doc.ManufacturerID, &productID, &doc.Title,
		&typ, &state, &metadata, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	doc.ProductID = ptrFromNull(productID)
	doc.Type = domain.DocumentType(typ)
	doc.State = domain.ProcessingState(state)
	if metadata != "" && metadata != jsonNull {
		if err := json.Unmarshal([]byte(metadata), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling document metadata: %w", err)
		}
	}
	if createdAt.Valid {
		doc.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		doc.UpdatedAt = updatedAt.Time
	}
	return &doc, nil
}

// scanChunk reads one chunk row via the given scan function.
func scanChunk(scan func(...any) error) (*domain.Chunk, error) {
	var c domain.Chunk
	var codes, parts string
	var embedding []byte
	if err := scan(&c.ID, &c.DocumentID, &c.Content, &c.Position,
		&codes, &parts, &embedding); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	var err error
	if c.ErrorCodes, err = unmarshalStrings(codes); err != nil {
		return nil, err
	}
	if c.PartNumbers, err = unmarshalStrings(parts); err != nil {
		return nil, err
	}
	c.Embedding = decodeEmbedding(embedding)
	return &c, nil
}
