package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
)

// Ensure ErrorCodeStore implements the interface.
var _ driven.ErrorCodeStore = (*ErrorCodeStore)(nil)

// ErrorCodeStore is an in-memory implementation of driven.ErrorCodeStore.
type ErrorCodeStore struct {
	mu    sync.RWMutex
	codes map[string]domain.ErrorCode // "manufacturer|code" -> entry
}

// NewErrorCodeStore creates a new in-memory error code store.
func NewErrorCodeStore() *ErrorCodeStore {
	return &ErrorCodeStore{
		codes: make(map[string]domain.ErrorCode),
	}
}

func codeKey(manufacturerID, code string) string {
	return manufacturerID + "|" + domain.NormalizeCode(code)
}

// SaveErrorCode stores or updates an error code, upserting on the
// (manufacturer, normalized code) pair.
func (s *ErrorCodeStore) SaveErrorCode(_ context.Context, ec *domain.ErrorCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *ec
	stored.Code = domain.NormalizeCode(ec.Code)
	s.codes[codeKey(ec.ManufacturerID, ec.Code)] = stored
	return nil
}

// GetErrorCode retrieves a code by manufacturer and normalized code.
func (s *ErrorCodeStore) GetErrorCode(_ context.Context, manufacturerID, code string) (*domain.ErrorCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ec, ok := s.codes[codeKey(manufacturerID, code)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ec, nil
}

// ListErrorCodes returns codes for a manufacturer, all when empty.
func (s *ErrorCodeStore) ListErrorCodes(_ context.Context, manufacturerID string) ([]domain.ErrorCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ErrorCode, 0, len(s.codes))
	for _, ec := range s.codes {
		if manufacturerID != "" && ec.ManufacturerID != manufacturerID {
			continue
		}
		out = append(out, ec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ManufacturerID != out[j].ManufacturerID {
			return out[i].ManufacturerID < out[j].ManufacturerID
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}
