package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
)

// Ensure RuleStore implements the interface.
var _ driven.RuleStore = (*RuleStore)(nil)

// RuleStore is an in-memory implementation of driven.RuleStore.
// Rules are keyed by (base, option) so saving twice upserts.
type RuleStore struct {
	mu     sync.RWMutex
	rules  map[string]domain.CompatibilityRule // "base|option" -> rule
	groups map[string]domain.OptionGroup
}

// NewRuleStore creates a new in-memory rule store.
func NewRuleStore() *RuleStore {
	return &RuleStore{
		rules:  make(map[string]domain.CompatibilityRule),
		groups: make(map[string]domain.OptionGroup),
	}
}

func ruleKey(baseID, optionID string) string {
	return baseID + "|" + optionID
}

// SaveRule stores or updates a rule, upserting on the (base, option) pair.
func (s *RuleStore) SaveRule(_ context.Context, r *domain.CompatibilityRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[ruleKey(r.BaseProductID, r.OptionProductID)] = *r
	return nil
}

// GetRule retrieves the rule for a (base, option) pair.
func (s *RuleStore) GetRule(_ context.Context, baseID, optionID string) (*domain.CompatibilityRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rules[ruleKey(baseID, optionID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

// ListRules returns rules for a base product, all when empty.
func (s *RuleStore) ListRules(_ context.Context, baseID string) ([]domain.CompatibilityRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CompatibilityRule, 0, len(s.rules))
	for _, r := range s.rules {
		if baseID != "" && r.BaseProductID != baseID {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BaseProductID != out[j].BaseProductID {
			return out[i].BaseProductID < out[j].BaseProductID
		}
		return out[i].OptionProductID < out[j].OptionProductID
	})
	return out, nil
}

// SaveGroup stores or updates an option group.
func (s *RuleStore) SaveGroup(_ context.Context, g *domain.OptionGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[g.ID] = *g
	return nil
}

// ListGroups returns groups for a manufacturer, all when empty.
func (s *RuleStore) ListGroups(_ context.Context, manufacturerID string) ([]domain.OptionGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.OptionGroup, 0, len(s.groups))
	for _, g := range s.groups {
		if manufacturerID != "" && g.ManufacturerID != manufacturerID {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
