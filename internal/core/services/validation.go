package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
	"github.com/techdex-labs/techdex-cli/internal/core/projection"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driving"
	"github.com/techdex-labs/techdex-cli/internal/logger"
)

// Ensure ValidationService implements the interface.
var _ driving.ConfigurationService = (*ValidationService)(nil)

// Standing is what the tie-break policy sees for one option: its rule
// priority against the base, and whether a rule exists at all.
type Standing struct {
	// OptionID is the option product id.
	OptionID string

	// Priority is the rule priority; lower values win.
	Priority int

	// HasRule is false when no rule is authored for the pair. Options
	// without a rule rank behind every option with one.
	HasRule bool
}

// TieBreak reports whether option a is kept in preference to option b
// when a conflict or group overrun forces a removal suggestion.
// The policy is injectable; the default keeps the lower priority value
// and breaks ties by ascending option id.
type TieBreak func(a, b Standing) bool

// DefaultTieBreak is the normative priority-then-stable-id policy.
func DefaultTieBreak(a, b Standing) bool {
	ap, bp := a.Priority, b.Priority
	if !a.HasRule {
		ap = math.MaxInt
	}
	if !b.HasRule {
		bp = math.MaxInt
	}
	if ap != bp {
		return ap < bp
	}
	return a.OptionID < b.OptionID
}

// ValidationService is the option compatibility validator.
// It reads a projection snapshot and never touches the content store.
type ValidationService struct {
	snapshots SnapshotProvider
	tieBreak  TieBreak
}

// NewValidationService creates a validator over the given snapshot provider.
func NewValidationService(snapshots SnapshotProvider) *ValidationService {
	return &ValidationService{
		snapshots: snapshots,
		tieBreak:  DefaultTieBreak,
	}
}

// SetTieBreak overrides the removal tie-break policy.
func (s *ValidationService) SetTieBreak(tb TieBreak) {
	if tb != nil {
		s.tieBreak = tb
	}
}

// ValidateConfiguration checks a candidate selection against a base model.
func (s *ValidationService) ValidateConfiguration(
	_ context.Context, baseID string, selectedOptionIDs []string,
) (*domain.ValidationResult, error) {
	logger.Section("Configuration Validation")
	logger.Debug("Base: %s, selection: %v", baseID, selectedOptionIDs)

	snap, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}
	cat := &snap.Catalog

	base, ok := cat.Products[baseID]
	if !ok || !base.IsModel() {
		return nil, fmt.Errorf("base product %q: %w", baseID, domain.ErrUnknownProduct)
	}

	selected := dedupeSorted(selectedOptionIDs)
	for _, id := range selected {
		p, ok := cat.Products[id]
		if !ok || !p.IsOption() {
			return nil, fmt.Errorf("selected option %q: %w", id, domain.ErrUnknownProduct)
		}
	}

	v := newVerdict()
	s.checkCompatibility(cat, baseID, selected, v)
	s.checkConflicts(cat, baseID, selected, v)
	s.checkGroups(cat, base.ManufacturerID, baseID, selected, v)
	s.checkDependencies(cat, baseID, selected, v)

	result := v.result()
	logger.Info("Validation: valid=%t, %d violations", result.IsValid, len(result.Violations))
	return result, nil
}

// checkCompatibility flags options a rule declares incompatible with the
// base. Pairs without an authored rule are compatible-unknown and never
// block a configuration.
func (s *ValidationService) checkCompatibility(
	cat *projection.CatalogProjection, baseID string, selected []string, v *verdict,
) {
	for _, id := range selected {
		rule, ok := cat.RuleFor(baseID, id)
		if !ok {
			logger.Debug("No rule for (%s, %s): compatible-unknown", baseID, id)
			continue
		}
		if !rule.IsCompatible {
			v.add(domain.Violation{
				Kind:     domain.ViolationIncompatible,
				OptionID: id,
				Message:  fmt.Sprintf("option %s is incompatible with base %s", id, baseID),
			})
			v.suggestRemoval(id)
		}
	}
}

// checkConflicts walks every selected pair over the symmetric conflict
// graph and suggests removing the tie-break loser of each conflict.
func (s *ValidationService) checkConflicts(
	cat *projection.CatalogProjection, baseID string, selected []string, v *verdict,
) {
	for i := 0; i < len(selected); i++ {
		for j := i + 1; j < len(selected); j++ {
			a, b := selected[i], selected[j]
			if !cat.InConflict(baseID, a, b) {
				continue
			}

			v.add(domain.Violation{
				Kind:          domain.ViolationMutuallyExclusive,
				OptionID:      a,
				OtherOptionID: b,
				Message:       fmt.Sprintf("options %s and %s are mutually exclusive", a, b),
			})

			if s.tieBreak(s.standing(cat, baseID, a), s.standing(cat, baseID, b)) {
				v.suggestRemoval(b)
			} else {
				v.suggestRemoval(a)
			}
		}
	}
}

// checkGroups applies the cardinality rule of every relevant option group.
// required_set groups with a minimum apply even to selections that do not
// touch the group; the other types only fire on a non-empty intersection.
func (s *ValidationService) checkGroups(
	cat *projection.CatalogProjection, manufacturerID, baseID string, selected []string, v *verdict,
) {
	selectedSet := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		selectedSet[id] = struct{}{}
	}

	groups := append([]domain.OptionGroup(nil), cat.Groups[manufacturerID]...)
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })

	for _, g := range groups {
		var intersection []string
		for _, m := range g.Members {
			if _, ok := selectedSet[m]; ok {
				intersection = append(intersection, m)
			}
		}

		switch g.Type {
		case domain.GroupTypeExclusive:
			if len(intersection) <= 1 {
				continue
			}
			ordered := s.orderByStanding(cat, baseID, intersection)
			v.add(domain.Violation{
				Kind:    domain.ViolationGroupExclusive,
				GroupID: g.ID,
				Message: fmt.Sprintf("group %s allows only one selection", g.Name),
			})
			for _, id := range ordered[1:] {
				v.suggestRemoval(id)
			}

		case domain.GroupTypeRequiredSet:
			if len(intersection) == 0 && g.MinSelections <= 0 {
				continue
			}
			if len(intersection) == len(g.Members) {
				continue
			}
			v.add(domain.Violation{
				Kind:    domain.ViolationGroupIncomplete,
				GroupID: g.ID,
				Message: fmt.Sprintf("group %s requires all of its members together", g.Name),
			})
			for _, m := range g.Members {
				if _, ok := selectedSet[m]; !ok {
					v.suggestAddition(m)
				}
			}

		case domain.GroupTypeMaxLimit:
			if len(intersection) <= g.MaxSelections {
				continue
			}
			ordered := s.orderByStanding(cat, baseID, intersection)
			v.add(domain.Violation{
				Kind:    domain.ViolationGroupLimitExceeded,
				GroupID: g.ID,
				Message: fmt.Sprintf("group %s allows at most %d selections", g.Name, g.MaxSelections),
			})
			for _, id := range ordered[g.MaxSelections:] {
				v.suggestRemoval(id)
			}
		}
	}
}

// checkDependencies flags selected options whose declared requirements
// are absent from the selection.
func (s *ValidationService) checkDependencies(
	cat *projection.CatalogProjection, baseID string, selected []string, v *verdict,
) {
	selectedSet := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		selectedSet[id] = struct{}{}
	}

	for _, id := range selected {
		rule, ok := cat.RuleFor(baseID, id)
		if !ok {
			continue
		}
		required := append([]string(nil), rule.Requires...)
		sort.Strings(required)
		for _, req := range required {
			if _, ok := selectedSet[req]; ok {
				continue
			}
			v.add(domain.Violation{
				Kind:          domain.ViolationMissingDependency,
				OptionID:      id,
				OtherOptionID: req,
				Message:       fmt.Sprintf("option %s requires %s", id, req),
			})
			v.suggestAddition(req)
		}
	}
}

// GetAvailableOptions returns every option relevant to the model with its
// declared compatibility, dependencies, conflicts, and groups.
func (s *ValidationService) GetAvailableOptions(
	_ context.Context, modelID string,
) ([]domain.OptionInfo, error) {
	snap, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}
	cat := &snap.Catalog

	base, ok := cat.Products[modelID]
	if !ok || !base.IsModel() {
		return nil, fmt.Errorf("model %q: %w", modelID, domain.ErrUnknownProduct)
	}

	// Surface: every active option of the model's manufacturer, merged
	// with any option that has an authored rule against this base.
	optionIDs := make(map[string]struct{})
	for id, p := range cat.Products {
		if p.IsOption() && p.Active && p.ManufacturerID == base.ManufacturerID {
			optionIDs[id] = struct{}{}
		}
	}
	for id := range cat.Rules[modelID] {
		if p, ok := cat.Products[id]; ok && p.IsOption() {
			optionIDs[id] = struct{}{}
		}
	}

	infos := make([]domain.OptionInfo, 0, len(optionIDs))
	for id := range optionIDs {
		p := cat.Products[id]
		info := domain.OptionInfo{
			Option: p,
			Status: domain.CompatibilityUnknown,
		}

		if rule, ok := cat.RuleFor(modelID, id); ok {
			if rule.IsCompatible {
				info.Status = domain.CompatibilityCompatible
			} else {
				info.Status = domain.CompatibilityIncompatible
			}
			info.Requires = append([]string(nil), rule.Requires...)
			sort.Strings(info.Requires)
			info.Priority = rule.Priority
		}

		if conflicts, ok := cat.Conflicts[modelID][id]; ok {
			info.ConflictsWith = sortedKeys(conflicts)
		}

		for _, g := range cat.Groups[base.ManufacturerID] {
			for _, m := range g.Members {
				if m == id {
					info.GroupIDs = append(info.GroupIDs, g.ID)
					break
				}
			}
		}
		sort.Strings(info.GroupIDs)

		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Option.ID < infos[j].Option.ID })
	return infos, nil
}

// standing resolves the tie-break inputs for one option on a base.
func (s *ValidationService) standing(cat *projection.CatalogProjection, baseID, optionID string) Standing {
	st := Standing{OptionID: optionID}
	if rule, ok := cat.RuleFor(baseID, optionID); ok {
		st.Priority = rule.Priority
		st.HasRule = true
	}
	return st
}

// orderByStanding sorts option ids so the kept option comes first.
func (s *ValidationService) orderByStanding(
	cat *projection.CatalogProjection, baseID string, ids []string,
) []string {
	ordered := append([]string(nil), ids...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return s.tieBreak(s.standing(cat, baseID, ordered[i]), s.standing(cat, baseID, ordered[j]))
	})
	return ordered
}

// verdict accumulates deduplicated violations and suggestion sets.
type verdict struct {
	violations []domain.Violation
	seen       map[string]struct{}
	additions  map[string]struct{}
	removals   map[string]struct{}
}

func newVerdict() *verdict {
	return &verdict{
		seen:      make(map[string]struct{}),
		additions: make(map[string]struct{}),
		removals:  make(map[string]struct{}),
	}
}

func (v *verdict) add(violation domain.Violation) {
	key := string(violation.Kind) + "|" + violation.OptionID + "|" +
		violation.OtherOptionID + "|" + violation.GroupID
	if _, ok := v.seen[key]; ok {
		return
	}
	v.seen[key] = struct{}{}
	v.violations = append(v.violations, violation)
}

func (v *verdict) suggestAddition(id string) {
	v.additions[id] = struct{}{}
}

func (v *verdict) suggestRemoval(id string) {
	v.removals[id] = struct{}{}
}

func (v *verdict) result() *domain.ValidationResult {
	return &domain.ValidationResult{
		IsValid:            len(v.violations) == 0,
		Violations:         v.violations,
		SuggestedAdditions: sortedKeys(v.additions),
		SuggestedRemovals:  sortedKeys(v.removals),
	}
}

// dedupeSorted returns the unique ids in ascending order, giving every
// downstream check a deterministic iteration order.
func dedupeSorted(ids []string) []string {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
