package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	indexmem "github.com/techdex-labs/techdex-cli/internal/adapters/driven/index/memory"
	storagemem "github.com/techdex-labs/techdex-cli/internal/adapters/driven/storage/memory"
	"github.com/techdex-labs/techdex-cli/internal/core/domain"
	"github.com/techdex-labs/techdex-cli/internal/core/projection"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
)

// --- Fixture ---

// catalogFixture populates a small two-manufacturer catalog:
//
// Manufacturer m1, model mdl-c300 with options:
//   - opt-bridge-a (priority 1), opt-bridge-b (priority 2, excludes
//     bridge-a on its own row only)
//   - opt-finisher-x (priority 2, requires bridge-a) and opt-finisher-y
//     (priority 3, requires bridge-b), both in exclusive group grp-finishers
//   - opt-fax declared incompatible
//   - opt-tray-1/2/3 in max_limit group grp-trays (max 2)
//   - opt-caster/opt-stand in required_set group grp-stability (min 0)
//
// Manufacturer m2, model mdl-z100 with a mandatory required_set group
// grp-power (min 2) whose members are opt-power and opt-heater.
func catalogFixture(t *testing.T) *projection.Cache {
	t.Helper()
	ctx := context.Background()

	catalog := storagemem.NewCatalogStore()
	rules := storagemem.NewRuleStore()
	docs := storagemem.NewDocumentStore()

	save := func(id, manufacturer string, typ domain.ProductType) {
		require.NoError(t, catalog.SaveProduct(ctx, &domain.Product{
			ID: id, ManufacturerID: manufacturer, Name: id, Type: typ, Active: true,
		}))
	}

	save("mdl-c300", "m1", domain.ProductTypeModel)
	save("mdl-c400", "m1", domain.ProductTypeModel)
	for _, id := range []string{
		"opt-bridge-a", "opt-bridge-b", "opt-finisher-x", "opt-finisher-y",
		"opt-fax", "opt-tray-1", "opt-tray-2", "opt-tray-3", "opt-caster", "opt-stand",
	} {
		save(id, "m1", domain.ProductTypeOption)
	}
	save("mdl-z100", "m2", domain.ProductTypeModel)
	save("opt-power", "m2", domain.ProductTypeOption)
	save("opt-heater", "m2", domain.ProductTypeOption)

	rule := func(option string, compatible bool, priority int, excludes, requires []string) {
		require.NoError(t, rules.SaveRule(ctx, &domain.CompatibilityRule{
			ID:                "rule-" + option,
			BaseProductID:     "mdl-c300",
			OptionProductID:   option,
			IsCompatible:      compatible,
			Priority:          priority,
			MutuallyExclusive: excludes,
			Requires:          requires,
		}))
	}

	rule("opt-bridge-a", true, 1, nil, nil)
	rule("opt-bridge-b", true, 2, []string{"opt-bridge-a"}, nil)
	rule("opt-finisher-x", true, 2, nil, []string{"opt-bridge-a"})
	rule("opt-finisher-y", true, 3, nil, []string{"opt-bridge-b"})
	rule("opt-fax", false, 5, nil, nil)
	rule("opt-tray-1", true, 1, nil, nil)
	rule("opt-tray-2", true, 2, nil, nil)
	rule("opt-tray-3", true, 3, nil, nil)

	require.NoError(t, rules.SaveGroup(ctx, &domain.OptionGroup{
		ID: "grp-finishers", ManufacturerID: "m1", Name: "Finishers",
		Type: domain.GroupTypeExclusive, Members: []string{"opt-finisher-x", "opt-finisher-y"},
	}))
	require.NoError(t, rules.SaveGroup(ctx, &domain.OptionGroup{
		ID: "grp-trays", ManufacturerID: "m1", Name: "Paper Trays",
		Type: domain.GroupTypeMaxLimit, MaxSelections: 2,
		Members: []string{"opt-tray-1", "opt-tray-2", "opt-tray-3"},
	}))
	require.NoError(t, rules.SaveGroup(ctx, &domain.OptionGroup{
		ID: "grp-stability", ManufacturerID: "m1", Name: "Stability Kit",
		Type: domain.GroupTypeRequiredSet, Members: []string{"opt-caster", "opt-stand"},
	}))
	require.NoError(t, rules.SaveGroup(ctx, &domain.OptionGroup{
		ID: "grp-power", ManufacturerID: "m2", Name: "Power Kit",
		Type: domain.GroupTypeRequiredSet, MinSelections: 2,
		Members: []string{"opt-power", "opt-heater"},
	}))

	cache := projection.NewCache(catalog, rules, docs, projection.Config{
		NewLexical: func() driven.LexicalIndex { return indexmem.NewLexicalIndex() },
		NewVector:  func() driven.VectorIndex { return indexmem.NewVectorIndex() },
	})
	require.NoError(t, cache.Refresh(ctx))
	return cache
}

func violationKinds(result *domain.ValidationResult) []domain.ViolationKind {
	kinds := make([]domain.ViolationKind, len(result.Violations))
	for i, v := range result.Violations {
		kinds[i] = v.Kind
	}
	return kinds
}

// --- ValidateConfiguration ---

func TestValidationService_ValidateConfiguration_ValidSelection(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	result, err := svc.ValidateConfiguration(context.Background(), "mdl-c300",
		[]string{"opt-bridge-a", "opt-finisher-x"})
	require.NoError(t, err)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Violations)
	assert.Empty(t, result.SuggestedAdditions)
	assert.Empty(t, result.SuggestedRemovals)
}

func TestValidationService_ValidateConfiguration_EmptySelection(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	result, err := svc.ValidateConfiguration(context.Background(), "mdl-c300", nil)
	require.NoError(t, err)
	assert.True(t, result.IsValid)
}

func TestValidationService_ValidateConfiguration_MissingDependency(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	result, err := svc.ValidateConfiguration(context.Background(), "mdl-c300",
		[]string{"opt-bridge-a", "opt-finisher-y"})
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	assert.Contains(t, violationKinds(result), domain.ViolationMissingDependency)
	assert.Contains(t, result.SuggestedAdditions, "opt-bridge-b")
}

func TestValidationService_ValidateConfiguration_MutualExclusion(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	result, err := svc.ValidateConfiguration(context.Background(), "mdl-c300",
		[]string{"opt-bridge-a", "opt-bridge-b"})
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, domain.ViolationMutuallyExclusive, result.Violations[0].Kind)
	// bridge-a has priority 1 and is kept; bridge-b is the removal.
	assert.Equal(t, []string{"opt-bridge-b"}, result.SuggestedRemovals)
}

// The exclusion is authored on bridge-b's row only; bridge-a must still
// behave as excluding bridge-b regardless of selection order.
func TestValidationService_ValidateConfiguration_ExclusionIsSymmetric(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	forward, err := svc.ValidateConfiguration(context.Background(), "mdl-c300",
		[]string{"opt-bridge-a", "opt-bridge-b"})
	require.NoError(t, err)
	reverse, err := svc.ValidateConfiguration(context.Background(), "mdl-c300",
		[]string{"opt-bridge-b", "opt-bridge-a"})
	require.NoError(t, err)

	assert.Equal(t, forward, reverse)
	assert.False(t, forward.IsValid)
}

func TestValidationService_ValidateConfiguration_IncompatibleOption(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	result, err := svc.ValidateConfiguration(context.Background(), "mdl-c300",
		[]string{"opt-fax"})
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	assert.Contains(t, violationKinds(result), domain.ViolationIncompatible)
	assert.Equal(t, []string{"opt-fax"}, result.SuggestedRemovals)
}

// Options without an authored rule are compatible-unknown: they never
// block a configuration.
func TestValidationService_ValidateConfiguration_NoRuleIsUnknownCompatible(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	result, err := svc.ValidateConfiguration(context.Background(), "mdl-c300",
		[]string{"opt-caster", "opt-stand"})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
}

func TestValidationService_ValidateConfiguration_ExclusiveGroup(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	result, err := svc.ValidateConfiguration(context.Background(), "mdl-c300",
		[]string{"opt-finisher-x", "opt-finisher-y", "opt-bridge-a", "opt-bridge-b"})
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	assert.Contains(t, violationKinds(result), domain.ViolationGroupExclusive)
	// finisher-x (priority 2) is kept over finisher-y (priority 3).
	assert.Contains(t, result.SuggestedRemovals, "opt-finisher-y")
	assert.NotContains(t, result.SuggestedRemovals, "opt-finisher-x")
}

func TestValidationService_ValidateConfiguration_RequiredSetIncomplete(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	result, err := svc.ValidateConfiguration(context.Background(), "mdl-c300",
		[]string{"opt-caster"})
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	assert.Contains(t, violationKinds(result), domain.ViolationGroupIncomplete)
	assert.Equal(t, []string{"opt-stand"}, result.SuggestedAdditions)
}

// A required_set group with min_selections > 0 is mandatory: even an
// empty selection is invalid until its members are added.
func TestValidationService_ValidateConfiguration_MandatoryRequiredSet(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	result, err := svc.ValidateConfiguration(context.Background(), "mdl-z100", nil)
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	assert.Contains(t, violationKinds(result), domain.ViolationGroupIncomplete)
	assert.Equal(t, []string{"opt-heater", "opt-power"}, result.SuggestedAdditions)
}

func TestValidationService_ValidateConfiguration_MaxLimitGroup(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	result, err := svc.ValidateConfiguration(context.Background(), "mdl-c300",
		[]string{"opt-tray-1", "opt-tray-2", "opt-tray-3"})
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	assert.Contains(t, violationKinds(result), domain.ViolationGroupLimitExceeded)
	// Keep the first two by priority, suggest removing tray-3.
	assert.Equal(t, []string{"opt-tray-3"}, result.SuggestedRemovals)
}

func TestValidationService_ValidateConfiguration_MaxLimitWithinBound(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	result, err := svc.ValidateConfiguration(context.Background(), "mdl-c300",
		[]string{"opt-tray-1", "opt-tray-2"})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
}

func TestValidationService_ValidateConfiguration_UnknownBase(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	_, err := svc.ValidateConfiguration(context.Background(), "mdl-nope", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
}

func TestValidationService_ValidateConfiguration_BaseMustBeModel(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	_, err := svc.ValidateConfiguration(context.Background(), "opt-bridge-a", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
}

func TestValidationService_ValidateConfiguration_UnknownSelectedOption(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	_, err := svc.ValidateConfiguration(context.Background(), "mdl-c300",
		[]string{"opt-ghost"})
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
}

func TestValidationService_ValidateConfiguration_DuplicatesCollapse(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	result, err := svc.ValidateConfiguration(context.Background(), "mdl-c300",
		[]string{"opt-bridge-a", "opt-bridge-a", "opt-finisher-x"})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
}

func TestValidationService_ValidateConfiguration_Deterministic(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))
	selection := []string{"opt-bridge-b", "opt-finisher-y", "opt-bridge-a", "opt-tray-3",
		"opt-tray-1", "opt-tray-2", "opt-caster"}

	first, err := svc.ValidateConfiguration(context.Background(), "mdl-c300", selection)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := svc.ValidateConfiguration(context.Background(), "mdl-c300", selection)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// Applying the suggested removals must clear the conflict.
func TestValidationService_ValidateConfiguration_SuggestionsRepairConflict(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))
	ctx := context.Background()

	result, err := svc.ValidateConfiguration(ctx, "mdl-c300",
		[]string{"opt-bridge-a", "opt-bridge-b"})
	require.NoError(t, err)
	require.False(t, result.IsValid)

	removed := make(map[string]struct{}, len(result.SuggestedRemovals))
	for _, id := range result.SuggestedRemovals {
		removed[id] = struct{}{}
	}
	var repaired []string
	for _, id := range []string{"opt-bridge-a", "opt-bridge-b"} {
		if _, ok := removed[id]; !ok {
			repaired = append(repaired, id)
		}
	}

	again, err := svc.ValidateConfiguration(ctx, "mdl-c300", repaired)
	require.NoError(t, err)
	assert.True(t, again.IsValid)
}

func TestValidationService_ValidateConfiguration_TieBreakOverride(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))
	// Invert the policy: higher priority value wins.
	svc.SetTieBreak(func(a, b Standing) bool {
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.OptionID < b.OptionID
	})

	result, err := svc.ValidateConfiguration(context.Background(), "mdl-c300",
		[]string{"opt-bridge-a", "opt-bridge-b"})
	require.NoError(t, err)

	assert.Equal(t, []string{"opt-bridge-a"}, result.SuggestedRemovals)
}

func TestValidationService_ValidateConfiguration_CacheUnavailable(t *testing.T) {
	catalog := storagemem.NewCatalogStore()
	rules := storagemem.NewRuleStore()
	docs := storagemem.NewDocumentStore()
	cache := projection.NewCache(catalog, rules, docs, projection.Config{
		NewLexical: func() driven.LexicalIndex { return indexmem.NewLexicalIndex() },
		NewVector:  func() driven.VectorIndex { return indexmem.NewVectorIndex() },
	})
	svc := NewValidationService(cache)

	_, err := svc.ValidateConfiguration(context.Background(), "mdl-c300", nil)
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}

// --- GetAvailableOptions ---

func TestValidationService_GetAvailableOptions(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	infos, err := svc.GetAvailableOptions(context.Background(), "mdl-c300")
	require.NoError(t, err)
	require.NotEmpty(t, infos)

	byID := make(map[string]domain.OptionInfo, len(infos))
	for _, info := range infos {
		byID[info.Option.ID] = info
	}

	assert.Equal(t, domain.CompatibilityCompatible, byID["opt-bridge-a"].Status)
	assert.Equal(t, domain.CompatibilityIncompatible, byID["opt-fax"].Status)
	assert.Equal(t, domain.CompatibilityUnknown, byID["opt-caster"].Status)

	assert.Equal(t, []string{"opt-bridge-a"}, byID["opt-finisher-x"].Requires)

	// Conflict surfaced on both sides despite one-sided authoring.
	assert.Contains(t, byID["opt-bridge-a"].ConflictsWith, "opt-bridge-b")
	assert.Contains(t, byID["opt-bridge-b"].ConflictsWith, "opt-bridge-a")

	assert.Contains(t, byID["opt-tray-1"].GroupIDs, "grp-trays")
}

func TestValidationService_GetAvailableOptions_SortedByID(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	infos, err := svc.GetAvailableOptions(context.Background(), "mdl-c300")
	require.NoError(t, err)
	for i := 1; i < len(infos); i++ {
		assert.Less(t, infos[i-1].Option.ID, infos[i].Option.ID)
	}
}

func TestValidationService_GetAvailableOptions_UnknownModel(t *testing.T) {
	svc := NewValidationService(catalogFixture(t))

	_, err := svc.GetAvailableOptions(context.Background(), "mdl-nope")
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
}

func TestDefaultTieBreak(t *testing.T) {
	withRule := func(id string, prio int) Standing {
		return Standing{OptionID: id, Priority: prio, HasRule: true}
	}

	assert.True(t, DefaultTieBreak(withRule("b", 1), withRule("a", 2)))
	assert.False(t, DefaultTieBreak(withRule("b", 2), withRule("a", 1)))
	// Equal priority: stable id ordering.
	assert.True(t, DefaultTieBreak(withRule("a", 1), withRule("b", 1)))
	// Options without a rule rank behind every option with one.
	assert.True(t, DefaultTieBreak(withRule("z", 99), Standing{OptionID: "a"}))
}

// Snapshot age is measured from the refresh start.
func TestProjectionCache_Age(t *testing.T) {
	cache := catalogFixture(t)
	age, err := cache.Age()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, age, time.Duration(0))
	assert.Less(t, age, time.Minute)
}
