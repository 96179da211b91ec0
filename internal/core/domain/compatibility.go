package domain

import "time"

// CompatibilityRule declares the relationship between one base model and
// one option. At most one rule exists per (base, option) pair.
//
// MutuallyExclusive is authored per-row on one side only; the relation is
// symmetric at evaluation time. The projection layer unions both directions
// before the validator ever sees it.
type CompatibilityRule struct {
	// ID is the unique identifier for the rule.
	ID string

	// BaseProductID is the model the rule applies to.
	BaseProductID string

	// OptionProductID is the option the rule applies to.
	OptionProductID string

	// IsCompatible declares whether the option may attach to the base at all.
	IsCompatible bool

	// MutuallyExclusive lists option ids that conflict with this option
	// when selected alongside it on the same base.
	MutuallyExclusive []string

	// Requires lists option ids that must also be selected for this
	// option to function.
	Requires []string

	// Priority orders deterministic tie-breaking: lower values win and
	// are kept when a conflict forces a removal suggestion.
	Priority int

	// Notes carries free-text installer guidance.
	Notes string

	// CreatedAt is when the rule was authored.
	CreatedAt time.Time

	// UpdatedAt is when the rule was last updated.
	UpdatedAt time.Time
}

// GroupType discriminates the cardinality constraint an OptionGroup applies
// to the intersection of its members and a candidate selection.
type GroupType string

const (
	// GroupTypeExclusive allows at most one member to be selected.
	GroupTypeExclusive GroupType = "exclusive"

	// GroupTypeRequiredSet requires all members to be selected together.
	GroupTypeRequiredSet GroupType = "required_set"

	// GroupTypeMaxLimit caps the number of selected members at MaxSelections.
	GroupTypeMaxLimit GroupType = "max_limit"
)

// Valid reports whether the group type is one of the known values.
func (t GroupType) Valid() bool {
	switch t {
	case GroupTypeExclusive, GroupTypeRequiredSet, GroupTypeMaxLimit:
		return true
	}
	return false
}

// OptionGroup names a set of options sharing one cardinality constraint.
// Group names are unique per manufacturer.
type OptionGroup struct {
	// ID is the unique identifier for the group.
	ID string

	// ManufacturerID scopes the group to one manufacturer's catalog.
	ManufacturerID string

	// Name is the display name, unique per manufacturer.
	Name string

	// Type fully determines the cardinality rule applied to the
	// intersection of Members and the candidate selection.
	Type GroupType

	// MinSelections is the lower bound (meaningful for required_set).
	MinSelections int

	// MaxSelections is the upper bound (meaningful for max_limit).
	MaxSelections int

	// Members are the option product ids belonging to this group.
	Members []string

	// CreatedAt is when the group was authored.
	CreatedAt time.Time
}
