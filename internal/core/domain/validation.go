package domain

// ViolationKind identifies which compatibility rule a configuration broke.
type ViolationKind string

const (
	// ViolationIncompatible means a rule declares the option incompatible
	// with the base model.
	ViolationIncompatible ViolationKind = "incompatible"

	// ViolationMutuallyExclusive means two selected options exclude each other.
	ViolationMutuallyExclusive ViolationKind = "mutually_exclusive"

	// ViolationGroupExclusive means more than one member of an exclusive
	// group was selected.
	ViolationGroupExclusive ViolationKind = "group_exclusive"

	// ViolationGroupIncomplete means a required_set group is only partially
	// selected.
	ViolationGroupIncomplete ViolationKind = "group_incomplete"

	// ViolationGroupLimitExceeded means a max_limit group has more members
	// selected than it allows.
	ViolationGroupLimitExceeded ViolationKind = "group_limit_exceeded"

	// ViolationMissingDependency means a selected option requires another
	// option that is absent from the selection.
	ViolationMissingDependency ViolationKind = "missing_dependency"
)

// Violation is one rule-based finding inside a ValidationResult.
// Violations are data, never errors: a selection that violates rules
// still validates successfully, it just is not valid.
type Violation struct {
	// Kind identifies the broken rule family.
	Kind ViolationKind

	// OptionID is the primary option involved.
	OptionID string

	// OtherOptionID is the counterpart for pairwise findings
	// (mutual exclusion, missing dependency target).
	OtherOptionID string

	// GroupID is set for group cardinality findings.
	GroupID string

	// Message is a human-readable description of the finding.
	Message string
}

// ValidationResult is the verdict for one configuration check.
// Request-scoped; never persisted.
type ValidationResult struct {
	// IsValid is true iff Violations is empty.
	IsValid bool

	// Violations lists every rule finding, deduplicated.
	Violations []Violation

	// SuggestedAdditions are option ids that would repair missing
	// dependencies or incomplete required sets. Sorted, deduplicated.
	SuggestedAdditions []string

	// SuggestedRemovals are option ids whose removal would repair
	// conflicts and limit overruns. Sorted, deduplicated.
	SuggestedRemovals []string
}

// CompatibilityStatus is the per-option verdict surfaced by the
// available-options projection.
type CompatibilityStatus string

const (
	// CompatibilityCompatible means a rule explicitly allows the option.
	CompatibilityCompatible CompatibilityStatus = "compatible"

	// CompatibilityIncompatible means a rule explicitly forbids the option.
	CompatibilityIncompatible CompatibilityStatus = "incompatible"

	// CompatibilityUnknown means no rule has been authored for the pair.
	// Unknown options do not block validation.
	CompatibilityUnknown CompatibilityStatus = "unknown"
)

// OptionInfo describes one option relative to a base model: its declared
// compatibility, dependencies, conflicts, and group memberships. Used by
// UIs and agents to pre-populate configuration choices.
type OptionInfo struct {
	// Option is the option product.
	Option Product

	// Status is the declared compatibility with the base model.
	Status CompatibilityStatus

	// Requires lists option ids this option depends on.
	Requires []string

	// ConflictsWith lists option ids this option excludes, after the
	// symmetric reconciliation of per-row exclusions.
	ConflictsWith []string

	// GroupIDs lists the option groups this option belongs to.
	GroupIDs []string

	// Priority is the rule priority used for tie-breaking, zero when
	// no rule exists.
	Priority int
}
