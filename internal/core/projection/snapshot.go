package projection

import (
	"time"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
)

// Snapshot is one immutable, complete build of both projections.
// Once published it is never mutated; readers may hold it across a
// concurrent refresh.
type Snapshot struct {
	// Catalog is the configuration projection for the validator.
	Catalog CatalogProjection

	// Search is the search projection for the relevance engine.
	Search SearchProjection

	// BuiltAt is when the refresh that produced this snapshot started
	// reading the content store. Age is measured from here.
	BuiltAt time.Time

	// Version increments with every successful refresh.
	Version uint64
}

// CatalogProjection pre-joins products, rules, and groups for validation.
type CatalogProjection struct {
	// Products indexes every product by id.
	Products map[string]domain.Product

	// Rules indexes compatibility rules by base then option id.
	Rules map[string]map[string]domain.CompatibilityRule

	// Conflicts is the symmetric conflict graph per base: for each base
	// id, option id -> set of option ids it excludes. Built by unioning
	// both declared directions, so asymmetrically authored exclusions
	// behave symmetrically at evaluation time.
	Conflicts map[string]map[string]map[string]struct{}

	// Groups indexes option groups by manufacturer id.
	Groups map[string][]domain.OptionGroup
}

// RuleFor returns the rule for a (base, option) pair, if authored.
func (c *CatalogProjection) RuleFor(baseID, optionID string) (domain.CompatibilityRule, bool) {
	byOption, ok := c.Rules[baseID]
	if !ok {
		return domain.CompatibilityRule{}, false
	}
	r, ok := byOption[optionID]
	return r, ok
}

// InConflict reports whether two options exclude each other on a base,
// in either declared direction.
func (c *CatalogProjection) InConflict(baseID, a, b string) bool {
	byOption, ok := c.Conflicts[baseID]
	if !ok {
		return false
	}
	if set, ok := byOption[a]; ok {
		if _, ok := set[b]; ok {
			return true
		}
	}
	return false
}

// Fragment is one denormalized search candidate: chunk text pre-joined
// with its document and product metadata so scoring needs no per-query
// store reads.
type Fragment struct {
	// ChunkID is the fragment's chunk.
	ChunkID string

	// DocumentID is the parent document.
	DocumentID string

	// DocumentTitle is the parent document's title.
	DocumentTitle string

	// ManufacturerID is denormalized from the document.
	ManufacturerID string

	// ProductID is denormalized from the document, empty when the
	// document is not product-linked.
	ProductID string

	// DocumentType is denormalized from the document.
	DocumentType domain.DocumentType

	// UpdatedAt is the document recency used for ranking tie-breaks.
	UpdatedAt time.Time

	// Content is the raw fragment text.
	Content string

	// Tokens are the fragment's unique lowercase tokens, for the
	// fuzzy signal.
	Tokens []string

	// Codes is the union of the fragment's normalized error codes and
	// part numbers, for the exact-code signal.
	Codes map[string]struct{}

	// HasEmbedding reports whether the vector index holds this fragment.
	HasEmbedding bool
}

// SearchProjection is the denormalized search-side cache.
type SearchProjection struct {
	// Fragments indexes every candidate fragment by chunk id.
	Fragments map[string]*Fragment

	// Lexical is the token index over all fragments.
	Lexical driven.LexicalIndex

	// Vector is the similarity index over embedded fragments.
	// Nil when no fragment carries an embedding.
	Vector driven.VectorIndex
}
