package projection

import (
	"context"
	"fmt"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
)

// buildCatalog assembles the configuration projection from catalog rows.
func buildCatalog(
	products []domain.Product,
	rules []domain.CompatibilityRule,
	groups []domain.OptionGroup,
) CatalogProjection {
	proj := CatalogProjection{
		Products:  make(map[string]domain.Product, len(products)),
		Rules:     make(map[string]map[string]domain.CompatibilityRule),
		Conflicts: make(map[string]map[string]map[string]struct{}),
		Groups:    make(map[string][]domain.OptionGroup),
	}

	for _, p := range products {
		proj.Products[p.ID] = p
	}

	for _, r := range rules {
		byOption, ok := proj.Rules[r.BaseProductID]
		if !ok {
			byOption = make(map[string]domain.CompatibilityRule)
			proj.Rules[r.BaseProductID] = byOption
		}
		byOption[r.OptionProductID] = r

		// Union both directions: if A lists B as exclusive, B excludes A
		// even when B's own row omits it.
		for _, other := range r.MutuallyExclusive {
			addConflict(proj.Conflicts, r.BaseProductID, r.OptionProductID, other)
			addConflict(proj.Conflicts, r.BaseProductID, other, r.OptionProductID)
		}
	}

	for _, g := range groups {
		proj.Groups[g.ManufacturerID] = append(proj.Groups[g.ManufacturerID], g)
	}

	return proj
}

func addConflict(conflicts map[string]map[string]map[string]struct{}, baseID, from, to string) {
	byOption, ok := conflicts[baseID]
	if !ok {
		byOption = make(map[string]map[string]struct{})
		conflicts[baseID] = byOption
	}
	set, ok := byOption[from]
	if !ok {
		set = make(map[string]struct{})
		byOption[from] = set
	}
	set[to] = struct{}{}
}

// buildSearch assembles the search projection: a fragment per chunk of a
// ready document, plus freshly built lexical and vector indexes.
func buildSearch(
	ctx context.Context,
	docs []domain.Document,
	chunks []domain.Chunk,
	newLexical func() driven.LexicalIndex,
	newVector func() driven.VectorIndex,
) (SearchProjection, error) {
	byDoc := make(map[string]domain.Document, len(docs))
	for _, d := range docs {
		byDoc[d.ID] = d
	}

	proj := SearchProjection{
		Fragments: make(map[string]*Fragment, len(chunks)),
		Lexical:   newLexical(),
	}

	var vector driven.VectorIndex

	for i := range chunks {
		if err := ctx.Err(); err != nil {
			return SearchProjection{}, err
		}

		c := &chunks[i]
		doc, ok := byDoc[c.DocumentID]
		if !ok || doc.State != domain.StateReady {
			continue
		}

		codes := make(map[string]struct{}, len(c.ErrorCodes)+len(c.PartNumbers))
		for _, code := range c.ErrorCodes {
			codes[domain.NormalizeCode(code)] = struct{}{}
		}
		for _, pn := range c.PartNumbers {
			codes[domain.NormalizeCode(pn)] = struct{}{}
		}

		f := &Fragment{
			ChunkID:        c.ID,
			DocumentID:     doc.ID,
			DocumentTitle:  doc.Title,
			ManufacturerID: doc.ManufacturerID,
			DocumentType:   doc.Type,
			UpdatedAt:      doc.UpdatedAt,
			Content:        c.Content,
			Tokens:         domain.Tokenize(c.Content),
			Codes:          codes,
			HasEmbedding:   len(c.Embedding) > 0,
		}
		if doc.ProductID != nil {
			f.ProductID = *doc.ProductID
		}
		proj.Fragments[c.ID] = f

		if err := proj.Lexical.Index(ctx, c.ID, c.Content); err != nil {
			return SearchProjection{}, fmt.Errorf("indexing chunk %s: %w", c.ID, err)
		}

		if len(c.Embedding) > 0 {
			if vector == nil {
				vector = newVector()
			}
			if err := vector.Add(ctx, c.ID, c.Embedding); err != nil {
				return SearchProjection{}, fmt.Errorf("adding vector for chunk %s: %w", c.ID, err)
			}
		}
	}

	proj.Vector = vector
	return proj, nil
}
