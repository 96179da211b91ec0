package mcp

import (
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides multi-signal documentation search.
	Search driving.SearchService

	// Configuration validates option selections against a base model.
	Configuration driving.ConfigurationService

	// Projection manages the snapshot cache (refresh trigger, age).
	Projection driving.ProjectionService

	// Catalog reads manufacturers and products for the catalog resources.
	Catalog driven.CatalogStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Configuration == nil {
		return ErrMissingConfigurationService
	}
	// Projection and Catalog are optional; the matching tool and
	// resources degrade when absent.
	return nil
}
