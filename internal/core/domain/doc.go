// Package domain defines the core business entities for Techdex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Manufacturer, Product: the catalog hierarchy (series/model/option)
//   - CompatibilityRule, OptionGroup: equipment configuration rule data
//   - Document, Chunk: service documentation and its searchable fragments
//   - ErrorCode: normalized fault codes extracted from documentation
//   - ValidationResult, SearchMatch: request-scoped engine outputs
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
