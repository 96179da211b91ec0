// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CatalogStore: Manufacturer and product persistence
//   - RuleStore: Compatibility rule and option group persistence
//   - DocumentStore: Document and chunk persistence
//   - ErrorCodeStore: Normalized fault code persistence
//   - ConfigStore: Application configuration
//   - LexicalIndex: Token-overlap relevance index, rebuilt per projection refresh
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - VectorIndex: Vector storage/search. Only enabled when EmbeddingService is configured.
//   - EmbeddingService: Generates vector embeddings. Without it, the vector signal is absent.
//
// The engines are read-only consumers: the write methods on the store
// interfaces exist for admin tooling, ingestion, and test fixtures, and
// are never called from validation or search.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
