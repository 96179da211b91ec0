// Package services implements the driving port interfaces.
// Services contain the core business logic - the option compatibility
// validator and the multi-signal search engine - and orchestrate calls
// to driven ports (adapters).
//
// Both engines are pure, stateless functions over an immutable
// projection snapshot: they never mutate the content store and may be
// invoked with unbounded parallelism.
package services
