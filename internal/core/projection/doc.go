// Package projection builds and serves the derived caches both query
// engines read: the configuration projection (rule lookup, symmetric
// conflict graph, group membership) and the search projection
// (denormalized fragments plus lexical and vector indexes).
//
// Projections are the only shared mutable state in the system. The Cache
// rebuilds them in the background and swaps complete snapshots in via an
// atomic pointer, so a request never observes a partially-built
// projection. A failed refresh leaves the previous snapshot serving.
package projection
