// Package catalog implements the in-memory catalog state layer: a generic
// entity [Store] with last-write-wins load ordering, pure filter derivations
// over it, and a pure [Paginate] derivation producing page slices and the
// page-number [Window] shown by listing surfaces.
//
// # Derivation pipeline
//
// A fetch populates the store, [Apply] derives a filtered view from the
// current route criterion (genre, id, or none), and [Paginate] derives the
// on-screen slice plus window metadata. Derivations never mutate their input
// and never fail; absent matches and out-of-range pages degrade to empty
// results or clamped pages.
//
// # Stale loads
//
// Concurrent fetches are ordered by issue tickets ([Store.BeginLoad] /
// [Store.CompleteLoad]): the most recently issued load wins and a superseded
// response is silently discarded.
package catalog
