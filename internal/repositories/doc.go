// package repositories provides the local SQLite catalog cache.
//
// Each repository implements models.Repository[E] for one entity type. The
// cache mirrors the remote collection between refreshes: ReplaceAll swaps it
// wholesale in a transaction, preserving fetch order through an explicit
// position column, so a reload from cache reproduces the catalog exactly as
// last fetched.
package repositories
