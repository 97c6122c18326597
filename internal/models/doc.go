// Package models defines domain entities and persistence interfaces for the Torrentio catalog client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs mirroring the remote API payloads
//   - [Game] : Catalog game with genre, hardware requirements, and media references
//   - [Developer] : Game studio with founding year and country
//   - [User] : Identity record returned by the registration endpoint
//
// 2. Persistence contracts: The [Repository] interface defines CRUD-style access to the
// local SQLite catalog cache, implemented per entity type in internal/repositories.
//
// All entities implement [Entity], the common handle used by the catalog store and
// derivation functions. Entities are owned by the store once loaded; nothing mutates them.
package models
