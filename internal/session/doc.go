// Package session manages the authentication token shared by every open
// context of the running application.
//
// # Shared store
//
// The [Store] interface generalizes the browser original's localStorage plus
// "storage" events: a single process-wide keyed slot holding the authoritative
// token, and a subscription channel that fires after every write.
// Reconciliation is "re-read the authoritative value on notification", not
// peer-to-peer messaging. [MemoryStore] keeps the token in process memory;
// [DBStore] persists it in SQLite so a session survives restarts.
//
// # Manager
//
// Each context owns one [Manager]. Its state machine is Anonymous or
// Authenticated(token): login publishes an externally issued token to the
// store, logout clears it, and an external change (another context logging in
// or out) converges this context within one notification cycle. Local state is
// only ever a cache of the store value and is never observable half-updated.
//
// No token expiry or validity checking happens here; the identity service owns
// that. A present token is treated as authenticated.
package session
