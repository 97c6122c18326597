// Package services defines the [Service] interface for the remote Torrentio
// API and implements it over HTTP.
//
// # Service Interface
//
// The API exposes two surfaces consumed by the client:
//
//   - Identity: POST /api/users (registration, 201 on success) and
//     POST /api/users/login (returns an opaque bearer token).
//   - Catalog: GET /api/games (optionally ?search=), GET /api/developers.
//
// Free-text search is delegated to the server as an opaque query parameter;
// no local matching is attempted for it.
//
// # Error Handling
//
// Server-side rejections become [*APIError] values carrying the payload's
// human-readable message. [RejectionMessage] extracts it with a generic
// fallback for responses that lack one, so callers never show a raw status
// code to the user. Transport failures wrap [shared.ErrAPIRequest].
//
// # Throttling
//
// [TorrentioService] optionally rate-limits outgoing requests with
// [rate.Limiter], honoring context cancellation while waiting.
package services
