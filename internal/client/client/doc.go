// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     diagnostic backend: Signup/Login, localization strings, the three
//     assessment submissions, and history list/delete.
//  2. A concrete HTTP/JSON implementation (see HTTPClient). Every call is a
//     single request with an explicit timeout and an X-Request-ID header; it
//     is never retried. The X-ray scan is sent as multipart/form-data.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors matched with errors.Is:
// ErrUnavailable (transport failure, timeout, 502/503/504), ErrUnauthorized
// (401/403), ErrNotFound (404), ErrMalformedResponse (undecodable body).
// Any non-2xx response is also available as *StatusError via errors.As.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation and deadlines.
package client
