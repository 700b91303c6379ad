// Package common contains small constants and helpers shared by the client
// packages.
package common

// RequestIDHeaderName carries a per-request correlation id on every call
// to the diagnostic backend.
const RequestIDHeaderName = "X-Request-ID"

// DefaultLanguage is used whenever no language preference is known.
const DefaultLanguage = "en"
