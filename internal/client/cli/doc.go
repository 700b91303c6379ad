// Package cli provides the interactive deepneumoscan command-line client.
//
// It wires configuration, the local session database, the backend client
// and the workflow pages behind a router, and runs a REPL in which every
// command navigates to a page and drives it. Typical flow: log in (or sign
// up), run one of the assessments, review or delete past results.
//
// Key features:
//   - Signup / Login / Logout, language selection
//   - Symptom self-assessment, chest X-ray scan, recovery assessment
//   - History listing and deletion
//   - Hospital search link
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
