// Package workflow implements the pages of the client. Every page that
// submits something to the backend drives a Controller: a small state
// machine (Editing, Submitting, Result, Failed) that owns the page input,
// refuses concurrent submissions and discards responses that arrive after
// the page was left.
//
// Pages load their display strings asynchronously on activation and render
// with the built-in defaults until they arrive.
package workflow
