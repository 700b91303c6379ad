// Package models defines the typed records exchanged between the client
// workflows and the diagnostic backend: the session user, self-assessment
// answers, X-ray scan submissions, cure-assessment symptom entries, history
// records and their results.
//
// Records that carry user input validate themselves (Validate methods and
// constructors), so workflows never send an untyped form.
package models
