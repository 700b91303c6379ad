package models

import (
	"fmt"
	"time"
)

// DateLayout is the ISO-8601 calendar date used by symptom entries.
const DateLayout = "2006-01-02"

// DefaultSymptomScore is the score of the first entry of a new list.
const DefaultSymptomScore = 2

// SymptomEntry is one dated symptom score of a cure assessment.
type SymptomEntry struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

// NewSymptomList starts a list with one entry for today's UTC date.
func NewSymptomList(now time.Time) []SymptomEntry {
	return []SymptomEntry{{Date: now.UTC().Format(DateLayout), Score: DefaultSymptomScore}}
}

// ValidateSymptoms requires at least one entry and a valid date on each.
func ValidateSymptoms(entries []SymptomEntry) error {
	if len(entries) == 0 {
		return ErrNoSymptoms
	}
	for i, e := range entries {
		if _, err := time.Parse(DateLayout, e.Date); err != nil {
			return fmt.Errorf("entry %d: %w", i+1, ErrInvalidDate)
		}
	}
	return nil
}

// CureAssessmentRequest is the body of POST /assessment/cure.
type CureAssessmentRequest struct {
	UserID   string         `json:"user_id"`
	Symptoms []SymptomEntry `json:"symptoms"`
}

// CureResult is the response of POST /assessment/cure.
type CureResult struct {
	Evaluation  string  `json:"evaluation"`
	ScoreChange float64 `json:"score_change"`
}
