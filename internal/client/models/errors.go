package models

import "errors"

var (
	ErrInvalidUser      = errors.New("invalid user record")
	ErrMissingImage     = errors.New("a JPEG image must be attached")
	ErrNotJPEG          = errors.New("image is not a JPEG")
	ErrInvalidGender    = errors.New("gender must be male, female or other")
	ErrInvalidAge       = errors.New("age must be between 0 and 150")
	ErrNoSymptoms       = errors.New("at least one symptom entry is required")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrQuestionIndex    = errors.New("question index out of range")
	ErrSymptomIndex     = errors.New("symptom index out of range")
	ErrUnknownLanguage  = errors.New("unsupported language")
	ErrMissingField     = errors.New("required field is empty")
	ErrNotAuthenticated = errors.New("not logged in")
)
