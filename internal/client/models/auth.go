package models

import "strings"

// SignupForm is the body of POST /auth/signup.
type SignupForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Language string `json:"language"`
}

func (f SignupForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Email) == "" || f.Password == "" {
		return ErrMissingField
	}
	if !IsSupportedLanguage(f.Language) {
		return ErrUnknownLanguage
	}
	return nil
}

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return ErrMissingField
	}
	return nil
}

// LoginResult is the response of POST /auth/login.
type LoginResult struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Language string `json:"language"`
}

// User converts a login response into the session identity.
func (r LoginResult) User(email string) User {
	return User{ID: r.UserID, Name: r.Name, Email: email, Language: r.Language}
}
