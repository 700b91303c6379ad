package models

import (
	"encoding/json"
	"fmt"
)

// User is the authenticated identity held by the session store.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Language string `json:"language"`
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidUser)
	}
	return nil
}

// ParseUser decodes a persisted user record and validates its shape.
func ParseUser(raw []byte) (User, error) {
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}
	if err := u.Validate(); err != nil {
		return User{}, err
	}
	return u, nil
}

type Language struct {
	Code string
	Name string
}

// Languages offered by the language selector.
var Languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "kn", Name: "Kannada"},
}

func IsSupportedLanguage(code string) bool {
	for _, l := range Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}
