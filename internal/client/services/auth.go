// Package services contains application services for the deepneumoscan
// client. This file defines the authentication service: signup, login,
// logout and the language preference of the logged-in user.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/client"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/models"
	"github.com/dmitrijs2005/deepneumoscan/internal/common"
)

var (
	ErrSignupFailed = errors.New("signup failed")
	ErrLoginFailed  = errors.New("login failed")
)

// Session is the part of the session store the auth service writes to.
type Session interface {
	User() (models.User, bool)
	SetUser(ctx context.Context, u models.User) error
	SetLanguage(ctx context.Context, code string) error
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Signup: create the account, then log in with the same credentials.
//   - Login: authenticate and store the returned identity in the session.
//   - Logout: clear the session.
//   - SetLanguage: change the language of the logged-in user.
//
// Remote failures of Signup and Login are wrapped in ErrSignupFailed and
// ErrLoginFailed; the underlying cause stays matchable with errors.Is.
type AuthService interface {
	Signup(ctx context.Context, form models.SignupForm) (models.User, error)
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
	Logout(ctx context.Context) error
	SetLanguage(ctx context.Context, code string) error
	Close(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session Session
}

func NewAuthService(client client.Client, session Session) AuthService {
	return &authService{client: client, session: session}
}

func (a *authService) Signup(ctx context.Context, form models.SignupForm) (models.User, error) {
	form.Language = common.LanguageOrDefault(form.Language)
	if err := form.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrSignupFailed, err)
	}

	if err := a.client.Signup(ctx, form); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrSignupFailed, err)
	}

	return a.Login(ctx, models.Credentials{Email: form.Email, Password: form.Password})
}

func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	if err := creds.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	res, err := a.client.Login(ctx, creds)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	u := res.User(creds.Email)
	u.Language = common.LanguageOrDefault(u.Language)

	if err := a.session.SetUser(ctx, u); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	return u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

// SetLanguage rejects unsupported codes. Without a logged-in user the
// session ignores the change.
func (a *authService) SetLanguage(ctx context.Context, code string) error {
	if !models.IsSupportedLanguage(code) {
		return fmt.Errorf("%w: %q", models.ErrUnknownLanguage, code)
	}
	return a.session.SetLanguage(ctx, code)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
