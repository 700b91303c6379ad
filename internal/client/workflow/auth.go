package workflow

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/models"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/router"
	"github.com/dmitrijs2005/deepneumoscan/internal/common"
)

type AuthMode int

const (
	ModeLogin AuthMode = iota
	ModeSignup
)

// AuthForm is the input of the login/signup page. Name and Language are
// only used in signup mode.
type AuthForm struct {
	Mode     AuthMode
	Name     string
	Email    string
	Password string
	Language string
}

func (f AuthForm) Validate() error {
	if f.Mode == ModeSignup {
		return models.SignupForm{Name: f.Name, Email: f.Email, Password: f.Password, Language: common.LanguageOrDefault(f.Language)}.Validate()
	}
	return models.Credentials{Email: f.Email, Password: f.Password}.Validate()
}

// AuthPage logs the user in, or signs up and then logs in. On success the
// session holds the new identity and the router moves to the home page.
type AuthPage struct {
	*page
	*Controller[AuthForm, models.User]
}

func NewAuthPage(deps Deps) *AuthPage {
	p := &AuthPage{page: newPage(deps)}
	p.Controller = NewController(AuthForm{}, p.send, ControllerConfig[AuthForm]{
		Timeout:  deps.Timeout,
		Validate: AuthForm.Validate,
	})
	return p
}

func (p *AuthPage) Activate(ctx context.Context) { p.activate(ctx) }

func (p *AuthPage) Deactivate() {
	p.deactivate()
	p.Controller.Deactivate()
}

func (p *AuthPage) Title() string {
	return p.Strings().Get("app_name", "Deepneumoscan")
}

func (p *AuthPage) SetMode(m AuthMode) error {
	return p.Edit(func(f *AuthForm) error {
		f.Mode = m
		return nil
	})
}

// SetCredentials fills the login fields.
func (p *AuthPage) SetCredentials(email, password string) error {
	return p.Edit(func(f *AuthForm) error {
		f.Email = strings.TrimSpace(email)
		f.Password = password
		return nil
	})
}

// SetProfile fills the signup-only fields.
func (p *AuthPage) SetProfile(name, language string) error {
	if language != "" && !models.IsSupportedLanguage(language) {
		return models.ErrUnknownLanguage
	}
	return p.Edit(func(f *AuthForm) error {
		f.Name = strings.TrimSpace(name)
		f.Language = language
		return nil
	})
}

// Submit authenticates and, on success, forgets the password and
// navigates home.
func (p *AuthPage) Submit(ctx context.Context) (models.User, error) {
	u, err := p.Controller.Submit(ctx)
	if err != nil {
		return u, err
	}

	_ = p.Edit(func(f *AuthForm) error {
		f.Password = ""
		return nil
	})

	if p.deps.Nav != nil {
		if err := p.deps.Nav.Navigate(ctx, router.PathHome); err != nil {
			return u, err
		}
	}
	return u, nil
}

func (p *AuthPage) send(ctx context.Context, f AuthForm) (models.User, error) {
	if f.Mode == ModeSignup {
		return p.deps.Auth.Signup(ctx, models.SignupForm{
			Name:     f.Name,
			Email:    f.Email,
			Password: f.Password,
			Language: f.Language,
		})
	}
	return p.deps.Auth.Login(ctx, models.Credentials{Email: f.Email, Password: f.Password})
}
