package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/models"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/router"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/workflow"
	"github.com/dmitrijs2005/deepneumoscan/internal/common"
)

// Input indirections, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Signup prompts for the profile and credentials, creates the account and
// logs in with it. On success the home page is shown.
func (a *App) Signup(ctx context.Context) error {
	if err := a.navigate(ctx, router.PathAuth); err != nil {
		return err
	}
	if err := a.authPage.SetMode(workflow.ModeSignup); err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	lang, err := getSimpleText(a.reader, "Language ("+languageChoices()+", empty for en)", a.out)
	if err != nil {
		return err
	}
	if err := a.authPage.SetProfile(name, strings.ToLower(lang)); err != nil {
		a.printErr(err)
		return err
	}

	return a.submitCredentials(ctx)
}

// Login prompts for credentials and authenticates. On success the home page
// is shown; on failure the notice is printed and the form stays editable.
func (a *App) Login(ctx context.Context) error {
	if err := a.navigate(ctx, router.PathAuth); err != nil {
		return err
	}
	if err := a.authPage.SetMode(workflow.ModeLogin); err != nil {
		return err
	}
	return a.submitCredentials(ctx)
}

func (a *App) submitCredentials(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authPage.SetCredentials(email, string(password)); err != nil {
		return err
	}

	u, err := a.authPage.Submit(ctx)
	if err != nil {
		a.printErr(err)
		a.authPage.Acknowledge()
		return err
	}

	a.printf("Logged in as %s\n", u.Name)
	return a.showHome()
}

// Logout clears the session and returns to the login page.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("Not logged in")
		return nil
	}
	if err := a.home.Logout(ctx); err != nil {
		a.printErr(err)
		return err
	}
	a.println("Logged out")
	return nil
}

// Language changes the language of the logged-in user and reloads the
// strings of the current page. Without a code it lists the choices.
func (a *App) Language(ctx context.Context, code string) error {
	if code == "" {
		a.println("Languages:", languageChoices())
		return nil
	}
	if !a.isLoggedIn() {
		a.println("Log in to change the language")
		return nil
	}
	if err := a.auth.SetLanguage(ctx, strings.ToLower(code)); err != nil {
		a.printErr(err)
		return err
	}
	if err := a.router.Reload(ctx); err != nil {
		a.printErr(err)
		return err
	}
	a.println("Language set to", strings.ToLower(code))
	return nil
}

func languageChoices() string {
	parts := make([]string, 0, len(models.Languages))
	for _, l := range models.Languages {
		parts = append(parts, l.Code+"="+l.Name)
	}
	return strings.Join(parts, ", ")
}
