package workflow

import (
	"context"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/models"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/router"
)

type MenuItem struct {
	Path  string
	Label string
}

// HomePage greets the user and offers the workflows.
type HomePage struct {
	*page
}

func NewHomePage(deps Deps) *HomePage {
	return &HomePage{page: newPage(deps)}
}

func (p *HomePage) Activate(ctx context.Context) { p.activate(ctx) }
func (p *HomePage) Deactivate()                  { p.deactivate() }

func (p *HomePage) Title() string {
	return p.Strings().Get("app_name", "Deepneumoscan")
}

func (p *HomePage) Welcome() string {
	u, _ := p.user()
	return p.Strings().Format("welcome", "Welcome, {name}", map[string]string{"name": u.Name})
}

func (p *HomePage) Menu() []MenuItem {
	s := p.Strings()
	return []MenuItem{
		{Path: router.PathSelf, Label: s.Get("self_assessment", "Self Assessment")},
		{Path: router.PathScan, Label: s.Get("xray_scan", "Chest X-ray Scan")},
		{Path: router.PathHospitals, Label: s.Get("hospital_tracker", "Hospital Tracker")},
		{Path: router.PathCure, Label: s.Get("cure_assessment", "Curing Assessment")},
		{Path: router.PathHistory, Label: s.Get("history", "History")},
	}
}

// Languages lists the choices of the language selector.
func (p *HomePage) Languages() []models.Language {
	return models.Languages
}

// Logout clears the session and returns to the login page.
func (p *HomePage) Logout(ctx context.Context) error {
	if err := p.deps.Auth.Logout(ctx); err != nil {
		return err
	}
	if p.deps.Nav != nil {
		return p.deps.Nav.Navigate(ctx, router.PathAuth)
	}
	return nil
}
