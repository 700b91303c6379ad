package workflow

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/models"
)

// CurePage tracks symptom scores over time and asks the backend whether
// the patient is recovering.
type CurePage struct {
	*page
	*Controller[[]models.SymptomEntry, *models.CureResult]
}

func NewCurePage(deps Deps) *CurePage {
	p := &CurePage{page: newPage(deps)}
	p.Controller = NewController(models.NewSymptomList(deps.now()), p.send, ControllerConfig[[]models.SymptomEntry]{
		Timeout: deps.Timeout,
		Clone:   func(s []models.SymptomEntry) []models.SymptomEntry { return slices.Clone(s) },
		Validate: func(entries []models.SymptomEntry) error {
			if err := p.requireUser(); err != nil {
				return err
			}
			return models.ValidateSymptoms(entries)
		},
	})
	return p
}

func (p *CurePage) Activate(ctx context.Context) { p.activate(ctx) }

func (p *CurePage) Deactivate() {
	p.deactivate()
	p.Controller.Deactivate()
}

// Clear restarts the list with a single entry for today.
func (p *CurePage) Clear() {
	p.Controller.Discard(models.NewSymptomList(p.deps.now()))
}

func (p *CurePage) Title() string {
	return p.Strings().Get("cure_assessment", "Curing Assessment")
}

// Add appends an empty entry and returns its index.
func (p *CurePage) Add() (int, error) {
	var idx int
	err := p.Edit(func(entries *[]models.SymptomEntry) error {
		*entries = append(*entries, models.SymptomEntry{})
		idx = len(*entries) - 1
		return nil
	})
	return idx, err
}

// Update sets entry i. Dates are checked on submit, not here.
func (p *CurePage) Update(i int, date string, score float64) error {
	return p.Edit(func(entries *[]models.SymptomEntry) error {
		if i < 0 || i >= len(*entries) {
			return fmt.Errorf("%w: %d", models.ErrSymptomIndex, i+1)
		}
		(*entries)[i] = models.SymptomEntry{Date: strings.TrimSpace(date), Score: score}
		return nil
	})
}

func (p *CurePage) Remove(i int) error {
	return p.Edit(func(entries *[]models.SymptomEntry) error {
		if i < 0 || i >= len(*entries) {
			return fmt.Errorf("%w: %d", models.ErrSymptomIndex, i+1)
		}
		*entries = slices.Delete(*entries, i, i+1)
		return nil
	})
}

func (p *CurePage) send(ctx context.Context, entries []models.SymptomEntry) (*models.CureResult, error) {
	return p.deps.Client.SubmitCureAssessment(ctx, p.userID(), entries)
}
