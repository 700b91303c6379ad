package workflow

import (
	"context"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/models"
)

// SelfAssessmentPage asks the four symptom questions and submits the
// scores.
type SelfAssessmentPage struct {
	*page
	*Controller[models.Answers, *models.SelfAssessmentResult]
}

func NewSelfAssessmentPage(deps Deps) *SelfAssessmentPage {
	p := &SelfAssessmentPage{page: newPage(deps)}
	p.Controller = NewController(models.NewAnswers(), p.send, ControllerConfig[models.Answers]{
		Timeout:  deps.Timeout,
		Validate: func(models.Answers) error { return p.requireUser() },
	})
	return p
}

func (p *SelfAssessmentPage) Activate(ctx context.Context) { p.activate(ctx) }

func (p *SelfAssessmentPage) Deactivate() {
	p.deactivate()
	p.Controller.Deactivate()
}

// Clear drops the answers and the last result.
func (p *SelfAssessmentPage) Clear() {
	p.Controller.Discard(models.NewAnswers())
}

func (p *SelfAssessmentPage) Title() string {
	return p.Strings().Get("self_assessment", "Self Assessment")
}

// SetScore stores the answer to question i, clamped to 0..3.
func (p *SelfAssessmentPage) SetScore(i, score int) error {
	return p.Edit(func(a *models.Answers) error {
		return a.Set(i, score)
	})
}

func (p *SelfAssessmentPage) send(ctx context.Context, a models.Answers) (*models.SelfAssessmentResult, error) {
	return p.deps.Client.SubmitSelfAssessment(ctx, p.userID(), a[:])
}
