package client

import (
	"context"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/models"
)

type Client interface {
	Close() error
	Signup(ctx context.Context, form models.SignupForm) error
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error)
	Strings(ctx context.Context, lang string) (map[string]string, error)
	SubmitSelfAssessment(ctx context.Context, userID string, answers []models.AssessmentAnswer) (*models.SelfAssessmentResult, error)
	SubmitScan(ctx context.Context, userID string, sub models.ScanSubmission) (*models.ScanResult, error)
	SubmitCureAssessment(ctx context.Context, userID string, symptoms []models.SymptomEntry) (*models.CureResult, error)
	ListHistory(ctx context.Context, userID string) ([]models.HistoryRecord, error)
	DeleteHistory(ctx context.Context, id string) error
}
