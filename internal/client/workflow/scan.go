package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/models"
	"github.com/dmitrijs2005/deepneumoscan/internal/filex"
)

// AnnotatedDir is where annotated images are saved when no path is given.
const AnnotatedDir = "annotated"

var (
	ErrNoResult         = errors.New("no result yet")
	ErrNoAnnotatedImage = errors.New("the result has no annotated image")
)

// ScanPage uploads a chest X-ray with the patient details.
type ScanPage struct {
	*page
	*Controller[models.ScanSubmission, *models.ScanResult]
}

func NewScanPage(deps Deps) *ScanPage {
	p := &ScanPage{page: newPage(deps)}
	p.Controller = NewController(models.NewScanSubmission(), p.send, ControllerConfig[models.ScanSubmission]{
		Timeout:  deps.Timeout,
		Validate: models.ScanSubmission.Validate,
	})
	return p
}

func (p *ScanPage) Activate(ctx context.Context) { p.activate(ctx) }

func (p *ScanPage) Deactivate() {
	p.deactivate()
	p.Controller.Deactivate()
}

// Clear drops the patient details, the attached image and the last result.
func (p *ScanPage) Clear() {
	p.Controller.Discard(models.NewScanSubmission())
}

func (p *ScanPage) Title() string {
	return p.Strings().Get("xray_scan", "Chest X-ray Scan")
}

// Precautions is shown above the upload field; empty unless provided by
// the backend.
func (p *ScanPage) Precautions() string {
	return p.Strings().Get("upload_precautions", "")
}

func (p *ScanPage) SetName(name string) error {
	return p.Edit(func(s *models.ScanSubmission) error {
		s.Name = strings.TrimSpace(name)
		return nil
	})
}

func (p *ScanPage) SetAge(age int) error {
	if age < 0 || age > 150 {
		return models.ErrInvalidAge
	}
	return p.Edit(func(s *models.ScanSubmission) error {
		s.Age = &age
		return nil
	})
}

func (p *ScanPage) SetGender(g string) error {
	gender := models.Gender(strings.ToLower(strings.TrimSpace(g)))
	if !gender.Valid() {
		return models.ErrInvalidGender
	}
	return p.Edit(func(s *models.ScanSubmission) error {
		s.Gender = gender
		return nil
	})
}

func (p *ScanPage) SetMedicalCondition(c string) error {
	return p.Edit(func(s *models.ScanSubmission) error {
		s.MedicalCondition = strings.TrimSpace(c)
		return nil
	})
}

// AttachImage replaces the attached image. Content that is not a JPEG is
// rejected and the previous attachment is kept.
func (p *ScanPage) AttachImage(name string, data []byte) error {
	img, err := models.NewImageFile(name, data)
	if err != nil {
		return err
	}
	return p.Edit(func(s *models.ScanSubmission) error {
		s.Image = img
		return nil
	})
}

func (p *ScanPage) AttachFile(path string) error {
	name, data, err := filex.ReadNamed(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	return p.AttachImage(name, data)
}

// SaveAnnotated writes the annotated image of the last result to path, or
// to AnnotatedDir under the working directory when path is empty. It
// returns the path written.
func (p *ScanPage) SaveAnnotated(path string) (string, error) {
	res, ok := p.Result()
	if !ok || res == nil {
		return "", ErrNoResult
	}
	img, ok, err := res.AnnotatedImage()
	if err != nil {
		return "", fmt.Errorf("decode annotated image: %w", err)
	}
	if !ok {
		return "", ErrNoAnnotatedImage
	}

	if path != "" {
		if err := filex.Save(path, img); err != nil {
			return "", fmt.Errorf("save annotated image: %w", err)
		}
		return path, nil
	}

	name := "xray.jpg"
	if in := p.Input(); in.Image != nil && in.Image.Name != "" {
		name = in.Image.Name
	}
	path, err = filex.SaveInSubdDir(AnnotatedDir, "annotated_", name, img)
	if err != nil {
		return "", fmt.Errorf("save annotated image: %w", err)
	}
	return path, nil
}

func (p *ScanPage) send(ctx context.Context, s models.ScanSubmission) (*models.ScanResult, error) {
	return p.deps.Client.SubmitScan(ctx, p.userID(), s)
}
