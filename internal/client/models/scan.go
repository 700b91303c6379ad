package models

import (
	"encoding/base64"
	"net/http"
	"path/filepath"
	"strconv"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ImageFile is an attached chest X-ray. Only JPEG content is accepted.
type ImageFile struct {
	Name string
	Data []byte
}

// NewImageFile sniffs data and rejects anything that is not a JPEG.
func NewImageFile(name string, data []byte) (*ImageFile, error) {
	if len(data) == 0 {
		return nil, ErrMissingImage
	}
	if http.DetectContentType(data) != "image/jpeg" {
		return nil, ErrNotJPEG
	}
	if name == "" {
		name = "xray.jpg"
	}
	return &ImageFile{Name: filepath.Base(name), Data: data}, nil
}

// ScanSubmission is the chest X-ray form. A nil Age was never entered.
type ScanSubmission struct {
	Name             string
	Age              *int
	Gender           Gender
	MedicalCondition string
	Image            *ImageFile
}

// NewScanSubmission returns an empty form with the default gender.
func NewScanSubmission() ScanSubmission {
	return ScanSubmission{Gender: GenderMale}
}

func (s ScanSubmission) Validate() error {
	if s.Image == nil || len(s.Image.Data) == 0 {
		return ErrMissingImage
	}
	if !s.Gender.Valid() {
		return ErrInvalidGender
	}
	if s.Age != nil && (*s.Age < 0 || *s.Age > 150) {
		return ErrInvalidAge
	}
	return nil
}

// AgeField is the age as sent in the form, empty when unknown.
func (s ScanSubmission) AgeField() string {
	if s.Age == nil {
		return ""
	}
	return strconv.Itoa(*s.Age)
}

// ScanResult is the response of POST /scan/xray.
type ScanResult struct {
	Prediction        string  `json:"prediction"`
	Confidence        float64 `json:"confidence"`
	Model             string  `json:"model"`
	AnnotatedImageB64 string  `json:"annotated_image_b64,omitempty"`
}

// AnnotatedImage decodes the annotated JPEG, if the backend sent one.
func (r ScanResult) AnnotatedImage() ([]byte, bool, error) {
	if r.AnnotatedImageB64 == "" {
		return nil, false, nil
	}
	b, err := base64.StdEncoding.DecodeString(r.AnnotatedImageB64)
	if err != nil {
		return nil, true, err
	}
	return b, true, nil
}
