package models

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func TestNewImageFile(t *testing.T) {
	img, err := NewImageFile("/tmp/scans/chest.jpg", jpegHeader)
	require.NoError(t, err)
	assert.Equal(t, "chest.jpg", img.Name)

	_, err = NewImageFile("chest.png", []byte("\x89PNG\r\n\x1a\n0000"))
	assert.ErrorIs(t, err, ErrNotJPEG)

	_, err = NewImageFile("empty.jpg", nil)
	assert.ErrorIs(t, err, ErrMissingImage)

	img, err = NewImageFile("", jpegHeader)
	require.NoError(t, err)
	assert.Equal(t, "xray.jpg", img.Name)
}

func TestScanSubmission_Validate(t *testing.T) {
	img, err := NewImageFile("x.jpg", jpegHeader)
	require.NoError(t, err)

	s := NewScanSubmission()
	assert.Equal(t, GenderMale, s.Gender)
	assert.ErrorIs(t, s.Validate(), ErrMissingImage)

	s.Image = img
	assert.NoError(t, s.Validate())

	s.Gender = "unknown"
	assert.ErrorIs(t, s.Validate(), ErrInvalidGender)

	s.Gender = GenderOther
	age := -3
	s.Age = &age
	assert.ErrorIs(t, s.Validate(), ErrInvalidAge)

	age = 150
	assert.NoError(t, s.Validate())
}

func TestScanSubmission_AgeField(t *testing.T) {
	s := NewScanSubmission()
	assert.Nil(t, s.Age)
	assert.Equal(t, "", s.AgeField())

	age := 0
	s.Age = &age
	assert.Equal(t, "0", s.AgeField())
}

func TestScanResult_AnnotatedImage(t *testing.T) {
	r := ScanResult{}
	b, ok, err := r.AnnotatedImage()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, b)

	r.AnnotatedImageB64 = base64.StdEncoding.EncodeToString(jpegHeader)
	b, ok, err = r.AnnotatedImage()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, jpegHeader, b)

	r.AnnotatedImageB64 = "%%%"
	_, ok, err = r.AnnotatedImage()
	assert.True(t, ok)
	assert.Error(t, err)
}
