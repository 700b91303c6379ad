package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-100, 0}, {-1, 0}, {0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 3}, {99, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampScore(tt.in), "ClampScore(%d)", tt.in)
	}
}

func TestNewAnswers_FixedQuestionsAtZero(t *testing.T) {
	a := NewAnswers()

	require.Len(t, a, 4)
	assert.Equal(t, "Fever", a[0].Question)
	assert.Equal(t, "Cough", a[1].Question)
	assert.Equal(t, "Shortness of breath", a[2].Question)
	assert.Equal(t, "Chest pain", a[3].Question)
	for _, ans := range a {
		assert.Zero(t, ans.Score)
	}
}

func TestAnswers_Set(t *testing.T) {
	a := NewAnswers()

	require.NoError(t, a.Set(0, 4))
	require.NoError(t, a.Set(1, -1))
	require.NoError(t, a.Set(2, 2))

	assert.Equal(t, 3, a[0].Score)
	assert.Equal(t, 0, a[1].Score)
	assert.Equal(t, 2, a[2].Score)

	assert.ErrorIs(t, a.Set(4, 1), ErrQuestionIndex)
	assert.ErrorIs(t, a.Set(-1, 1), ErrQuestionIndex)
}

func TestAnswers_CopyIsIndependent(t *testing.T) {
	a := NewAnswers()
	b := a
	require.NoError(t, b.Set(0, 3))

	assert.Equal(t, 0, a[0].Score)
	assert.Equal(t, 3, b[0].Score)
}

func TestAssessmentAnswer_WireShape(t *testing.T) {
	b, err := json.Marshal(AssessmentAnswer{Question: "Cough", Score: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"q":"Cough","score":2}`, string(b))
}
