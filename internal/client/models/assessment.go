package models

const (
	QuestionCount = 4
	MinScore      = 0
	MaxScore      = 3
)

// Questions asked by the self-assessment, in order.
var Questions = [QuestionCount]string{
	"Fever",
	"Cough",
	"Shortness of breath",
	"Chest pain",
}

// AssessmentAnswer is a single self-assessment answer.
type AssessmentAnswer struct {
	Question string `json:"q"`
	Score    int    `json:"score"`
}

// Answers is a value type: copying it copies every answer.
type Answers [QuestionCount]AssessmentAnswer

// NewAnswers returns every question with a score of zero.
func NewAnswers() Answers {
	var a Answers
	for i, q := range Questions {
		a[i] = AssessmentAnswer{Question: q, Score: MinScore}
	}
	return a
}

// ClampScore bounds v to [MinScore, MaxScore].
func ClampScore(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// Set stores a clamped score for question i.
func (a *Answers) Set(i, score int) error {
	if i < 0 || i >= QuestionCount {
		return ErrQuestionIndex
	}
	a[i].Score = ClampScore(score)
	return nil
}

// SelfAssessmentRequest is the body of POST /assessment/self.
type SelfAssessmentRequest struct {
	UserID  string             `json:"user_id"`
	Answers []AssessmentAnswer `json:"answers"`
}

// SelfAssessmentResult is the response of POST /assessment/self.
type SelfAssessmentResult struct {
	PredictedCondition string  `json:"predicted_condition"`
	Confidence         float64 `json:"confidence"`
}
