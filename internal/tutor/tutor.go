// Package tutor is the AI oracle boundary of the revision engine: it
// generates short open questions for a weak area and grades a child's
// answer on the 0-5 recall-quality scale. Both operations are expressed
// as an injectable capability so the scheduling core can be tested with
// deterministic stubs.
package tutor

import "context"

// QuestionInput carries the weak-area context for question generation.
type QuestionInput struct {
	Topic      string
	Subject    string
	Category   string
	GradeLevel string
}

// GeneratedQuestion is a question/expected-answer pair.
type GeneratedQuestion struct {
	Question       string
	ExpectedAnswer string
}

// EvaluationInput carries one answer to grade, with the weak-area context
// the grader needs for age-appropriate feedback.
type EvaluationInput struct {
	Question       string
	ExpectedAnswer string
	ChildAnswer    string
	Topic          string
	GradeLevel     string
}

// Evaluation is the graded outcome of one answer.
type Evaluation struct {
	// Quality is the SM-2 recall quality, 0 (blackout) to 5 (perfect).
	Quality   int
	IsCorrect bool
	Feedback  string
}

// Tutor generates questions and grades answers.
type Tutor interface {
	GenerateQuestion(ctx context.Context, in QuestionInput) (*GeneratedQuestion, error)
	EvaluateAnswer(ctx context.Context, in EvaluationInput) (*Evaluation, error)
}
