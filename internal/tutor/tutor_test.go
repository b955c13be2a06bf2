package tutor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moussahe/schoolaris-revision/internal/llm"
)

func questionInput() QuestionInput {
	return QuestionInput{
		Topic:      "multiplication tables",
		Subject:    "math",
		Category:   "arithmetic",
		GradeLevel: "ce2",
	}
}

func TestGenerateQuestion(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"question":"Combien font 7 x 8 ?","expected_answer":"56"}`),
	})
	tu := New(mock, DefaultConfig())

	q, err := tu.GenerateQuestion(context.Background(), questionInput())
	require.NoError(t, err)
	assert.Equal(t, "Combien font 7 x 8 ?", q.Question)
	assert.Equal(t, "56", q.ExpectedAnswer)

	require.Len(t, mock.Calls, 1)
	req := mock.Calls[0]
	assert.Equal(t, questionSchema, req.Schema)
	assert.Equal(t, DefaultConfig().MaxTokens, req.MaxTokens)
	assert.Equal(t, DefaultConfig().Temperature, req.Temperature)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "multiplication tables")
	assert.Contains(t, req.Messages[0].Content, "CE2")
}

func TestGenerateQuestionRejectsEmptyFields(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"question":"","expected_answer":"56"}`),
	})
	tu := New(mock, DefaultConfig())

	_, err := tu.GenerateQuestion(context.Background(), questionInput())
	assert.Error(t, err)
}

func TestGenerateQuestionProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	tu := New(mock, DefaultConfig())

	_, err := tu.GenerateQuestion(context.Background(), questionInput())
	assert.Error(t, err)
}

func TestEvaluateAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"quality":4,"is_correct":true,"feedback":"Presque parfait !"}`),
	})
	tu := New(mock, DefaultConfig())

	eval, err := tu.EvaluateAnswer(context.Background(), EvaluationInput{
		Question:       "Combien font 7 x 8 ?",
		ExpectedAnswer: "56",
		ChildAnswer:    "cinquante-six",
		Topic:          "multiplication tables",
		GradeLevel:     "ce2",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, eval.Quality)
	assert.True(t, eval.IsCorrect)
	assert.Equal(t, "Presque parfait !", eval.Feedback)

	require.Len(t, mock.Calls, 1)
	req := mock.Calls[0]
	assert.Equal(t, evaluationSchema, req.Schema)
	// Grading stays deterministic: no temperature override.
	assert.Zero(t, req.Temperature)
	assert.Contains(t, req.Messages[0].Content, "cinquante-six")
	assert.Contains(t, req.Messages[0].Content, "56")
}

func TestEvaluateAnswerRejectsOutOfRangeQuality(t *testing.T) {
	for _, payload := range []string{
		`{"quality":-1,"is_correct":false,"feedback":"?"}`,
		`{"quality":6,"is_correct":true,"feedback":"?"}`,
	} {
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(payload)})
		tu := New(mock, DefaultConfig())

		_, err := tu.EvaluateAnswer(context.Background(), EvaluationInput{})
		assert.Error(t, err)
	}
}

func TestEvaluateAnswerMalformedJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)})
	tu := New(mock, DefaultConfig())

	_, err := tu.EvaluateAnswer(context.Background(), EvaluationInput{})
	assert.Error(t, err)
}
