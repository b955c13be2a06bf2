package tutor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moussahe/schoolaris-revision/internal/llm"
)

// Config bounds LLM usage for tutor calls.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the stock tutor limits. Question generation gets a
// little temperature so repeated cache misses vary; grading stays at the
// provider default (deterministic).
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.4,
	}
}

// LLMTutor implements Tutor on top of an llm.Provider.
type LLMTutor struct {
	provider llm.Provider
	config   Config
}

// New creates an LLM-backed tutor.
func New(provider llm.Provider, cfg Config) *LLMTutor {
	return &LLMTutor{provider: provider, config: cfg}
}

type questionOutput struct {
	Question       string `json:"question"`
	ExpectedAnswer string `json:"expected_answer"`
}

type evaluationOutput struct {
	Quality   int    `json:"quality"`
	IsCorrect bool   `json:"is_correct"`
	Feedback  string `json:"feedback"`
}

// GenerateQuestion produces one revision question for a weak area.
func (t *LLMTutor) GenerateQuestion(ctx context.Context, in QuestionInput) (*GeneratedQuestion, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	resp, err := t.provider.Generate(ctx, llm.Request{
		System: questionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionMessage(in)},
		},
		Schema:      questionSchema,
		MaxTokens:   t.config.MaxTokens,
		Temperature: t.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate question: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse question response: %w", err)
	}
	if raw.Question == "" || raw.ExpectedAnswer == "" {
		return nil, fmt.Errorf("empty question or answer in response")
	}

	return &GeneratedQuestion{
		Question:       raw.Question,
		ExpectedAnswer: raw.ExpectedAnswer,
	}, nil
}

// EvaluateAnswer grades one answer. The 0-5 bound is enforced by the
// response schema; the parsed value is range-checked again before it
// reaches the scheduler.
func (t *LLMTutor) EvaluateAnswer(ctx context.Context, in EvaluationInput) (*Evaluation, error) {
	ctx = llm.WithPurpose(ctx, "answer-eval")

	resp, err := t.provider.Generate(ctx, llm.Request{
		System: evaluationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildEvaluationMessage(in)},
		},
		Schema:    evaluationSchema,
		MaxTokens: t.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluate answer: %w", err)
	}

	var raw evaluationOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse evaluation response: %w", err)
	}
	if raw.Quality < 0 || raw.Quality > 5 {
		return nil, fmt.Errorf("quality %d outside [0,5]", raw.Quality)
	}

	return &Evaluation{
		Quality:   raw.Quality,
		IsCorrect: raw.IsCorrect,
		Feedback:  raw.Feedback,
	}, nil
}
