package tutor

import (
	"context"
	"errors"
	"sync"
)

// ErrStubExhausted is returned when a Stub runs out of canned responses.
var ErrStubExhausted = errors.New("stub tutor: no responses queued")

// Stub is a deterministic Tutor for tests. It returns canned responses in
// FIFO order and records every call.
type Stub struct {
	mu          sync.Mutex
	questions   []GeneratedQuestion
	evaluations []Evaluation
	err         error

	QuestionCalls   []QuestionInput
	EvaluationCalls []EvaluationInput
}

// NewStub creates an empty Stub.
func NewStub() *Stub { return &Stub{} }

// QueueQuestion appends a canned question.
func (s *Stub) QueueQuestion(q GeneratedQuestion) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = append(s.questions, q)
	return s
}

// QueueEvaluation appends a canned evaluation.
func (s *Stub) QueueEvaluation(e Evaluation) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluations = append(s.evaluations, e)
	return s
}

// Fail makes every subsequent call return err.
func (s *Stub) Fail(err error) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	return s
}

func (s *Stub) GenerateQuestion(_ context.Context, in QuestionInput) (*GeneratedQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.QuestionCalls = append(s.QuestionCalls, in)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.questions) == 0 {
		return nil, ErrStubExhausted
	}
	q := s.questions[0]
	s.questions = s.questions[1:]
	return &q, nil
}

func (s *Stub) EvaluateAnswer(_ context.Context, in EvaluationInput) (*Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.EvaluationCalls = append(s.EvaluationCalls, in)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.evaluations) == 0 {
		return nil, ErrStubExhausted
	}
	e := s.evaluations[0]
	s.evaluations = s.evaluations[1:]
	return &e, nil
}
