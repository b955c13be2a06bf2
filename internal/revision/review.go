package revision

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moussahe/schoolaris-revision/internal/tutor"
)

// SubmitReview records one graded review: it asks the tutor to grade the
// answer, applies the SM-2 step, updates the card's counters, appends the
// review log and, when mastery is reached, resolves the parent weak area.
// Everything after grading persists in a single transaction keyed on the
// card version the review loaded: a lost-update race surfaces as
// ErrConflict and nothing is written.
//
// The tutor call happens before any mutation and holds no lock, so an
// oracle failure or timeout always aborts with the stores untouched and
// the submission can be retried as-is.
func (s *Service) SubmitReview(ctx context.Context, in SubmitReviewInput) (*ReviewResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	card, err := s.loadOwnedCard(ctx, in.CardID, in.ChildID)
	if err != nil {
		return nil, err
	}
	if card.IsMastered {
		return nil, validationErr("card %s is already mastered", card.ID)
	}

	wa, err := s.store.GetWeakArea(ctx, card.WeakAreaID)
	if err != nil {
		return nil, fmt.Errorf("load weak area %s: %w", card.WeakAreaID, err)
	}

	if s.tutor == nil {
		return nil, ErrOracleUnavailable
	}
	eval, err := s.tutor.EvaluateAnswer(ctx, tutor.EvaluationInput{
		Question:       in.Question,
		ExpectedAnswer: in.ExpectedAnswer,
		ChildAnswer:    in.ChildAnswer,
		Topic:          wa.Topic,
		GradeLevel:     string(wa.GradeLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	if eval.Quality < 0 || eval.Quality > MaxQuality {
		return nil, fmt.Errorf("%w: tutor returned quality %d", ErrOracleUnavailable, eval.Quality)
	}

	now := s.clock.Now()
	next, nextReviewAt, err := Schedule(ScheduleState{
		Repetitions:  card.Repetitions,
		EaseFactor:   card.EaseFactor,
		IntervalDays: card.IntervalDays,
	}, eval.Quality, now)
	if err != nil {
		return nil, err
	}

	updated := *card
	updated.Repetitions = next.Repetitions
	updated.EaseFactor = next.EaseFactor
	updated.IntervalDays = next.IntervalDays
	updated.NextReviewAt = nextReviewAt
	updated.TotalReviews++
	if eval.Quality >= PassQuality {
		updated.SuccessfulReviews++
	}
	updated.UpdatedAt = now

	mastered := s.isMastery(next, eval.Quality)
	if mastered {
		updated.IsMastered = true
	}

	mutation := ReviewMutation{
		Card:            updated,
		ResolveWeakArea: mastered,
		ResolvedAt:      now,
		Log: ReviewLog{
			ID:               uuid.NewString(),
			CardID:           card.ID,
			ChildID:          in.ChildID,
			Question:         in.Question,
			ExpectedAnswer:   in.ExpectedAnswer,
			ChildAnswer:      in.ChildAnswer,
			Quality:          eval.Quality,
			Feedback:         eval.Feedback,
			TimeSpentSeconds: in.TimeSpentSeconds,
			ReviewedAt:       now,
		},
	}

	if err := s.store.ApplyReview(ctx, mutation); err != nil {
		return nil, err
	}

	s.log.Info("review recorded",
		zap.String("card_id", card.ID),
		zap.String("child_id", in.ChildID),
		zap.Int("quality", eval.Quality),
		zap.Int("interval_days", next.IntervalDays),
		zap.Bool("mastered", mastered))

	return &ReviewResult{
		Quality:       eval.Quality,
		IsCorrect:     eval.IsCorrect,
		Feedback:      eval.Feedback,
		NewInterval:   next.IntervalDays,
		NextReviewAt:  nextReviewAt,
		IsMastered:    mastered,
		Encouragement: encouragementFor(eval.Quality, mastered),
	}, nil
}

// isMastery applies the mastery gate to the post-review state: enough
// climbs of the ladder, a long enough interval, and a strong answer on
// this very review.
func (s *Service) isMastery(next ScheduleState, quality int) bool {
	return next.Repetitions >= s.config.MasteryMinRepetitions &&
		next.IntervalDays >= s.config.MasteryMinIntervalDays &&
		quality >= s.config.MasteryMinQuality
}

func (in SubmitReviewInput) validate() error {
	if in.CardID == "" || in.ChildID == "" {
		return validationErr("empty card or child id")
	}
	if in.Question == "" || in.ExpectedAnswer == "" {
		return validationErr("empty question payload")
	}
	if in.ChildAnswer == "" {
		return validationErr("empty answer")
	}
	if in.TimeSpentSeconds < 0 {
		return validationErr("negative time spent")
	}
	return nil
}

// encouragementFor picks the message shown under the feedback. Display
// copy only; scheduling never depends on it.
func encouragementFor(quality int, mastered bool) string {
	if mastered {
		return "Incredible! You've mastered this topic — it won't come back to haunt you!"
	}
	switch {
	case quality == 5:
		return "Perfect answer! You really know this one."
	case quality == 4:
		return "Great job! Almost flawless."
	case quality == 3:
		return "Good, you got there! A little more practice and it will stick."
	case quality == 2:
		return "So close! Read the answer once more, you'll get it next time."
	case quality == 1:
		return "Don't worry, this one is tricky. We'll see it again tomorrow."
	default:
		return "Everyone blanks sometimes! Tomorrow is a fresh start."
	}
}
