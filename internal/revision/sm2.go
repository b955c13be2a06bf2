package revision

import (
	"math"
	"time"
)

// SM-2 scheduling constants.
const (
	// MinEaseFactor is the hard floor for the ease factor. The EF update
	// formula can push below it on repeated low-quality answers; the floor
	// is an intentional boundary policy, not an error.
	MinEaseFactor = 1.3

	// DefaultEaseFactor is the ease factor assigned to a new card.
	DefaultEaseFactor = 2.5

	// PassQuality is the lowest quality counted as a successful recall.
	// Anything below it resets the repetition ladder.
	PassQuality = 3

	// MaxQuality is the top of the quality scale.
	MaxQuality = 5

	firstIntervalDays  = 1
	secondIntervalDays = 6
)

// ScheduleState is the scheduling slice of a card: the inputs and outputs
// of one SM-2 step.
type ScheduleState struct {
	Repetitions  int
	EaseFactor   float64
	IntervalDays int
}

// Schedule applies one SM-2 step to state for a review of the given
// quality and returns the new state plus the next review instant.
// It is a pure function: no I/O, no clock reads beyond the now argument.
//
// quality < 3 is a failed recall: repetitions reset to 0 and the card
// comes back tomorrow. quality >= 3 climbs the interval ladder
// (1 day, 6 days, then round(interval * EF)). The ease factor update
// applies on every call, success or failure, and never drops below
// MinEaseFactor. Interval growth uses the ease factor as it was before
// this review's update.
func Schedule(state ScheduleState, quality int, now time.Time) (ScheduleState, time.Time, error) {
	if quality < 0 || quality > MaxQuality {
		return ScheduleState{}, time.Time{}, validationErr("quality %d outside [0,%d]", quality, MaxQuality)
	}
	if err := state.check(); err != nil {
		return ScheduleState{}, time.Time{}, err
	}

	next := state

	if quality < PassQuality {
		next.Repetitions = 0
		next.IntervalDays = firstIntervalDays
	} else {
		switch state.Repetitions {
		case 0:
			next.IntervalDays = firstIntervalDays
		case 1:
			next.IntervalDays = secondIntervalDays
		default:
			next.IntervalDays = int(math.Round(float64(state.IntervalDays) * state.EaseFactor))
		}
		next.Repetitions = state.Repetitions + 1
	}

	miss := float64(MaxQuality - quality)
	next.EaseFactor = state.EaseFactor + (0.1 - miss*(0.08+miss*0.02))
	if next.EaseFactor < MinEaseFactor {
		next.EaseFactor = MinEaseFactor
	}

	return next, now.AddDate(0, 0, next.IntervalDays), nil
}

// check validates the stored invariants of a schedule state. A violation
// means corrupted state or a bug upstream, so it surfaces as ErrInternal
// rather than being clamped.
func (s ScheduleState) check() error {
	if s.Repetitions < 0 {
		return internalErr("negative repetitions %d", s.Repetitions)
	}
	if s.IntervalDays < 0 {
		return internalErr("negative interval %d", s.IntervalDays)
	}
	if s.Repetitions >= 1 && s.IntervalDays < 1 {
		return internalErr("interval %d below 1 after %d repetitions", s.IntervalDays, s.Repetitions)
	}
	if s.EaseFactor < MinEaseFactor {
		return internalErr("ease factor %.3f below floor %.1f", s.EaseFactor, MinEaseFactor)
	}
	return nil
}
