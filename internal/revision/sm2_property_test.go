package revision

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// runSequence replays a quality sequence against a fresh card state.
func runSequence(t *testing.T, qualities []int) ScheduleState {
	t.Helper()
	state := ScheduleState{Repetitions: 0, EaseFactor: DefaultEaseFactor, IntervalDays: 0}
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	for _, q := range qualities {
		var err error
		state, now, err = Schedule(state, q, now)
		if err != nil {
			t.Fatalf("Schedule(%v, q=%d): %v", state, q, err)
		}
	}
	return state
}

func TestScheduleProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	qualitySeq := gen.SliceOf(gen.IntRange(0, MaxQuality))

	properties.Property("ease factor never drops below the floor", prop.ForAll(
		func(qualities []int) bool {
			state := runSequence(t, qualities)
			return state.EaseFactor >= MinEaseFactor
		},
		qualitySeq,
	))

	properties.Property("repetitions count the trailing successes", prop.ForAll(
		func(qualities []int) bool {
			state := runSequence(t, qualities)
			trailing := 0
			for i := len(qualities) - 1; i >= 0; i-- {
				if qualities[i] < PassQuality {
					break
				}
				trailing++
			}
			return state.Repetitions == trailing
		},
		qualitySeq,
	))

	properties.Property("reviewed cards always have a positive interval", prop.ForAll(
		func(qualities []int) bool {
			if len(qualities) == 0 {
				return true
			}
			state := runSequence(t, qualities)
			return state.IntervalDays >= 1
		},
		qualitySeq,
	))

	properties.Property("a failure always schedules for tomorrow", prop.ForAll(
		func(qualities []int, failure int) bool {
			state := runSequence(t, qualities)
			next, _, err := Schedule(state, failure, time.Now())
			if err != nil {
				return false
			}
			return next.Repetitions == 0 && next.IntervalDays == 1
		},
		qualitySeq,
		gen.IntRange(0, PassQuality-1),
	))

	properties.TestingRun(t)
}
