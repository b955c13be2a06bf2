package revision

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestScheduleFirstSuccess(t *testing.T) {
	next, due, err := Schedule(ScheduleState{Repetitions: 0, EaseFactor: 2.5, IntervalDays: 0}, 5, schedNow)
	require.NoError(t, err)

	assert.Equal(t, 1, next.Repetitions)
	assert.Equal(t, 1, next.IntervalDays)
	assert.InDelta(t, 2.6, next.EaseFactor, 1e-9)
	assert.Equal(t, schedNow.AddDate(0, 0, 1), due)
}

func TestScheduleSecondSuccess(t *testing.T) {
	next, due, err := Schedule(ScheduleState{Repetitions: 1, EaseFactor: 2.6, IntervalDays: 1}, 4, schedNow)
	require.NoError(t, err)

	assert.Equal(t, 2, next.Repetitions)
	assert.Equal(t, 6, next.IntervalDays)
	// quality 4 leaves the ease factor unchanged.
	assert.InDelta(t, 2.6, next.EaseFactor, 1e-9)
	assert.Equal(t, schedNow.AddDate(0, 0, 6), due)
}

func TestScheduleThirdSuccessUsesPreUpdateEase(t *testing.T) {
	next, _, err := Schedule(ScheduleState{Repetitions: 2, EaseFactor: 2.6, IntervalDays: 6}, 5, schedNow)
	require.NoError(t, err)

	assert.Equal(t, 3, next.Repetitions)
	// round(6 * 2.6): the interval grows with the ease factor as it was
	// before this review bumped it to 2.7.
	assert.Equal(t, 16, next.IntervalDays)
	assert.InDelta(t, 2.7, next.EaseFactor, 1e-9)
}

func TestScheduleFailureResetsLadder(t *testing.T) {
	next, due, err := Schedule(ScheduleState{Repetitions: 4, EaseFactor: 2.2, IntervalDays: 30}, 2, schedNow)
	require.NoError(t, err)

	assert.Equal(t, 0, next.Repetitions)
	assert.Equal(t, 1, next.IntervalDays)
	// quality 2 still applies the ease penalty: 2.2 - 0.32.
	assert.InDelta(t, 1.88, next.EaseFactor, 1e-9)
	assert.Equal(t, schedNow.AddDate(0, 0, 1), due)
}

func TestScheduleEaseFactorFloor(t *testing.T) {
	state := ScheduleState{Repetitions: 0, EaseFactor: 2.5, IntervalDays: 0}
	for i := 0; i < 50; i++ {
		var err error
		state, _, err = Schedule(state, 0, schedNow)
		require.NoError(t, err)
	}
	assert.Equal(t, MinEaseFactor, state.EaseFactor)
	assert.Equal(t, 0, state.Repetitions)
	assert.Equal(t, 1, state.IntervalDays)
}

func TestScheduleClimbSequence(t *testing.T) {
	// A fresh card reviewed 4, 5, 5: the interval ladder climbs
	// 1 -> 6 -> round(6*2.6) while the ease factor moves 2.5 -> 2.6 -> 2.7.
	state := ScheduleState{Repetitions: 0, EaseFactor: 2.5, IntervalDays: 0}

	state, _, err := Schedule(state, 4, schedNow)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Repetitions)
	assert.Equal(t, 1, state.IntervalDays)
	assert.InDelta(t, 2.5, state.EaseFactor, 1e-9)

	state, _, err = Schedule(state, 5, schedNow)
	require.NoError(t, err)
	assert.Equal(t, 2, state.Repetitions)
	assert.Equal(t, 6, state.IntervalDays)
	assert.InDelta(t, 2.6, state.EaseFactor, 1e-9)

	state, _, err = Schedule(state, 5, schedNow)
	require.NoError(t, err)
	assert.Equal(t, 3, state.Repetitions)
	assert.Equal(t, 16, state.IntervalDays)
	assert.InDelta(t, 2.7, state.EaseFactor, 1e-9)
}

func TestScheduleQualityRange(t *testing.T) {
	state := ScheduleState{Repetitions: 1, EaseFactor: 2.5, IntervalDays: 1}

	_, _, err := Schedule(state, -1, schedNow)
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = Schedule(state, 6, schedNow)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestScheduleRejectsCorruptState(t *testing.T) {
	cases := map[string]ScheduleState{
		"negative repetitions":  {Repetitions: -1, EaseFactor: 2.5, IntervalDays: 1},
		"negative interval":     {Repetitions: 0, EaseFactor: 2.5, IntervalDays: -3},
		"interval below ladder": {Repetitions: 2, EaseFactor: 2.5, IntervalDays: 0},
		"ease factor below 1.3": {Repetitions: 1, EaseFactor: 1.2, IntervalDays: 1},
	}
	for name, state := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Schedule(state, 4, schedNow)
			assert.ErrorIs(t, err, ErrInternal)
		})
	}
}

func TestScheduleLongRun(t *testing.T) {
	// A card answered perfectly every time keeps growing its interval.
	state := ScheduleState{Repetitions: 0, EaseFactor: DefaultEaseFactor, IntervalDays: 0}
	prev := 0
	for i := 0; i < 10; i++ {
		var err error
		state, _, err = Schedule(state, 5, schedNow)
		require.NoError(t, err)
		require.GreaterOrEqual(t, state.IntervalDays, prev)
		prev = state.IntervalDays
	}
	assert.Equal(t, 10, state.Repetitions)
	assert.Greater(t, state.IntervalDays, 100)
}
