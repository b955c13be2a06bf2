package revision

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// fakeStore is an in-memory Store for service tests. It mirrors the
// sqlite implementation's semantics, including version-guarded writes.
type fakeStore struct {
	weakAreas map[string]*WeakArea
	cards     map[string]*Card
	logs      []ReviewLog

	// failNext makes the next write fail with the given error.
	failNext error
	// beforeSave runs at the top of SaveCachedQuestion, once. Tests use
	// it to interleave a competing write.
	beforeSave func()
	// applied counts ApplyReview commits.
	applied int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		weakAreas: make(map[string]*WeakArea),
		cards:     make(map[string]*Card),
	}
}

func (f *fakeStore) addWeakArea(wa WeakArea) {
	f.weakAreas[wa.ID] = &wa
}

func (f *fakeStore) addCard(c Card) {
	f.cards[c.ID] = &c
}

func (f *fakeStore) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeStore) WeakAreasWithoutCard(_ context.Context, childID string) ([]WeakArea, error) {
	var out []WeakArea
	for _, wa := range f.weakAreas {
		if wa.ChildID != childID || wa.IsResolved {
			continue
		}
		tracked := false
		for _, c := range f.cards {
			if c.WeakAreaID == wa.ID && !c.IsMastered {
				tracked = true
				break
			}
		}
		if !tracked {
			out = append(out, *wa)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastErrorAt.Before(out[j].LastErrorAt) })
	return out, nil
}

func (f *fakeStore) CreateCards(_ context.Context, cards []Card) error {
	if err := f.takeFailure(); err != nil {
		return err
	}
	for _, c := range cards {
		c := c
		f.cards[c.ID] = &c
	}
	return nil
}

func (f *fakeStore) GetCard(_ context.Context, cardID string) (*Card, error) {
	c, ok := f.cards[cardID]
	if !ok {
		return nil, fmt.Errorf("%w: card %s", ErrNotFound, cardID)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) GetWeakArea(_ context.Context, weakAreaID string) (*WeakArea, error) {
	wa, ok := f.weakAreas[weakAreaID]
	if !ok {
		return nil, fmt.Errorf("%w: weak area %s", ErrNotFound, weakAreaID)
	}
	cp := *wa
	return &cp, nil
}

func (f *fakeStore) SaveCachedQuestion(_ context.Context, cardID string, version int, q CachedQuestion, cachedAt time.Time) error {
	if hook := f.beforeSave; hook != nil {
		f.beforeSave = nil
		hook()
	}
	if err := f.takeFailure(); err != nil {
		return err
	}
	c, ok := f.cards[cardID]
	if !ok {
		return fmt.Errorf("%w: card %s", ErrNotFound, cardID)
	}
	if c.Version != version {
		return fmt.Errorf("%w: card %s version %d != %d", ErrConflict, cardID, c.Version, version)
	}
	cq := q
	at := cachedAt
	c.CachedQuestion = &cq
	c.CachedAt = &at
	c.Version++
	return nil
}

func (f *fakeStore) dueSet(childID string, now time.Time) []*Card {
	var due []*Card
	for _, c := range f.cards {
		if c.ChildID != childID || c.IsMastered || c.NextReviewAt.After(now) {
			continue
		}
		if wa, ok := f.weakAreas[c.WeakAreaID]; !ok || wa.IsResolved {
			continue
		}
		due = append(due, c)
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReviewAt.Equal(due[j].NextReviewAt) {
			return due[i].NextReviewAt.Before(due[j].NextReviewAt)
		}
		return due[i].EaseFactor < due[j].EaseFactor
	})
	return due
}

func (f *fakeStore) DueCards(_ context.Context, childID string, now time.Time, limit int) ([]CardWithArea, error) {
	due := f.dueSet(childID, now)
	if len(due) > limit {
		due = due[:limit]
	}
	out := make([]CardWithArea, len(due))
	for i, c := range due {
		out[i] = CardWithArea{Card: *c, WeakArea: f.weakAreas[c.WeakAreaID].Summary()}
	}
	return out, nil
}

func (f *fakeStore) DueCount(_ context.Context, childID string, now time.Time) (int, error) {
	return len(f.dueSet(childID, now)), nil
}

func (f *fakeStore) CardAggregates(_ context.Context, childID string) (CardAggregates, error) {
	var agg CardAggregates
	var efSum float64
	for _, c := range f.cards {
		if c.ChildID != childID {
			continue
		}
		agg.TotalCards++
		if c.IsMastered {
			agg.MasteredCards++
		}
		efSum += c.EaseFactor
		agg.TotalReviews += c.TotalReviews
		agg.SuccessfulReviews += c.SuccessfulReviews
	}
	if agg.TotalCards > 0 {
		agg.AverageEaseFactor = efSum / float64(agg.TotalCards)
	}
	return agg, nil
}

func (f *fakeStore) ReviewDays(_ context.Context, childID string) ([]time.Time, error) {
	seen := make(map[string]time.Time)
	for _, l := range f.logs {
		if l.ChildID != childID {
			continue
		}
		day := l.ReviewedAt.UTC().Truncate(24 * time.Hour)
		seen[day.Format(time.DateOnly)] = day
	}
	out := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out, nil
}

func (f *fakeStore) ForecastCounts(_ context.Context, childID string, from, to time.Time) (map[string]int, error) {
	counts := make(map[string]int)
	for _, c := range f.cards {
		if c.ChildID != childID || c.IsMastered {
			continue
		}
		if wa, ok := f.weakAreas[c.WeakAreaID]; !ok || wa.IsResolved {
			continue
		}
		at := c.NextReviewAt.UTC()
		if at.Before(from) || !at.Before(to) {
			continue
		}
		counts[at.Format(time.DateOnly)]++
	}
	return counts, nil
}

func (f *fakeStore) ApplyReview(_ context.Context, m ReviewMutation) error {
	if err := f.takeFailure(); err != nil {
		return err
	}
	c, ok := f.cards[m.Card.ID]
	if !ok {
		return fmt.Errorf("%w: card %s", ErrNotFound, m.Card.ID)
	}
	if c.Version != m.Card.Version {
		return fmt.Errorf("%w: card %s version %d != %d", ErrConflict, m.Card.ID, c.Version, m.Card.Version)
	}
	updated := m.Card
	updated.Version++
	f.cards[updated.ID] = &updated

	if m.ResolveWeakArea {
		if wa, ok := f.weakAreas[updated.WeakAreaID]; ok {
			wa.IsResolved = true
			wa.ResolvedAt = &m.ResolvedAt
		}
	}
	f.logs = append(f.logs, m.Log)
	f.applied++
	return nil
}

func (f *fakeStore) ReviewLogs(_ context.Context, childID string) ([]ReviewLog, error) {
	var out []ReviewLog
	for _, l := range f.logs {
		if l.ChildID == childID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReviewedAt.Before(out[j].ReviewedAt) })
	return out, nil
}

var _ Store = (*fakeStore)(nil)
