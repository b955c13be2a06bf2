package revision

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SyncCards creates a card with default scheduling state for every
// unresolved weak area of the child that is not yet tracked by an active
// card and returns how many were created. Running it again without new
// weak areas in between creates nothing, so callers invoke it freely
// before every revision session. Weak areas themselves are never touched.
func (s *Service) SyncCards(ctx context.Context, childID string) (int, error) {
	if childID == "" {
		return 0, validationErr("empty child id")
	}

	areas, err := s.store.WeakAreasWithoutCard(ctx, childID)
	if err != nil {
		return 0, fmt.Errorf("list weak areas: %w", err)
	}
	if len(areas) == 0 {
		return 0, nil
	}

	now := s.clock.Now()
	cards := make([]Card, len(areas))
	for i, wa := range areas {
		cards[i] = newCard(wa, now)
	}

	if err := s.store.CreateCards(ctx, cards); err != nil {
		return 0, fmt.Errorf("create cards: %w", err)
	}

	s.log.Info("synced revision cards",
		zap.String("child_id", childID),
		zap.Int("created", len(cards)))

	return len(cards), nil
}

// newCard builds the default card for a weak area: never reviewed, stock
// ease factor, due immediately.
func newCard(wa WeakArea, now time.Time) Card {
	return Card{
		ID:           uuid.NewString(),
		ChildID:      wa.ChildID,
		WeakAreaID:   wa.ID,
		Repetitions:  0,
		EaseFactor:   DefaultEaseFactor,
		IntervalDays: 0,
		NextReviewAt: now,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
