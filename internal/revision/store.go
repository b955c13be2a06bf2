package revision

import (
	"context"
	"time"
)

// CardAggregates is the single-pass aggregate row over a child's cards.
type CardAggregates struct {
	TotalCards        int
	MasteredCards     int
	AverageEaseFactor float64
	TotalReviews      int
	SuccessfulReviews int
}

// ReviewMutation is the full state delta of one submitted review. The
// store applies it in a single transaction: the card update (guarded by
// Card.Version), the optional weak-area resolution and the log append
// all commit together or not at all.
type ReviewMutation struct {
	// Card is the complete post-review card row. Card.Version holds the
	// version the review loaded; the store bumps it on success and
	// reports ErrConflict if another writer got there first.
	Card Card

	// ResolveWeakArea marks the card's weak area resolved at ResolvedAt.
	ResolveWeakArea bool
	ResolvedAt      time.Time

	Log ReviewLog
}

// Store is the persistence boundary of the revision engine. The sqlite
// implementation lives in internal/store; tests use an in-memory fake.
type Store interface {
	// WeakAreasWithoutCard returns the child's unresolved weak areas that
	// have no active (non-mastered) card yet.
	WeakAreasWithoutCard(ctx context.Context, childID string) ([]WeakArea, error)

	// CreateCards inserts new card rows.
	CreateCards(ctx context.Context, cards []Card) error

	// GetCard returns a card by ID, or ErrNotFound.
	GetCard(ctx context.Context, cardID string) (*Card, error)

	// GetWeakArea returns a weak area by ID, or ErrNotFound.
	GetWeakArea(ctx context.Context, weakAreaID string) (*WeakArea, error)

	// SaveCachedQuestion stores a freshly generated question on the card.
	// version is the card version the caller loaded; a mismatch returns
	// ErrConflict without writing.
	SaveCachedQuestion(ctx context.Context, cardID string, version int, q CachedQuestion, cachedAt time.Time) error

	// DueCards returns non-mastered cards of unresolved weak areas with
	// NextReviewAt <= now, ordered most overdue first and hardest
	// (lowest ease factor) first on ties, truncated to limit.
	DueCards(ctx context.Context, childID string, now time.Time, limit int) ([]CardWithArea, error)

	// DueCount counts the same set as DueCards, unbounded.
	DueCount(ctx context.Context, childID string, now time.Time) (int, error)

	// CardAggregates aggregates over all of the child's cards, mastered
	// included.
	CardAggregates(ctx context.Context, childID string) (CardAggregates, error)

	// ReviewDays returns the distinct UTC calendar days with at least one
	// review log for the child, most recent first.
	ReviewDays(ctx context.Context, childID string) ([]time.Time, error)

	// ForecastCounts counts non-mastered cards per NextReviewAt calendar
	// day in [from, to), keyed by day formatted as 2006-01-02.
	ForecastCounts(ctx context.Context, childID string, from, to time.Time) (map[string]int, error)

	// ApplyReview atomically persists one review.
	ApplyReview(ctx context.Context, m ReviewMutation) error

	// ReviewLogs returns the child's full review history, oldest first.
	ReviewLogs(ctx context.Context, childID string) ([]ReviewLog, error)
}
