package revision

import (
	"context"
	"fmt"
	"time"
)

// DueCards returns up to limit due cards for the child, most overdue
// first, hardest first on ties.
func (s *Service) DueCards(ctx context.Context, childID string, limit int) ([]CardWithArea, error) {
	if childID == "" {
		return nil, validationErr("empty child id")
	}
	if limit <= 0 {
		return nil, validationErr("limit must be positive, got %d", limit)
	}
	return s.store.DueCards(ctx, childID, s.clock.Now(), limit)
}

// DueCount returns how many cards are currently due for the child.
func (s *Service) DueCount(ctx context.Context, childID string) (int, error) {
	if childID == "" {
		return 0, validationErr("empty child id")
	}
	return s.store.DueCount(ctx, childID, s.clock.Now())
}

// Stats aggregates a child's revision state. Mastered cards count toward
// the totals but never toward DueToday.
func (s *Service) Stats(ctx context.Context, childID string) (*Stats, error) {
	if childID == "" {
		return nil, validationErr("empty child id")
	}

	agg, err := s.store.CardAggregates(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("card aggregates: %w", err)
	}

	due, err := s.store.DueCount(ctx, childID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("due count: %w", err)
	}

	days, err := s.store.ReviewDays(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("review days: %w", err)
	}

	stats := &Stats{
		TotalCards:        agg.TotalCards,
		MasteredCards:     agg.MasteredCards,
		DueToday:          due,
		AverageEaseFactor: agg.AverageEaseFactor,
		TotalReviews:      agg.TotalReviews,
		StreakDays:        streakDays(days),
	}
	if agg.TotalReviews > 0 {
		stats.SuccessRate = float64(agg.SuccessfulReviews) / float64(agg.TotalReviews)
	}
	return stats, nil
}

// Forecast returns one bucket per calendar day for the next days days,
// starting today, zero-filled. A bucket counts the non-mastered cards
// whose next review falls on that day; cards already overdue show up in
// DueCards, not in future buckets.
func (s *Service) Forecast(ctx context.Context, childID string, days int) ([]ForecastBucket, error) {
	if childID == "" {
		return nil, validationErr("empty child id")
	}
	if days <= 0 {
		return nil, validationErr("days must be positive, got %d", days)
	}

	from := startOfDay(s.clock.Now())
	to := from.AddDate(0, 0, days)

	counts, err := s.store.ForecastCounts(ctx, childID, from, to)
	if err != nil {
		return nil, fmt.Errorf("forecast counts: %w", err)
	}

	buckets := make([]ForecastBucket, days)
	for i := range buckets {
		day := from.AddDate(0, 0, i)
		buckets[i] = ForecastBucket{
			Date:  day,
			Count: counts[day.Format(time.DateOnly)],
		}
	}
	return buckets, nil
}

// History returns the child's full review history, oldest first.
func (s *Service) History(ctx context.Context, childID string) ([]ReviewLog, error) {
	if childID == "" {
		return nil, validationErr("empty child id")
	}
	return s.store.ReviewLogs(ctx, childID)
}

// streakDays measures the trailing run of consecutive review days: the
// number of consecutive calendar days, counted back from the most recent
// review day, that each contain at least one review. days must be
// distinct calendar days, most recent first, as ReviewDays returns them.
func streakDays(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}
	streak := 1
	prev := startOfDay(days[0])
	for _, d := range days[1:] {
		d = startOfDay(d)
		if prev.Sub(d) != 24*time.Hour {
			break
		}
		streak++
		prev = d
	}
	return streak
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
