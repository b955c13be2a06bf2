package store

import (
	"context"
	"fmt"
	"time"

	"github.com/moussahe/schoolaris-revision/internal/revision"
)

// ReviewDays returns the distinct UTC calendar days with at least one
// review for the child, most recent first.
func (s *SQLiteStore) ReviewDays(ctx context.Context, childID string) ([]time.Time, error) {
	var days []string
	err := s.db.SelectContext(ctx, &days,
		`SELECT DISTINCT date(reviewed_at) FROM review_logs
		 WHERE child_id = ?
		 ORDER BY 1 DESC`,
		childID)
	if err != nil {
		return nil, fmt.Errorf("review days: %w", err)
	}

	out := make([]time.Time, 0, len(days))
	for _, d := range days {
		t, err := time.ParseInLocation(time.DateOnly, d, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse review day %q: %w", d, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// ReviewLogs returns the child's full review history, oldest first.
func (s *SQLiteStore) ReviewLogs(ctx context.Context, childID string) ([]revision.ReviewLog, error) {
	var rows []reviewLogRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, card_id, child_id, question, expected_answer, child_answer,
		        quality, feedback, time_spent_seconds, reviewed_at
		 FROM review_logs
		 WHERE child_id = ?
		 ORDER BY reviewed_at ASC`,
		childID)
	if err != nil {
		return nil, fmt.Errorf("review logs: %w", err)
	}

	out := make([]revision.ReviewLog, 0, len(rows))
	for _, r := range rows {
		log, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, log)
	}
	return out, nil
}
