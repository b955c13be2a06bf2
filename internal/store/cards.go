package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/moussahe/schoolaris-revision/internal/revision"
)

// Compile-time check: *SQLiteStore satisfies the engine's Store interface.
var _ revision.Store = (*SQLiteStore)(nil)

const cardColumns = `id, child_id, weak_area_id, repetitions, ease_factor, interval_days,
	next_review_at, total_reviews, successful_reviews, is_mastered,
	cached_question, cached_answer, cached_at, version, created_at, updated_at`

// GetCard returns a card by ID.
func (s *SQLiteStore) GetCard(ctx context.Context, cardID string) (*revision.Card, error) {
	var row cardRow
	err := s.db.GetContext(ctx, &row,
		`SELECT `+cardColumns+` FROM cards WHERE id = ?`, cardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: card %s", revision.ErrNotFound, cardID)
	}
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}
	card, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// CreateCards inserts new card rows in one transaction.
func (s *SQLiteStore) CreateCards(ctx context.Context, cards []revision.Card) error {
	if len(cards) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	const q = `INSERT INTO cards (` + cardColumns + `) VALUES
		(:id, :child_id, :weak_area_id, :repetitions, :ease_factor, :interval_days,
		 :next_review_at, :total_reviews, :successful_reviews, :is_mastered,
		 :cached_question, :cached_answer, :cached_at, :version, :created_at, :updated_at)`

	for _, c := range cards {
		if _, err := tx.NamedExecContext(ctx, q, cardToRow(c)); err != nil {
			return fmt.Errorf("insert card %s: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

// SaveCachedQuestion pins a generated question to the card, guarded by
// the version the caller loaded.
func (s *SQLiteStore) SaveCachedQuestion(ctx context.Context, cardID string, version int, q revision.CachedQuestion, cachedAt time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE cards
		 SET cached_question = ?, cached_answer = ?, cached_at = ?,
		     version = version + 1, updated_at = ?
		 WHERE id = ? AND version = ?`,
		q.Question, q.ExpectedAnswer, fmtTime(cachedAt), fmtTime(cachedAt), cardID, version)
	if err != nil {
		return fmt.Errorf("cache question: %w", err)
	}
	return s.checkCardWritten(ctx, res, cardID)
}

// DueCards returns non-mastered cards of unresolved weak areas due at
// now, most overdue first, then hardest first.
func (s *SQLiteStore) DueCards(ctx context.Context, childID string, now time.Time, limit int) ([]revision.CardWithArea, error) {
	type dueRow struct {
		cardRow
		WaTopic      string `db:"wa_topic"`
		WaSubject    string `db:"wa_subject"`
		WaGradeLevel string `db:"wa_grade_level"`
		WaCategory   string `db:"wa_category"`
	}

	var rows []dueRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT c.id, c.child_id, c.weak_area_id, c.repetitions, c.ease_factor, c.interval_days,
		        c.next_review_at, c.total_reviews, c.successful_reviews, c.is_mastered,
		        c.cached_question, c.cached_answer, c.cached_at, c.version, c.created_at, c.updated_at,
		        w.topic AS wa_topic, w.subject AS wa_subject,
		        w.grade_level AS wa_grade_level, w.category AS wa_category
		 FROM cards c
		 JOIN weak_areas w ON w.id = c.weak_area_id
		 WHERE c.child_id = ? AND c.is_mastered = 0 AND w.is_resolved = 0
		   AND c.next_review_at <= ?
		 ORDER BY c.next_review_at ASC, c.ease_factor ASC
		 LIMIT ?`,
		childID, fmtTime(now), limit)
	if err != nil {
		return nil, fmt.Errorf("due cards: %w", err)
	}

	out := make([]revision.CardWithArea, 0, len(rows))
	for _, r := range rows {
		card, err := r.cardRow.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, revision.CardWithArea{
			Card: card,
			WeakArea: revision.WeakAreaSummary{
				ID:         card.WeakAreaID,
				Topic:      r.WaTopic,
				Subject:    revision.Subject(r.WaSubject),
				GradeLevel: revision.GradeLevel(r.WaGradeLevel),
				Category:   r.WaCategory,
			},
		})
	}
	return out, nil
}

// DueCount counts the due set, unbounded.
func (s *SQLiteStore) DueCount(ctx context.Context, childID string, now time.Time) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(*)
		 FROM cards c
		 JOIN weak_areas w ON w.id = c.weak_area_id
		 WHERE c.child_id = ? AND c.is_mastered = 0 AND w.is_resolved = 0
		   AND c.next_review_at <= ?`,
		childID, fmtTime(now))
	if err != nil {
		return 0, fmt.Errorf("due count: %w", err)
	}
	return count, nil
}

// CardAggregates aggregates over all of the child's cards in one pass.
func (s *SQLiteStore) CardAggregates(ctx context.Context, childID string) (revision.CardAggregates, error) {
	var row struct {
		TotalCards        int     `db:"total_cards"`
		MasteredCards     int     `db:"mastered_cards"`
		AverageEaseFactor float64 `db:"average_ease_factor"`
		TotalReviews      int     `db:"total_reviews"`
		SuccessfulReviews int     `db:"successful_reviews"`
	}
	err := s.db.GetContext(ctx, &row,
		`SELECT COUNT(*) AS total_cards,
		        COALESCE(SUM(is_mastered), 0) AS mastered_cards,
		        COALESCE(AVG(ease_factor), 0) AS average_ease_factor,
		        COALESCE(SUM(total_reviews), 0) AS total_reviews,
		        COALESCE(SUM(successful_reviews), 0) AS successful_reviews
		 FROM cards WHERE child_id = ?`,
		childID)
	if err != nil {
		return revision.CardAggregates{}, fmt.Errorf("card aggregates: %w", err)
	}
	return revision.CardAggregates{
		TotalCards:        row.TotalCards,
		MasteredCards:     row.MasteredCards,
		AverageEaseFactor: row.AverageEaseFactor,
		TotalReviews:      row.TotalReviews,
		SuccessfulReviews: row.SuccessfulReviews,
	}, nil
}

// ForecastCounts counts non-mastered cards per next-review calendar day
// in [from, to).
func (s *SQLiteStore) ForecastCounts(ctx context.Context, childID string, from, to time.Time) (map[string]int, error) {
	type bucketRow struct {
		Day   string `db:"day"`
		Count int    `db:"count"`
	}

	var rows []bucketRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT date(c.next_review_at) AS day, COUNT(*) AS count
		 FROM cards c
		 JOIN weak_areas w ON w.id = c.weak_area_id
		 WHERE c.child_id = ? AND c.is_mastered = 0 AND w.is_resolved = 0
		   AND date(c.next_review_at) >= ? AND date(c.next_review_at) < ?
		 GROUP BY date(c.next_review_at)`,
		childID, from.UTC().Format(time.DateOnly), to.UTC().Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("forecast counts: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Day] = r.Count
	}
	return counts, nil
}

// ApplyReview persists one review atomically: the version-guarded card
// update, the optional weak-area resolution and the log append commit
// together or not at all.
func (s *SQLiteStore) ApplyReview(ctx context.Context, m revision.ReviewMutation) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	row := cardToRow(m.Card)
	res, err := tx.ExecContext(ctx,
		`UPDATE cards
		 SET repetitions = ?, ease_factor = ?, interval_days = ?, next_review_at = ?,
		     total_reviews = ?, successful_reviews = ?, is_mastered = ?,
		     version = version + 1, updated_at = ?
		 WHERE id = ? AND version = ?`,
		row.Repetitions, row.EaseFactor, row.IntervalDays, row.NextReviewAt,
		row.TotalReviews, row.SuccessfulReviews, row.IsMastered,
		row.UpdatedAt, row.ID, m.Card.Version)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		// Distinguish a stale version from a missing card.
		var exists int
		if err := tx.GetContext(ctx, &exists,
			`SELECT COUNT(*) FROM cards WHERE id = ?`, row.ID); err != nil {
			return fmt.Errorf("check card: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("%w: card %s", revision.ErrNotFound, row.ID)
		}
		return fmt.Errorf("%w: card %s version %d", revision.ErrConflict, row.ID, m.Card.Version)
	}

	if m.ResolveWeakArea {
		if _, err := tx.ExecContext(ctx,
			`UPDATE weak_areas SET is_resolved = 1, resolved_at = ? WHERE id = ?`,
			fmtTime(m.ResolvedAt), m.Card.WeakAreaID); err != nil {
			return fmt.Errorf("resolve weak area: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO review_logs (id, card_id, child_id, question, expected_answer,
			child_answer, quality, feedback, time_spent_seconds, reviewed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Log.ID, m.Log.CardID, m.Log.ChildID, m.Log.Question, m.Log.ExpectedAnswer,
		m.Log.ChildAnswer, m.Log.Quality, m.Log.Feedback, m.Log.TimeSpentSeconds,
		fmtTime(m.Log.ReviewedAt)); err != nil {
		return fmt.Errorf("append review log: %w", err)
	}

	return tx.Commit()
}

// checkCardWritten maps a zero-row UPDATE to ErrNotFound or ErrConflict.
func (s *SQLiteStore) checkCardWritten(ctx context.Context, res sql.Result, cardID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	var exists int
	if err := s.db.GetContext(ctx, &exists,
		`SELECT COUNT(*) FROM cards WHERE id = ?`, cardID); err != nil {
		return fmt.Errorf("check card: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: card %s", revision.ErrNotFound, cardID)
	}
	return fmt.Errorf("%w: card %s", revision.ErrConflict, cardID)
}
