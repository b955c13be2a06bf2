package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/moussahe/schoolaris-revision/internal/revision"
)

// Timestamps are stored as RFC3339 UTC strings: they compare correctly
// both lexically and through SQLite's date functions, independent of
// driver time handling.

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

type weakAreaRow struct {
	ID           string         `db:"id"`
	ChildID      string         `db:"child_id"`
	Topic        string         `db:"topic"`
	Subject      string         `db:"subject"`
	GradeLevel   string         `db:"grade_level"`
	Category     string         `db:"category"`
	ErrorCount   int            `db:"error_count"`
	AttemptCount int            `db:"attempt_count"`
	LastErrorAt  string         `db:"last_error_at"`
	IsResolved   bool           `db:"is_resolved"`
	ResolvedAt   sql.NullString `db:"resolved_at"`
}

func (r weakAreaRow) toDomain() (revision.WeakArea, error) {
	lastErr, err := parseTime(r.LastErrorAt)
	if err != nil {
		return revision.WeakArea{}, err
	}
	wa := revision.WeakArea{
		ID:           r.ID,
		ChildID:      r.ChildID,
		Topic:        r.Topic,
		Subject:      revision.Subject(r.Subject),
		GradeLevel:   revision.GradeLevel(r.GradeLevel),
		Category:     r.Category,
		ErrorCount:   r.ErrorCount,
		AttemptCount: r.AttemptCount,
		LastErrorAt:  lastErr,
		IsResolved:   r.IsResolved,
	}
	if r.ResolvedAt.Valid {
		t, err := parseTime(r.ResolvedAt.String)
		if err != nil {
			return revision.WeakArea{}, err
		}
		wa.ResolvedAt = &t
	}
	return wa, nil
}

type cardRow struct {
	ID                string         `db:"id"`
	ChildID           string         `db:"child_id"`
	WeakAreaID        string         `db:"weak_area_id"`
	Repetitions       int            `db:"repetitions"`
	EaseFactor        float64        `db:"ease_factor"`
	IntervalDays      int            `db:"interval_days"`
	NextReviewAt      string         `db:"next_review_at"`
	TotalReviews      int            `db:"total_reviews"`
	SuccessfulReviews int            `db:"successful_reviews"`
	IsMastered        bool           `db:"is_mastered"`
	CachedQuestion    sql.NullString `db:"cached_question"`
	CachedAnswer      sql.NullString `db:"cached_answer"`
	CachedAt          sql.NullString `db:"cached_at"`
	Version           int            `db:"version"`
	CreatedAt         string         `db:"created_at"`
	UpdatedAt         string         `db:"updated_at"`
}

func (r cardRow) toDomain() (revision.Card, error) {
	nextReview, err := parseTime(r.NextReviewAt)
	if err != nil {
		return revision.Card{}, err
	}
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return revision.Card{}, err
	}
	updatedAt, err := parseTime(r.UpdatedAt)
	if err != nil {
		return revision.Card{}, err
	}

	card := revision.Card{
		ID:                r.ID,
		ChildID:           r.ChildID,
		WeakAreaID:        r.WeakAreaID,
		Repetitions:       r.Repetitions,
		EaseFactor:        r.EaseFactor,
		IntervalDays:      r.IntervalDays,
		NextReviewAt:      nextReview,
		TotalReviews:      r.TotalReviews,
		SuccessfulReviews: r.SuccessfulReviews,
		IsMastered:        r.IsMastered,
		Version:           r.Version,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}

	if r.CachedQuestion.Valid && r.CachedAnswer.Valid {
		card.CachedQuestion = &revision.CachedQuestion{
			Question:       r.CachedQuestion.String,
			ExpectedAnswer: r.CachedAnswer.String,
		}
	}
	if r.CachedAt.Valid {
		t, err := parseTime(r.CachedAt.String)
		if err != nil {
			return revision.Card{}, err
		}
		card.CachedAt = &t
	}

	return card, nil
}

func cardToRow(c revision.Card) cardRow {
	r := cardRow{
		ID:                c.ID,
		ChildID:           c.ChildID,
		WeakAreaID:        c.WeakAreaID,
		Repetitions:       c.Repetitions,
		EaseFactor:        c.EaseFactor,
		IntervalDays:      c.IntervalDays,
		NextReviewAt:      fmtTime(c.NextReviewAt),
		TotalReviews:      c.TotalReviews,
		SuccessfulReviews: c.SuccessfulReviews,
		IsMastered:        c.IsMastered,
		Version:           c.Version,
		CreatedAt:         fmtTime(c.CreatedAt),
		UpdatedAt:         fmtTime(c.UpdatedAt),
	}
	if c.CachedQuestion != nil {
		r.CachedQuestion = sql.NullString{String: c.CachedQuestion.Question, Valid: true}
		r.CachedAnswer = sql.NullString{String: c.CachedQuestion.ExpectedAnswer, Valid: true}
	}
	if c.CachedAt != nil {
		r.CachedAt = sql.NullString{String: fmtTime(*c.CachedAt), Valid: true}
	}
	return r
}

type reviewLogRow struct {
	ID               string `db:"id"`
	CardID           string `db:"card_id"`
	ChildID          string `db:"child_id"`
	Question         string `db:"question"`
	ExpectedAnswer   string `db:"expected_answer"`
	ChildAnswer      string `db:"child_answer"`
	Quality          int    `db:"quality"`
	Feedback         string `db:"feedback"`
	TimeSpentSeconds int    `db:"time_spent_seconds"`
	ReviewedAt       string `db:"reviewed_at"`
}

func (r reviewLogRow) toDomain() (revision.ReviewLog, error) {
	reviewedAt, err := parseTime(r.ReviewedAt)
	if err != nil {
		return revision.ReviewLog{}, err
	}
	return revision.ReviewLog{
		ID:               r.ID,
		CardID:           r.CardID,
		ChildID:          r.ChildID,
		Question:         r.Question,
		ExpectedAnswer:   r.ExpectedAnswer,
		ChildAnswer:      r.ChildAnswer,
		Quality:          r.Quality,
		Feedback:         r.Feedback,
		TimeSpentSeconds: r.TimeSpentSeconds,
		ReviewedAt:       reviewedAt,
	}, nil
}
