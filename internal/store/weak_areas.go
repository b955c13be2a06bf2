package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/moussahe/schoolaris-revision/internal/revision"
)

const weakAreaColumns = `id, child_id, topic, subject, grade_level, category,
	error_count, attempt_count, last_error_at, is_resolved, resolved_at`

// GetWeakArea returns a weak area by ID.
func (s *SQLiteStore) GetWeakArea(ctx context.Context, weakAreaID string) (*revision.WeakArea, error) {
	var row weakAreaRow
	err := s.db.GetContext(ctx, &row,
		`SELECT `+weakAreaColumns+` FROM weak_areas WHERE id = ?`, weakAreaID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: weak area %s", revision.ErrNotFound, weakAreaID)
	}
	if err != nil {
		return nil, fmt.Errorf("get weak area: %w", err)
	}
	wa, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &wa, nil
}

// WeakAreasWithoutCard returns the child's unresolved weak areas not yet
// tracked by an active card. Mastered cards don't count as tracking: a
// weak area re-detected after mastery gets a fresh card.
func (s *SQLiteStore) WeakAreasWithoutCard(ctx context.Context, childID string) ([]revision.WeakArea, error) {
	var rows []weakAreaRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+weakAreaColumns+`
		 FROM weak_areas w
		 WHERE w.child_id = ? AND w.is_resolved = 0
		   AND NOT EXISTS (
			SELECT 1 FROM cards c
			WHERE c.weak_area_id = w.id AND c.is_mastered = 0
		   )
		 ORDER BY w.last_error_at ASC`,
		childID)
	if err != nil {
		return nil, fmt.Errorf("weak areas without card: %w", err)
	}

	out := make([]revision.WeakArea, 0, len(rows))
	for _, r := range rows {
		wa, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, wa)
	}
	return out, nil
}

// CreateWeakArea inserts a weak-area row. The engine never calls this;
// it exists for the upstream detector and for seeding in tests and the
// CLI.
func (s *SQLiteStore) CreateWeakArea(ctx context.Context, wa revision.WeakArea) error {
	row := weakAreaRow{
		ID:           wa.ID,
		ChildID:      wa.ChildID,
		Topic:        wa.Topic,
		Subject:      string(wa.Subject),
		GradeLevel:   string(wa.GradeLevel),
		Category:     wa.Category,
		ErrorCount:   wa.ErrorCount,
		AttemptCount: wa.AttemptCount,
		LastErrorAt:  fmtTime(wa.LastErrorAt),
		IsResolved:   wa.IsResolved,
	}
	if wa.ResolvedAt != nil {
		row.ResolvedAt = sql.NullString{String: fmtTime(*wa.ResolvedAt), Valid: true}
	}

	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO weak_areas (`+weakAreaColumns+`) VALUES
		 (:id, :child_id, :topic, :subject, :grade_level, :category,
		  :error_count, :attempt_count, :last_error_at, :is_resolved, :resolved_at)`,
		row)
	if err != nil {
		return fmt.Errorf("insert weak area: %w", err)
	}
	return nil
}
