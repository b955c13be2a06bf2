package revision

import "time"

// Subject identifies the school subject a weak area belongs to.
type Subject string

const (
	SubjectMath      Subject = "math"
	SubjectFrench    Subject = "french"
	SubjectScience   Subject = "science"
	SubjectHistory   Subject = "history"
	SubjectGeography Subject = "geography"
	SubjectEnglish   Subject = "english"
)

// GradeLevel identifies a French primary school grade.
type GradeLevel string

const (
	GradeCP  GradeLevel = "cp"
	GradeCE1 GradeLevel = "ce1"
	GradeCE2 GradeLevel = "ce2"
	GradeCM1 GradeLevel = "cm1"
	GradeCM2 GradeLevel = "cm2"
)

// WeakArea is a detected, topic-scoped knowledge gap for one child.
// Weak areas are produced by the upstream quiz-performance analysis;
// this engine only reads them and flips IsResolved on mastery.
type WeakArea struct {
	ID           string
	ChildID      string
	Topic        string
	Subject      Subject
	GradeLevel   GradeLevel
	Category     string
	ErrorCount   int
	AttemptCount int
	LastErrorAt  time.Time
	IsResolved   bool
	ResolvedAt   *time.Time
}

// CachedQuestion is a generated question/answer pair stored on a card.
type CachedQuestion struct {
	Question       string `json:"question"`
	ExpectedAnswer string `json:"expected_answer"`
}

// Card is the schedulable unit wrapping one weak area for one child.
// Scheduling state is mutated only by SubmitReview; a mastered card is
// frozen and kept for history.
type Card struct {
	ID                string
	ChildID           string
	WeakAreaID        string
	Repetitions       int
	EaseFactor        float64
	IntervalDays      int
	NextReviewAt      time.Time
	TotalReviews      int
	SuccessfulReviews int
	IsMastered        bool
	CachedQuestion    *CachedQuestion
	CachedAt          *time.Time
	// Version is the optimistic-lock counter. Every persisted mutation
	// must match the version it loaded and bumps it by one.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewLog is one immutable record of a submitted review.
type ReviewLog struct {
	ID               string
	CardID           string
	ChildID          string
	Question         string
	ExpectedAnswer   string
	ChildAnswer      string
	Quality          int
	Feedback         string
	TimeSpentSeconds int
	ReviewedAt       time.Time
}

// WeakAreaSummary is the slice of weak-area data embedded in card listings.
type WeakAreaSummary struct {
	ID         string
	Topic      string
	Subject    Subject
	GradeLevel GradeLevel
	Category   string
}

// CardWithArea pairs a card with its weak-area summary for due listings.
type CardWithArea struct {
	Card     Card
	WeakArea WeakAreaSummary
}

// CardStats is the per-card progress slice returned with a question.
type CardStats struct {
	Repetitions       int
	IntervalDays      int
	NextReviewAt      time.Time
	TotalReviews      int
	SuccessfulReviews int
}

// QuestionPayload is the full response to a GetQuestion call. The expected
// answer is exposed to the caller ahead of submission; the display layer
// relies on having it for the self-check flow.
type QuestionPayload struct {
	CardID         string
	Question       string
	ExpectedAnswer string
	WeakArea       WeakAreaSummary
	Stats          CardStats
}

// SubmitReviewInput carries one review submission.
type SubmitReviewInput struct {
	CardID           string
	ChildID          string
	Question         string
	ExpectedAnswer   string
	ChildAnswer      string
	TimeSpentSeconds int
}

// ReviewResult is the outcome of one submitted review.
type ReviewResult struct {
	Quality       int
	IsCorrect     bool
	Feedback      string
	NewInterval   int
	NextReviewAt  time.Time
	IsMastered    bool
	Encouragement string
}

// Stats aggregates a child's cards and review history.
type Stats struct {
	TotalCards        int
	MasteredCards     int
	DueToday          int
	AverageEaseFactor float64
	TotalReviews      int
	SuccessRate       float64
	StreakDays        int
}

// ForecastBucket is one calendar day of the upcoming review forecast.
type ForecastBucket struct {
	Date  time.Time
	Count int
}

// Summary returns the embeddable summary of a weak area.
func (w *WeakArea) Summary() WeakAreaSummary {
	return WeakAreaSummary{
		ID:         w.ID,
		Topic:      w.Topic,
		Subject:    w.Subject,
		GradeLevel: w.GradeLevel,
		Category:   w.Category,
	}
}

// Stats returns the per-card progress slice.
func (c *Card) Stats() CardStats {
	return CardStats{
		Repetitions:       c.Repetitions,
		IntervalDays:      c.IntervalDays,
		NextReviewAt:      c.NextReviewAt,
		TotalReviews:      c.TotalReviews,
		SuccessfulReviews: c.SuccessfulReviews,
	}
}

// IsDue reports whether the card is due at the given time. Mastered cards
// are never due.
func (c *Card) IsDue(now time.Time) bool {
	return !c.IsMastered && !c.NextReviewAt.After(now)
}
