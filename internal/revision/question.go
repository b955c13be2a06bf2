package revision

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/moussahe/schoolaris-revision/internal/tutor"
)

// GetQuestion returns the question to ask for a card. A question generated
// less than QuestionCacheTTL ago is returned unchanged so a child who
// refreshes mid-session sees a stable question; otherwise the tutor
// generates a fresh pair which is cached on the card row. The cache lives
// on the card itself: one entry per card, overwritten in place, no global
// question store to bound or evict.
//
// The expected answer is part of the payload. The revision screen shows it
// after the child commits an answer, and the same pair must round-trip
// through SubmitReview.
func (s *Service) GetQuestion(ctx context.Context, cardID, childID string) (*QuestionPayload, error) {
	card, err := s.loadOwnedCard(ctx, cardID, childID)
	if err != nil {
		return nil, err
	}

	wa, err := s.store.GetWeakArea(ctx, card.WeakAreaID)
	if err != nil {
		return nil, fmt.Errorf("load weak area %s: %w", card.WeakAreaID, err)
	}

	now := s.clock.Now()
	if card.CachedQuestion != nil && card.CachedAt != nil && now.Sub(*card.CachedAt) < s.config.QuestionCacheTTL {
		return payload(card, wa, *card.CachedQuestion), nil
	}

	if s.tutor == nil {
		return nil, ErrOracleUnavailable
	}

	generated, err := s.tutor.GenerateQuestion(ctx, tutor.QuestionInput{
		Topic:      wa.Topic,
		Subject:    string(wa.Subject),
		Category:   wa.Category,
		GradeLevel: string(wa.GradeLevel),
	})
	if err != nil {
		s.log.Warn("question generation failed",
			zap.String("card_id", cardID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}

	q := CachedQuestion{Question: generated.Question, ExpectedAnswer: generated.ExpectedAnswer}

	err = s.store.SaveCachedQuestion(ctx, card.ID, card.Version, q, now)
	if errors.Is(err, ErrConflict) {
		// Another fetch cached a question first. Serve the winner's pair
		// so concurrent fetchers within the window agree on one question.
		fresh, ferr := s.store.GetCard(ctx, card.ID)
		if ferr == nil && fresh.CachedQuestion != nil && fresh.CachedAt != nil &&
			now.Sub(*fresh.CachedAt) < s.config.QuestionCacheTTL {
			return payload(fresh, wa, *fresh.CachedQuestion), nil
		}
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("cache question: %w", err)
	}

	return payload(card, wa, q), nil
}

func payload(card *Card, wa *WeakArea, q CachedQuestion) *QuestionPayload {
	return &QuestionPayload{
		CardID:         card.ID,
		Question:       q.Question,
		ExpectedAnswer: q.ExpectedAnswer,
		WeakArea:       wa.Summary(),
		Stats:          card.Stats(),
	}
}

// loadOwnedCard fetches a card and checks it belongs to the calling child.
func (s *Service) loadOwnedCard(ctx context.Context, cardID, childID string) (*Card, error) {
	if cardID == "" || childID == "" {
		return nil, validationErr("empty card or child id")
	}
	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.ChildID != childID {
		return nil, fmt.Errorf("%w: card %s does not belong to child %s", ErrForbidden, cardID, childID)
	}
	return card, nil
}
