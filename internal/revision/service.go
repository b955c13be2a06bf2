// Package revision is the spaced-repetition core of Schoolaris: it turns
// detected weak areas into schedulable cards, runs the SM-2 step on every
// submitted review, detects mastery and answers the due/stats/forecast
// queries the revision screens are built on.
package revision

import (
	"go.uber.org/zap"

	"github.com/moussahe/schoolaris-revision/internal/tutor"
)

// Service orchestrates the revision engine. All inputs are assumed
// pre-authorized down to the child: the parent/child ownership boundary
// is enforced by the API layer above.
type Service struct {
	store  Store
	tutor  tutor.Tutor
	clock  Clock
	config Config
	log    *zap.Logger
}

// New creates a Service. clock may be nil (system clock) and logger may
// be nil (no-op); store must not be nil. tutor may be nil for read-only
// deployments, in which case question and review operations report
// ErrOracleUnavailable.
func New(store Store, t tutor.Tutor, clock Clock, cfg Config, logger *zap.Logger) *Service {
	if clock == nil {
		clock = SystemClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		tutor:  t,
		clock:  clock,
		config: cfg,
		log:    logger,
	}
}
