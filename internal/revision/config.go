package revision

import (
	"os"
	"strconv"
	"time"
)

// Config holds the tunable policy knobs of the engine. Mastery thresholds
// are configuration rather than literals: product has not settled them and
// support needs to adjust them without a release.
type Config struct {
	// QuestionCacheTTL is how long a generated question stays pinned to a
	// card. Repeated fetches within the window return the same question.
	QuestionCacheTTL time.Duration

	// MasteryMinRepetitions, MasteryMinIntervalDays and MasteryMinQuality
	// gate mastery: all three must hold on a single review for the card
	// to retire and its weak area to resolve.
	MasteryMinRepetitions  int
	MasteryMinIntervalDays int
	MasteryMinQuality      int
}

// DefaultConfig returns the stock policy.
func DefaultConfig() Config {
	return Config{
		QuestionCacheTTL:       time.Hour,
		MasteryMinRepetitions:  5,
		MasteryMinIntervalDays: 21,
		MasteryMinQuality:      4,
	}
}

// ConfigFromEnv builds a Config from SCHOOLARIS_* environment variables,
// falling back to defaults for unset or unparsable values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("SCHOOLARIS_QUESTION_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.QuestionCacheTTL = d
		}
	}
	if v := os.Getenv("SCHOOLARIS_MASTERY_MIN_REPETITIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MasteryMinRepetitions = n
		}
	}
	if v := os.Getenv("SCHOOLARIS_MASTERY_MIN_INTERVAL_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MasteryMinIntervalDays = n
		}
	}
	if v := os.Getenv("SCHOOLARIS_MASTERY_MIN_QUALITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= PassQuality && n <= MaxQuality {
			cfg.MasteryMinQuality = n
		}
	}

	return cfg
}
