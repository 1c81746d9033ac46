package spaced_repetition

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidQuality is returned for ratings outside 0-5 and the full-mastery
// sentinel. Check with errors.Is.
var ErrInvalidQuality = errors.New("spaced_repetition: invalid quality rating")

// QualityResponse is the learner's self-assessment of recall quality.
type QualityResponse int

const (
	// Complete blackout, unable to recall
	QualityBlackout QualityResponse = 0
	// Forgot completely; remembered only upon seeing the answer
	QualityForgot QualityResponse = 1
	// Incorrect response but the answer felt familiar
	QualityFamiliar QualityResponse = 2
	// Fuzzy, uncertain recall requiring effort
	QualityFuzzy QualityResponse = 3
	// Correct response after some hesitation
	QualityHesitant QualityResponse = 4
	// Mastered easily, no hesitation
	QualityPerfect QualityResponse = 5

	// QualityFullMastery is the out-of-band "I have fully mastered this"
	// declaration. It bypasses the SM-2 formula entirely: the easiness factor
	// resets and the question is requeued a year out rather than removed.
	QualityFullMastery QualityResponse = 100
)

// IsValid reports whether q is an accepted rating: the SM-2 0-5 scale or the
// full-mastery sentinel.
func (q QualityResponse) IsValid() bool {
	return (q >= QualityBlackout && q <= QualityPerfect) || q == QualityFullMastery
}

// Schedule is the scheduler's output for one rated question.
type Schedule struct {
	IntervalDays   int
	EasinessFactor float64
	NextReviewDate time.Time
}

// SM2 implements the SuperMemo-2 variant used for question scheduling.
type SM2 struct {
	// Ratings at or above this value count as successful recall
	PassThreshold QualityResponse
	// Lower bound for the easiness factor
	MinEasiness float64
	// Interval after the first successful review, in days
	FirstInterval int
	// Interval after the second successful review, in days (fixed SM-2 step)
	SecondInterval int
	// Requeue horizon for the full-mastery sentinel, in days
	FullMasteryInterval int
}

// NewSM2 creates an SM2 instance with the standard parameters.
func NewSM2() *SM2 {
	return &SM2{
		PassThreshold:       QualityFuzzy,
		MinEasiness:         1.3,
		FirstInterval:       1,
		SecondInterval:      6,
		FullMasteryInterval: 365,
	}
}

// ComputeSchedule computes the next review schedule from a quality rating and
// the question's current scheduling state. priorIntervalDays is 0 for a
// question never reviewed, otherwise the whole-day gap between its last and
// next review dates. The function is pure: now is the caller's clock reading.
func (sm *SM2) ComputeSchedule(quality QualityResponse, priorIntervalDays int, priorEF float64, now time.Time) (Schedule, error) {
	if !quality.IsValid() {
		return Schedule{}, fmt.Errorf("%w: %d", ErrInvalidQuality, int(quality))
	}

	if quality == QualityFullMastery {
		return Schedule{
			IntervalDays:   sm.FullMasteryInterval,
			EasinessFactor: 2.5,
			NextReviewDate: now.Add(time.Duration(sm.FullMasteryInterval) * 24 * time.Hour),
		}, nil
	}

	// EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02))
	q := float64(quality)
	ef := priorEF + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ef < sm.MinEasiness {
		ef = sm.MinEasiness
	}

	var interval int
	switch {
	case quality < sm.PassThreshold:
		// Forgetting resets to next-day review, whatever the prior interval.
		interval = sm.FirstInterval
	case priorIntervalDays == 0:
		interval = sm.FirstInterval
	case priorIntervalDays == 1:
		interval = sm.SecondInterval
	default:
		interval = int(math.Round(float64(priorIntervalDays) * ef))
	}

	return Schedule{
		IntervalDays:   interval,
		EasinessFactor: ef,
		NextReviewDate: now.Add(time.Duration(interval) * 24 * time.Hour),
	}, nil
}
