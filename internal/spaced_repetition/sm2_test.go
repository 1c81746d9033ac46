package spaced_repetition

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestComputeScheduleEasinessFloor(t *testing.T) {
	sm := NewSM2()
	for quality := QualityBlackout; quality <= QualityPerfect; quality++ {
		for _, priorEF := range []float64{1.3, 1.5, 2.5} {
			sched, err := sm.ComputeSchedule(quality, 10, priorEF, testNow)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, sched.EasinessFactor, 1.3,
				"quality %d, priorEF %v", quality, priorEF)
		}
	}
}

func TestComputeScheduleForgettingResets(t *testing.T) {
	sm := NewSM2()
	for _, quality := range []QualityResponse{QualityBlackout, QualityForgot, QualityFamiliar} {
		for _, prior := range []int{0, 1, 6, 100} {
			sched, err := sm.ComputeSchedule(quality, prior, 2.5, testNow)
			require.NoError(t, err)
			assert.Equal(t, 1, sched.IntervalDays, "quality %d, prior %d", quality, prior)
		}
	}
}

func TestComputeScheduleLadder(t *testing.T) {
	sm := NewSM2()

	// First successful review
	sched, err := sm.ComputeSchedule(QualityPerfect, 0, 2.5, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, sched.IntervalDays)
	assert.InDelta(t, 2.6, sched.EasinessFactor, 1e-9)

	// Second successful review: fixed step, not EF-scaled
	sched, err = sm.ComputeSchedule(QualityPerfect, 1, 2.5, testNow)
	require.NoError(t, err)
	assert.Equal(t, 6, sched.IntervalDays)

	// Later reviews scale by the updated easiness factor
	sched, err = sm.ComputeSchedule(QualityPerfect, 6, 2.5, testNow)
	require.NoError(t, err)
	assert.Equal(t, 16, sched.IntervalDays) // round(6 * 2.6)
}

func TestComputeScheduleEasinessUpdate(t *testing.T) {
	sm := NewSM2()

	sched, err := sm.ComputeSchedule(QualityFuzzy, 6, 2.5, testNow)
	require.NoError(t, err)
	assert.InDelta(t, 2.36, sched.EasinessFactor, 1e-9)

	sched, err = sm.ComputeSchedule(QualityForgot, 6, 2.5, testNow)
	require.NoError(t, err)
	assert.InDelta(t, 1.96, sched.EasinessFactor, 1e-9)
}

func TestComputeScheduleNextReviewDate(t *testing.T) {
	sm := NewSM2()
	sched, err := sm.ComputeSchedule(QualityPerfect, 1, 2.5, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(6*24*time.Hour), sched.NextReviewDate)
}

func TestComputeScheduleFullMasterySentinel(t *testing.T) {
	sm := NewSM2()
	sched, err := sm.ComputeSchedule(QualityFullMastery, 42, 1.7, testNow)
	require.NoError(t, err)
	assert.Equal(t, 2.5, sched.EasinessFactor, "sentinel resets the easiness factor")
	assert.Equal(t, 365, sched.IntervalDays)
	assert.Equal(t, testNow.Add(365*24*time.Hour), sched.NextReviewDate)
}

func TestComputeScheduleInvalidQuality(t *testing.T) {
	sm := NewSM2()
	for _, quality := range []QualityResponse{-1, 6, 42, 99, 101} {
		_, err := sm.ComputeSchedule(quality, 0, 2.5, testNow)
		assert.True(t, errors.Is(err, ErrInvalidQuality), "quality %d", quality)
	}
}

func TestQualityResponseIsValid(t *testing.T) {
	for q := QualityBlackout; q <= QualityPerfect; q++ {
		assert.True(t, q.IsValid())
	}
	assert.True(t, QualityFullMastery.IsValid())
	assert.False(t, QualityResponse(-1).IsValid())
	assert.False(t, QualityResponse(6).IsValid())
	assert.False(t, QualityResponse(50).IsValid())
}
