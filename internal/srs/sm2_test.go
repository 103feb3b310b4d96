package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestApplyFirstPerfectReview(t *testing.T) {
	p := DefaultParams()
	s := NewState(p, testNow)

	next, err := Apply(p, s, 5, testNow)
	require.NoError(t, err)

	assert.Equal(t, 1, next.Repetitions)
	assert.Equal(t, 1, next.IntervalDays)
	assert.InDelta(t, 2.6, next.EaseFactor, 1e-9)
	assert.Equal(t, 1, next.TotalReviews)
	assert.Equal(t, 1, next.TimesPerfectRecall)
	assert.Equal(t, testNow.AddDate(0, 0, 1), next.NextReviewAt)
	require.NotNil(t, next.LastReviewedAt)
	assert.Equal(t, testNow, *next.LastReviewedAt)
}

func TestApplySecondSuccessUsesSixDayInterval(t *testing.T) {
	p := DefaultParams()
	s := State{EaseFactor: 2.6, IntervalDays: 1, Repetitions: 1, TotalReviews: 1}

	next, err := Apply(p, s, 5, testNow)
	require.NoError(t, err)

	assert.Equal(t, 2, next.Repetitions)
	assert.Equal(t, 6, next.IntervalDays)
	assert.InDelta(t, 2.7, next.EaseFactor, 1e-9)
}

func TestApplyLaterSuccessGrowsByEaseFactor(t *testing.T) {
	p := DefaultParams()
	s := State{EaseFactor: 2.5, IntervalDays: 6, Repetitions: 2, TotalReviews: 2}

	next, err := Apply(p, s, 4, testNow)
	require.NoError(t, err)

	// EF' = 2.5，间隔 round(6 × 2.5) = 15
	assert.Equal(t, 3, next.Repetitions)
	assert.Equal(t, 15, next.IntervalDays)
	assert.InDelta(t, 2.5, next.EaseFactor, 1e-9)
}

func TestApplyFailureResetsProgress(t *testing.T) {
	p := DefaultParams()
	s := State{EaseFactor: 2.5, IntervalDays: 15, Repetitions: 4, TotalReviews: 8}

	next, err := Apply(p, s, 1, testNow)
	require.NoError(t, err)

	assert.Equal(t, 0, next.Repetitions)
	assert.Equal(t, 1, next.IntervalDays)
	assert.Less(t, next.EaseFactor, s.EaseFactor)
	assert.GreaterOrEqual(t, next.EaseFactor, 1.3)
	assert.Equal(t, 9, next.TotalReviews)
	assert.Equal(t, 0, next.TimesPerfectRecall)
}

func TestApplyEaseFactorClampedAtFloor(t *testing.T) {
	p := DefaultParams()
	s := State{EaseFactor: 1.3, IntervalDays: 1, Repetitions: 0}

	// q=0 的修正量是 -0.8，不能低于下界
	next, err := Apply(p, s, 0, testNow)
	require.NoError(t, err)
	assert.InDelta(t, 1.3, next.EaseFactor, 1e-9)
}

func TestApplyEaseFactorClampedAtCeiling(t *testing.T) {
	p := DefaultParams()
	s := State{EaseFactor: 2.95, IntervalDays: 6, Repetitions: 2}

	next, err := Apply(p, s, 5, testNow)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, next.EaseFactor, 1e-9)
}

func TestApplyInvariantsHoldAcrossQualities(t *testing.T) {
	p := DefaultParams()
	s := NewState(p, testNow)

	now := testNow
	for _, q := range []int{5, 3, 0, 4, 1, 5, 5, 2, 3, 5} {
		var err error
		s, err = Apply(p, s, q, now)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s.EaseFactor, 1.3)
		assert.LessOrEqual(t, s.EaseFactor, 3.0)
		assert.GreaterOrEqual(t, s.IntervalDays, 0)
		assert.GreaterOrEqual(t, s.Repetitions, 0)
		now = s.NextReviewAt
	}
	assert.Equal(t, 10, s.TotalReviews)
}

func TestApplyRejectsOutOfRangeQuality(t *testing.T) {
	p := DefaultParams()
	s := NewState(p, testNow)

	for _, q := range []int{-1, 6, 100} {
		_, err := Apply(p, s, q, testNow)
		assert.Error(t, err, "quality %d", q)
	}
}
