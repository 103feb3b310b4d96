package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoverse_backend/internal/model"
)

var streakNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func TestAdvanceStreakSameDayIsNoop(t *testing.T) {
	state := model.StreakState{CurrentStreak: 4, LongestStreak: 6, LastActivityDate: "2026-03-10", TotalActivityDays: 20}

	next, changed := advanceStreak(state, "2026-03-10", streakNow)
	assert.False(t, changed)
	assert.Equal(t, state, next)
}

func TestAdvanceStreakConsecutiveDayIncrements(t *testing.T) {
	state := model.StreakState{CurrentStreak: 4, LongestStreak: 6, LastActivityDate: "2026-03-09", TotalActivityDays: 20}

	next, changed := advanceStreak(state, "2026-03-10", streakNow)
	require.True(t, changed)
	assert.Equal(t, 5, next.CurrentStreak)
	assert.Equal(t, 6, next.LongestStreak)
	assert.Equal(t, 21, next.TotalActivityDays)
	assert.Equal(t, "2026-03-10", next.LastActivityDate)
}

func TestAdvanceStreakGapResetsWithoutFreeze(t *testing.T) {
	state := model.StreakState{CurrentStreak: 9, LongestStreak: 9, LastActivityDate: "2026-03-08", TotalActivityDays: 30}

	next, changed := advanceStreak(state, "2026-03-10", streakNow)
	require.True(t, changed)
	assert.Equal(t, 1, next.CurrentStreak)
	assert.Equal(t, 9, next.LongestStreak) // 最长纪录单调不减
}

func TestAdvanceStreakFreezeDayBridgesOneDayGap(t *testing.T) {
	state := model.StreakState{
		CurrentStreak: 9, LongestStreak: 9,
		LastActivityDate: "2026-03-08", TotalActivityDays: 30,
		FreezeDaysAvailable: 1,
	}

	next, changed := advanceStreak(state, "2026-03-10", streakNow)
	require.True(t, changed)
	assert.Equal(t, 10, next.CurrentStreak)
	assert.Equal(t, 0, next.FreezeDaysAvailable)
	assert.Equal(t, 1, next.FreezeDaysUsed)
	assert.Equal(t, 10, next.LongestStreak)
}

func TestAdvanceStreakFreezeDoesNotBridgeLongerGap(t *testing.T) {
	state := model.StreakState{
		CurrentStreak: 9, LongestStreak: 9,
		LastActivityDate: "2026-03-06", TotalActivityDays: 30,
		FreezeDaysAvailable: 2,
	}

	next, _ := advanceStreak(state, "2026-03-10", streakNow)
	assert.Equal(t, 1, next.CurrentStreak)
	assert.Equal(t, 2, next.FreezeDaysAvailable) // 冻结日只补一天的缺口
}

func TestAdvanceStreakStampsMilestoneOnce(t *testing.T) {
	state := model.StreakState{CurrentStreak: 9, LongestStreak: 9, LastActivityDate: "2026-03-09", TotalActivityDays: 12}

	next, _ := advanceStreak(state, "2026-03-10", streakNow)
	require.NotNil(t, next.Milestone10At)
	assert.Equal(t, streakNow, *next.Milestone10At)
	assert.Nil(t, next.Milestone30At)

	// 已打点的里程碑不被后续活动覆盖
	later := streakNow.AddDate(0, 0, 1)
	again, _ := advanceStreak(next, "2026-03-11", later)
	assert.Equal(t, streakNow, *again.Milestone10At)
}

func TestAdvanceStreakGrantsFreezeDayEveryThirtyDays(t *testing.T) {
	state := model.StreakState{CurrentStreak: 3, LongestStreak: 5, LastActivityDate: "2026-03-09", TotalActivityDays: 29}

	next, _ := advanceStreak(state, "2026-03-10", streakNow)
	assert.Equal(t, 30, next.TotalActivityDays)
	assert.Equal(t, 1, next.FreezeDaysAvailable)
}

func TestAdvanceStreakFreezeBankCapped(t *testing.T) {
	state := model.StreakState{
		CurrentStreak: 3, LongestStreak: 5,
		LastActivityDate: "2026-03-09", TotalActivityDays: 59,
		FreezeDaysAvailable: 2,
	}

	next, _ := advanceStreak(state, "2026-03-10", streakNow)
	assert.Equal(t, 2, next.FreezeDaysAvailable)
}

func TestAdvanceStreakLongestNeverDecreases(t *testing.T) {
	state := model.StreakState{LastActivityDate: "2026-01-01"}
	day := "2026-03-01"
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	longest := 0
	for i := 0; i < 40; i++ {
		var changed bool
		state, changed = advanceStreak(state, day, now)
		require.True(t, changed)
		assert.GreaterOrEqual(t, state.LongestStreak, longest)
		assert.GreaterOrEqual(t, state.LongestStreak, state.CurrentStreak)
		longest = state.LongestStreak
		day = shiftDay(day, 1)
		now = now.AddDate(0, 0, 1)
	}
	assert.Equal(t, 40, state.CurrentStreak)
}
