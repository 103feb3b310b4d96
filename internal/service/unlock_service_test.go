package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"memoverse_backend/internal/model"
)

func TestResolveUnlockTierLockedForFreeUser(t *testing.T) {
	status := resolveUnlock(model.TierFree, nil, model.ModeAudioRecall)
	assert.Equal(t, UnlockTierLocked, status.Outcome)
}

func TestResolveUnlockFreshDayHasFullQuota(t *testing.T) {
	status := resolveUnlock(model.TierFree, nil, model.ModeRead)
	assert.Equal(t, UnlockCanUnlock, status.Outcome)
	assert.Equal(t, 1, status.SlotLimit)
	assert.Equal(t, 1, status.SlotsRemaining)
}

func TestResolveUnlockAlreadyUnlockedMode(t *testing.T) {
	record := &model.DailyUnlockRecord{
		Modes: []string{model.ModeRead}, SlotsUsed: 1, SlotLimit: 1,
	}
	status := resolveUnlock(model.TierFree, record, model.ModeRead)
	assert.Equal(t, UnlockAlreadyUnlocked, status.Outcome)
}

func TestResolveUnlockLimitReachedForSecondMode(t *testing.T) {
	record := &model.DailyUnlockRecord{
		Modes: []string{model.ModeRead}, SlotsUsed: 1, SlotLimit: 1,
	}
	status := resolveUnlock(model.TierFree, record, model.ModeFlashCards)
	assert.Equal(t, UnlockLimitReached, status.Outcome)
}

func TestResolveUnlockTierQuotas(t *testing.T) {
	record := &model.DailyUnlockRecord{
		Modes: []string{model.ModeRead}, SlotsUsed: 1, SlotLimit: 2,
	}
	status := resolveUnlock(model.TierStandard, record, model.ModeWordBank)
	assert.Equal(t, UnlockCanUnlock, status.Outcome)
	assert.Equal(t, 1, status.SlotsRemaining)

	record = &model.DailyUnlockRecord{
		Modes: []string{model.ModeRead, model.ModeWordBank}, SlotsUsed: 2, SlotLimit: 2,
	}
	status = resolveUnlock(model.TierStandard, record, model.ModeVersePuzzle)
	assert.Equal(t, UnlockLimitReached, status.Outcome)

	status = resolveUnlock(model.TierPlus, &model.DailyUnlockRecord{
		Modes: []string{model.ModeRead, model.ModeWordBank}, SlotsUsed: 2, SlotLimit: 3,
	}, model.ModeVersePuzzle)
	assert.Equal(t, UnlockCanUnlock, status.Outcome)
}

func TestResolveUnlockPremiumNeverConsultsLedger(t *testing.T) {
	status := resolveUnlock(model.TierPremium, nil, model.ModeAudioRecall)
	assert.Equal(t, UnlockAlreadyUnlocked, status.Outcome)
	assert.Equal(t, -1, status.SlotLimit)
	assert.ElementsMatch(t, model.AllPracticeModes, status.UnlockedToday)
}

func TestNextWindowRollsForwardPastNow(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	newStart, newEnd := nextWindow(start, end, now)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), newStart)
	assert.Equal(t, time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC), newEnd)
	assert.True(t, newEnd.After(now))
	assert.Equal(t, end.Sub(start), newEnd.Sub(newStart))
}
