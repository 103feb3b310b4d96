package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModePoolForTier(t *testing.T) {
	free := ModePoolForTier(TierFree)
	assert.Len(t, free, 3)
	for _, m := range free {
		assert.True(t, ModeInPool(TierFree, m))
	}
	assert.False(t, ModeInPool(TierFree, ModeAudioRecall))

	for _, tier := range []SubscriptionTier{TierStandard, TierPlus, TierPremium} {
		assert.Len(t, ModePoolForTier(tier), 8, string(tier))
		assert.True(t, ModeInPool(tier, ModeAudioRecall))
	}
}

func TestUnlockLimitForTier(t *testing.T) {
	assert.Equal(t, 1, UnlockLimitForTier(TierFree))
	assert.Equal(t, 2, UnlockLimitForTier(TierStandard))
	assert.Equal(t, 3, UnlockLimitForTier(TierPlus))
	assert.Equal(t, -1, UnlockLimitForTier(TierPremium))
}

func TestValidPracticeMode(t *testing.T) {
	assert.True(t, ValidPracticeMode(ModeFillBlanks))
	assert.False(t, ValidPracticeMode("karaoke"))
}
