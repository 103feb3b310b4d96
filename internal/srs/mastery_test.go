package srs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"memoverse_backend/internal/model"
)

func TestMasteryScoreFreshItem(t *testing.T) {
	s := State{EaseFactor: 2.5}
	// 仅 EF 项贡献：30 × (2.5-1.3)/1.7 ≈ 21.18
	assert.InDelta(t, 21.18, MasteryScore(s, nil), 0.01)
}

func TestMasteryScorePerfectCeiling(t *testing.T) {
	s := State{
		EaseFactor:   3.0,
		Repetitions:  20,
		IntervalDays: 400,
		TotalReviews: 100,
	}
	score := MasteryScore(s, []int{5, 5, 5, 5, 5})
	assert.Equal(t, 100.0, score)
}

func TestMasteryScoreWeightsRecentQuality(t *testing.T) {
	s := State{EaseFactor: 1.3}
	// 其余项为零，平均质量 4 → 20 × 4/5 = 16
	assert.InDelta(t, 16.0, MasteryScore(s, []int{4, 4, 4, 4, 4}), 1e-9)
}

func TestMasteryScoreUsesAtMostFiveRecords(t *testing.T) {
	s := State{EaseFactor: 1.3}
	// 第六条 0 分不应被计入
	with5 := MasteryScore(s, []int{5, 5, 5, 5, 5})
	with6 := MasteryScore(s, []int{5, 5, 5, 5, 5, 0})
	assert.Equal(t, with5, with6)
}

func TestMasteryScoreRoundedToTwoDecimals(t *testing.T) {
	s := State{EaseFactor: 2.0, Repetitions: 3, IntervalDays: 7, TotalReviews: 4}
	score := MasteryScore(s, []int{4, 3})
	// 12.3529 + 6 + 0.3836 + 0.8 + 14 = 33.5365 → 33.54
	assert.InDelta(t, 33.54, score, 1e-9)
}

func TestMasteryLevelForScore(t *testing.T) {
	cases := []struct {
		score float64
		level model.MasteryLevel
	}{
		{0, model.MasteryBeginner},
		{19.99, model.MasteryBeginner},
		{20, model.MasteryIntermediate},
		{39.99, model.MasteryIntermediate},
		{40, model.MasteryAdvanced},
		{60, model.MasteryExpert},
		{80, model.MasteryMaster},
		{100, model.MasteryMaster},
	}
	for _, c := range cases {
		assert.Equal(t, c.level, MasteryLevelForScore(c.score), "score %.2f", c.score)
	}
}
