package srs

import (
	"math"

	"memoverse_backend/internal/model"
)

// RecentQualityWindow 掌握度评分采用的最近复习窗口
const RecentQualityWindow = 5

// MasteryScore 把调度状态与近期表现折算为 0-100 的掌握度分数
// 读取时计算，不落库。recentQualities 按时间倒序，最多取 RecentQualityWindow 条
//
//	30% EF 在 [1.3, 3.0] 区间内的位置
//	20% 连续答对次数 / 10
//	20% 间隔天数 / 365
//	10% 总复习次数 / 50
//	20% 最近 5 次平均质量 / 5
func MasteryScore(s State, recentQualities []int) float64 {
	score := 30 * clamp01((s.EaseFactor-1.3)/1.7)
	score += 20 * clamp01(float64(s.Repetitions)/10)
	score += 20 * clamp01(float64(s.IntervalDays)/365)
	score += 10 * clamp01(float64(s.TotalReviews)/50)

	if len(recentQualities) > 0 {
		n := len(recentQualities)
		if n > RecentQualityWindow {
			n = RecentQualityWindow
		}
		sum := 0
		for _, q := range recentQualities[:n] {
			sum += q
		}
		avg := float64(sum) / float64(n)
		score += 20 * (avg / 5)
	}

	return math.Round(score*100) / 100
}

// MasteryLevelForScore 分数到等级的粗分类
func MasteryLevelForScore(score float64) model.MasteryLevel {
	switch {
	case score < 20:
		return model.MasteryBeginner
	case score < 40:
		return model.MasteryIntermediate
	case score < 60:
		return model.MasteryAdvanced
	case score < 80:
		return model.MasteryExpert
	default:
		return model.MasteryMaster
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
