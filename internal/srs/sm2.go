// Package srs 实现 SM-2 间隔重复调度与掌握度评分
// 纯计算，不依赖存储，便于独立测试
package srs

import (
	"fmt"
	"math"
	"time"
)

// Params SM-2 的可调参数。算法不变量（EF 上下界、失败重置）由 Apply 保证，
// 具体常数可通过配置覆盖
type Params struct {
	MinEaseFactor     float64 // 默认 1.3
	MaxEaseFactor     float64 // 默认 3.0
	InitialEaseFactor float64 // 默认 2.5
	FirstInterval     int     // 第一次答对后的间隔天数，默认 1
	SecondInterval    int     // 第二次答对后的间隔天数，默认 6
	PassThreshold     int     // 达到该质量视为答对，默认 3
}

// DefaultParams 经典 SM-2 常数
func DefaultParams() Params {
	return Params{
		MinEaseFactor:     1.3,
		MaxEaseFactor:     3.0,
		InitialEaseFactor: 2.5,
		FirstInterval:     1,
		SecondInterval:    6,
		PassThreshold:     3,
	}
}

// State 调度器读写的条目状态子集
type State struct {
	EaseFactor         float64
	IntervalDays       int
	Repetitions        int
	NextReviewAt       time.Time
	LastReviewedAt     *time.Time
	TotalReviews       int
	TimesPerfectRecall int
}

// NewState 新加入条目的初始状态，立即可复习
func NewState(p Params, now time.Time) State {
	return State{
		EaseFactor:   p.InitialEaseFactor,
		NextReviewAt: now,
	}
}

// ValidQuality 质量评分必须在 [0,5]
func ValidQuality(quality int) bool {
	return quality >= 0 && quality <= 5
}

// Apply 按 SM-2 推进一次复习后的状态
// quality < PassThreshold 视为回忆失败：连续答对清零，间隔回到 1 天
// 成功路径：1 天 → 6 天 → round(上次间隔 × EF)
// EF 无论成败都更新：EF' = EF + (0.1 − (5−q)(0.08 + (5−q)·0.02))，并夹在 [MinEaseFactor, MaxEaseFactor]
func Apply(p Params, s State, quality int, now time.Time) (State, error) {
	if !ValidQuality(quality) {
		return s, fmt.Errorf("quality rating %d out of range [0,5]", quality)
	}

	q := float64(quality)
	ease := s.EaseFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ease < p.MinEaseFactor {
		ease = p.MinEaseFactor
	}
	if ease > p.MaxEaseFactor {
		ease = p.MaxEaseFactor
	}

	next := s
	next.EaseFactor = ease

	if quality < p.PassThreshold {
		next.Repetitions = 0
		next.IntervalDays = 1
	} else {
		next.Repetitions = s.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.IntervalDays = p.FirstInterval
		case 2:
			next.IntervalDays = p.SecondInterval
		default:
			next.IntervalDays = int(math.Round(float64(s.IntervalDays) * ease))
		}
	}

	next.NextReviewAt = now.AddDate(0, 0, next.IntervalDays)
	reviewedAt := now
	next.LastReviewedAt = &reviewedAt
	next.TotalReviews = s.TotalReviews + 1
	if quality == 5 {
		next.TimesPerfectRecall = s.TimesPerfectRecall + 1
	}

	return next, nil
}
