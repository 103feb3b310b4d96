package model

import (
	"time"
)

// StreakState 每个用户一条的连续学习天数聚合
// 每个日历日最多发生一次状态变更
// swagger:model StreakState
type StreakState struct {
	BaseModel
	UserID uint `gorm:"type:bigint unsigned;not null;uniqueIndex" json:"userId"`

	CurrentStreak     int    `gorm:"default:0" json:"currentStreak"`
	LongestStreak     int    `gorm:"default:0" json:"longestStreak"`  // 恒 >= CurrentStreak，且单调不减
	LastActivityDate  string `gorm:"size:10" json:"lastActivityDate"` // "2006-01-02"，空串表示从未活跃
	TotalActivityDays int    `gorm:"default:0" json:"totalActivityDays"`

	FreezeDaysAvailable int `gorm:"default:0" json:"freezeDaysAvailable"` // 可用的冻结日（跳过一天不断签）
	FreezeDaysUsed      int `gorm:"default:0" json:"freezeDaysUsed"`

	// 里程碑首次达成时间，达成后永久保留
	Milestone10At  *time.Time `json:"milestone10At,omitempty"`
	Milestone30At  *time.Time `json:"milestone30At,omitempty"`
	Milestone100At *time.Time `json:"milestone100At,omitempty"`
	Milestone365At *time.Time `json:"milestone365At,omitempty"`
}

func (StreakState) TableName() string {
	return "streak_states"
}
