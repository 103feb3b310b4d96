package model

import (
	"time"
)

// ReviewRecord 复习事件日志，只追加，不更新
// 快照字段记录本次复习之后的调度状态，便于离线重算
// swagger:model ReviewRecord
type ReviewRecord struct {
	UUIDBase
	ItemID        uint   `gorm:"index;type:bigint unsigned;not null" json:"itemId"`
	UserID        uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	PracticeMode  string `gorm:"size:50;not null" json:"practiceMode"`
	QualityRating int    `gorm:"not null" json:"qualityRating"` // 0-5

	ConfidenceRating   *int `json:"confidenceRating,omitempty"`   // 1-5，用户自评，与 qualityRating 独立
	AccuracyPercentage *int `json:"accuracyPercentage,omitempty"` // 0-100
	HintsUsed          int  `gorm:"default:0" json:"hintsUsed"`
	TimeSpentSeconds   int  `gorm:"not null" json:"timeSpentSeconds"`

	// 本次复习后的调度状态快照
	EaseFactorAfter   float64 `gorm:"type:decimal(4,2);not null" json:"easeFactorAfter"`
	IntervalDaysAfter int     `gorm:"not null" json:"intervalDaysAfter"`
	RepetitionsAfter  int     `gorm:"not null" json:"repetitionsAfter"`

	ReviewedAt time.Time `gorm:"not null;index" json:"reviewedAt"`
}

func (ReviewRecord) TableName() string {
	return "review_records"
}
