package model

import (
	"time"
)

type MasteryLevel string

const (
	MasteryBeginner     MasteryLevel = "beginner"
	MasteryIntermediate MasteryLevel = "intermediate"
	MasteryAdvanced     MasteryLevel = "advanced"
	MasteryExpert       MasteryLevel = "expert"
	MasteryMaster       MasteryLevel = "master"
)

// ReviewItem 用户记忆集中的一条内容的调度状态
// 每个 (用户, 内容引用, 译本) 仅一条，状态只由 SM-2 调度器更新
// swagger:model ReviewItem
type ReviewItem struct {
	BaseModel
	UserID      uint   `gorm:"index;type:bigint unsigned;not null;index:idx_item_user_content,unique" json:"userId"`
	ContentRef  string `gorm:"size:100;not null;index:idx_item_user_content,unique" json:"contentRef"`
	Translation string `gorm:"size:20;not null;default:'default';index:idx_item_user_content,unique" json:"translation"`

	EaseFactor         float64      `gorm:"type:decimal(4,2);default:2.5" json:"easeFactor"` // 始终在 [1.3, 3.0]
	IntervalDays       int          `gorm:"default:0" json:"intervalDays"`
	Repetitions        int          `gorm:"default:0" json:"repetitions"` // 连续答对次数
	NextReviewAt       time.Time    `gorm:"not null;index" json:"nextReviewAt"`
	LastReviewedAt     *time.Time   `json:"lastReviewedAt"`
	TotalReviews       int          `gorm:"default:0" json:"totalReviews"`
	MasteryLevel       MasteryLevel `gorm:"type:enum('beginner','intermediate','advanced','expert','master');default:'beginner'" json:"masteryLevel"`
	TimesPerfectRecall int          `gorm:"default:0" json:"timesPerfectRecall"`
	AddedAt            time.Time    `gorm:"not null" json:"addedAt"`
}

func (ReviewItem) TableName() string {
	return "review_items"
}
