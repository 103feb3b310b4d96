package model

import (
	"time"
)

type ChallengeTargetType string

const (
	TargetReviews        ChallengeTargetType = "reviews"
	TargetPerfectRecalls ChallengeTargetType = "perfect_recalls"
	TargetVersesAdded    ChallengeTargetType = "verses_added"
	TargetModesTried     ChallengeTargetType = "modes_tried"
)

var allChallengeTargetTypes = []ChallengeTargetType{
	TargetReviews,
	TargetPerfectRecalls,
	TargetVersesAdded,
	TargetModesTried,
}

func ValidChallengeTargetType(t ChallengeTargetType) bool {
	for _, candidate := range allChallengeTargetTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ChallengeDefinition 限时挑战，与永久性阈值成就互相独立
// swagger:model ChallengeDefinition
type ChallengeDefinition struct {
	BaseModel
	Code        string              `gorm:"size:50;not null;index" json:"code"`
	Title       string              `gorm:"size:100;not null" json:"title"`
	TargetType  ChallengeTargetType `gorm:"size:30;not null;index" json:"targetType"`
	TargetValue int                 `gorm:"not null" json:"targetValue"` // > 0
	RewardXP    int                 `gorm:"default:0" json:"rewardXp"`
	Recurring   bool                `gorm:"default:false" json:"recurring"` // 到期后由维护任务滚动到下一窗口
	StartAt     time.Time           `gorm:"not null;index" json:"startAt"`
	EndAt       time.Time           `gorm:"not null;index" json:"endAt"` // 恒 > StartAt
}

func (ChallengeDefinition) TableName() string {
	return "challenge_definitions"
}

// Active 判断挑战在指定时刻是否开放
func (d *ChallengeDefinition) Active(at time.Time) bool {
	return !at.Before(d.StartAt) && at.Before(d.EndAt)
}

// ChallengeProgress (用户, 挑战) 唯一
// TargetValue 为开始参与时的快照，完成判定不回查目录
// swagger:model ChallengeProgress
type ChallengeProgress struct {
	BaseModel
	UserID      uint `gorm:"type:bigint unsigned;not null;index:idx_progress_user_challenge,unique" json:"userId"`
	ChallengeID uint `gorm:"type:bigint unsigned;not null;index:idx_progress_user_challenge,unique" json:"challengeId"`

	CurrentProgress int        `gorm:"default:0" json:"currentProgress"`
	TargetValue     int        `gorm:"not null" json:"targetValue"`
	Completed       bool       `gorm:"default:false" json:"completed"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	RewardClaimed   bool       `gorm:"default:false" json:"rewardClaimed"`
	ClaimedAt       *time.Time `json:"claimedAt,omitempty"`
}

func (ChallengeProgress) TableName() string {
	return "challenge_progresses"
}
