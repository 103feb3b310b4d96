package model

import (
	"time"
)

type AchievementCategory string

const (
	CategoryVersesAdded         AchievementCategory = "verses_added"
	CategoryReviewsTotal        AchievementCategory = "reviews_total"
	CategoryPerfectRecalls      AchievementCategory = "perfect_recalls"
	CategoryStreakDays          AchievementCategory = "streak_days"
	CategoryModesTried          AchievementCategory = "modes_tried"
	CategoryMasteredVerses      AchievementCategory = "mastered_verses"
	CategoryChallengesCompleted AchievementCategory = "challenges_completed"
)

// AchievementDefinition 成就目录，数据驱动：一个类别一个指标，阈值达到即解锁
// 新成就通过插入目录行上线，不需要新增代码
// swagger:model AchievementDefinition
type AchievementDefinition struct {
	BaseModel
	Code      string              `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Category  AchievementCategory `gorm:"size:30;not null;index" json:"category"`
	Title     string              `gorm:"size:100;not null" json:"title"`
	Icon      string              `gorm:"size:255" json:"icon"`
	Threshold int                 `gorm:"not null" json:"threshold"`
	RewardXP  int                 `gorm:"default:0" json:"rewardXp"`
}

func (AchievementDefinition) TableName() string {
	return "achievement_definitions"
}

// UnlockedAchievement (用户, 成就) 唯一，一次写入后不再变更
// swagger:model UnlockedAchievement
type UnlockedAchievement struct {
	BaseModel
	UserID        uint      `gorm:"type:bigint unsigned;not null;index:idx_unlocked_user_achievement,unique" json:"userId"`
	AchievementID uint      `gorm:"type:bigint unsigned;not null;index:idx_unlocked_user_achievement,unique" json:"achievementId"`
	UnlockedAt    time.Time `gorm:"not null" json:"unlockedAt"`
}

func (UnlockedAchievement) TableName() string {
	return "unlocked_achievements"
}
