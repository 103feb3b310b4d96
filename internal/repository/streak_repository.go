package repository

import (
	"memoverse_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StreakRepository struct {
	DB *gorm.DB
}

func NewStreakRepository(db *gorm.DB) *StreakRepository {
	return &StreakRepository{DB: db}
}

func (r *StreakRepository) FindByUser(userID uint) (*model.StreakState, error) {
	var state model.StreakState
	err := r.DB.Where("user_id = ?", userID).First(&state).Error
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// CreateIfAbsent 首次活跃的条件插入
// 返回 true 表示本请求完成了创建；false 表示并发请求先建，调用方重读即可
func (r *StreakRepository) CreateIfAbsent(state *model.StreakState) (bool, error) {
	res := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(state)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// UpdateGuarded 以 last_activity_date 为比较字段的整行更新
// 同一天只有第一个请求能通过比较，其余请求看到 false 后重读
func (r *StreakRepository) UpdateGuarded(state *model.StreakState, prevActivityDate string) (bool, error) {
	res := r.DB.Model(&model.StreakState{}).
		Where("user_id = ? AND last_activity_date = ?", state.UserID, prevActivityDate).
		Select("CurrentStreak", "LongestStreak", "LastActivityDate", "TotalActivityDays",
			"FreezeDaysAvailable", "FreezeDaysUsed",
			"Milestone10At", "Milestone30At", "Milestone100At", "Milestone365At").
		Updates(state)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindActiveWithoutActivity 有连续记录但当日还没活跃的用户，供断签提醒轮询
func (r *StreakRepository) FindActiveWithoutActivity(today string) ([]model.StreakState, error) {
	var states []model.StreakState
	err := r.DB.Where("current_streak > 0 AND last_activity_date < ?", today).
		Find(&states).Error
	return states, err
}
