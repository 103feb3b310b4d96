package repository

import (
	"time"

	"memoverse_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) FindDefinitionsByCategory(category model.AchievementCategory) ([]model.AchievementDefinition, error) {
	var defs []model.AchievementDefinition
	err := r.DB.Where("category = ?", category).Order("threshold asc").Find(&defs).Error
	return defs, err
}

func (r *AchievementRepository) FindAllDefinitions() ([]model.AchievementDefinition, error) {
	var defs []model.AchievementDefinition
	err := r.DB.Order("category, threshold asc").Find(&defs).Error
	return defs, err
}

// InsertUnlockedIfAbsent 幂等解锁：唯一索引 + DoNothing
// 返回 true 仅当本次真正插入，重复评估不会二次上报
func (r *AchievementRepository) InsertUnlockedIfAbsent(userID, achievementID uint, at time.Time) (bool, error) {
	res := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.UnlockedAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    at,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AchievementRepository) FindUnlockedByUser(userID uint) ([]model.UnlockedAchievement, error) {
	var unlocked []model.UnlockedAchievement
	err := r.DB.Where("user_id = ?", userID).Order("unlocked_at asc").Find(&unlocked).Error
	return unlocked, err
}

func (r *AchievementRepository) CountUnlockedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UnlockedAchievement{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
