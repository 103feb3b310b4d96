package repository

import (
	"memoverse_backend/internal/model"

	"gorm.io/gorm"
)

type ReviewRecordRepository struct {
	DB *gorm.DB
}

func NewReviewRecordRepository(db *gorm.DB) *ReviewRecordRepository {
	return &ReviewRecordRepository{DB: db}
}

// CreateTx 日志只在条目状态更新的同一事务里追加
func (r *ReviewRecordRepository) CreateTx(tx *gorm.DB, record *model.ReviewRecord) error {
	return tx.Create(record).Error
}

// FindRecentByItem 按复习时间倒序取最近 limit 条
func (r *ReviewRecordRepository) FindRecentByItem(itemID uint, limit int) ([]model.ReviewRecord, error) {
	var records []model.ReviewRecord
	err := r.DB.Where("item_id = ?", itemID).
		Order("reviewed_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *ReviewRecordRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ReviewRecord{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountDistinctModes 用户用过的不同练习模式数
func (r *ReviewRecordRepository) CountDistinctModes(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ReviewRecord{}).
		Where("user_id = ?", userID).
		Distinct("practice_mode").
		Count(&count).Error
	return count, err
}

// DeleteByUser 仅用于整体清除用户数据，不提供单条删除
func (r *ReviewRecordRepository) DeleteByUser(userID uint) error {
	return r.DB.Where("user_id = ?", userID).Delete(&model.ReviewRecord{}).Error
}
