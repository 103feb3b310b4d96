package repository

import (
	"time"

	"memoverse_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UnlockRepository struct {
	DB *gorm.DB
}

func NewUnlockRepository(db *gorm.DB) *UnlockRepository {
	return &UnlockRepository{DB: db}
}

func (r *UnlockRepository) FindByKey(userID, itemID uint, day string) (*model.DailyUnlockRecord, error) {
	var record model.DailyUnlockRecord
	err := r.DB.Where("user_id = ? AND item_id = ? AND unlock_date = ?", userID, itemID, day).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// EnsureRecord 当日首次解锁时惰性建行
// 唯一索引 + DoNothing，两个并发请求只会有一个真正插入
func (r *UnlockRepository) EnsureRecord(record *model.DailyUnlockRecord) error {
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(record).Error
}

// AppendMode 以 slots_used 为比较字段的条件追加
// 返回 false 表示另一请求先行更新，调用方需用新状态重试
func (r *UnlockRepository) AppendMode(userID, itemID uint, day string, modes []string, prevSlots int) (bool, error) {
	res := r.DB.Model(&model.DailyUnlockRecord{}).
		Where("user_id = ? AND item_id = ? AND unlock_date = ? AND slots_used = ? AND slots_used < slot_limit",
			userID, itemID, day, prevSlots).
		Select("Modes", "SlotsUsed").
		Updates(model.DailyUnlockRecord{Modes: modes, SlotsUsed: prevSlots + 1})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// PurgeOlderThan 保留窗口外的台账清理，可与线上流量并发执行
func (r *UnlockRepository) PurgeOlderThan(cutoff time.Time) (int64, error) {
	res := r.DB.Unscoped().
		Where("unlock_date < ?", cutoff.Format("2006-01-02")).
		Delete(&model.DailyUnlockRecord{})
	return res.RowsAffected, res.Error
}
