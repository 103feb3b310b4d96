package repository

import (
	"time"

	"memoverse_backend/internal/model"

	"gorm.io/gorm"
)

type ReviewItemRepository struct {
	DB *gorm.DB
}

func NewReviewItemRepository(db *gorm.DB) *ReviewItemRepository {
	return &ReviewItemRepository{DB: db}
}

func (r *ReviewItemRepository) Create(item *model.ReviewItem) error {
	return r.DB.Create(item).Error
}

func (r *ReviewItemRepository) FindByIDAndUserID(itemID, userID uint) (*model.ReviewItem, error) {
	var item model.ReviewItem
	err := r.DB.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ReviewItemRepository) FindByUserID(userID uint) ([]model.ReviewItem, error) {
	var items []model.ReviewItem
	err := r.DB.Where("user_id = ?", userID).Order("next_review_at asc").Find(&items).Error
	return items, err
}

// FindDue 到期条目，按最早到期优先
func (r *ReviewItemRepository) FindDue(userID uint, asOf time.Time) ([]model.ReviewItem, error) {
	var items []model.ReviewItem
	err := r.DB.Where("user_id = ? AND next_review_at <= ?", userID, asOf).
		Order("next_review_at asc").
		Find(&items).Error
	return items, err
}

// Save 持久化调度状态。条目由单个用户独占，最后写入胜出即可
func (r *ReviewItemRepository) Save(item *model.ReviewItem) error {
	return r.DB.Save(item).Error
}

// DeleteWithRecords 删除条目并级联清掉它的复习日志
// 物理删除：唯一索引 (user_id, content_ref, translation) 不含 deleted_at，
// 软删会留下墓碑行，导致同一内容无法再次加入
func (r *ReviewItemRepository) DeleteWithRecords(itemID, userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Where("id = ? AND user_id = ?", itemID, userID).Delete(&model.ReviewItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("item_id = ?", itemID).Delete(&model.ReviewRecord{}).Error
	})
}

func (r *ReviewItemRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ReviewItem{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountAtLeastIntermediate 达到 intermediate 及以上等级的条目数
func (r *ReviewItemRepository) CountAtLeastIntermediate(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ReviewItem{}).
		Where("user_id = ? AND mastery_level <> ?", userID, model.MasteryBeginner).
		Count(&count).Error
	return count, err
}

// SumPerfectRecalls 用户全部条目的完美回忆次数合计
func (r *ReviewItemRepository) SumPerfectRecalls(userID uint) (int64, error) {
	var sum int64
	err := r.DB.Model(&model.ReviewItem{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(times_perfect_recall), 0)").
		Scan(&sum).Error
	return sum, err
}

// CountDueByUser 供到期提醒轮询使用：每个用户的到期条目数
func (r *ReviewItemRepository) CountDueByUser(asOf time.Time, minDue int) ([]DueCount, error) {
	var rows []DueCount
	err := r.DB.Model(&model.ReviewItem{}).
		Select("user_id, COUNT(*) AS due_count").
		Where("next_review_at <= ?", asOf).
		Group("user_id").
		Having("COUNT(*) >= ?", minDue).
		Scan(&rows).Error
	return rows, err
}

type DueCount struct {
	UserID   uint  `json:"userId"`
	DueCount int64 `json:"dueCount"`
}
