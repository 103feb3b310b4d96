package repository

import (
	"time"

	"memoverse_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) CreateDefinition(def *model.ChallengeDefinition) error {
	return r.DB.Create(def).Error
}

func (r *ChallengeRepository) FindDefinitionByID(id uint) (*model.ChallengeDefinition, error) {
	var def model.ChallengeDefinition
	err := r.DB.First(&def, id).Error
	if err != nil {
		return nil, err
	}
	return &def, nil
}

func (r *ChallengeRepository) FindActiveByType(targetType model.ChallengeTargetType, at time.Time) ([]model.ChallengeDefinition, error) {
	var defs []model.ChallengeDefinition
	err := r.DB.Where("target_type = ? AND start_at <= ? AND end_at > ?", targetType, at, at).
		Find(&defs).Error
	return defs, err
}

func (r *ChallengeRepository) FindActive(at time.Time) ([]model.ChallengeDefinition, error) {
	var defs []model.ChallengeDefinition
	err := r.DB.Where("start_at <= ? AND end_at > ?", at, at).Order("end_at asc").Find(&defs).Error
	return defs, err
}

// EnsureProgress 首次参与时惰性建进度行，唯一索引保证不重复
func (r *ChallengeRepository) EnsureProgress(progress *model.ChallengeProgress) error {
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(progress).Error
}

// AddProgress 原子累加，delta 在数据库侧求和，避免读-改-写竞态
func (r *ChallengeRepository) AddProgress(userID, challengeID uint, delta int) error {
	return r.DB.Model(&model.ChallengeProgress{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Update("current_progress", gorm.Expr("current_progress + ?", delta)).
		Error
}

// MarkCompleted 达标时恰好翻转一次 completed
// WHERE completed = 0 保证并发请求只有一个能打上完成时间戳
func (r *ChallengeRepository) MarkCompleted(userID, challengeID uint, at time.Time) (bool, error) {
	res := r.DB.Model(&model.ChallengeProgress{}).
		Where("user_id = ? AND challenge_id = ? AND completed = ? AND current_progress >= target_value",
			userID, challengeID, false).
		Select("Completed", "CompletedAt").
		Updates(model.ChallengeProgress{Completed: true, CompletedAt: &at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ClaimReward 仅在已完成且未领取时成功，失败原因由调用方读行区分
func (r *ChallengeRepository) ClaimReward(userID, challengeID uint, at time.Time) (bool, error) {
	res := r.DB.Model(&model.ChallengeProgress{}).
		Where("user_id = ? AND challenge_id = ? AND completed = ? AND reward_claimed = ?",
			userID, challengeID, true, false).
		Select("RewardClaimed", "ClaimedAt").
		Updates(model.ChallengeProgress{RewardClaimed: true, ClaimedAt: &at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ChallengeRepository) FindProgress(userID, challengeID uint) (*model.ChallengeProgress, error) {
	var progress model.ChallengeProgress
	err := r.DB.Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ChallengeRepository) FindProgressByUser(userID uint) ([]model.ChallengeProgress, error) {
	var progresses []model.ChallengeProgress
	err := r.DB.Where("user_id = ?", userID).Find(&progresses).Error
	return progresses, err
}

func (r *ChallengeRepository) CountCompletedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ChallengeProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

// FindExpiredRecurring 已过期的周期性挑战，维护任务滚动窗口用
func (r *ChallengeRepository) FindExpiredRecurring(at time.Time) ([]model.ChallengeDefinition, error) {
	var defs []model.ChallengeDefinition
	err := r.DB.Where("recurring = ? AND end_at <= ?", true, at).Find(&defs).Error
	return defs, err
}

// ShiftWindow 把周期性挑战滚动到下一窗口，按原窗口长度顺延
func (r *ChallengeRepository) ShiftWindow(defID uint, startAt, endAt time.Time) error {
	return r.DB.Model(&model.ChallengeDefinition{}).
		Where("id = ?", defID).
		Updates(map[string]interface{}{"start_at": startAt, "end_at": endAt}).
		Error
}
