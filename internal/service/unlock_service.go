package service

import (
	"context"
	"errors"
	"time"

	"memoverse_backend/internal/model"
	"memoverse_backend/internal/repository"
	"memoverse_backend/internal/util"

	"gorm.io/gorm"
)

type UnlockOutcome string

const (
	// UnlockTierLocked 模式不在该等级的模式池内，属于永久限制而非当日额度
	UnlockTierLocked UnlockOutcome = "tier_locked"
	// UnlockAlreadyUnlocked 当日已解锁，重复请求是无操作的成功
	UnlockAlreadyUnlocked UnlockOutcome = "already_unlocked"
	// UnlockCanUnlock 尚有当日名额
	UnlockCanUnlock UnlockOutcome = "can_unlock"
	// UnlockLimitReached 当日名额用尽
	UnlockLimitReached UnlockOutcome = "limit_reached"
	// UnlockGranted 本次请求完成了解锁
	UnlockGranted UnlockOutcome = "unlocked"
)

// UnlockStatus 解锁查询/执行的结果，四种台账结局都是正常返回而非错误
type UnlockStatus struct {
	Outcome        UnlockOutcome `json:"outcome"`
	Mode           string        `json:"mode"`
	SlotLimit      int           `json:"slotLimit"` // -1 表示不限
	SlotsRemaining int           `json:"slotsRemaining"`
	UnlockedToday  []string      `json:"unlockedToday"`
}

// UnlockService 每日练习模式解锁台账
// premium 等级整个目录视为已解锁，不产生台账写入
type UnlockService struct {
	UnlockRepo *repository.UnlockRepository
	ItemRepo   *repository.ReviewItemRepository
	Users      *UserService
}

func NewUnlockService(unlockRepo *repository.UnlockRepository, itemRepo *repository.ReviewItemRepository, users *UserService) *UnlockService {
	return &UnlockService{
		UnlockRepo: unlockRepo,
		ItemRepo:   itemRepo,
		Users:      users,
	}
}

// resolveUnlock 纯判定：等级池 → 当日集合 → 剩余名额
func resolveUnlock(tier model.SubscriptionTier, record *model.DailyUnlockRecord, mode string) UnlockStatus {
	status := UnlockStatus{
		Mode:      mode,
		SlotLimit: model.UnlockLimitForTier(tier),
	}

	if !model.ModeInPool(tier, mode) {
		status.Outcome = UnlockTierLocked
		return status
	}

	if tier == model.TierPremium {
		status.Outcome = UnlockAlreadyUnlocked
		status.SlotsRemaining = -1
		status.UnlockedToday = model.ModePoolForTier(tier)
		return status
	}

	if record != nil {
		status.UnlockedToday = record.Modes
		if record.Contains(mode) {
			status.Outcome = UnlockAlreadyUnlocked
			status.SlotsRemaining = status.SlotLimit - record.SlotsUsed
			return status
		}
		if record.SlotsUsed >= status.SlotLimit {
			status.Outcome = UnlockLimitReached
			return status
		}
		status.Outcome = UnlockCanUnlock
		status.SlotsRemaining = status.SlotLimit - record.SlotsUsed
		return status
	}

	status.Outcome = UnlockCanUnlock
	status.SlotsRemaining = status.SlotLimit
	return status
}

func (s *UnlockService) loadDayRecord(userID, itemID uint, day string) (*model.DailyUnlockRecord, error) {
	record, err := s.UnlockRepo.FindByKey(userID, itemID, day)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return record, err
}

// CheckUnlock 查询模式当日可否解锁，只读
func (s *UnlockService) CheckUnlock(ctx context.Context, userID, itemID uint, mode string) (*UnlockStatus, error) {
	if !model.ValidPracticeMode(mode) {
		return nil, util.ErrInvalidMode
	}
	if _, err := s.ItemRepo.FindByIDAndUserID(itemID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrItemNotFound
		}
		return nil, err
	}

	user, err := s.Users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	tier, err := s.Users.CurrentTier(ctx, userID)
	if err != nil {
		return nil, err
	}

	record, err := s.loadDayRecord(userID, itemID, util.DayKey(time.Now(), user.Timezone))
	if err != nil {
		return nil, err
	}

	status := resolveUnlock(tier, record, mode)
	return &status, nil
}

// Unlock 消耗一个当日名额
// 追加是以 slots_used 为比较字段的条件写，并发超限时一个请求成功、
// 其余请求拿到最新状态重判；比较连续失败一次后作为瞬时冲突上抛
func (s *UnlockService) Unlock(ctx context.Context, userID, itemID uint, mode string) (*UnlockStatus, error) {
	if !model.ValidPracticeMode(mode) {
		return nil, util.ErrInvalidMode
	}
	if _, err := s.ItemRepo.FindByIDAndUserID(itemID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrItemNotFound
		}
		return nil, err
	}

	user, err := s.Users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	tier, err := s.Users.CurrentTier(ctx, userID)
	if err != nil {
		return nil, err
	}
	day := util.DayKey(time.Now(), user.Timezone)

	record, err := s.loadDayRecord(userID, itemID, day)
	if err != nil {
		return nil, err
	}

	status := resolveUnlock(tier, record, mode)
	if status.Outcome != UnlockCanUnlock {
		return &status, nil
	}

	if record == nil {
		if err := s.UnlockRepo.EnsureRecord(&model.DailyUnlockRecord{
			UserID:     userID,
			ItemID:     itemID,
			UnlockDate: day,
			Modes:      []string{},
			Tier:       tier,
			SlotLimit:  status.SlotLimit,
		}); err != nil {
			return nil, err
		}
		if record, err = s.loadDayRecord(userID, itemID, day); err != nil {
			return nil, err
		}
	}

	for attempt := 0; attempt < 2; attempt++ {
		status = resolveUnlock(tier, record, mode)
		if status.Outcome != UnlockCanUnlock {
			return &status, nil
		}

		modes := append(append([]string{}, record.Modes...), mode)
		ok, err := s.UnlockRepo.AppendMode(userID, itemID, day, modes, record.SlotsUsed)
		if err != nil {
			return nil, err
		}
		if ok {
			status.Outcome = UnlockGranted
			status.UnlockedToday = modes
			status.SlotsRemaining = status.SlotLimit - len(modes)
			return &status, nil
		}

		if record, err = s.loadDayRecord(userID, itemID, day); err != nil {
			return nil, err
		}
	}
	return nil, util.ErrConcurrencyConflict
}

// PurgeExpired 维护任务：清掉保留窗口外的台账，不影响当日判定
func (s *UnlockService) PurgeExpired(retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return s.UnlockRepo.PurgeOlderThan(cutoff)
}
