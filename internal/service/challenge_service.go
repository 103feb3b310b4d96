package service

import (
	"context"
	"errors"
	"time"

	"memoverse_backend/internal/model"
	"memoverse_backend/internal/repository"
	"memoverse_backend/internal/util"
	"memoverse_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ChallengeService 限时挑战的进度与奖励
// 进度累加在数据库侧求和；完成翻转与奖励领取都是一次性的条件写
type ChallengeService struct {
	ChallengeRepo *repository.ChallengeRepository
	UserRepo      *repository.UserRepository
	Achievement   *AchievementService
}

func NewChallengeService(challengeRepo *repository.ChallengeRepository, userRepo *repository.UserRepository, achievement *AchievementService) *ChallengeService {
	return &ChallengeService{
		ChallengeRepo: challengeRepo,
		UserRepo:      userRepo,
		Achievement:   achievement,
	}
}

// IncrementProgress 给所有匹配类型的进行中挑战累加进度
// 进度行惰性创建；达标时 completed 恰好翻转一次并打上完成时间
func (s *ChallengeService) IncrementProgress(ctx context.Context, userID uint, targetType model.ChallengeTargetType, delta int) error {
	if delta <= 0 {
		return util.ErrInvalidTarget
	}

	now := time.Now()
	defs, err := s.ChallengeRepo.FindActiveByType(targetType, now)
	if err != nil {
		return err
	}

	for _, def := range defs {
		if err := s.ChallengeRepo.EnsureProgress(&model.ChallengeProgress{
			UserID:      userID,
			ChallengeID: def.ID,
			TargetValue: def.TargetValue,
		}); err != nil {
			logger.Log.Error("challenge progress init failed",
				zap.Uint("userId", userID), zap.Uint("challengeId", def.ID), zap.Error(err))
			continue
		}
		if err := s.ChallengeRepo.AddProgress(userID, def.ID, delta); err != nil {
			logger.Log.Error("challenge progress increment failed",
				zap.Uint("userId", userID), zap.Uint("challengeId", def.ID), zap.Error(err))
			continue
		}

		completed, err := s.ChallengeRepo.MarkCompleted(userID, def.ID, now)
		if err != nil {
			logger.Log.Error("challenge completion check failed",
				zap.Uint("userId", userID), zap.Uint("challengeId", def.ID), zap.Error(err))
			continue
		}
		if completed {
			logger.Log.Info("challenge completed",
				zap.Uint("userId", userID), zap.Uint("challengeId", def.ID), zap.String("code", def.Code))
			if _, err := s.Achievement.Evaluate(userID, model.CategoryChallengesCompleted); err != nil {
				logger.Log.Error("achievement evaluation failed",
					zap.Uint("userId", userID), zap.String("category", string(model.CategoryChallengesCompleted)), zap.Error(err))
			}
		}
	}
	return nil
}

// ClaimReward 奖励只在完成后领取一次，两类违规都显式报错
func (s *ChallengeService) ClaimReward(ctx context.Context, userID, challengeID uint) (int, error) {
	def, err := s.ChallengeRepo.FindDefinitionByID(challengeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, util.ErrChallengeNotFound
	}
	if err != nil {
		return 0, err
	}

	claimed, err := s.ChallengeRepo.ClaimReward(userID, challengeID, time.Now())
	if err != nil {
		return 0, err
	}
	if !claimed {
		// 条件写没命中，读行区分失败原因
		progress, err := s.ChallengeRepo.FindProgress(userID, challengeID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrChallengeNotCompleted
		}
		if err != nil {
			return 0, err
		}
		if !progress.Completed {
			return 0, util.ErrChallengeNotCompleted
		}
		return 0, util.ErrRewardAlreadyClaimed
	}

	if def.RewardXP > 0 {
		if err := s.UserRepo.AddXP(userID, def.RewardXP); err != nil {
			logger.Log.Error("challenge XP grant failed",
				zap.Uint("userId", userID), zap.Uint("challengeId", challengeID), zap.Error(err))
		}
	}
	return def.RewardXP, nil
}

// ChallengeView 挑战详情 + 用户进度
type ChallengeView struct {
	model.ChallengeDefinition
	CurrentProgress int        `json:"currentProgress"`
	Completed       bool       `json:"completed"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	RewardClaimed   bool       `json:"rewardClaimed"`
}

func (s *ChallengeService) ListForUser(userID uint) ([]ChallengeView, error) {
	defs, err := s.ChallengeRepo.FindActive(time.Now())
	if err != nil {
		return nil, err
	}
	progresses, err := s.ChallengeRepo.FindProgressByUser(userID)
	if err != nil {
		return nil, err
	}

	byChallenge := make(map[uint]model.ChallengeProgress, len(progresses))
	for _, p := range progresses {
		byChallenge[p.ChallengeID] = p
	}

	views := make([]ChallengeView, 0, len(defs))
	for _, def := range defs {
		view := ChallengeView{ChallengeDefinition: def}
		if p, ok := byChallenge[def.ID]; ok {
			view.CurrentProgress = p.CurrentProgress
			view.Completed = p.Completed
			view.CompletedAt = p.CompletedAt
			view.RewardClaimed = p.RewardClaimed
		}
		views = append(views, view)
	}
	return views, nil
}

type ChallengeDefinitionRequest struct {
	Code        string                    `json:"code" binding:"required"`
	Title       string                    `json:"title" binding:"required"`
	TargetType  model.ChallengeTargetType `json:"targetType" binding:"required"`
	TargetValue int                       `json:"targetValue" binding:"required"`
	RewardXP    int                       `json:"rewardXp"`
	Recurring   bool                      `json:"recurring"`
	StartAt     time.Time                 `json:"startAt" binding:"required"`
	EndAt       time.Time                 `json:"endAt" binding:"required"`
}

// CreateDefinition 管理接口：上架新挑战，校验先于任何写入
func (s *ChallengeService) CreateDefinition(req ChallengeDefinitionRequest) (*model.ChallengeDefinition, error) {
	if req.TargetValue <= 0 {
		return nil, util.ErrInvalidTarget
	}
	if !req.EndAt.After(req.StartAt) {
		return nil, util.ErrInvalidTimeWindow
	}

	def := &model.ChallengeDefinition{
		Code:        req.Code,
		Title:       req.Title,
		TargetType:  req.TargetType,
		TargetValue: req.TargetValue,
		RewardXP:    req.RewardXP,
		Recurring:   req.Recurring,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
	}
	return def, s.ChallengeRepo.CreateDefinition(def)
}

// RotateExpired 维护任务：把过期的周期性挑战按原窗口长度顺延
// 删旧换新窗口天然幂等，可与线上流量并发
func (s *ChallengeService) RotateExpired() error {
	now := time.Now()
	defs, err := s.ChallengeRepo.FindExpiredRecurring(now)
	if err != nil {
		return err
	}

	for _, def := range defs {
		start, end := nextWindow(def.StartAt, def.EndAt, now)
		if err := s.ChallengeRepo.ShiftWindow(def.ID, start, end); err != nil {
			logger.Log.Error("challenge window rotation failed",
				zap.Uint("challengeId", def.ID), zap.Error(err))
			continue
		}
		logger.Log.Info("challenge window rotated",
			zap.String("code", def.Code), zap.Time("startAt", start), zap.Time("endAt", end))
	}
	return nil
}

// nextWindow 按原窗口长度顺延，直到窗口覆盖 now
func nextWindow(start, end, now time.Time) (time.Time, time.Time) {
	window := end.Sub(start)
	for !end.After(now) {
		start = end
		end = end.Add(window)
	}
	return start, end
}
