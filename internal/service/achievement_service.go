package service

import (
	"errors"
	"fmt"
	"time"

	"memoverse_backend/internal/model"
	"memoverse_backend/internal/repository"
	"memoverse_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AchievementService 数据驱动的阈值引擎
// 成就是目录行，不是代码：一个类别一个指标，阈值达到即幂等解锁
type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	ItemRepo        *repository.ReviewItemRepository
	RecordRepo      *repository.ReviewRecordRepository
	StreakRepo      *repository.StreakRepository
	ChallengeRepo   *repository.ChallengeRepository
	UserRepo        *repository.UserRepository
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	itemRepo *repository.ReviewItemRepository,
	recordRepo *repository.ReviewRecordRepository,
	streakRepo *repository.StreakRepository,
	challengeRepo *repository.ChallengeRepository,
	userRepo *repository.UserRepository,
) *AchievementService {
	return &AchievementService{
		AchievementRepo: achievementRepo,
		ItemRepo:        itemRepo,
		RecordRepo:      recordRepo,
		StreakRepo:      streakRepo,
		ChallengeRepo:   challengeRepo,
		UserRepo:        userRepo,
	}
}

// metric 计算类别的当前指标值
func (s *AchievementService) metric(userID uint, category model.AchievementCategory) (int64, error) {
	switch category {
	case model.CategoryVersesAdded:
		return s.ItemRepo.CountByUserID(userID)
	case model.CategoryReviewsTotal:
		return s.RecordRepo.CountByUser(userID)
	case model.CategoryPerfectRecalls:
		return s.ItemRepo.SumPerfectRecalls(userID)
	case model.CategoryStreakDays:
		state, err := s.StreakRepo.FindByUser(userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
		return int64(state.CurrentStreak), nil
	case model.CategoryModesTried:
		return s.RecordRepo.CountDistinctModes(userID)
	case model.CategoryMasteredVerses:
		return s.ItemRepo.CountAtLeastIntermediate(userID)
	case model.CategoryChallengesCompleted:
		return s.ChallengeRepo.CountCompletedByUser(userID)
	}
	return 0, fmt.Errorf("unknown achievement category %q", category)
}

// Evaluate 对类别做一轮阈值评估，返回本次新解锁的成就
// 解锁是唯一索引上的条件插入，重复评估不产生副作用
func (s *AchievementService) Evaluate(userID uint, category model.AchievementCategory) ([]model.AchievementDefinition, error) {
	value, err := s.metric(userID, category)
	if err != nil {
		return nil, err
	}

	defs, err := s.AchievementRepo.FindDefinitionsByCategory(category)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var fresh []model.AchievementDefinition
	for _, def := range defs {
		if value < int64(def.Threshold) {
			continue
		}
		inserted, err := s.AchievementRepo.InsertUnlockedIfAbsent(userID, def.ID, now)
		if err != nil {
			return fresh, err
		}
		if !inserted {
			continue
		}
		fresh = append(fresh, def)
		if def.RewardXP > 0 {
			if err := s.UserRepo.AddXP(userID, def.RewardXP); err != nil {
				logger.Log.Error("achievement XP grant failed",
					zap.Uint("userId", userID), zap.String("code", def.Code), zap.Error(err))
			}
		}
	}
	return fresh, nil
}

// AchievementView 目录 + 用户解锁状态
type AchievementView struct {
	model.AchievementDefinition
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

func (s *AchievementService) GetUserAchievements(userID uint) ([]AchievementView, error) {
	defs, err := s.AchievementRepo.FindAllDefinitions()
	if err != nil {
		return nil, err
	}
	unlocked, err := s.AchievementRepo.FindUnlockedByUser(userID)
	if err != nil {
		return nil, err
	}

	unlockedAt := make(map[uint]time.Time, len(unlocked))
	for _, u := range unlocked {
		unlockedAt[u.AchievementID] = u.UnlockedAt
	}

	views := make([]AchievementView, 0, len(defs))
	for _, def := range defs {
		view := AchievementView{AchievementDefinition: def}
		if at, ok := unlockedAt[def.ID]; ok {
			view.Unlocked = true
			view.UnlockedAt = &at
		}
		views = append(views, view)
	}
	return views, nil
}
