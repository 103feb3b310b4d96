package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"memoverse_backend/internal/model"
	"memoverse_backend/internal/repository"
	"memoverse_backend/internal/util"
	"memoverse_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const tierCacheTTL = time.Minute

// UserService 用户资料与订阅等级查询
// 等级由外部计费系统通过管理接口写入，这里只负责读取与缓存
type UserService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
}

func NewUserService(userRepo *repository.UserRepository, rdb *redis.Client) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Redis:    rdb,
	}
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// CurrentTier 解锁判定用的实时等级。令牌里的等级可能过期，不作数
func (s *UserService) CurrentTier(ctx context.Context, userID uint) (model.SubscriptionTier, error) {
	key := tierCacheKey(userID)
	if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
		tier := model.SubscriptionTier(cached)
		if model.ValidTier(tier) {
			return tier, nil
		}
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return "", err
	}

	if err := s.Redis.Set(ctx, key, string(user.Tier), tierCacheTTL).Err(); err != nil {
		logger.Log.Warn("tier cache write failed", zap.Uint("userId", userID), zap.Error(err))
	}
	return user.Tier, nil
}

// SetTier 管理接口：代替计费回调修改订阅等级
func (s *UserService) SetTier(ctx context.Context, userID uint, tier model.SubscriptionTier) error {
	if !model.ValidTier(tier) {
		return util.ErrInvalidTier
	}
	if _, err := s.GetUserByID(userID); err != nil {
		return err
	}
	if err := s.UserRepo.UpdateTier(userID, tier); err != nil {
		return err
	}
	s.Redis.Del(ctx, tierCacheKey(userID))
	return nil
}

func (s *UserService) UpdateProfile(userID uint, name, language, timezone string) (*model.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if language != "" {
		user.Language = language
	}
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return nil, fmt.Errorf("invalid timezone %q", timezone)
		}
		user.Timezone = timezone
	}

	return user, s.UserRepo.Update(user)
}

func tierCacheKey(userID uint) string {
	return fmt.Sprintf("memoverse:tier:%d", userID)
}
