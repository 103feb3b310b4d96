package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"memoverse_backend/internal/model"
	"memoverse_backend/internal/repository"
	"memoverse_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const streakCacheTTL = 30 * time.Second

// 连续天数里程碑，达成时间戳一次性落库
var streakMilestones = []int{10, 30, 100, 365}

// 每累计活跃 30 天发 1 个冻结日，最多囤 2 个
const (
	freezeGrantEvery = 30
	freezeBankCap    = 2
)

// StreakService 用户天级活跃聚合
// 状态一天最多变更一次，首次创建与后续推进都是条件写
type StreakService struct {
	StreakRepo *repository.StreakRepository
	UserRepo   *repository.UserRepository
	Redis      *redis.Client
}

func NewStreakService(streakRepo *repository.StreakRepository, userRepo *repository.UserRepository, rdb *redis.Client) *StreakService {
	return &StreakService{
		StreakRepo: streakRepo,
		UserRepo:   userRepo,
		Redis:      rdb,
	}
}

// advanceStreak 纯状态转移：同一天重复调用不变；昨天活跃则 +1；
// 隔一天且有冻结日则消耗冻结日续上；否则重置为 1
func advanceStreak(state model.StreakState, today string, now time.Time) (model.StreakState, bool) {
	if state.LastActivityDate == today {
		return state, false
	}

	next := state
	yesterday := shiftDay(today, -1)
	dayBefore := shiftDay(today, -2)

	switch {
	case state.LastActivityDate == yesterday:
		next.CurrentStreak = state.CurrentStreak + 1
	case state.LastActivityDate == dayBefore && state.FreezeDaysAvailable > 0:
		next.FreezeDaysAvailable--
		next.FreezeDaysUsed++
		next.CurrentStreak = state.CurrentStreak + 1
	default:
		next.CurrentStreak = 1
	}

	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	next.TotalActivityDays = state.TotalActivityDays + 1
	next.LastActivityDate = today

	if next.TotalActivityDays%freezeGrantEvery == 0 && next.FreezeDaysAvailable < freezeBankCap {
		next.FreezeDaysAvailable++
	}

	stampMilestones(&next, now)
	return next, true
}

func stampMilestones(state *model.StreakState, now time.Time) {
	for _, m := range streakMilestones {
		if state.CurrentStreak < m {
			continue
		}
		switch m {
		case 10:
			if state.Milestone10At == nil {
				at := now
				state.Milestone10At = &at
			}
		case 30:
			if state.Milestone30At == nil {
				at := now
				state.Milestone30At = &at
			}
		case 100:
			if state.Milestone100At == nil {
				at := now
				state.Milestone100At = &at
			}
		case 365:
			if state.Milestone365At == nil {
				at := now
				state.Milestone365At = &at
			}
		}
	}
}

// shiftDay 对 "2006-01-02" 形式的日历日做天数偏移
func shiftDay(day string, delta int) string {
	t, err := time.Parse(util.DateFormat, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, delta).Format(util.DateFormat)
}

// RecordActivity 当日首次调用生效，同日重复调用为幂等空操作
func (s *StreakService) RecordActivity(ctx context.Context, userID uint, at time.Time) (*model.StreakState, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	today := util.DayKey(at, user.Timezone)

	state, err := s.StreakRepo.FindByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fresh := &model.StreakState{
			UserID:            userID,
			CurrentStreak:     1,
			LongestStreak:     1,
			LastActivityDate:  today,
			TotalActivityDays: 1,
		}
		created, err := s.StreakRepo.CreateIfAbsent(fresh)
		if err != nil {
			return nil, err
		}
		if created {
			s.invalidate(ctx, userID)
			return fresh, nil
		}
		// 并发首次活跃，另一请求已建行，走常规推进
		state, err = s.StreakRepo.FindByUser(userID)
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	// 条件更新失败说明并发请求先行，用最新状态重试一次
	for attempt := 0; attempt < 2; attempt++ {
		next, changed := advanceStreak(*state, today, at)
		if !changed {
			return state, nil
		}

		ok, err := s.StreakRepo.UpdateGuarded(&next, state.LastActivityDate)
		if err != nil {
			return nil, err
		}
		if ok {
			s.invalidate(ctx, userID)
			return &next, nil
		}

		state, err = s.StreakRepo.FindByUser(userID)
		if err != nil {
			return nil, err
		}
	}
	return nil, util.ErrConcurrencyConflict
}

// GetStreak 读取用户的连续状态，从未活跃的用户返回零值状态
func (s *StreakService) GetStreak(ctx context.Context, userID uint) (*model.StreakState, error) {
	key := streakCacheKey(userID)
	if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
		var state model.StreakState
		if json.Unmarshal([]byte(cached), &state) == nil {
			return &state, nil
		}
	}

	state, err := s.StreakRepo.FindByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.StreakState{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(state); err == nil {
		s.Redis.Set(ctx, key, payload, streakCacheTTL)
	}
	return state, nil
}

func (s *StreakService) invalidate(ctx context.Context, userID uint) {
	s.Redis.Del(ctx, streakCacheKey(userID))
}

func streakCacheKey(userID uint) string {
	return fmt.Sprintf("memoverse:streak:%d", userID)
}
