package service

import (
	"time"

	"memoverse_backend/internal/repository"
	"memoverse_backend/internal/util"
)

// NotificationService 到期复习与断签风险的查询面
// 只暴露查询给外部推送系统轮询，本服务不发送任何通知
type NotificationService struct {
	ItemRepo   *repository.ReviewItemRepository
	StreakRepo *repository.StreakRepository
}

func NewNotificationService(itemRepo *repository.ReviewItemRepository, streakRepo *repository.StreakRepository) *NotificationService {
	return &NotificationService{
		ItemRepo:   itemRepo,
		StreakRepo: streakRepo,
	}
}

// DueReviewDigest 到期条目数达到阈值的用户
func (s *NotificationService) DueReviewDigest(asOf time.Time, minDue int) ([]repository.DueCount, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	if minDue < 1 {
		minDue = 1
	}
	return s.ItemRepo.CountDueByUser(asOf, minDue)
}

type StreakRiskEntry struct {
	UserID        uint `json:"userId"`
	CurrentStreak int  `json:"currentStreak"`
	FreezeDays    int  `json:"freezeDaysAvailable"`
}

// StreakAtRisk 有连续记录但当日还没活跃的用户
// 日历日按服务时区近似，精确到期判定交给推送方结合用户时区处理
func (s *NotificationService) StreakAtRisk(asOf time.Time) ([]StreakRiskEntry, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	states, err := s.StreakRepo.FindActiveWithoutActivity(asOf.Format(util.DateFormat))
	if err != nil {
		return nil, err
	}

	entries := make([]StreakRiskEntry, 0, len(states))
	for _, st := range states {
		entries = append(entries, StreakRiskEntry{
			UserID:        st.UserID,
			CurrentStreak: st.CurrentStreak,
			FreezeDays:    st.FreezeDaysAvailable,
		})
	}
	return entries, nil
}
