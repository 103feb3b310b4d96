package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"memoverse_backend/internal/model"
	"memoverse_backend/internal/repository"
	"memoverse_backend/internal/srs"
	"memoverse_backend/internal/util"
	"memoverse_backend/pkg/logger"
	"memoverse_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReviewService 练习提交的主链路：
// SM-2 推进状态 → 同事务落条目与日志 → 连续天数 → 成就/挑战评估
type ReviewService struct {
	ItemRepo    *repository.ReviewItemRepository
	RecordRepo  *repository.ReviewRecordRepository
	Content     *ContentService
	Streak      *StreakService
	Achievement *AchievementService
	Challenge   *ChallengeService
	Params      srs.Params
	DB          *gorm.DB

	paramsMu sync.RWMutex
}

// UpdateParams 配置热更新入口，只影响之后提交的复习
func (s *ReviewService) UpdateParams(params srs.Params) {
	s.paramsMu.Lock()
	s.Params = params
	s.paramsMu.Unlock()
}

func (s *ReviewService) schedulerParams() srs.Params {
	s.paramsMu.RLock()
	defer s.paramsMu.RUnlock()
	return s.Params
}

func NewReviewService(
	itemRepo *repository.ReviewItemRepository,
	recordRepo *repository.ReviewRecordRepository,
	content *ContentService,
	streak *StreakService,
	achievement *AchievementService,
	challenge *ChallengeService,
	params srs.Params,
	db *gorm.DB,
) *ReviewService {
	return &ReviewService{
		ItemRepo:    itemRepo,
		RecordRepo:  recordRepo,
		Content:     content,
		Streak:      streak,
		Achievement: achievement,
		Challenge:   challenge,
		Params:      params,
		DB:          db,
	}
}

type SubmitReviewRequest struct {
	Mode               string `json:"mode" binding:"required"`
	QualityRating      int    `json:"qualityRating"`
	ConfidenceRating   *int   `json:"confidenceRating,omitempty"`
	AccuracyPercentage *int   `json:"accuracyPercentage,omitempty"`
	HintsUsed          int    `json:"hintsUsed"`
	TimeSpentSeconds   int    `json:"timeSpentSeconds" binding:"required"`
}

type SubmitReviewResult struct {
	Item              *model.ReviewItem             `json:"item"`
	MasteryScore      float64                       `json:"masteryScore"`
	NewlyUnlocked     []model.AchievementDefinition `json:"newlyUnlockedAchievements"`
	CurrentStreakDays int                           `json:"currentStreakDays"`
}

func (req *SubmitReviewRequest) validate() error {
	if !srs.ValidQuality(req.QualityRating) {
		return util.ErrInvalidQuality
	}
	if !model.ValidPracticeMode(req.Mode) {
		return util.ErrInvalidMode
	}
	if req.ConfidenceRating != nil && (*req.ConfidenceRating < 1 || *req.ConfidenceRating > 5) {
		return errors.New("confidence rating must be between 1 and 5")
	}
	if req.AccuracyPercentage != nil && (*req.AccuracyPercentage < 0 || *req.AccuracyPercentage > 100) {
		return errors.New("accuracy percentage must be between 0 and 100")
	}
	if req.HintsUsed < 0 {
		return errors.New("hints used cannot be negative")
	}
	if req.TimeSpentSeconds <= 0 {
		return errors.New("time spent must be positive")
	}
	return nil
}

// SubmitReview 处理一次练习提交
// 条目状态与复习日志在同一事务写入，其余推进各自幂等，失败不回滚主链路
func (s *ReviewService) SubmitReview(ctx context.Context, userID, itemID uint, req SubmitReviewRequest) (*SubmitReviewResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	item, err := s.ItemRepo.FindByIDAndUserID(itemID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	state, err := srs.Apply(s.schedulerParams(), itemState(item), req.QualityRating, now)
	if err != nil {
		return nil, util.ErrInvalidQuality
	}

	recent, err := s.RecordRepo.FindRecentByItem(itemID, srs.RecentQualityWindow-1)
	if err != nil {
		return nil, err
	}
	qualities := append([]int{req.QualityRating}, recordQualities(recent)...)

	score := srs.MasteryScore(state, qualities)
	applyItemState(item, state)
	item.MasteryLevel = srs.MasteryLevelForScore(score)

	record := &model.ReviewRecord{
		ItemID:             item.ID,
		UserID:             userID,
		PracticeMode:       req.Mode,
		QualityRating:      req.QualityRating,
		ConfidenceRating:   req.ConfidenceRating,
		AccuracyPercentage: req.AccuracyPercentage,
		HintsUsed:          req.HintsUsed,
		TimeSpentSeconds:   req.TimeSpentSeconds,
		EaseFactorAfter:    state.EaseFactor,
		IntervalDaysAfter:  state.IntervalDays,
		RepetitionsAfter:   state.Repetitions,
		ReviewedAt:         now,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		return s.RecordRepo.CreateTx(tx, record)
	})
	if err != nil {
		return nil, err
	}

	monitoring.ReviewsSubmitted.WithLabelValues(req.Mode).Inc()

	streak, err := s.Streak.RecordActivity(ctx, userID, now)
	if err != nil {
		logger.Log.Error("streak update failed after review", zap.Uint("userId", userID), zap.Error(err))
	}

	unlocked := s.evaluateAfterReview(userID, req.QualityRating)

	s.bumpChallenge(ctx, userID, model.TargetReviews)
	if req.QualityRating == 5 {
		s.bumpChallenge(ctx, userID, model.TargetPerfectRecalls)
	}

	result := &SubmitReviewResult{
		Item:          item,
		MasteryScore:  score,
		NewlyUnlocked: unlocked,
	}
	if streak != nil {
		result.CurrentStreakDays = streak.CurrentStreak
	}
	return result, nil
}

// bumpChallenge 挑战进度是尽力而为的旁路，失败只记日志不阻断提交
func (s *ReviewService) bumpChallenge(ctx context.Context, userID uint, target model.ChallengeTargetType) {
	if err := s.Challenge.IncrementProgress(ctx, userID, target, 1); err != nil {
		logger.Log.Error("challenge progress update failed",
			zap.Uint("userId", userID), zap.String("targetType", string(target)), zap.Error(err))
	}
}

// evaluateAfterReview 评估本次提交可能触达的成就类别
// 评估是幂等的，重复触发不会重复解锁
func (s *ReviewService) evaluateAfterReview(userID uint, quality int) []model.AchievementDefinition {
	categories := []model.AchievementCategory{
		model.CategoryReviewsTotal,
		model.CategoryModesTried,
		model.CategoryMasteredVerses,
		model.CategoryStreakDays,
	}
	if quality == 5 {
		categories = append(categories, model.CategoryPerfectRecalls)
	}

	var unlocked []model.AchievementDefinition
	for _, category := range categories {
		fresh, err := s.Achievement.Evaluate(userID, category)
		if err != nil {
			logger.Log.Error("achievement evaluation failed",
				zap.Uint("userId", userID), zap.String("category", string(category)), zap.Error(err))
			continue
		}
		unlocked = append(unlocked, fresh...)
	}
	return unlocked
}

type AddItemRequest struct {
	ContentRef  string `json:"contentRef" binding:"required"`
	Translation string `json:"translation"`
}

// AddItem 把内容加入用户的记忆集
func (s *ReviewService) AddItem(ctx context.Context, userID uint, req AddItemRequest) (*model.ReviewItem, error) {
	if req.Translation == "" {
		req.Translation = "default"
	}

	if _, err := s.Content.Lookup(ctx, req.ContentRef, req.Translation); err != nil {
		return nil, err
	}

	now := time.Now()
	state := srs.NewState(s.schedulerParams(), now)
	item := &model.ReviewItem{
		UserID:       userID,
		ContentRef:   req.ContentRef,
		Translation:  req.Translation,
		EaseFactor:   state.EaseFactor,
		NextReviewAt: state.NextReviewAt,
		MasteryLevel: model.MasteryBeginner,
		AddedAt:      now,
	}

	if err := s.ItemRepo.Create(item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrItemExists
		}
		return nil, err
	}

	if _, err := s.Achievement.Evaluate(userID, model.CategoryVersesAdded); err != nil {
		logger.Log.Error("achievement evaluation failed",
			zap.Uint("userId", userID), zap.String("category", string(model.CategoryVersesAdded)), zap.Error(err))
	}
	s.bumpChallenge(ctx, userID, model.TargetVersesAdded)

	return item, nil
}

// RemoveItem 显式移除条目，复习日志一并级联删除
func (s *ReviewService) RemoveItem(userID, itemID uint) error {
	err := s.ItemRepo.DeleteWithRecords(itemID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrItemNotFound
	}
	return err
}

func (s *ReviewService) GetDueItems(userID uint, asOf time.Time) ([]model.ReviewItem, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	return s.ItemRepo.FindDue(userID, asOf)
}

func (s *ReviewService) ListItems(userID uint) ([]model.ReviewItem, error) {
	return s.ItemRepo.FindByUserID(userID)
}

type ItemDetail struct {
	Item         *model.ReviewItem    `json:"item"`
	MasteryScore float64              `json:"masteryScore"`
	Recent       []model.ReviewRecord `json:"recentReviews"`
}

// GetItem 条目详情，掌握度分数读取时重算
func (s *ReviewService) GetItem(userID, itemID uint) (*ItemDetail, error) {
	item, err := s.ItemRepo.FindByIDAndUserID(itemID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	recent, err := s.RecordRepo.FindRecentByItem(itemID, srs.RecentQualityWindow)
	if err != nil {
		return nil, err
	}

	return &ItemDetail{
		Item:         item,
		MasteryScore: srs.MasteryScore(itemState(item), recordQualities(recent)),
		Recent:       recent,
	}, nil
}

func itemState(item *model.ReviewItem) srs.State {
	return srs.State{
		EaseFactor:         item.EaseFactor,
		IntervalDays:       item.IntervalDays,
		Repetitions:        item.Repetitions,
		NextReviewAt:       item.NextReviewAt,
		LastReviewedAt:     item.LastReviewedAt,
		TotalReviews:       item.TotalReviews,
		TimesPerfectRecall: item.TimesPerfectRecall,
	}
}

func applyItemState(item *model.ReviewItem, s srs.State) {
	item.EaseFactor = s.EaseFactor
	item.IntervalDays = s.IntervalDays
	item.Repetitions = s.Repetitions
	item.NextReviewAt = s.NextReviewAt
	item.LastReviewedAt = s.LastReviewedAt
	item.TotalReviews = s.TotalReviews
	item.TimesPerfectRecall = s.TimesPerfectRecall
}

func recordQualities(records []model.ReviewRecord) []int {
	qualities := make([]int, 0, len(records))
	for _, r := range records {
		qualities = append(qualities, r.QualityRating)
	}
	return qualities
}
