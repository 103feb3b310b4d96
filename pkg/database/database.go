package database

import (
	"fmt"
	"log"
	"time"

	"memoverse_backend/internal/config"
	"memoverse_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true, // 唯一键冲突统一转为 gorm.ErrDuplicatedKey
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Content{},
		&model.ReviewItem{},
		&model.ReviewRecord{},
		&model.DailyUnlockRecord{},
		&model.StreakState{},
		&model.AchievementDefinition{},
		&model.UnlockedAchievement{},
		&model.ChallengeDefinition{},
		&model.ChallengeProgress{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedAchievements(db)
	seedChallenges(db)
	seedContents(db)

	return db, nil
}

// seedAchievements 内置成就目录，仅在空表时写入
func seedAchievements(db *gorm.DB) {
	var count int64
	db.Model(&model.AchievementDefinition{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.AchievementDefinition{
		{Code: "first_verse", Category: model.CategoryVersesAdded, Title: "第一段经文", Icon: "seedling", Threshold: 1, RewardXP: 10},
		{Code: "collector_10", Category: model.CategoryVersesAdded, Title: "收藏家", Icon: "books", Threshold: 10, RewardXP: 50},
		{Code: "collector_50", Category: model.CategoryVersesAdded, Title: "图书馆", Icon: "library", Threshold: 50, RewardXP: 200},
		{Code: "first_review", Category: model.CategoryReviewsTotal, Title: "初次复习", Icon: "pencil", Threshold: 1, RewardXP: 10},
		{Code: "reviewer_100", Category: model.CategoryReviewsTotal, Title: "百次复习", Icon: "medal", Threshold: 100, RewardXP: 100},
		{Code: "reviewer_1000", Category: model.CategoryReviewsTotal, Title: "千锤百炼", Icon: "trophy", Threshold: 1000, RewardXP: 500},
		{Code: "perfect_10", Category: model.CategoryPerfectRecalls, Title: "十次完美", Icon: "star", Threshold: 10, RewardXP: 50},
		{Code: "perfect_100", Category: model.CategoryPerfectRecalls, Title: "过目不忘", Icon: "sparkles", Threshold: 100, RewardXP: 300},
		{Code: "streak_10", Category: model.CategoryStreakDays, Title: "十日连胜", Icon: "flame", Threshold: 10, RewardXP: 50},
		{Code: "streak_30", Category: model.CategoryStreakDays, Title: "月度坚持", Icon: "fire", Threshold: 30, RewardXP: 150},
		{Code: "streak_100", Category: model.CategoryStreakDays, Title: "百日不辍", Icon: "volcano", Threshold: 100, RewardXP: 500},
		{Code: "streak_365", Category: model.CategoryStreakDays, Title: "全年无休", Icon: "crown", Threshold: 365, RewardXP: 2000},
		{Code: "explorer_3", Category: model.CategoryModesTried, Title: "初探模式", Icon: "compass", Threshold: 3, RewardXP: 30},
		{Code: "explorer_8", Category: model.CategoryModesTried, Title: "全能选手", Icon: "map", Threshold: 8, RewardXP: 150},
		{Code: "master_1", Category: model.CategoryMasteredVerses, Title: "首段掌握", Icon: "gem", Threshold: 1, RewardXP: 50},
		{Code: "master_25", Category: model.CategoryMasteredVerses, Title: "炉火纯青", Icon: "diamond", Threshold: 25, RewardXP: 500},
		{Code: "challenger_5", Category: model.CategoryChallengesCompleted, Title: "挑战者", Icon: "target", Threshold: 5, RewardXP: 100},
	}
	for _, d := range defaults {
		db.Create(&d)
	}
}

// seedChallenges 内置循环挑战，窗口从本周起算
func seedChallenges(db *gorm.DB) {
	var count int64
	db.Model(&model.ChallengeDefinition{}).Count(&count)
	if count > 0 {
		return
	}

	now := time.Now()
	weekStart := now.Truncate(24 * time.Hour)

	defaults := []model.ChallengeDefinition{
		{Code: "weekly_reviews", Title: "每周五十次复习", TargetType: model.TargetReviews, TargetValue: 50, RewardXP: 100, Recurring: true, StartAt: weekStart, EndAt: weekStart.AddDate(0, 0, 7)},
		{Code: "weekly_perfect", Title: "每周十次完美回忆", TargetType: model.TargetPerfectRecalls, TargetValue: 10, RewardXP: 150, Recurring: true, StartAt: weekStart, EndAt: weekStart.AddDate(0, 0, 7)},
		{Code: "weekly_verses", Title: "每周新增三段", TargetType: model.TargetVersesAdded, TargetValue: 3, RewardXP: 80, Recurring: true, StartAt: weekStart, EndAt: weekStart.AddDate(0, 0, 7)},
	}
	for _, d := range defaults {
		db.Create(&d)
	}
}

// seedContents 少量示例内容，方便本地联调
func seedContents(db *gorm.DB) {
	var count int64
	db.Model(&model.Content{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Content{
		{Ref: "john.3.16", Translation: "default", DisplayRef: "John 3:16", Text: "For God so loved the world, that he gave his only Son, that whoever believes in him should not perish but have eternal life."},
		{Ref: "psalm.23.1", Translation: "default", DisplayRef: "Psalm 23:1", Text: "The Lord is my shepherd; I shall not want."},
		{Ref: "proverbs.3.5", Translation: "default", DisplayRef: "Proverbs 3:5", Text: "Trust in the Lord with all your heart, and do not lean on your own understanding."},
	}
	for _, c := range defaults {
		db.Create(&c)
	}
}
