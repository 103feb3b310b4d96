// 手动触发维护任务脚本
//
// 该功能已集成到主应用的后台定时任务中（每日自动执行）。
// 此脚本仅用于手动触发，例如首次部署或调整保留窗口之后。
//
// 用法: go run scripts/maintenance.go

package main

import (
	"log"

	"memoverse_backend/internal/config"
	"memoverse_backend/internal/repository"
	"memoverse_backend/internal/service"
	"memoverse_backend/pkg/database"
	"memoverse_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	unlockRepo := repository.NewUnlockRepository(db)
	itemRepo := repository.NewReviewItemRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	userRepo := repository.NewUserRepository(db)

	unlockService := service.NewUnlockService(unlockRepo, itemRepo, nil)
	challengeService := service.NewChallengeService(challengeRepo, userRepo, nil)

	log.Println("手动触发解锁台账清理...")
	purged, err := unlockService.PurgeExpired(cfg.Retention.UnlockRecordDays)
	if err != nil {
		log.Fatalf("台账清理失败: %v", err)
	}
	log.Printf("清理 %d 条过期台账", purged)

	log.Println("手动触发循环挑战滚动...")
	if err := challengeService.RotateExpired(); err != nil {
		log.Fatalf("挑战滚动失败: %v", err)
	}
	log.Println("完成！")
}
