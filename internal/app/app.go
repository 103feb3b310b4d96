package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"memoverse_backend/internal/config"
	"memoverse_backend/internal/controller"
	"memoverse_backend/internal/repository"
	"memoverse_backend/internal/service"
	"memoverse_backend/internal/srs"
	"memoverse_backend/pkg/configwatcher"
	"memoverse_backend/pkg/database"
	"memoverse_backend/pkg/logger"
	"memoverse_backend/pkg/monitoring"
	"memoverse_backend/pkg/security"
	"memoverse_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Cron            *cron.Cron
	services        *services
	configMu        sync.RWMutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	content      *repository.ContentRepository
	reviewItem   *repository.ReviewItemRepository
	reviewRecord *repository.ReviewRecordRepository
	unlock       *repository.UnlockRepository
	streak       *repository.StreakRepository
	achievement  *repository.AchievementRepository
	challenge    *repository.ChallengeRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	content      *service.ContentService
	review       *service.ReviewService
	unlock       *service.UnlockService
	streak       *service.StreakService
	achievement  *service.AchievementService
	challenge    *service.ChallengeService
	notification *service.NotificationService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	content      *controller.ContentController
	item         *controller.ItemController
	unlock       *controller.UnlockController
	streak       *controller.StreakController
	achievement  *controller.AchievementController
	challenge    *controller.ChallengeController
	notification *controller.NotificationController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// applyConfig 配置热更新：只覆盖调度参数与保留窗口，
// 端口、密钥、连接串等需要重启才生效
func (a *App) applyConfig(newCfg *config.Config) {
	a.configMu.Lock()
	a.Config.Scheduler = newCfg.Scheduler
	a.Config.Retention = newCfg.Retention
	a.configMu.Unlock()

	for _, callback := range a.configCallbacks {
		callback(newCfg)
	}
	logger.Log.Info("config reloaded",
		zap.Float64("min_ease_factor", newCfg.Scheduler.MinEaseFactor),
		zap.Int("unlock_record_days", newCfg.Retention.UnlockRecordDays))
}

func (a *App) retentionDays() int {
	a.configMu.RLock()
	defer a.configMu.RUnlock()
	return a.Config.Retention.UnlockRecordDays
}

func schedulerParams(cfg *config.Config) srs.Params {
	return srs.Params{
		MinEaseFactor:     cfg.Scheduler.MinEaseFactor,
		MaxEaseFactor:     cfg.Scheduler.MaxEaseFactor,
		InitialEaseFactor: cfg.Scheduler.InitialEaseFactor,
		FirstInterval:     cfg.Scheduler.FirstIntervalDays,
		SecondInterval:    cfg.Scheduler.SecondIntervalDays,
		PassThreshold:     cfg.Scheduler.PassThreshold,
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		content:      repository.NewContentRepository(db),
		reviewItem:   repository.NewReviewItemRepository(db),
		reviewRecord: repository.NewReviewRecordRepository(db),
		unlock:       repository.NewUnlockRepository(db),
		streak:       repository.NewStreakRepository(db),
		achievement:  repository.NewAchievementRepository(db),
		challenge:    repository.NewChallengeRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	params := schedulerParams(cfg)

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, rdb)
	s.content = service.NewContentService(repos.content, rdb)
	s.streak = service.NewStreakService(repos.streak, repos.user, rdb)
	s.achievement = service.NewAchievementService(repos.achievement, repos.reviewItem, repos.reviewRecord, repos.streak, repos.challenge, repos.user)
	s.challenge = service.NewChallengeService(repos.challenge, repos.user, s.achievement)
	s.review = service.NewReviewService(repos.reviewItem, repos.reviewRecord, s.content, s.streak, s.achievement, s.challenge, params, db)
	s.unlock = service.NewUnlockService(repos.unlock, repos.reviewItem, s.user)
	s.notification = service.NewNotificationService(repos.reviewItem, repos.streak)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth, s.user),
		user:         controller.NewUserController(s.user),
		content:      controller.NewContentController(s.content),
		item:         controller.NewItemController(s.review),
		unlock:       controller.NewUnlockController(s.unlock),
		streak:       controller.NewStreakController(s.streak),
		achievement:  controller.NewAchievementController(s.achievement),
		challenge:    controller.NewChallengeController(s.challenge),
		notification: controller.NewNotificationController(s.notification),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundJobs 定时维护：台账清理与循环挑战滚动
// 保留窗口每次执行时现取，热更新后下一轮即生效
func (a *App) startBackgroundJobs(s *services) {
	c := cron.New()

	c.AddFunc("30 3 * * *", func() {
		purged, err := s.unlock.PurgeExpired(a.retentionDays())
		if err != nil {
			logger.Log.Error("unlock ledger purge failed", zap.Error(err))
			return
		}
		logger.Log.Info("unlock ledger purged", zap.Int64("rows", purged))
	})

	c.AddFunc("5 0 * * *", func() {
		if err := s.challenge.RotateExpired(); err != nil {
			logger.Log.Error("challenge rotation failed", zap.Error(err))
		}
	})

	c.Start()
	a.Cron = c
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("memorization-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	app.startBackgroundJobs(services)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		services.review.UpdateParams(schedulerParams(newCfg))
	})
	go configwatcher.WatchConfig(filepath.Join("configs", "config.yaml"), cfg, func(raw interface{}) {
		if newCfg, ok := raw.(*config.Config); ok {
			app.applyConfig(newCfg)
		}
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.Cron != nil {
		a.Cron.Stop()
	}

	// 关闭服务
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
