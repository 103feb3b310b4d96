package app

import (
	"memoverse_backend/docs"
	"memoverse_backend/internal/config"
	"memoverse_backend/internal/middleware"
	"memoverse_backend/internal/model"
	"memoverse_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerMemberRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerMemberRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)

	// 内容库
	rg.GET("/contents", c.content.Lookup)
	rg.GET("/contents/search", c.content.Search)

	// 记忆条目与练习
	rg.POST("/items", c.item.AddItem)
	rg.GET("/items", c.item.ListItems)
	rg.GET("/items/due", c.item.GetDueItems)
	rg.GET("/items/:id", c.item.GetItem)
	rg.DELETE("/items/:id", c.item.RemoveItem)
	rg.POST("/items/:id/reviews", c.item.SubmitReview)

	// 每日模式解锁
	rg.GET("/items/:id/unlocks/:mode", c.unlock.CheckUnlock)
	rg.POST("/items/:id/unlocks/:mode", c.unlock.Unlock)

	// 连续天数 / 成就 / 挑战
	rg.GET("/streak", c.streak.GetStreak)
	rg.GET("/achievements", c.achievement.GetUserAchievements)
	rg.GET("/challenges", c.challenge.ListChallenges)
	rg.POST("/challenges/progress", c.challenge.IncrementProgress)
	rg.POST("/challenges/:id/claim", c.challenge.ClaimReward)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Admin))
	{
		admin.PATCH("/users/:id/tier", c.user.SetTier)
		admin.POST("/challenges", c.challenge.CreateChallenge)
		admin.GET("/notifications/due", c.notification.DueReviewDigest)
		admin.GET("/notifications/streak-risk", c.notification.StreakAtRisk)
	}
}
