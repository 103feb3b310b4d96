package controller

import (
	"strconv"
	"time"

	"memoverse_backend/internal/service"
	"memoverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// NotificationController 管理员提醒摘要接口，供外部推送系统消费
type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// @Summary 到期复习摘要
// @Description 按用户聚合的到期条目数，minDue 过滤少于阈值的用户
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Param minDue query int false "最小到期数" default(1)
// @Success 200 {object} util.Response
// @Router /api/admin/notifications/due [get]
func (c *NotificationController) DueReviewDigest(ctx *gin.Context) {
	minDue, err := strconv.Atoi(ctx.DefaultQuery("minDue", "1"))
	if err != nil || minDue < 1 {
		util.BadRequest(ctx, "invalid minDue")
		return
	}

	digest, err := c.NotificationService.DueReviewDigest(time.Now(), minDue)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, digest)
}

// @Summary 连续天数风险名单
// @Description 今日尚无活动、连续记录面临中断的用户
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/notifications/streak-risk [get]
func (c *NotificationController) StreakAtRisk(ctx *gin.Context) {
	entries, err := c.NotificationService.StreakAtRisk(time.Now())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
