package controller

import (
	"memoverse_backend/internal/service"
	"memoverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StreakController struct {
	StreakService *service.StreakService
}

func NewStreakController(streakService *service.StreakService) *StreakController {
	return &StreakController{StreakService: streakService}
}

// @Summary 当前连续天数
// @Description 含最长记录、冻结天余额与里程碑时间
// @Tags 连续天数
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/streak [get]
func (c *StreakController) GetStreak(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	state, err := c.StreakService.GetStreak(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, state)
}
