package controller

import (
	"memoverse_backend/internal/service"
	"memoverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UnlockController 每日练习模式解锁接口
type UnlockController struct {
	UnlockService *service.UnlockService
}

func NewUnlockController(unlockService *service.UnlockService) *UnlockController {
	return &UnlockController{UnlockService: unlockService}
}

// @Summary 查询模式解锁状态
// @Description 只读查询，不消耗名额
// @Tags 解锁
// @Produce json
// @Security BearerAuth
// @Param id path int true "条目ID"
// @Param mode path string true "练习模式"
// @Success 200 {object} util.Response
// @Router /api/items/{id}/unlocks/{mode} [get]
func (c *UnlockController) CheckUnlock(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	itemID := util.MustParseUint(ctx.Param("id"))
	if itemID == 0 {
		util.BadRequest(ctx, "invalid item id")
		return
	}

	status, err := c.UnlockService.CheckUnlock(ctx.Request.Context(), claims.UserID, itemID, ctx.Param("mode"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// @Summary 解锁练习模式
// @Description 消耗当日一个名额；重复解锁与额度用尽都是正常返回，由 outcome 区分
// @Tags 解锁
// @Produce json
// @Security BearerAuth
// @Param id path int true "条目ID"
// @Param mode path string true "练习模式"
// @Success 200 {object} util.Response
// @Router /api/items/{id}/unlocks/{mode} [post]
func (c *UnlockController) Unlock(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	itemID := util.MustParseUint(ctx.Param("id"))
	if itemID == 0 {
		util.BadRequest(ctx, "invalid item id")
		return
	}

	status, err := c.UnlockService.Unlock(ctx.Request.Context(), claims.UserID, itemID, ctx.Param("mode"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, status)
}
