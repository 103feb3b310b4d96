package controller

import (
	"time"

	"memoverse_backend/internal/service"
	"memoverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ItemController 记忆条目与练习提交接口
type ItemController struct {
	ReviewService *service.ReviewService
}

func NewItemController(reviewService *service.ReviewService) *ItemController {
	return &ItemController{ReviewService: reviewService}
}

// @Summary 添加记忆条目
// @Description 把指定内容加入当前用户的记忆集，重复添加返回 409
// @Tags 条目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body service.AddItemRequest true "内容引用"
// @Success 201 {object} util.Response
// @Router /api/items [post]
func (c *ItemController) AddItem(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	item, err := c.ReviewService.AddItem(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, item)
}

// @Summary 列出记忆条目
// @Tags 条目
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/items [get]
func (c *ItemController) ListItems(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	items, err := c.ReviewService.ListItems(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// @Summary 条目详情
// @Description 含当前掌握度分数与最近复习日志
// @Tags 条目
// @Produce json
// @Security BearerAuth
// @Param id path int true "条目ID"
// @Success 200 {object} util.Response
// @Router /api/items/{id} [get]
func (c *ItemController) GetItem(ctx *gin.Context) {
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

	detail, err := c.ReviewService.GetItem(claims.UserID, itemID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 移除记忆条目
// @Description 条目与其全部复习日志一并删除
// @Tags 条目
// @Produce json
// @Security BearerAuth
// @Param id path int true "条目ID"
// @Success 200 {object} util.Response
// @Router /api/items/{id} [delete]
func (c *ItemController) RemoveItem(ctx *gin.Context) {
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

	if err := c.ReviewService.RemoveItem(claims.UserID, itemID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": itemID})
}

// @Summary 到期条目
// @Description next_review_at 不晚于当前时刻的条目
// @Tags 条目
// @Produce json
// @Security BearerAuth
// @Param asOf query string false "到期判定时间（RFC3339），缺省为当前时间"
// @Success 200 {object} util.Response
// @Router /api/items/due [get]
func (c *ItemController) GetDueItems(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var asOf time.Time
	if raw := ctx.Query("asOf"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			util.BadRequest(ctx, "asOf must be RFC3339")
			return
		}
		asOf = parsed
	}

	items, err := c.ReviewService.GetDueItems(claims.UserID, asOf)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// @Summary 提交一次练习
// @Description SM-2 推进条目状态，写复习日志，联动连续天数/成就/挑战
// @Tags 条目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "条目ID"
// @Param review body service.SubmitReviewRequest true "练习结果"
// @Success 200 {object} util.Response
// @Router /api/items/{id}/reviews [post]
func (c *ItemController) SubmitReview(ctx *gin.Context) {
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

	var req service.SubmitReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ReviewService.SubmitReview(ctx.Request.Context(), claims.UserID, itemID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
