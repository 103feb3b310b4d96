package controller

import (
	"memoverse_backend/internal/model"
	"memoverse_backend/internal/service"
	"memoverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	ChallengeService *service.ChallengeService
}

func NewChallengeController(challengeService *service.ChallengeService) *ChallengeController {
	return &ChallengeController{ChallengeService: challengeService}
}

// @Summary 挑战列表
// @Description 当前生效的挑战及用户进度
// @Tags 挑战
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/challenges [get]
func (c *ChallengeController) ListChallenges(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.ChallengeService.ListForUser(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// @Summary 领取挑战奖励
// @Description 仅已完成且未领取的挑战可领，重复领取返回 409
// @Tags 挑战
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Success 200 {object} util.Response
// @Router /api/challenges/{id}/claim [post]
func (c *ChallengeController) ClaimReward(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	challengeID := util.MustParseUint(ctx.Param("id"))
	if challengeID == 0 {
		util.BadRequest(ctx, "invalid challenge id")
		return
	}

	rewardXP, err := c.ChallengeService.ClaimReward(ctx.Request.Context(), claims.UserID, challengeID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"rewardXp": rewardXP})
}

type IncrementProgressRequest struct {
	TargetType model.ChallengeTargetType `json:"targetType" binding:"required"`
	Delta      int                       `json:"delta" binding:"required,min=1"`
}

// @Summary 上报挑战进度
// @Description 给当前用户所有匹配类型的生效挑战累加进度，只能操作本人数据
// @Tags 挑战
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param progress body IncrementProgressRequest true "进度增量"
// @Success 200 {object} util.Response
// @Router /api/challenges/progress [post]
func (c *ChallengeController) IncrementProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req IncrementProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !model.ValidChallengeTargetType(req.TargetType) {
		util.BadRequest(ctx, "unknown challenge target type")
		return
	}

	if err := c.ChallengeService.IncrementProgress(ctx.Request.Context(), claims.UserID, req.TargetType, req.Delta); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 创建挑战
// @Description 管理员接口，创建一期固定窗口或循环挑战
// @Tags 挑战
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param challenge body service.ChallengeDefinitionRequest true "挑战定义"
// @Success 201 {object} util.Response
// @Router /api/admin/challenges [post]
func (c *ChallengeController) CreateChallenge(ctx *gin.Context) {
	var req service.ChallengeDefinitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	def, err := c.ChallengeService.CreateDefinition(req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, def)
}
