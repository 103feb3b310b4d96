package controller

import (
	"strconv"

	"memoverse_backend/internal/service"
	"memoverse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// @Summary 查询内容
// @Description 按引用与译本取单条内容
// @Tags 内容
// @Produce json
// @Security BearerAuth
// @Param ref query string true "内容引用"
// @Param translation query string false "译本" default(default)
// @Success 200 {object} util.Response
// @Router /api/contents [get]
func (c *ContentController) Lookup(ctx *gin.Context) {
	ref := ctx.Query("ref")
	if ref == "" {
		util.BadRequest(ctx, "ref is required")
		return
	}
	translation := ctx.DefaultQuery("translation", "default")

	content, err := c.ContentService.Lookup(ctx.Request.Context(), ref, translation)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, content)
}

// @Summary 搜索内容
// @Tags 内容
// @Produce json
// @Security BearerAuth
// @Param q query string true "关键词"
// @Param limit query int false "返回条数" default(20)
// @Success 200 {object} util.Response
// @Router /api/contents/search [get]
func (c *ContentController) Search(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		util.BadRequest(ctx, "q is required")
		return
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	contents, err := c.ContentService.Search(query, limit)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, contents)
}
