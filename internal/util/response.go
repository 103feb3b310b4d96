package util

import (
	"errors"
	"net/http"

	"memoverse_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// HandleServiceError 把业务错误映射为 HTTP 响应
// 校验类 400，未找到类 404，领取/并发冲突 409，其余 500
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidQuality),
		errors.Is(err, ErrInvalidMode),
		errors.Is(err, ErrInvalidTier),
		errors.Is(err, ErrInvalidTimeWindow),
		errors.Is(err, ErrInvalidTarget),
		errors.Is(err, ErrEmailRegistered):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrItemNotFound),
		errors.Is(err, ErrContentNotFound),
		errors.Is(err, ErrChallengeNotFound):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c)
	case errors.Is(err, ErrItemExists),
		errors.Is(err, ErrChallengeNotCompleted),
		errors.Is(err, ErrRewardAlreadyClaimed),
		errors.Is(err, ErrConcurrencyConflict):
		Conflict(c, err.Error())
	default:
		LogInternalError(c, err)
	}
}
