package util

import "errors"

// 业务错误分类：
// 校验类在任何写操作前拒绝；未找到类原样上抛；
// 领取类冲突必须显式报错；并发冲突内部重试一次后作为瞬时错误上抛
var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrEmailRegistered   = errors.New("该邮箱已被注册")
	ErrItemNotFound      = errors.New("review item not found")
	ErrContentNotFound   = errors.New("content not found")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrPermissionDenied  = errors.New("permission denied")

	ErrInvalidQuality    = errors.New("quality rating must be between 0 and 5")
	ErrInvalidMode       = errors.New("unknown practice mode")
	ErrInvalidTier       = errors.New("unknown subscription tier")
	ErrInvalidTimeWindow = errors.New("challenge end must be after start")
	ErrInvalidTarget     = errors.New("target value must be positive")
	ErrItemExists        = errors.New("item already in memorization set")

	ErrChallengeNotCompleted = errors.New("challenge not completed yet")
	ErrRewardAlreadyClaimed  = errors.New("reward already claimed")

	ErrConcurrencyConflict = errors.New("concurrent update conflict, retry the request")
)
