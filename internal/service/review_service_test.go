package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"memoverse_backend/internal/model"
	"memoverse_backend/internal/repository"
	"memoverse_backend/internal/srs"
	"memoverse_backend/pkg/logger"
)

// 挑战进度是提交链路的旁支，失败不阻断提交，但必须留下日志
func TestBumpChallengeLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger.Log = zap.New(core)

	// 空库没有挑战表，活动挑战查询必然报错
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	challenge := NewChallengeService(repository.NewChallengeRepository(db), nil, nil)
	review := NewReviewService(nil, nil, nil, nil, nil, challenge, srs.Params{}, nil)

	review.bumpChallenge(context.Background(), 7, model.TargetReviews)

	entries := logs.FilterMessage("challenge progress update failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, string(model.TargetReviews), entries[0].ContextMap()["targetType"])
}

func TestUpdateParamsSwapsSchedulerParams(t *testing.T) {
	review := NewReviewService(nil, nil, nil, nil, nil, nil, srs.Params{
		MinEaseFactor: 1.3,
		PassThreshold: 3,
	}, nil)

	review.UpdateParams(srs.Params{MinEaseFactor: 1.5, PassThreshold: 4})

	got := review.schedulerParams()
	assert.Equal(t, 1.5, got.MinEaseFactor)
	assert.Equal(t, 4, got.PassThreshold)
}
