package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"memoverse_backend/internal/config"
	"memoverse_backend/internal/service"
	"memoverse_backend/internal/srs"
	"memoverse_backend/pkg/logger"
)

func TestApplyConfigRefreshesSchedulerAndRetention(t *testing.T) {
	logger.Log = zap.NewNop()

	review := service.NewReviewService(nil, nil, nil, nil, nil, nil, srs.Params{
		MinEaseFactor: 1.3,
		PassThreshold: 3,
	}, nil)

	cfg := &config.Config{}
	cfg.Retention.UnlockRecordDays = 30

	app := &App{Config: cfg}
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		review.UpdateParams(schedulerParams(newCfg))
	})

	newCfg := &config.Config{}
	newCfg.Scheduler.MinEaseFactor = 1.5
	newCfg.Scheduler.PassThreshold = 4
	newCfg.Retention.UnlockRecordDays = 7
	app.applyConfig(newCfg)

	// 保留窗口与调度参数即时生效
	assert.Equal(t, 7, app.retentionDays())
	assert.Equal(t, 1.5, review.Params.MinEaseFactor)
	assert.Equal(t, 4, review.Params.PassThreshold)
}

func TestApplyConfigDispatchesAllCallbacks(t *testing.T) {
	logger.Log = zap.NewNop()

	app := &App{Config: &config.Config{}}
	calls := 0
	app.RegisterConfigCallback(func(*config.Config) { calls++ })
	app.RegisterConfigCallback(func(*config.Config) { calls++ })

	app.applyConfig(&config.Config{})
	assert.Equal(t, 2, calls)
}
