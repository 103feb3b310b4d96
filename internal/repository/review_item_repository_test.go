package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"memoverse_backend/internal/model"
)

// newItemTestDB 内存库建表。MySQL 的 enum 列在这里用 text 代替，
// 唯一索引结构与生产一致，用于验证删除/重插的键行为
func newItemTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	ddl := []string{
		`CREATE TABLE review_items (
			id integer PRIMARY KEY AUTOINCREMENT,
			created_at datetime,
			updated_at datetime,
			deleted_at datetime,
			user_id integer NOT NULL,
			content_ref text NOT NULL,
			translation text NOT NULL DEFAULT 'default',
			ease_factor real DEFAULT 2.5,
			interval_days integer DEFAULT 0,
			repetitions integer DEFAULT 0,
			next_review_at datetime NOT NULL,
			last_reviewed_at datetime,
			total_reviews integer DEFAULT 0,
			mastery_level text DEFAULT 'beginner',
			times_perfect_recall integer DEFAULT 0,
			added_at datetime NOT NULL
		)`,
		`CREATE UNIQUE INDEX idx_item_user_content ON review_items (user_id, content_ref, translation)`,
		`CREATE TABLE review_records (
			id text PRIMARY KEY,
			created_at datetime,
			updated_at datetime,
			item_id integer NOT NULL,
			user_id integer NOT NULL,
			practice_mode text NOT NULL,
			quality_rating integer NOT NULL,
			confidence_rating integer,
			accuracy_percentage integer,
			hints_used integer DEFAULT 0,
			time_spent_seconds integer NOT NULL,
			ease_factor_after real NOT NULL,
			interval_days_after integer NOT NULL,
			repetitions_after integer NOT NULL,
			reviewed_at datetime NOT NULL
		)`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newTestItem(userID uint, ref string) *model.ReviewItem {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	return &model.ReviewItem{
		UserID:       userID,
		ContentRef:   ref,
		Translation:  "default",
		EaseFactor:   2.5,
		NextReviewAt: now.AddDate(0, 0, 1),
		MasteryLevel: model.MasteryBeginner,
		AddedAt:      now,
	}
}

func TestCreateRejectsDuplicateItem(t *testing.T) {
	repo := NewReviewItemRepository(newItemTestDB(t))

	require.NoError(t, repo.Create(newTestItem(1, "john.3.16")))

	err := repo.Create(newTestItem(1, "john.3.16"))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// 其他用户或其他内容不受影响
	assert.NoError(t, repo.Create(newTestItem(2, "john.3.16")))
	assert.NoError(t, repo.Create(newTestItem(1, "psalm.23.1")))
}

// 移除后必须能重新加入同一内容：删除留软删墓碑的话，
// 唯一索引会把后续插入一直顶成重复键
func TestDeleteWithRecordsFreesUniqueKey(t *testing.T) {
	db := newItemTestDB(t)
	repo := NewReviewItemRepository(db)
	recordRepo := NewReviewRecordRepository(db)

	item := newTestItem(1, "john.3.16")
	require.NoError(t, repo.Create(item))
	require.NoError(t, recordRepo.CreateTx(db, &model.ReviewRecord{
		ItemID:            item.ID,
		UserID:            1,
		PracticeMode:      model.ModeRead,
		QualityRating:     4,
		TimeSpentSeconds:  30,
		EaseFactorAfter:   2.5,
		IntervalDaysAfter: 1,
		RepetitionsAfter:  1,
		ReviewedAt:        time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	}))

	require.NoError(t, repo.DeleteWithRecords(item.ID, 1))

	// 复习日志级联清空
	count, err := recordRepo.CountByUser(1)
	require.NoError(t, err)
	assert.Zero(t, count)

	// 同一 (用户, 内容, 译本) 可以重新加入
	assert.NoError(t, repo.Create(newTestItem(1, "john.3.16")))

	items, err := repo.FindByUserID(1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestDeleteWithRecordsScopedToOwner(t *testing.T) {
	repo := NewReviewItemRepository(newItemTestDB(t))

	item := newTestItem(1, "john.3.16")
	require.NoError(t, repo.Create(item))

	// 非属主删除报未找到，条目保留
	err := repo.DeleteWithRecords(item.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	items, err := repo.FindByUserID(1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestDeleteWithRecordsUnknownItem(t *testing.T) {
	repo := NewReviewItemRepository(newItemTestDB(t))

	err := repo.DeleteWithRecords(404, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
