package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"memoverse_backend/internal/model"
	"memoverse_backend/internal/repository"
	"memoverse_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const contentCacheTTL = 12 * time.Hour

// ContentService 记忆内容元数据查找，仅展示用途
// 正文管理属于内容系统，这里只读 + 缓存
type ContentService struct {
	ContentRepo *repository.ContentRepository
	Redis       *redis.Client
}

func NewContentService(contentRepo *repository.ContentRepository, rdb *redis.Client) *ContentService {
	return &ContentService{
		ContentRepo: contentRepo,
		Redis:       rdb,
	}
}

func (s *ContentService) Lookup(ctx context.Context, ref, translation string) (*model.Content, error) {
	if translation == "" {
		translation = "default"
	}

	key := fmt.Sprintf("memoverse:content:%s:%s", ref, translation)
	if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
		var content model.Content
		if json.Unmarshal([]byte(cached), &content) == nil {
			return &content, nil
		}
	}

	content, err := s.ContentRepo.FindByRef(ref, translation)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(content); err == nil {
		s.Redis.Set(ctx, key, payload, contentCacheTTL)
	}
	return content, nil
}

func (s *ContentService) Search(query string, limit int) ([]model.Content, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.ContentRepo.Search(query, limit)
}
