package database

import (
	"context"
	"fmt"
	"log"
	"memoverse_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis 连接失败直接返回错误，由调用方决定是否终止启动
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50, // 读多写少，缓存命中是主路径
		MinIdleConns: 5,
	})

	ctx := context.Background()
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	log.Println("Redis connection established")
	return rdb, nil
}
