package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore 用 Redis 字符串实现与 Store 相同的键值契约，
// 适合多实例共享同一份偏好与摘要记录的部署。
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 解析 redisURL 并校验连通性。
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Close 关闭客户端连接。
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Get 按键读取记录，返回序列化内容与是否存在。
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get record %q: %w", key, err)
	}
	return val, true, nil
}

// Put 写入记录，已存在则整体覆盖。记录不设过期时间。
func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("put record %q: %w", key, err)
	}
	return nil
}

// Delete 删除记录，键不存在时静默成功。
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete record %q: %w", key, err)
	}
	return nil
}
