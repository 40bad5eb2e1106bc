package saved

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Theerthaprasad25/Job-Notification-App/internal/model"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/storage"

	"go.uber.org/zap"
)

// Store 定义持久化接口。
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Catalog 提供按 ID 的职位查找。
type Catalog interface {
	Get(id string) (model.Job, bool)
}

// Service 维护用户收藏的职位 ID 集合，保存顺序即浏览顺序。
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService 创建收藏服务，logger 可为 nil。
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// IDs 返回已收藏的职位 ID。记录不存在或无法解析时返回空集合。
func (s *Service) IDs(ctx context.Context) ([]string, error) {
	data, ok, err := s.store.Get(ctx, storage.KeySavedJobIDs)
	if err != nil {
		return nil, fmt.Errorf("read saved jobs: %w", err)
	}
	if !ok {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		s.logger.Warn("stored saved set unparsable, treating as empty", zap.Error(err))
		return []string{}, nil
	}
	return ids, nil
}

// Add 收藏一个职位 ID，首次写入时创建记录，重复收藏无副作用。
func (s *Service) Add(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("job id required")
	}

	ids, err := s.IDs(ctx)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}

	return s.write(ctx, append(ids, id))
}

// Remove 取消收藏，ID 不在集合中时静默成功。
func (s *Service) Remove(ctx context.Context, id string) error {
	ids, err := s.IDs(ctx)
	if err != nil {
		return err
	}

	kept := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(ids) {
		return nil
	}

	return s.write(ctx, kept)
}

// Jobs 按收藏顺序解析职位，目录中已不存在的 ID 被跳过。
func (s *Service) Jobs(ctx context.Context, catalog Catalog) ([]model.Job, error) {
	ids, err := s.IDs(ctx)
	if err != nil {
		return nil, err
	}

	jobs := make([]model.Job, 0, len(ids))
	for _, id := range ids {
		if job, ok := catalog.Get(id); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func (s *Service) write(ctx context.Context, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal saved jobs: %w", err)
	}
	if err := s.store.Put(ctx, storage.KeySavedJobIDs, data); err != nil {
		return fmt.Errorf("save saved jobs: %w", err)
	}
	return nil
}
