package preference

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/Theerthaprasad25/Job-Notification-App/internal/model"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/storage"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// Store 定义持久化接口。
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// rawPreferences 承接宽松解码结果，集合字段先保持原始形状，
// 以便把非数组输入按规则降级为空集合。
type rawPreferences struct {
	RoleKeywords       string   `mapstructure:"roleKeywords"`
	PreferredLocations any      `mapstructure:"preferredLocations"`
	PreferredMode      any      `mapstructure:"preferredMode"`
	ExperienceLevel    string   `mapstructure:"experienceLevel"`
	Skills             string   `mapstructure:"skills"`
	MinMatchScore      *float64 `mapstructure:"minMatchScore"`
}

// Normalize 把任意形状的原始记录规整为完整的偏好记录。
// 每个字段都有确定性默认值，解析失败只会降级为默认值，从不报错。
func Normalize(raw map[string]any) model.Preferences {
	var in rawPreferences
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &in,
	})
	if err == nil {
		// 解码错误同样静默降级，已填充的字段保持有效。
		_ = decoder.Decode(raw)
	}

	return model.Preferences{
		RoleKeywords:       strings.TrimSpace(in.RoleKeywords),
		PreferredLocations: stringSet(in.PreferredLocations),
		PreferredMode:      stringSet(in.PreferredMode),
		ExperienceLevel:    strings.TrimSpace(in.ExperienceLevel),
		Skills:             strings.TrimSpace(in.Skills),
		MinMatchScore:      clampScore(in.MinMatchScore),
	}
}

// stringSet 仅接受数组输入，其余形状一律降级为空集合。
func stringSet(v any) []string {
	out := []string{}
	switch items := v.(type) {
	case []string:
		out = append(out, items...)
	case []any:
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func clampScore(v *float64) int {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return model.DefaultMinMatchScore
	}
	score := int(*v)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Service 负责读写持久化的偏好记录。
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService 创建偏好服务，logger 可为 nil。
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Get 读取已保存的偏好。记录不存在或无法解析时返回 nil，
// 调用方据此区分"从未设置"与具体偏好内容。
func (s *Service) Get(ctx context.Context) (*model.Preferences, error) {
	data, ok, err := s.store.Get(ctx, storage.KeyPreferences)
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("stored preferences unparsable, treating as absent", zap.Error(err))
		return nil, nil
	}

	prefs := Normalize(raw)
	return &prefs, nil
}

// Save 规整并持久化偏好记录，返回写入的规范形式。
func (s *Service) Save(ctx context.Context, raw map[string]any) (model.Preferences, error) {
	prefs := Normalize(raw)

	data, err := json.Marshal(prefs)
	if err != nil {
		return model.Preferences{}, fmt.Errorf("marshal preferences: %w", err)
	}
	if err := s.store.Put(ctx, storage.KeyPreferences, data); err != nil {
		return model.Preferences{}, fmt.Errorf("save preferences: %w", err)
	}

	s.logger.Info("preferences saved",
		zap.Int("min_match_score", prefs.MinMatchScore),
		zap.Int("preferred_locations", len(prefs.PreferredLocations)),
		zap.Int("preferred_modes", len(prefs.PreferredMode)),
	)
	return prefs, nil
}

// Reset 删除已保存的偏好，使其回到"从未设置"状态。
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Delete(ctx, storage.KeyPreferences); err != nil {
		return fmt.Errorf("reset preferences: %w", err)
	}
	s.logger.Info("preferences reset")
	return nil
}
