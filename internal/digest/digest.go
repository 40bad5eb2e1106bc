package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/Theerthaprasad25/Job-Notification-App/internal/match"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/model"
	"github.com/Theerthaprasad25/Job-Notification-App/internal/storage"

	"go.uber.org/zap"
)

// DefaultTopN 是每日摘要的最大条目数。
const DefaultTopN = 10

// dateLayout 是摘要键使用的 ISO 日期格式。
const dateLayout = "2006-01-02"

// Store 定义持久化接口。
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Generator 按日历日生成并缓存匹配摘要。同一天重复触发直接
// 复用已存在的结果，除非显式强制重算。
type Generator struct {
	store   Store
	catalog []model.Job
	topN    int
	logger  *zap.Logger
	now     func() time.Time
}

// Option 调整 Generator 行为。
type Option func(*Generator)

// WithTopN 覆盖摘要条目上限。
func WithTopN(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.topN = n
		}
	}
}

// WithNow 注入时钟，测试用它模拟跨天。
func WithNow(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithLogger 注入日志器。
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator 创建 Generator，catalog 为会话内只读的职位目录。
func NewGenerator(store Store, catalog []model.Job, opts ...Option) *Generator {
	g := &Generator{
		store:   store,
		catalog: catalog,
		topN:    DefaultTopN,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Today 返回注入时钟下的当前 ISO 日期。
func (g *Generator) Today() string {
	return g.now().Format(dateLayout)
}

// GetForToday 只读取今天的摘要，其他日期的记录不可见。
// 记录不存在或无法解析时返回 nil。
func (g *Generator) GetForToday(ctx context.Context) (*model.Digest, error) {
	data, ok, err := g.store.Get(ctx, storage.DigestKey(g.Today()))
	if err != nil {
		return nil, fmt.Errorf("read digest: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var d model.Digest
	if err := json.Unmarshal(data, &d); err != nil {
		g.logger.Warn("stored digest unparsable, treating as absent", zap.Error(err))
		return nil, nil
	}
	return &d, nil
}

// Generate 对全目录打分并持久化今天的前 N 条。偏好不存在时
// 不生成任何内容；目录为空仍会生成空摘要并落盘。
func (g *Generator) Generate(ctx context.Context, prefs *model.Preferences) (*model.Digest, error) {
	if prefs == nil {
		return nil, nil
	}

	ranked := make([]model.ScoredJob, 0, len(g.catalog))
	for _, job := range g.catalog {
		ranked = append(ranked, model.ScoredJob{Job: job, MatchScore: match.Score(job, prefs)})
	}

	// 降序按分数，同分新鲜者优先。
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchScore != ranked[j].MatchScore {
			return ranked[i].MatchScore > ranked[j].MatchScore
		}
		return ranked[i].PostedDays(99) < ranked[j].PostedDays(99)
	})

	if len(ranked) > g.topN {
		ranked = ranked[:g.topN]
	}

	d := &model.Digest{Date: g.Today(), Jobs: ranked}

	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal digest: %w", err)
	}
	if err := g.store.Put(ctx, storage.DigestKey(d.Date), data); err != nil {
		return nil, fmt.Errorf("save digest: %w", err)
	}

	g.logger.Info("digest generated",
		zap.String("date", d.Date),
		zap.Int("jobs", len(d.Jobs)),
	)
	return d, nil
}

// GetOrGenerate 返回今天的摘要。force 为假且今天已有非空摘要时
// 原样复用，不重算也不重写；否则调用 Generate。
func (g *Generator) GetOrGenerate(ctx context.Context, prefs *model.Preferences, force bool) (*model.Digest, error) {
	if !force {
		existing, err := g.GetForToday(ctx)
		if err != nil {
			return nil, err
		}
		if existing != nil && len(existing.Jobs) > 0 {
			return existing, nil
		}
	}
	return g.Generate(ctx, prefs)
}
