package notifier

import (
	"context"

	"github.com/Theerthaprasad25/Job-Notification-App/internal/model"

	"go.uber.org/zap"
)

// LogNotifier 仅记录摘要概况，适合开发阶段使用。
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier 创建日志通知器，未提供 logger 时静默丢弃。
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify 逐条记录摘要职位。
func (n LogNotifier) Notify(ctx context.Context, d *model.Digest) error {
	if d == nil || len(d.Jobs) == 0 {
		return nil
	}
	for _, job := range d.Jobs {
		n.logger.Info("digest job",
			zap.String("date", d.Date),
			zap.String("title", job.Title),
			zap.String("company", job.Company),
			zap.Int("match_score", job.MatchScore),
		)
	}
	return nil
}
