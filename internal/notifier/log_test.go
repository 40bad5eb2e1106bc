package notifier

import (
	"context"
	"testing"

	"github.com/Theerthaprasad25/Job-Notification-App/internal/model"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogNotifierWritesOneEntryPerJob(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	d := &model.Digest{
		Date: "2024-06-01",
		Jobs: []model.ScoredJob{
			{Job: model.Job{Title: "React Developer", Company: "Acme"}, MatchScore: 45},
			{Job: model.Job{Title: "Go Developer", Company: "Globex"}, MatchScore: 40},
		},
	}
	if err := n.Notify(context.Background(), d); err != nil {
		t.Fatalf("Notify error: %v", err)
	}
	if logs.Len() != 2 {
		t.Fatalf("expected 2 log entries, got %d", logs.Len())
	}

	entry := logs.All()[0]
	if entry.ContextMap()["title"] != "React Developer" {
		t.Fatalf("unexpected first entry fields: %v", entry.ContextMap())
	}
}

func TestLogNotifierSkipsEmptyDigest(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	if err := n.Notify(context.Background(), nil); err != nil {
		t.Fatalf("Notify error: %v", err)
	}
	if logs.Len() != 0 {
		t.Fatalf("expected no entries for nil digest, got %d", logs.Len())
	}
}

func TestLogNotifierNilLogger(t *testing.T) {
	t.Parallel()

	n := NewLogNotifier(nil)
	if err := n.Notify(context.Background(), &model.Digest{Date: "2024-06-01", Jobs: []model.ScoredJob{{}}}); err != nil {
		t.Fatalf("Notify error: %v", err)
	}
}
