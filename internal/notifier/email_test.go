package notifier

import (
	"context"
	"strings"
	"testing"

	"github.com/Theerthaprasad25/Job-Notification-App/internal/model"
)

type stubSender struct {
	sent []EmailMessage
	err  error
}

func (s *stubSender) Send(_ context.Context, msg EmailMessage) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func testDigest() *model.Digest {
	return &model.Digest{
		Date: "2024-06-01",
		Jobs: []model.ScoredJob{
			{Job: model.Job{Title: "React Developer", Company: "Acme", ApplyURL: "https://example.com/1"}, MatchScore: 45},
		},
	}
}

func TestEmailNotifierSendsDigestText(t *testing.T) {
	t.Parallel()

	sender := &stubSender{}
	n := NewEmailNotifier(EmailConfig{From: "digest@example.com", To: []string{"me@example.com"}}, sender)

	if err := n.Notify(context.Background(), testDigest()); err != nil {
		t.Fatalf("Notify error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.sent))
	}

	msg := sender.sent[0]
	if msg.Subject != "Your daily job matches" {
		t.Fatalf("expected default subject, got %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "Generated on 2024-06-01") {
		t.Fatalf("expected digest date in body:\n%s", msg.Body)
	}
	if !strings.Contains(msg.Body, "React Developer at Acme") {
		t.Fatalf("expected job line in body:\n%s", msg.Body)
	}
}

func TestEmailNotifierSkipsEmptyDigest(t *testing.T) {
	t.Parallel()

	sender := &stubSender{}
	n := NewEmailNotifier(EmailConfig{From: "digest@example.com", To: []string{"me@example.com"}}, sender)

	if err := n.Notify(context.Background(), &model.Digest{Date: "2024-06-01"}); err != nil {
		t.Fatalf("Notify error: %v", err)
	}
	if err := n.Notify(context.Background(), nil); err != nil {
		t.Fatalf("Notify nil error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no messages for empty digest, got %d", len(sender.sent))
	}
}

func TestBuildEmailDataHeaders(t *testing.T) {
	t.Parallel()

	data := buildEmailData(EmailMessage{
		From:    "digest@example.com",
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "Your daily job matches",
		Body:    "hello",
	})
	if !strings.Contains(data, "To: a@example.com,b@example.com\r\n") {
		t.Fatalf("expected joined recipients, got:\n%s", data)
	}
	if !strings.HasSuffix(data, "\r\n\r\nhello") {
		t.Fatalf("expected body after blank line, got:\n%s", data)
	}
}
