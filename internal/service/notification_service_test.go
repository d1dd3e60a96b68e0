package service

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"go.opentelemetry.io/otel/attribute"

	"github.com/haconeco/task-tracker/internal/domain"
	"github.com/haconeco/task-tracker/internal/mail"
)

type sentMail struct {
	from string
	to   []string
	msg  string
}

type fakeTransport struct {
	err  error
	sent []sentMail
}

func (f *fakeTransport) Send(ctx context.Context, from string, to []string, msg []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{from: from, to: to, msg: string(msg)})
	return nil
}

func newTestNotificationService(transport mail.Transport, logger *log.Logger) *NotificationService {
	svc := NewNotificationService(NotificationConfig{}, WithTransport(transport), WithNotificationLogger(logger))
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestSendTaskNotification(t *testing.T) {
	past := fixedNow.Add(-time.Hour)
	future := fixedNow.Add(24 * time.Hour)

	tests := []struct {
		name   string
		info   domain.TaskInfo
		status string
	}{
		{"created", domain.TaskInfo{Title: "Test Task", Deadline: &future}, "created"},
		{"no deadline", domain.TaskInfo{Title: "Test Task"}, "created"},
		{"overdue", domain.TaskInfo{Title: "Test Task", Deadline: &past}, "overdue"},
		{"completed", domain.TaskInfo{Title: "Test Task", Deadline: &past, Completed: true}, "completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &fakeTransport{}
			svc := newTestNotificationService(transport, nil)

			if !svc.SendTaskNotification(context.Background(), "test@example.com", tt.info) {
				t.Fatalf("expected successful send")
			}
			if len(transport.sent) != 1 {
				t.Fatalf("expected 1 message, got %d", len(transport.sent))
			}
			sent := transport.sent[0]
			if sent.from != "no-reply@example.com" {
				t.Errorf("unexpected sender: %s", sent.from)
			}
			if len(sent.to) != 1 || sent.to[0] != "test@example.com" {
				t.Errorf("unexpected recipients: %v", sent.to)
			}
			if !strings.Contains(sent.msg, `Task "Test Task" `+tt.status+".") {
				t.Errorf("expected status %s in message %q", tt.status, sent.msg)
			}
			if !strings.Contains(sent.msg, "Subject: Notification: Task Update\r\n") {
				t.Errorf("missing subject in %q", sent.msg)
			}
		})
	}
}

func TestSendTaskNotificationKeepsTitleVerbatim(t *testing.T) {
	transport := &fakeTransport{}
	svc := newTestNotificationService(transport, nil)

	info := domain.TaskInfo{Title: `He said "hi"`, Completed: true}
	if !svc.SendTaskNotification(context.Background(), "test@example.com", info) {
		t.Fatalf("expected successful send")
	}
	want := `Task "He said "hi"" completed.`
	if len(transport.sent) != 1 || !strings.Contains(transport.sent[0].msg, want) {
		t.Fatalf("expected %q in %v", want, transport.sent)
	}
}

func TestSendTaskNotificationInvalidEmail(t *testing.T) {
	logger, hook := test.NewNullLogger()
	transport := &fakeTransport{}
	svc := newTestNotificationService(transport, logger)

	for _, email := range []string{"bad-email", "", "@example.com", "user@", "user@localhost", "a b@example.com"} {
		if svc.SendTaskNotification(context.Background(), email, domain.TaskInfo{Title: "X"}) {
			t.Errorf("%q: expected false", email)
		}
	}
	if len(transport.sent) != 0 {
		t.Fatalf("transport must not be called for invalid addresses")
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != log.InfoLevel {
		t.Fatalf("expected info log for skipped notification, got %#v", entry)
	}
}

func TestSendTaskNotificationTransportFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	transport := &fakeTransport{err: errors.New("connection refused")}
	svc := newTestNotificationService(transport, logger)

	if svc.SendTaskNotification(context.Background(), "test@example.com", domain.TaskInfo{Title: "X"}) {
		t.Fatalf("expected false when transport fails")
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != log.WarnLevel {
		t.Fatalf("expected warn log, got %#v", entry)
	}
	if err, ok := entry.Data["error"].(error); !ok || err.Error() != "connection refused" {
		t.Fatalf("expected transport error in log fields, got %#v", entry.Data["error"])
	}
}

func TestSendTaskNotificationSMTPUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()

	svc := NewNotificationService(NotificationConfig{Host: "127.0.0.1", Port: port})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if svc.SendTaskNotification(ctx, "test@example.com", domain.TaskInfo{Title: "X"}) {
		t.Fatalf("expected false for unreachable smtp server")
	}
}

func TestNewNotificationServiceDefaults(t *testing.T) {
	svc := NewNotificationService(NotificationConfig{})
	smtp, ok := svc.transport.(*mail.SMTPTransport)
	if !ok {
		t.Fatalf("expected SMTP transport, got %T", svc.transport)
	}
	if smtp.Host != "localhost" || smtp.Port != 25 || smtp.UseTLS {
		t.Fatalf("unexpected transport defaults: %+v", smtp)
	}
	if svc.from != "no-reply@example.com" {
		t.Fatalf("unexpected sender: %s", svc.from)
	}

	svc = NewNotificationService(NotificationConfig{Host: "mail", Port: 465, UseTLS: true, From: "x@example.com"})
	smtp = svc.transport.(*mail.SMTPTransport)
	if smtp.Addr() != "mail:465" || !smtp.UseTLS {
		t.Fatalf("unexpected transport: %+v", smtp)
	}
}

func TestSendTaskNotificationSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	svc := newTestNotificationService(&fakeTransport{}, nil)

	svc.SendTaskNotification(context.Background(), "test@example.com", domain.TaskInfo{Title: "X", Completed: true})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range spans[0].Attributes {
		attrs[kv.Key] = kv.Value
	}
	if v, ok := attrs["notification.sent"]; !ok || !v.AsBool() {
		t.Fatalf("expected notification.sent=true, got %#v", attrs)
	}
	if v := attrs["task.status"]; v.AsString() != "completed" {
		t.Fatalf("expected task.status=completed, got %q", v.AsString())
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "first.last+tag@sub.example.org"}
	for _, email := range valid {
		if !ValidEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}
}
