package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/haconeco/task-tracker/internal/domain"
	"github.com/haconeco/task-tracker/internal/mail"
)

const (
	defaultSMTPHost     = "localhost"
	defaultSMTPPort     = 25
	defaultSender       = "no-reply@example.com"
	notificationSubject = "Notification: Task Update"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NotificationConfig は通知メールの送信設定。
type NotificationConfig struct {
	Host   string
	Port   int
	UseTLS bool
	From   string
}

// NotificationOption はNotificationServiceの生成オプション。
type NotificationOption func(*NotificationService)

// WithTransport は配送手段を差し替える。指定時は Host/Port/UseTLS を使わない。
func WithTransport(transport mail.Transport) NotificationOption {
	return func(s *NotificationService) {
		s.transport = transport
	}
}

// WithNotificationLogger はロガーを設定する。
func WithNotificationLogger(logger *log.Logger) NotificationOption {
	return func(s *NotificationService) {
		s.logger = loggerOrDiscard(logger)
	}
}

// NotificationService はタスクの状態を知らせるメールを送信する。
type NotificationService struct {
	from      string
	transport mail.Transport
	logger    *log.Logger
	now       func() time.Time
}

// NewNotificationService は新しいNotificationServiceを生成する。
func NewNotificationService(cfg NotificationConfig, opts ...NotificationOption) *NotificationService {
	if cfg.Host == "" {
		cfg.Host = defaultSMTPHost
	}
	if cfg.Port == 0 {
		cfg.Port = defaultSMTPPort
	}
	if cfg.From == "" {
		cfg.From = defaultSender
	}

	s := &NotificationService{
		from:   cfg.From,
		logger: loggerOrDiscard(nil),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.transport == nil {
		s.transport = mail.NewSMTPTransport(cfg.Host, cfg.Port, cfg.UseTLS)
	}
	return s
}

// SendTaskNotification はタスクの状態をメールで通知し、配送できたかを返す。
// アドレスが不正な場合は送信を試みずに false を返す。配送エラーは false として報告し、
// 呼び出し元には返さない。
func (s *NotificationService) SendTaskNotification(ctx context.Context, email string, info domain.TaskInfo) (sent bool) {
	ctx, span := startSpan(ctx, "NotificationService.SendTaskNotification")
	defer func() {
		span.SetAttributes(attribute.Bool("notification.sent", sent))
		endSpan(span, nil)
	}()

	if !ValidEmail(email) {
		s.logger.WithField("email", email).Info("notification skipped: invalid email address")
		return false
	}

	status := info.Status(s.now())
	span.SetAttributes(attribute.String("task.status", string(status)))

	msg := mail.Message{
		From:    s.from,
		To:      []string{email},
		Subject: notificationSubject,
		Body:    fmt.Sprintf(`Task "%s" %s.`, info.Title, status),
	}

	if err := s.transport.Send(ctx, msg.From, msg.To, msg.Bytes()); err != nil {
		span.RecordError(err)
		s.logger.WithFields(log.Fields{
			"email":  email,
			"status": status,
			"error":  err,
		}).Warn("notification delivery failed")
		return false
	}

	s.logger.WithFields(log.Fields{
		"email":  email,
		"status": status,
	}).Debug("notification delivered")
	return true
}

// ValidEmail はメールアドレスが「ローカル部@ドット付きドメイン」の形式かを返す。
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
