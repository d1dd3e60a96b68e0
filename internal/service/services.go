package service

import (
	log "github.com/sirupsen/logrus"

	"github.com/haconeco/task-tracker/internal/config"
	"github.com/haconeco/task-tracker/internal/repository"
)

// Services は全サービスを束ねる構造体。
type Services struct {
	Task         *TaskService
	Invoice      *InvoiceService
	Notification *NotificationService
}

// NewServices は設定に基づいて全サービスを初期化する。
func NewServices(repos *repository.Repositories, cfg *config.Config, logger *log.Logger, opts ...NotificationOption) *Services {
	notifyOpts := append([]NotificationOption{WithNotificationLogger(logger)}, opts...)

	return &Services{
		Task:    NewTaskService(repos.Task, repos.Project, logger),
		Invoice: NewInvoiceService(cfg.Invoice.Currencies),
		Notification: NewNotificationService(NotificationConfig{
			Host:   cfg.SMTP.Host,
			Port:   cfg.SMTP.Port,
			UseTLS: cfg.SMTP.UseTLS,
			From:   cfg.SMTP.From,
		}, notifyOpts...),
	}
}
