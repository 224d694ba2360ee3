package services

import (
	"fmt"

	"fiber-erp/config"
	"fiber-erp/models"
	"fiber-erp/utils"

	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// NotificationSink records workflow events. Recording is
// fire-and-forget: a sink failure must never fail the operation that
// produced the event.
type NotificationSink interface {
	Record(event models.AuditEvent)
}

// Notifier fans an event out to the audit table, the log, and (when
// SMTP is configured) a mail recipient.
type Notifier struct {
	db     *gorm.DB
	dialer *gomail.Dialer
}

func NewNotifier(db *gorm.DB) *Notifier {
	n := &Notifier{db: db}
	if config.SMTPHost != "" {
		n.dialer = gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)
	}
	return n
}

func (n *Notifier) Record(event models.AuditEvent) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				utils.Log.WithField("panic", r).Error("notification sink panicked")
			}
		}()

		utils.Log.WithFields(map[string]interface{}{
			"type":     event.Type,
			"actor":    event.ActorID,
			"document": event.DocumentID,
		}).Info("workflow event")

		if err := n.db.Create(&event).Error; err != nil {
			utils.Log.WithError(err).Warn("audit event not persisted")
		}

		if n.dialer != nil && config.NotifyEmail != "" {
			m := gomail.NewMessage()
			m.SetHeader("From", config.SMTPFrom)
			m.SetHeader("To", config.NotifyEmail)
			m.SetHeader("Subject", fmt.Sprintf("[ERP] %s %s", event.Type, event.DocumentID))
			m.SetBody("text/plain", event.Payload)
			if err := n.dialer.DialAndSend(m); err != nil {
				utils.Log.WithError(err).Warn("notification mail not sent")
			}
		}
	}()
}
