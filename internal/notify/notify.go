// Package notify sends e-mail notifications to volunteers and hosts.
//
// Every outgoing message is persisted as a models.Notification row before
// delivery, keyed by a dedup UUID, so sends are auditable and a failed
// delivery can be retried without double-sending.
package notify

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"

	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
)

// ErrDisabled is returned when delivery is attempted while SMTP is disabled.
var ErrDisabled = errors.New("smtp delivery is disabled")

// Service queues and delivers notifications.
type Service struct {
	db      *gorm.DB
	dialer  *gomail.Dialer
	from    string
	enabled bool
}

// NewService creates a notification service. When SMTP is disabled in the
// configuration, notifications are still recorded but never delivered.
func NewService(db *gorm.DB, cfg config.SMTP) *Service {
	s := &Service{
		db:      db,
		from:    cfg.From,
		enabled: cfg.Enabled,
	}

	if cfg.Enabled {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}

	return s
}

// Queue records a notification for delivery. The dedupID identifies the
// logical message; queueing the same dedupID twice is a no-op and returns
// the existing row.
func (s *Service) Queue(recipient, subject, body, dedupID string) (*models.Notification, error) {
	if dedupID == "" {
		dedupID = uuid.NewString()
	}

	var existing models.Notification

	err := s.db.Where("dedup_id = ?", dedupID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for duplicate notification: %w", err)
	}

	notification := models.Notification{
		DedupID:        dedupID,
		RecipientEmail: recipient,
		Subject:        subject,
		Body:           body,
		Status:         models.NotificationPending,
	}

	if err := s.db.Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("failed to queue notification: %w", err)
	}

	return &notification, nil
}

// Send delivers one queued notification and records the outcome.
func (s *Service) Send(notification *models.Notification) error {
	if !s.enabled {
		return ErrDisabled
	}

	message := gomail.NewMessage()
	message.SetHeader("From", s.from)
	message.SetHeader("To", notification.RecipientEmail)
	message.SetHeader("Subject", notification.Subject)
	message.SetBody("text/plain", notification.Body)

	if err := s.dialer.DialAndSend(message); err != nil {
		s.markFailed(notification, err)

		return fmt.Errorf("failed to send notification %d: %w", notification.ID, err)
	}

	now := time.Now()
	notification.Status = models.NotificationSent
	notification.LastError = ""
	notification.SentAt = &now

	return s.db.Model(notification).Updates(map[string]interface{}{
		"status":     models.NotificationSent,
		"last_error": "",
		"sent_at":    &now,
	}).Error
}

// QueueAndSend records a notification and attempts immediate delivery.
// Delivery failures are logged, not returned: the row stays retryable.
func (s *Service) QueueAndSend(recipient, subject, body, dedupID string) {
	notification, err := s.Queue(recipient, subject, body, dedupID)
	if err != nil {
		log.Error().Err(err).Str("recipient", recipient).Msg("failed to queue notification")
		return
	}

	if notification.Status == models.NotificationSent {
		return
	}

	if err := s.Send(notification); err != nil {
		if errors.Is(err, ErrDisabled) {
			log.Debug().Str("recipient", recipient).Msg("smtp disabled, notification left pending")
			return
		}

		log.Error().Err(err).Uint64("notification_id", notification.ID).Msg("notification delivery failed")
	}
}

// SendPending retries delivery of all pending and failed notifications.
// It returns the number of successful sends.
func (s *Service) SendPending() (int, error) {
	if !s.enabled {
		return 0, ErrDisabled
	}

	var queued []models.Notification

	err := s.db.Where("status IN ?",
		[]models.NotificationStatus{models.NotificationPending, models.NotificationFailed}).
		Order("created_at ASC").
		Find(&queued).Error
	if err != nil {
		return 0, fmt.Errorf("failed to load queued notifications: %w", err)
	}

	sent := 0

	for i := range queued {
		if err := s.Send(&queued[i]); err != nil {
			log.Warn().Err(err).Uint64("notification_id", queued[i].ID).Msg("retry failed")
			continue
		}

		sent++
	}

	return sent, nil
}

func (s *Service) markFailed(notification *models.Notification, sendErr error) {
	notification.Status = models.NotificationFailed
	notification.LastError = sendErr.Error()

	err := s.db.Model(notification).Updates(map[string]interface{}{
		"status":     models.NotificationFailed,
		"last_error": sendErr.Error(),
	}).Error
	if err != nil {
		log.Error().Err(err).Uint64("notification_id", notification.ID).Msg("failed to record delivery error")
	}
}
