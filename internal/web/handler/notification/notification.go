// Package notification provides endpoints for the outgoing notification
// log and manual retries.
package notification

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/volunteerhub/volunteerhub/internal/auth"
	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/notify"
	"github.com/volunteerhub/volunteerhub/internal/perm"
	"github.com/volunteerhub/volunteerhub/internal/web/handler"
)

const (
	// Path is the base path for the notification log.
	Path = handler.APIPath + "/notifications"

	// listLimit bounds the notification log response.
	listLimit = 200
)

// Service provides notification log operations.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	notifier *notify.Service
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authService *auth.Service,
	notifier *notify.Service,
) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.notifier = notifier

	app.Get(Path,
		auth.RequirePermission(authService, perm.KeyNotificationsView),
		s.List,
	)
	app.Post(Path+"/send",
		auth.RequirePermission(authService, perm.KeyNotificationsSend),
		s.Send,
	)
	app.Post(Path+"/retry",
		auth.RequirePermission(authService, perm.KeyNotificationsSend),
		s.Retry,
	)
}

// List returns the most recent notifications, optionally filtered by status.
func (s *Service) List(c *fiber.Ctx) error {
	var notifications []models.Notification

	tx := s.db.Order("created_at DESC").Limit(listLimit)
	if status := c.Query("status", ""); status != "" {
		tx = tx.Where("status = ?", status)
	}

	if err := tx.Find(&notifications).Error; err != nil {
		log.Error().Err(err).Msg("query notifications failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load notifications"})
	}

	return c.JSON(fiber.Map{"notifications": notifications})
}

type sendRequest struct {
	RecipientEmail string `json:"recipientEmail"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
}

// Send queues and delivers a one-off notification.
func (s *Service) Send(c *fiber.Ctx) error {
	var in sendRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if in.RecipientEmail == "" || in.Subject == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Recipient and subject are required"})
	}

	notification, err := s.notifier.Queue(in.RecipientEmail, in.Subject, in.Body, "")
	if err != nil {
		log.Error().Err(err).Msg("failed to queue notification")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to queue notification"})
	}

	if err := s.notifier.Send(notification); err != nil && !errors.Is(err, notify.ErrDisabled) {
		log.Error().Err(err).Uint64("notification_id", notification.ID).Msg("notification delivery failed")
	}

	return c.Status(fiber.StatusCreated).JSON(notification)
}

// Retry re-attempts delivery of all pending and failed notifications.
func (s *Service) Retry(c *fiber.Ctx) error {
	sent, err := s.notifier.SendPending()
	if err != nil {
		if errors.Is(err, notify.ErrDisabled) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": notify.ErrDisabled.Error()})
		}

		log.Error().Err(err).Msg("notification retry failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retry notifications"})
	}

	return c.JSON(fiber.Map{"sent": sent})
}
