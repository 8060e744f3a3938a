// Package settings provides the admin endpoints for named application
// settings (site title, intake form texts, and similar).
package settings

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/volunteerhub/volunteerhub/internal/auth"
	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/controller/setting"
	"github.com/volunteerhub/volunteerhub/internal/perm"
	"github.com/volunteerhub/volunteerhub/internal/web/handler"
)

// Path is the base path for application settings.
const Path = handler.APIPath + "/admin/settings"

// Service provides application setting operations.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path,
		auth.RequirePermission(authService, perm.KeyUsersEdit),
		s.List,
	)
	app.Put(Path+"/:name",
		auth.RequirePermission(authService, perm.KeyUsersEdit),
		s.Set,
	)
	app.Delete(Path+"/:name",
		auth.RequirePermission(authService, perm.KeyUsersEdit),
		s.Delete,
	)
}

// Entry is one named setting.
type Entry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// List returns all settings.
func (s *Service) List(c *fiber.Ctx) error {
	settings, err := setting.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load settings"})
	}

	entries := make([]Entry, 0, len(settings))
	for _, item := range settings {
		entries = append(entries, Entry{Name: item.Name, Value: string(item.Value)})
	}

	return c.JSON(fiber.Map{"settings": entries})
}

type setRequest struct {
	Value string `json:"value"`
}

// Set creates or updates one named setting.
func (s *Service) Set(c *fiber.Ctx) error {
	name := c.Params("name")

	var in setRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	saved, err := setting.Set(s.db, name, []byte(in.Value))
	if err != nil {
		if errors.Is(err, setting.ErrSettingNameEmpty) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Str("setting", name).Msg("failed to save setting")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save setting"})
	}

	return c.JSON(Entry{Name: saved.Name, Value: string(saved.Value)})
}

// Delete removes one named setting.
func (s *Service) Delete(c *fiber.Ctx) error {
	name := c.Params("name")

	if err := setting.DeleteByName(s.db, name); err != nil {
		switch {
		case errors.Is(err, setting.ErrSettingNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, setting.ErrSettingNameEmpty):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Str("setting", name).Msg("failed to delete setting")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete setting"})
	}

	return c.JSON(fiber.Map{"ok": true})
}
