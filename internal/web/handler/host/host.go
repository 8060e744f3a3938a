// Package host provides CRUD endpoints for host families and partner
// organizations.
package host

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/volunteerhub/volunteerhub/internal/auth"
	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/perm"
	"github.com/volunteerhub/volunteerhub/internal/web/handler"
)

// Path is the base path for host management.
const Path = handler.APIPath + "/hosts"

// Service provides CRUD operations for hosts.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
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
	s.validator = validator.New()

	app.Get(Path,
		auth.RequirePermission(authService, perm.KeyHostsView),
		s.List,
	)
	app.Post(Path,
		auth.RequirePermission(authService, perm.KeyHostsCreate),
		s.Create,
	)
	app.Get(Path+"/:id",
		auth.RequirePermission(authService, perm.KeyHostsView),
		s.Get,
	)
	app.Put(Path+"/:id",
		auth.RequirePermission(authService, perm.KeyHostsEdit),
		s.Update,
	)
	app.Delete(Path+"/:id",
		auth.RequirePermission(authService, perm.KeyHostsDelete),
		s.Delete,
	)
}

type hostBody struct {
	Name        string `json:"name"        validate:"required,max=255"`
	ContactName string `json:"contactName" validate:"max=255"`
	Email       string `json:"email"       validate:"omitempty,email,max=255"`
	Phone       string `json:"phone"       validate:"max=50"`
	Street      string `json:"street"      validate:"max=255"`
	City        string `json:"city"        validate:"max=100"`
	PostalCode  string `json:"postalCode"  validate:"max=20"`
	Capacity    int    `json:"capacity"    validate:"gte=0"`
	Active      *bool  `json:"active"`
	Notes       string `json:"notes"`
}

func (in *hostBody) apply(host *models.Host) {
	host.Name = in.Name
	host.ContactName = in.ContactName
	host.Email = in.Email
	host.Phone = in.Phone
	host.Street = in.Street
	host.City = in.City
	host.PostalCode = in.PostalCode
	host.Capacity = in.Capacity
	host.Notes = in.Notes

	if in.Active != nil {
		host.Active = *in.Active
	}
}

// List returns all hosts, optionally filtered to active ones.
func (s *Service) List(c *fiber.Ctx) error {
	var hosts []models.Host

	tx := s.db.Order("name ASC")
	if c.QueryBool("active", false) {
		tx = tx.Where("active = ?", true)
	}

	if err := tx.Find(&hosts).Error; err != nil {
		log.Error().Err(err).Msg("query hosts failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load hosts"})
	}

	return c.JSON(fiber.Map{"hosts": hosts})
}

// Create adds a new host.
func (s *Service) Create(c *fiber.Ctx) error {
	var in hostBody
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := s.validator.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	host := models.Host{Active: true}
	in.apply(&host)

	if err := s.db.Create(&host).Error; err != nil {
		log.Error().Err(err).Msg("create host failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create host"})
	}

	return c.Status(fiber.StatusCreated).JSON(host)
}

// Get returns a single host.
func (s *Service) Get(c *fiber.Ctx) error {
	host, ok := s.loadHost(c)
	if !ok {
		return nil
	}

	return c.JSON(host)
}

// Update edits a host.
func (s *Service) Update(c *fiber.Ctx) error {
	host, ok := s.loadHost(c)
	if !ok {
		return nil
	}

	var in hostBody
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := s.validator.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	in.apply(host)

	if err := s.db.Save(host).Error; err != nil {
		log.Error().Err(err).Uint64("host_id", host.ID).Msg("update host failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update host"})
	}

	return c.JSON(host)
}

// Delete removes a host.
func (s *Service) Delete(c *fiber.Ctx) error {
	host, ok := s.loadHost(c)
	if !ok {
		return nil
	}

	if err := s.db.Delete(&models.Host{}, host.ID).Error; err != nil {
		log.Error().Err(err).Uint64("host_id", host.ID).Msg("delete host failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete host"})
	}

	return c.JSON(fiber.Map{"ok": true})
}

func (s *Service) loadHost(c *fiber.Ctx) (*models.Host, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid host id"})
		return nil, false
	}

	var host models.Host
	if err := s.db.First(&host, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Host not found"})
			return nil, false
		}

		log.Error().Err(err).Uint64("host_id", id).Msg("failed to load host")

		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load host"})

		return nil, false
	}

	return &host, true
}
