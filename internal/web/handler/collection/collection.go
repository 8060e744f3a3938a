// Package collection provides endpoints for donation and supply collection
// tracking.
package collection

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/volunteerhub/volunteerhub/internal/auth"
	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/perm"
	"github.com/volunteerhub/volunteerhub/internal/web/handler"
)

// Path is the base path for collection tracking.
const Path = handler.APIPath + "/collections"

// Service provides collection entry operations.
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
		auth.RequirePermission(authService, perm.KeyCollectionsView),
		s.List,
	)
	app.Get(Path+"/totals",
		auth.RequirePermission(authService, perm.KeyCollectionsView),
		s.Totals,
	)
	app.Post(Path,
		auth.RequirePermission(authService, perm.KeyCollectionsRecord),
		s.Create,
	)
	app.Put(Path+"/:id",
		auth.RequirePermission(authService, perm.KeyCollectionsEdit),
		s.Update,
	)
	app.Delete(Path+"/:id",
		auth.RequirePermission(authService, perm.KeyCollectionsDelete),
		s.Delete,
	)
}

// List returns collection entries, newest first, optionally filtered by host.
func (s *Service) List(c *fiber.Ctx) error {
	var entries []models.Collection

	tx := s.db.Order("collected_on DESC")
	if hostID := c.QueryInt("hostId", 0); hostID > 0 {
		tx = tx.Where("host_id = ?", hostID)
	}

	if err := tx.Find(&entries).Error; err != nil {
		log.Error().Err(err).Msg("query collections failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load collections"})
	}

	return c.JSON(fiber.Map{"collections": entries})
}

// Total is the aggregated quantity of one item/unit pair.
type Total struct {
	Item     string `json:"item"`
	Unit     string `json:"unit"`
	Quantity int64  `json:"quantity"`
	Entries  int64  `json:"entries"`
}

// Totals aggregates collected quantities per item and unit.
func (s *Service) Totals(c *fiber.Ctx) error {
	var totals []Total

	err := s.db.Model(&models.Collection{}).
		Select("item, unit, SUM(quantity) AS quantity, COUNT(*) AS entries").
		Group("item").Group("unit").
		Order("item ASC").
		Scan(&totals).Error
	if err != nil {
		log.Error().Err(err).Msg("aggregate collections failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to aggregate collections"})
	}

	return c.JSON(fiber.Map{"totals": totals})
}

type collectionBody struct {
	HostID      *uint64   `json:"hostId"`
	Item        string    `json:"item"`
	Quantity    int       `json:"quantity"`
	Unit        string    `json:"unit"`
	CollectedOn time.Time `json:"collectedOn"`
	Notes       string    `json:"notes"`
}

// Create records a new collection entry for the current user.
func (s *Service) Create(c *fiber.Ctx) error {
	currentUser, ok := handler.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var in collectionBody
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if in.Item == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Item is required"})
	}

	entry := models.Collection{
		HostID:       in.HostID,
		Item:         in.Item,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		CollectedOn:  in.CollectedOn,
		Notes:        in.Notes,
		RecordedByID: currentUser.ID,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Error().Err(err).Msg("create collection entry failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create entry"})
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// Update edits a collection entry.
func (s *Service) Update(c *fiber.Ctx) error {
	entry, ok := s.loadEntry(c)
	if !ok {
		return nil
	}

	var in collectionBody
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if in.Item == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Item is required"})
	}

	entry.HostID = in.HostID
	entry.Item = in.Item
	entry.Quantity = in.Quantity
	entry.Unit = in.Unit
	entry.CollectedOn = in.CollectedOn
	entry.Notes = in.Notes

	if err := s.db.Save(entry).Error; err != nil {
		log.Error().Err(err).Uint64("collection_id", entry.ID).Msg("update collection entry failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update entry"})
	}

	return c.JSON(entry)
}

// Delete removes a collection entry.
func (s *Service) Delete(c *fiber.Ctx) error {
	entry, ok := s.loadEntry(c)
	if !ok {
		return nil
	}

	if err := s.db.Delete(&models.Collection{}, entry.ID).Error; err != nil {
		log.Error().Err(err).Uint64("collection_id", entry.ID).Msg("delete collection entry failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete entry"})
	}

	return c.JSON(fiber.Map{"ok": true})
}

func (s *Service) loadEntry(c *fiber.Ctx) (*models.Collection, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid collection id"})
		return nil, false
	}

	var entry models.Collection
	if err := s.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Entry not found"})
			return nil, false
		}

		log.Error().Err(err).Uint64("collection_id", id).Msg("failed to load collection entry")

		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load entry"})

		return nil, false
	}

	return &entry, true
}
