// Package document provides endpoints for shared document metadata and
// public share links.
package document

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/volunteerhub/volunteerhub/internal/auth"
	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/perm"
	"github.com/volunteerhub/volunteerhub/internal/web/handler"
)

const (
	// Path is the base path for document management.
	Path = handler.APIPath + "/documents"

	// SharePath serves documents through their unguessable share token,
	// without a session.
	SharePath = handler.APIPath + "/shared/:token"
)

// Service provides document metadata operations.
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
		auth.RequirePermission(authService, perm.KeyDocumentsView),
		s.List,
	)
	app.Post(Path,
		auth.RequirePermission(authService, perm.KeyDocumentsUpload),
		s.Create,
	)
	app.Put(Path+"/:id",
		auth.RequirePermission(authService, perm.KeyDocumentsEdit),
		s.Update,
	)
	app.Delete(Path+"/:id",
		auth.RequirePermission(authService, perm.KeyDocumentsDelete),
		s.Delete,
	)
	app.Post(Path+"/:id/share",
		auth.RequirePermission(authService, perm.KeyDocumentsEdit),
		s.RotateShareToken,
	)

	// Share links are the one unauthenticated document surface.
	app.Get(SharePath, s.GetShared)
}

// List returns all documents, optionally filtered by category.
func (s *Service) List(c *fiber.Ctx) error {
	var documents []models.Document

	tx := s.db.Order("title ASC")
	if category := c.Query("category", ""); category != "" {
		tx = tx.Where("category = ?", category)
	}

	if err := tx.Find(&documents).Error; err != nil {
		log.Error().Err(err).Msg("query documents failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load documents"})
	}

	return c.JSON(fiber.Map{"documents": documents})
}

type documentBody struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

// Create records a new document's metadata with a fresh share token.
func (s *Service) Create(c *fiber.Ctx) error {
	currentUser, ok := handler.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var in documentBody
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if in.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title is required"})
	}

	document := models.Document{
		Title:        in.Title,
		Category:     in.Category,
		FileName:     in.FileName,
		ContentType:  in.ContentType,
		SizeBytes:    in.SizeBytes,
		ShareToken:   uuid.NewString(),
		UploadedByID: currentUser.ID,
	}

	if err := s.db.Create(&document).Error; err != nil {
		log.Error().Err(err).Msg("create document failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create document"})
	}

	return c.Status(fiber.StatusCreated).JSON(document)
}

// Update edits a document's metadata.
func (s *Service) Update(c *fiber.Ctx) error {
	document, ok := s.loadDocument(c)
	if !ok {
		return nil
	}

	var in documentBody
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if in.Title != "" {
		document.Title = in.Title
	}

	document.Category = in.Category

	if err := s.db.Save(document).Error; err != nil {
		log.Error().Err(err).Uint64("document_id", document.ID).Msg("update document failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update document"})
	}

	return c.JSON(document)
}

// Delete removes a document record.
func (s *Service) Delete(c *fiber.Ctx) error {
	document, ok := s.loadDocument(c)
	if !ok {
		return nil
	}

	if err := s.db.Delete(&models.Document{}, document.ID).Error; err != nil {
		log.Error().Err(err).Uint64("document_id", document.ID).Msg("delete document failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete document"})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// RotateShareToken invalidates the current share link by issuing a new token.
func (s *Service) RotateShareToken(c *fiber.Ctx) error {
	document, ok := s.loadDocument(c)
	if !ok {
		return nil
	}

	document.ShareToken = uuid.NewString()

	if err := s.db.Model(document).Update("share_token", document.ShareToken).Error; err != nil {
		log.Error().Err(err).Uint64("document_id", document.ID).Msg("rotate share token failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to rotate share token"})
	}

	return c.JSON(document)
}

// GetShared resolves a share token to the document metadata.
func (s *Service) GetShared(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing share token"})
	}

	var document models.Document
	if err := s.db.Where("share_token = ?", token).First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
		}

		log.Error().Err(err).Msg("failed to resolve share token")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load document"})
	}

	return c.JSON(document)
}

func (s *Service) loadDocument(c *fiber.Ctx) (*models.Document, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid document id"})
		return nil, false
	}

	var document models.Document
	if err := s.db.First(&document, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
			return nil, false
		}

		log.Error().Err(err).Uint64("document_id", id).Msg("failed to load document")

		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load document"})

		return nil, false
	}

	return &document, true
}
