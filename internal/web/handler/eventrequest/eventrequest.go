// Package eventrequest provides the event request intake and review
// endpoints.
package eventrequest

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
	"github.com/volunteerhub/volunteerhub/internal/notify"
	"github.com/volunteerhub/volunteerhub/internal/perm"
	"github.com/volunteerhub/volunteerhub/internal/web/handler"
)

const (
	// Path is the base path for event requests.
	Path = handler.APIPath + "/event-requests"

	// DefaultPageSize for pagination.
	DefaultPageSize = 25

	maxPageSize = 100
)

// Service provides CRUD and review operations for event requests.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
	notifier    *notify.Service
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
	s.authService = authService
	s.notifier = notifier

	app.Get(Path,
		auth.RequirePermission(authService, perm.KeyEventRequestsView),
		s.List,
	)
	app.Post(Path,
		auth.RequirePermission(authService, perm.KeyEventRequestsCreate),
		s.Create,
	)
	app.Get(Path+"/:id",
		auth.RequirePermission(authService, perm.KeyEventRequestsView),
		s.Get,
	)
	app.Get(Path+"/:id/missing-fields",
		auth.RequirePermission(authService, perm.KeyEventRequestsView),
		s.MissingFields,
	)
	app.Put(Path+"/:id",
		auth.RequireAnyPermission(authService, perm.KeyEventRequestsEditOwn, perm.KeyEventRequestsEditAll),
		s.Update,
	)
	app.Delete(Path+"/:id",
		auth.RequireAnyPermission(authService, perm.KeyEventRequestsDeleteOwn, perm.KeyEventRequestsDeleteAll),
		s.Delete,
	)
	app.Post(Path+"/:id/approve",
		auth.RequirePermission(authService, perm.KeyEventRequestsApprove),
		s.Approve,
	)
	app.Post(Path+"/:id/decline",
		auth.RequirePermission(authService, perm.KeyEventRequestsApprove),
		s.Decline,
	)
}

// Detail is an event request with its intake completeness attached.
type Detail struct {
	models.EventRequest
	MissingFields []string `json:"missingFields"`
	Complete      bool     `json:"complete"`
}

func toDetail(request *models.EventRequest) Detail {
	missing := request.MissingFields()

	return Detail{
		EventRequest:  *request,
		MissingFields: missing,
		Complete:      len(missing) == 0,
	}
}

// ListResponse is the paginated request list.
type ListResponse struct {
	Requests   []Detail `json:"requests"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalItems int64    `json:"totalItems"`
	TotalPages int      `json:"totalPages"`
}

// List returns event requests, newest first, optionally filtered by status.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := c.QueryInt("pageSize", DefaultPageSize)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = DefaultPageSize
	}

	var (
		requests   []models.EventRequest
		totalCount int64
		tx         = s.db.Model(&models.EventRequest{})
	)

	if status := c.Query("status", ""); status != "" {
		tx = tx.Where("status = ?", status)
	}

	if err := tx.Count(&totalCount).Error; err != nil {
		log.Error().Err(err).Msg("count event requests failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load requests"})
	}

	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	if totalPages == 0 {
		totalPages = 1
	}

	if page > totalPages {
		page = totalPages
	}

	offset := (page - 1) * pageSize
	if err := tx.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&requests).Error; err != nil {
		log.Error().Err(err).Msg("query event requests failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load requests"})
	}

	out := ListResponse{
		Requests:   make([]Detail, 0, len(requests)),
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalCount,
		TotalPages: totalPages,
	}

	for i := range requests {
		out.Requests = append(out.Requests, toDetail(&requests[i]))
	}

	return c.JSON(out)
}

// intakeBody is the writable subset of an event request. Everything is
// optional: the intake form saves partial input and reports what is missing.
type intakeBody struct {
	Organization            string    `json:"organization"`
	EventDate               time.Time `json:"eventDate"`
	ContactName             string    `json:"contactName"`
	ContactEmail            string    `json:"contactEmail"`
	ContactPhone            string    `json:"contactPhone"`
	SandwichCount           int       `json:"sandwichCount"`
	SandwichTypes           []string  `json:"sandwichTypes"`
	Street                  string    `json:"street"`
	City                    string    `json:"city"`
	PostalCode              string    `json:"postalCode"`
	DriversNeeded           int       `json:"driversNeeded"`
	VanDriverNeeded         bool      `json:"vanDriverNeeded"`
	PickupTimeWindow        string    `json:"pickupTimeWindow"`
	PickupPersonResponsible string    `json:"pickupPersonResponsible"`
	SpeakersNeeded          int       `json:"speakersNeeded"`
	SpeakerTimeWindow       string    `json:"speakerTimeWindow"`
	OvernightNeeded         bool      `json:"overnightNeeded"`
	OvernightCapacity       int       `json:"overnightCapacity"`
	Notes                   string    `json:"notes"`
	HostID                  *uint64   `json:"hostId"`
}

func (in *intakeBody) apply(request *models.EventRequest) {
	request.Organization = in.Organization
	request.EventDate = in.EventDate
	request.ContactName = in.ContactName
	request.ContactEmail = in.ContactEmail
	request.ContactPhone = in.ContactPhone
	request.SandwichCount = in.SandwichCount
	request.SandwichTypes = models.StringList(in.SandwichTypes)
	request.Street = in.Street
	request.City = in.City
	request.PostalCode = in.PostalCode
	request.DriversNeeded = in.DriversNeeded
	request.VanDriverNeeded = in.VanDriverNeeded
	request.PickupTimeWindow = in.PickupTimeWindow
	request.PickupPersonResponsible = in.PickupPersonResponsible
	request.SpeakersNeeded = in.SpeakersNeeded
	request.SpeakerTimeWindow = in.SpeakerTimeWindow
	request.OvernightNeeded = in.OvernightNeeded
	request.OvernightCapacity = in.OvernightCapacity
	request.Notes = in.Notes
	request.HostID = in.HostID
}

// Create files a new event request for the current user.
func (s *Service) Create(c *fiber.Ctx) error {
	currentUser, ok := handler.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var in intakeBody
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	request := models.EventRequest{
		Status:      models.EventRequestPending,
		CreatedByID: currentUser.ID,
	}
	in.apply(&request)

	if err := s.db.Create(&request).Error; err != nil {
		log.Error().Err(err).Msg("create event request failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create request"})
	}

	return c.Status(fiber.StatusCreated).JSON(toDetail(&request))
}

// Get returns a single event request.
func (s *Service) Get(c *fiber.Ctx) error {
	request, ok := s.loadRequest(c)
	if !ok {
		return nil
	}

	return c.JSON(toDetail(request))
}

// MissingFields returns only the intake completeness labels for a request,
// in the fixed intake form order.
func (s *Service) MissingFields(c *fiber.Ctx) error {
	request, ok := s.loadRequest(c)
	if !ok {
		return nil
	}

	missing := request.MissingFields()

	return c.JSON(fiber.Map{
		"missingFields": missing,
		"complete":      len(missing) == 0,
	})
}

// Update edits an event request. Users holding only the edit-own permission
// may edit nothing but their own requests.
func (s *Service) Update(c *fiber.Ctx) error {
	request, ok := s.loadRequest(c)
	if !ok {
		return nil
	}

	if !s.mayTouch(c, request, perm.KeyEventRequestsEditAll) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only edit your own requests"})
	}

	var in intakeBody
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	in.apply(request)

	if err := s.db.Save(request).Error; err != nil {
		log.Error().Err(err).Uint64("request_id", request.ID).Msg("update event request failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update request"})
	}

	return c.JSON(toDetail(request))
}

// Delete removes an event request, with the same own/all distinction as
// Update.
func (s *Service) Delete(c *fiber.Ctx) error {
	request, ok := s.loadRequest(c)
	if !ok {
		return nil
	}

	if !s.mayTouch(c, request, perm.KeyEventRequestsDeleteAll) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only delete your own requests"})
	}

	if err := s.db.Delete(&models.EventRequest{}, request.ID).Error; err != nil {
		log.Error().Err(err).Uint64("request_id", request.ID).Msg("delete event request failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete request"})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// Approve marks a request approved and notifies the requester.
func (s *Service) Approve(c *fiber.Ctx) error {
	return s.decide(c, models.EventRequestApproved)
}

// Decline marks a request declined and notifies the requester.
func (s *Service) Decline(c *fiber.Ctx) error {
	return s.decide(c, models.EventRequestDeclined)
}

func (s *Service) decide(c *fiber.Ctx, status models.EventRequestStatus) error {
	request, ok := s.loadRequest(c)
	if !ok {
		return nil
	}

	if request.Status == status {
		return c.JSON(toDetail(request))
	}

	request.Status = status

	if err := s.db.Model(request).Update("status", status).Error; err != nil {
		log.Error().Err(err).Uint64("request_id", request.ID).Msg("failed to update request status")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update request"})
	}

	if s.notifier != nil {
		s.notifier.EventRequestDecided(request)
	}

	log.Info().Uint64("request_id", request.ID).Str("status", string(status)).Msg("event request decided")

	return c.JSON(toDetail(request))
}

// mayTouch reports whether the current user may modify the request: either
// they hold the all-records permission or the request is their own.
func (s *Service) mayTouch(c *fiber.Ctx, request *models.EventRequest, allKey perm.Key) bool {
	if auth.HasPermissionInContext(c, s.authService, allKey) {
		return true
	}

	currentUser, ok := handler.CurrentUser(c)

	return ok && request.CreatedByID == currentUser.ID
}

// loadRequest parses the :id param and loads the request, writing the error
// response itself when it returns ok=false.
func (s *Service) loadRequest(c *fiber.Ctx) (*models.EventRequest, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
		return nil, false
	}

	var request models.EventRequest
	if err := s.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Request not found"})
			return nil, false
		}

		log.Error().Err(err).Uint64("request_id", id).Msg("failed to load event request")

		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load request"})

		return nil, false
	}

	return &request, true
}
