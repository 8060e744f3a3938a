// Package dashboard provides the coordination overview endpoint.
package dashboard

import (
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

const (
	// Path is the path of the dashboard endpoint.
	Path = handler.APIPath + "/dashboard"

	// recentRequestLimit bounds the pending-request preview list.
	recentRequestLimit = 10
)

// RequestSummary is a pending event request with its intake gaps.
type RequestSummary struct {
	ID            uint64    `json:"id"`
	Organization  string    `json:"organization"`
	ContactName   string    `json:"contactName"`
	EventDate     time.Time `json:"eventDate"`
	MissingFields []string  `json:"missingFields"`
	Complete      bool      `json:"complete"`
}

// Data is the dashboard response body.
type Data struct {
	Hosts             int64            `json:"hosts"`
	PendingRequests   int64            `json:"pendingRequests"`
	ApprovedRequests  int64            `json:"approvedRequests"`
	Documents         int64            `json:"documents"`
	Collections       int64            `json:"collections"`
	ActiveUsers       int64            `json:"activeUsers"`
	RecentPending     []RequestSummary `json:"recentPending"`
	IncompleteIntakes int              `json:"incompleteIntakes"`
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path,
		auth.RequirePermission(authService, perm.KeyEventRequestsView),
		s.Get,
	)
}

// Get handles the dashboard summary request.
func (s *Service) Get(c *fiber.Ctx) error {
	var data Data

	counts := []struct {
		model interface{}
		where []interface{}
		dest  *int64
	}{
		{&models.Host{}, nil, &data.Hosts},
		{&models.EventRequest{}, []interface{}{"status = ?", models.EventRequestPending}, &data.PendingRequests},
		{&models.EventRequest{}, []interface{}{"status = ?", models.EventRequestApproved}, &data.ApprovedRequests},
		{&models.Document{}, nil, &data.Documents},
		{&models.Collection{}, nil, &data.Collections},
		{&models.User{}, []interface{}{"active = ?", true}, &data.ActiveUsers},
	}

	for _, count := range counts {
		query := s.db.Model(count.model)
		if count.where != nil {
			query = query.Where(count.where[0], count.where[1:]...)
		}

		if err := query.Count(count.dest).Error; err != nil {
			log.Error().Err(err).Msg("failed to count dashboard entities")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
		}
	}

	var pending []models.EventRequest

	err := s.db.Where("status = ?", models.EventRequestPending).
		Order("created_at DESC").
		Limit(recentRequestLimit).
		Find(&pending).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to load pending event requests")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	data.RecentPending = make([]RequestSummary, 0, len(pending))

	for i := range pending {
		request := &pending[i]
		missing := request.MissingFields()

		if len(missing) > 0 {
			data.IncompleteIntakes++
		}

		data.RecentPending = append(data.RecentPending, RequestSummary{
			ID:            request.ID,
			Organization:  request.Organization,
			ContactName:   request.ContactName,
			EventDate:     request.EventDate,
			MissingFields: missing,
			Complete:      len(missing) == 0,
		})
	}

	return c.JSON(data)
}
