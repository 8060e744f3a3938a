package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/web/session"
)

// CurrentUser returns the authenticated user stored in the request's
// session, or ok=false when the request carries no valid session.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	sessionID := c.Cookies("session")
	if sessionID == "" {
		return models.User{}, false
	}

	sessionData := new(session.Data)
	if err := sessionData.Read(sessionID); err != nil || sessionData.User.ID == 0 {
		return models.User{}, false
	}

	return sessionData.User, true
}
