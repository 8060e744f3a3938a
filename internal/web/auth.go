package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/volunteerhub/volunteerhub/internal/web/handler"
	"github.com/volunteerhub/volunteerhub/internal/web/handler/login"
	"github.com/volunteerhub/volunteerhub/internal/web/session"
)

// publicPrefixes are API paths reachable without a session.
var publicPrefixes = []string{
	login.Path,
	handler.APIPath + "/shared/",
	"/auth/oidc/",
	"/checkalive",
	"/metrics",
}

// AuthMiddleware rejects unauthenticated API requests with 401 JSON. All
// non-API paths fall through to the SPA, which handles its own login
// redirect client-side.
func AuthMiddleware(c *fiber.Ctx) error {
	path := c.Path()

	if !strings.HasPrefix(path, handler.APIPath+"/") {
		return c.Next()
	}

	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return c.Next()
		}
	}

	sessionID := c.Cookies(login.CookieName)
	if sessionID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	sessionData := new(session.Data)
	if err := sessionData.Read(sessionID); err != nil || sessionData.User.ID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	c.Locals("CurrentUser", sessionData.User)

	return c.Next()
}
