package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/volunteerhub/volunteerhub/internal/perm"
	"github.com/volunteerhub/volunteerhub/internal/web/session"
)

// sessionUserID reads and validates the session cookie, returning the
// authenticated user's ID or 0.
func sessionUserID(c *fiber.Ctx) uint64 {
	sessionID := c.Cookies("session")
	if sessionID == "" {
		return 0
	}

	sessionData := new(session.Data)
	if err := sessionData.Read(sessionID); err != nil {
		return 0
	}

	return sessionData.User.ID
}

// RequirePermission creates Fiber middleware that requires a specific permission.
func RequirePermission(authService *Service, key perm.Key) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := sessionUserID(c)
		if userID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		hasPermission, err := authService.HasPermission(userID, key)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", userID).Str("permission", string(key)).
				Msg("Failed to check permission")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
		}

		if !hasPermission {
			log.Warn().Uint64("user_id", userID).Str("permission", string(key)).
				Msg("User lacks required permission")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		}

		return c.Next()
	}
}

// RequireAnyPermission creates Fiber middleware that requires at least one of the given permissions.
func RequireAnyPermission(authService *Service, keys ...perm.Key) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := sessionUserID(c)
		if userID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		hasPermission, err := authService.HasAnyPermission(userID, keys)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", userID).
				Msg("Failed to check permissions")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
		}

		if !hasPermission {
			log.Warn().Uint64("user_id", userID).
				Msg("User lacks required permissions")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		}

		return c.Next()
	}
}

// RequireAllPermissions creates Fiber middleware that requires all the given permissions.
func RequireAllPermissions(authService *Service, keys ...perm.Key) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := sessionUserID(c)
		if userID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		hasPermissions, err := authService.HasAllPermissions(userID, keys)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", userID).
				Msg("Failed to check permissions")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
		}

		if !hasPermissions {
			log.Warn().Uint64("user_id", userID).
				Msg("User lacks required permissions")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		}

		return c.Next()
	}
}

// HasPermissionInContext checks if the current user in the Fiber context has
// a permission. Useful for conditional response shaping in handlers.
func HasPermissionInContext(c *fiber.Ctx, authService *Service, key perm.Key) bool {
	userID := sessionUserID(c)
	if userID == 0 {
		return false
	}

	hasPermission, err := authService.HasPermission(userID, key)
	if err != nil {
		return false
	}

	return hasPermission
}

// PermissionsToLocals is a Fiber middleware that resolves the current
// user's effective permission set once per request and stores it in
// fiber.Locals under "permissions", so handlers don't re-resolve.
func PermissionsToLocals(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := sessionUserID(c)
		if userID == 0 {
			// Not authenticated, continue without permissions
			return c.Next()
		}

		effective, err := authService.EffectivePermissions(userID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", userID).
				Msg("Failed to resolve user permissions")

			return c.Next()
		}

		c.Locals("permissions", effective)

		return c.Next()
	}
}
