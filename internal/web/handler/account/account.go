// Package account provides the endpoints for the logged-in user's own
// account: session info, password changes and second-factor enrollment.
package account

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/volunteerhub/volunteerhub/internal/auth"
	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/web/handler"
	"github.com/volunteerhub/volunteerhub/internal/web/navigation"
)

const (
	// SessionPath returns the current session's user, permissions and menu.
	SessionPath = handler.APIPath + "/session"

	// Path is the base path for account self-service.
	Path = handler.APIPath + "/account"
)

// Service provides account self-service operations.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
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
	s.authService = authService

	app.Get(SessionPath, s.Session)
	app.Post(Path+"/password", s.ChangePassword)
	app.Post(Path+"/totp/enroll", s.EnrollTOTP)
	app.Post(Path+"/totp/disable", s.DisableTOTP)
}

// SessionResponse describes the logged-in user to the SPA.
type SessionResponse struct {
	ID          uint64               `json:"id"`
	Username    string               `json:"username"`
	DisplayName string               `json:"displayName"`
	Email       string               `json:"email"`
	Role        string               `json:"role"`
	AuthSource  models.AuthSource    `json:"authSource"`
	TOTPEnabled bool                 `json:"totpEnabled"`
	Permissions []string             `json:"permissions"`
	Menu        []navigation.Section `json:"menu"`
}

// Session returns the current user, their effective permissions and the
// menu those permissions unlock.
func (s *Service) Session(c *fiber.Ctx) error {
	user, ok := s.freshUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	effective, err := s.authService.EffectivePermissionsOf(user)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to resolve permissions")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(SessionResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName(),
		Email:       user.Email,
		Role:        user.Role,
		AuthSource:  user.AuthSource,
		TOTPEnabled: user.TOTPSecret != "",
		Permissions: effective.Strings(),
		Menu:        navigation.Build(effective),
	})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePassword changes the current user's password.
func (s *Service) ChangePassword(c *fiber.Ctx) error {
	user, ok := s.freshUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var in changePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if len(in.NewPassword) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password must be at least 8 characters"})
	}

	lp := auth.NewLocalProvider(s.db)

	if err := lp.ChangePassword(user.ID, in.OldPassword, in.NewPassword); err != nil {
		if errors.Is(err, auth.ErrInvalidOldPassword) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Uint64("user_id", user.ID).Msg("password change failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to change password"})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// EnrollTOTP generates a second-factor secret for the current user and
// returns the provisioning URL for the authenticator app.
func (s *Service) EnrollTOTP(c *fiber.Ctx) error {
	user, ok := s.freshUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	url, err := auth.EnrollTOTP(s.db, user)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("totp enrollment failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to enroll second factor"})
	}

	return c.JSON(fiber.Map{"otpauthUrl": url})
}

// DisableTOTP removes the current user's second factor. The submitted code
// must still be valid, so a stolen session alone cannot drop the factor.
func (s *Service) DisableTOTP(c *fiber.Ctx) error {
	user, ok := s.freshUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var in struct {
		TOTPCode string `json:"totpCode"`
	}

	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := auth.VerifyTOTP(user, in.TOTPCode); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	}

	if err := auth.DisableTOTP(s.db, user.ID); err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("totp disable failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to disable second factor"})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// freshUser resolves the session user and reloads it from the database, so
// role and permission changes apply without re-login.
func (s *Service) freshUser(c *fiber.Ctx) (*models.User, bool) {
	sessionUser, ok := handler.CurrentUser(c)
	if !ok {
		return nil, false
	}

	var user models.User
	if err := s.db.First(&user, sessionUser.ID).Error; err != nil {
		return nil, false
	}

	return &user, true
}
