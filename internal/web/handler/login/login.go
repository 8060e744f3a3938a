package login

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/volunteerhub/volunteerhub/internal/auth"
	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/web/handler"
	"github.com/volunteerhub/volunteerhub/internal/web/session"
)

const (
	// Path is the path of the login endpoint.
	Path = handler.APIPath + "/login"

	// CookieName is the name of the session cookie.
	CookieName = "session"
)

// Request is the JSON body of a login attempt.
type Request struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TOTPCode string `json:"totpCode"`
}

// Response is the JSON body returned on a successful login.
type Response struct {
	ID          uint64   `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"displayName"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	localAuth   *auth.LocalProvider
	authService *auth.Service
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.cfg = cfg
	s.localAuth = auth.NewLocalProvider(db)
	s.authService = authService

	app.Post(Path, s.Post)

	return nil
}

// Post handles the login request.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidRequestBody.Error()})
	}

	user, err := s.localAuth.Authenticate(req.Username, req.Password, req.TOTPCode)

	switch {
	case errors.Is(err, auth.ErrTOTPNotEnrolled), errors.Is(err, auth.ErrInvalidTOTPCode):
		log.Warn().Str("username", req.Username).Msg("login rejected: invalid second factor")

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrInvalidTOTP.Error()})
	case errors.Is(err, auth.ErrUserAccountDisabled):
		log.Warn().Str("username", req.Username).Msg("login rejected: account disabled")

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": ErrAccountDisabled.Error()})
	case err != nil:
		log.Warn().Str("username", req.Username).Msg("login rejected: invalid credentials")

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrInvalidCredentials.Error()})
	}

	if err := WriteSessionCookie(c, s.cfg, user); err != nil {
		log.Error().Err(err).Msg("failed to create session")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternalServerError.Error()})
	}

	effective, err := s.authService.EffectivePermissionsOf(user)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to resolve permissions")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternalServerError.Error()})
	}

	log.Info().Str("username", user.Username).Msg("user logged in")

	return c.JSON(Response{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName(),
		Email:       user.Email,
		Role:        user.Role,
		Permissions: effective.Strings(),
	})
}

// WriteSessionCookie creates a server-side session for the user and sets the
// session cookie on the response. Shared with the OIDC callback handler.
func WriteSessionCookie(c *fiber.Ctx, cfg *config.Config, user *models.User) error {
	sessionID, err := session.GenerateSessionID()
	if err != nil {
		return err
	}

	userSession := &session.Data{
		User: *user,
	}

	if err = userSession.Write(sessionID, cfg.Webserver.Session.ExpiryTime); err != nil {
		return err
	}

	cookieSettings := &fiber.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		MaxAge:   int(cfg.Webserver.Session.ExpiryTime / time.Second),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	return nil
}
