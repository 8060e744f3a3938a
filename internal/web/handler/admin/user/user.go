// Package user provides the admin endpoints for managing users and their
// permission grids.
package user

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
	"github.com/volunteerhub/volunteerhub/internal/web/handler/login"
	"github.com/volunteerhub/volunteerhub/internal/web/session"
)

const (
	// Path is the base path for user management.
	Path = handler.APIPath + "/admin/users"

	// DefaultPageSize for pagination.
	DefaultPageSize = 25

	maxPageSize = 100
)

// Service provides CRUD operations for users.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	validator   *validator.Validate
	authService *auth.Service
	resolver    *perm.Resolver
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
	s.authService = authService
	s.resolver = perm.DefaultResolver()

	app.Get(Path,
		auth.RequirePermission(authService, perm.KeyUsersView),
		s.List,
	)
	app.Post(Path,
		auth.RequirePermission(authService, perm.KeyUsersEdit),
		s.Create,
	)
	app.Get(Path+"/:id",
		auth.RequirePermission(authService, perm.KeyUsersView),
		s.Get,
	)
	app.Put(Path+"/:id",
		auth.RequirePermission(authService, perm.KeyUsersEdit),
		s.Update,
	)
	app.Delete(Path+"/:id",
		auth.RequirePermission(authService, perm.KeyUsersEdit),
		s.Delete,
	)
	app.Get(Path+"/:id/permissions",
		auth.RequirePermission(authService, perm.KeyUsersManagePermissions),
		s.GetPermissions,
	)
	app.Put(Path+"/:id/permissions",
		auth.RequirePermission(authService, perm.KeyUsersManagePermissions),
		s.PutPermissions,
	)
	app.Post(Path+"/:id/permissions/toggle",
		auth.RequirePermission(authService, perm.KeyUsersManagePermissions),
		s.ToggleResource,
	)
}

// ListResponse is the paginated user list.
type ListResponse struct {
	Users      []models.User `json:"users"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalItems int64         `json:"totalItems"`
	TotalPages int           `json:"totalPages"`
}

// List returns users with simple pagination and search.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := c.QueryInt("pageSize", DefaultPageSize)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = DefaultPageSize
	}

	search := c.Query("search", "")

	var (
		users      []models.User
		totalCount int64
		tx         = s.db.Model(&models.User{})
	)

	if search != "" {
		like := "%" + search + "%"
		tx = tx.Where(
			"username LIKE ? OR email LIKE ? OR first_name LIKE ? OR last_name LIKE ?",
			like, like, like, like,
		)
	}

	if err := tx.Count(&totalCount).Error; err != nil {
		log.Error().Err(err).Msg("count users failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load users"})
	}

	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	if totalPages == 0 {
		totalPages = 1
	}

	if page > totalPages {
		page = totalPages
	}

	offset := (page - 1) * pageSize
	if err := tx.Order("id DESC").Limit(pageSize).Offset(offset).Find(&users).Error; err != nil {
		log.Error().Err(err).Msg("query users failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load users"})
	}

	return c.JSON(ListResponse{
		Users:      users,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalCount,
		TotalPages: totalPages,
	})
}

type createRequest struct {
	Username  string `json:"username"  validate:"required,min=3,max=100"`
	Email     string `json:"email"     validate:"required,email,max=255"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName"  validate:"max=100"`
	Password  string `json:"password"  validate:"required,min=8"`
	Role      string `json:"role"      validate:"required"`
}

// Create creates a new local user.
func (s *Service) Create(c *fiber.Ctx) error {
	var in createRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := s.validator.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := s.resolver.DefaultsForRole(in.Role); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown role: " + in.Role})
	}

	lp := auth.NewLocalProvider(s.db)

	user, err := lp.CreateUser(in.Username, in.Email, in.Password, in.FirstName, in.LastName, in.Role)
	if err != nil {
		if errors.Is(err, auth.ErrUserNameOrEmailExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Msg("create user failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Get returns a single user.
func (s *Service) Get(c *fiber.Ctx) error {
	user, ok := s.loadUser(c)
	if !ok {
		return nil
	}

	return c.JSON(user)
}

type updateRequest struct {
	Email     string `json:"email"     validate:"required,email,max=255"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName"  validate:"max=100"`
	Active    *bool  `json:"active"`
}

// Update updates a user's profile fields.
func (s *Service) Update(c *fiber.Ctx) error {
	user, ok := s.loadUser(c)
	if !ok {
		return nil
	}

	var in updateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := s.validator.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user.Email = in.Email
	user.FirstName = in.FirstName
	user.LastName = in.LastName

	if in.Active != nil {
		user.Active = *in.Active
	}

	if err := s.db.Save(user).Error; err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("update user failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
	}

	return c.JSON(user)
}

// Delete removes a user.
func (s *Service) Delete(c *fiber.Ctx) error {
	user, ok := s.loadUser(c)
	if !ok {
		return nil
	}

	if user.Role == perm.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Cannot delete admin users"})
	}

	// Prevent a user from deleting themselves.
	if sessionID := c.Cookies(login.CookieName); sessionID != "" {
		current := new(session.Data)
		if errSess := current.Read(sessionID); errSess == nil && current.User.ID == user.ID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot delete your own account"})
		}
	}

	if err := s.db.Delete(&models.User{}, user.ID).Error; err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("delete user failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete user"})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// GridAction is one action checkbox in the permission grid.
type GridAction struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Key     string `json:"key"`
	Granted bool   `json:"granted"`
}

// GridResource is one resource row in the permission grid, with its
// tri-state toggle.
type GridResource struct {
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Description string       `json:"description"`
	Icon        string       `json:"icon"`
	Color       string       `json:"color"`
	State       string       `json:"state"`
	Actions     []GridAction `json:"actions"`
}

// RoleOption is one selectable role in the grid's role dropdown.
type RoleOption struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// GridResponse is the full permission grid for one user.
type GridResponse struct {
	UserID    uint64         `json:"userId"`
	Role      string         `json:"role"`
	Roles     []RoleOption   `json:"roles"`
	Explicit  bool           `json:"explicit"`
	Resources []GridResource `json:"resources"`
}

// GetPermissions returns the permission grid for a user: every catalog
// resource with its actions, which of them the user currently holds, and
// the per-resource tri-state.
func (s *Service) GetPermissions(c *fiber.Ctx) error {
	user, ok := s.loadUser(c)
	if !ok {
		return nil
	}

	effective, err := s.authService.EffectivePermissionsOf(user)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to resolve permissions")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve permissions"})
	}

	return c.JSON(s.buildGrid(user, effective))
}

type putPermissionsRequest struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// PutPermissions saves a user's role and explicit permission list. The
// saved list replaces the role defaults entirely, including when empty.
func (s *Service) PutPermissions(c *fiber.Ctx) error {
	user, ok := s.loadUser(c)
	if !ok {
		return nil
	}

	var in putPermissionsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if in.Permissions == nil {
		in.Permissions = []string{}
	}

	err := s.authService.SavePermissions(user.ID, in.Role, in.Permissions)

	switch {
	case errors.Is(err, perm.ErrUnknownRole):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown role: " + in.Role})
	case errors.Is(err, auth.ErrUnknownPermissionKey):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to save permissions")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save permissions"})
	}

	return s.GetPermissions(c)
}

type toggleRequest struct {
	ResourceID string `json:"resourceId"`
	On         bool   `json:"on"`
}

// ToggleResource grants or revokes every action of one resource at once
// and saves the result as the user's explicit permission list.
func (s *Service) ToggleResource(c *fiber.Ctx) error {
	user, ok := s.loadUser(c)
	if !ok {
		return nil
	}

	var in toggleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	effective, err := s.authService.EffectivePermissionsOf(user)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to resolve permissions")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve permissions"})
	}

	toggled, err := s.resolver.Toggle(in.ResourceID, effective, in.On)
	if errors.Is(err, perm.ErrUnknownResource) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown resource: " + in.ResourceID})
	} else if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to toggle resource")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to toggle resource"})
	}

	if err := s.authService.SavePermissions(user.ID, user.Role, toggled.Strings()); err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to save permissions")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save permissions"})
	}

	// Reload so the grid reflects the just-saved explicit list.
	return s.GetPermissions(c)
}

// loadUser parses the :id param and loads the user, writing the error
// response itself when it returns ok=false.
func (s *Service) loadUser(c *fiber.Ctx) (*models.User, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
		return nil, false
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
			return nil, false
		}

		log.Error().Err(err).Uint64("user_id", id).Msg("failed to load user")

		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load user"})

		return nil, false
	}

	return &user, true
}

// buildGrid projects the catalog against an effective permission set.
func (s *Service) buildGrid(user *models.User, effective perm.Set) GridResponse {
	catalog := s.resolver.Catalog()
	resources := catalog.Resources()

	roles := s.resolver.Roles()
	roleOptions := make([]RoleOption, 0, len(roles))

	for _, role := range roles {
		roleOptions = append(roleOptions, RoleOption{ID: role.ID, DisplayName: role.DisplayName})
	}

	grid := GridResponse{
		UserID:    user.ID,
		Role:      user.Role,
		Roles:     roleOptions,
		Explicit:  user.Permissions != nil,
		Resources: make([]GridResource, 0, len(resources)),
	}

	for _, resource := range resources {
		state, err := s.resolver.ToggleState(resource.ID, effective)
		if err != nil {
			state = perm.ToggleNone
		}

		row := GridResource{
			ID:          resource.ID,
			Label:       resource.Label,
			Description: resource.Description,
			Icon:        resource.Icon,
			Color:       resource.Color,
			State:       string(state),
			Actions:     make([]GridAction, 0, len(resource.Actions)),
		}

		for _, action := range resource.Actions {
			key := perm.KeyFor(resource.ID, action.ID)
			row.Actions = append(row.Actions, GridAction{
				ID:      action.ID,
				Label:   action.Label,
				Key:     string(key),
				Granted: effective.Has(key),
			})
		}

		grid.Resources = append(grid.Resources, row)
	}

	return grid
}
