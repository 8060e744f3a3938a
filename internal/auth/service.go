package auth

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/perm"
)

// Service provides authentication and authorization functionality.
type Service struct {
	db       *gorm.DB
	catalog  *perm.Catalog
	resolver *perm.Resolver
	migrator *perm.Migrator
}

// NewService creates an auth service over the built-in permission tables.
func NewService(db *gorm.DB) *Service {
	return NewServiceWith(db, perm.Default(), perm.DefaultResolver(), perm.DefaultMigrator())
}

// NewServiceWith creates an auth service with explicit permission tables,
// used by tests to substitute smaller catalogs.
func NewServiceWith(db *gorm.DB, catalog *perm.Catalog, resolver *perm.Resolver, migrator *perm.Migrator) *Service {
	return &Service{
		db:       db,
		catalog:  catalog,
		resolver: resolver,
		migrator: migrator,
	}
}

// Catalog returns the permission catalog the service authorizes against.
func (s *Service) Catalog() *perm.Catalog {
	return s.catalog
}

// Resolver returns the permission resolver the service authorizes against.
func (s *Service) Resolver() *perm.Resolver {
	return s.resolver
}

// EffectivePermissions computes the permission set in effect for a user.
//
// The stored explicit list (if any) is first run through the legacy
// migrator so rows written by the old system keep working, then resolved:
// a non-NULL list replaces the role defaults outright, a NULL list falls
// back to them.
func (s *Service) EffectivePermissions(userID uint64) (perm.Set, error) {
	var user models.User

	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	return s.EffectivePermissionsOf(&user)
}

// EffectivePermissionsOf resolves permissions for an already-loaded user.
func (s *Service) EffectivePermissionsOf(user *models.User) (perm.Set, error) {
	var explicit perm.Set
	if user.Permissions != nil {
		explicit = s.migrator.Migrate(*user.Permissions)
	}

	effective, err := s.resolver.Resolve(user.Role, explicit)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve permissions for user %d: %w", user.ID, err)
	}

	return effective, nil
}

// HasPermission checks if a user holds a specific permission.
func (s *Service) HasPermission(userID uint64, key perm.Key) (bool, error) {
	effective, err := s.EffectivePermissions(userID)
	if err != nil {
		return false, err
	}

	return effective.Has(key), nil
}

// HasAnyPermission checks if a user holds at least one of the given permissions.
func (s *Service) HasAnyPermission(userID uint64, keys []perm.Key) (bool, error) {
	if len(keys) == 0 {
		return false, nil
	}

	effective, err := s.EffectivePermissions(userID)
	if err != nil {
		return false, err
	}

	for _, key := range keys {
		if effective.Has(key) {
			return true, nil
		}
	}

	return false, nil
}

// HasAllPermissions checks if a user holds all of the given permissions.
func (s *Service) HasAllPermissions(userID uint64, keys []perm.Key) (bool, error) {
	effective, err := s.EffectivePermissions(userID)
	if err != nil {
		return false, err
	}

	for _, key := range keys {
		if !effective.Has(key) {
			return false, nil
		}
	}

	return true, nil
}

// SavePermissions persists a user's role and explicit permission set, the
// administrative "save permissions" action.
//
// Input is validated at this boundary: the role must exist and every key
// must be in the catalog (raw input is migrated first, so legacy spellings
// are accepted and stored canonically). The stored list is authoritative
// from now on, role defaults no longer apply to this user.
func (s *Service) SavePermissions(userID uint64, role string, keys []string) error {
	if _, err := s.resolver.DefaultsForRole(role); err != nil {
		return err
	}

	canonical := s.migrator.Migrate(keys)

	for key := range canonical {
		if !s.catalog.IsValid(key) {
			return fmt.Errorf("%w: %s", ErrUnknownPermissionKey, key)
		}
	}

	list := models.PermissionList(canonical.Strings())

	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"role":        role,
			"permissions": list,
		}).Error
}

// AssignRole changes a user's role without touching the explicit
// permission list. Note that a previously saved explicit list stays
// authoritative; the new role's defaults only apply to users that were
// never saved with explicit permissions.
func (s *Service) AssignRole(userID uint64, role string) error {
	if _, err := s.resolver.DefaultsForRole(role); err != nil {
		return err
	}

	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("role", role).Error
}
