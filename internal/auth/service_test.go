package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/perm"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func createUser(t *testing.T, db *gorm.DB, user models.User) *models.User {
	t.Helper()

	require.NoError(t, db.Create(&user).Error)

	return &user
}

func TestEffectivePermissionsRoleDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	// No explicit list saved: the role defaults apply.
	user := createUser(t, db, models.User{Username: "vera", Email: "vera@example.org", Role: perm.RoleVolunteer})

	effective, err := svc.EffectivePermissions(user.ID)
	require.NoError(t, err)

	want, err := perm.DefaultResolver().DefaultsForRole(perm.RoleVolunteer)
	require.NoError(t, err)
	assert.True(t, effective.Equal(want))
}

func TestEffectivePermissionsExplicitReplacesDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	explicit := models.PermissionList{"REPORTS_VIEW"}
	user := createUser(t, db, models.User{
		Username:    "carl",
		Email:       "carl@example.org",
		Role:        perm.RoleCoordinator,
		Permissions: &explicit,
	})

	effective, err := svc.EffectivePermissions(user.ID)
	require.NoError(t, err)

	// The coordinator defaults must not leak in.
	assert.True(t, effective.Equal(perm.NewSet("REPORTS_VIEW")), "got %v", effective.Strings())
}

func TestEffectivePermissionsMigratesLegacyRows(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	// A row written by the old system, mixing legacy and canonical spellings.
	legacy := models.PermissionList{"access_hosts", "manage_collections", "CHAT_VIEW", "junk"}
	user := createUser(t, db, models.User{
		Username:    "olga",
		Email:       "olga@example.org",
		Role:        perm.RoleVolunteer,
		Permissions: &legacy,
	})

	effective, err := svc.EffectivePermissions(user.ID)
	require.NoError(t, err)

	assert.True(t, effective.Equal(perm.NewSet("HOSTS_VIEW", "COLLECTIONS_EDIT", "CHAT_VIEW")),
		"got %v", effective.Strings())
}

func TestEffectivePermissionsExplicitEmptyList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	// Saved-but-empty list: the user holds nothing.
	empty := models.PermissionList{}
	user := createUser(t, db, models.User{
		Username:    "nils",
		Email:       "nils@example.org",
		Role:        perm.RoleAdmin,
		Permissions: &empty,
	})

	effective, err := svc.EffectivePermissions(user.ID)
	require.NoError(t, err)
	assert.Empty(t, effective)
}

func TestEffectivePermissionsUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user := createUser(t, db, models.User{Username: "bad", Email: "bad@example.org", Role: "superhero"})

	_, err := svc.EffectivePermissions(user.ID)
	assert.ErrorIs(t, err, perm.ErrUnknownRole)
}

func TestHasPermission(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user := createUser(t, db, models.User{Username: "vera", Email: "vera@example.org", Role: perm.RoleVolunteer})

	has, err := svc.HasPermission(user.ID, "EVENT_REQUESTS_CREATE")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = svc.HasPermission(user.ID, "USERS_MANAGE_PERMISSIONS")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestHasAnyAndAllPermissions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user := createUser(t, db, models.User{Username: "vera", Email: "vera@example.org", Role: perm.RoleVolunteer})

	any, err := svc.HasAnyPermission(user.ID, []perm.Key{"USERS_EDIT", "CHAT_POST"})
	require.NoError(t, err)
	assert.True(t, any)

	any, err = svc.HasAnyPermission(user.ID, nil)
	require.NoError(t, err)
	assert.False(t, any)

	all, err := svc.HasAllPermissions(user.ID, []perm.Key{"CHAT_VIEW", "CHAT_POST"})
	require.NoError(t, err)
	assert.True(t, all)

	all, err = svc.HasAllPermissions(user.ID, []perm.Key{"CHAT_VIEW", "USERS_EDIT"})
	require.NoError(t, err)
	assert.False(t, all)
}

func TestSavePermissions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user := createUser(t, db, models.User{Username: "vera", Email: "vera@example.org", Role: perm.RoleVolunteer})

	// Legacy spellings are accepted and stored canonically.
	err := svc.SavePermissions(user.ID, perm.RoleHost, []string{"access_hosts", "DOCUMENTS_VIEW"})
	require.NoError(t, err)

	var saved models.User
	require.NoError(t, db.First(&saved, user.ID).Error)

	assert.Equal(t, perm.RoleHost, saved.Role)
	require.NotNil(t, saved.Permissions)
	assert.ElementsMatch(t, []string{"DOCUMENTS_VIEW", "HOSTS_VIEW"}, []string(*saved.Permissions))

	// From now on the explicit list is authoritative.
	effective, err := svc.EffectivePermissions(user.ID)
	require.NoError(t, err)
	assert.True(t, effective.Equal(perm.NewSet("DOCUMENTS_VIEW", "HOSTS_VIEW")))
}

func TestSavePermissionsRejectsUnknownKey(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user := createUser(t, db, models.User{Username: "vera", Email: "vera@example.org", Role: perm.RoleVolunteer})

	// Structured-but-unknown keys survive migration and must be rejected here.
	err := svc.SavePermissions(user.ID, perm.RoleVolunteer, []string{"HOSTS_TELEPORT"})
	assert.ErrorIs(t, err, ErrUnknownPermissionKey)

	var saved models.User
	require.NoError(t, db.First(&saved, user.ID).Error)
	assert.Nil(t, saved.Permissions, "a rejected save must not persist anything")
}

func TestSavePermissionsRejectsUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user := createUser(t, db, models.User{Username: "vera", Email: "vera@example.org", Role: perm.RoleVolunteer})

	err := svc.SavePermissions(user.ID, "superhero", nil)
	assert.ErrorIs(t, err, perm.ErrUnknownRole)
}

func TestAssignRoleKeepsExplicitList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	explicit := models.PermissionList{"CHAT_VIEW"}
	user := createUser(t, db, models.User{
		Username:    "vera",
		Email:       "vera@example.org",
		Role:        perm.RoleVolunteer,
		Permissions: &explicit,
	})

	require.NoError(t, svc.AssignRole(user.ID, perm.RoleCoordinator))

	// Role changed, but the old explicit list stays authoritative.
	effective, err := svc.EffectivePermissions(user.ID)
	require.NoError(t, err)
	assert.True(t, effective.Equal(perm.NewSet("CHAT_VIEW")))
}
