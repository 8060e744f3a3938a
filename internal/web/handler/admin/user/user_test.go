package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage"
	"gorm.io/gorm"

	"github.com/volunteerhub/volunteerhub/internal/auth"
	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/perm"
	websess "github.com/volunteerhub/volunteerhub/internal/web/session"
)

// testStorage is a minimal in-memory implementation of storage.Storage for tests.
type testStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ storage.Storage = (*testStorage)(nil)

func (s *testStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.data[key]
	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func (s *testStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string][]byte)
	}

	buf := make([]byte, len(val))
	copy(buf, val)
	s.data[key] = buf

	return nil
}

func (s *testStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

func (s *testStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

func (s *testStorage) Close() error { return nil }

func setupUserApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate user model: %v", err)
	}

	websess.Init(&testStorage{data: make(map[string][]byte)})

	app := fiber.New()

	cfg := &config.Config{
		Webserver: config.Webserver{Session: config.Session{ExpiryTime: time.Minute}},
	}

	var s Service
	s.Init(app, cfg, db, auth.NewService(db))

	return app, db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	lp := auth.NewLocalProvider(db)

	user, err := lp.CreateUser(username, username+"@example.com", "password123", "Test", "User", role)
	if err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}

	return user
}

// loginAs writes a session for the user and returns the cookie header value.
func loginAs(t *testing.T, user *models.User) string {
	t.Helper()

	sessionID, err := websess.GenerateSessionID()
	if err != nil {
		t.Fatalf("failed to generate session id: %v", err)
	}

	data := websess.Data{User: *user}
	if err := data.Write(sessionID, time.Minute); err != nil {
		t.Fatalf("failed to write session: %v", err)
	}

	return "session=" + sessionID
}

func doRequest(t *testing.T, app *fiber.App, method, target, cookie, body string) *http.Response {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	return resp
}

func decodeGrid(t *testing.T, resp *http.Response) GridResponse {
	t.Helper()

	defer func() {
		_ = resp.Body.Close()
	}()

	var grid GridResponse
	if err := json.NewDecoder(resp.Body).Decode(&grid); err != nil {
		t.Fatalf("failed to decode grid response: %v", err)
	}

	return grid
}

func grantedKeys(grid GridResponse) map[string]bool {
	out := make(map[string]bool)

	for _, resource := range grid.Resources {
		for _, action := range resource.Actions {
			out[action.Key] = action.Granted
		}
	}

	return out
}

func resourceState(t *testing.T, grid GridResponse, resourceID string) string {
	t.Helper()

	for _, resource := range grid.Resources {
		if resource.ID == resourceID {
			return resource.State
		}
	}

	t.Fatalf("resource %s not in grid", resourceID)

	return ""
}

func TestGetPermissions_RoleDefaults(t *testing.T) {
	app, db := setupUserApp(t)

	admin := createUser(t, db, "admin", perm.RoleAdmin)
	target := createUser(t, db, "vera", perm.RoleVolunteer)
	cookie := loginAs(t, admin)

	resp := doRequest(t, app, http.MethodGet, Path+"/"+itoa(target.ID)+"/permissions", cookie, "")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
	}

	grid := decodeGrid(t, resp)

	if grid.Explicit {
		t.Fatalf("freshly created user must not have an explicit permission list")
	}

	granted := grantedKeys(grid)
	if !granted["EVENT_REQUESTS_CREATE"] {
		t.Fatalf("volunteer default EVENT_REQUESTS_CREATE missing from grid")
	}

	if granted["USERS_MANAGE_PERMISSIONS"] {
		t.Fatalf("volunteer must not hold USERS_MANAGE_PERMISSIONS by default")
	}
}

func TestPutPermissions_ReplacesDefaults(t *testing.T) {
	app, db := setupUserApp(t)

	admin := createUser(t, db, "admin", perm.RoleAdmin)
	target := createUser(t, db, "vera", perm.RoleVolunteer)
	cookie := loginAs(t, admin)

	resp := doRequest(t, app, http.MethodPut, Path+"/"+itoa(target.ID)+"/permissions", cookie,
		`{"role":"volunteer","permissions":["REPORTS_VIEW"]}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
	}

	grid := decodeGrid(t, resp)

	if !grid.Explicit {
		t.Fatalf("saved permission list must mark the grid explicit")
	}

	granted := grantedKeys(grid)
	if !granted["REPORTS_VIEW"] {
		t.Fatalf("saved key REPORTS_VIEW missing from grid")
	}

	// The explicit list replaces the role defaults outright.
	if granted["EVENT_REQUESTS_CREATE"] {
		t.Fatalf("role default must not leak into an explicit permission list")
	}
}

func TestPutPermissions_EmptyListRevokesEverything(t *testing.T) {
	app, db := setupUserApp(t)

	admin := createUser(t, db, "admin", perm.RoleAdmin)
	target := createUser(t, db, "vera", perm.RoleVolunteer)
	cookie := loginAs(t, admin)

	resp := doRequest(t, app, http.MethodPut, Path+"/"+itoa(target.ID)+"/permissions", cookie,
		`{"role":"volunteer","permissions":[]}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
	}

	grid := decodeGrid(t, resp)

	if !grid.Explicit {
		t.Fatalf("saved empty list must mark the grid explicit")
	}

	for key, ok := range grantedKeys(grid) {
		if ok {
			t.Fatalf("expected no granted keys after saving an empty list, %s is granted", key)
		}
	}
}

func TestPutPermissions_RejectsUnknownKey(t *testing.T) {
	app, db := setupUserApp(t)

	admin := createUser(t, db, "admin", perm.RoleAdmin)
	target := createUser(t, db, "vera", perm.RoleVolunteer)
	cookie := loginAs(t, admin)

	resp := doRequest(t, app, http.MethodPut, Path+"/"+itoa(target.ID)+"/permissions", cookie,
		`{"role":"volunteer","permissions":["HOSTS_TELEPORT"]}`)

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", resp.StatusCode)
	}

	// The rejected save must not have persisted anything.
	var reloaded models.User
	if err := db.First(&reloaded, target.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}

	if reloaded.Permissions != nil {
		t.Fatalf("rejected save must leave the permission list untouched, got %v", *reloaded.Permissions)
	}
}

func TestPutPermissions_RejectsUnknownRole(t *testing.T) {
	app, db := setupUserApp(t)

	admin := createUser(t, db, "admin", perm.RoleAdmin)
	target := createUser(t, db, "vera", perm.RoleVolunteer)
	cookie := loginAs(t, admin)

	resp := doRequest(t, app, http.MethodPut, Path+"/"+itoa(target.ID)+"/permissions", cookie,
		`{"role":"superhero","permissions":[]}`)

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", resp.StatusCode)
	}
}

func TestToggleResource_RoundTrip(t *testing.T) {
	app, db := setupUserApp(t)

	admin := createUser(t, db, "admin", perm.RoleAdmin)
	target := createUser(t, db, "vera", perm.RoleVolunteer)
	cookie := loginAs(t, admin)

	togglePath := Path + "/" + itoa(target.ID) + "/permissions/toggle"

	resp := doRequest(t, app, http.MethodPost, togglePath, cookie, `{"resourceId":"HOSTS","on":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
	}

	grid := decodeGrid(t, resp)
	if got := resourceState(t, grid, "HOSTS"); got != string(perm.ToggleAll) {
		t.Fatalf("expected HOSTS state %q after toggle on, got %q", perm.ToggleAll, got)
	}

	// The toggle persisted an explicit list, and the response must say so
	// even on the first toggle of a never-saved user.
	if !grid.Explicit {
		t.Fatalf("grid must report the explicit list saved by the toggle")
	}

	// Keys from other resources survive the toggle.
	if !grantedKeys(grid)["CHAT_POST"] {
		t.Fatalf("toggling HOSTS must not drop unrelated keys")
	}

	resp = doRequest(t, app, http.MethodPost, togglePath, cookie, `{"resourceId":"HOSTS","on":false}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
	}

	grid = decodeGrid(t, resp)
	if got := resourceState(t, grid, "HOSTS"); got != string(perm.ToggleNone) {
		t.Fatalf("expected HOSTS state %q after toggle off, got %q", perm.ToggleNone, got)
	}

	if !grantedKeys(grid)["CHAT_POST"] {
		t.Fatalf("toggling HOSTS off must not drop unrelated keys")
	}
}

func TestToggleResource_UnknownResource(t *testing.T) {
	app, db := setupUserApp(t)

	admin := createUser(t, db, "admin", perm.RoleAdmin)
	target := createUser(t, db, "vera", perm.RoleVolunteer)
	cookie := loginAs(t, admin)

	resp := doRequest(t, app, http.MethodPost, Path+"/"+itoa(target.ID)+"/permissions/toggle", cookie,
		`{"resourceId":"PAYROLL","on":true}`)

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", resp.StatusCode)
	}
}

func TestGetPermissions_RequiresManagePermission(t *testing.T) {
	app, db := setupUserApp(t)

	volunteer := createUser(t, db, "vera", perm.RoleVolunteer)
	target := createUser(t, db, "tom", perm.RoleVolunteer)
	cookie := loginAs(t, volunteer)

	resp := doRequest(t, app, http.MethodGet, Path+"/"+itoa(target.ID)+"/permissions", cookie, "")

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 Forbidden, got %d", resp.StatusCode)
	}
}

func TestGetPermissions_RequiresSession(t *testing.T) {
	app, db := setupUserApp(t)

	target := createUser(t, db, "tom", perm.RoleVolunteer)

	resp := doRequest(t, app, http.MethodGet, Path+"/"+itoa(target.ID)+"/permissions", "", "")

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized, got %d", resp.StatusCode)
	}
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
