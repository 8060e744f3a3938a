package perm

import "fmt"

// Role identifiers of the built-in role table.
const (
	RoleAdmin       = "admin"
	RoleCoordinator = "coordinator"
	RoleVolunteer   = "volunteer"
	RoleHost        = "host"
)

// Role is a named bundle of default permission keys.
type Role struct {
	// ID is the role identifier stored on user records (e.g. "volunteer").
	ID string
	// DisplayName is the human-readable role name.
	DisplayName string
	// Defaults are the permission keys granted to users with this role that
	// have never been saved with an explicit permission set.
	Defaults Set
}

// ToggleState is the aggregate per-resource state of an effective
// permission set, used to drive the tri-state checkboxes in the admin grid.
type ToggleState string

const (
	// ToggleNone means no action of the resource is in the effective set.
	ToggleNone ToggleState = "none"
	// TogglePartial means some but not all actions are in the effective set.
	TogglePartial ToggleState = "partial"
	// ToggleAll means every action of the resource is in the effective set.
	ToggleAll ToggleState = "all"
)

// Resolver computes effective permission sets from role defaults and
// explicit per-user overrides. It is stateless after construction.
type Resolver struct {
	catalog *Catalog
	roles   map[string]Role
	order   []string
}

// NewResolver validates the role table against the catalog and builds a
// resolver. A role default referencing a key the catalog does not define is
// a data-integrity violation and fails construction.
func NewResolver(catalog *Catalog, roles []Role) (*Resolver, error) {
	r := &Resolver{
		catalog: catalog,
		roles:   make(map[string]Role, len(roles)),
		order:   make([]string, 0, len(roles)),
	}

	for _, role := range roles {
		for key := range role.Defaults {
			if !catalog.IsValid(key) {
				return nil, fmt.Errorf("%w: role %s grants %s", ErrDanglingKey, role.ID, key)
			}
		}

		r.roles[role.ID] = role
		r.order = append(r.order, role.ID)
	}

	return r, nil
}

// Catalog returns the catalog the resolver was built over.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Roles returns the role table in declaration order.
func (r *Resolver) Roles() []Role {
	out := make([]Role, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.roles[id])
	}

	return out
}

// DefaultsForRole returns a copy of the role's default permission set.
// Unknown roles fail with ErrUnknownRole rather than degrading to an empty
// set, so catalog/data drift surfaces immediately.
func (r *Resolver) DefaultsForRole(roleID string) (Set, error) {
	role, ok := r.roles[roleID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRole, roleID)
	}

	return role.Defaults.Clone(), nil
}

// Resolve computes the effective permission set for a user.
//
// If an explicit override set has ever been saved for the user (explicit is
// non-nil, even when empty), it is returned in place of the role defaults,
// not merged with them. Changing a user's role after explicit permissions
// were saved therefore does NOT pick up the new role's defaults until an
// administrator re-saves. Every downstream access decision depends on this
// replace-not-merge contract.
func (r *Resolver) Resolve(roleID string, explicit Set) (Set, error) {
	if explicit != nil {
		return explicit.Clone(), nil
	}

	return r.DefaultsForRole(roleID)
}

// ToggleState projects the aggregate grant state of one resource from an
// effective permission set. It is recomputed on every read, never stored.
func (r *Resolver) ToggleState(resourceID string, effective Set) (ToggleState, error) {
	keys, err := r.catalog.ResourceKeys(resourceID)
	if err != nil {
		return "", err
	}

	granted := 0
	for key := range keys {
		if effective.Has(key) {
			granted++
		}
	}

	switch granted {
	case 0:
		return ToggleNone, nil
	case len(keys):
		return ToggleAll, nil
	default:
		return TogglePartial, nil
	}
}

// Toggle returns a new effective set with every key of the resource added
// (on) or removed (off). The input set is not mutated.
func (r *Resolver) Toggle(resourceID string, effective Set, on bool) (Set, error) {
	keys, err := r.catalog.ResourceKeys(resourceID)
	if err != nil {
		return nil, err
	}

	out := effective.Clone()

	for key := range keys {
		if on {
			out.Add(key)
		} else {
			delete(out, key)
		}
	}

	return out, nil
}

// defaultRoles is the built-in role table. Admin gets every key; the other
// roles get curated subsets matching their day-to-day duties.
var defaultRoles = []Role{
	{
		ID:          RoleAdmin,
		DisplayName: "Administrator",
		Defaults:    defaultCatalog.Keys(),
	},
	{
		ID:          RoleCoordinator,
		DisplayName: "Coordinator",
		Defaults: NewSet(
			"HOSTS_VIEW", "HOSTS_CREATE", "HOSTS_EDIT",
			"EVENT_REQUESTS_VIEW", "EVENT_REQUESTS_CREATE",
			"EVENT_REQUESTS_EDIT_ALL", "EVENT_REQUESTS_APPROVE",
			"DOCUMENTS_VIEW", "DOCUMENTS_UPLOAD", "DOCUMENTS_EDIT",
			"COLLECTIONS_VIEW", "COLLECTIONS_RECORD", "COLLECTIONS_EDIT",
			"CHAT_VIEW", "CHAT_POST", "CHAT_MODERATE",
			"USERS_VIEW",
			"NOTIFICATIONS_VIEW", "NOTIFICATIONS_SEND",
			"REPORTS_VIEW", "REPORTS_EXPORT",
		),
	},
	{
		ID:          RoleVolunteer,
		DisplayName: "Volunteer",
		Defaults: NewSet(
			"HOSTS_VIEW",
			"EVENT_REQUESTS_VIEW", "EVENT_REQUESTS_CREATE", "EVENT_REQUESTS_EDIT_OWN",
			"DOCUMENTS_VIEW",
			"COLLECTIONS_VIEW", "COLLECTIONS_RECORD",
			"CHAT_VIEW", "CHAT_POST",
		),
	},
	{
		ID:          RoleHost,
		DisplayName: "Host",
		Defaults: NewSet(
			"EVENT_REQUESTS_VIEW", "EVENT_REQUESTS_CREATE",
			"EVENT_REQUESTS_EDIT_OWN", "EVENT_REQUESTS_DELETE_OWN",
			"DOCUMENTS_VIEW",
			"CHAT_VIEW", "CHAT_POST",
		),
	},
}

var defaultResolver = mustResolver()

func mustResolver() *Resolver {
	r, err := NewResolver(defaultCatalog, defaultRoles)
	if err != nil {
		panic(err)
	}

	return r
}

// DefaultResolver returns the resolver over the built-in catalog and role
// table.
func DefaultResolver() *Resolver {
	return defaultResolver
}
