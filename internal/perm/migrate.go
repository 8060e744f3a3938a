package perm

import (
	"fmt"
	"strings"
)

// Migrator translates possibly-legacy permission strings into canonical
// permission keys. The legacy table is many-to-one: several historical
// spellings may map to the same canonical key.
type Migrator struct {
	table map[string]Key
}

// NewMigrator validates that every mapping target exists in the catalog and
// builds a migrator. Legacy spellings are matched case-insensitively, so the
// table must be keyed by lowercase strings.
func NewMigrator(catalog *Catalog, table map[string]Key) (*Migrator, error) {
	for legacy, target := range table {
		if !catalog.IsValid(target) {
			return nil, fmt.Errorf("%w: %s maps to %s", ErrDanglingKey, legacy, target)
		}
	}

	return &Migrator{table: table}, nil
}

// Migrate translates a stored permission list into a canonical key set.
//
// For each input: lowercase it and look it up in the legacy table. A hit
// emits the mapped canonical key. A miss that contains an underscore is
// passed through unchanged: it is either already canonical or an
// unrecognized-but-structured key, and historical data is too messy to
// reject here. Anything else is dropped silently.
//
// Migrating an already-migrated set is a no-op: canonical keys miss the
// lowercase table and pass the underscore test, so they round-trip.
func (m *Migrator) Migrate(old []string) Set {
	out := make(Set, len(old))

	for _, raw := range old {
		if mapped, ok := m.table[strings.ToLower(raw)]; ok {
			out.Add(mapped)
			continue
		}

		if strings.Contains(raw, "_") {
			out.Add(Key(raw))
		}
	}

	return out
}

// defaultLegacyTable maps every pre-canonicalization permission spelling
// that ever shipped onto the current key space.
var defaultLegacyTable = map[string]Key{
	"access_hosts": "HOSTS_VIEW",
	"view_hosts":   "HOSTS_VIEW",
	"manage_hosts": "HOSTS_EDIT",
	"add_hosts":    "HOSTS_CREATE",

	"access_requests":  "EVENT_REQUESTS_VIEW",
	"view_requests":    "EVENT_REQUESTS_VIEW",
	"create_requests":  "EVENT_REQUESTS_CREATE",
	"manage_requests":  "EVENT_REQUESTS_EDIT_ALL",
	"approve_requests": "EVENT_REQUESTS_APPROVE",

	"access_documents": "DOCUMENTS_VIEW",
	"view_documents":   "DOCUMENTS_VIEW",
	"upload_documents": "DOCUMENTS_UPLOAD",
	"manage_documents": "DOCUMENTS_EDIT",

	"access_collections": "COLLECTIONS_VIEW",
	"view_collections":   "COLLECTIONS_VIEW",
	"record_collections": "COLLECTIONS_RECORD",
	"manage_collections": "COLLECTIONS_EDIT",

	"access_chat":   "CHAT_VIEW",
	"post_chat":     "CHAT_POST",
	"moderate_chat": "CHAT_MODERATE",

	"access_users":       "USERS_VIEW",
	"manage_users":       "USERS_EDIT",
	"manage_permissions": "USERS_MANAGE_PERMISSIONS",

	"send_notifications": "NOTIFICATIONS_SEND",

	"access_reports": "REPORTS_VIEW",
	"export_reports": "REPORTS_EXPORT",
}

var defaultMigrator = mustMigrator()

func mustMigrator() *Migrator {
	m, err := NewMigrator(defaultCatalog, defaultLegacyTable)
	if err != nil {
		panic(err)
	}

	return m
}

// DefaultMigrator returns the migrator over the built-in legacy table.
func DefaultMigrator() *Migrator {
	return defaultMigrator
}
