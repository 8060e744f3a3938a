package perm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateKnownLegacyKeys(t *testing.T) {
	m := DefaultMigrator()

	// Every entry in the legacy table must yield exactly its documented
	// canonical key as a singleton set.
	for legacy, want := range defaultLegacyTable {
		got := m.Migrate([]string{legacy})
		assert.True(t, got.Equal(NewSet(want)), "migrate(%q) = %v, want {%s}", legacy, got.Strings(), want)
	}
}

func TestMigrateManyToOne(t *testing.T) {
	m := DefaultMigrator()

	got := m.Migrate([]string{"access_hosts", "view_hosts"})
	assert.True(t, got.Equal(NewSet("HOSTS_VIEW")))
}

func TestMigrateCaseInsensitive(t *testing.T) {
	m := DefaultMigrator()

	got := m.Migrate([]string{"Access_Hosts", "MANAGE_COLLECTIONS"})
	assert.True(t, got.Equal(NewSet("HOSTS_VIEW", "COLLECTIONS_EDIT")))
}

func TestMigratePassThroughAndDrop(t *testing.T) {
	m := DefaultMigrator()

	got := m.Migrate([]string{
		"HOSTS_VIEW",     // already canonical: passes through
		"FUTURE_THING",   // unknown but structured: passes through
		"superuser",      // unknown, no underscore: dropped
		"admin",          // dropped
		"",               // dropped
	})

	assert.True(t, got.Equal(NewSet("HOSTS_VIEW", "FUTURE_THING")), "got %v", got.Strings())
}

func TestMigrateIdempotent(t *testing.T) {
	m := DefaultMigrator()

	inputs := [][]string{
		{},
		{"access_hosts", "manage_collections", "post_chat"},
		{"HOSTS_VIEW", "garbage", "some_unknown_key"},
		{"view_documents", "view_documents", "DOCUMENTS_VIEW"},
	}

	for _, in := range inputs {
		once := m.Migrate(in)
		twice := m.Migrate(once.Strings())
		assert.True(t, once.Equal(twice), "migrate not idempotent for %v: %v vs %v", in, once.Strings(), twice.Strings())
	}
}

func TestMigrateEmptyInput(t *testing.T) {
	m := DefaultMigrator()

	assert.Empty(t, m.Migrate(nil))
	assert.Empty(t, m.Migrate([]string{}))
}

func TestNewMigratorRejectsDanglingTarget(t *testing.T) {
	c := Default()

	_, err := NewMigrator(c, map[string]Key{"access_hosts": "HOSTS_TELEPORT"})
	require.ErrorIs(t, err, ErrDanglingKey)
}
