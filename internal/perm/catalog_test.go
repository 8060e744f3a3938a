package perm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogCompleteness(t *testing.T) {
	c := Default()
	all := c.Keys()

	total := 0

	for _, r := range c.Resources() {
		actions, err := c.Actions(r.ID)
		require.NoError(t, err)
		require.NotEmpty(t, actions, "resource %s has no actions", r.ID)

		for _, a := range actions {
			key := KeyFor(r.ID, a.ID)
			assert.True(t, all.Has(key), "key %s missing from Keys()", key)
			assert.True(t, c.IsValid(key))
			total++
		}
	}

	// No collisions: every (resource, action) pair contributes a distinct key.
	assert.Len(t, all, total)
}

func TestCatalogUnknownResource(t *testing.T) {
	c := Default()

	_, err := c.Actions("PAYROLL")
	assert.ErrorIs(t, err, ErrUnknownResource)

	_, err = c.ResourceKeys("PAYROLL")
	assert.ErrorIs(t, err, ErrUnknownResource)
}

func TestNewCatalogRejectsDuplicateResource(t *testing.T) {
	_, err := NewCatalog([]Resource{
		{ID: "HOSTS", Actions: []Action{{ID: "VIEW"}}},
		{ID: "HOSTS", Actions: []Action{{ID: "EDIT"}}},
	})
	assert.ErrorIs(t, err, ErrDuplicateResource)
}

func TestNewCatalogRejectsKeyCollision(t *testing.T) {
	// "A" + "B_C" and "A_B" + "C" concatenate to the same key string.
	_, err := NewCatalog([]Resource{
		{ID: "A", Actions: []Action{{ID: "B_C"}}},
		{ID: "A_B", Actions: []Action{{ID: "C"}}},
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestCatalogIsValid(t *testing.T) {
	c := Default()

	assert.True(t, c.IsValid("HOSTS_VIEW"))
	assert.True(t, c.IsValid("EVENT_REQUESTS_EDIT_OWN"))
	assert.False(t, c.IsValid("HOSTS_FLY"))
	assert.False(t, c.IsValid("hosts_view"))
	assert.False(t, c.IsValid(""))
}

func TestWellKnownKeysExist(t *testing.T) {
	c := Default()

	wellKnown := []Key{
		KeyHostsView, KeyHostsCreate, KeyHostsEdit, KeyHostsDelete,
		KeyEventRequestsView, KeyEventRequestsCreate,
		KeyEventRequestsEditOwn, KeyEventRequestsEditAll,
		KeyEventRequestsDeleteOwn, KeyEventRequestsDeleteAll,
		KeyEventRequestsApprove,
		KeyDocumentsView, KeyDocumentsUpload, KeyDocumentsEdit, KeyDocumentsDelete,
		KeyCollectionsView, KeyCollectionsRecord, KeyCollectionsEdit, KeyCollectionsDelete,
		KeyChatView, KeyChatPost, KeyChatModerate,
		KeyUsersView, KeyUsersEdit, KeyUsersManagePermissions,
		KeyNotificationsView, KeyNotificationsSend,
		KeyReportsView, KeyReportsExport,
	}

	for _, key := range wellKnown {
		assert.True(t, c.IsValid(key), "key %s missing from catalog", key)
	}
}

func TestKeysReturnsCopy(t *testing.T) {
	c := Default()

	keys := c.Keys()
	delete(keys, "HOSTS_VIEW")

	assert.True(t, c.IsValid("HOSTS_VIEW"), "mutating Keys() result must not affect the catalog")
}
