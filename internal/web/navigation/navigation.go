// Package navigation builds the permission-filtered menu the SPA renders.
package navigation

import "github.com/volunteerhub/volunteerhub/internal/perm"

// Item represents a single menu entry.
type Item struct {
	Title string `json:"title"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
	// Requires is the permission key gating the entry; empty means
	// visible to every authenticated user.
	Requires perm.Key `json:"-"`
}

// Section groups menu entries under a heading.
type Section struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// menu is the full application menu before permission filtering.
var menu = []Section{
	{
		Title: "Coordination",
		Items: []Item{
			{Title: "Dashboard", Path: "/dashboard", Icon: "layout", Requires: perm.KeyEventRequestsView},
			{Title: "Event Requests", Path: "/event-requests", Icon: "calendar", Requires: perm.KeyEventRequestsView},
			{Title: "Hosts", Path: "/hosts", Icon: "home", Requires: perm.KeyHostsView},
			{Title: "Collections", Path: "/collections", Icon: "package", Requires: perm.KeyCollectionsView},
		},
	},
	{
		Title: "Resources",
		Items: []Item{
			{Title: "Documents", Path: "/documents", Icon: "file", Requires: perm.KeyDocumentsView},
			{Title: "Reports", Path: "/reports", Icon: "bar-chart", Requires: perm.KeyReportsView},
		},
	},
	{
		Title: "Administration",
		Items: []Item{
			{Title: "Users", Path: "/admin/users", Icon: "users", Requires: perm.KeyUsersView},
			{Title: "Notifications", Path: "/admin/notifications", Icon: "bell", Requires: perm.KeyNotificationsView},
			{Title: "Settings", Path: "/admin/settings", Icon: "settings", Requires: perm.KeyUsersEdit},
		},
	},
}

// Build returns the menu sections the given effective permission set may
// see. Sections with no visible entries are dropped entirely.
func Build(effective perm.Set) []Section {
	out := make([]Section, 0, len(menu))

	for _, section := range menu {
		visible := make([]Item, 0, len(section.Items))

		for _, item := range section.Items {
			if item.Requires == "" || effective.Has(item.Requires) {
				visible = append(visible, item)
			}
		}

		if len(visible) > 0 {
			out = append(out, Section{Title: section.Title, Items: visible})
		}
	}

	return out
}
