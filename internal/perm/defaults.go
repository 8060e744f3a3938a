package perm

// Resource identifiers of the built-in catalog.
const (
	ResourceHosts         = "HOSTS"
	ResourceEventRequests = "EVENT_REQUESTS"
	ResourceDocuments     = "DOCUMENTS"
	ResourceCollections   = "COLLECTIONS"
	ResourceChat          = "CHAT"
	ResourceUsers         = "USERS"
	ResourceNotifications = "NOTIFICATIONS"
	ResourceReports       = "REPORTS"
)

// defaultResources declares every resource the application knows about,
// in the order the admin permission grid renders them.
var defaultResources = []Resource{
	{
		ID:          ResourceHosts,
		Label:       "Hosts",
		Description: "Host families and partner organizations",
		Icon:        "home",
		Color:       "teal",
		Actions: []Action{
			{ID: "VIEW", Label: "View hosts"},
			{ID: "CREATE", Label: "Add hosts"},
			{ID: "EDIT", Label: "Edit hosts"},
			{ID: "DELETE", Label: "Delete hosts"},
		},
	},
	{
		ID:          ResourceEventRequests,
		Label:       "Event Requests",
		Description: "Incoming event and delivery requests",
		Icon:        "calendar",
		Color:       "blue",
		Actions: []Action{
			{ID: "VIEW", Label: "View requests"},
			{ID: "CREATE", Label: "Create requests"},
			{ID: "EDIT_OWN", Label: "Edit own requests"},
			{ID: "EDIT_ALL", Label: "Edit all requests"},
			{ID: "DELETE_OWN", Label: "Delete own requests"},
			{ID: "DELETE_ALL", Label: "Delete all requests"},
			{ID: "APPROVE", Label: "Approve requests"},
		},
	},
	{
		ID:          ResourceDocuments,
		Label:       "Documents",
		Description: "Shared documents and forms",
		Icon:        "file",
		Color:       "orange",
		Actions: []Action{
			{ID: "VIEW", Label: "View documents"},
			{ID: "UPLOAD", Label: "Upload documents"},
			{ID: "EDIT", Label: "Edit documents"},
			{ID: "DELETE", Label: "Delete documents"},
		},
	},
	{
		ID:          ResourceCollections,
		Label:       "Collections",
		Description: "Donation and supply collection tracking",
		Icon:        "package",
		Color:       "green",
		Actions: []Action{
			{ID: "VIEW", Label: "View collections"},
			{ID: "RECORD", Label: "Record collections"},
			{ID: "EDIT", Label: "Edit collections"},
			{ID: "DELETE", Label: "Delete collections"},
		},
	},
	{
		ID:          ResourceChat,
		Label:       "Chat",
		Description: "Coordination chat channels",
		Icon:        "message-circle",
		Color:       "purple",
		Actions: []Action{
			{ID: "VIEW", Label: "Read chat"},
			{ID: "POST", Label: "Post messages"},
			{ID: "MODERATE", Label: "Moderate chat"},
		},
	},
	{
		ID:          ResourceUsers,
		Label:       "Users",
		Description: "Volunteer accounts and permissions",
		Icon:        "users",
		Color:       "red",
		Actions: []Action{
			{ID: "VIEW", Label: "View users"},
			{ID: "EDIT", Label: "Edit users"},
			{ID: "MANAGE_PERMISSIONS", Label: "Manage permissions"},
		},
	},
	{
		ID:          ResourceNotifications,
		Label:       "Notifications",
		Description: "E-mail notifications to volunteers and hosts",
		Icon:        "bell",
		Color:       "yellow",
		Actions: []Action{
			{ID: "VIEW", Label: "View notifications"},
			{ID: "SEND", Label: "Send notifications"},
		},
	},
	{
		ID:          ResourceReports,
		Label:       "Reports",
		Description: "Activity summaries and exports",
		Icon:        "bar-chart",
		Color:       "gray",
		Actions: []Action{
			{ID: "VIEW", Label: "View reports"},
			{ID: "EXPORT", Label: "Export reports"},
		},
	},
}

var defaultCatalog = mustCatalog()

func mustCatalog() *Catalog {
	c, err := NewCatalog(defaultResources)
	if err != nil {
		panic(err)
	}

	return c
}

// Default returns the built-in catalog. It is constructed once at package
// initialization and never mutated.
func Default() *Catalog {
	return defaultCatalog
}
