package perm

// Well-known permission keys referenced by route guards. Every value here
// must exist in the built-in catalog; TestWellKnownKeysExist guards that.
const (
	KeyHostsView   Key = "HOSTS_VIEW"
	KeyHostsCreate Key = "HOSTS_CREATE"
	KeyHostsEdit   Key = "HOSTS_EDIT"
	KeyHostsDelete Key = "HOSTS_DELETE"

	KeyEventRequestsView      Key = "EVENT_REQUESTS_VIEW"
	KeyEventRequestsCreate    Key = "EVENT_REQUESTS_CREATE"
	KeyEventRequestsEditOwn   Key = "EVENT_REQUESTS_EDIT_OWN"
	KeyEventRequestsEditAll   Key = "EVENT_REQUESTS_EDIT_ALL"
	KeyEventRequestsDeleteOwn Key = "EVENT_REQUESTS_DELETE_OWN"
	KeyEventRequestsDeleteAll Key = "EVENT_REQUESTS_DELETE_ALL"
	KeyEventRequestsApprove   Key = "EVENT_REQUESTS_APPROVE"

	KeyDocumentsView   Key = "DOCUMENTS_VIEW"
	KeyDocumentsUpload Key = "DOCUMENTS_UPLOAD"
	KeyDocumentsEdit   Key = "DOCUMENTS_EDIT"
	KeyDocumentsDelete Key = "DOCUMENTS_DELETE"

	KeyCollectionsView   Key = "COLLECTIONS_VIEW"
	KeyCollectionsRecord Key = "COLLECTIONS_RECORD"
	KeyCollectionsEdit   Key = "COLLECTIONS_EDIT"
	KeyCollectionsDelete Key = "COLLECTIONS_DELETE"

	KeyChatView     Key = "CHAT_VIEW"
	KeyChatPost     Key = "CHAT_POST"
	KeyChatModerate Key = "CHAT_MODERATE"

	KeyUsersView              Key = "USERS_VIEW"
	KeyUsersEdit              Key = "USERS_EDIT"
	KeyUsersManagePermissions Key = "USERS_MANAGE_PERMISSIONS"

	KeyNotificationsView Key = "NOTIFICATIONS_VIEW"
	KeyNotificationsSend Key = "NOTIFICATIONS_SEND"

	KeyReportsView   Key = "REPORTS_VIEW"
	KeyReportsExport Key = "REPORTS_EXPORT"
)
