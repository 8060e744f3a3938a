package models

import "time"

// NotificationStatus is the delivery state of a notification.
type NotificationStatus string

const (
	// NotificationPending is queued for delivery.
	NotificationPending NotificationStatus = "pending"
	// NotificationSent was delivered to the mail server.
	NotificationSent NotificationStatus = "sent"
	// NotificationFailed could not be delivered.
	NotificationFailed NotificationStatus = "failed"
)

// Notification is an outgoing e-mail to a volunteer or host, recorded
// before delivery so sends are auditable and retryable.
type Notification struct {
	// ID is the unique identifier for the notification.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// DedupID is a UUID preventing double-sends of the same logical message.
	DedupID string `gorm:"size:36;uniqueIndex" json:"dedupId"`
	// RecipientEmail is the destination address.
	RecipientEmail string `gorm:"size:255;not null" json:"recipientEmail"`
	// Subject is the e-mail subject line.
	Subject string `gorm:"size:255;not null" json:"subject"`
	// Body is the plain-text e-mail body.
	Body string `gorm:"type:text" json:"body"`
	// Status is the delivery state (pending, sent, failed).
	Status NotificationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	// LastError holds the most recent delivery error, if any.
	LastError string `gorm:"size:500" json:"lastError"`
	// SentAt is when delivery succeeded (nil while pending or failed).
	SentAt *time.Time `json:"sentAt"`
	// CreatedAt is the timestamp when the notification was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the notification was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}
