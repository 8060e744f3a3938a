package notify

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Notification{}))

	return db
}

func TestQueueIsIdempotentPerDedupID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.SMTP{Enabled: false})

	first, err := svc.Queue("host@example.org", "Hello", "body", "dedup-1")
	require.NoError(t, err)
	assert.Equal(t, models.NotificationPending, first.Status)

	second, err := svc.Queue("host@example.org", "Hello", "body", "dedup-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestQueueGeneratesDedupID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.SMTP{Enabled: false})

	first, err := svc.Queue("a@example.org", "One", "body", "")
	require.NoError(t, err)

	second, err := svc.Queue("a@example.org", "One", "body", "")
	require.NoError(t, err)

	assert.NotEmpty(t, first.DedupID)
	assert.NotEqual(t, first.DedupID, second.DedupID)
}

func TestSendDisabled(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.SMTP{Enabled: false})

	notification, err := svc.Queue("host@example.org", "Hello", "body", "dedup-2")
	require.NoError(t, err)

	err = svc.Send(notification)
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = svc.SendPending()
	assert.ErrorIs(t, err, ErrDisabled)

	// The row stays pending for a later retry.
	var saved models.Notification
	require.NoError(t, db.First(&saved, notification.ID).Error)
	assert.Equal(t, models.NotificationPending, saved.Status)
}

func TestEventRequestDecided(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.SMTP{Enabled: false})

	request := &models.EventRequest{
		ID:            7,
		Status:        models.EventRequestApproved,
		ContactName:   "Maria",
		ContactEmail:  "maria@example.org",
		SandwichCount: 120,
		EventDate:     time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
	}

	svc.EventRequestDecided(request)
	// Repeating the same decision must not queue a second message.
	svc.EventRequestDecided(request)

	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)

	assert.Equal(t, "maria@example.org", notifications[0].RecipientEmail)
	assert.Contains(t, notifications[0].Subject, "approved")
	assert.Contains(t, notifications[0].Body, "120 sandwiches")

	// A different decision for the same request is a new logical message.
	request.Status = models.EventRequestDeclined
	svc.EventRequestDecided(request)

	require.NoError(t, db.Find(&notifications).Error)
	assert.Len(t, notifications, 2)
}

func TestEventRequestDecidedSkipsPendingAndMissingEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.SMTP{Enabled: false})

	svc.EventRequestDecided(&models.EventRequest{ID: 1, Status: models.EventRequestPending, ContactEmail: "x@example.org"})
	svc.EventRequestDecided(&models.EventRequest{ID: 2, Status: models.EventRequestApproved})

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}
