package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popeskul/gridpulse/internal/models"
	"github.com/popeskul/gridpulse/internal/repository"
)

func TestNotificationRepository_Create(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()

	contactID, err := insertTestContact(db.DB, "+14155550100", "Frank", true)
	require.NoError(t, err)

	id, err := repo.Create(ctx, models.NewNotification{
		ContactID:         contactID,
		ProviderMessageID: "SM100",
		Content:           "Welcome to our service! Reply STOP to opt out anytime.",
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	list, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	n := list[0]
	assert.Equal(t, id, n.ID)
	assert.Equal(t, contactID, n.ContactID)
	assert.Equal(t, "SM100", n.ProviderMessageID.String)
	assert.Equal(t, models.MessageTypeManual, n.MessageType)
	assert.Equal(t, models.NotificationStatusSent, n.Status)
	assert.False(t, n.SentAt.IsZero())
	assert.Equal(t, "+14155550100", n.PhoneNumber)
	assert.Equal(t, "Frank", n.ContactName.String)

	_, err = repo.Create(ctx, models.NewNotification{
		ContactID:         contactID,
		ProviderMessageID: "SM100",
		Content:           "duplicate",
	})
	assert.Error(t, err, "provider message id is unique")
}

func TestNotificationRepository_UpdateStatus(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()

	tests := []struct {
		name      string
		update    models.StatusUpdate
		wantFound bool
		validate  func(t *testing.T, n *models.NotificationWithContact)
	}{
		{
			name:      "Delivered sets delivered_at",
			update:    models.StatusUpdate{ProviderMessageID: "SM200", Status: models.NotificationStatusDelivered},
			wantFound: true,
			validate: func(t *testing.T, n *models.NotificationWithContact) {
				assert.Equal(t, models.NotificationStatusDelivered, n.Status)
				assert.True(t, n.DeliveredAt.Valid)
				assert.False(t, n.ReadAt.Valid)
				assert.False(t, n.FailedAt.Valid)
			},
		},
		{
			name:      "Read sets read_at only",
			update:    models.StatusUpdate{ProviderMessageID: "SM200", Status: models.NotificationStatusRead},
			wantFound: true,
			validate: func(t *testing.T, n *models.NotificationWithContact) {
				assert.Equal(t, models.NotificationStatusRead, n.Status)
				assert.True(t, n.ReadAt.Valid)
				assert.False(t, n.DeliveredAt.Valid)
			},
		},
		{
			name: "Failed stores the error",
			update: models.StatusUpdate{
				ProviderMessageID: "SM200",
				Status:            models.NotificationStatusFailed,
				ErrorMessage:      "Message blocked",
			},
			wantFound: true,
			validate: func(t *testing.T, n *models.NotificationWithContact) {
				assert.Equal(t, models.NotificationStatusFailed, n.Status)
				assert.True(t, n.FailedAt.Valid)
				assert.Equal(t, "Message blocked", n.ErrorMessage.String)
			},
		},
		{
			name:      "Delivered after failed is accepted",
			update:    models.StatusUpdate{ProviderMessageID: "SM200", Status: models.NotificationStatusDelivered, ErrorMessage: "ignored"},
			wantFound: true,
			validate: func(t *testing.T, n *models.NotificationWithContact) {
				assert.Equal(t, models.NotificationStatusDelivered, n.Status)
				assert.False(t, n.FailedAt.Valid)
				assert.False(t, n.ErrorMessage.Valid)
			},
		},
		{
			name:      "Undelivered counts as a failure",
			update:    models.StatusUpdate{ProviderMessageID: "SM200", Status: models.NotificationStatusUndelivered, ErrorMessage: "Unreachable"},
			wantFound: true,
			validate: func(t *testing.T, n *models.NotificationWithContact) {
				assert.True(t, n.FailedAt.Valid)
				assert.Equal(t, "Unreachable", n.ErrorMessage.String)
			},
		},
		{
			name:      "Unknown provider id is a no-op",
			update:    models.StatusUpdate{ProviderMessageID: "SM-missing", Status: models.NotificationStatusDelivered},
			wantFound: false,
			validate: func(t *testing.T, n *models.NotificationWithContact) {
				assert.Equal(t, models.NotificationStatusUndelivered, n.Status)
			},
		},
		{
			name:      "Long provider status fits the column",
			update:    models.StatusUpdate{ProviderMessageID: "SM200", Status: "receiving_partially_delivered"},
			wantFound: true,
			validate: func(t *testing.T, n *models.NotificationWithContact) {
				assert.Equal(t, models.NotificationStatus("receiving_partially_delivered"), n.Status)
			},
		},
	}

	contactID, err := insertTestContact(db.DB, "+14155550200", "Grace", true)
	require.NoError(t, err)
	_, err = insertTestNotification(db.DB, contactID, ptr("SM200"), "hello", "sent", time.Now())
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.UpdateStatus(ctx, tt.update)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)

			list, err := repo.List(ctx, 0, 10)
			require.NoError(t, err)
			require.Len(t, list, 1)
			tt.validate(t, list[0])
		})
	}

	count, err := countRows(db.DB, "notifications")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "status callbacks never create rows")
}

func TestNotificationRepository_ListPagination(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()

	contactID, err := insertTestContact(db.DB, "+14155550300", "Heidi", true)
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		_, err := insertTestNotification(db.DB, contactID, nil, "message", "sent", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	first, err := repo.List(ctx, 0, 3)
	require.NoError(t, err)
	require.Len(t, first, 3)
	for i := 1; i < len(first); i++ {
		assert.True(t, first[i-1].SentAt.After(first[i].SentAt), "newest first")
	}

	second, err := repo.List(ctx, 3, 3)
	require.NoError(t, err)
	assert.Len(t, second, 2)

	empty, err := repo.List(ctx, 10, 3)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
