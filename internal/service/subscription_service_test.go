package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/popeskul/gridpulse/internal/events"
	"github.com/popeskul/gridpulse/internal/gateway"
	"github.com/popeskul/gridpulse/internal/models"
	"github.com/popeskul/gridpulse/internal/repository"
	"github.com/popeskul/gridpulse/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newSubscriptionService(d *testDeps) service.SubscriptionService {
	return service.NewSubscriptionService(d.cfg, d.repo, d.gateway, d.cache, d.publisher, d.logger)
}

func TestSubscriptionService_OptIn(t *testing.T) {
	d := newTestDeps(t)
	svc := newSubscriptionService(d)
	ctx := context.Background()

	name := "Jane"
	contact := newContact(1, "+10712345678", true)
	contact.Name = sql.NullString{String: name, Valid: true}

	d.contacts.EXPECT().Upsert(ctx, "+10712345678", &name).Return(contact, nil)
	d.contacts.EXPECT().OptIn(ctx, "+10712345678").Return(contact, nil)
	d.publisher.EXPECT().
		Publish(ctx, "+10712345678", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, event events.Event) error {
			assert.Equal(t, events.TypeContactOptedIn, event.Type)
			payload, ok := event.Payload.(events.ContactPayload)
			require.True(t, ok)
			assert.Equal(t, int64(1), payload.ContactID)
			assert.Equal(t, service.SourceAPI, payload.Source)
			return nil
		})
	d.gateway.EXPECT().
		SendTemplate(ctx, "+10712345678", "welcome", map[string]string{"name": "Jane"}).
		Return(&gateway.SendResult{MessageID: "SM1", Status: "queued", Body: "Welcome Jane"}, nil)
	d.notifications.EXPECT().Create(ctx, models.NewNotification{
		ContactID:         1,
		ProviderMessageID: "SM1",
		MessageType:       models.MessageTypeWelcome,
		Content:           "Welcome Jane",
		Status:            models.NotificationStatusQueued,
	}).Return(int64(10), nil)
	d.cache.EXPECT().StoreSent(ctx, int64(10), "SM1", gomock.Any()).Return(nil)

	got, err := svc.OptIn(ctx, "0712345678", &name)

	require.NoError(t, err)
	assert.Equal(t, contact, got)
}

func TestSubscriptionService_OptIn_WelcomeFailureKeepsContactOptedIn(t *testing.T) {
	d := newTestDeps(t)
	svc := newSubscriptionService(d)
	ctx := context.Background()

	contact := newContact(2, "+14155550100", true)

	d.contacts.EXPECT().Upsert(ctx, "+14155550100", (*string)(nil)).Return(contact, nil)
	d.contacts.EXPECT().OptIn(ctx, "+14155550100").Return(contact, nil)
	d.publisher.EXPECT().Publish(ctx, gomock.Any(), gomock.Any()).Return(nil)
	d.gateway.EXPECT().
		SendTemplate(ctx, "+14155550100", "welcome", map[string]string{}).
		Return(nil, gateway.ErrSendFailed)

	got, err := svc.OptIn(ctx, "(415) 555-0100", nil)

	require.NoError(t, err)
	assert.True(t, got.OptedIn)
}

func TestSubscriptionService_OptIn_BlankNameIsIgnored(t *testing.T) {
	d := newTestDeps(t)
	svc := newSubscriptionService(d)
	ctx := context.Background()

	contact := newContact(3, "+14155550101", true)
	blank := "   "

	d.contacts.EXPECT().Upsert(ctx, "+14155550101", (*string)(nil)).Return(contact, nil)
	d.contacts.EXPECT().OptIn(ctx, "+14155550101").Return(contact, nil)
	d.publisher.EXPECT().Publish(ctx, gomock.Any(), gomock.Any()).Return(nil)
	d.gateway.EXPECT().SendTemplate(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, gateway.ErrSendFailed)

	_, err := svc.OptIn(ctx, "4155550101", &blank)
	require.NoError(t, err)
}

func TestSubscriptionService_OptIn_Validation(t *testing.T) {
	tests := []struct {
		name        string
		phoneNumber string
	}{
		{name: "empty", phoneNumber: ""},
		{name: "whitespace", phoneNumber: "   "},
		{name: "no digits", phoneNumber: "call me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t)
			svc := newSubscriptionService(d)

			_, err := svc.OptIn(context.Background(), tt.phoneNumber, nil)

			var validationErr *service.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestSubscriptionService_OptIn_StoreFailure(t *testing.T) {
	d := newTestDeps(t)
	svc := newSubscriptionService(d)
	ctx := context.Background()

	d.contacts.EXPECT().Upsert(ctx, "+14155550102", (*string)(nil)).Return(nil, errors.New("db down"))

	_, err := svc.OptIn(ctx, "4155550102", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save contact")
}

func TestSubscriptionService_OptOut(t *testing.T) {
	t.Run("opted-in contact", func(t *testing.T) {
		d := newTestDeps(t)
		svc := newSubscriptionService(d)
		ctx := context.Background()

		contact := newContact(4, "+14155550103", false)
		d.contacts.EXPECT().OptOut(ctx, "+14155550103").Return(contact, nil)
		d.publisher.EXPECT().
			Publish(ctx, "+14155550103", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, event events.Event) error {
				assert.Equal(t, events.TypeContactOptedOut, event.Type)
				return nil
			})

		got, err := svc.OptOut(ctx, "+14155550103")

		require.NoError(t, err)
		assert.False(t, got.OptedIn)
	})

	t.Run("unknown contact", func(t *testing.T) {
		d := newTestDeps(t)
		svc := newSubscriptionService(d)
		ctx := context.Background()

		d.contacts.EXPECT().OptOut(ctx, "+14155550104").Return(nil, repository.ErrNotFound)

		_, err := svc.OptOut(ctx, "+14155550104")

		assert.ErrorIs(t, err, service.ErrContactNotFound)
	})
}

func TestSubscriptionService_Resubscribe_SendsNoWelcome(t *testing.T) {
	d := newTestDeps(t)
	svc := newSubscriptionService(d)
	ctx := context.Background()

	contact := newContact(5, "+14155550105", true)
	d.contacts.EXPECT().Upsert(ctx, "+14155550105", (*string)(nil)).Return(contact, nil)
	d.contacts.EXPECT().OptIn(ctx, "+14155550105").Return(contact, nil)
	d.publisher.EXPECT().Publish(ctx, gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	got, err := svc.Resubscribe(ctx, "+14155550105")

	require.NoError(t, err)
	assert.Equal(t, contact, got)
}

func TestSubscriptionService_ListContacts(t *testing.T) {
	d := newTestDeps(t)
	svc := newSubscriptionService(d)
	ctx := context.Background()

	optedIn := true
	contacts := []*models.Contact{newContact(1, "+1", true)}
	d.contacts.EXPECT().List(ctx, &optedIn).Return(contacts, nil)

	got, err := svc.ListContacts(ctx, &optedIn)

	require.NoError(t, err)
	assert.Equal(t, contacts, got)
}
