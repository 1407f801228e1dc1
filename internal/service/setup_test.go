package service_test

import (
	"testing"

	cachemocks "github.com/popeskul/gridpulse/internal/cache/mocks"
	"github.com/popeskul/gridpulse/internal/config"
	eventmocks "github.com/popeskul/gridpulse/internal/events/mocks"
	gatewaymocks "github.com/popeskul/gridpulse/internal/gateway/mocks"
	"github.com/popeskul/gridpulse/internal/models"
	"github.com/popeskul/gridpulse/internal/repository/mocks"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type testDeps struct {
	cfg           *config.Config
	repo          *mocks.MockRepository
	contacts      *mocks.MockContactRepository
	notifications *mocks.MockNotificationRepository
	residents     *mocks.MockResidentRepository
	issues        *mocks.MockIssueRepository
	posts         *mocks.MockPostRepository
	businesses    *mocks.MockBusinessRepository
	estates       *mocks.MockEstateRepository
	gateway       *gatewaymocks.MockGateway
	cache         *cachemocks.MockMessageCache
	publisher     *eventmocks.MockPublisher
	logger        *zap.Logger
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()

	ctrl := gomock.NewController(t)

	d := &testDeps{
		cfg: &config.Config{
			WhatsApp:  config.WhatsAppConfig{DefaultCountryCode: "1"},
			Broadcast: config.BroadcastConfig{DelayMS: 0},
		},
		repo:          mocks.NewMockRepository(ctrl),
		contacts:      mocks.NewMockContactRepository(ctrl),
		notifications: mocks.NewMockNotificationRepository(ctrl),
		residents:     mocks.NewMockResidentRepository(ctrl),
		issues:        mocks.NewMockIssueRepository(ctrl),
		posts:         mocks.NewMockPostRepository(ctrl),
		businesses:    mocks.NewMockBusinessRepository(ctrl),
		estates:       mocks.NewMockEstateRepository(ctrl),
		gateway:       gatewaymocks.NewMockGateway(ctrl),
		cache:         cachemocks.NewMockMessageCache(ctrl),
		publisher:     eventmocks.NewMockPublisher(ctrl),
		logger:        zap.NewNop(),
	}

	d.repo.EXPECT().Contact().Return(d.contacts).AnyTimes()
	d.repo.EXPECT().Notification().Return(d.notifications).AnyTimes()
	d.repo.EXPECT().Resident().Return(d.residents).AnyTimes()
	d.repo.EXPECT().Issue().Return(d.issues).AnyTimes()
	d.repo.EXPECT().Post().Return(d.posts).AnyTimes()
	d.repo.EXPECT().Business().Return(d.businesses).AnyTimes()
	d.repo.EXPECT().Estate().Return(d.estates).AnyTimes()

	return d
}

func newContact(id int64, phoneNumber string, optedIn bool) *models.Contact {
	return &models.Contact{
		ID:          id,
		PhoneNumber: phoneNumber,
		OptedIn:     optedIn,
	}
}
