package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"footballadmin/internal/observability"
	"footballadmin/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMatchStore is a mock implementation of MatchStore
type MockMatchStore struct {
	mock.Mock
}

func (m *MockMatchStore) CreateMatch(ctx context.Context, params store.CreateMatchParams) (store.Match, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(store.Match), args.Error(1)
}

func (m *MockMatchStore) GetMatchByID(ctx context.Context, matchID uuid.UUID) (store.Match, error) {
	args := m.Called(ctx, matchID)
	return args.Get(0).(store.Match), args.Error(1)
}

func (m *MockMatchStore) ListMatches(ctx context.Context) ([]store.Match, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.Match), args.Error(1)
}

func (m *MockMatchStore) UpdateMatch(ctx context.Context, matchID uuid.UUID, params store.UpdateMatchParams) (store.Match, error) {
	args := m.Called(ctx, matchID, params)
	return args.Get(0).(store.Match), args.Error(1)
}

func (m *MockMatchStore) DeleteMatch(ctx context.Context, matchID uuid.UUID) error {
	args := m.Called(ctx, matchID)
	return args.Error(0)
}

func (m *MockMatchStore) SetMatchLive(ctx context.Context, matchID uuid.UUID, isLive bool) (store.Match, error) {
	args := m.Called(ctx, matchID, isLive)
	return args.Get(0).(store.Match), args.Error(1)
}

func (m *MockMatchStore) SetMatchNotifications(ctx context.Context, matchID uuid.UUID, enabled bool) (store.Match, error) {
	args := m.Called(ctx, matchID, enabled)
	return args.Get(0).(store.Match), args.Error(1)
}

func (m *MockMatchStore) GetTeamByID(ctx context.Context, teamID uuid.UUID) (store.Team, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(store.Team), args.Error(1)
}

func (m *MockMatchStore) GetChannelByID(ctx context.Context, channelID uuid.UUID) (store.Channel, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(store.Channel), args.Error(1)
}

func (m *MockMatchStore) CreateCampaign(ctx context.Context, params store.CreateCampaignParams) (store.Campaign, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(store.Campaign), args.Error(1)
}

func (m *MockMatchStore) MarkCampaignSent(ctx context.Context, campaignID uuid.UUID, messageID string, stats store.CampaignStats, sentAt time.Time) (store.Campaign, error) {
	args := m.Called(ctx, campaignID, messageID, stats, sentAt)
	return args.Get(0).(store.Campaign), args.Error(1)
}

// MockSender is a mock push provider
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (string, error) {
	args := m.Called(ctx, topic, title, body, data)
	return args.String(0), args.Error(1)
}

func TestCreateMatch(t *testing.T) {
	ctx := context.Background()
	logger := observability.NewLogger()
	teamID := uuid.New()
	channelID := uuid.New()

	t.Run("rejects a match between a team and itself", func(t *testing.T) {
		mockStore := new(MockMatchStore)
		processor := New(mockStore, new(MockSender), logger)

		_, err := processor.CreateMatch(ctx, CreateMatchParams{
			Title:      "Derby",
			Team1ID:    teamID,
			Team2ID:    teamID,
			ChannelIDs: []uuid.UUID{channelID},
		})
		assert.ErrorIs(t, err, ErrSameTeams)
		mockStore.AssertNotCalled(t, "CreateMatch", mock.Anything, mock.Anything)
	})

	t.Run("rejects a match without channels", func(t *testing.T) {
		mockStore := new(MockMatchStore)
		processor := New(mockStore, new(MockSender), logger)

		_, err := processor.CreateMatch(ctx, CreateMatchParams{
			Title:   "Derby",
			Team1ID: teamID,
			Team2ID: uuid.New(),
		})
		assert.ErrorIs(t, err, ErrNoChannels)
	})

	t.Run("rejects a missing referenced team", func(t *testing.T) {
		mockStore := new(MockMatchStore)
		processor := New(mockStore, new(MockSender), logger)

		mockStore.On("GetTeamByID", mock.Anything, mock.Anything).
			Return(store.Team{}, store.ErrNotFound)

		_, err := processor.CreateMatch(ctx, CreateMatchParams{
			Title:      "Derby",
			Team1ID:    teamID,
			Team2ID:    uuid.New(),
			ChannelIDs: []uuid.UUID{channelID},
		})
		assert.ErrorIs(t, err, ErrTeamNotFound)
	})
}

func TestToggleLive(t *testing.T) {
	ctx := context.Background()
	logger := observability.NewLogger()
	matchID := uuid.New()

	t.Run("maps missing match to not found", func(t *testing.T) {
		mockStore := new(MockMatchStore)
		processor := New(mockStore, new(MockSender), logger)

		mockStore.On("SetMatchLive", mock.Anything, matchID, true).
			Return(store.Match{}, store.ErrNotFound)

		_, err := processor.ToggleLive(ctx, matchID, true)
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})

	t.Run("going live with notifications disabled sends nothing", func(t *testing.T) {
		mockStore := new(MockMatchStore)
		mockSender := new(MockSender)
		processor := New(mockStore, mockSender, logger)

		mockStore.On("SetMatchLive", mock.Anything, matchID, true).
			Return(store.Match{ID: matchID, IsLive: true, NotificationsEnabled: false}, nil)

		match, err := processor.ToggleLive(ctx, matchID, true)
		assert.NoError(t, err)
		assert.True(t, match.IsLive)
		mockSender.AssertNotCalled(t, "SendToTopic", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("a failed notification does not fail the toggle", func(t *testing.T) {
		mockStore := new(MockMatchStore)
		mockSender := new(MockSender)
		processor := New(mockStore, mockSender, logger)

		live := store.Match{
			ID:                   matchID,
			Title:                "Derby",
			Team1ID:              uuid.New(),
			Team2ID:              uuid.New(),
			IsLive:               true,
			NotificationsEnabled: true,
		}
		mockStore.On("SetMatchLive", mock.Anything, matchID, true).Return(live, nil)
		mockStore.On("GetMatchByID", mock.Anything, matchID).Return(live, nil)
		mockStore.On("GetTeamByID", mock.Anything, mock.Anything).
			Return(store.Team{}, store.ErrNotFound)
		mockSender.On("SendToTopic", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("provider unavailable"))

		match, err := processor.ToggleLive(ctx, matchID, true)
		assert.NoError(t, err)
		assert.True(t, match.IsLive)
	})
}

func TestSendLiveNotification(t *testing.T) {
	ctx := context.Background()
	logger := observability.NewLogger()
	matchID := uuid.New()
	team1ID := uuid.New()
	team2ID := uuid.New()

	liveMatch := store.Match{
		ID:      matchID,
		Title:   "North London Derby",
		Team1ID: team1ID,
		Team2ID: team2ID,
		IsLive:  true,
	}

	t.Run("rejects a match that is not live", func(t *testing.T) {
		mockStore := new(MockMatchStore)
		processor := New(mockStore, new(MockSender), logger)

		notLive := liveMatch
		notLive.IsLive = false
		mockStore.On("GetMatchByID", mock.Anything, matchID).Return(notLive, nil)

		_, err := processor.SendLiveNotification(ctx, matchID)
		assert.ErrorIs(t, err, ErrMatchNotLive)
	})

	t.Run("sends with resolved team names and records an audit campaign", func(t *testing.T) {
		mockStore := new(MockMatchStore)
		mockSender := new(MockSender)
		processor := New(mockStore, mockSender, logger)

		mockStore.On("GetMatchByID", mock.Anything, matchID).Return(liveMatch, nil)
		mockStore.On("GetTeamByID", mock.Anything, team1ID).Return(store.Team{ID: team1ID, Name: "Arsenal"}, nil)
		mockStore.On("GetTeamByID", mock.Anything, team2ID).Return(store.Team{ID: team2ID, Name: "Spurs"}, nil)
		mockSender.On("SendToTopic", mock.Anything, "live-matches",
			"Arsenal vs Spurs is LIVE!", "Watch North London Derby now", mock.Anything).
			Return("msg-123", nil)

		campaignID := uuid.New()
		mockStore.On("CreateCampaign", mock.Anything, mock.MatchedBy(func(params store.CreateCampaignParams) bool {
			return params.TargetAudience == store.TargetAudienceLiveMatches &&
				params.CampaignType == store.CampaignTypeInstant &&
				params.MatchID != nil && *params.MatchID == matchID
		})).Return(store.Campaign{ID: campaignID}, nil)

		messageID := "msg-123"
		mockStore.On("MarkCampaignSent", mock.Anything, campaignID, "msg-123", mock.Anything, mock.Anything).
			Return(store.Campaign{ID: campaignID, Status: store.CampaignStatusSent, MessageID: &messageID}, nil)

		campaign, err := processor.SendLiveNotification(ctx, matchID)
		assert.NoError(t, err)
		assert.Equal(t, store.CampaignStatusSent, campaign.Status)
		mockSender.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("falls back to placeholder names when team lookups fail", func(t *testing.T) {
		mockStore := new(MockMatchStore)
		mockSender := new(MockSender)
		processor := New(mockStore, mockSender, logger)

		mockStore.On("GetMatchByID", mock.Anything, matchID).Return(liveMatch, nil)
		mockStore.On("GetTeamByID", mock.Anything, mock.Anything).
			Return(store.Team{}, store.ErrNotFound)
		mockSender.On("SendToTopic", mock.Anything, "live-matches",
			"Team 1 vs Team 2 is LIVE!", mock.Anything, mock.Anything).
			Return("msg-456", nil)
		mockStore.On("CreateCampaign", mock.Anything, mock.Anything).
			Return(store.Campaign{ID: uuid.New()}, nil)
		mockStore.On("MarkCampaignSent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(store.Campaign{Status: store.CampaignStatusSent}, nil)

		_, err := processor.SendLiveNotification(ctx, matchID)
		assert.NoError(t, err)
		mockSender.AssertExpectations(t)
	})

	t.Run("provider failure surfaces and writes no campaign", func(t *testing.T) {
		mockStore := new(MockMatchStore)
		mockSender := new(MockSender)
		processor := New(mockStore, mockSender, logger)

		mockStore.On("GetMatchByID", mock.Anything, matchID).Return(liveMatch, nil)
		mockStore.On("GetTeamByID", mock.Anything, mock.Anything).
			Return(store.Team{}, store.ErrNotFound)
		mockSender.On("SendToTopic", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("provider unavailable"))

		_, err := processor.SendLiveNotification(ctx, matchID)
		assert.Error(t, err)
		mockStore.AssertNotCalled(t, "CreateCampaign", mock.Anything, mock.Anything)
	})
}
