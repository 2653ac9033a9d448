package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"footballadmin/internal/matches/processor"
	"footballadmin/internal/observability"
	"footballadmin/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockMatchStore is a mock implementation of processor.MatchStore
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

func setupTestHandler(mockStore *MockMatchStore, sender *MockSender) Handler {
	logger := observability.NewLogger()
	return New(processor.New(mockStore, sender, logger), logger)
}

func performRequest(h gin.HandlerFunc, method, target string, body interface{}, params gin.Params) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params

	h(c)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func TestHandleCreateMatch(t *testing.T) {
	t.Run("same team on both sides is rejected", func(t *testing.T) {
		handler := setupTestHandler(new(MockMatchStore), new(MockSender))

		teamID := uuid.New()
		w := performRequest(handler.HandleCreateMatch, http.MethodPost, "/api/matches", gin.H{
			"title":      "Derby",
			"team1Id":    teamID,
			"team2Id":    teamID,
			"channelIds": []uuid.UUID{uuid.New()},
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Team 1 and Team 2 cannot be the same", errorMessage(t, w))
	})

	t.Run("valid match is created", func(t *testing.T) {
		mockStore := new(MockMatchStore)
		handler := setupTestHandler(mockStore, new(MockSender))

		team1ID := uuid.New()
		team2ID := uuid.New()
		channelID := uuid.New()

		mockStore.On("GetTeamByID", mock.Anything, mock.Anything).Return(store.Team{}, nil)
		mockStore.On("GetChannelByID", mock.Anything, channelID).Return(store.Channel{}, nil)
		mockStore.On("CreateMatch", mock.Anything, mock.Anything).
			Return(store.Match{ID: uuid.New(), Title: "Derby"}, nil)

		w := performRequest(handler.HandleCreateMatch, http.MethodPost, "/api/matches", gin.H{
			"title":      "Derby",
			"team1Id":    team1ID,
			"team2Id":    team2ID,
			"channelIds": []uuid.UUID{channelID},
		}, nil)

		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestHandleToggleLive(t *testing.T) {
	t.Run("unknown match is a 404", func(t *testing.T) {
		mockStore := new(MockMatchStore)
		handler := setupTestHandler(mockStore, new(MockSender))

		matchID := uuid.New()
		mockStore.On("SetMatchLive", mock.Anything, matchID, true).
			Return(store.Match{}, store.ErrNotFound)

		w := performRequest(handler.HandleToggleLive, http.MethodPatch,
			"/api/matches/"+matchID.String()+"/toggle-live",
			gin.H{"isLive": true},
			gin.Params{{Key: "id", Value: matchID.String()}})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Match not found", errorMessage(t, w))
	})

	t.Run("going live fires the live notification", func(t *testing.T) {
		mockStore := new(MockMatchStore)
		mockSender := new(MockSender)
		handler := setupTestHandler(mockStore, mockSender)

		matchID := uuid.New()
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
		mockSender.On("SendToTopic", mock.Anything, "live-matches", mock.Anything, mock.Anything, mock.Anything).
			Return("msg-1", nil)
		mockStore.On("CreateCampaign", mock.Anything, mock.Anything).
			Return(store.Campaign{ID: uuid.New()}, nil)
		mockStore.On("MarkCampaignSent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(store.Campaign{Status: store.CampaignStatusSent}, nil)

		w := performRequest(handler.HandleToggleLive, http.MethodPatch,
			"/api/matches/"+matchID.String()+"/toggle-live",
			gin.H{"isLive": true},
			gin.Params{{Key: "id", Value: matchID.String()}})

		assert.Equal(t, http.StatusOK, w.Code)
		mockSender.AssertExpectations(t)
	})
}
