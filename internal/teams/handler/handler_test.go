package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"footballadmin/internal/observability"
	"footballadmin/internal/store"
	"footballadmin/internal/teams/processor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockTeamStore is a mock implementation of processor.TeamStore
type MockTeamStore struct {
	mock.Mock
}

func (m *MockTeamStore) CreateTeam(ctx context.Context, params store.CreateTeamParams) (store.Team, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(store.Team), args.Error(1)
}

func (m *MockTeamStore) GetTeamByID(ctx context.Context, teamID uuid.UUID) (store.Team, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(store.Team), args.Error(1)
}

func (m *MockTeamStore) ListTeams(ctx context.Context) ([]store.Team, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.Team), args.Error(1)
}

func (m *MockTeamStore) UpdateTeam(ctx context.Context, teamID uuid.UUID, params store.UpdateTeamParams) (store.Team, error) {
	args := m.Called(ctx, teamID, params)
	return args.Get(0).(store.Team), args.Error(1)
}

func (m *MockTeamStore) DeleteTeam(ctx context.Context, teamID uuid.UUID) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

func (m *MockTeamStore) CountMatchesReferencingTeam(ctx context.Context, teamID uuid.UUID) (int, error) {
	args := m.Called(ctx, teamID)
	return args.Int(0), args.Error(1)
}

func setupTestHandler(mockStore *MockTeamStore) Handler {
	logger := observability.NewLogger()
	return New(processor.New(mockStore, logger), logger)
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

func TestHandleCreateTeam(t *testing.T) {
	t.Run("created team comes back as 201", func(t *testing.T) {
		mockStore := new(MockTeamStore)
		handler := setupTestHandler(mockStore)

		created := store.Team{ID: uuid.New(), Name: "Arsenal"}
		mockStore.On("CreateTeam", mock.Anything, mock.Anything).Return(created, nil)

		w := performRequest(handler.HandleCreateTeam, http.MethodPost, "/api/teams",
			map[string]string{"name": "Arsenal"}, nil)

		assert.Equal(t, http.StatusCreated, w.Code)

		var team store.Team
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &team))
		assert.Equal(t, "Arsenal", team.Name)
	})

	t.Run("missing name is a validation error", func(t *testing.T) {
		handler := setupTestHandler(new(MockTeamStore))

		w := performRequest(handler.HandleCreateTeam, http.MethodPost, "/api/teams",
			map[string]string{}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate name reports the conflict", func(t *testing.T) {
		mockStore := new(MockTeamStore)
		handler := setupTestHandler(mockStore)

		mockStore.On("CreateTeam", mock.Anything, mock.Anything).
			Return(store.Team{}, store.ErrDuplicate)

		w := performRequest(handler.HandleCreateTeam, http.MethodPost, "/api/teams",
			map[string]string{"name": "Arsenal"}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "A team with this name already exists", errorMessage(t, w))
	})
}

func TestHandleGetTeam(t *testing.T) {
	t.Run("unknown id is a 404", func(t *testing.T) {
		mockStore := new(MockTeamStore)
		handler := setupTestHandler(mockStore)

		teamID := uuid.New()
		mockStore.On("GetTeamByID", mock.Anything, teamID).
			Return(store.Team{}, store.ErrNotFound)

		w := performRequest(handler.HandleGetTeam, http.MethodGet, "/api/teams/"+teamID.String(),
			nil, gin.Params{{Key: "id", Value: teamID.String()}})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Team not found", errorMessage(t, w))
	})

	t.Run("malformed id is a 400", func(t *testing.T) {
		handler := setupTestHandler(new(MockTeamStore))

		w := performRequest(handler.HandleGetTeam, http.MethodGet, "/api/teams/not-a-uuid",
			nil, gin.Params{{Key: "id", Value: "not-a-uuid"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleDeleteTeam(t *testing.T) {
	t.Run("referenced team cannot be deleted", func(t *testing.T) {
		mockStore := new(MockTeamStore)
		handler := setupTestHandler(mockStore)

		teamID := uuid.New()
		mockStore.On("CountMatchesReferencingTeam", mock.Anything, teamID).Return(1, nil)

		w := performRequest(handler.HandleDeleteTeam, http.MethodDelete, "/api/teams/"+teamID.String(),
			nil, gin.Params{{Key: "id", Value: teamID.String()}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Cannot delete team as it is used in one or more matches", errorMessage(t, w))
	})

	t.Run("unreferenced team deletes cleanly", func(t *testing.T) {
		mockStore := new(MockTeamStore)
		handler := setupTestHandler(mockStore)

		teamID := uuid.New()
		mockStore.On("CountMatchesReferencingTeam", mock.Anything, teamID).Return(0, nil)
		mockStore.On("DeleteTeam", mock.Anything, teamID).Return(nil)

		w := performRequest(handler.HandleDeleteTeam, http.MethodDelete, "/api/teams/"+teamID.String(),
			nil, gin.Params{{Key: "id", Value: teamID.String()}})

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Success bool `json:"success"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
	})
}
