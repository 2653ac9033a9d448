package processor

import (
	"context"
	"errors"
	"testing"

	"footballadmin/internal/observability"
	"footballadmin/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTeamStore is a mock implementation of TeamStore
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

func TestCreateTeam(t *testing.T) {
	ctx := context.Background()
	logger := observability.NewLogger()

	t.Run("trims whitespace before storing", func(t *testing.T) {
		mockStore := new(MockTeamStore)
		processor := New(mockStore, logger)

		expected := store.Team{ID: uuid.New(), Name: "Arsenal"}
		mockStore.On("CreateTeam", mock.Anything, store.CreateTeamParams{Name: "Arsenal"}).
			Return(expected, nil)

		team, err := processor.CreateTeam(ctx, CreateTeamParams{Name: "  Arsenal  "})
		assert.NoError(t, err)
		assert.Equal(t, "Arsenal", team.Name)
		mockStore.AssertExpectations(t)
	})

	t.Run("rejects blank name without touching the store", func(t *testing.T) {
		mockStore := new(MockTeamStore)
		processor := New(mockStore, logger)

		_, err := processor.CreateTeam(ctx, CreateTeamParams{Name: "   "})
		assert.ErrorIs(t, err, ErrEmptyName)
		mockStore.AssertNotCalled(t, "CreateTeam", mock.Anything, mock.Anything)
	})

	t.Run("maps unique violation to duplicate name", func(t *testing.T) {
		mockStore := new(MockTeamStore)
		processor := New(mockStore, logger)

		mockStore.On("CreateTeam", mock.Anything, mock.Anything).
			Return(store.Team{}, store.ErrDuplicate)

		_, err := processor.CreateTeam(ctx, CreateTeamParams{Name: "Arsenal"})
		assert.ErrorIs(t, err, ErrDuplicateName)
	})
}

func TestGetTeam(t *testing.T) {
	ctx := context.Background()
	logger := observability.NewLogger()
	teamID := uuid.New()

	t.Run("maps missing row to not found", func(t *testing.T) {
		mockStore := new(MockTeamStore)
		processor := New(mockStore, logger)

		mockStore.On("GetTeamByID", mock.Anything, teamID).
			Return(store.Team{}, store.ErrNotFound)

		_, err := processor.GetTeam(ctx, teamID)
		assert.ErrorIs(t, err, ErrTeamNotFound)
	})

	t.Run("passes other errors through", func(t *testing.T) {
		mockStore := new(MockTeamStore)
		processor := New(mockStore, logger)

		dbErr := errors.New("connection reset")
		mockStore.On("GetTeamByID", mock.Anything, teamID).
			Return(store.Team{}, dbErr)

		_, err := processor.GetTeam(ctx, teamID)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestDeleteTeam(t *testing.T) {
	ctx := context.Background()
	logger := observability.NewLogger()
	teamID := uuid.New()

	t.Run("refuses to delete a referenced team", func(t *testing.T) {
		mockStore := new(MockTeamStore)
		processor := New(mockStore, logger)

		mockStore.On("CountMatchesReferencingTeam", mock.Anything, teamID).Return(2, nil)

		err := processor.DeleteTeam(ctx, teamID)
		assert.ErrorIs(t, err, ErrTeamInUse)
		mockStore.AssertNotCalled(t, "DeleteTeam", mock.Anything, mock.Anything)
	})

	t.Run("deletes an unreferenced team", func(t *testing.T) {
		mockStore := new(MockTeamStore)
		processor := New(mockStore, logger)

		mockStore.On("CountMatchesReferencingTeam", mock.Anything, teamID).Return(0, nil)
		mockStore.On("DeleteTeam", mock.Anything, teamID).Return(nil)

		err := processor.DeleteTeam(ctx, teamID)
		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		mockStore := new(MockTeamStore)
		processor := New(mockStore, logger)

		mockStore.On("CountMatchesReferencingTeam", mock.Anything, teamID).Return(0, nil)
		mockStore.On("DeleteTeam", mock.Anything, teamID).Return(store.ErrNotFound)

		err := processor.DeleteTeam(ctx, teamID)
		assert.ErrorIs(t, err, ErrTeamNotFound)
	})
}
