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

// MockAdStore is a mock implementation of AdStore
type MockAdStore struct {
	mock.Mock
}

func (m *MockAdStore) GetAdConfig(ctx context.Context) (store.AdConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).(store.AdConfig), args.Error(1)
}

func (m *MockAdStore) CreateDefaultAdConfig(ctx context.Context) (store.AdConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).(store.AdConfig), args.Error(1)
}

func (m *MockAdStore) UpdateAdConfig(ctx context.Context, id uuid.UUID, params store.UpdateAdConfigParams) (store.AdConfig, error) {
	args := m.Called(ctx, id, params)
	return args.Get(0).(store.AdConfig), args.Error(1)
}

// MockSender is a mock push provider
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (string, error) {
	args := m.Called(ctx, topic, title, body, data)
	return args.String(0), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestGetAdConfig(t *testing.T) {
	ctx := context.Background()
	logger := observability.NewLogger()

	t.Run("returns the existing config", func(t *testing.T) {
		mockStore := new(MockAdStore)
		processor := New(mockStore, new(MockSender), logger)

		existing := store.AdConfig{ID: uuid.New(), AdsEnabled: true, AdFrequency: 3}
		mockStore.On("GetAdConfig", mock.Anything).Return(existing, nil)

		cfg, err := processor.GetAdConfig(ctx)
		assert.NoError(t, err)
		assert.Equal(t, existing, cfg)
		mockStore.AssertNotCalled(t, "CreateDefaultAdConfig", mock.Anything)
	})

	t.Run("seeds a disabled default on first read", func(t *testing.T) {
		mockStore := new(MockAdStore)
		processor := New(mockStore, new(MockSender), logger)

		seeded := store.AdConfig{ID: uuid.New(), AdsEnabled: false, AdFrequency: 1}
		mockStore.On("GetAdConfig", mock.Anything).Return(store.AdConfig{}, store.ErrNotFound)
		mockStore.On("CreateDefaultAdConfig", mock.Anything).Return(seeded, nil)

		cfg, err := processor.GetAdConfig(ctx)
		assert.NoError(t, err)
		assert.False(t, cfg.AdsEnabled)
		mockStore.AssertExpectations(t)
	})
}

func TestUpdateAdConfigValidation(t *testing.T) {
	ctx := context.Background()
	logger := observability.NewLogger()

	admobIDs := UpdateAdConfigParams{
		AdsEnabled:          true,
		UseAdMob:            true,
		AdMobAppID:          strPtr("app"),
		AdMobBannerID:       strPtr("banner"),
		AdMobInterstitialID: strPtr("interstitial"),
		AdFrequency:         1,
	}

	tests := []struct {
		name    string
		params  UpdateAdConfigParams
		wantErr error
	}{
		{
			name:    "frequency below one",
			params:  UpdateAdConfigParams{AdFrequency: 0},
			wantErr: ErrInvalidFrequency,
		},
		{
			name:    "enabled without a provider",
			params:  UpdateAdConfigParams{AdsEnabled: true, AdFrequency: 1},
			wantErr: ErrNoProvider,
		},
		{
			name: "both providers selected",
			params: UpdateAdConfigParams{
				AdsEnabled: true, UseAdMob: true, UseStartApp: true, AdFrequency: 1,
			},
			wantErr: ErrBothProviders,
		},
		{
			name: "admob without all ids",
			params: UpdateAdConfigParams{
				AdsEnabled: true, UseAdMob: true, AdMobAppID: strPtr("app"), AdFrequency: 1,
			},
			wantErr: ErrMissingAdMobIDs,
		},
		{
			name: "startapp without app id",
			params: UpdateAdConfigParams{
				AdsEnabled: true, UseStartApp: true, StartAppAppID: strPtr("  "), AdFrequency: 1,
			},
			wantErr: ErrMissingStartAppID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockAdStore)
			processor := New(mockStore, new(MockSender), logger)

			_, err := processor.UpdateAdConfig(ctx, tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			mockStore.AssertNotCalled(t, "UpdateAdConfig", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("disabled config needs no provider", func(t *testing.T) {
		mockStore := new(MockAdStore)
		processor := New(mockStore, new(MockSender), logger)

		configID := uuid.New()
		mockStore.On("GetAdConfig", mock.Anything).Return(store.AdConfig{ID: configID}, nil)
		mockStore.On("UpdateAdConfig", mock.Anything, configID, mock.Anything).
			Return(store.AdConfig{ID: configID, AdFrequency: 2}, nil)

		cfg, err := processor.UpdateAdConfig(ctx, UpdateAdConfigParams{AdFrequency: 2})
		assert.NoError(t, err)
		assert.Equal(t, 2, cfg.AdFrequency)
	})

	t.Run("valid admob config is written", func(t *testing.T) {
		mockStore := new(MockAdStore)
		processor := New(mockStore, new(MockSender), logger)

		configID := uuid.New()
		mockStore.On("GetAdConfig", mock.Anything).Return(store.AdConfig{ID: configID}, nil)
		mockStore.On("UpdateAdConfig", mock.Anything, configID, mock.MatchedBy(func(params store.UpdateAdConfigParams) bool {
			return params.UseAdMob && !params.UseStartApp && params.AdsEnabled
		})).Return(store.AdConfig{ID: configID, AdsEnabled: true, UseAdMob: true}, nil)

		cfg, err := processor.UpdateAdConfig(ctx, admobIDs)
		assert.NoError(t, err)
		assert.True(t, cfg.UseAdMob)
		mockStore.AssertExpectations(t)
	})
}

func TestSendAdNotification(t *testing.T) {
	ctx := context.Background()
	logger := observability.NewLogger()

	t.Run("broadcasts to the all-users topic", func(t *testing.T) {
		mockSender := new(MockSender)
		processor := New(new(MockAdStore), mockSender, logger)

		mockSender.On("SendToTopic", mock.Anything, "all-users", "Sale", "Half price", mock.Anything).
			Return("msg-1", nil)

		messageID, err := processor.SendAdNotification(ctx, "Sale", "Half price")
		assert.NoError(t, err)
		assert.Equal(t, "msg-1", messageID)
		mockSender.AssertExpectations(t)
	})

	t.Run("surfaces provider errors", func(t *testing.T) {
		mockSender := new(MockSender)
		processor := New(new(MockAdStore), mockSender, logger)

		mockSender.On("SendToTopic", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("provider unavailable"))

		_, err := processor.SendAdNotification(ctx, "Sale", "Half price")
		assert.Error(t, err)
	})
}
