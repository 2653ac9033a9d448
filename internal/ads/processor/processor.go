package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"footballadmin/internal/observability"
	"footballadmin/internal/push"
	"footballadmin/internal/store"

	"github.com/google/uuid"
)

// AdStore defines the database operations required by AdProcessor
type AdStore interface {
	GetAdConfig(ctx context.Context) (store.AdConfig, error)
	CreateDefaultAdConfig(ctx context.Context) (store.AdConfig, error)
	UpdateAdConfig(ctx context.Context, id uuid.UUID, params store.UpdateAdConfigParams) (store.AdConfig, error)
}

var (
	ErrNoProvider        = errors.New("ads enabled without a provider")
	ErrBothProviders     = errors.New("admob and startapp are mutually exclusive")
	ErrMissingAdMobIDs   = errors.New("admob requires app, banner and interstitial ids")
	ErrMissingStartAppID = errors.New("startapp requires an app id")
	ErrInvalidFrequency  = errors.New("ad frequency must be at least 1")
)

type AdProcessor struct {
	store  AdStore
	sender push.Sender
	logger *observability.Logger
}

func New(store AdStore, sender push.Sender, logger *observability.Logger) AdProcessor {
	return AdProcessor{
		store:  store,
		sender: sender,
		logger: logger,
	}
}

// UpdateAdConfigParams represents the full replacement ad configuration
type UpdateAdConfigParams struct {
	AdsEnabled          bool
	UseAdMob            bool
	UseStartApp         bool
	AdMobAppID          *string
	AdMobBannerID       *string
	AdMobInterstitialID *string
	StartAppAppID       *string
	AdFrequency         int
}

// GetAdConfig returns the singleton configuration, seeding a disabled
// default the first time it is read.
func (p *AdProcessor) GetAdConfig(ctx context.Context) (store.AdConfig, error) {
	cfg, err := p.store.GetAdConfig(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			p.logger.Info(ctx, "seeding default ad config")
			return p.store.CreateDefaultAdConfig(ctx)
		}
		return store.AdConfig{}, err
	}
	return cfg, nil
}

// UpdateAdConfig validates and replaces the configuration. When ads are
// enabled, exactly one provider must be selected with its ids present.
func (p *AdProcessor) UpdateAdConfig(ctx context.Context, params UpdateAdConfigParams) (store.AdConfig, error) {
	if err := validate(params); err != nil {
		return store.AdConfig{}, err
	}

	current, err := p.GetAdConfig(ctx)
	if err != nil {
		return store.AdConfig{}, err
	}

	cfg, err := p.store.UpdateAdConfig(ctx, current.ID, store.UpdateAdConfigParams{
		AdsEnabled:          params.AdsEnabled,
		UseAdMob:            params.UseAdMob,
		UseStartApp:         params.UseStartApp,
		AdMobAppID:          params.AdMobAppID,
		AdMobBannerID:       params.AdMobBannerID,
		AdMobInterstitialID: params.AdMobInterstitialID,
		StartAppAppID:       params.StartAppAppID,
		AdFrequency:         params.AdFrequency,
	})
	if err != nil {
		return store.AdConfig{}, err
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "ads_enabled", Value: fmt.Sprintf("%t", cfg.AdsEnabled)}),
		"ad config updated")
	return cfg, nil
}

// SendAdNotification broadcasts a one-off promotional push to all users.
// No campaign record is written for these.
func (p *AdProcessor) SendAdNotification(ctx context.Context, title, body string) (string, error) {
	messageID, err := p.sender.SendToTopic(ctx, push.TopicAllUsers, title, body,
		map[string]string{"type": "ad"})
	if err != nil {
		return "", fmt.Errorf("failed to send ad notification: %w", err)
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "message_id", Value: messageID}),
		"ad notification sent")
	return messageID, nil
}

func validate(params UpdateAdConfigParams) error {
	if params.AdFrequency < 1 {
		return ErrInvalidFrequency
	}
	if !params.AdsEnabled {
		return nil
	}

	switch {
	case params.UseAdMob && params.UseStartApp:
		return ErrBothProviders
	case params.UseAdMob:
		if isBlank(params.AdMobAppID) || isBlank(params.AdMobBannerID) || isBlank(params.AdMobInterstitialID) {
			return ErrMissingAdMobIDs
		}
	case params.UseStartApp:
		if isBlank(params.StartAppAppID) {
			return ErrMissingStartAppID
		}
	default:
		return ErrNoProvider
	}
	return nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
