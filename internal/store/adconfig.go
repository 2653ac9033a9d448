package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// UpdateAdConfigParams represents the full replacement state of the ad config.
// The handlers validate the provider invariant before this is called.
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

const adConfigColumns = `id, ads_enabled, use_admob, use_startapp, admob_app_id, admob_banner_id, admob_interstitial_id, startapp_app_id, ad_frequency, created_at, updated_at`

const sqlGetAdConfig = `SELECT ` + adConfigColumns + ` FROM ad_configs ORDER BY created_at ASC LIMIT 1`

// GetAdConfig returns the singleton ad configuration
func (s *Store) GetAdConfig(ctx context.Context) (AdConfig, error) {
	var cfg AdConfig
	err := s.db.GetContext(ctx, &cfg, sqlGetAdConfig)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AdConfig{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get ad config", err)
		return AdConfig{}, fmt.Errorf("failed to get ad config: %w", err)
	}
	return cfg, nil
}

const sqlCreateDefaultAdConfig = `
INSERT INTO ad_configs (ads_enabled, use_admob, use_startapp, ad_frequency)
VALUES (false, false, false, 1)
RETURNING ` + adConfigColumns

// CreateDefaultAdConfig seeds a disabled configuration on first read
func (s *Store) CreateDefaultAdConfig(ctx context.Context) (AdConfig, error) {
	var cfg AdConfig
	if err := s.db.GetContext(ctx, &cfg, sqlCreateDefaultAdConfig); err != nil {
		s.logger.Error(ctx, "failed to create default ad config", err)
		return AdConfig{}, fmt.Errorf("failed to create default ad config: %w", err)
	}
	return cfg, nil
}

const sqlUpdateAdConfig = `
UPDATE ad_configs
SET ads_enabled = $2,
    use_admob = $3,
    use_startapp = $4,
    admob_app_id = $5,
    admob_banner_id = $6,
    admob_interstitial_id = $7,
    startapp_app_id = $8,
    ad_frequency = $9,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + adConfigColumns

// UpdateAdConfig replaces the singleton configuration's fields
func (s *Store) UpdateAdConfig(ctx context.Context, id uuid.UUID, params UpdateAdConfigParams) (AdConfig, error) {
	var cfg AdConfig
	err := s.db.GetContext(ctx, &cfg, sqlUpdateAdConfig, id,
		params.AdsEnabled, params.UseAdMob, params.UseStartApp,
		params.AdMobAppID, params.AdMobBannerID, params.AdMobInterstitialID,
		params.StartAppAppID, params.AdFrequency)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AdConfig{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to update ad config", err)
		return AdConfig{}, fmt.Errorf("failed to update ad config: %w", err)
	}
	return cfg, nil
}
