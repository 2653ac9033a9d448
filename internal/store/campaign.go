package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateCampaignParams represents parameters for creating a campaign
type CreateCampaignParams struct {
	Title          string
	Message        CampaignMessage
	TargetAudience string
	CustomTopic    *string
	CampaignType   string
	Status         string
	MatchID        *uuid.UUID
}

// UpdateCampaignParams represents parameters for updating a campaign draft
type UpdateCampaignParams struct {
	Title          *string
	Message        *CampaignMessage
	TargetAudience *string
	CustomTopic    *string
	MatchID        *uuid.UUID
}

const campaignColumns = `id, title, message, target_audience, custom_topic, campaign_type, status, match_id, message_id, stats, error, created_at, sent_at, failed_at`

const sqlCreateCampaign = `
INSERT INTO campaigns (title, message, target_audience, custom_topic, campaign_type, status, match_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + campaignColumns

// CreateCampaign creates a new campaign record
func (s *Store) CreateCampaign(ctx context.Context, params CreateCampaignParams) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlCreateCampaign,
		params.Title, params.Message, params.TargetAudience, params.CustomTopic,
		params.CampaignType, params.Status, params.MatchID)
	if err != nil {
		s.logger.Error(ctx, "failed to create campaign", err)
		return Campaign{}, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

const sqlGetCampaignByID = `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

// GetCampaignByID retrieves a campaign by ID
func (s *Store) GetCampaignByID(ctx context.Context, campaignID uuid.UUID) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlGetCampaignByID, campaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get campaign by id", err)
		return Campaign{}, fmt.Errorf("failed to get campaign by id: %w", err)
	}
	return campaign, nil
}

const sqlListCampaigns = `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY created_at DESC`

// ListCampaigns returns all campaigns, newest first
func (s *Store) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	campaigns := []Campaign{}
	if err := s.db.SelectContext(ctx, &campaigns, sqlListCampaigns); err != nil {
		s.logger.Error(ctx, "failed to list campaigns", err)
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

const sqlUpdateCampaign = `
UPDATE campaigns
SET title = COALESCE($2, title),
    message = COALESCE($3, message),
    target_audience = COALESCE($4, target_audience),
    custom_topic = COALESCE($5, custom_topic),
    match_id = COALESCE($6, match_id)
WHERE id = $1
RETURNING ` + campaignColumns

// UpdateCampaign updates the editable fields of a campaign
func (s *Store) UpdateCampaign(ctx context.Context, campaignID uuid.UUID, params UpdateCampaignParams) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlUpdateCampaign, campaignID,
		params.Title, params.Message, params.TargetAudience, params.CustomTopic, params.MatchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to update campaign", err)
		return Campaign{}, fmt.Errorf("failed to update campaign: %w", err)
	}
	return campaign, nil
}

// DeleteCampaign removes a campaign by ID
func (s *Store) DeleteCampaign(ctx context.Context, campaignID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, campaignID)
	if err != nil {
		s.logger.Error(ctx, "failed to delete campaign", err)
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

const sqlUpdateCampaignStatus = `
UPDATE campaigns SET status = $2 WHERE id = $1
RETURNING ` + campaignColumns

// UpdateCampaignStatus sets a campaign's lifecycle status
func (s *Store) UpdateCampaignStatus(ctx context.Context, campaignID uuid.UUID, status string) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlUpdateCampaignStatus, campaignID, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to update campaign status", err)
		return Campaign{}, fmt.Errorf("failed to update campaign status: %w", err)
	}
	return campaign, nil
}

const sqlMarkCampaignSent = `
UPDATE campaigns
SET status = 'sent', message_id = $2, stats = $3, sent_at = $4, error = NULL
WHERE id = $1
RETURNING ` + campaignColumns

// MarkCampaignSent records a successful dispatch. The transition is one-way;
// callers refuse to dispatch a campaign that is already sent.
func (s *Store) MarkCampaignSent(ctx context.Context, campaignID uuid.UUID, messageID string, stats CampaignStats, sentAt time.Time) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlMarkCampaignSent, campaignID, messageID, stats, sentAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to mark campaign sent", err)
		return Campaign{}, fmt.Errorf("failed to mark campaign sent: %w", err)
	}
	return campaign, nil
}

const sqlMarkCampaignFailed = `
UPDATE campaigns
SET status = 'failed', error = $2, failed_at = $3
WHERE id = $1
RETURNING ` + campaignColumns

// MarkCampaignFailed records a failed dispatch with the provider's error text
func (s *Store) MarkCampaignFailed(ctx context.Context, campaignID uuid.UUID, errMsg string, failedAt time.Time) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlMarkCampaignFailed, campaignID, errMsg, failedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to mark campaign failed", err)
		return Campaign{}, fmt.Errorf("failed to mark campaign failed: %w", err)
	}
	return campaign, nil
}
