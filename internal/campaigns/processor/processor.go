package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"footballadmin/internal/observability"
	"footballadmin/internal/push"
	"footballadmin/internal/store"

	"github.com/google/uuid"
)

// CampaignStore defines the database operations required by CampaignProcessor.
// Match and team lookups feed best-effort payload enrichment.
type CampaignStore interface {
	CreateCampaign(ctx context.Context, params store.CreateCampaignParams) (store.Campaign, error)
	GetCampaignByID(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error)
	ListCampaigns(ctx context.Context) ([]store.Campaign, error)
	UpdateCampaign(ctx context.Context, campaignID uuid.UUID, params store.UpdateCampaignParams) (store.Campaign, error)
	DeleteCampaign(ctx context.Context, campaignID uuid.UUID) error
	UpdateCampaignStatus(ctx context.Context, campaignID uuid.UUID, status string) (store.Campaign, error)
	MarkCampaignSent(ctx context.Context, campaignID uuid.UUID, messageID string, stats store.CampaignStats, sentAt time.Time) (store.Campaign, error)
	MarkCampaignFailed(ctx context.Context, campaignID uuid.UUID, errMsg string, failedAt time.Time) (store.Campaign, error)

	GetMatchByID(ctx context.Context, matchID uuid.UUID) (store.Match, error)
	GetTeamByID(ctx context.Context, teamID uuid.UUID) (store.Team, error)
}

var (
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrInvalidCampaign    = errors.New("campaign title and message are required")
	ErrInvalidAudience    = errors.New("unknown target audience")
	ErrMissingCustomTopic = errors.New("custom audience requires a custom topic")
	ErrInvalidStatus      = errors.New("status must be draft, active or paused")
	ErrAlreadySent        = errors.New("campaign has already been sent")
)

type CampaignProcessor struct {
	store  CampaignStore
	sender push.Sender
	logger *observability.Logger
}

func New(store CampaignStore, sender push.Sender, logger *observability.Logger) CampaignProcessor {
	return CampaignProcessor{
		store:  store,
		sender: sender,
		logger: logger,
	}
}

// CreateCampaignParams represents parameters for creating a campaign
type CreateCampaignParams struct {
	Title          string
	Message        store.CampaignMessage
	TargetAudience string
	CustomTopic    *string
	CampaignType   string
	Status         string
	MatchID        *uuid.UUID
}

// UpdateCampaignParams represents parameters for updating a campaign draft
type UpdateCampaignParams struct {
	Title          *string
	Message        *store.CampaignMessage
	TargetAudience *string
	CustomTopic    *string
	MatchID        *uuid.UUID
}

// CreateCampaign validates and persists a campaign. Instant campaigns, and
// campaigns created with a requested status of sent, are dispatched
// immediately; the returned campaign then carries the sent or failed outcome.
func (p *CampaignProcessor) CreateCampaign(ctx context.Context, params CreateCampaignParams) (store.Campaign, error) {
	if err := validateCampaign(params); err != nil {
		return store.Campaign{}, err
	}

	campaignType := params.CampaignType
	if campaignType == "" {
		campaignType = store.CampaignTypeInstant
	}

	dispatch := campaignType == store.CampaignTypeInstant || params.Status == store.CampaignStatusSent

	campaign, err := p.store.CreateCampaign(ctx, store.CreateCampaignParams{
		Title:          strings.TrimSpace(params.Title),
		Message:        params.Message,
		TargetAudience: params.TargetAudience,
		CustomTopic:    params.CustomTopic,
		CampaignType:   campaignType,
		Status:         store.CampaignStatusDraft,
		MatchID:        params.MatchID,
	})
	if err != nil {
		return store.Campaign{}, err
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "campaign_id", Value: campaign.ID.String()},
		observability.Field{Key: "target_audience", Value: campaign.TargetAudience}),
		"campaign created")

	if !dispatch {
		return campaign, nil
	}
	return p.dispatch(ctx, campaign)
}

// GetCampaign retrieves a campaign by ID
func (p *CampaignProcessor) GetCampaign(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error) {
	campaign, err := p.store.GetCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Campaign{}, ErrCampaignNotFound
		}
		return store.Campaign{}, err
	}
	return campaign, nil
}

// ListCampaigns returns all campaigns, newest first
func (p *CampaignProcessor) ListCampaigns(ctx context.Context) ([]store.Campaign, error) {
	return p.store.ListCampaigns(ctx)
}

// UpdateCampaign updates the editable fields of a campaign
func (p *CampaignProcessor) UpdateCampaign(ctx context.Context, campaignID uuid.UUID, params UpdateCampaignParams) (store.Campaign, error) {
	if params.TargetAudience != nil {
		if !validAudience(*params.TargetAudience) {
			return store.Campaign{}, ErrInvalidAudience
		}
		if *params.TargetAudience == store.TargetAudienceCustom && isBlank(params.CustomTopic) {
			return store.Campaign{}, ErrMissingCustomTopic
		}
	}

	campaign, err := p.store.UpdateCampaign(ctx, campaignID, store.UpdateCampaignParams{
		Title:          params.Title,
		Message:        params.Message,
		TargetAudience: params.TargetAudience,
		CustomTopic:    params.CustomTopic,
		MatchID:        params.MatchID,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Campaign{}, ErrCampaignNotFound
		}
		return store.Campaign{}, err
	}
	return campaign, nil
}

// DeleteCampaign removes a campaign
func (p *CampaignProcessor) DeleteCampaign(ctx context.Context, campaignID uuid.UUID) error {
	if err := p.store.DeleteCampaign(ctx, campaignID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	return nil
}

// SetStatus moves a campaign between the operator-owned statuses. The sent
// and failed statuses belong to the dispatcher and cannot be set here.
func (p *CampaignProcessor) SetStatus(ctx context.Context, campaignID uuid.UUID, status string) (store.Campaign, error) {
	switch status {
	case store.CampaignStatusDraft, store.CampaignStatusActive, store.CampaignStatusPaused:
	default:
		return store.Campaign{}, ErrInvalidStatus
	}

	campaign, err := p.store.UpdateCampaignStatus(ctx, campaignID, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Campaign{}, ErrCampaignNotFound
		}
		return store.Campaign{}, err
	}
	return campaign, nil
}

// SendCampaign dispatches an existing campaign. A campaign that has already
// been sent is refused; anything else, including a previously failed one, is
// dispatched again.
func (p *CampaignProcessor) SendCampaign(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error) {
	campaign, err := p.store.GetCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Campaign{}, ErrCampaignNotFound
		}
		return store.Campaign{}, err
	}
	if campaign.Status == store.CampaignStatusSent {
		return store.Campaign{}, ErrAlreadySent
	}
	return p.dispatch(ctx, campaign)
}

// dispatch resolves the topic, sends the push and records the outcome on the
// campaign. A provider failure is not an error here; the campaign comes back
// with status failed and the error text recorded.
func (p *CampaignProcessor) dispatch(ctx context.Context, campaign store.Campaign) (store.Campaign, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaign.ID.String()})

	customTopic := ""
	if campaign.CustomTopic != nil {
		customTopic = *campaign.CustomTopic
	}
	topic := push.ResolveTopic(campaign.TargetAudience, customTopic)

	data := map[string]string{
		"campaignId": campaign.ID.String(),
		"type":       "campaign",
	}
	p.enrichMatchData(ctx, campaign.MatchID, data)

	messageID, sendErr := p.sender.SendToTopic(ctx, topic, campaign.Message.Title, campaign.Message.Body, data)
	if sendErr != nil {
		p.logger.InfoWithError(ctx, "campaign dispatch failed", sendErr)
		failed, err := p.store.MarkCampaignFailed(ctx, campaign.ID, sendErr.Error(), time.Now())
		if err != nil {
			return store.Campaign{}, err
		}
		return failed, nil
	}

	sent, err := p.store.MarkCampaignSent(ctx, campaign.ID, messageID,
		store.CampaignStats{Sent: 1, Delivered: 1, Opened: 0}, time.Now())
	if err != nil {
		return store.Campaign{}, fmt.Errorf("notification sent but campaign update failed: %w", err)
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "topic", Value: topic},
		observability.Field{Key: "message_id", Value: messageID}),
		"campaign dispatched")
	return sent, nil
}

// enrichMatchData adds match and team names to the push payload when the
// campaign references a match. Lookup failures are swallowed; enrichment
// never blocks a dispatch.
func (p *CampaignProcessor) enrichMatchData(ctx context.Context, matchID *uuid.UUID, data map[string]string) {
	if matchID == nil {
		return
	}

	data["matchId"] = matchID.String()
	match, err := p.store.GetMatchByID(ctx, *matchID)
	if err != nil {
		p.logger.InfoWithError(ctx, "match enrichment skipped", err)
		return
	}
	data["matchTitle"] = match.Title
	if team, err := p.store.GetTeamByID(ctx, match.Team1ID); err == nil {
		data["team1"] = team.Name
	}
	if team, err := p.store.GetTeamByID(ctx, match.Team2ID); err == nil {
		data["team2"] = team.Name
	}
}

func validateCampaign(params CreateCampaignParams) error {
	if strings.TrimSpace(params.Title) == "" ||
		strings.TrimSpace(params.Message.Title) == "" ||
		strings.TrimSpace(params.Message.Body) == "" {
		return ErrInvalidCampaign
	}
	if !validAudience(params.TargetAudience) {
		return ErrInvalidAudience
	}
	if params.TargetAudience == store.TargetAudienceCustom && isBlank(params.CustomTopic) {
		return ErrMissingCustomTopic
	}
	switch params.CampaignType {
	case "", store.CampaignTypeInstant, store.CampaignTypeScheduled:
	default:
		return ErrInvalidCampaign
	}
	return nil
}

func validAudience(audience string) bool {
	switch audience {
	case store.TargetAudienceAllUsers, store.TargetAudienceLiveMatches, store.TargetAudienceCustom:
		return true
	}
	return false
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
