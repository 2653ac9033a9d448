package processor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"footballadmin/internal/observability"
	"footballadmin/internal/push"
	"footballadmin/internal/store"

	"github.com/google/uuid"
)

// MatchStore defines the database operations required by MatchProcessor.
// Team, channel and campaign lookups are included because match validation
// checks references and the live trigger writes a campaign audit record.
type MatchStore interface {
	CreateMatch(ctx context.Context, params store.CreateMatchParams) (store.Match, error)
	GetMatchByID(ctx context.Context, matchID uuid.UUID) (store.Match, error)
	ListMatches(ctx context.Context) ([]store.Match, error)
	UpdateMatch(ctx context.Context, matchID uuid.UUID, params store.UpdateMatchParams) (store.Match, error)
	DeleteMatch(ctx context.Context, matchID uuid.UUID) error
	SetMatchLive(ctx context.Context, matchID uuid.UUID, isLive bool) (store.Match, error)
	SetMatchNotifications(ctx context.Context, matchID uuid.UUID, enabled bool) (store.Match, error)

	GetTeamByID(ctx context.Context, teamID uuid.UUID) (store.Team, error)
	GetChannelByID(ctx context.Context, channelID uuid.UUID) (store.Channel, error)

	CreateCampaign(ctx context.Context, params store.CreateCampaignParams) (store.Campaign, error)
	MarkCampaignSent(ctx context.Context, campaignID uuid.UUID, messageID string, stats store.CampaignStats, sentAt time.Time) (store.Campaign, error)
}

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrTeamNotFound    = errors.New("referenced team not found")
	ErrChannelNotFound = errors.New("referenced channel not found")
	ErrSameTeams       = errors.New("team1 and team2 are the same")
	ErrNoChannels      = errors.New("match requires at least one channel")
	ErrMatchNotLive    = errors.New("match is not live")
)

type MatchProcessor struct {
	store  MatchStore
	sender push.Sender
	logger *observability.Logger
}

func New(store MatchStore, sender push.Sender, logger *observability.Logger) MatchProcessor {
	return MatchProcessor{
		store:  store,
		sender: sender,
		logger: logger,
	}
}

// CreateMatchParams represents parameters for creating a match
type CreateMatchParams struct {
	Title      string
	Team1ID    uuid.UUID
	Team2ID    uuid.UUID
	ChannelIDs []uuid.UUID
	StreamURL  *string
}

// UpdateMatchParams represents parameters for updating a match
type UpdateMatchParams struct {
	Title      *string
	Team1ID    *uuid.UUID
	Team2ID    *uuid.UUID
	ChannelIDs *[]uuid.UUID
	StreamURL  *string
}

// CreateMatch validates references and creates a match
func (p *MatchProcessor) CreateMatch(ctx context.Context, params CreateMatchParams) (store.Match, error) {
	if params.Team1ID == params.Team2ID {
		return store.Match{}, ErrSameTeams
	}
	if len(params.ChannelIDs) == 0 {
		return store.Match{}, ErrNoChannels
	}

	if err := p.checkReferences(ctx, params.Team1ID, params.Team2ID, params.ChannelIDs); err != nil {
		return store.Match{}, err
	}

	match, err := p.store.CreateMatch(ctx, store.CreateMatchParams{
		Title:      params.Title,
		Team1ID:    params.Team1ID,
		Team2ID:    params.Team2ID,
		ChannelIDs: store.UUIDArray(params.ChannelIDs),
		StreamURL:  params.StreamURL,
	})
	if err != nil {
		return store.Match{}, err
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "match_id", Value: match.ID.String()},
		observability.Field{Key: "match_title", Value: match.Title}),
		"match created")
	return match, nil
}

// GetMatch retrieves a match by ID
func (p *MatchProcessor) GetMatch(ctx context.Context, matchID uuid.UUID) (store.Match, error) {
	match, err := p.store.GetMatchByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Match{}, ErrMatchNotFound
		}
		return store.Match{}, err
	}
	return match, nil
}

// ListMatches returns all matches
func (p *MatchProcessor) ListMatches(ctx context.Context) ([]store.Match, error) {
	return p.store.ListMatches(ctx)
}

// UpdateMatch updates a match, re-validating team/channel references against
// the effective post-update state.
func (p *MatchProcessor) UpdateMatch(ctx context.Context, matchID uuid.UUID, params UpdateMatchParams) (store.Match, error) {
	existing, err := p.store.GetMatchByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Match{}, ErrMatchNotFound
		}
		return store.Match{}, err
	}

	team1 := existing.Team1ID
	if params.Team1ID != nil {
		team1 = *params.Team1ID
	}
	team2 := existing.Team2ID
	if params.Team2ID != nil {
		team2 = *params.Team2ID
	}
	if team1 == team2 {
		return store.Match{}, ErrSameTeams
	}

	channelIDs := []uuid.UUID(existing.ChannelIDs)
	if params.ChannelIDs != nil {
		channelIDs = *params.ChannelIDs
	}
	if len(channelIDs) == 0 {
		return store.Match{}, ErrNoChannels
	}

	if err := p.checkReferences(ctx, team1, team2, channelIDs); err != nil {
		return store.Match{}, err
	}

	storeParams := store.UpdateMatchParams{
		Title:     params.Title,
		Team1ID:   params.Team1ID,
		Team2ID:   params.Team2ID,
		StreamURL: params.StreamURL,
	}
	if params.ChannelIDs != nil {
		arr := store.UUIDArray(*params.ChannelIDs)
		storeParams.ChannelIDs = &arr
	}

	match, err := p.store.UpdateMatch(ctx, matchID, storeParams)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Match{}, ErrMatchNotFound
		}
		return store.Match{}, err
	}
	return match, nil
}

// DeleteMatch removes a match
func (p *MatchProcessor) DeleteMatch(ctx context.Context, matchID uuid.UUID) error {
	if err := p.store.DeleteMatch(ctx, matchID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMatchNotFound
		}
		return err
	}
	return nil
}

// ToggleLive flips the live flag. Turning a match live fires the live-match
// notification when per-match notifications are enabled; a trigger failure is
// logged and swallowed so the toggle itself never fails on provider errors.
func (p *MatchProcessor) ToggleLive(ctx context.Context, matchID uuid.UUID, isLive bool) (store.Match, error) {
	match, err := p.store.SetMatchLive(ctx, matchID, isLive)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Match{}, ErrMatchNotFound
		}
		return store.Match{}, err
	}

	if isLive && match.NotificationsEnabled {
		if _, err := p.SendLiveNotification(ctx, matchID); err != nil {
			p.logger.InfoWithError(ctx, "live notification after toggle failed", err)
		}
	}

	return match, nil
}

// SetNotifications flips per-match notification delivery
func (p *MatchProcessor) SetNotifications(ctx context.Context, matchID uuid.UUID, enabled bool) (store.Match, error) {
	match, err := p.store.SetMatchNotifications(ctx, matchID, enabled)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Match{}, ErrMatchNotFound
		}
		return store.Match{}, err
	}
	return match, nil
}

// SendLiveNotification broadcasts the canned live-match push and records a
// campaign audit entry. There is no dedup: calling this twice for the same
// live match sends two notifications and writes two campaign records.
func (p *MatchProcessor) SendLiveNotification(ctx context.Context, matchID uuid.UUID) (store.Campaign, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "match_id", Value: matchID.String()})

	match, err := p.store.GetMatchByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Campaign{}, ErrMatchNotFound
		}
		return store.Campaign{}, err
	}
	if !match.IsLive {
		return store.Campaign{}, ErrMatchNotLive
	}

	team1Name, team2Name := p.lookupTeamNames(ctx, match.Team1ID, match.Team2ID)

	title := fmt.Sprintf("%s vs %s is LIVE!", team1Name, team2Name)
	body := fmt.Sprintf("Watch %s now", match.Title)
	data := map[string]string{
		"matchId": match.ID.String(),
		"team1":   team1Name,
		"team2":   team2Name,
		"type":    "live-match",
	}

	messageID, err := p.sender.SendToTopic(ctx, push.TopicLiveMatches, title, body, data)
	if err != nil {
		return store.Campaign{}, fmt.Errorf("failed to send live notification: %w", err)
	}

	campaign, err := p.store.CreateCampaign(ctx, store.CreateCampaignParams{
		Title:          title,
		Message:        store.CampaignMessage{Title: title, Body: body},
		TargetAudience: store.TargetAudienceLiveMatches,
		CampaignType:   store.CampaignTypeInstant,
		Status:         store.CampaignStatusDraft,
		MatchID:        &match.ID,
	})
	if err != nil {
		return store.Campaign{}, fmt.Errorf("notification sent but audit record failed: %w", err)
	}

	campaign, err = p.store.MarkCampaignSent(ctx, campaign.ID, messageID,
		store.CampaignStats{Sent: 1, Delivered: 1, Opened: 0}, time.Now())
	if err != nil {
		return store.Campaign{}, fmt.Errorf("notification sent but audit record failed: %w", err)
	}

	p.logger.Info(ctx, "live match notification sent")
	return campaign, nil
}

// lookupTeamNames fetches both team names concurrently, falling back to
// placeholder names when a lookup fails. A missing team never blocks the send.
func (p *MatchProcessor) lookupTeamNames(ctx context.Context, team1ID, team2ID uuid.UUID) (string, string) {
	team1Name, team2Name := "Team 1", "Team 2"

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if team, err := p.store.GetTeamByID(ctx, team1ID); err == nil {
			team1Name = team.Name
		}
	}()
	go func() {
		defer wg.Done()
		if team, err := p.store.GetTeamByID(ctx, team2ID); err == nil {
			team2Name = team.Name
		}
	}()
	wg.Wait()

	return team1Name, team2Name
}

func (p *MatchProcessor) checkReferences(ctx context.Context, team1, team2 uuid.UUID, channelIDs []uuid.UUID) error {
	for _, teamID := range []uuid.UUID{team1, team2} {
		if _, err := p.store.GetTeamByID(ctx, teamID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTeamNotFound
			}
			return err
		}
	}
	for _, channelID := range channelIDs {
		if _, err := p.store.GetChannelByID(ctx, channelID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrChannelNotFound
			}
			return err
		}
	}
	return nil
}
