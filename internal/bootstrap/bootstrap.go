package bootstrap

import (
	"context"
	"fmt"

	"footballadmin/internal/config"
	"footballadmin/internal/observability"
	"footballadmin/internal/store"

	adsHandler "footballadmin/internal/ads/handler"
	adsProcessor "footballadmin/internal/ads/processor"
	authHandler "footballadmin/internal/auth/handler"
	authProcessor "footballadmin/internal/auth/processor"
	campaignHandler "footballadmin/internal/campaigns/handler"
	campaignProcessor "footballadmin/internal/campaigns/processor"
	channelHandler "footballadmin/internal/channels/handler"
	channelProcessor "footballadmin/internal/channels/processor"
	"footballadmin/internal/clients/fcm"
	"footballadmin/internal/clients/newsapi"
	"footballadmin/internal/clients/sportsdata"
	ingestHandler "footballadmin/internal/ingest/handler"
	ingestProcessor "footballadmin/internal/ingest/processor"
	matchHandler "footballadmin/internal/matches/handler"
	matchProcessor "footballadmin/internal/matches/processor"
	teamHandler "footballadmin/internal/teams/handler"
	teamProcessor "footballadmin/internal/teams/processor"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Logger *observability.Logger

	// Handlers
	AuthHandler     authHandler.Handler
	TeamHandler     teamHandler.Handler
	ChannelHandler  channelHandler.Handler
	MatchHandler    matchHandler.Handler
	AdHandler       adsHandler.Handler
	CampaignHandler campaignHandler.Handler
	IngestHandler   ingestHandler.Handler
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Initialize database store
	var err error
	deps.Store, err = store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize clients
	pushClient, err := fcm.NewClient(ctx, cfg.Push.CredentialsFile, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create push client: %w", err)
	}
	sportsClient := sportsdata.NewClient(cfg.Sports.BaseURL, cfg.Sports.APIKey, logger)
	newsClient := newsapi.NewClient(cfg.News.BaseURL, cfg.News.APIKey, logger)

	// Initialize auth processor and handler
	authProc := authProcessor.New(cfg.Auth.AdminPasswordHash, cfg.Auth.JWTSecret, logger)
	deps.AuthHandler = authHandler.New(authProc, logger)

	// Initialize team processor and handler
	teamProc := teamProcessor.New(&deps.Store, logger)
	deps.TeamHandler = teamHandler.New(teamProc, logger)

	// Initialize channel processor and handler
	channelProc := channelProcessor.New(&deps.Store, logger)
	deps.ChannelHandler = channelHandler.New(channelProc, logger)

	// Initialize match processor and handler
	matchProc := matchProcessor.New(&deps.Store, pushClient, logger)
	deps.MatchHandler = matchHandler.New(matchProc, logger)

	// Initialize ad processor and handler
	adProc := adsProcessor.New(&deps.Store, pushClient, logger)
	deps.AdHandler = adsHandler.New(adProc, logger)

	// Initialize campaign processor and handler
	campaignProc := campaignProcessor.New(&deps.Store, pushClient, logger)
	deps.CampaignHandler = campaignHandler.New(campaignProc, logger)

	// Initialize ingest processor and handler
	ingestProc := ingestProcessor.New(
		&deps.Store,
		sportsClient,
		newsClient,
		cfg.Sports.CompetitionCodes,
		cfg.Sports.BatchDelay,
		cfg.News.MaxPages,
		logger,
	)
	deps.IngestHandler = ingestHandler.New(ingestProc, logger)

	return deps, nil
}

// Cleanup releases held resources
func (d *Dependencies) Cleanup() {
	d.Store.Close()
}
