package processor

import (
	"context"
	"errors"
	"strings"

	"footballadmin/internal/observability"
	"footballadmin/internal/store"

	"github.com/google/uuid"
)

// ChannelStore defines the database operations required by ChannelProcessor
type ChannelStore interface {
	CreateChannel(ctx context.Context, params store.CreateChannelParams) (store.Channel, error)
	GetChannelByID(ctx context.Context, channelID uuid.UUID) (store.Channel, error)
	ListChannels(ctx context.Context) ([]store.Channel, error)
	UpdateChannel(ctx context.Context, channelID uuid.UUID, params store.UpdateChannelParams) (store.Channel, error)
	DeleteChannel(ctx context.Context, channelID uuid.UUID) error
	CountMatchesReferencingChannel(ctx context.Context, channelID uuid.UUID) (int, error)
}

var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrDuplicateName   = errors.New("channel name already exists")
	ErrChannelInUse    = errors.New("channel is referenced by a match")
	ErrInvalidChannel  = errors.New("channel name and m3u8 url are required")
)

type ChannelProcessor struct {
	store  ChannelStore
	logger *observability.Logger
}

func New(store ChannelStore, logger *observability.Logger) ChannelProcessor {
	return ChannelProcessor{
		store:  store,
		logger: logger,
	}
}

// CreateChannelParams represents parameters for creating a channel
type CreateChannelParams struct {
	Name    string
	M3U8URL string
	Headers store.ChannelHeaders
}

// UpdateChannelParams represents parameters for updating a channel
type UpdateChannelParams struct {
	Name    *string
	M3U8URL *string
	Headers *store.ChannelHeaders
}

// CreateChannel creates a stream channel
func (p *ChannelProcessor) CreateChannel(ctx context.Context, params CreateChannelParams) (store.Channel, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" || strings.TrimSpace(params.M3U8URL) == "" {
		return store.Channel{}, ErrInvalidChannel
	}
	if params.Headers == nil {
		params.Headers = store.ChannelHeaders{}
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "channel_name", Value: name})

	channel, err := p.store.CreateChannel(ctx, store.CreateChannelParams{
		Name:    name,
		M3U8URL: params.M3U8URL,
		Headers: params.Headers,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return store.Channel{}, ErrDuplicateName
		}
		return store.Channel{}, err
	}

	p.logger.Info(ctx, "channel created")
	return channel, nil
}

// GetChannel retrieves a channel by ID
func (p *ChannelProcessor) GetChannel(ctx context.Context, channelID uuid.UUID) (store.Channel, error) {
	channel, err := p.store.GetChannelByID(ctx, channelID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Channel{}, ErrChannelNotFound
		}
		return store.Channel{}, err
	}
	return channel, nil
}

// ListChannels returns all channels
func (p *ChannelProcessor) ListChannels(ctx context.Context) ([]store.Channel, error) {
	return p.store.ListChannels(ctx)
}

// UpdateChannel updates channel fields
func (p *ChannelProcessor) UpdateChannel(ctx context.Context, channelID uuid.UUID, params UpdateChannelParams) (store.Channel, error) {
	channel, err := p.store.UpdateChannel(ctx, channelID, store.UpdateChannelParams{
		Name:    params.Name,
		M3U8URL: params.M3U8URL,
		Headers: params.Headers,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return store.Channel{}, ErrChannelNotFound
		case errors.Is(err, store.ErrDuplicate):
			return store.Channel{}, ErrDuplicateName
		}
		return store.Channel{}, err
	}
	return channel, nil
}

// DeleteChannel removes a channel unless a match still references it
func (p *ChannelProcessor) DeleteChannel(ctx context.Context, channelID uuid.UUID) error {
	count, err := p.store.CountMatchesReferencingChannel(ctx, channelID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrChannelInUse
	}

	if err := p.store.DeleteChannel(ctx, channelID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrChannelNotFound
		}
		return err
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "channel_id", Value: channelID.String()}), "channel deleted")
	return nil
}
