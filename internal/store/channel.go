package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreateChannelParams represents parameters for creating a channel
type CreateChannelParams struct {
	Name    string
	M3U8URL string
	Headers ChannelHeaders
}

// UpdateChannelParams represents parameters for updating a channel
type UpdateChannelParams struct {
	Name    *string
	M3U8URL *string
	Headers *ChannelHeaders
}

const sqlCreateChannel = `
INSERT INTO channels (name, m3u8_url, headers)
VALUES ($1, $2, $3)
RETURNING id, name, m3u8_url, headers, created_at, updated_at
`

// CreateChannel creates a new stream channel
func (s *Store) CreateChannel(ctx context.Context, params CreateChannelParams) (Channel, error) {
	var channel Channel
	err := s.db.GetContext(ctx, &channel, sqlCreateChannel, params.Name, params.M3U8URL, params.Headers)
	if err != nil {
		if isUniqueViolation(err) {
			return Channel{}, ErrDuplicate
		}
		s.logger.Error(ctx, "failed to create channel", err)
		return Channel{}, fmt.Errorf("failed to create channel: %w", err)
	}
	return channel, nil
}

const sqlGetChannelByID = `
SELECT id, name, m3u8_url, headers, created_at, updated_at
FROM channels
WHERE id = $1
`

// GetChannelByID retrieves a channel by ID
func (s *Store) GetChannelByID(ctx context.Context, channelID uuid.UUID) (Channel, error) {
	var channel Channel
	err := s.db.GetContext(ctx, &channel, sqlGetChannelByID, channelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Channel{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get channel by id", err)
		return Channel{}, fmt.Errorf("failed to get channel by id: %w", err)
	}
	return channel, nil
}

const sqlListChannels = `
SELECT id, name, m3u8_url, headers, created_at, updated_at
FROM channels
ORDER BY name ASC
`

// ListChannels returns all channels ordered by name
func (s *Store) ListChannels(ctx context.Context) ([]Channel, error) {
	channels := []Channel{}
	if err := s.db.SelectContext(ctx, &channels, sqlListChannels); err != nil {
		s.logger.Error(ctx, "failed to list channels", err)
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	return channels, nil
}

const sqlUpdateChannel = `
UPDATE channels
SET name = COALESCE($2, name),
    m3u8_url = COALESCE($3, m3u8_url),
    headers = COALESCE($4, headers),
    updated_at = NOW()
WHERE id = $1
RETURNING id, name, m3u8_url, headers, created_at, updated_at
`

// UpdateChannel updates a channel's name, URL and/or headers
func (s *Store) UpdateChannel(ctx context.Context, channelID uuid.UUID, params UpdateChannelParams) (Channel, error) {
	var channel Channel
	err := s.db.GetContext(ctx, &channel, sqlUpdateChannel, channelID, params.Name, params.M3U8URL, params.Headers)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Channel{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return Channel{}, ErrDuplicate
		}
		s.logger.Error(ctx, "failed to update channel", err)
		return Channel{}, fmt.Errorf("failed to update channel: %w", err)
	}
	return channel, nil
}

// DeleteChannel removes a channel by ID
func (s *Store) DeleteChannel(ctx context.Context, channelID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM channels WHERE id = $1`, channelID)
	if err != nil {
		s.logger.Error(ctx, "failed to delete channel", err)
		return fmt.Errorf("failed to delete channel: %w", err)
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

const sqlCountMatchesReferencingChannel = `
SELECT COUNT(*) FROM matches WHERE $1 = ANY(channel_ids)
`

// CountMatchesReferencingChannel reports how many matches use the channel
func (s *Store) CountMatchesReferencingChannel(ctx context.Context, channelID uuid.UUID) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, sqlCountMatchesReferencingChannel, channelID); err != nil {
		s.logger.Error(ctx, "failed to count matches referencing channel", err)
		return 0, fmt.Errorf("failed to count matches referencing channel: %w", err)
	}
	return count, nil
}
