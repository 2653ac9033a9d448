package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreateMatchParams represents parameters for creating a match
type CreateMatchParams struct {
	Title      string
	Team1ID    uuid.UUID
	Team2ID    uuid.UUID
	ChannelIDs UUIDArray
	StreamURL  *string
}

// UpdateMatchParams represents parameters for updating a match
type UpdateMatchParams struct {
	Title      *string
	Team1ID    *uuid.UUID
	Team2ID    *uuid.UUID
	ChannelIDs *UUIDArray
	StreamURL  *string
}

const matchColumns = `id, title, team1_id, team2_id, channel_ids, stream_url, is_live, notifications_enabled, created_at, updated_at`

const sqlCreateMatch = `
INSERT INTO matches (title, team1_id, team2_id, channel_ids, stream_url)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + matchColumns

// CreateMatch creates a new match
func (s *Store) CreateMatch(ctx context.Context, params CreateMatchParams) (Match, error) {
	var match Match
	err := s.db.GetContext(ctx, &match, sqlCreateMatch,
		params.Title, params.Team1ID, params.Team2ID, params.ChannelIDs, params.StreamURL)
	if err != nil {
		s.logger.Error(ctx, "failed to create match", err)
		return Match{}, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

const sqlGetMatchByID = `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

// GetMatchByID retrieves a match by ID
func (s *Store) GetMatchByID(ctx context.Context, matchID uuid.UUID) (Match, error) {
	var match Match
	err := s.db.GetContext(ctx, &match, sqlGetMatchByID, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Match{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get match by id", err)
		return Match{}, fmt.Errorf("failed to get match by id: %w", err)
	}
	return match, nil
}

const sqlListMatches = `SELECT ` + matchColumns + ` FROM matches ORDER BY created_at DESC`

// ListMatches returns all matches, newest first
func (s *Store) ListMatches(ctx context.Context) ([]Match, error) {
	matches := []Match{}
	if err := s.db.SelectContext(ctx, &matches, sqlListMatches); err != nil {
		s.logger.Error(ctx, "failed to list matches", err)
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

const sqlUpdateMatch = `
UPDATE matches
SET title = COALESCE($2, title),
    team1_id = COALESCE($3, team1_id),
    team2_id = COALESCE($4, team2_id),
    channel_ids = COALESCE($5, channel_ids),
    stream_url = COALESCE($6, stream_url),
    updated_at = NOW()
WHERE id = $1
RETURNING ` + matchColumns

// UpdateMatch updates match fields that are set in params
func (s *Store) UpdateMatch(ctx context.Context, matchID uuid.UUID, params UpdateMatchParams) (Match, error) {
	var match Match
	err := s.db.GetContext(ctx, &match, sqlUpdateMatch, matchID,
		params.Title, params.Team1ID, params.Team2ID, params.ChannelIDs, params.StreamURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Match{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to update match", err)
		return Match{}, fmt.Errorf("failed to update match: %w", err)
	}
	return match, nil
}

// DeleteMatch removes a match by ID
func (s *Store) DeleteMatch(ctx context.Context, matchID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, matchID)
	if err != nil {
		s.logger.Error(ctx, "failed to delete match", err)
		return fmt.Errorf("failed to delete match: %w", err)
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

const sqlSetMatchLive = `
UPDATE matches SET is_live = $2, updated_at = NOW()
WHERE id = $1
RETURNING ` + matchColumns

// SetMatchLive flips the operator-controlled live flag
func (s *Store) SetMatchLive(ctx context.Context, matchID uuid.UUID, isLive bool) (Match, error) {
	var match Match
	err := s.db.GetContext(ctx, &match, sqlSetMatchLive, matchID, isLive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Match{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to set match live flag", err)
		return Match{}, fmt.Errorf("failed to set match live flag: %w", err)
	}
	return match, nil
}

const sqlSetMatchNotifications = `
UPDATE matches SET notifications_enabled = $2, updated_at = NOW()
WHERE id = $1
RETURNING ` + matchColumns

// SetMatchNotifications flips per-match notification delivery
func (s *Store) SetMatchNotifications(ctx context.Context, matchID uuid.UUID, enabled bool) (Match, error) {
	var match Match
	err := s.db.GetContext(ctx, &match, sqlSetMatchNotifications, matchID, enabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Match{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to set match notifications flag", err)
		return Match{}, fmt.Errorf("failed to set match notifications flag: %w", err)
	}
	return match, nil
}
