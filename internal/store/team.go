package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreateTeamParams represents parameters for creating a team
type CreateTeamParams struct {
	Name     string  `db:"name"`
	CrestURL *string `db:"crest_url"`
}

// UpdateTeamParams represents parameters for updating a team
type UpdateTeamParams struct {
	Name     *string
	CrestURL *string
}

const sqlCreateTeam = `
INSERT INTO teams (name, crest_url)
VALUES ($1, $2)
RETURNING id, name, crest_url, created_at, updated_at
`

// CreateTeam creates a new team. A case-insensitive duplicate name is
// reported as ErrDuplicate by the unique index on lower(name).
func (s *Store) CreateTeam(ctx context.Context, params CreateTeamParams) (Team, error) {
	var team Team
	err := s.db.GetContext(ctx, &team, sqlCreateTeam, params.Name, params.CrestURL)
	if err != nil {
		if isUniqueViolation(err) {
			return Team{}, ErrDuplicate
		}
		s.logger.Error(ctx, "failed to create team", err)
		return Team{}, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

const sqlGetTeamByID = `
SELECT id, name, crest_url, created_at, updated_at
FROM teams
WHERE id = $1
`

// GetTeamByID retrieves a team by ID
func (s *Store) GetTeamByID(ctx context.Context, teamID uuid.UUID) (Team, error) {
	var team Team
	err := s.db.GetContext(ctx, &team, sqlGetTeamByID, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Team{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get team by id", err)
		return Team{}, fmt.Errorf("failed to get team by id: %w", err)
	}
	return team, nil
}

const sqlListTeams = `
SELECT id, name, crest_url, created_at, updated_at
FROM teams
ORDER BY name ASC
`

// ListTeams returns all teams ordered by name
func (s *Store) ListTeams(ctx context.Context) ([]Team, error) {
	teams := []Team{}
	if err := s.db.SelectContext(ctx, &teams, sqlListTeams); err != nil {
		s.logger.Error(ctx, "failed to list teams", err)
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

const sqlUpdateTeam = `
UPDATE teams
SET name = COALESCE($2, name),
    crest_url = COALESCE($3, crest_url),
    updated_at = NOW()
WHERE id = $1
RETURNING id, name, crest_url, created_at, updated_at
`

// UpdateTeam updates a team's name and/or crest URL
func (s *Store) UpdateTeam(ctx context.Context, teamID uuid.UUID, params UpdateTeamParams) (Team, error) {
	var team Team
	err := s.db.GetContext(ctx, &team, sqlUpdateTeam, teamID, params.Name, params.CrestURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Team{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return Team{}, ErrDuplicate
		}
		s.logger.Error(ctx, "failed to update team", err)
		return Team{}, fmt.Errorf("failed to update team: %w", err)
	}
	return team, nil
}

// DeleteTeam removes a team by ID
func (s *Store) DeleteTeam(ctx context.Context, teamID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, teamID)
	if err != nil {
		s.logger.Error(ctx, "failed to delete team", err)
		return fmt.Errorf("failed to delete team: %w", err)
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

const sqlCountMatchesReferencingTeam = `
SELECT COUNT(*) FROM matches WHERE team1_id = $1 OR team2_id = $1
`

// CountMatchesReferencingTeam reports how many matches use the team
func (s *Store) CountMatchesReferencingTeam(ctx context.Context, teamID uuid.UUID) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, sqlCountMatchesReferencingTeam, teamID); err != nil {
		s.logger.Error(ctx, "failed to count matches referencing team", err)
		return 0, fmt.Errorf("failed to count matches referencing team: %w", err)
	}
	return count, nil
}

const sqlBulkInsertTeams = `
INSERT INTO teams (name, crest_url)
VALUES (:name, :crest_url)
ON CONFLICT DO NOTHING
`

// BulkInsertTeams inserts many teams at once, skipping names that already
// exist. The returned count comes from the rows actually written, so a
// duplicate does not abort or miscount the remaining inserts.
func (s *Store) BulkInsertTeams(ctx context.Context, params []CreateTeamParams) (int64, error) {
	if len(params) == 0 {
		return 0, nil
	}
	res, err := s.db.NamedExecContext(ctx, sqlBulkInsertTeams, params)
	if err != nil {
		s.logger.Error(ctx, "failed to bulk insert teams", err)
		return 0, fmt.Errorf("failed to bulk insert teams: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read bulk insert result: %w", err)
	}
	return inserted, nil
}
