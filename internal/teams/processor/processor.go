package processor

import (
	"context"
	"errors"
	"strings"

	"footballadmin/internal/observability"
	"footballadmin/internal/store"

	"github.com/google/uuid"
)

// TeamStore defines the database operations required by TeamProcessor
type TeamStore interface {
	CreateTeam(ctx context.Context, params store.CreateTeamParams) (store.Team, error)
	GetTeamByID(ctx context.Context, teamID uuid.UUID) (store.Team, error)
	ListTeams(ctx context.Context) ([]store.Team, error)
	UpdateTeam(ctx context.Context, teamID uuid.UUID, params store.UpdateTeamParams) (store.Team, error)
	DeleteTeam(ctx context.Context, teamID uuid.UUID) error
	CountMatchesReferencingTeam(ctx context.Context, teamID uuid.UUID) (int, error)
}

var (
	ErrTeamNotFound  = errors.New("team not found")
	ErrDuplicateName = errors.New("team name already exists")
	ErrTeamInUse     = errors.New("team is referenced by a match")
	ErrEmptyName     = errors.New("team name is required")
)

type TeamProcessor struct {
	store  TeamStore
	logger *observability.Logger
}

func New(store TeamStore, logger *observability.Logger) TeamProcessor {
	return TeamProcessor{
		store:  store,
		logger: logger,
	}
}

// CreateTeamParams represents parameters for creating a team
type CreateTeamParams struct {
	Name     string
	CrestURL *string
}

// UpdateTeamParams represents parameters for updating a team
type UpdateTeamParams struct {
	Name     *string
	CrestURL *string
}

// CreateTeam creates a team. Name uniqueness is case-insensitive and
// enforced by the store's index, not by a lookup here.
func (p *TeamProcessor) CreateTeam(ctx context.Context, params CreateTeamParams) (store.Team, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return store.Team{}, ErrEmptyName
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "team_name", Value: name})

	team, err := p.store.CreateTeam(ctx, store.CreateTeamParams{Name: name, CrestURL: params.CrestURL})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return store.Team{}, ErrDuplicateName
		}
		return store.Team{}, err
	}

	p.logger.Info(ctx, "team created")
	return team, nil
}

// GetTeam retrieves a team by ID
func (p *TeamProcessor) GetTeam(ctx context.Context, teamID uuid.UUID) (store.Team, error) {
	team, err := p.store.GetTeamByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Team{}, ErrTeamNotFound
		}
		return store.Team{}, err
	}
	return team, nil
}

// ListTeams returns all teams
func (p *TeamProcessor) ListTeams(ctx context.Context) ([]store.Team, error) {
	return p.store.ListTeams(ctx)
}

// UpdateTeam updates a team's name and/or crest URL
func (p *TeamProcessor) UpdateTeam(ctx context.Context, teamID uuid.UUID, params UpdateTeamParams) (store.Team, error) {
	if params.Name != nil {
		trimmed := strings.TrimSpace(*params.Name)
		if trimmed == "" {
			return store.Team{}, ErrEmptyName
		}
		params.Name = &trimmed
	}

	team, err := p.store.UpdateTeam(ctx, teamID, store.UpdateTeamParams{Name: params.Name, CrestURL: params.CrestURL})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return store.Team{}, ErrTeamNotFound
		case errors.Is(err, store.ErrDuplicate):
			return store.Team{}, ErrDuplicateName
		}
		return store.Team{}, err
	}
	return team, nil
}

// DeleteTeam removes a team unless a match still references it
func (p *TeamProcessor) DeleteTeam(ctx context.Context, teamID uuid.UUID) error {
	count, err := p.store.CountMatchesReferencingTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrTeamInUse
	}

	if err := p.store.DeleteTeam(ctx, teamID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "team_id", Value: teamID.String()}), "team deleted")
	return nil
}
