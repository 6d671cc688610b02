package roster

import (
	"context"
	"errors"
)

// ErrTeamNotFound is returned when a provider has no team with the requested id.
var ErrTeamNotFound = errors.New("team not found")

// Provider supplies team rosters to the scoring host.
type Provider interface {
	Team(ctx context.Context, teamID string) (Team, error)
	Teams(ctx context.Context) ([]Team, error)
}

// Store is a Provider that can also persist teams.
type Store interface {
	Provider
	UpsertTeam(ctx context.Context, team Team) error
	DeleteTeam(ctx context.Context, teamID string) error
}
