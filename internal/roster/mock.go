package roster

import (
	"context"
	"fmt"
	"sync"
)

// MockStore is a mock implementation of the Store interface for testing.
// Without hooks it behaves like an in-memory store.
type MockStore struct {
	mu    sync.Mutex
	teams map[string]Team

	TeamFunc       func(ctx context.Context, teamID string) (Team, error)
	TeamsFunc      func(ctx context.Context) ([]Team, error)
	UpsertTeamFunc func(ctx context.Context, team Team) error
	DeleteTeamFunc func(ctx context.Context, teamID string) error

	TeamCalls       []string
	UpsertTeamCalls []Team
	DeleteTeamCalls []string
}

// NewMock creates a new mock instance seeded with teams.
func NewMock(teams ...Team) *MockStore {
	m := &MockStore{teams: make(map[string]Team)}
	for _, t := range teams {
		m.teams[t.ID] = t
	}
	return m
}

func (m *MockStore) Team(ctx context.Context, teamID string) (Team, error) {
	m.mu.Lock()
	m.TeamCalls = append(m.TeamCalls, teamID)
	fn := m.TeamFunc
	t, ok := m.teams[teamID]
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, teamID)
	}
	if !ok {
		return Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	return t, nil
}

func (m *MockStore) Teams(ctx context.Context) ([]Team, error) {
	m.mu.Lock()
	fn := m.TeamsFunc
	out := make([]Team, 0, len(m.teams))
	for _, t := range m.teams {
		out = append(out, t)
	}
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return out, nil
}

func (m *MockStore) UpsertTeam(ctx context.Context, team Team) error {
	m.mu.Lock()
	m.UpsertTeamCalls = append(m.UpsertTeamCalls, team)
	fn := m.UpsertTeamFunc
	if fn == nil {
		m.teams[team.ID] = team
	}
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, team)
	}
	return nil
}

func (m *MockStore) DeleteTeam(ctx context.Context, teamID string) error {
	m.mu.Lock()
	m.DeleteTeamCalls = append(m.DeleteTeamCalls, teamID)
	fn := m.DeleteTeamFunc
	if fn == nil {
		delete(m.teams, teamID)
	}
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, teamID)
	}
	return nil
}

// Reset clears recorded calls and hooks.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeamFunc = nil
	m.TeamsFunc = nil
	m.UpsertTeamFunc = nil
	m.DeleteTeamFunc = nil
	m.TeamCalls = nil
	m.UpsertTeamCalls = nil
	m.DeleteTeamCalls = nil
}
