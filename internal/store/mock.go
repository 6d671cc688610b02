package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/mauv0809/crease/internal/scoring"
)

// Mock is an in-memory Gateway for tests. Hooks override the default behaviour.
type Mock struct {
	mu      sync.Mutex
	matches map[string]*scoring.State
	broker  *Broker

	PutFunc func(ctx context.Context, s *scoring.State, events []scoring.Event) error
	GetFunc func(ctx context.Context, matchID string) (*scoring.State, error)

	CreateCalls []string
	PutCalls    []Update
	GetCalls    []string
}

var _ Gateway = (*Mock)(nil)

// NewMock creates an empty mock gateway.
func NewMock() *Mock {
	return &Mock{matches: map[string]*scoring.State{}, broker: NewBroker()}
}

func (m *Mock) Create(_ context.Context, s *scoring.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, s.ID)
	if _, ok := m.matches[s.ID]; ok {
		return fmt.Errorf("%w: %s", ErrExists, s.ID)
	}
	m.matches[s.ID] = s.Clone()
	m.broker.Publish(Update{State: s})
	return nil
}

func (m *Mock) Put(ctx context.Context, s *scoring.State, events []scoring.Event) error {
	m.mu.Lock()
	m.PutCalls = append(m.PutCalls, Update{State: s, Events: events})
	fn := m.PutFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, s, events)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.matches[s.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, s.ID)
	}
	if cur.Version != s.Version-1 {
		return fmt.Errorf("%w: %s at version %d", ErrVersionConflict, s.ID, s.Version)
	}
	m.matches[s.ID] = s.Clone()
	m.broker.Publish(Update{State: s, Events: events})
	return nil
}

func (m *Mock) Get(ctx context.Context, matchID string) (*scoring.State, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, matchID)
	fn := m.GetFunc
	s, ok := m.matches[matchID]
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, matchID)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, matchID)
	}
	return s.Clone(), nil
}

func (m *Mock) List(_ context.Context, tournamentID string) ([]*scoring.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*scoring.State
	for _, s := range m.matches {
		if tournamentID == "" || s.TournamentID == tournamentID {
			out = append(out, s.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *scoring.State) int {
		if c := a.ScheduledAt.Compare(b.ScheduledAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (m *Mock) Subscribe(ctx context.Context, matchID string) (<-chan Update, func()) {
	return m.broker.Subscribe(ctx, matchID)
}
