package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/crease/internal/scoring"
	"github.com/mauv0809/crease/internal/tournament"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendWicketNotificationCalls       []scoring.Event
	SendInningsBreakNotificationCalls []string
	SendResultNotificationCalls       []string
	FormatScoreResponseCalls          []string
	FormatTableResponseCalls          []string
	FormatPlayerStatsResponseCalls    []string
	FormatNotFoundResponseCalls       []string

	// Spies
	SendWicketNotificationFunc func(ctx context.Context, match *scoring.State, wicket scoring.Event, dryRun bool) error
	SendResultNotificationFunc func(ctx context.Context, match *scoring.State, dryRun bool) error
	FormatScoreResponseFunc    func(match *scoring.State) (any, error)
	FormatMatchesResponseFunc  func(matches []*scoring.State) (any, error)
	FormatTableResponseFunc    func(tournamentID string, table []tournament.Standing) (any, error)
	FormatPlayerStatsFunc      func(stats tournament.PlayerStats) (any, error)
	FormatNotFoundResponseFunc func(query string) (any, error)
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendWicketNotification(ctx context.Context, match *scoring.State, wicket scoring.Event, dryRun bool) error {
	m.mu.Lock()
	m.SendWicketNotificationCalls = append(m.SendWicketNotificationCalls, wicket)
	fn := m.SendWicketNotificationFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, match, wicket, dryRun)
	}
	return nil
}

func (m *Mock) SendInningsBreakNotification(_ context.Context, match *scoring.State, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendInningsBreakNotificationCalls = append(m.SendInningsBreakNotificationCalls, match.ID)
	return nil
}

func (m *Mock) SendResultNotification(ctx context.Context, match *scoring.State, dryRun bool) error {
	m.mu.Lock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, match.ID)
	fn := m.SendResultNotificationFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, match, dryRun)
	}
	return nil
}

func (m *Mock) FormatScoreResponse(match *scoring.State) (any, error) {
	m.mu.Lock()
	m.FormatScoreResponseCalls = append(m.FormatScoreResponseCalls, match.ID)
	fn := m.FormatScoreResponseFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(match)
	}
	return map[string]string{"text": match.ID}, nil
}

func (m *Mock) FormatMatchesResponse(matches []*scoring.State) (any, error) {
	m.mu.Lock()
	fn := m.FormatMatchesResponseFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(matches)
	}
	return map[string]int{"matches": len(matches)}, nil
}

func (m *Mock) FormatTableResponse(tournamentID string, table []tournament.Standing) (any, error) {
	m.mu.Lock()
	m.FormatTableResponseCalls = append(m.FormatTableResponseCalls, tournamentID)
	fn := m.FormatTableResponseFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(tournamentID, table)
	}
	return map[string]int{"teams": len(table)}, nil
}

func (m *Mock) FormatPlayerStatsResponse(stats tournament.PlayerStats) (any, error) {
	m.mu.Lock()
	m.FormatPlayerStatsResponseCalls = append(m.FormatPlayerStatsResponseCalls, stats.Name)
	fn := m.FormatPlayerStatsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(stats)
	}
	return map[string]string{"player": stats.Name}, nil
}

func (m *Mock) FormatNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	m.FormatNotFoundResponseCalls = append(m.FormatNotFoundResponseCalls, query)
	fn := m.FormatNotFoundResponseFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(query)
	}
	return map[string]string{"notFound": query}, nil
}

// Wickets returns a copy of the recorded wicket notifications.
func (m *Mock) Wickets() []scoring.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]scoring.Event(nil), m.SendWicketNotificationCalls...)
}

// Results returns the match ids passed to SendResultNotification.
func (m *Mock) Results() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.SendResultNotificationCalls...)
}

// InningsBreaks returns the match ids passed to SendInningsBreakNotification.
func (m *Mock) InningsBreaks() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.SendInningsBreakNotificationCalls...)
}
