// Package match hosts the scoring engine: it loads the committed snapshot of a match, applies a
// command, commits the result and fans it out to subscribers, Pub/Sub and Slack.
package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/crease/internal/metrics"
	"github.com/mauv0809/crease/internal/notifier"
	"github.com/mauv0809/crease/internal/pubsub"
	"github.com/mauv0809/crease/internal/roster"
	"github.com/mauv0809/crease/internal/scoring"
	"github.com/mauv0809/crease/internal/store"
	"github.com/mauv0809/crease/internal/tournament"
)

// CreateRequest describes a new fixture. Teams are looked up by id in the roster.
type CreateRequest struct {
	ID           string               `json:"id,omitempty"`
	TournamentID string               `json:"tournamentId,omitempty"`
	Stage        string               `json:"stage,omitempty"`
	Venue        string               `json:"venue,omitempty"`
	ScorerName   string               `json:"scorerName,omitempty"`
	ScheduledAt  time.Time            `json:"scheduledAt"`
	TeamA        string               `json:"teamA"`
	TeamB        string               `json:"teamB"`
	TotalOvers   int                  `json:"totalOvers"`
	TossWinner   string               `json:"tossWinner,omitempty"`
	TossDecision scoring.TossDecision `json:"tossDecision,omitempty"`
}

// Service serialises commands per match and commits each result.
type Service struct {
	store     store.Gateway
	rosters   roster.Provider
	engine    *scoring.Engine
	metrics   metrics.Metrics
	counters  metrics.MetricsStore
	notifier  notifier.Notifier
	publisher pubsub.PubSubClient
	newID     func() string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sends Slack messages for wickets, innings breaks and results.
func WithNotifier(n notifier.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithPublisher publishes every commit to Pub/Sub. Notifications are then left to the push
// subscriber instead of being sent inline.
func WithPublisher(p pubsub.PubSubClient) Option {
	return func(s *Service) { s.publisher = p }
}

// WithCounters keeps lifetime totals in the metrics table.
func WithCounters(c metrics.MetricsStore) Option {
	return func(s *Service) { s.counters = c }
}

// WithEngine replaces the default engine, e.g. to pin the clock in tests.
func WithEngine(e *scoring.Engine) Option {
	return func(s *Service) { s.engine = e }
}

// WithIDGenerator replaces uuid-based match ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// NewService creates a Service.
func NewService(gw store.Gateway, rosters roster.Provider, m metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		store:   gw,
		rosters: rosters,
		engine:  scoring.NewEngine(),
		metrics: m,
		newID:   uuid.NewString,
		locks:   map[string]*sync.Mutex{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create schedules a new match.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*scoring.State, error) {
	teamA, err := s.team(ctx, req.TeamA)
	if err != nil {
		return nil, err
	}
	teamB, err := s.team(ctx, req.TeamB)
	if err != nil {
		return nil, err
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = s.newID()
	}
	m, err := scoring.NewMatch(scoring.Setup{
		ID:           id,
		TournamentID: req.TournamentID,
		Stage:        req.Stage,
		Venue:        req.Venue,
		ScorerName:   req.ScorerName,
		ScheduledAt:  req.ScheduledAt,
		TeamA:        teamA,
		TeamB:        teamB,
		TotalOvers:   req.TotalOvers,
		TossWinner:   req.TossWinner,
		TossDecision: req.TossDecision,
	})
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	s.count(metrics.KeyMatchesCreated, 1)
	return m, nil
}

func (s *Service) team(ctx context.Context, id string) (roster.Team, error) {
	if strings.TrimSpace(id) == "" {
		return roster.Team{}, scoring.ErrInvalidTeams
	}
	t, err := s.rosters.Team(ctx, id)
	if err != nil {
		return roster.Team{}, fmt.Errorf("failed to load team %s: %w", id, err)
	}
	return t, nil
}

// Get returns the committed snapshot of a match.
func (s *Service) Get(ctx context.Context, matchID string) (*scoring.State, error) {
	return s.store.Get(ctx, matchID)
}

// List returns the matches of a tournament, or every match for an empty id.
func (s *Service) List(ctx context.Context, tournamentID string) ([]*scoring.State, error) {
	return s.store.List(ctx, tournamentID)
}

// Subscribe streams every commit of a match.
func (s *Service) Subscribe(ctx context.Context, matchID string) (<-chan store.Update, func()) {
	return s.store.Subscribe(ctx, matchID)
}

// Apply runs cmd against the latest snapshot of matchID and commits the result. With dryRun
// the snapshot is still committed but Slack messages are only logged.
func (s *Service) Apply(ctx context.Context, matchID string, cmd scoring.Command, dryRun bool) (*scoring.State, []scoring.Event, error) {
	start := time.Now()
	name := "unknown"
	if cmd != nil {
		name = cmd.Name()
	}

	lock := s.lock(matchID)
	lock.Lock()
	defer lock.Unlock()

	cur, err := s.store.Get(ctx, matchID)
	if err != nil {
		s.metrics.IncCommandsRejected(name, Reason(err))
		return nil, nil, err
	}
	next, events, err := s.engine.Apply(cur, cmd)
	if err != nil {
		s.metrics.IncCommandsRejected(name, Reason(err))
		log.Info("Rejected command", "match_id", matchID, "command", name, "error", err)
		return nil, nil, err
	}
	next.Version = cur.Version + 1
	if err := s.store.Put(ctx, next, events); err != nil {
		s.metrics.IncCommandsRejected(name, Reason(err))
		return nil, nil, err
	}

	s.metrics.IncCommands(name)
	s.metrics.ObserveCommandDuration(time.Since(start).Seconds())
	s.record(cmd, cur, next)
	log.Info("Applied command", "match_id", matchID, "command", name, "version", next.Version, "score", fmt.Sprintf("%d/%d", next.Score, next.Wickets))

	s.dispatch(ctx, next, events, dryRun)
	return next, events, nil
}

func (s *Service) lock(matchID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[matchID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[matchID] = l
	}
	return l
}

func (s *Service) record(cmd scoring.Command, cur, next *scoring.State) {
	switch c := cmd.(type) {
	case scoring.RecordDelivery:
		s.metrics.IncDeliveries(string(c.Kind))
		s.count(metrics.KeyDeliveriesRecorded, 1)
		if c.IsWicket {
			s.metrics.IncWickets()
		}
	case scoring.UndoLast:
		s.metrics.IncUndos()
		s.count(metrics.KeyDeliveriesRecorded, -1)
	case scoring.FinalizeMatch:
		s.metrics.IncMatchesCompleted()
		s.count(metrics.KeyMatchesCompleted, 1)
	}
	if next.CurrentInnings == cur.CurrentInnings {
		s.count(metrics.KeyRunsScored, next.Score-cur.Score)
		s.count(metrics.KeyWicketsTaken, next.Wickets-cur.Wickets)
	}
}

func (s *Service) count(key string, delta int) {
	if s.counters != nil {
		s.counters.Add(key, delta)
	}
}

func (s *Service) dispatch(ctx context.Context, next *scoring.State, events []scoring.Event, dryRun bool) {
	if s.publisher != nil {
		msg := pubsub.NewMatchMessage(next, events)
		if err := s.publisher.SendMessage(ctx, msg.Topic(), msg); err != nil {
			log.Error("Failed to publish match update", "match_id", next.ID, "error", err)
		}
		return
	}
	if err := s.Notify(ctx, next, events, dryRun); err != nil {
		log.Error("Failed to notify", "match_id", next.ID, "error", err)
	}
}

// Notify sends the Slack messages that events call for.
func (s *Service) Notify(ctx context.Context, m *scoring.State, events []scoring.Event, dryRun bool) error {
	if s.notifier == nil {
		return nil
	}
	var errs []error
	for _, ev := range events {
		var err error
		switch ev.Type {
		case scoring.EventWicket:
			err = s.notifier.SendWicketNotification(ctx, m, ev, dryRun)
		case scoring.EventTargetSet:
			err = s.notifier.SendInningsBreakNotification(ctx, m, dryRun)
		case scoring.EventMatchCompleted:
			err = s.notifier.SendResultNotification(ctx, m, dryRun)
		}
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("failed to notify %s: %w", ev.Type, err))
		case ev.Type == scoring.EventWicket, ev.Type == scoring.EventTargetSet, ev.Type == scoring.EventMatchCompleted:
			s.count(metrics.KeyNotificationsSent, 1)
		}
	}
	return errors.Join(errs...)
}

// Table computes the points table of a tournament.
func (s *Service) Table(ctx context.Context, tournamentID string) ([]tournament.Standing, error) {
	matches, err := s.store.List(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return tournament.PointsTable(matches), nil
}

// Performers computes the leaderboards of a tournament.
func (s *Service) Performers(ctx context.Context, tournamentID string) (tournament.Performers, error) {
	matches, err := s.store.List(ctx, tournamentID)
	if err != nil {
		return tournament.Performers{}, err
	}
	return tournament.Leaderboards(matches), nil
}

// Career returns a player's figures across every stored match. The name match ignores case.
func (s *Service) Career(ctx context.Context, name string) (tournament.PlayerStats, bool, error) {
	matches, err := s.store.List(ctx, "")
	if err != nil {
		return tournament.PlayerStats{}, false, err
	}
	for _, p := range tournament.Aggregate(matches) {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, true, nil
		}
	}
	return tournament.PlayerStats{}, false, nil
}

// Reason classifies err for metrics labels.
func Reason(err error) string {
	switch {
	case errors.Is(err, scoring.ErrRosterInconsistency):
		return "roster_inconsistency"
	case errors.Is(err, scoring.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, scoring.ErrIllegalOperation):
		return "illegal_operation"
	case errors.Is(err, store.ErrVersionConflict):
		return "version_conflict"
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	case errors.Is(err, store.ErrPersistence):
		return "persistence"
	}
	return "other"
}
