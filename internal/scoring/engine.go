package scoring

import (
	"fmt"
	"time"
)

// Command is an intent from the scoring console.
type Command interface {
	// Name is the stable wire name of the command.
	Name() string
	apply(e *Engine, s *State) ([]Event, error)
}

// Engine applies commands to match snapshots. It holds no match state.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an engine that stamps deliveries with the wall clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock creates an engine with a custom clock, used by tests.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Apply reduces cmd over s. On success it returns the next snapshot and the events the command
// produced; on failure it returns the error and s is left as it was.
func (e *Engine) Apply(s *State, cmd Command) (*State, []Event, error) {
	if s == nil {
		return nil, nil, fmt.Errorf("%w: no match state", ErrInvalidInput)
	}
	if cmd == nil {
		return nil, nil, ErrUnknownCommand
	}
	next := s.Clone()
	events, err := cmd.apply(e, next)
	if err != nil {
		return nil, nil, err
	}
	if err := next.Check(); err != nil {
		return nil, nil, err
	}
	return next, events, nil
}

func (s *State) event(t EventType, player, detail string) Event {
	return Event{
		Type:    t,
		Innings: s.CurrentInnings,
		Score:   s.Score,
		Wickets: s.Wickets,
		Overs:   s.Overs(),
		Player:  player,
		Detail:  detail,
	}
}

func (s *State) requireLive() error {
	switch s.Status {
	case StatusScheduled:
		return ErrMatchNotStarted
	case StatusCompleted:
		return ErrMatchCompleted
	case StatusConcluding:
		return ErrDecisionPending
	}
	return nil
}

// requirePlay checks that a delivery-level command is allowed right now.
func (s *State) requirePlay() error {
	if err := s.requireLive(); err != nil {
		return err
	}
	if len(s.Pending) > 0 {
		return ErrDecisionPending
	}
	return nil
}

// peek returns the head of the pending queue if it is of the given kind.
func (s *State) peek(kind DecisionKind) (Decision, error) {
	switch s.Status {
	case StatusScheduled:
		return Decision{}, ErrMatchNotStarted
	case StatusCompleted:
		return Decision{}, ErrMatchCompleted
	}
	if len(s.Pending) == 0 || s.Pending[0].Kind != kind {
		return Decision{}, ErrUnexpectedDecision
	}
	return s.Pending[0], nil
}

// pop resolves the head of the pending queue.
func (s *State) pop() {
	s.Pending = s.Pending[1:]
	if len(s.Pending) == 0 {
		s.Pending = nil
	}
}
