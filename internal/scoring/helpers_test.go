package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/mauv0809/crease/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)

func squad(id, name, prefix string) roster.Team {
	players := make([]roster.Player, 11)
	for i := range players {
		players[i] = roster.Player{Name: fmt.Sprintf("%s%d", prefix, i+1)}
	}
	return roster.Team{ID: id, Name: name, Players: players}
}

// harness drives a match through the engine and fails the test on unexpected errors.
type harness struct {
	t *testing.T
	e *Engine
	s *State
}

func newScheduled(t *testing.T, overs int) *harness {
	t.Helper()
	s, err := NewMatch(Setup{
		ID:         "m1",
		TeamA:      squad("a", "Alpha", "A"),
		TeamB:      squad("b", "Bravo", "B"),
		TotalOvers: overs,
	})
	require.NoError(t, err)
	return &harness{t: t, e: NewEngineWithClock(func() time.Time { return fixedNow }), s: s}
}

// newLive returns a match with Alpha batting, A1 on strike, A2 at the other end and B1 bowling.
func newLive(t *testing.T, overs int) *harness {
	t.Helper()
	h := newScheduled(t, overs)
	h.do(StartMatch{})
	h.do(StartInnings{Striker: "A1", NonStriker: "A2", Bowler: "B1"})
	return h
}

func (h *harness) do(cmd Command) []Event {
	h.t.Helper()
	next, events, err := h.e.Apply(h.s, cmd)
	require.NoError(h.t, err, cmd.Name())
	require.NotNil(h.t, next)
	h.s = next
	return events
}

func (h *harness) fail(cmd Command) error {
	h.t.Helper()
	before := h.s.Clone()
	next, events, err := h.e.Apply(h.s, cmd)
	require.Error(h.t, err, cmd.Name())
	assert.Nil(h.t, next)
	assert.Nil(h.t, events)
	assert.Equal(h.t, before, h.s, "a failed command must not modify the state")
	return err
}

func (h *harness) ball(runs int) []Event {
	h.t.Helper()
	return h.do(RecordDelivery{Runs: runs, Kind: KindLegal})
}

func (h *harness) extra(kind Kind, runs int) []Event {
	h.t.Helper()
	return h.do(RecordDelivery{Runs: runs, Kind: kind})
}

func (h *harness) wicket(dismissal Dismissal) []Event {
	h.t.Helper()
	return h.do(RecordDelivery{Kind: KindLegal, IsWicket: true, Dismissal: &dismissal})
}

// resolve answers new-batsman and new-bowler decisions with the next unused batter and
// the first two bowlers alternating.
func (h *harness) resolve() {
	h.t.Helper()
	for h.s.Status == StatusLive && len(h.s.Pending) > 0 {
		switch p := h.s.Pending[0]; p.Kind {
		case DecisionNewBatsman:
			h.do(SelectNewBatsman{Player: h.nextBatter()})
		case DecisionNewBowler:
			h.do(SelectNewBowler{Player: h.nextBowler(p.Outgoing)})
		default:
			return
		}
	}
}

func (h *harness) nextBatter() string {
	h.t.Helper()
	for _, p := range h.s.BattingTeam().Players {
		if _, ok := h.s.BattingStats[p.Name]; !ok {
			return p.Name
		}
	}
	h.t.Fatal("no batters left")
	return ""
}

func (h *harness) nextBowler(outgoing string) string {
	for _, p := range h.s.BowlingTeam().Players[:2] {
		if p.Name != outgoing {
			return p.Name
		}
	}
	return ""
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}
