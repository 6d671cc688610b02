package analytics

import (
	"fmt"
	"testing"

	"github.com/mauv0809/crease/internal/roster"
	"github.com/mauv0809/crease/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func team(id, name, prefix string) roster.Team {
	t := roster.Team{ID: id, Name: name}
	for i := 1; i <= 11; i++ {
		t.Players = append(t.Players, roster.Player{Name: fmt.Sprintf("%s%d", prefix, i)})
	}
	return t
}

type match struct {
	t *testing.T
	e *scoring.Engine
	s *scoring.State
}

func newMatch(t *testing.T, overs int) *match {
	t.Helper()
	s, err := scoring.NewMatch(scoring.Setup{ID: "m1", TeamA: team("a", "Alpha", "A"), TeamB: team("b", "Bravo", "B"), TotalOvers: overs})
	require.NoError(t, err)
	m := &match{t: t, e: scoring.NewEngine(), s: s}
	m.do(scoring.StartMatch{})
	m.do(scoring.StartInnings{Striker: "A1", NonStriker: "A2", Bowler: "B1"})
	return m
}

func (m *match) do(cmd scoring.Command) {
	m.t.Helper()
	next, _, err := m.e.Apply(m.s, cmd)
	require.NoError(m.t, err, cmd.Name())
	m.s = next
}

func (m *match) ball(runs int, kind scoring.Kind) {
	m.t.Helper()
	m.do(scoring.RecordDelivery{Runs: runs, Kind: kind})
}

func (m *match) out(d scoring.Dismissal, runs int) {
	m.t.Helper()
	m.do(scoring.RecordDelivery{Runs: runs, Kind: scoring.KindLegal, IsWicket: true, Dismissal: &d})
}

// next resolves pending batter and bowler decisions in roster order.
func (m *match) next() {
	m.t.Helper()
	for len(m.s.Pending) > 0 {
		switch p := m.s.Pending[0]; p.Kind {
		case scoring.DecisionNewBatsman:
			for _, pl := range m.s.BattingTeam().Players {
				if _, ok := m.s.BattingStats[pl.Name]; !ok {
					m.do(scoring.SelectNewBatsman{Player: pl.Name})
					break
				}
			}
		case scoring.DecisionNewBowler:
			name := m.s.BowlingTeam().Players[0].Name
			if name == p.Outgoing {
				name = m.s.BowlingTeam().Players[1].Name
			}
			m.do(scoring.SelectNewBowler{Player: name})
		default:
			return
		}
	}
}

func TestRunRates(t *testing.T) {
	assert.Equal(t, 0.0, RunRate(10, 0))
	assert.Equal(t, 6.0, RunRate(12, 12))
	assert.InDelta(t, 7.5, RunRate(15, 12), 1e-9)

	assert.Equal(t, 0.0, RequiredRunRate(100, 100, 30))
	assert.Equal(t, 0.0, RequiredRunRate(100, 120, 30))
	assert.Equal(t, 0.0, RequiredRunRate(100, 50, 0))
	assert.Equal(t, 12.0, RequiredRunRate(61, 1, 30))

	assert.Equal(t, 0.0, StrikeRate(5, 0))
	assert.Equal(t, 150.0, StrikeRate(15, 10))
	assert.Equal(t, 8.0, Economy(8, 6))
}

func TestProjectedScore(t *testing.T) {
	m := newMatch(t, 20)
	assert.Equal(t, 0, ProjectedScore(m.s))

	m.ball(4, scoring.KindLegal)
	m.ball(1, scoring.KindLegal)
	m.ball(2, scoring.KindLegal)
	m.ball(0, scoring.KindLegal)
	// 7 runs off 4 balls is 10.5 an over
	assert.Equal(t, 210, ProjectedScore(m.s))
}

func TestCurrentPartnership(t *testing.T) {
	m := newMatch(t, 20)
	m.ball(4, scoring.KindLegal)
	m.out(scoring.Dismissal{Type: scoring.Bowled}, 0)
	m.next()
	assert.Equal(t, Partnership{}, CurrentPartnership(m.s.Timeline))

	m.ball(1, scoring.KindLegal)
	m.ball(1, scoring.KindWide)
	m.ball(2, scoring.KindNoBall)
	m.ball(4, scoring.KindBye)
	m.ball(1, scoring.KindLegBye)
	assert.Equal(t, Partnership{Runs: 1 + 2 + 3 + 4 + 1, Balls: 4}, CurrentPartnership(m.s.Timeline))
}

func TestFallOfWickets(t *testing.T) {
	m := newMatch(t, 20)
	m.ball(4, scoring.KindLegal)
	m.ball(1, scoring.KindWide)
	m.out(scoring.Dismissal{Type: scoring.Caught, Fielder: "B5"}, 0)
	m.next()
	m.ball(2, scoring.KindBye)
	m.ball(1, scoring.KindLegal)
	m.out(scoring.Dismissal{Type: scoring.RunOut, Who: scoring.EndNonStriker}, 1)
	m.next()

	fow := FallOfWickets(m.s.Timeline)
	assert.Equal(t, []FallOfWicket{
		{Wicket: 1, Score: 6, Batter: "A1", Over: "0.2"},
		{Wicket: 2, Score: 10, Batter: "A3", Over: "0.5"},
	}, fow)
}

func TestManhattan(t *testing.T) {
	m := newMatch(t, 3)
	for range 5 {
		m.ball(1, scoring.KindLegal)
	}
	m.ball(2, scoring.KindWide)
	m.ball(0, scoring.KindNoBall)
	m.next()
	m.ball(4, scoring.KindLegal)
	m.next()
	m.out(scoring.Dismissal{Type: scoring.Bowled}, 0)
	m.next()

	bars := Manhattan(m.s.Timeline, m.s.TotalOvers)
	require.Len(t, bars, 3)
	assert.Equal(t, OverBar{Over: 1, Runs: 5 + 3 + 1, Balls: 6}, bars[0], "a no-ball fills a slot, a wide does not")
	assert.Equal(t, OverBar{Over: 2, Runs: 4, Wickets: 1, Balls: 2}, bars[1])
	assert.Equal(t, OverBar{Over: 3}, bars[2])
}

func TestManhattan_EmptyInnings(t *testing.T) {
	bars := Manhattan(nil, 2)
	assert.Equal(t, []OverBar{{Over: 1}, {Over: 2}}, bars)
}

func TestWorm(t *testing.T) {
	m := newMatch(t, 20)
	assert.Equal(t, []WormPoint{{Overs: "0.0"}}, Worm(m.s.Timeline))

	for range 6 {
		m.ball(2, scoring.KindLegal)
	}
	m.next()
	m.ball(1, scoring.KindWide)
	m.ball(4, scoring.KindLegal)

	assert.Equal(t, []WormPoint{
		{Overs: "0.0"},
		{Overs: "1.0", Balls: 6, Score: 12},
		{Overs: "1.1", Balls: 7, Score: 18},
	}, Worm(m.s.Timeline))
}

func TestLastAction(t *testing.T) {
	m := newMatch(t, 20)
	assert.Equal(t, "Match Started", LastAction(m.s))
	m.ball(6, scoring.KindLegal)
	assert.Equal(t, "A1 to B1, SIX", LastAction(m.s))
}

func TestSummarize(t *testing.T) {
	m := newMatch(t, 1)
	for range 6 {
		m.ball(2, scoring.KindLegal)
	}
	m.do(scoring.StartSecondInnings{})
	m.do(scoring.StartInnings{Striker: "B1", NonStriker: "B2", Bowler: "A1"})
	m.ball(4, scoring.KindLegal)
	m.ball(1, scoring.KindLegal)

	sum := Summarize(m.s)
	assert.Equal(t, scoring.PhaseLive, sum.Phase)
	assert.Equal(t, 2, sum.Innings)
	assert.Equal(t, "Bravo", sum.BattingTeam)
	assert.Equal(t, 13, sum.Target)
	assert.Equal(t, 4, sum.BallsRemaining)
	assert.Equal(t, 12.0, sum.RequiredRunRate)
	assert.InDelta(t, 15.0, sum.RunRate, 1e-9)
	assert.Equal(t, Partnership{Runs: 5, Balls: 2}, sum.Partnership)
	assert.Equal(t, "B1 to A1, 1 Run", sum.LastAction)
	require.Len(t, sum.Tracks, 2)
	assert.Equal(t, "Alpha", sum.Tracks[0].TeamName)
	assert.Equal(t, OverBar{Over: 1, Runs: 12, Balls: 6}, sum.Tracks[0].Manhattan[0])
	assert.Len(t, sum.Recent, 2)
}
