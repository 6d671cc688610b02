package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatch(t *testing.T) {
	t.Run("defaults to team A batting", func(t *testing.T) {
		h := newScheduled(t, 20)
		assert.Equal(t, StatusScheduled, h.s.Status)
		assert.Equal(t, PhaseScheduled, h.s.Phase())
		assert.Equal(t, "a", h.s.BattingTeamID)
		assert.Equal(t, "b", h.s.BowlingTeamID)
	})

	t.Run("toss decides the batting side", func(t *testing.T) {
		s, err := NewMatch(Setup{TeamA: squad("a", "Alpha", "A"), TeamB: squad("b", "Bravo", "B"), TotalOvers: 5, TossWinner: "a", TossDecision: TossBowl})
		require.NoError(t, err)
		assert.Equal(t, "b", s.BattingTeamID)
		assert.Equal(t, "a", s.BowlingTeamID)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := NewMatch(Setup{TeamA: squad("a", "Alpha", "A"), TeamB: squad("a", "Alpha", "A"), TotalOvers: 5})
		assert.ErrorIs(t, err, ErrInvalidTeams)

		_, err = NewMatch(Setup{TeamA: squad("a", "Alpha", "A"), TeamB: squad("b", "Bravo", "B")})
		assert.ErrorIs(t, err, ErrInvalidOvers)

		_, err = NewMatch(Setup{TeamA: squad("a", "Alpha", "A"), TeamB: squad("b", "Bravo", "B"), TotalOvers: 5, TossWinner: "c"})
		assert.ErrorIs(t, err, ErrInvalidToss)
	})
}

func TestStartMatch(t *testing.T) {
	h := newScheduled(t, 20)
	events := h.do(StartMatch{TossWinner: "b", TossDecision: TossBat})

	assert.Equal(t, StatusLive, h.s.Status)
	assert.Equal(t, PhaseAwaitingInningsSetup, h.s.Phase())
	assert.Equal(t, "b", h.s.BattingTeamID)
	require.Len(t, events, 1)
	assert.Equal(t, "Bravo won the toss and chose to bat", events[0].Detail)

	err := h.fail(StartMatch{})
	assert.ErrorIs(t, err, ErrMatchAlreadyStarted)
}

func TestStartInnings(t *testing.T) {
	t.Run("before the match starts", func(t *testing.T) {
		h := newScheduled(t, 20)
		err := h.fail(StartInnings{Striker: "A1", NonStriker: "A2", Bowler: "B1"})
		assert.ErrorIs(t, err, ErrMatchNotStarted)
	})

	testCases := []struct {
		name     string
		cmd      StartInnings
		expected error
	}{
		{name: "same batter twice", cmd: StartInnings{Striker: "A1", NonStriker: "A1", Bowler: "B1"}, expected: ErrSameBatter},
		{name: "missing bowler", cmd: StartInnings{Striker: "A1", NonStriker: "A2"}, expected: ErrMissingPlayer},
		{name: "batter from the wrong team", cmd: StartInnings{Striker: "B3", NonStriker: "A2", Bowler: "B1"}, expected: ErrPlayerNotInRoster},
		{name: "bowler from the wrong team", cmd: StartInnings{Striker: "A1", NonStriker: "A2", Bowler: "A3"}, expected: ErrPlayerNotInRoster},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newScheduled(t, 20)
			h.do(StartMatch{})
			err := h.fail(tc.cmd)
			assert.ErrorIs(t, err, tc.expected)
		})
	}

	t.Run("creates ledger entries in order", func(t *testing.T) {
		h := newLive(t, 20)
		assert.Equal(t, PhaseLive, h.s.Phase())
		assert.Equal(t, BattingRecord{Number: 1}, h.s.BattingStats["A1"])
		assert.Equal(t, BattingRecord{Number: 2}, h.s.BattingStats["A2"])
		assert.Equal(t, BowlingRecord{Number: 1}, h.s.BowlingStats["B1"])
	})

	t.Run("cannot be repeated", func(t *testing.T) {
		h := newLive(t, 20)
		err := h.fail(StartInnings{Striker: "A3", NonStriker: "A4", Bowler: "B2"})
		assert.ErrorIs(t, err, ErrUnexpectedDecision)
	})
}

func TestScenario_SingleThenFour(t *testing.T) {
	h := newLive(t, 20)
	h.ball(1)
	assert.Equal(t, "A2", h.s.Striker, "odd runs rotate the strike")
	h.ball(4)

	assert.Equal(t, 5, h.s.Score)
	assert.Equal(t, 2, h.s.LegalBalls)
	assert.Equal(t, "A2", h.s.Striker)
	assert.Equal(t, "A1", h.s.NonStriker)
	assert.Equal(t, BattingRecord{Runs: 1, Balls: 1, Number: 1}, h.s.BattingStats["A1"])
	assert.Equal(t, BattingRecord{Runs: 4, Balls: 1, Fours: 1, Number: 2}, h.s.BattingStats["A2"])
	assert.Equal(t, BowlingRecord{Balls: 2, Runs: 5, Number: 1}, h.s.BowlingStats["B1"])
	require.Len(t, h.s.Timeline, 2)
	assert.Equal(t, 4, h.s.Timeline[0].Runs, "timeline is newest first")
	assert.Equal(t, "A2", h.s.Timeline[0].Striker)
}

func TestScenario_WideWithByes(t *testing.T) {
	h := newLive(t, 20)
	h.extra(KindWide, 2)

	assert.Equal(t, 3, h.s.Score)
	assert.Equal(t, 3, h.s.Extras)
	assert.Equal(t, 0, h.s.LegalBalls)
	assert.Equal(t, BattingRecord{Number: 1}, h.s.BattingStats["A1"], "batter is untouched by a wide")
	assert.Equal(t, BowlingRecord{Runs: 3, Number: 1}, h.s.BowlingStats["B1"])
	assert.Equal(t, "A1", h.s.Striker)
}

func TestScenario_NoBallFour(t *testing.T) {
	h := newLive(t, 20)
	h.extra(KindNoBall, 4)

	assert.Equal(t, 5, h.s.Score)
	assert.Equal(t, 1, h.s.Extras)
	assert.Equal(t, 0, h.s.LegalBalls)
	assert.Equal(t, BattingRecord{Runs: 4, Balls: 1, Fours: 1, Number: 1}, h.s.BattingStats["A1"])
	assert.Equal(t, BowlingRecord{Runs: 5, Number: 1}, h.s.BowlingStats["B1"])
}

func TestStrikeRotation(t *testing.T) {
	testCases := []struct {
		name        string
		kind        Kind
		runs        int
		wantStriker string
	}{
		{"single", KindLegal, 1, "A2"},
		{"two", KindLegal, 2, "A1"},
		{"three", KindLegal, 3, "A2"},
		{"boundary", KindLegal, 4, "A1"},
		{"plain wide", KindWide, 0, "A1"},
		{"wide with a run", KindWide, 1, "A2"},
		{"plain no-ball", KindNoBall, 0, "A1"},
		{"no-ball with a run", KindNoBall, 1, "A2"},
		{"leg bye", KindLegBye, 1, "A2"},
		{"two byes", KindBye, 2, "A1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newLive(t, 20)
			h.extra(tc.kind, tc.runs)
			assert.Equal(t, tc.wantStriker, h.s.Striker)
		})
	}
}

func TestOverCompletion(t *testing.T) {
	h := newLive(t, 20)
	for range 5 {
		h.ball(0)
	}
	h.extra(KindWide, 0)
	h.extra(KindNoBall, 0)
	assert.Equal(t, 5, h.s.LegalBalls, "wides and no-balls do not advance the over")
	assert.Empty(t, h.s.Pending)

	events := h.ball(0)
	assert.Equal(t, []EventType{EventDeliveryRecorded, EventOverCompleted}, eventTypes(events))
	assert.Equal(t, 6, h.s.LegalBalls)
	assert.Equal(t, "A2", h.s.Striker, "the other batter faces the next over")
	assert.Equal(t, []Decision{{Kind: DecisionNewBowler, Outgoing: "B1"}}, h.s.Pending)
	assert.Equal(t, PhaseAwaitingNewBowler, h.s.Phase())
	assert.Equal(t, BowlingRecord{Balls: 6, Runs: 2, Overs: 1, Number: 1}, h.s.BowlingStats["B1"])

	err := h.fail(RecordDelivery{Kind: KindLegal})
	assert.ErrorIs(t, err, ErrDecisionPending)
	assert.ErrorIs(t, err, ErrIllegalOperation)

	err = h.fail(SelectNewBowler{Player: "B1"})
	assert.ErrorIs(t, err, ErrConsecutiveOvers)

	err = h.fail(SelectNewBowler{Player: "A5"})
	assert.ErrorIs(t, err, ErrPlayerNotInRoster)

	h.do(SelectNewBowler{Player: "B2"})
	assert.Equal(t, "B2", h.s.Bowler)
	assert.Equal(t, BowlingRecord{Number: 2}, h.s.BowlingStats["B2"])
	assert.Equal(t, PhaseLive, h.s.Phase())
}

func TestOverCompletion_ByeOnLastBall(t *testing.T) {
	h := newLive(t, 20)
	for range 5 {
		h.ball(0)
	}
	h.extra(KindBye, 2)
	assert.Equal(t, 6, h.s.LegalBalls)
	assert.Equal(t, "A2", h.s.Striker)
	require.Len(t, h.s.Pending, 1)
	assert.Equal(t, DecisionNewBowler, h.s.Pending[0].Kind)
}

// An odd run off the last ball swaps twice, so the same batter keeps the strike.
func TestOddRunOffLastBallKeepsStriker(t *testing.T) {
	h := newLive(t, 20)
	for range 5 {
		h.ball(0)
	}
	h.ball(1)
	assert.Equal(t, "A1", h.s.Striker)
	assert.Equal(t, "A2", h.s.NonStriker)
}

func TestWicket(t *testing.T) {
	h := newLive(t, 20)
	events := h.wicket(Dismissal{Type: Caught, Fielder: "B7"})

	assert.Equal(t, []EventType{EventDeliveryRecorded, EventWicket}, eventTypes(events))
	assert.Equal(t, "c B7 b B1", events[1].Detail)
	assert.Equal(t, 1, h.s.Wickets)
	assert.Equal(t, BattingRecord{Balls: 1, Out: true, Dismissal: "c B7 b B1", Number: 1}, h.s.BattingStats["A1"])
	assert.Equal(t, 1, h.s.BowlingStats["B1"].Wickets)
	assert.Equal(t, []Decision{{Kind: DecisionNewBatsman, Outgoing: "A1"}}, h.s.Pending)
	assert.Equal(t, PhaseAwaitingNewBatsman, h.s.Phase())

	assert.ErrorIs(t, h.fail(SelectNewBatsman{Player: "A2"}), ErrPlayerAtCrease)
	assert.ErrorIs(t, h.fail(SelectNewBatsman{Player: "A1"}), ErrPlayerAtCrease)
	assert.ErrorIs(t, h.fail(SelectNewBatsman{Player: "Z9"}), ErrRosterInconsistency)
	assert.ErrorIs(t, h.fail(SelectNewBowler{Player: "B2"}), ErrUnexpectedDecision)

	h.do(SelectNewBatsman{Player: "A3"})
	assert.Equal(t, "A3", h.s.Striker)
	assert.Equal(t, BattingRecord{Number: 3}, h.s.BattingStats["A3"])
	assert.Empty(t, h.s.Pending)

	h.wicket(Dismissal{Type: Bowled})
	assert.ErrorIs(t, h.fail(SelectNewBatsman{Player: "A1"}), ErrPlayerAlreadyOut)
}

func TestRunOutNonStriker(t *testing.T) {
	h := newLive(t, 20)
	h.do(RecordDelivery{Runs: 1, Kind: KindLegal, IsWicket: true, Dismissal: &Dismissal{Type: RunOut, Who: EndNonStriker}})

	assert.Equal(t, 1, h.s.Score)
	assert.Equal(t, BattingRecord{Runs: 1, Balls: 1, Number: 1}, h.s.BattingStats["A1"])
	assert.Equal(t, BattingRecord{Out: true, Dismissal: "Run Out", Number: 2}, h.s.BattingStats["A2"])
	assert.Equal(t, 0, h.s.BowlingStats["B1"].Wickets, "run outs are not credited to the bowler")
	assert.Equal(t, "A2", h.s.Striker, "the dismissed batter crossed before the run out")
	assert.Equal(t, []Decision{{Kind: DecisionNewBatsman, Outgoing: "A2"}}, h.s.Pending)

	h.do(SelectNewBatsman{Player: "A3"})
	assert.Equal(t, "A3", h.s.Striker)
	assert.Equal(t, "A1", h.s.NonStriker)
}

func TestWicketOnLastBallOfOver(t *testing.T) {
	h := newLive(t, 20)
	for range 5 {
		h.ball(0)
	}
	h.wicket(Dismissal{Type: LBW})

	assert.Equal(t, []Decision{
		{Kind: DecisionNewBatsman, Outgoing: "A1"},
		{Kind: DecisionNewBowler, Outgoing: "B1"},
	}, h.s.Pending)
	assert.Equal(t, "A1", h.s.NonStriker, "strike rotated at the end of the over")

	h.do(SelectNewBatsman{Player: "A3"})
	assert.Equal(t, "A3", h.s.NonStriker)
	assert.Equal(t, PhaseAwaitingNewBowler, h.s.Phase())
	h.do(SelectNewBowler{Player: "B2"})
	assert.Equal(t, PhaseLive, h.s.Phase())
}

func TestRetireBatsman(t *testing.T) {
	h := newLive(t, 20)
	h.ball(2)

	assert.ErrorIs(t, h.fail(RetireBatsman{Outgoing: "A5", Incoming: "A3"}), ErrPlayerNotAtCrease)
	assert.ErrorIs(t, h.fail(RetireBatsman{Outgoing: "A1", Incoming: "A2"}), ErrPlayerAtCrease)

	events := h.do(RetireBatsman{Outgoing: "A1", Incoming: "A3"})
	assert.Equal(t, []EventType{EventBatsmanRetired}, eventTypes(events))
	assert.Equal(t, "A3", h.s.Striker)
	assert.Equal(t, BattingRecord{Runs: 2, Balls: 1, Dismissal: "Retired Hurt", Number: 1}, h.s.BattingStats["A1"])
	assert.Equal(t, 0, h.s.Wickets)

	h.wicket(Dismissal{Type: Bowled})
	h.do(SelectNewBatsman{Player: "A1"})
	assert.Equal(t, "A1", h.s.Striker)
	assert.Equal(t, BattingRecord{Runs: 2, Balls: 1, Number: 1, Resumed: 1}, h.s.BattingStats["A1"], "a returning batter resumes the innings")
}

func TestSwapStrike(t *testing.T) {
	h := newLive(t, 20)
	h.do(SwapStrike{})
	assert.Equal(t, "A2", h.s.Striker)
	assert.Equal(t, "A1", h.s.NonStriker)

	h.wicket(Dismissal{Type: Bowled})
	assert.ErrorIs(t, h.fail(SwapStrike{}), ErrDecisionPending)
}

func TestAllOutEndsFirstInnings(t *testing.T) {
	h := newLive(t, 20)
	for i := range 10 {
		events := h.wicket(Dismissal{Type: Bowled})
		if i < 9 {
			h.resolve()
			continue
		}
		assert.Contains(t, eventTypes(events), EventInningsEnded)
	}

	assert.Equal(t, 10, h.s.Wickets)
	assert.Equal(t, 10, h.s.LegalBalls)
	assert.Equal(t, []Decision{{Kind: DecisionInningsBreak}}, h.s.Pending, "no new batsman is requested after the tenth wicket")
	assert.Equal(t, PhaseInningsBreak, h.s.Phase())
	assert.Equal(t, StatusLive, h.s.Status)
	assert.ErrorIs(t, h.fail(RecordDelivery{Kind: KindLegal}), ErrDecisionPending)
}

func TestSecondInnings(t *testing.T) {
	h := newLive(t, 1)
	for range 6 {
		h.ball(1)
	}
	assert.Equal(t, PhaseInningsBreak, h.s.Phase())
	assert.ErrorIs(t, h.fail(FinalizeMatch{}), ErrUnexpectedDecision)

	events := h.do(StartSecondInnings{})
	assert.Equal(t, []EventType{EventTargetSet}, eventTypes(events))
	assert.Equal(t, "Bravo need 7 from 1 overs", events[0].Detail)

	require.NotNil(t, h.s.Innings1)
	assert.Equal(t, 6, h.s.Innings1.Score)
	assert.Equal(t, "1.0", h.s.Innings1.Overs)
	assert.Equal(t, "Alpha", h.s.Innings1.TeamName)
	assert.Equal(t, 3, h.s.Innings1.BattingStats["A1"].Runs)
	assert.Len(t, h.s.Innings1.Timeline, 6)
	assert.Equal(t, 7, h.s.Target)
	assert.Equal(t, 2, h.s.CurrentInnings)
	assert.Equal(t, "b", h.s.BattingTeamID)
	assert.Equal(t, 0, h.s.Score)
	assert.Empty(t, h.s.BattingStats)
	assert.Nil(t, h.s.Timeline)
	assert.Equal(t, PhaseAwaitingInningsSetup, h.s.Phase())
	assert.ErrorIs(t, h.fail(UndoLast{}), ErrNothingToUndo)

	h.do(StartInnings{Striker: "B1", NonStriker: "B2", Bowler: "A1"})
	h.ball(6)
	events = h.ball(1)

	assert.Contains(t, eventTypes(events), EventMatchConcluded)
	assert.Equal(t, StatusConcluding, h.s.Status)
	assert.Equal(t, PhaseConcluding, h.s.Phase())
	assert.Equal(t, "Bravo won by 10 wickets", h.s.Result)
	assert.Equal(t, "b", h.s.Winner)
	assert.Equal(t, "B1", h.s.MOM)
	assert.Equal(t, []Decision{{Kind: DecisionMatchConclusion}}, h.s.Pending)
	assert.ErrorIs(t, h.fail(RecordDelivery{Kind: KindLegal}), ErrDecisionPending)

	h.do(FinalizeMatch{})
	assert.Equal(t, StatusCompleted, h.s.Status)
	assert.Empty(t, h.s.Pending)
	assert.ErrorIs(t, h.fail(UndoLast{}), ErrMatchCompleted)
	assert.ErrorIs(t, h.fail(RecordDelivery{Kind: KindLegal}), ErrMatchCompleted)
	assert.ErrorIs(t, h.fail(FinalizeMatch{}), ErrMatchCompleted)
}

func TestDefendingSideWins(t *testing.T) {
	testCases := []struct {
		name     string
		chase    []int
		expected string
	}{
		{name: "by several runs", chase: []int{0, 0, 0, 0, 0, 0}, expected: "Alpha won by 6 runs"},
		{name: "by one run", chase: []int{1, 1, 1, 1, 1, 0}, expected: "Alpha won by 1 run"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newLive(t, 1)
			for range 6 {
				h.ball(1)
			}
			h.do(StartSecondInnings{})
			h.do(StartInnings{Striker: "B1", NonStriker: "B2", Bowler: "A1"})
			for _, r := range tc.chase {
				h.ball(r)
			}
			assert.Equal(t, tc.expected, h.s.Result)
			assert.Equal(t, "a", h.s.Winner)
		})
	}
}

func TestScenario_TieWhenAllOut(t *testing.T) {
	h := newLive(t, 5)
	h.ball(4)
	h.ball(6)
	for h.s.Phase() != PhaseInningsBreak {
		h.ball(0)
		h.resolve()
	}
	require.Equal(t, 10, h.s.Score)
	h.do(StartSecondInnings{})
	h.do(StartInnings{Striker: "B1", NonStriker: "B2", Bowler: "A1"})
	h.ball(4)
	h.ball(6)
	for range 10 {
		h.wicket(Dismissal{Type: Bowled})
		h.resolve()
	}

	assert.Equal(t, 10, h.s.Wickets)
	assert.Equal(t, 10, h.s.Score)
	assert.Equal(t, "Match Tied", h.s.Result)
	assert.Empty(t, h.s.Winner)
	assert.Equal(t, StatusConcluding, h.s.Status)
}

func TestInvariantsHoldThroughAFullMatch(t *testing.T) {
	h := newLive(t, 3)
	runs := []int{0, 1, 2, 3, 4, 6}
	for i := 0; h.s.Phase() != PhaseInningsBreak; i++ {
		h.ball(runs[i%len(runs)])
		require.NoError(t, h.s.Check())
		h.resolve()
	}
	assert.Equal(t, 18, h.s.LegalBalls)
	assert.Equal(t, "3.0", h.s.Overs())

	h.do(StartSecondInnings{})
	h.do(StartInnings{Striker: "B1", NonStriker: "B2", Bowler: "A1"})
	for h.s.Status == StatusLive {
		h.extra(KindWide, 0)
		require.NoError(t, h.s.Check())
		h.ball(6)
		require.NoError(t, h.s.Check())
		h.resolve()
	}
	assert.Equal(t, StatusConcluding, h.s.Status)
	assert.LessOrEqual(t, h.s.LegalBalls, h.s.TotalOvers*BallsPerOver)
}

func TestApplyRejectsNilInput(t *testing.T) {
	e := NewEngine()
	_, _, err := e.Apply(nil, SwapStrike{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	h := newLive(t, 20)
	_, _, err = e.Apply(h.s, nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRecentTimeline(t *testing.T) {
	h := newLive(t, 20)
	for range 60 {
		h.extra(KindWide, 0)
	}
	assert.Len(t, h.s.Timeline, 60)
	assert.Len(t, h.s.RecentTimeline(RecentTimelineSize), 50)
	assert.Len(t, h.s.RecentTimeline(100), 60)
}
