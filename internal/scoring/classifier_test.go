package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		runs     int
		kind     Kind
		expected Delivery
	}{
		{
			name:     "dot ball",
			runs:     0,
			kind:     KindLegal,
			expected: Delivery{Kind: KindLegal, Legal: true, BallFaced: true},
		},
		{
			name:     "legal four",
			runs:     4,
			kind:     KindLegal,
			expected: Delivery{Kind: KindLegal, Runs: 4, Total: 4, BatterRuns: 4, Conceded: 4, Legal: true, BallFaced: true, Four: true},
		},
		{
			name:     "legal six",
			runs:     6,
			kind:     KindLegal,
			expected: Delivery{Kind: KindLegal, Runs: 6, Total: 6, BatterRuns: 6, Conceded: 6, Legal: true, BallFaced: true, Six: true},
		},
		{
			name:     "wide with two byes",
			runs:     2,
			kind:     KindWide,
			expected: Delivery{Kind: KindWide, Runs: 2, Total: 3, Extras: 3, Conceded: 3},
		},
		{
			name:     "no-ball hit for four",
			runs:     4,
			kind:     KindNoBall,
			expected: Delivery{Kind: KindNoBall, Runs: 4, Total: 5, Extras: 1, BatterRuns: 4, Conceded: 5, BallFaced: true, Four: true},
		},
		{
			name:     "byes",
			runs:     4,
			kind:     KindBye,
			expected: Delivery{Kind: KindBye, Runs: 4, Total: 4, Extras: 4, Legal: true, BallFaced: true},
		},
		{
			name:     "leg byes",
			runs:     1,
			kind:     KindLegBye,
			expected: Delivery{Kind: KindLegBye, Runs: 1, Total: 1, Extras: 1, Legal: true, BallFaced: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Classify(tc.runs, tc.kind, false, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, d)

			again, err := Classify(tc.runs, tc.kind, false, nil)
			require.NoError(t, err)
			assert.Equal(t, d, again, "classification should be deterministic")
		})
	}
}

func TestClassify_Wickets(t *testing.T) {
	testCases := []struct {
		name         string
		kind         Kind
		dismissal    Dismissal
		bowlerCredit bool
		expectedWho  End
	}{
		{name: "bowled", kind: KindLegal, dismissal: Dismissal{Type: Bowled}, bowlerCredit: true, expectedWho: EndStriker},
		{name: "caught", kind: KindLegal, dismissal: Dismissal{Type: Caught, Fielder: " Smith "}, bowlerCredit: true, expectedWho: EndStriker},
		{name: "lbw", kind: KindLegal, dismissal: Dismissal{Type: LBW}, bowlerCredit: true, expectedWho: EndStriker},
		{name: "stumped", kind: KindLegal, dismissal: Dismissal{Type: Stumped, Fielder: "Carey"}, bowlerCredit: true, expectedWho: EndStriker},
		{name: "hit wicket", kind: KindLegal, dismissal: Dismissal{Type: HitWicket}, bowlerCredit: true, expectedWho: EndStriker},
		{name: "run out striker", kind: KindLegal, dismissal: Dismissal{Type: RunOut, Who: EndStriker}, expectedWho: EndStriker},
		{name: "run out non-striker", kind: KindLegal, dismissal: Dismissal{Type: RunOut, Who: EndNonStriker}, expectedWho: EndNonStriker},
		{name: "stumped off a wide", kind: KindWide, dismissal: Dismissal{Type: Stumped}, bowlerCredit: true, expectedWho: EndStriker},
		{name: "run out off a wide", kind: KindWide, dismissal: Dismissal{Type: RunOut, Who: EndStriker}, expectedWho: EndStriker},
		{name: "run out off a no-ball", kind: KindNoBall, dismissal: Dismissal{Type: RunOut, Who: EndNonStriker}, expectedWho: EndNonStriker},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := tc.dismissal
			d, err := Classify(0, tc.kind, true, &in)
			require.NoError(t, err)
			assert.True(t, d.Wicket)
			require.NotNil(t, d.Dismissal)
			assert.Equal(t, tc.expectedWho, d.Dismissal.Who)
			assert.Equal(t, tc.bowlerCredit, d.BowlerWicket)
			assert.Equal(t, tc.dismissal, in, "input dismissal must not be modified")
		})
	}
}

func TestClassify_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		runs      int
		kind      Kind
		isWicket  bool
		dismissal *Dismissal
		expected  error
		message   string
	}{
		{name: "negative runs", runs: -1, kind: KindLegal, expected: ErrRunsOutOfRange},
		{name: "seven runs", runs: 7, kind: KindLegal, expected: ErrRunsOutOfRange},
		{name: "unknown kind", runs: 0, kind: "dead", expected: ErrUnknownKind},
		{name: "wicket without dismissal", kind: KindLegal, isWicket: true, expected: ErrMissingDismissal},
		{name: "dismissal without wicket", kind: KindLegal, dismissal: &Dismissal{Type: Bowled}, expected: ErrUnexpectedDismissal},
		{name: "caught without fielder", kind: KindLegal, isWicket: true, dismissal: &Dismissal{Type: Caught}, expected: ErrMissingFielder},
		{name: "run out without end", kind: KindLegal, isWicket: true, dismissal: &Dismissal{Type: RunOut}, expected: ErrMissingRunOutEnd},
		{name: "bowled non-striker", kind: KindLegal, isWicket: true, dismissal: &Dismissal{Type: Bowled, Who: EndNonStriker}, expected: ErrNonStrikerDismissal},
		{name: "bowled off a wide", kind: KindWide, isWicket: true, dismissal: &Dismissal{Type: Bowled}, expected: ErrDismissalNotAllowed, message: "cannot be Bowled off a wide"},
		{name: "stumped off a no-ball", kind: KindNoBall, isWicket: true, dismissal: &Dismissal{Type: Stumped}, expected: ErrDismissalNotAllowed, message: "cannot be Stumped off a no-ball"},
		{name: "retired hurt", kind: KindLegal, isWicket: true, dismissal: &Dismissal{Type: RetiredHurt}, expected: ErrRetireViaDelivery},
		{name: "unknown dismissal", kind: KindLegal, isWicket: true, dismissal: &Dismissal{Type: "Handled Ball"}, expected: ErrUnknownDismissal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Classify(tc.runs, tc.kind, tc.isWicket, tc.dismissal)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expected)
			assert.ErrorIs(t, err, ErrInvalidInput)
			if tc.message != "" {
				assert.Contains(t, err.Error(), tc.message)
			}
		})
	}
}

func TestDismissalText(t *testing.T) {
	testCases := []struct {
		dismissal Dismissal
		expected  string
	}{
		{Dismissal{Type: Caught, Fielder: "Smith"}, "c Smith b Starc"},
		{Dismissal{Type: Bowled}, "b Starc"},
		{Dismissal{Type: LBW}, "lbw b Starc"},
		{Dismissal{Type: Stumped, Fielder: "Carey"}, "st Carey b Starc"},
		{Dismissal{Type: Stumped}, "st b Starc"},
		{Dismissal{Type: HitWicket}, "hit wicket b Starc"},
		{Dismissal{Type: RunOut, Who: EndNonStriker}, "Run Out"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.dismissal.Type), func(t *testing.T) {
			assert.Equal(t, tc.expected, DismissalText(tc.dismissal, "Starc"))
		})
	}
}

func TestCommentary(t *testing.T) {
	base := DeliveryEvent{Striker: "Kohli", Bowler: "Starc"}
	testCases := []struct {
		name     string
		mutate   func(ev *DeliveryEvent)
		expected string
	}{
		{"dot", func(ev *DeliveryEvent) {}, "Kohli to Starc, DOT"},
		{"single", func(ev *DeliveryEvent) { ev.Runs = 1 }, "Kohli to Starc, 1 Run"},
		{"three", func(ev *DeliveryEvent) { ev.Runs = 3 }, "Kohli to Starc, 3 Runs"},
		{"four", func(ev *DeliveryEvent) { ev.Runs = 4 }, "Kohli to Starc, FOUR"},
		{"six", func(ev *DeliveryEvent) { ev.Runs = 6 }, "Kohli to Starc, SIX"},
		{"wide", func(ev *DeliveryEvent) { ev.Kind = KindWide; ev.Runs = 4 }, "Kohli to Starc, WIDE"},
		{"no ball", func(ev *DeliveryEvent) { ev.Kind = KindNoBall }, "Kohli to Starc, NO BALL"},
		{"wicket", func(ev *DeliveryEvent) { ev.IsWicket = true; ev.Kind = KindNoBall }, "Kohli to Starc, WICKET"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ev := base
			ev.Kind = KindLegal
			tc.mutate(&ev)
			assert.Equal(t, tc.expected, Commentary(ev))
		})
	}
}
