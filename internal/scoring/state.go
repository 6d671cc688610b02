package scoring

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/mauv0809/crease/internal/roster"
)

// BallsPerOver is the number of legal deliveries in an over.
const BallsPerOver = 6

// MaxWickets ends an innings.
const MaxWickets = 10

// RecentTimelineSize is how many deliveries viewers are shown.
const RecentTimelineSize = 50

// State is a full match snapshot. Commands never modify a State in place; Engine.Apply
// returns a new one.
type State struct {
	ID           string       `json:"id"`
	TournamentID string       `json:"tournamentId,omitempty"`
	Stage        string       `json:"stage,omitempty"`
	Venue        string       `json:"venue,omitempty"`
	ScorerName   string       `json:"scorerName,omitempty"`
	ScheduledAt  time.Time    `json:"scheduledAt"`
	TeamA        roster.Team  `json:"teamA"`
	TeamB        roster.Team  `json:"teamB"`
	TossWinner   string       `json:"tossWinner,omitempty"`
	TossDecision TossDecision `json:"tossDecision,omitempty"`
	TotalOvers   int          `json:"totalOvers"`

	Status         Status `json:"status"`
	CurrentInnings int    `json:"currentInnings"`
	BattingTeamID  string `json:"battingTeamId"`
	BowlingTeamID  string `json:"bowlingTeamId"`
	Score          int    `json:"score"`
	Wickets        int    `json:"wickets"`
	LegalBalls     int    `json:"legalBalls"`
	Extras         int    `json:"extras"`
	Target         int    `json:"target"`
	Striker        string `json:"striker"`
	NonStriker     string `json:"nonStriker"`
	Bowler         string `json:"bowler"`

	BattingStats map[string]BattingRecord `json:"battingStats"`
	BowlingStats map[string]BowlingRecord `json:"bowlingStats"`
	Timeline     []DeliveryEvent          `json:"timeline,omitempty"`
	Innings1     *InningsSummary          `json:"innings1,omitempty"`
	Pending      []Decision               `json:"pending,omitempty"`

	Result  string `json:"result,omitempty"`
	Winner  string `json:"winner,omitempty"`
	MOM     string `json:"mom,omitempty"`
	Version int64  `json:"version"`
}

// NewMatch creates a scheduled match.
func NewMatch(setup Setup) (*State, error) {
	if setup.TeamA.ID == "" || setup.TeamB.ID == "" || setup.TeamA.ID == setup.TeamB.ID {
		return nil, ErrInvalidTeams
	}
	if setup.TotalOvers <= 0 {
		return nil, ErrInvalidOvers
	}
	s := &State{
		ID:             setup.ID,
		TournamentID:   setup.TournamentID,
		Stage:          setup.Stage,
		Venue:          setup.Venue,
		ScorerName:     setup.ScorerName,
		ScheduledAt:    setup.ScheduledAt,
		TeamA:          setup.TeamA,
		TeamB:          setup.TeamB,
		TotalOvers:     setup.TotalOvers,
		Status:         StatusScheduled,
		CurrentInnings: 1,
		BattingStats:   map[string]BattingRecord{},
		BowlingStats:   map[string]BowlingRecord{},
	}
	if err := s.setToss(setup.TossWinner, setup.TossDecision); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *State) setToss(winner string, decision TossDecision) error {
	if winner == "" {
		s.BattingTeamID, s.BowlingTeamID = s.TeamA.ID, s.TeamB.ID
		return nil
	}
	if winner != s.TeamA.ID && winner != s.TeamB.ID {
		return ErrInvalidToss
	}
	if decision == "" {
		decision = TossBat
	}
	if decision != TossBat && decision != TossBowl {
		return fmt.Errorf("%w: unknown toss decision %q", ErrInvalidInput, decision)
	}
	s.TossWinner, s.TossDecision = winner, decision
	loser := s.otherTeam(winner)
	if decision == TossBat {
		s.BattingTeamID, s.BowlingTeamID = winner, loser
	} else {
		s.BattingTeamID, s.BowlingTeamID = loser, winner
	}
	return nil
}

// Clone returns a deep copy. Delivery events are immutable and shared.
func (s *State) Clone() *State {
	c := *s
	c.BattingStats = maps.Clone(s.BattingStats)
	c.BowlingStats = maps.Clone(s.BowlingStats)
	c.Timeline = slices.Clone(s.Timeline)
	c.Pending = slices.Clone(s.Pending)
	if s.Innings1 != nil {
		in := *s.Innings1
		c.Innings1 = &in
	}
	return &c
}

// Phase derives the current step of the scoring flow.
func (s *State) Phase() Phase {
	switch s.Status {
	case StatusScheduled:
		return PhaseScheduled
	case StatusConcluding:
		return PhaseConcluding
	case StatusCompleted:
		return PhaseCompleted
	}
	if len(s.Pending) == 0 {
		return PhaseLive
	}
	switch s.Pending[0].Kind {
	case DecisionInningsSetup:
		return PhaseAwaitingInningsSetup
	case DecisionNewBatsman:
		return PhaseAwaitingNewBatsman
	case DecisionNewBowler:
		return PhaseAwaitingNewBowler
	case DecisionInningsBreak:
		return PhaseInningsBreak
	default:
		return PhaseConcluding
	}
}

// Overs is the current over count in "o.b" notation.
func (s *State) Overs() string {
	return FormatOvers(s.LegalBalls)
}

// BallsRemaining is the number of legal balls left in the innings.
func (s *State) BallsRemaining() int {
	return max(s.TotalOvers*BallsPerOver-s.LegalBalls, 0)
}

// RecentTimeline returns at most n of the newest deliveries, newest first.
func (s *State) RecentTimeline(n int) []DeliveryEvent {
	if n <= 0 || len(s.Timeline) <= n {
		return s.Timeline
	}
	return s.Timeline[:n]
}

// LastDelivery returns the newest delivery.
func (s *State) LastDelivery() (DeliveryEvent, bool) {
	if len(s.Timeline) == 0 {
		return DeliveryEvent{}, false
	}
	return s.Timeline[0], true
}

// Team returns the team with the given id.
func (s *State) Team(id string) roster.Team {
	if id == s.TeamB.ID {
		return s.TeamB
	}
	return s.TeamA
}

// BattingTeam returns the side currently batting.
func (s *State) BattingTeam() roster.Team { return s.Team(s.BattingTeamID) }

// BowlingTeam returns the side currently bowling.
func (s *State) BowlingTeam() roster.Team { return s.Team(s.BowlingTeamID) }

func (s *State) otherTeam(id string) string {
	if id == s.TeamA.ID {
		return s.TeamB.ID
	}
	return s.TeamA.ID
}

// AllOut reports whether the batting side has lost all its wickets.
func (s *State) AllOut() bool { return s.Wickets >= MaxWickets }

// OversExhausted reports whether every legal ball of the innings has been bowled.
func (s *State) OversExhausted() bool { return s.LegalBalls >= s.TotalOvers*BallsPerOver }

// Check verifies the snapshot invariants.
func (s *State) Check() error {
	switch {
	case s.Wickets < 0 || s.Wickets > MaxWickets:
		return fmt.Errorf("%w: wickets %d", ErrInvariantViolated, s.Wickets)
	case s.Score < 0:
		return fmt.Errorf("%w: score %d", ErrInvariantViolated, s.Score)
	case s.LegalBalls < 0 || s.LegalBalls > s.TotalOvers*BallsPerOver:
		return fmt.Errorf("%w: legal balls %d", ErrInvariantViolated, s.LegalBalls)
	case s.Extras < 0 || s.Extras > s.Score:
		return fmt.Errorf("%w: extras %d", ErrInvariantViolated, s.Extras)
	case s.Striker != "" && s.Striker == s.NonStriker:
		return fmt.Errorf("%w: striker and non-striker are both %s", ErrInvariantViolated, s.Striker)
	}
	return nil
}

// FormatOvers renders a legal ball count as overs and balls, e.g. 20 balls is "3.2".
func FormatOvers(legalBalls int) string {
	return fmt.Sprintf("%d.%d", legalBalls/BallsPerOver, legalBalls%BallsPerOver)
}
