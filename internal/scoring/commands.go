package scoring

import (
	"fmt"
	"strings"
)

// StartMatch moves a scheduled match to live. A toss given here replaces the one in the setup.
type StartMatch struct {
	TossWinner   string       `json:"tossWinner,omitempty"`
	TossDecision TossDecision `json:"tossDecision,omitempty"`
}

// StartInnings names the openers and the opening bowler.
type StartInnings struct {
	Striker    string `json:"striker"`
	NonStriker string `json:"nonStriker"`
	Bowler     string `json:"bowler"`
}

// RecordDelivery scores one ball.
type RecordDelivery struct {
	Runs      int        `json:"runs"`
	Kind      Kind       `json:"kind"`
	IsWicket  bool       `json:"isWicket"`
	Dismissal *Dismissal `json:"dismissal,omitempty"`
}

// SelectNewBatsman replaces the batter dismissed by the last wicket.
type SelectNewBatsman struct {
	Player string `json:"name"`
}

// SelectNewBowler names the bowler of the next over.
type SelectNewBowler struct {
	Player string `json:"name"`
}

// RetireBatsman retires a batter hurt and sends in a replacement.
type RetireBatsman struct {
	Outgoing string `json:"outgoing"`
	Incoming string `json:"incoming"`
}

// SwapStrike exchanges striker and non-striker.
type SwapStrike struct{}

// UndoLast reverses the newest delivery.
type UndoLast struct{}

// StartSecondInnings closes the first innings and sets the target.
type StartSecondInnings struct{}

// FinalizeMatch acknowledges the result.
type FinalizeMatch struct{}

func (StartMatch) Name() string         { return "start_match" }
func (StartInnings) Name() string       { return "start_innings" }
func (RecordDelivery) Name() string     { return "record_delivery" }
func (SelectNewBatsman) Name() string   { return "select_new_batsman" }
func (SelectNewBowler) Name() string    { return "select_new_bowler" }
func (RetireBatsman) Name() string      { return "retire_batsman" }
func (SwapStrike) Name() string         { return "swap_strike" }
func (UndoLast) Name() string           { return "undo_last" }
func (StartSecondInnings) Name() string { return "start_second_innings" }
func (FinalizeMatch) Name() string      { return "finalize_match" }

func (c StartMatch) apply(_ *Engine, s *State) ([]Event, error) {
	if s.Status != StatusScheduled {
		return nil, ErrMatchAlreadyStarted
	}
	if c.TossWinner != "" {
		if err := s.setToss(c.TossWinner, c.TossDecision); err != nil {
			return nil, err
		}
	}
	s.Status = StatusLive
	s.CurrentInnings = 1
	s.Pending = []Decision{{Kind: DecisionInningsSetup}}
	detail := s.BattingTeam().Name + " to bat"
	if s.TossWinner != "" {
		detail = fmt.Sprintf("%s won the toss and chose to %s", s.Team(s.TossWinner).Name, s.TossDecision)
	}
	return []Event{s.event(EventMatchStarted, "", detail)}, nil
}

func (c StartInnings) apply(_ *Engine, s *State) ([]Event, error) {
	striker := strings.TrimSpace(c.Striker)
	nonStriker := strings.TrimSpace(c.NonStriker)
	bowler := strings.TrimSpace(c.Bowler)
	if striker == "" || nonStriker == "" || bowler == "" {
		return nil, ErrMissingPlayer
	}
	if striker == nonStriker {
		return nil, ErrSameBatter
	}
	if _, err := s.peek(DecisionInningsSetup); err != nil {
		return nil, err
	}
	if err := s.checkBatter(striker); err != nil {
		return nil, err
	}
	if err := s.checkBatter(nonStriker); err != nil {
		return nil, err
	}
	if err := s.checkBowler(bowler); err != nil {
		return nil, err
	}
	s.pop()

	s.Striker, s.NonStriker, s.Bowler = striker, nonStriker, bowler
	s.ensureBatter(striker)
	s.ensureBatter(nonStriker)
	s.ensureBowler(bowler)
	return []Event{s.event(EventInningsStarted, striker, fmt.Sprintf("%s and %s to open, %s to bowl", striker, nonStriker, bowler))}, nil
}

func (c SelectNewBatsman) apply(_ *Engine, s *State) ([]Event, error) {
	name := strings.TrimSpace(c.Player)
	if name == "" {
		return nil, ErrMissingPlayer
	}
	d, err := s.peek(DecisionNewBatsman)
	if err != nil {
		return nil, err
	}
	if err := s.checkIncoming(name); err != nil {
		return nil, err
	}
	if err := s.replaceBatter(d.Outgoing, name); err != nil {
		return nil, err
	}
	s.pop()
	return []Event{s.event(EventBatsmanChanged, name, "replaces "+d.Outgoing)}, nil
}

func (c SelectNewBowler) apply(_ *Engine, s *State) ([]Event, error) {
	name := strings.TrimSpace(c.Player)
	if name == "" {
		return nil, ErrMissingPlayer
	}
	d, err := s.peek(DecisionNewBowler)
	if err != nil {
		return nil, err
	}
	if name == d.Outgoing {
		return nil, ErrConsecutiveOvers
	}
	if err := s.checkBowler(name); err != nil {
		return nil, err
	}
	s.pop()
	s.Bowler = name
	s.ensureBowler(name)
	return []Event{s.event(EventBowlerChanged, name, "")}, nil
}

func (c RetireBatsman) apply(_ *Engine, s *State) ([]Event, error) {
	outgoing := strings.TrimSpace(c.Outgoing)
	incoming := strings.TrimSpace(c.Incoming)
	if outgoing == "" || incoming == "" {
		return nil, ErrMissingPlayer
	}
	if err := s.requirePlay(); err != nil {
		return nil, err
	}
	if !s.atCrease(outgoing) {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotAtCrease, outgoing)
	}
	if err := s.checkIncoming(incoming); err != nil {
		return nil, err
	}

	s.ensureBatter(outgoing)
	r := s.BattingStats[outgoing]
	r.Out = false
	r.Dismissal = string(RetiredHurt)
	s.BattingStats[outgoing] = r
	if err := s.replaceBatter(outgoing, incoming); err != nil {
		return nil, err
	}
	return []Event{s.event(EventBatsmanRetired, outgoing, incoming+" comes in")}, nil
}

func (SwapStrike) apply(_ *Engine, s *State) ([]Event, error) {
	if err := s.requirePlay(); err != nil {
		return nil, err
	}
	s.Striker, s.NonStriker = s.NonStriker, s.Striker
	return []Event{s.event(EventStrikeSwapped, s.Striker, "")}, nil
}

func (StartSecondInnings) apply(_ *Engine, s *State) ([]Event, error) {
	if s.CurrentInnings != 1 {
		return nil, ErrUnexpectedDecision
	}
	if _, err := s.peek(DecisionInningsBreak); err != nil {
		return nil, err
	}

	batting := s.BattingTeam()
	s.Innings1 = &InningsSummary{
		TeamID:       batting.ID,
		TeamName:     batting.Name,
		Score:        s.Score,
		Wickets:      s.Wickets,
		LegalBalls:   s.LegalBalls,
		Overs:        s.Overs(),
		Extras:       s.Extras,
		BattingStats: s.BattingStats,
		BowlingStats: s.BowlingStats,
		Timeline:     s.Timeline,
	}
	s.Target = s.Score + 1
	s.BattingTeamID, s.BowlingTeamID = s.BowlingTeamID, s.BattingTeamID
	s.CurrentInnings = 2
	s.Score, s.Wickets, s.LegalBalls, s.Extras = 0, 0, 0, 0
	s.Striker, s.NonStriker, s.Bowler = "", "", ""
	s.BattingStats = map[string]BattingRecord{}
	s.BowlingStats = map[string]BowlingRecord{}
	s.Timeline = nil
	s.Pending = []Decision{{Kind: DecisionInningsSetup}}

	detail := fmt.Sprintf("%s need %d from %d overs", s.BattingTeam().Name, s.Target, s.TotalOvers)
	return []Event{s.event(EventTargetSet, "", detail)}, nil
}

func (FinalizeMatch) apply(_ *Engine, s *State) ([]Event, error) {
	if _, err := s.peek(DecisionMatchConclusion); err != nil {
		return nil, err
	}
	s.Status = StatusCompleted
	s.Pending = nil
	return []Event{s.event(EventMatchCompleted, s.MOM, s.Result)}, nil
}

// checkBatter verifies name can bat for the batting side.
func (s *State) checkBatter(name string) error {
	if !s.BattingTeam().Has(name) {
		return fmt.Errorf("%w: %s is not in %s", ErrPlayerNotInRoster, name, s.BattingTeam().Name)
	}
	if s.isOut(name) {
		return fmt.Errorf("%w: %s", ErrPlayerAlreadyOut, name)
	}
	return nil
}

func (s *State) checkBowler(name string) error {
	if !s.BowlingTeam().Has(name) {
		return fmt.Errorf("%w: %s is not in %s", ErrPlayerNotInRoster, name, s.BowlingTeam().Name)
	}
	return nil
}

// checkIncoming verifies name can walk in as a new batter.
func (s *State) checkIncoming(name string) error {
	if s.atCrease(name) {
		return fmt.Errorf("%w: %s", ErrPlayerAtCrease, name)
	}
	return s.checkBatter(name)
}

// replaceBatter puts incoming in outgoing's place. A returning retired-hurt batter resumes
// their innings.
func (s *State) replaceBatter(outgoing, incoming string) error {
	switch outgoing {
	case s.Striker:
		s.Striker = incoming
	case s.NonStriker:
		s.NonStriker = incoming
	default:
		return fmt.Errorf("%w: %s", ErrPlayerNotAtCrease, outgoing)
	}
	s.ensureBatter(incoming)
	if r := s.BattingStats[incoming]; !r.Out && r.Dismissal == string(RetiredHurt) {
		r.Dismissal = ""
		r.Resumed++
		s.BattingStats[incoming] = r
	}
	return nil
}
