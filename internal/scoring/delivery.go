package scoring

import (
	"fmt"
	"slices"
)

func (c RecordDelivery) apply(e *Engine, s *State) ([]Event, error) {
	if err := s.requirePlay(); err != nil {
		return nil, err
	}
	if s.Striker == "" || s.NonStriker == "" || s.Bowler == "" {
		return nil, ErrUnexpectedDecision
	}
	d, err := Classify(c.Runs, c.Kind, c.IsWicket, c.Dismissal)
	if err != nil {
		return nil, err
	}

	ev := DeliveryEvent{
		Runs:       d.Runs,
		Kind:       d.Kind,
		IsWicket:   d.Wicket,
		Dismissal:  d.Dismissal,
		Striker:    s.Striker,
		NonStriker: s.NonStriker,
		Bowler:     s.Bowler,
		Timestamp:  e.now(),
	}

	s.ensureBatter(s.Striker)
	s.ensureBatter(s.NonStriker)
	s.ensureBowler(s.Bowler)

	s.Score += d.Total
	s.Extras += d.Extras
	if d.Legal {
		s.LegalBalls++
	}

	batter := s.BattingStats[ev.Striker]
	batter.Runs += d.BatterRuns
	if d.BallFaced {
		batter.Balls++
	}
	if d.Four {
		batter.Fours++
	}
	if d.Six {
		batter.Sixes++
	}
	s.BattingStats[ev.Striker] = batter

	bowler := s.BowlingStats[ev.Bowler]
	bowler.Runs += d.Conceded
	if d.Legal {
		bowler.Balls++
		if bowler.Balls%BallsPerOver == 0 {
			bowler.Overs++
		}
	}
	if d.BowlerWicket {
		bowler.Wickets++
	}
	s.BowlingStats[ev.Bowler] = bowler

	events := []Event{s.event(EventDeliveryRecorded, ev.Striker, Commentary(ev))}

	var dismissed string
	if d.Wicket {
		s.Wickets++
		dismissed = ev.Striker
		if d.Dismissal.Who == EndNonStriker {
			dismissed = ev.NonStriker
		}
		out := s.BattingStats[dismissed]
		out.Out = true
		out.Dismissal = DismissalText(*d.Dismissal, ev.Bowler)
		s.BattingStats[dismissed] = out
		events = append(events, s.event(EventWicket, dismissed, out.Dismissal))
	}

	if d.Runs%2 == 1 {
		s.Striker, s.NonStriker = s.NonStriker, s.Striker
	}
	overDone := d.Legal && s.LegalBalls > 0 && s.LegalBalls%BallsPerOver == 0
	if overDone {
		s.Striker, s.NonStriker = s.NonStriker, s.Striker
		events = append(events, s.event(EventOverCompleted, ev.Bowler, fmt.Sprintf("end of over %d", s.LegalBalls/BallsPerOver)))
	}

	switch {
	case s.CurrentInnings == 2 && (s.Score >= s.Target || s.AllOut() || s.OversExhausted()):
		s.conclude()
		s.Pending = []Decision{{Kind: DecisionMatchConclusion}}
		events = append(events, s.event(EventMatchConcluded, s.MOM, s.Result))
	case s.CurrentInnings == 1 && (s.AllOut() || s.OversExhausted()):
		s.Pending = []Decision{{Kind: DecisionInningsBreak}}
		events = append(events, s.event(EventInningsEnded, "", fmt.Sprintf("%s %d/%d (%s)", s.BattingTeam().Name, s.Score, s.Wickets, s.Overs())))
	default:
		if d.Wicket {
			s.Pending = append(s.Pending, Decision{Kind: DecisionNewBatsman, Outgoing: dismissed})
		}
		if overDone {
			s.Pending = append(s.Pending, Decision{Kind: DecisionNewBowler, Outgoing: ev.Bowler})
		}
	}

	ev.Raised = slices.Clone(s.Pending)
	s.Timeline = append([]DeliveryEvent{ev}, s.Timeline...)
	return events, nil
}

// conclude settles the result of the second innings.
func (s *State) conclude() {
	batting, bowling := s.BattingTeam(), s.BowlingTeam()
	switch {
	case s.Score >= s.Target:
		s.Winner = batting.ID
		s.Result = fmt.Sprintf("%s won by %s", batting.Name, plural(MaxWickets-s.Wickets, "wicket"))
	case s.Score == s.Target-1:
		s.Winner = ""
		s.Result = "Match Tied"
	default:
		s.Winner = bowling.ID
		s.Result = fmt.Sprintf("%s won by %s", bowling.Name, plural(s.Target-1-s.Score, "run"))
	}
	s.Status = StatusConcluding
	s.MOM = ManOfTheMatch(s)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
