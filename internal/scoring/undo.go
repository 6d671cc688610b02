package scoring

import "slices"

func (UndoLast) apply(e *Engine, s *State) ([]Event, error) {
	switch s.Status {
	case StatusScheduled:
		return nil, ErrNothingToUndo
	case StatusCompleted:
		return nil, ErrMatchCompleted
	}
	last, ok := s.LastDelivery()
	if !ok {
		return nil, ErrNothingToUndo
	}
	// Decisions raised by the last ball roll back with it. Anything else pending, or a
	// partly resolved set, would be left dangling.
	if len(s.Pending) > 0 && !slices.Equal(s.Pending, last.Raised) {
		return nil, ErrUndoBlocked
	}

	d, err := Classify(last.Runs, last.Kind, last.IsWicket, last.Dismissal)
	if err != nil {
		return nil, err
	}

	s.Score -= d.Total
	s.Extras -= d.Extras
	if d.Legal {
		s.LegalBalls--
	}

	batter := s.BattingStats[last.Striker]
	batter.Runs -= d.BatterRuns
	if d.BallFaced {
		batter.Balls--
	}
	if d.Four {
		batter.Fours--
	}
	if d.Six {
		batter.Sixes--
	}
	s.BattingStats[last.Striker] = batter

	bowler := s.BowlingStats[last.Bowler]
	bowler.Runs -= d.Conceded
	if d.Legal {
		if bowler.Balls%BallsPerOver == 0 && bowler.Overs > 0 {
			bowler.Overs--
		}
		bowler.Balls--
	}
	if d.BowlerWicket {
		bowler.Wickets--
	}
	s.BowlingStats[last.Bowler] = bowler

	if d.Wicket {
		s.Wickets--
		dismissed := last.Striker
		if d.Dismissal.Who == EndNonStriker {
			dismissed = last.NonStriker
		}
		r := s.BattingStats[dismissed]
		r.Out = false
		r.Dismissal = ""
		s.BattingStats[dismissed] = r
	}

	s.Striker, s.NonStriker, s.Bowler = last.Striker, last.NonStriker, last.Bowler
	for _, name := range []string{s.Striker, s.NonStriker} {
		if r, ok := s.BattingStats[name]; ok && !r.Out && r.Dismissal == string(RetiredHurt) {
			r.Dismissal = ""
			s.BattingStats[name] = r
		}
	}
	// A not-out batter only leaves the crease by retiring, so one who resumed after the
	// last ball goes back to retired hurt.
	for name, r := range s.BattingStats {
		if !r.Out && r.Dismissal == "" && r.Resumed > 0 && !s.atCrease(name) {
			r.Dismissal = string(RetiredHurt)
			r.Resumed--
			s.BattingStats[name] = r
		}
	}

	s.Timeline = s.Timeline[1:]
	if len(s.Timeline) == 0 {
		s.Timeline = nil
	}
	s.Pending = nil
	if s.Status == StatusConcluding {
		s.Status = StatusLive
		s.Result, s.Winner, s.MOM = "", "", ""
	}
	s.pruneIdle()

	return []Event{s.event(EventDeliveryUndone, last.Striker, Commentary(last))}, nil
}
