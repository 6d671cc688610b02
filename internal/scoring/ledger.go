package scoring

// ensureBatter creates an empty record for name, numbered after the existing batters.
func (s *State) ensureBatter(name string) {
	if name == "" {
		return
	}
	if _, ok := s.BattingStats[name]; ok {
		return
	}
	if s.BattingStats == nil {
		s.BattingStats = map[string]BattingRecord{}
	}
	next := 1
	for _, r := range s.BattingStats {
		next = max(next, r.Number+1)
	}
	s.BattingStats[name] = BattingRecord{Number: next}
}

func (s *State) ensureBowler(name string) {
	if name == "" {
		return
	}
	if _, ok := s.BowlingStats[name]; ok {
		return
	}
	if s.BowlingStats == nil {
		s.BowlingStats = map[string]BowlingRecord{}
	}
	next := 1
	for _, r := range s.BowlingStats {
		next = max(next, r.Number+1)
	}
	s.BowlingStats[name] = BowlingRecord{Number: next}
}

func (s *State) isOut(name string) bool {
	return s.BattingStats[name].Out
}

func (s *State) atCrease(name string) bool {
	return name != "" && (name == s.Striker || name == s.NonStriker)
}

// pruneIdle drops records for players who never faced, bowled or were dismissed and
// who are not currently involved. It reverses creation by a selection that has been undone.
func (s *State) pruneIdle() {
	for name, r := range s.BattingStats {
		if r == (BattingRecord{Number: r.Number}) && !s.atCrease(name) {
			delete(s.BattingStats, name)
		}
	}
	for name, r := range s.BowlingStats {
		if r == (BowlingRecord{Number: r.Number}) && name != s.Bowler {
			delete(s.BowlingStats, name)
		}
	}
}
