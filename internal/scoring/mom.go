package scoring

import (
	"maps"
	"slices"
	"strings"
)

// BattingPoints scores a batting line for the man-of-the-match award.
func BattingPoints(r BattingRecord) int {
	pts := r.Runs + r.Fours + 2*r.Sixes
	if r.Runs >= 50 {
		pts += 10
	}
	if r.Runs >= 100 {
		pts += 20
	}
	return pts
}

// BowlingPoints scores a bowling line for the man-of-the-match award.
func BowlingPoints(r BowlingRecord) int {
	pts := 25 * r.Wickets
	if r.Wickets >= 3 {
		pts += 10
	}
	return pts
}

// ManOfTheMatch returns the player with the most points over both innings. Ties go to the
// player seen first: first-innings batters, first-innings bowlers, then the second innings.
func ManOfTheMatch(s *State) string {
	points := map[string]int{}
	var order []string
	add := func(name string, pts int) {
		if _, seen := points[name]; !seen {
			order = append(order, name)
		}
		points[name] += pts
	}
	addInnings := func(bat map[string]BattingRecord, bowl map[string]BowlingRecord) {
		for _, name := range ByBattingOrder(bat) {
			add(name, BattingPoints(bat[name]))
		}
		for _, name := range ByBowlingOrder(bowl) {
			add(name, BowlingPoints(bowl[name]))
		}
	}
	if s.Innings1 != nil {
		addInnings(s.Innings1.BattingStats, s.Innings1.BowlingStats)
	}
	addInnings(s.BattingStats, s.BowlingStats)

	best, bestPts := "", -1
	for _, name := range order {
		if points[name] > bestPts {
			best, bestPts = name, points[name]
		}
	}
	return best
}

// ByBattingOrder lists batters by their number.
func ByBattingOrder(stats map[string]BattingRecord) []string {
	names := slices.Collect(maps.Keys(stats))
	slices.SortFunc(names, func(a, b string) int {
		if stats[a].Number != stats[b].Number {
			return stats[a].Number - stats[b].Number
		}
		return strings.Compare(a, b)
	})
	return names
}

// ByBowlingOrder lists bowlers by their number.
func ByBowlingOrder(stats map[string]BowlingRecord) []string {
	names := slices.Collect(maps.Keys(stats))
	slices.SortFunc(names, func(a, b string) int {
		if stats[a].Number != stats[b].Number {
			return stats[a].Number - stats[b].Number
		}
		return strings.Compare(a, b)
	})
	return names
}
