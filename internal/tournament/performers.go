package tournament

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/mauv0809/crease/internal/roster"
	"github.com/mauv0809/crease/internal/scoring"
)

// PlayerStats are a player's aggregated figures over a set of matches.
type PlayerStats struct {
	Name         string `json:"name"`
	TeamID       string `json:"teamId,omitempty"`
	TeamName     string `json:"teamName,omitempty"`
	Matches      int    `json:"matches"`
	BatInnings   int    `json:"batInnings"`
	Runs         int    `json:"runs"`
	Balls        int    `json:"balls"`
	Fours        int    `json:"fours"`
	Sixes        int    `json:"sixes"`
	Outs         int    `json:"outs"`
	HighScore    int    `json:"highScore"`
	Fifties      int    `json:"fifties"`
	Hundreds     int    `json:"hundreds"`
	BowlInnings  int    `json:"bowlInnings"`
	Wickets      int    `json:"wickets"`
	RunsConceded int    `json:"runsConceded"`
	BallsBowled  int    `json:"ballsBowled"`
	BestWickets  int    `json:"bestWickets"`
	BestRuns     int    `json:"bestRuns"`
	FiveWickets  int    `json:"fiveWickets"`
	Points       int    `json:"points"`
}

// BattingAverage is runs per dismissal; a batter never dismissed averages their runs.
func (p PlayerStats) BattingAverage() float64 {
	if p.Outs == 0 {
		return float64(p.Runs)
	}
	return float64(p.Runs) / float64(p.Outs)
}

// StrikeRate is runs per hundred balls.
func (p PlayerStats) StrikeRate() float64 {
	if p.Balls == 0 {
		return 0
	}
	return float64(p.Runs) / float64(p.Balls) * 100
}

// BowlingAverage is runs conceded per wicket. ok is false without a wicket.
func (p PlayerStats) BowlingAverage() (avg float64, ok bool) {
	if p.Wickets == 0 {
		return 0, false
	}
	return float64(p.RunsConceded) / float64(p.Wickets), true
}

// Economy is runs conceded per six balls.
func (p PlayerStats) Economy() float64 {
	if p.BallsBowled == 0 {
		return 0
	}
	return float64(p.RunsConceded*scoring.BallsPerOver) / float64(p.BallsBowled)
}

// BestBowling renders the best innings figures as "wickets/runs".
func (p PlayerStats) BestBowling() string {
	if p.BowlInnings == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d", p.BestWickets, p.BestRuns)
}

// Performers are the tournament leaderboards.
type Performers struct {
	MVP     []PlayerStats `json:"mvp"`
	Batsmen []PlayerStats `json:"batsmen"`
	Bowlers []PlayerStats `json:"bowlers"`
}

// Aggregate sums every player's figures over the finished matches, in first-seen order.
func Aggregate(matches []*scoring.State) []PlayerStats {
	players := map[string]*PlayerStats{}
	var order []string
	get := func(name string) *PlayerStats {
		if p, ok := players[name]; ok {
			return p
		}
		players[name] = &PlayerStats{Name: name, BestRuns: -1}
		order = append(order, name)
		return players[name]
	}

	for _, m := range chronological(matches) {
		if !Finished(m) {
			continue
		}
		for _, team := range []roster.Team{m.TeamA, m.TeamB} {
			for _, name := range team.Names() {
				p := get(name)
				p.Matches++
				p.TeamID, p.TeamName = team.ID, team.Name
			}
		}

		innings := []inningsStats{{m.BattingStats, m.BowlingStats, m.BattingTeamID}}
		if m.Innings1 != nil {
			innings = append([]inningsStats{{m.Innings1.BattingStats, m.Innings1.BowlingStats, m.Innings1.TeamID}}, innings...)
		}

		for _, in := range innings {
			for _, name := range scoring.ByBattingOrder(in.bat) {
				r := in.bat[name]
				p := get(name)
				if p.TeamID == "" {
					p.TeamID, p.TeamName = in.teamID, m.Team(in.teamID).Name
				}
				p.BatInnings++
				p.Runs += r.Runs
				p.Balls += r.Balls
				p.Fours += r.Fours
				p.Sixes += r.Sixes
				if r.Out {
					p.Outs++
				}
				p.HighScore = max(p.HighScore, r.Runs)
				switch {
				case r.Runs >= 100:
					p.Hundreds++
				case r.Runs >= 50:
					p.Fifties++
				}
				p.Points += scoring.BattingPoints(r)
			}
			for _, name := range scoring.ByBowlingOrder(in.bowl) {
				r := in.bowl[name]
				p := get(name)
				p.BowlInnings++
				p.Wickets += r.Wickets
				p.RunsConceded += r.Runs
				p.BallsBowled += r.Balls
				if r.Wickets > p.BestWickets || (r.Wickets == p.BestWickets && (p.BestRuns < 0 || r.Runs < p.BestRuns)) {
					p.BestWickets, p.BestRuns = r.Wickets, r.Runs
				}
				if r.Wickets >= 5 {
					p.FiveWickets++
				}
				p.Points += scoring.BowlingPoints(r)
			}
		}
	}

	out := make([]PlayerStats, 0, len(order))
	for _, name := range order {
		p := *players[name]
		if p.BestRuns < 0 {
			p.BestRuns = 0
		}
		out = append(out, p)
	}
	return out
}

type inningsStats struct {
	bat    map[string]scoring.BattingRecord
	bowl   map[string]scoring.BowlingRecord
	teamID string
}

// Leaderboards ranks players who contributed. Ties keep first-seen order.
func Leaderboards(matches []*scoring.State) Performers {
	var perf Performers
	for _, p := range Aggregate(matches) {
		if p.Runs == 0 && p.Wickets == 0 && p.Points == 0 {
			continue
		}
		perf.MVP = append(perf.MVP, p)
		if p.Runs > 0 {
			perf.Batsmen = append(perf.Batsmen, p)
		}
		if p.Wickets > 0 {
			perf.Bowlers = append(perf.Bowlers, p)
		}
	}
	slices.SortStableFunc(perf.MVP, func(a, b PlayerStats) int { return cmp.Compare(b.Points, a.Points) })
	slices.SortStableFunc(perf.Batsmen, func(a, b PlayerStats) int { return cmp.Compare(b.Runs, a.Runs) })
	slices.SortStableFunc(perf.Bowlers, func(a, b PlayerStats) int { return cmp.Compare(b.Wickets, a.Wickets) })
	return perf
}

// Career returns one player's figures over the given matches.
func Career(name string, matches []*scoring.State) (PlayerStats, bool) {
	for _, p := range Aggregate(matches) {
		if p.Name == name {
			return p, true
		}
	}
	return PlayerStats{}, false
}
