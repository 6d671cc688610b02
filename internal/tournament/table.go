// Package tournament aggregates finished matches into standings and player leaderboards.
package tournament

import (
	"cmp"
	"slices"

	"github.com/mauv0809/crease/internal/analytics"
	"github.com/mauv0809/crease/internal/scoring"
)

// FormLength is how many recent results the form guide shows.
const FormLength = 5

// Result codes used in the form guide.
const (
	ResultWin  = "W"
	ResultLoss = "L"
	ResultTie  = "T"
)

// FormEntry is one result in a team's history.
type FormEntry struct {
	MatchID     string `json:"matchId"`
	Opponent    string `json:"opponent"`
	Result      string `json:"result"`
	Description string `json:"description"`
}

// Standing is one row of the points table.
type Standing struct {
	TeamID       string      `json:"teamId"`
	TeamName     string      `json:"teamName"`
	Played       int         `json:"played"`
	Won          int         `json:"won"`
	Lost         int         `json:"lost"`
	Tied         int         `json:"tied"`
	Points       int         `json:"points"`
	NRR          float64     `json:"nrr"`
	RunsFor      int         `json:"runsFor"`
	BallsFor     int         `json:"ballsFor"`
	RunsAgainst  int         `json:"runsAgainst"`
	BallsAgainst int         `json:"ballsAgainst"`
	Form         []FormEntry `json:"form"`
}

// Finished reports whether a match has a result.
func Finished(s *scoring.State) bool {
	return s.Status == scoring.StatusConcluding || s.Status == scoring.StatusCompleted
}

// PointsTable ranks every team that appears in matches. A win is worth 2 points and a tie 1.
// Teams level on points are split by net run rate.
func PointsTable(matches []*scoring.State) []Standing {
	ordered := chronological(matches)
	rows := map[string]*Standing{}
	var order []string
	row := func(id, name string) *Standing {
		if r, ok := rows[id]; ok {
			return r
		}
		rows[id] = &Standing{TeamID: id, TeamName: name}
		order = append(order, id)
		return rows[id]
	}

	for _, m := range ordered {
		a := row(m.TeamA.ID, m.TeamA.Name)
		b := row(m.TeamB.ID, m.TeamB.Name)
		if !Finished(m) || m.Innings1 == nil {
			continue
		}
		for _, pair := range [][2]*Standing{{a, b}, {b, a}} {
			team, opp := pair[0], pair[1]
			team.Played++
			entry := FormEntry{MatchID: m.ID, Opponent: opp.TeamName, Description: m.Result}
			switch m.Winner {
			case "":
				team.Tied++
				team.Points++
				entry.Result = ResultTie
			case team.TeamID:
				team.Won++
				team.Points += 2
				entry.Result = ResultWin
			default:
				team.Lost++
				entry.Result = ResultLoss
			}
			team.Form = append(team.Form, entry)

			runsFor, ballsFor, runsAgainst, ballsAgainst := nrrInputs(m, team.TeamID)
			team.RunsFor += runsFor
			team.BallsFor += ballsFor
			team.RunsAgainst += runsAgainst
			team.BallsAgainst += ballsAgainst
		}
	}

	out := make([]Standing, 0, len(order))
	for _, id := range order {
		r := rows[id]
		r.NRR = analytics.RunRate(r.RunsFor, r.BallsFor) - analytics.RunRate(r.RunsAgainst, r.BallsAgainst)
		slices.Reverse(r.Form)
		if len(r.Form) > FormLength {
			r.Form = r.Form[:FormLength]
		}
		out = append(out, *r)
	}
	slices.SortStableFunc(out, func(x, y Standing) int {
		if c := cmp.Compare(y.Points, x.Points); c != 0 {
			return c
		}
		return cmp.Compare(y.NRR, x.NRR)
	})
	return out
}

// nrrInputs returns the runs and balls scored and conceded by teamID. A side bowled out is
// charged the full allocation of overs.
func nrrInputs(m *scoring.State, teamID string) (runsFor, ballsFor, runsAgainst, ballsAgainst int) {
	first := inningsFigures{m.Innings1.Score, m.Innings1.Wickets, m.Innings1.LegalBalls}
	second := inningsFigures{m.Score, m.Wickets, m.LegalBalls}
	batting, bowling := second, first
	if m.Innings1.TeamID == teamID {
		batting, bowling = first, second
	}
	full := m.TotalOvers * scoring.BallsPerOver
	return batting.score, batting.balls(full), bowling.score, bowling.balls(full)
}

type inningsFigures struct {
	score, wickets, legalBalls int
}

func (f inningsFigures) balls(full int) int {
	if f.wickets >= scoring.MaxWickets {
		return full
	}
	return f.legalBalls
}

// Champion returns the winner of a finished final, if there is one.
func Champion(matches []*scoring.State) (string, bool) {
	for _, m := range matches {
		if m.Stage == "Final" && Finished(m) && m.Winner != "" {
			return m.Winner, true
		}
	}
	return "", false
}

func chronological(matches []*scoring.State) []*scoring.State {
	ordered := slices.Clone(matches)
	slices.SortStableFunc(ordered, func(a, b *scoring.State) int {
		return a.ScheduledAt.Compare(b.ScheduledAt)
	})
	return ordered
}
