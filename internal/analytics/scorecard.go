package analytics

import (
	"fmt"

	"github.com/mauv0809/crease/internal/roster"
	"github.com/mauv0809/crease/internal/scoring"
)

const (
	LabelYetToBat  = "Yet to Bat"
	LabelDidNotBat = "Did Not Bat"
)

// BatterLine is one row of the batting card.
type BatterLine struct {
	Name       string  `json:"name"`
	Dismissal  string  `json:"dismissal"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	StrikeRate float64 `json:"strikeRate"`
	Out        bool    `json:"out"`
	OnStrike   bool    `json:"onStrike,omitempty"`
}

// BowlerLine is one row of the bowling card.
type BowlerLine struct {
	Name    string  `json:"name"`
	Overs   string  `json:"overs"`
	Balls   int     `json:"balls"`
	Runs    int     `json:"runs"`
	Wickets int     `json:"wickets"`
	Economy float64 `json:"economy"`
	Current bool    `json:"current,omitempty"`
}

// InningsCard is the scorecard of one innings.
type InningsCard struct {
	Innings        int            `json:"innings"`
	TeamID         string         `json:"teamId"`
	TeamName       string         `json:"teamName"`
	Score          int            `json:"score"`
	Wickets        int            `json:"wickets"`
	Overs          string         `json:"overs"`
	Extras         int            `json:"extras"`
	RunRate        float64        `json:"runRate"`
	Batters        []BatterLine   `json:"batters"`
	Bowlers        []BowlerLine   `json:"bowlers"`
	FallOfWickets  []FallOfWicket `json:"fallOfWickets,omitempty"`
	RemainingLabel string         `json:"remainingLabel,omitempty"`
	Remaining      []string       `json:"remaining,omitempty"`
}

// Scorecard is the full card for a match.
type Scorecard struct {
	MatchID string         `json:"matchId"`
	Title   string         `json:"title"`
	Status  scoring.Status `json:"status"`
	Result  string         `json:"result,omitempty"`
	MOM     string         `json:"mom,omitempty"`
	Innings []InningsCard  `json:"innings"`
}

// Total renders the innings total as "score/wickets (overs)".
func (c InningsCard) Total() string {
	return fmt.Sprintf("%d/%d (%s)", c.Score, c.Wickets, c.Overs)
}

// StrikeRate is runs per hundred balls.
func StrikeRate(runs, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return float64(runs) / float64(balls) * 100
}

// Economy is runs conceded per six legal balls.
func Economy(runs, balls int) float64 {
	return RunRate(runs, balls)
}

// BuildScorecard assembles the cards of every innings that has started.
func BuildScorecard(s *scoring.State) Scorecard {
	card := Scorecard{
		MatchID: s.ID,
		Title:   s.TeamA.Name + " vs " + s.TeamB.Name,
		Status:  s.Status,
		Result:  s.Result,
		MOM:     s.MOM,
	}
	if in := s.Innings1; in != nil {
		card.Innings = append(card.Innings, inningsCard(inningsInput{
			number:   1,
			team:     s.Team(in.TeamID),
			score:    in.Score,
			wickets:  in.Wickets,
			balls:    in.LegalBalls,
			extras:   in.Extras,
			batting:  in.BattingStats,
			bowling:  in.BowlingStats,
			timeline: in.Timeline,
			complete: true,
		}))
	}
	if len(s.BattingStats) > 0 {
		complete := s.Status == scoring.StatusConcluding || s.Status == scoring.StatusCompleted ||
			s.Phase() == scoring.PhaseInningsBreak
		card.Innings = append(card.Innings, inningsCard(inningsInput{
			number:   s.CurrentInnings,
			team:     s.BattingTeam(),
			score:    s.Score,
			wickets:  s.Wickets,
			balls:    s.LegalBalls,
			extras:   s.Extras,
			batting:  s.BattingStats,
			bowling:  s.BowlingStats,
			timeline: s.Timeline,
			complete: complete,
			striker:  s.Striker,
			bowler:   s.Bowler,
		}))
	}
	return card
}

type inningsInput struct {
	number   int
	team     roster.Team
	score    int
	wickets  int
	balls    int
	extras   int
	batting  map[string]scoring.BattingRecord
	bowling  map[string]scoring.BowlingRecord
	timeline []scoring.DeliveryEvent
	complete bool
	striker  string
	bowler   string
}

func inningsCard(in inningsInput) InningsCard {
	card := InningsCard{
		Innings:       in.number,
		TeamID:        in.team.ID,
		TeamName:      in.team.Name,
		Score:         in.score,
		Wickets:       in.wickets,
		Overs:         scoring.FormatOvers(in.balls),
		Extras:        in.extras,
		RunRate:       RunRate(in.score, in.balls),
		FallOfWickets: FallOfWickets(in.timeline),
	}
	for _, name := range scoring.ByBattingOrder(in.batting) {
		r := in.batting[name]
		dismissal := r.Dismissal
		if dismissal == "" {
			dismissal = "not out"
		}
		card.Batters = append(card.Batters, BatterLine{
			Name:       name,
			Dismissal:  dismissal,
			Runs:       r.Runs,
			Balls:      r.Balls,
			Fours:      r.Fours,
			Sixes:      r.Sixes,
			StrikeRate: StrikeRate(r.Runs, r.Balls),
			Out:        r.Out,
			OnStrike:   !in.complete && name == in.striker,
		})
	}
	for _, name := range scoring.ByBowlingOrder(in.bowling) {
		r := in.bowling[name]
		card.Bowlers = append(card.Bowlers, BowlerLine{
			Name:    name,
			Overs:   scoring.FormatOvers(r.Balls),
			Balls:   r.Balls,
			Runs:    r.Runs,
			Wickets: r.Wickets,
			Economy: Economy(r.Runs, r.Balls),
			Current: !in.complete && name == in.bowler,
		})
	}
	for _, p := range in.team.Players {
		if _, batted := in.batting[p.Name]; !batted {
			card.Remaining = append(card.Remaining, p.Name)
		}
	}
	if len(card.Remaining) > 0 {
		card.RemainingLabel = LabelYetToBat
		if in.complete {
			card.RemainingLabel = LabelDidNotBat
		}
	}
	return card
}
