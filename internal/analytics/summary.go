package analytics

import "github.com/mauv0809/crease/internal/scoring"

// Track is the chart data for one innings.
type Track struct {
	Innings   int         `json:"innings"`
	TeamName  string      `json:"teamName"`
	Manhattan []OverBar   `json:"manhattan"`
	Worm      []WormPoint `json:"worm"`
}

// Summary is the live panel shown next to the scorecard.
type Summary struct {
	MatchID         string                  `json:"matchId"`
	Phase           scoring.Phase           `json:"phase"`
	Innings         int                     `json:"innings"`
	BattingTeam     string                  `json:"battingTeam"`
	Score           int                     `json:"score"`
	Wickets         int                     `json:"wickets"`
	Overs           string                  `json:"overs"`
	Target          int                     `json:"target,omitempty"`
	RunRate         float64                 `json:"runRate"`
	RequiredRunRate float64                 `json:"requiredRunRate,omitempty"`
	BallsRemaining  int                     `json:"ballsRemaining"`
	ProjectedScore  int                     `json:"projectedScore"`
	Partnership     Partnership             `json:"partnership"`
	LastAction      string                  `json:"lastAction"`
	FallOfWickets   []FallOfWicket          `json:"fallOfWickets,omitempty"`
	Tracks          []Track                 `json:"tracks"`
	Recent          []scoring.DeliveryEvent `json:"recent,omitempty"`
	Result          string                  `json:"result,omitempty"`
	MOM             string                  `json:"mom,omitempty"`
}

// Summarize computes every live figure for the current innings plus chart tracks for both.
func Summarize(s *scoring.State) Summary {
	sum := Summary{
		MatchID:        s.ID,
		Phase:          s.Phase(),
		Innings:        s.CurrentInnings,
		BattingTeam:    s.BattingTeam().Name,
		Score:          s.Score,
		Wickets:        s.Wickets,
		Overs:          s.Overs(),
		Target:         s.Target,
		RunRate:        RunRate(s.Score, s.LegalBalls),
		BallsRemaining: s.BallsRemaining(),
		ProjectedScore: ProjectedScore(s),
		Partnership:    CurrentPartnership(s.Timeline),
		LastAction:     LastAction(s),
		FallOfWickets:  FallOfWickets(s.Timeline),
		Recent:         s.RecentTimeline(scoring.RecentTimelineSize),
		Result:         s.Result,
		MOM:            s.MOM,
	}
	if s.Target > 0 {
		sum.RequiredRunRate = RequiredRunRate(s.Target, s.Score, s.BallsRemaining())
	}
	if in := s.Innings1; in != nil {
		sum.Tracks = append(sum.Tracks, Track{
			Innings:   1,
			TeamName:  in.TeamName,
			Manhattan: Manhattan(in.Timeline, s.TotalOvers),
			Worm:      Worm(in.Timeline),
		})
	}
	sum.Tracks = append(sum.Tracks, Track{
		Innings:   s.CurrentInnings,
		TeamName:  s.BattingTeam().Name,
		Manhattan: Manhattan(s.Timeline, s.TotalOvers),
		Worm:      Worm(s.Timeline),
	})
	return sum
}
