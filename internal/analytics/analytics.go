// Package analytics derives display figures from match snapshots. Nothing here modifies a state.
package analytics

import (
	"math"

	"github.com/mauv0809/crease/internal/scoring"
)

// RunRate is runs per six legal balls, or zero before the first legal ball.
func RunRate(score, legalBalls int) float64 {
	if legalBalls <= 0 {
		return 0
	}
	return float64(score*scoring.BallsPerOver) / float64(legalBalls)
}

// RequiredRunRate is the rate needed to reach target from score, floored at zero.
func RequiredRunRate(target, score, ballsRemaining int) float64 {
	needed := target - score
	if needed <= 0 || ballsRemaining <= 0 {
		return 0
	}
	return float64(needed) / float64(ballsRemaining) * scoring.BallsPerOver
}

// ProjectedScore extrapolates the current run rate over the full allocation.
func ProjectedScore(s *scoring.State) int {
	if s.LegalBalls == 0 {
		return 0
	}
	return int(math.Floor(RunRate(s.Score, s.LegalBalls) * float64(s.TotalOvers)))
}

// Partnership is the stand between the current pair.
type Partnership struct {
	Runs  int `json:"runs"`
	Balls int `json:"balls"`
}

// CurrentPartnership walks back from the newest delivery to the last wicket. Runs include
// extras; balls are every delivery the batters faced.
func CurrentPartnership(timeline []scoring.DeliveryEvent) Partnership {
	var p Partnership
	for _, ev := range timeline {
		if ev.IsWicket {
			break
		}
		d, err := classify(ev)
		if err != nil {
			continue
		}
		p.Runs += d.Total
		if d.BallFaced {
			p.Balls++
		}
	}
	return p
}

// FallOfWicket records the score when a wicket fell.
type FallOfWicket struct {
	Wicket int    `json:"wicket"`
	Score  int    `json:"score"`
	Batter string `json:"batter"`
	Over   string `json:"over"`
}

// FallOfWickets replays the timeline oldest first. The result is ordered by wicket number.
func FallOfWickets(timeline []scoring.DeliveryEvent) []FallOfWicket {
	var (
		out        []FallOfWicket
		score      int
		legalBalls int
	)
	forEachOldestFirst(timeline, func(ev scoring.DeliveryEvent, d scoring.Delivery) {
		score += d.Total
		if d.Legal {
			legalBalls++
		}
		if !d.Wicket {
			return
		}
		batter := ev.Striker
		if d.Dismissal.Who == scoring.EndNonStriker {
			batter = ev.NonStriker
		}
		out = append(out, FallOfWicket{
			Wicket: len(out) + 1,
			Score:  score,
			Batter: batter,
			Over:   scoring.FormatOvers(legalBalls),
		})
	})
	return out
}

// OverBar is one over of the Manhattan chart.
type OverBar struct {
	Over    int `json:"over"`
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
	Balls   int `json:"balls"`
}

// Manhattan buckets deliveries into overs of six counted balls. Legal balls, byes, leg byes
// and no-balls are counted; wides only add their runs. Overs not yet bowled are returned empty
// up to totalOvers.
func Manhattan(timeline []scoring.DeliveryEvent, totalOvers int) []OverBar {
	var bars []OverBar
	open := func() *OverBar {
		if len(bars) == 0 || bars[len(bars)-1].Balls == scoring.BallsPerOver {
			bars = append(bars, OverBar{Over: len(bars) + 1})
		}
		return &bars[len(bars)-1]
	}
	forEachOldestFirst(timeline, func(_ scoring.DeliveryEvent, d scoring.Delivery) {
		bar := open()
		bar.Runs += d.Total
		if d.Wicket {
			bar.Wickets++
		}
		if d.Kind != scoring.KindWide {
			bar.Balls++
		}
	})
	for len(bars) < totalOvers {
		bars = append(bars, OverBar{Over: len(bars) + 1})
	}
	return bars
}

// WormPoint is the cumulative score at a point in the innings.
type WormPoint struct {
	Overs string `json:"overs"`
	Balls int    `json:"balls"`
	Score int    `json:"score"`
}

// Worm returns the score at the start, at the end of every completed over, and at the live
// position when the innings is mid-over.
func Worm(timeline []scoring.DeliveryEvent) []WormPoint {
	points := []WormPoint{{Overs: scoring.FormatOvers(0)}}
	var score, legalBalls int
	forEachOldestFirst(timeline, func(_ scoring.DeliveryEvent, d scoring.Delivery) {
		score += d.Total
		if !d.Legal {
			return
		}
		legalBalls++
		if legalBalls%scoring.BallsPerOver == 0 {
			points = append(points, WormPoint{Overs: scoring.FormatOvers(legalBalls), Balls: legalBalls, Score: score})
		}
	})
	if legalBalls%scoring.BallsPerOver != 0 {
		points = append(points, WormPoint{Overs: scoring.FormatOvers(legalBalls), Balls: legalBalls, Score: score})
	}
	return points
}

// LastAction describes the newest delivery for the live ticker.
func LastAction(s *scoring.State) string {
	ev, ok := s.LastDelivery()
	if !ok {
		return "Match Started"
	}
	return scoring.Commentary(ev)
}

func classify(ev scoring.DeliveryEvent) (scoring.Delivery, error) {
	return scoring.Classify(ev.Runs, ev.Kind, ev.IsWicket, ev.Dismissal)
}

// forEachOldestFirst replays a newest-first timeline in playing order, skipping events that
// no longer classify.
func forEachOldestFirst(timeline []scoring.DeliveryEvent, fn func(scoring.DeliveryEvent, scoring.Delivery)) {
	for i := len(timeline) - 1; i >= 0; i-- {
		d, err := classify(timeline[i])
		if err != nil {
			continue
		}
		fn(timeline[i], d)
	}
}
