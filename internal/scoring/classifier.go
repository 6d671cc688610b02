package scoring

import (
	"fmt"
	"strings"
)

// Delivery is a classified ball: the effect of one raw input on the score, the ledger and the over.
type Delivery struct {
	Kind         Kind       `json:"kind"`
	Runs         int        `json:"runs"`
	Total        int        `json:"total"`
	Extras       int        `json:"extras"`
	BatterRuns   int        `json:"batterRuns"`
	Conceded     int        `json:"conceded"`
	Legal        bool       `json:"legal"`
	BallFaced    bool       `json:"ballFaced"`
	Four         bool       `json:"four"`
	Six          bool       `json:"six"`
	Wicket       bool       `json:"wicket"`
	Dismissal    *Dismissal `json:"dismissal,omitempty"`
	BowlerWicket bool       `json:"bowlerWicket"`
}

// Classify normalises a raw delivery. It is deterministic and has no side effects.
func Classify(runs int, kind Kind, isWicket bool, dismissal *Dismissal) (Delivery, error) {
	if runs < 0 || runs > 6 {
		return Delivery{}, fmt.Errorf("%w (got %d)", ErrRunsOutOfRange, runs)
	}

	d := Delivery{Kind: kind, Runs: runs}
	switch kind {
	case KindLegal:
		d.Total = runs
		d.BatterRuns = runs
		d.Conceded = runs
		d.Legal = true
		d.BallFaced = true
	case KindWide:
		d.Total = 1 + runs
		d.Extras = 1 + runs
		d.Conceded = 1 + runs
	case KindNoBall:
		d.Total = 1 + runs
		d.Extras = 1
		d.BatterRuns = runs
		d.Conceded = 1 + runs
		d.BallFaced = true
	case KindBye, KindLegBye:
		d.Total = runs
		d.Extras = runs
		d.Legal = true
		d.BallFaced = true
	default:
		return Delivery{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if kind == KindLegal || kind == KindNoBall {
		d.Four = runs == 4
		d.Six = runs == 6
	}

	if !isWicket {
		if dismissal != nil {
			return Delivery{}, ErrUnexpectedDismissal
		}
		return d, nil
	}
	if dismissal == nil {
		return Delivery{}, ErrMissingDismissal
	}
	normalized, err := normalizeDismissal(kind, *dismissal)
	if err != nil {
		return Delivery{}, err
	}
	d.Wicket = true
	d.Dismissal = &normalized
	d.BowlerWicket = normalized.Type != RunOut
	return d, nil
}

func normalizeDismissal(kind Kind, in Dismissal) (Dismissal, error) {
	out := Dismissal{Type: in.Type, Who: in.Who, Fielder: strings.TrimSpace(in.Fielder)}
	switch in.Type {
	case Bowled, LBW, HitWicket:
		out.Fielder = ""
	case Caught:
		if out.Fielder == "" {
			return Dismissal{}, ErrMissingFielder
		}
	case Stumped:
	case RunOut:
		if in.Who != EndStriker && in.Who != EndNonStriker {
			return Dismissal{}, ErrMissingRunOutEnd
		}
	case RetiredHurt:
		return Dismissal{}, ErrRetireViaDelivery
	default:
		return Dismissal{}, fmt.Errorf("%w: %q", ErrUnknownDismissal, in.Type)
	}

	if in.Type != RunOut {
		if in.Who == EndNonStriker {
			return Dismissal{}, ErrNonStrikerDismissal
		}
		out.Who = EndStriker
	}

	switch kind {
	case KindWide:
		if in.Type != Stumped && in.Type != RunOut {
			return Dismissal{}, fmt.Errorf("%w: cannot be %s off a wide", ErrDismissalNotAllowed, in.Type)
		}
	case KindNoBall:
		if in.Type != RunOut {
			return Dismissal{}, fmt.Errorf("%w: cannot be %s off a no-ball", ErrDismissalNotAllowed, in.Type)
		}
	}
	return out, nil
}

// DismissalText formats a dismissal for the scorecard.
func DismissalText(d Dismissal, bowler string) string {
	switch d.Type {
	case Caught:
		return fmt.Sprintf("c %s b %s", d.Fielder, bowler)
	case Bowled:
		return "b " + bowler
	case LBW:
		return "lbw b " + bowler
	case Stumped:
		if d.Fielder == "" {
			return "st b " + bowler
		}
		return fmt.Sprintf("st %s b %s", d.Fielder, bowler)
	case HitWicket:
		return "hit wicket b " + bowler
	case RunOut:
		return string(RunOut)
	default:
		return string(d.Type)
	}
}
