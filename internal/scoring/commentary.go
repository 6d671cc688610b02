package scoring

import "fmt"

// Commentary is the one-line description of a delivery shown on the live ticker.
func Commentary(ev DeliveryEvent) string {
	var action string
	switch {
	case ev.IsWicket:
		action = "WICKET"
	case ev.Kind == KindWide:
		action = "WIDE"
	case ev.Kind == KindNoBall:
		action = "NO BALL"
	case ev.Runs == 4:
		action = "FOUR"
	case ev.Runs == 6:
		action = "SIX"
	case ev.Runs == 0:
		action = "DOT"
	case ev.Runs == 1:
		action = "1 Run"
	default:
		action = fmt.Sprintf("%d Runs", ev.Runs)
	}
	return fmt.Sprintf("%s to %s, %s", ev.Striker, ev.Bowler, action)
}
