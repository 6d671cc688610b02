package scoring

import (
	"time"

	"github.com/mauv0809/crease/internal/roster"
)

// Kind is the raw type of a delivery as entered by the scorer.
type Kind string

const (
	KindLegal  Kind = "legal"
	KindWide   Kind = "wide"
	KindNoBall Kind = "nb"
	KindBye    Kind = "bye"
	KindLegBye Kind = "legbye"
)

// DismissalType is how a batter got out.
type DismissalType string

const (
	Bowled      DismissalType = "Bowled"
	Caught      DismissalType = "Caught"
	LBW         DismissalType = "LBW"
	Stumped     DismissalType = "Stumped"
	HitWicket   DismissalType = "Hit Wicket"
	RunOut      DismissalType = "Run Out"
	RetiredHurt DismissalType = "Retired Hurt"
)

// End identifies one of the two batters at the crease.
type End string

const (
	EndStriker    End = "striker"
	EndNonStriker End = "nonStriker"
)

// Dismissal is the detail entered with a wicket.
type Dismissal struct {
	Type    DismissalType `json:"type"`
	Who     End           `json:"who,omitempty"`
	Fielder string        `json:"fielder,omitempty"`
}

// Status is the coarse lifecycle of a match.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusLive       Status = "live"
	StatusConcluding Status = "concluding"
	StatusCompleted  Status = "completed"
)

// TossDecision is what the toss winner chose to do.
type TossDecision string

const (
	TossBat  TossDecision = "bat"
	TossBowl TossDecision = "bowl"
)

// DecisionKind names a human decision the scorer must make before play continues.
type DecisionKind string

const (
	DecisionInningsSetup    DecisionKind = "innings_setup"
	DecisionNewBatsman      DecisionKind = "new_batsman"
	DecisionNewBowler       DecisionKind = "new_bowler"
	DecisionInningsBreak    DecisionKind = "innings_break"
	DecisionMatchConclusion DecisionKind = "match_conclusion"
)

// Decision is a pending decision. Outgoing names the dismissed batter or the bowler who
// just finished an over.
type Decision struct {
	Kind     DecisionKind `json:"kind"`
	Outgoing string       `json:"outgoing,omitempty"`
}

// Phase is the fine-grained state derived from Status and the pending decisions.
type Phase string

const (
	PhaseScheduled            Phase = "scheduled"
	PhaseAwaitingInningsSetup Phase = "awaiting_innings_setup"
	PhaseLive                 Phase = "live"
	PhaseAwaitingNewBatsman   Phase = "awaiting_new_batsman"
	PhaseAwaitingNewBowler    Phase = "awaiting_new_bowler"
	PhaseInningsBreak         Phase = "innings_break"
	PhaseConcluding           Phase = "concluding"
	PhaseCompleted            Phase = "completed"
)

// BattingRecord is one batter's line for an innings. A retired-hurt batter has a
// dismissal but is not out.
type BattingRecord struct {
	Runs      int    `json:"runs"`
	Balls     int    `json:"balls"`
	Fours     int    `json:"fours"`
	Sixes     int    `json:"sixes"`
	Out       bool   `json:"out"`
	Dismissal string `json:"dismissal,omitempty"`
	Number    int    `json:"number"`
	// Resumed counts returns from retired hurt.
	Resumed int `json:"resumed,omitempty"`
}

// BowlingRecord is one bowler's line for an innings. Overs counts completed overs only.
type BowlingRecord struct {
	Balls   int `json:"balls"`
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
	Overs   int `json:"overs"`
	Number  int `json:"number"`
}

// DeliveryEvent is one recorded ball. Names are the players as they stood before the ball.
// Events are never modified after being recorded.
type DeliveryEvent struct {
	Runs       int        `json:"runs"`
	Kind       Kind       `json:"kind"`
	IsWicket   bool       `json:"isWicket"`
	Dismissal  *Dismissal `json:"dismissal,omitempty"`
	Striker    string     `json:"striker"`
	NonStriker string     `json:"nonStriker"`
	Bowler     string     `json:"bowler"`
	Timestamp  time.Time  `json:"timestamp"`
	Raised     []Decision `json:"raised,omitempty"`
}

// InningsSummary is the frozen first innings.
type InningsSummary struct {
	TeamID       string                   `json:"teamId"`
	TeamName     string                   `json:"teamName"`
	Score        int                      `json:"score"`
	Wickets      int                      `json:"wickets"`
	LegalBalls   int                      `json:"legalBalls"`
	Overs        string                   `json:"overs"`
	Extras       int                      `json:"extras"`
	BattingStats map[string]BattingRecord `json:"battingStats"`
	BowlingStats map[string]BowlingRecord `json:"bowlingStats"`
	Timeline     []DeliveryEvent          `json:"timeline,omitempty"`
}

// Setup describes a match before it starts.
type Setup struct {
	ID           string
	TournamentID string
	Stage        string
	Venue        string
	ScorerName   string
	ScheduledAt  time.Time
	TeamA        roster.Team
	TeamB        roster.Team
	TotalOvers   int
	TossWinner   string
	TossDecision TossDecision
}

// EventType names something that happened as a result of a command.
type EventType string

const (
	EventMatchStarted     EventType = "match_started"
	EventInningsStarted   EventType = "innings_started"
	EventDeliveryRecorded EventType = "delivery_recorded"
	EventWicket           EventType = "wicket"
	EventOverCompleted    EventType = "over_completed"
	EventInningsEnded     EventType = "innings_ended"
	EventTargetSet        EventType = "target_set"
	EventMatchConcluded   EventType = "match_concluded"
	EventMatchCompleted   EventType = "match_completed"
	EventDeliveryUndone   EventType = "delivery_undone"
	EventBatsmanChanged   EventType = "batsman_changed"
	EventBowlerChanged    EventType = "bowler_changed"
	EventStrikeSwapped    EventType = "strike_swapped"
	EventBatsmanRetired   EventType = "batsman_retired"
)

// Event is a derived fact emitted alongside a new snapshot.
type Event struct {
	Type    EventType `json:"type"`
	Innings int       `json:"innings"`
	Score   int       `json:"score"`
	Wickets int       `json:"wickets"`
	Overs   string    `json:"overs"`
	Player  string    `json:"player,omitempty"`
	Detail  string    `json:"detail,omitempty"`
}
