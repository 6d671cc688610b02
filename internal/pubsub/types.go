package pubsub

import (
	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/crease/internal/scoring"
)

type client struct {
	client *pubsub.Client
}

// EventType represents the type of event/message sent via pubsub. It doubles as the topic id.
type EventType string

const (
	EventMatchUpdated EventType = "match-updated"
	EventMatchResult  EventType = "match-result"
)

// MatchMessage is published for every committed snapshot.
type MatchMessage struct {
	MatchID      string          `msgpack:"match_id" json:"matchId"`
	TournamentID string          `msgpack:"tournament_id" json:"tournamentId,omitempty"`
	Version      int64           `msgpack:"version" json:"version"`
	Status       scoring.Status  `msgpack:"status" json:"status"`
	Innings      int             `msgpack:"innings" json:"innings"`
	Score        int             `msgpack:"score" json:"score"`
	Wickets      int             `msgpack:"wickets" json:"wickets"`
	Overs        string          `msgpack:"overs" json:"overs"`
	Target       int             `msgpack:"target,omitempty" json:"target,omitempty"`
	Result       string          `msgpack:"result,omitempty" json:"result,omitempty"`
	Events       []scoring.Event `msgpack:"events" json:"events"`
}

// NewMatchMessage summarises a committed snapshot and the events that produced it.
func NewMatchMessage(s *scoring.State, events []scoring.Event) MatchMessage {
	return MatchMessage{
		MatchID:      s.ID,
		TournamentID: s.TournamentID,
		Version:      s.Version,
		Status:       s.Status,
		Innings:      s.CurrentInnings,
		Score:        s.Score,
		Wickets:      s.Wickets,
		Overs:        s.Overs(),
		Target:       s.Target,
		Result:       s.Result,
		Events:       events,
	}
}

// Topic picks the topic a message belongs on.
func (m MatchMessage) Topic() EventType {
	for _, ev := range m.Events {
		if ev.Type == scoring.EventMatchConcluded {
			return EventMatchResult
		}
	}
	return EventMatchUpdated
}

// pushEnvelope is the JSON body of a Pub/Sub push delivery.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data string `json:"data"`
	} `json:"message"`
}
