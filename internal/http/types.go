package http

import (
	"net/http"

	"github.com/mauv0809/crease/internal/config"
	"github.com/mauv0809/crease/internal/match"
	"github.com/mauv0809/crease/internal/metrics"
	"github.com/mauv0809/crease/internal/notifier"
	"github.com/mauv0809/crease/internal/pubsub"
)

type Server struct {
	Matches        *match.Service
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Counters       metrics.MetricsStore
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

// errorResponse is the JSON body of every failed API call.
type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// commandResponse is returned after a command was committed.
type commandResponse struct {
	Match  any `json:"match"`
	Events any `json:"events"`
}
