package http

import (
	"net/http"

	"github.com/mauv0809/crease/internal/config"
	"github.com/mauv0809/crease/internal/match"
	"github.com/mauv0809/crease/internal/metrics"
	"github.com/mauv0809/crease/internal/notifier"
	"github.com/mauv0809/crease/internal/pubsub"
)

func NewServer(matches *match.Service, notifier notifier.Notifier, metricsSvc metrics.Metrics, metricsHandler http.Handler, counters metrics.MetricsStore, cfg config.Config, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Matches:        matches,
		Notifier:       notifier,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Counters:       counters,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	slackAuth := slackVerifier(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches", Chain(s.CreateMatchHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}", Chain(s.GetMatchHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/commands", Chain(s.CommandHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}/analytics", Chain(s.AnalyticsHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}/scorecard", Chain(s.ScorecardHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}/charts", Chain(s.ChartsHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}/stream", Chain(s.StreamHandler(), paramsMiddleware))

	s.Router.Handle("GET /tournaments/{id}/table", Chain(s.TableHandler(), paramsMiddleware))
	s.Router.Handle("GET /tournaments/{id}/performers", Chain(s.PerformersHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/{name}", Chain(s.PlayerHandler(), paramsMiddleware))

	s.Router.Handle("POST /pubsub/match-events", Chain(s.MatchEventsHandler(), paramsMiddleware))

	s.Router.Handle("POST /slack/command/score", Chain(s.ScoreCommandHandler(), paramsMiddleware, slackAuth))
	s.Router.Handle("POST /slack/command/table", Chain(s.TableCommandHandler(), paramsMiddleware, slackAuth))
	s.Router.Handle("POST /slack/command/player", Chain(s.PlayerCommandHandler(), paramsMiddleware, slackAuth))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
