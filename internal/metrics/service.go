package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crease_commands_total",
			Help: "Scoring commands committed, by command.",
		}, []string{"command"}),
		CommandsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crease_commands_rejected_total",
			Help: "Scoring commands rejected, by command and reason.",
		}, []string{"command", "reason"}),
		CommandDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "crease_command_duration_seconds",
			Help:    "Time from receiving a command to committing its snapshot.",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		Deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crease_deliveries_total",
			Help: "Deliveries recorded, by kind.",
		}, []string{"kind"}),
		Wickets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_wickets_total",
			Help: "Wickets taken across all matches.",
		}),
		Undos: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_undos_total",
			Help: "Deliveries reversed with undo.",
		}),
		MatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_matches_completed_total",
			Help: "Matches finalized.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crease_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Commands,
		s.CommandsRejected,
		s.CommandDuration,
		s.Deliveries,
		s.Wickets,
		s.Undos,
		s.MatchesCompleted,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncCommands(command string) {
	s.Commands.WithLabelValues(command).Inc()
}

func (s *Service) IncCommandsRejected(command, reason string) {
	s.CommandsRejected.WithLabelValues(command, reason).Inc()
}

func (s *Service) ObserveCommandDuration(duration float64) {
	s.CommandDuration.Observe(duration)
}

func (s *Service) IncDeliveries(kind string) {
	s.Deliveries.WithLabelValues(kind).Inc()
}

func (s *Service) IncWickets() {
	s.Wickets.Inc()
}

func (s *Service) IncUndos() {
	s.Undos.Inc()
}

func (s *Service) IncMatchesCompleted() {
	s.MatchesCompleted.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
