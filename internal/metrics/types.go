package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	Commands           *prometheus.CounterVec
	CommandsRejected   *prometheus.CounterVec
	CommandDuration    prometheus.Histogram
	Deliveries         *prometheus.CounterVec
	Wickets            prometheus.Counter
	Undos              prometheus.Counter
	MatchesCompleted   prometheus.Counter
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
