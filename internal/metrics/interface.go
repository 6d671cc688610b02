package metrics

// Metrics defines the interface for collecting application metrics.
// Implemented by the Prometheus service and by Mock.
type Metrics interface {
	IncCommands(command string)
	IncCommandsRejected(command, reason string)
	ObserveCommandDuration(duration float64)
	IncDeliveries(kind string)
	IncWickets()
	IncUndos()
	IncMatchesCompleted()
	IncNotifSent()
	IncNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore keeps lifetime counters that survive restarts.
type MetricsStore interface {
	Add(key string, delta int)
	GetAll() (map[string]int, error)
}

// Keys persisted in the metrics table.
const (
	KeyMatchesCreated     = "matches_created"
	KeyDeliveriesRecorded = "deliveries_recorded"
	KeyMatchesCompleted   = "matches_completed"
	KeyNotificationsSent  = "slack_notifications_sent"
	KeyRunsScored         = "runs_scored"
	KeyWicketsTaken       = "wickets_taken"
)
