package config

// Config holds all configuration for the application.
type Config struct {
	DBName     string
	Port       string
	Slack      SlackConfig
	Turso      TursoConfig
	ProjectID  string
	RosterFile string
	// PublishEvents routes notifications through Pub/Sub instead of sending them inline.
	PublishEvents bool
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
