package notifier

import (
	"context"

	"github.com/mauv0809/crease/internal/scoring"
	"github.com/mauv0809/crease/internal/tournament"
)

// Notifier defines a high-level interface for sending notifications about match events.
// Implemented by the Slack notifier and by Mock.
type Notifier interface {
	// For live matches
	SendWicketNotification(ctx context.Context, match *scoring.State, wicket scoring.Event, dryRun bool) error
	SendInningsBreakNotification(ctx context.Context, match *scoring.State, dryRun bool) error
	// For completed matches
	SendResultNotification(ctx context.Context, match *scoring.State, dryRun bool) error

	// For formatting responses for slash commands
	FormatScoreResponse(match *scoring.State) (any, error)
	FormatMatchesResponse(matches []*scoring.State) (any, error)
	FormatTableResponse(tournamentID string, table []tournament.Standing) (any, error)
	FormatPlayerStatsResponse(stats tournament.PlayerStats) (any, error)
	FormatNotFoundResponse(query string) (any, error)
}
