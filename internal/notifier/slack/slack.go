package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/analytics"
	"github.com/mauv0809/crease/internal/metrics"
	"github.com/mauv0809/crease/internal/notifier"
	"github.com/mauv0809/crease/internal/render"
	"github.com/mauv0809/crease/internal/scoring"
	"github.com/mauv0809/crease/internal/tournament"
	"github.com/slack-go/slack"
)

const sendTimeout = 10 * time.Second

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendWicketNotification(ctx context.Context, match *scoring.State, wicket scoring.Event, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatWicket(match, wicket), dryRun)
	return err
}

func (s *Notifier) SendInningsBreakNotification(ctx context.Context, match *scoring.State, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatInningsBreak(match), dryRun)
	return err
}

func (s *Notifier) SendResultNotification(ctx context.Context, match *scoring.State, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatResult(match), dryRun)
	return err
}

// FormatScoreResponse formats the live score of a match for a slash command response.
func (s *Notifier) FormatScoreResponse(match *scoring.State) (any, error) {
	return s.formatScore(match), nil
}

// FormatMatchesResponse formats a list of matches for a slash command response.
func (s *Notifier) FormatMatchesResponse(matches []*scoring.State) (any, error) {
	return s.formatMatches(matches), nil
}

// FormatTableResponse formats a points table for a slash command response.
func (s *Notifier) FormatTableResponse(tournamentID string, table []tournament.Standing) (any, error) {
	return s.formatTable(tournamentID, table), nil
}

// FormatPlayerStatsResponse formats a player's career figures for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(stats tournament.PlayerStats) (any, error) {
	return s.formatPlayerStats(stats), nil
}

// FormatNotFoundResponse formats a not-found reply for a slash command response.
func (s *Notifier) FormatNotFoundResponse(query string) (any, error) {
	return s.formatNotFound(query), nil
}

func header(text string) slack.Block {
	return slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", text, true, false))
}

func section(kind, text string) slack.Block {
	return slack.NewSectionBlock(slack.NewTextBlockObject(kind, text, kind == "plain_text", false), nil, nil)
}

func title(match *scoring.State) string {
	return fmt.Sprintf("%s vs %s", match.TeamA.Name, match.TeamB.Name)
}

func scoreLine(match *scoring.State) string {
	return fmt.Sprintf("%s %d/%d (%s ov)", match.BattingTeam().Name, match.Score, match.Wickets, match.Overs())
}

// formatWicket creates the message posted when a batter is dismissed.
func (s *Notifier) formatWicket(match *scoring.State, wicket scoring.Event) slack.Message {
	blocks := []slack.Block{header("🏏 WICKET! 🏏")}

	out := match.BattingStats[wicket.Player]
	detail := fmt.Sprintf("*%s* %s %d (%d)", wicket.Player, wicket.Detail, out.Runs, out.Balls)
	blocks = append(blocks, section("mrkdwn", detail))
	blocks = append(blocks, section("plain_text", scoreLine(match)))

	var contextElements []slack.MixedElement
	contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", title(match), true, false))
	if match.Target > 0 {
		need := fmt.Sprintf("Need %d from %d balls", match.Target-match.Score, match.BallsRemaining())
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", need, true, false))
	}
	blocks = append(blocks, slack.NewContextBlock("", contextElements...))
	return slack.NewBlockMessage(blocks...)
}

// formatInningsBreak creates the message posted when the chase begins.
func (s *Notifier) formatInningsBreak(match *scoring.State) slack.Message {
	blocks := []slack.Block{header("🏏 Innings break 🏏")}
	if in := match.Innings1; in != nil {
		blocks = append(blocks, section("plain_text", fmt.Sprintf("%s %d/%d (%s ov)", in.TeamName, in.Score, in.Wickets, in.Overs)))
		if top := topScorer(in.BattingStats); top != "" {
			r := in.BattingStats[top]
			blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", fmt.Sprintf("Top score: %s %d (%d)", top, r.Runs, r.Balls), true, false)))
		}
	}
	target := fmt.Sprintf("%s need %d to win from %d overs", match.BattingTeam().Name, match.Target, match.TotalOvers)
	blocks = append(blocks, section("plain_text", target))
	return slack.NewBlockMessage(blocks...)
}

// formatResult creates the message posted when a match is finalized, with the scorecard attached.
func (s *Notifier) formatResult(match *scoring.State) slack.Message {
	blocks := []slack.Block{header("🏆 Match finished! 🏆")}
	blocks = append(blocks, section("plain_text", title(match)))

	result := match.Result
	if result == "" {
		result = "No result"
	}
	blocks = append(blocks, section("mrkdwn", fmt.Sprintf("*%s*", result)))
	blocks = append(blocks, section("mrkdwn", "```"+render.ScorecardText(analytics.BuildScorecard(match))+"```"))

	if match.MOM != "" {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", "⭐ Player of the match: "+match.MOM, true, false)))
	}
	return slack.NewBlockMessage(blocks...)
}

// formatScore creates the live score reply for /score.
func (s *Notifier) formatScore(match *scoring.State) slack.Message {
	sum := analytics.Summarize(match)
	blocks := []slack.Block{header("🏏 " + title(match))}

	switch match.Status {
	case scoring.StatusScheduled:
		blocks = append(blocks, section("plain_text", "Not started yet."))
		return slack.NewBlockMessage(blocks...)
	case scoring.StatusConcluding, scoring.StatusCompleted:
		blocks = append(blocks, section("mrkdwn", fmt.Sprintf("*%s*", match.Result)))
	}

	lines := []string{scoreLine(match), fmt.Sprintf("Run rate %.2f", sum.RunRate)}
	if match.Target > 0 && match.Status == scoring.StatusLive {
		lines = append(lines, fmt.Sprintf("Need %d from %d balls (RRR %.2f)", match.Target-match.Score, sum.BallsRemaining, sum.RequiredRunRate))
	}
	blocks = append(blocks, section("plain_text", strings.Join(lines, "\n")))

	var crease []string
	for _, name := range []string{match.Striker, match.NonStriker} {
		if name == "" {
			continue
		}
		r := match.BattingStats[name]
		marker := ""
		if name == match.Striker {
			marker = "*"
		}
		crease = append(crease, fmt.Sprintf("%s%s %d (%d)", name, marker, r.Runs, r.Balls))
	}
	if match.Bowler != "" {
		b := match.BowlingStats[match.Bowler]
		crease = append(crease, fmt.Sprintf("%s %d-%d (%s)", match.Bowler, b.Wickets, b.Runs, scoring.FormatOvers(b.Balls)))
	}
	if len(crease) > 0 {
		blocks = append(blocks, section("plain_text", strings.Join(crease, "\n")))
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", sum.LastAction, true, false)))
	return slack.NewBlockMessage(blocks...)
}

// formatMatches lists matches with their current score.
func (s *Notifier) formatMatches(matches []*scoring.State) slack.Message {
	blocks := []slack.Block{header("🏏 Matches 🏏")}
	if len(matches) == 0 {
		blocks = append(blocks, section("plain_text", "No matches yet."))
		return slack.NewBlockMessage(blocks...)
	}
	for _, m := range matches {
		text := fmt.Sprintf("*%s* `%s`\n> %s", title(m), m.ID, m.Status)
		switch m.Status {
		case scoring.StatusLive:
			text = fmt.Sprintf("*%s* `%s`\n> %s", title(m), m.ID, scoreLine(m))
		case scoring.StatusConcluding, scoring.StatusCompleted:
			text = fmt.Sprintf("*%s* `%s`\n> %s", title(m), m.ID, m.Result)
		}
		blocks = append(blocks, section("mrkdwn", text))
	}
	return slack.NewBlockMessage(blocks...)
}

// formatTable renders the points table.
func (s *Notifier) formatTable(tournamentID string, table []tournament.Standing) slack.Message {
	blocks := []slack.Block{header(fmt.Sprintf("🏆 Points table: %s 🏆", tournamentID))}
	if len(table) == 0 {
		blocks = append(blocks, section("plain_text", "No matches played yet. Go play some cricket!"))
		return slack.NewBlockMessage(blocks...)
	}
	for i, row := range table {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}
		form := make([]string, 0, len(row.Form))
		for _, f := range row.Form {
			form = append(form, f.Result)
		}
		text := fmt.Sprintf("%d. %s %s\n> Pts: %d | P %d W %d L %d T %d | NRR %+.3f | Form: %s",
			rank, medal, row.TeamName, row.Points, row.Played, row.Won, row.Lost, row.Tied, row.NRR, strings.Join(form, " "))
		blocks = append(blocks, section("plain_text", text))
	}
	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a message with a single player's career figures.
func (s *Notifier) formatPlayerStats(p tournament.PlayerStats) slack.Message {
	blocks := []slack.Block{header(fmt.Sprintf("🏏 Stats for %s 🏏", p.Name))}
	batting := fmt.Sprintf("> *Matches*: %d\n> *Runs*: %d (HS %d) | *Avg*: %.2f | *SR*: %.2f\n> *4s/6s*: %d/%d | *50s/100s*: %d/%d",
		p.Matches, p.Runs, p.HighScore, p.BattingAverage(), p.StrikeRate(), p.Fours, p.Sixes, p.Fifties, p.Hundreds)
	blocks = append(blocks, section("mrkdwn", batting))
	if p.BallsBowled > 0 {
		bowling := fmt.Sprintf("> *Wickets*: %d | *Best*: %s | *Econ*: %.2f", p.Wickets, p.BestBowling(), p.Economy())
		blocks = append(blocks, section("mrkdwn", bowling))
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", fmt.Sprintf("MVP points: %d", p.Points), true, false)))
	return slack.NewBlockMessage(blocks...)
}

// formatNotFound creates a message for a lookup that matched nothing.
func (s *Notifier) formatNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find anything matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(section("mrkdwn", text))
}

func topScorer(stats map[string]scoring.BattingRecord) string {
	var best string
	for _, name := range scoring.ByBattingOrder(stats) {
		if best == "" || stats[name].Runs > stats[best].Runs {
			best = name
		}
	}
	return best
}
