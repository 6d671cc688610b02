package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mauv0809/crease/internal/analytics"
	"github.com/mauv0809/crease/internal/match"
	"github.com/mauv0809/crease/internal/render"
	"github.com/mauv0809/crease/internal/scoring"
	"github.com/spf13/cobra"
)

var (
	tournamentID string
	dryRun       bool

	createReq match.CreateRequest

	ball      scoring.RecordDelivery
	dismissal scoring.Dismissal
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Commit without sending Slack messages")

	matchesCmd.Flags().StringVar(&tournamentID, "tournament", "", "Only list matches of this tournament")
	tableCmd.Flags().StringVar(&tournamentID, "tournament", "", "Tournament id")

	createCmd.Flags().StringVar(&createReq.TeamA, "team-a", "", "Id of the first team")
	createCmd.Flags().StringVar(&createReq.TeamB, "team-b", "", "Id of the second team")
	createCmd.Flags().IntVar(&createReq.TotalOvers, "overs", 20, "Overs per innings")
	createCmd.Flags().StringVar(&createReq.TournamentID, "tournament", "", "Tournament id")
	createCmd.Flags().StringVar(&createReq.Venue, "venue", "", "Ground name")
	createCmd.MarkFlagRequired("team-a")
	createCmd.MarkFlagRequired("team-b")

	ballCmd.Flags().IntVar(&ball.Runs, "runs", 0, "Runs off the ball")
	ballCmd.Flags().StringVar((*string)(&ball.Kind), "kind", string(scoring.KindLegal), "legal, wide, nb, bye or legbye")
	ballCmd.Flags().BoolVar(&ball.IsWicket, "wicket", false, "A wicket fell")
	ballCmd.Flags().StringVar((*string)(&dismissal.Type), "how", "", "Dismissal type, e.g. Bowled or Caught")
	ballCmd.Flags().StringVar(&dismissal.Fielder, "fielder", "", "Fielder for a catch, stumping or run out")
	ballCmd.Flags().StringVar((*string)(&dismissal.Who), "who", "", "striker or nonStriker for a run out")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(ballCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(scorecardCmd)
	rootCmd.AddCommand(tableCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health?counters=true", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches?tournament="+url.QueryEscape(tournamentID), nil)
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Schedule a new match",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := json.Marshal(createReq)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		return performRequest(http.MethodPost, "/matches", body)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <match-id> <command-json>",
	Short: "Send a raw command, e.g. '{\"type\":\"start_match\"}'",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := match.DecodeCommand([]byte(args[1])); err != nil {
			return err
		}
		return sendCommand(args[0], []byte(args[1]))
	},
}

var ballCmd = &cobra.Command{
	Use:   "ball <match-id>",
	Short: "Record a delivery",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ball.IsWicket {
			ball.Dismissal = &dismissal
		}
		body, err := match.EncodeCommand(ball)
		if err != nil {
			return err
		}
		return sendCommand(args[0], body)
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo <match-id>",
	Short: "Undo the last delivery",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := match.EncodeCommand(scoring.UndoLast{})
		if err != nil {
			return err
		}
		return sendCommand(args[0], body)
	},
}

var scorecardCmd = &cobra.Command{
	Use:   "scorecard <match-id>",
	Short: "Print the scorecard of a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, status, err := fetch(http.MethodGet, "/matches/"+url.PathEscape(args[0])+"/scorecard", nil)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return fmt.Errorf("server returned %d: %s", status, body)
		}
		var sc analytics.Scorecard
		if err := json.Unmarshal(body, &sc); err != nil {
			return fmt.Errorf("failed to decode scorecard: %w", err)
		}
		return render.WriteScorecard(cmd.OutOrStdout(), sc)
	},
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Show the points table of a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/tournaments/"+url.PathEscape(tournamentID)+"/table", nil)
	},
}

func sendCommand(matchID string, body []byte) error {
	path := "/matches/" + url.PathEscape(matchID) + "/commands"
	if dryRun {
		path += "?dry_run=true"
	}
	return performRequest(http.MethodPost, path, body)
}

func fetch(method, endpoint string, body []byte) ([]byte, int, error) {
	req, err := http.NewRequest(method, host+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}
	return out, resp.StatusCode, nil
}

func performRequest(method, endpoint string, body []byte) error {
	fmt.Printf("Making request to %s\n", host+endpoint)
	out, status, err := fetch(method, endpoint, body)
	if err != nil {
		return err
	}
	fmt.Printf("Status Code: %d\n", status)
	fmt.Println("Response Body:")
	fmt.Println(string(out))
	return nil
}
