package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	host    string
	timeout time.Duration
	client  = &http.Client{}
)

var rootCmd = &cobra.Command{
	Use:   "crease",
	Short: "Score cricket matches on a crease server",
	Long: `crease talks to a running crease server: create matches, record deliveries
ball by ball, undo mistakes and print scorecards or tournament tables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		host = strings.TrimRight(host, "/")
		if host == "" {
			return fmt.Errorf("--host must not be empty")
		}
		client.Timeout = timeout
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "Base URL of the crease server")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "crease: %s\n", err)
		os.Exit(1)
	}
}
