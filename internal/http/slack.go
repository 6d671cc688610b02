package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/store"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any, err error) {
	if err != nil {
		http.Error(w, "Failed to format response", http.StatusInternalServerError)
		log.Error("Failed to format Slack response", "error", err)
		return
	}
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(slackMsg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func parseSlashCommand(w http.ResponseWriter, r *http.Request) (slack.SlashCommand, bool) {
	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return slack.SlashCommand{}, false
	}
	cmd.Text = strings.TrimSpace(cmd.Text)
	log.Info("Received slash command", "command", cmd.Command, "text", cmd.Text, "user", cmd.UserName)
	return cmd, true
}

// ScoreCommandHandler answers /score. Without text it lists the matches in play.
func (s *Server) ScoreCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, ok := parseSlashCommand(w, r)
		if !ok {
			return
		}
		if cmd.Text == "" {
			matches, err := s.Matches.List(r.Context(), "")
			if err != nil {
				http.Error(w, "Failed to get matches", http.StatusInternalServerError)
				log.Error("Failed to list matches", "error", err)
				return
			}
			msg, err := s.Notifier.FormatMatchesResponse(matches)
			respondWithSlackMsg(w, msg, err)
			return
		}

		m, err := s.Matches.Get(r.Context(), cmd.Text)
		if errors.Is(err, store.ErrNotFound) {
			msg, err := s.Notifier.FormatNotFoundResponse(cmd.Text)
			respondWithSlackMsg(w, msg, err)
			return
		}
		if err != nil {
			http.Error(w, "Failed to get match", http.StatusInternalServerError)
			log.Error("Failed to get match", "match_id", cmd.Text, "error", err)
			return
		}
		msg, err := s.Notifier.FormatScoreResponse(m)
		respondWithSlackMsg(w, msg, err)
	}
}

// TableCommandHandler answers /table <tournament>.
func (s *Server) TableCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, ok := parseSlashCommand(w, r)
		if !ok {
			return
		}
		table, err := s.Matches.Table(r.Context(), cmd.Text)
		if err != nil {
			http.Error(w, "Failed to get points table", http.StatusInternalServerError)
			log.Error("Failed to compute points table", "tournament_id", cmd.Text, "error", err)
			return
		}
		if len(table) == 0 {
			msg, err := s.Notifier.FormatNotFoundResponse(cmd.Text)
			respondWithSlackMsg(w, msg, err)
			return
		}
		msg, err := s.Notifier.FormatTableResponse(cmd.Text, table)
		respondWithSlackMsg(w, msg, err)
	}
}

// PlayerCommandHandler answers /player <name>.
func (s *Server) PlayerCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, ok := parseSlashCommand(w, r)
		if !ok {
			return
		}
		if cmd.Text == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}
		stats, found, err := s.Matches.Career(r.Context(), cmd.Text)
		if err != nil {
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			log.Error("Failed to get player stats", "player", cmd.Text, "error", err)
			return
		}
		if !found {
			log.Warn("Could not find player stats", "player", cmd.Text)
			msg, err := s.Notifier.FormatNotFoundResponse(cmd.Text)
			respondWithSlackMsg(w, msg, err)
			return
		}
		msg, err := s.Notifier.FormatPlayerStatsResponse(stats)
		respondWithSlackMsg(w, msg, err)
	}
}
