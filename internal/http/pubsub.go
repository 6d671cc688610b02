package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/pubsub"
	"github.com/mauv0809/crease/internal/store"
)

// MatchEventsHandler receives Pub/Sub pushes of committed match updates and sends the Slack
// notifications they call for. Pub/Sub redelivers on any non-2xx response, so only transient
// failures return an error status.
func (s *Server) MatchEventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.pubsub == nil {
			http.Error(w, "Pub/Sub is not configured", http.StatusServiceUnavailable)
			return
		}
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		messageID, rawData, err := pubsub.DecodePush(bodyBytes)
		if err != nil {
			log.Error("Failed to decode push message", "error", err)
			http.Error(w, "Invalid push message", http.StatusBadRequest)
			return
		}
		var msg pubsub.MatchMessage
		if err := s.pubsub.ProcessMessage(rawData, &msg); err != nil {
			log.Error("Failed to decode match message", "message_id", messageID, "error", err)
			http.Error(w, "Invalid match message", http.StatusBadRequest)
			return
		}
		log.Debug("Received match message", "message_id", messageID, "match_id", msg.MatchID, "version", msg.Version)

		m, err := s.Matches.Get(r.Context(), msg.MatchID)
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Dropping message for unknown match", "match_id", msg.MatchID)
			w.Write([]byte("OK"))
			return
		}
		if err != nil {
			log.Error("Failed to load match", "match_id", msg.MatchID, "error", err)
			http.Error(w, "Failed to load match", http.StatusInternalServerError)
			return
		}
		if m.Version != msg.Version {
			log.Info("Notifying from a newer snapshot", "match_id", m.ID, "message_version", msg.Version, "stored_version", m.Version)
		}
		if err := s.Matches.Notify(r.Context(), m, msg.Events, isDryRunFromContext(r)); err != nil {
			// Slack failures are counted by the notifier; a redelivery would repeat the
			// messages that did go out.
			log.Error("Failed to notify", "match_id", m.ID, "error", err)
		}
		w.Write([]byte("OK"))
	}
}
