package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
)

// StreamHandler pushes every committed snapshot of a match as a server-sent event. The current
// snapshot is sent first so a viewer never starts blank.
func (s *Server) StreamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
			return
		}
		id := r.PathValue("id")
		updates, cancel := s.Matches.Subscribe(r.Context(), id)
		defer cancel()

		cur, err := s.Matches.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		log.Info("Viewer connected", "match_id", id)
		defer log.Info("Viewer disconnected", "match_id", id)

		last := cur.Version
		if err := writeEvent(w, "snapshot", cur.Version, commandResponse{Match: viewOf(cur)}); err != nil {
			return
		}
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case u, ok := <-updates:
				if !ok {
					return
				}
				if u.State.Version <= last {
					continue
				}
				last = u.State.Version
				if err := writeEvent(w, "update", u.State.Version, commandResponse{Match: viewOf(u.State), Events: u.Events}); err != nil {
					log.Warn("Failed to write stream event", "match_id", id, "error", err)
					return
				}
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, id int64, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal stream event: %w", err)
	}
	_, err = fmt.Fprintf(w, "event: %s\nid: %d\ndata: %s\n\n", event, id, data)
	return err
}
