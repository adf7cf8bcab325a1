package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const eventsHeartbeat = 30 * time.Second

// handleEvents streams change notifications to the browser so open pages
// can refetch the grid. Every event means "state may have changed"; the
// client reloads rather than patching the DOM from the payload.
func (s *Service) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	// The stream outlives the server's write timeout, so lift the write
	// deadline for this response. Writers that carry no deadline (tests,
	// some proxies) report ErrNotSupported; the stream still works there.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		s.logger.WithError(err).Warn("failed to clear write deadline for event stream")
	}

	events, cancel := s.subscriber.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(eventsHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case event, open := <-events:
			if !open {
				return
			}

			payload, err := json.Marshal(event)
			if err != nil {
				s.logger.WithError(err).Error("failed to marshal change event")
				continue
			}

			if _, err := fmt.Fprintf(w, "event: families-changed\ndata: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
