package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// sendSSEEvent writes one server-sent event and flushes it. Returns an error
// when the write fails, which means the client disconnected.
func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, eventType string, data any) error {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil // marshal failures aren't connection issues; drop the event
	}

	if _, err := fmt.Fprintf(w, "event: %s\n", eventType); err != nil {
		return fmt.Errorf("write event type: %w", err)
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", dataBytes); err != nil {
		return fmt.Errorf("write event data: %w", err)
	}

	flusher.Flush()
	return nil
}
