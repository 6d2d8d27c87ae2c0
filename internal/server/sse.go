package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jmtong/talentpipe/internal/agent"
	"github.com/jmtong/talentpipe/internal/types"
)

// SSEWriter streams a pipeline run to an HTTP client as Server-Sent Events.
// A run emits one "step" event per status transition, then "output" with
// the combined result, then the persistence outcome ("saved" or
// "save_error"), then "complete".
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter prepares the response for event streaming.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends one named event with a JSON payload.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteStep relays a step status transition.
func (s *SSEWriter) WriteStep(event agent.ProgressEvent) error {
	return s.WriteEvent("step", event)
}

// WriteOutput sends the combined pipeline output once all steps complete.
func (s *SSEWriter) WriteOutput(output *types.AgentOutput) error {
	return s.WriteEvent("output", output)
}

// WriteSaveResult reports the background persistence outcome.
func (s *SSEWriter) WriteSaveResult(saveErr error) {
	if saveErr != nil {
		s.WriteEvent("save_error", map[string]string{"error": saveErr.Error()}) //nolint:errcheck
		return
	}
	s.WriteEvent("saved", map[string]bool{"saved": true}) //nolint:errcheck
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// WriteComplete ends the stream, reusing the step status vocabulary for the
// run's terminal state.
func (s *SSEWriter) WriteComplete(jobID uuid.UUID, status agent.StepStatus) {
	s.WriteEvent("complete", map[string]string{ //nolint:errcheck
		"job_id": jobID.String(),
		"status": string(status),
	})
}
