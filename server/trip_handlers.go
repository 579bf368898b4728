package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tripweaver/tripweaver/llm"
	"github.com/tripweaver/tripweaver/trip"
)

// heartbeatInterval keeps idle SSE connections alive through proxies.
const heartbeatInterval = 30 * time.Second

// handleSubmitTrip starts a planning run. A submission while a run is in
// flight supersedes it: the stale run is cancelled and a fresh task list is
// installed.
func (s *Server) handleSubmitTrip(w http.ResponseWriter, r *http.Request) {
	var req trip.Requirements
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The run outlives this request; it is parented on the server context,
	// not the request context.
	if _, err := s.orchestrator.Start(s.baseCtx, req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusAccepted, map[string]string{"status": "planning"})
}

// handleGetTrip returns the full session snapshot.
func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// handleResetTrip cancels any in-flight run and clears the session.
func (s *Server) handleResetTrip(w http.ResponseWriter, r *http.Request) {
	s.orchestrator.Stop()
	s.store.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// chatRequest is the body of POST /api/trip/messages.
type chatRequest struct {
	Message string `json:"message"`
}

// chatResponse carries the assistant's reply.
type chatResponse struct {
	Message string `json:"message"`
}

// handleChat answers a follow-up question about the stored plan. The
// question and the reply (or the error guidance) are appended to the
// conversation transcript.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	plan := s.store.Plan()
	if plan == nil {
		s.writeError(w, http.StatusConflict, "no trip plan has been generated yet")
		return
	}

	s.store.AddUserMessage(req.Message)

	reply, err := s.answerer.AnswerQuestion(r.Context(), req.Message, plan)
	if err != nil {
		guidance := llm.UserMessage(err)
		s.logger.Warn("chat completion failed", "error", err)
		s.store.AddAssistantMessage(fmt.Sprintf("获取AI回复时发生错误: %s", guidance))
		s.writeError(w, http.StatusBadGateway, guidance)
		return
	}

	s.store.AddAssistantMessage(reply)
	s.writeJSON(w, http.StatusOK, chatResponse{Message: reply})
}

// handleStream streams session events as SSE. The client receives the
// current snapshot first, then every store mutation, with periodic
// heartbeats.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	events, cancel := s.store.Subscribe()
	defer cancel()

	if err := sendSSEEvent(w, flusher, "snapshot", s.store.Snapshot()); err != nil {
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-heartbeat.C:
			if err := sendSSEEvent(w, flusher, "heartbeat", map[string]any{}); err != nil {
				s.logger.Debug("stream client disconnected", "error", err)
				return
			}

		case event, ok := <-events:
			if !ok {
				return
			}
			if err := sendSSEEvent(w, flusher, string(event.Type), event); err != nil {
				s.logger.Debug("stream client disconnected", "error", err)
				return
			}
		}
	}
}

// handleExportICS renders the stored plan's itinerary as a calendar.
// The optional start query parameter (YYYY-MM-DD) anchors day one; it
// defaults to tomorrow.
func (s *Server) handleExportICS(w http.ResponseWriter, r *http.Request) {
	plan := s.store.Plan()
	if plan == nil {
		s.writeError(w, http.StatusNotFound, "no trip plan has been generated yet")
		return
	}

	start := time.Now().AddDate(0, 0, 1)
	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid start date, expected YYYY-MM-DD")
			return
		}
		start = parsed
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trip.ics"`)
	if err := trip.WriteICS(w, plan, start); err != nil {
		s.logger.Warn("failed to write calendar", "error", err)
	}
}
