// Package server exposes the HTTP API the browser UI talks to: the
// trip-planning session endpoints with a live event stream, and the
// catalog/profile endpoints backed by the hosted data service.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tripweaver/tripweaver/agent"
	"github.com/tripweaver/tripweaver/content"
	"github.com/tripweaver/tripweaver/session"
	"github.com/tripweaver/tripweaver/trip"
)

// maxRequestBody limits JSON request bodies.
const maxRequestBody = 1 << 20 // 1 MB

// QuestionAnswerer answers free-text questions about a stored plan.
// Satisfied by *trip.Planner; tests substitute stubs.
type QuestionAnswerer interface {
	AnswerQuestion(ctx context.Context, question string, plan *trip.Plan) (string, error)
}

// Server wires the planning core and content services into an HTTP API.
type Server struct {
	// baseCtx parents orchestrator runs so they outlive the submitting
	// request.
	baseCtx context.Context

	store        *session.Store
	orchestrator *agent.Orchestrator
	answerer     QuestionAnswerer

	destinations *content.DestinationsService
	guides       *content.GuidesService
	community    *content.CommunityService
	site         *content.SiteService
	users        *content.UserService

	logger *slog.Logger
}

// Options collects the server's collaborators.
type Options struct {
	BaseContext  context.Context
	Store        *session.Store
	Orchestrator *agent.Orchestrator
	Answerer     QuestionAnswerer

	Destinations *content.DestinationsService
	Guides       *content.GuidesService
	Community    *content.CommunityService
	Site         *content.SiteService
	Users        *content.UserService

	Logger *slog.Logger
}

// New creates a server from its collaborators.
func New(opts Options) *Server {
	if opts.BaseContext == nil {
		opts.BaseContext = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Server{
		baseCtx:      opts.BaseContext,
		store:        opts.Store,
		orchestrator: opts.Orchestrator,
		answerer:     opts.Answerer,
		destinations: opts.Destinations,
		guides:       opts.Guides,
		community:    opts.Community,
		site:         opts.Site,
		users:        opts.Users,
		logger:       opts.Logger,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Trip planning session
	mux.HandleFunc("POST /api/trip", s.handleSubmitTrip)
	mux.HandleFunc("GET /api/trip", s.handleGetTrip)
	mux.HandleFunc("DELETE /api/trip", s.handleResetTrip)
	mux.HandleFunc("GET /api/trip/stream", s.handleStream)
	mux.HandleFunc("POST /api/trip/messages", s.handleChat)
	mux.HandleFunc("GET /api/trip/export.ics", s.handleExportICS)

	// Catalog routes exist only when the data service is configured.
	if s.destinations != nil {
		mux.HandleFunc("GET /api/destinations", s.handleListDestinations)
		mux.HandleFunc("GET /api/destinations/tags", s.handleDestinationTags)
		mux.HandleFunc("GET /api/destinations/{id}", s.handleGetDestination)
		mux.HandleFunc("POST /api/destinations", s.handleCreateDestination)
		mux.HandleFunc("PATCH /api/destinations/{id}", s.handleUpdateDestination)
		mux.HandleFunc("DELETE /api/destinations/{id}", s.handleDeleteDestination)
	}
	if s.guides != nil {
		mux.HandleFunc("GET /api/guides", s.handleListGuides)
		mux.HandleFunc("POST /api/guides/{id}/viewed", s.handleGuideViewed)
	}
	if s.community != nil {
		mux.HandleFunc("GET /api/community/posts", s.handleListPosts)
		mux.HandleFunc("POST /api/community/posts/{id}/like", s.handleLikePost)
	}
	if s.site != nil {
		mux.HandleFunc("GET /api/team", s.handleTeam)
		mux.HandleFunc("GET /api/features", s.handleFeatures)
	}

	// Profile
	if s.users != nil {
		mux.HandleFunc("GET /api/users/{id}/favorites", s.handleUserFavorites)
		mux.HandleFunc("POST /api/users/{id}/favorites", s.handleAddFavorite)
		mux.HandleFunc("DELETE /api/users/{id}/favorites/{favoriteID}", s.handleRemoveFavorite)
		mux.HandleFunc("GET /api/users/{id}/trips", s.handleUserTrips)
		mux.HandleFunc("GET /api/users/{id}/achievements", s.handleUserAchievements)
	}

	// Operational
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}

// writeJSON writes a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeDataError maps a hosted data service failure onto our API.
func (s *Server) writeDataError(w http.ResponseWriter, err error) {
	var reqErr *content.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.StatusCode {
		case http.StatusNotFound, http.StatusNotAcceptable:
			s.writeError(w, http.StatusNotFound, "record not found")
			return
		}
	}
	s.logger.Error("data service request failed", "error", err)
	s.writeError(w, http.StatusBadGateway, "data service unavailable")
}

// decodeJSON reads a size-limited JSON request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	return json.NewDecoder(r.Body).Decode(dest)
}
