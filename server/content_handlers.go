package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/tripweaver/tripweaver/content"
)

// pathID extracts an integer path parameter.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// handleListDestinations serves the destinations catalog. Query parameters:
//   - search: substring match on name/location/description
//   - recommended=true: only recommended entries
//   - tags: comma-separated tag filter
func (s *Server) handleListDestinations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var (
		destinations []content.Destination
		err          error
	)
	switch {
	case query.Get("search") != "":
		destinations, err = s.destinations.Search(ctx, query.Get("search"))
	case query.Get("recommended") == "true":
		destinations, err = s.destinations.GetRecommended(ctx)
	case query.Get("tags") != "":
		tags := strings.Split(query.Get("tags"), ",")
		destinations, err = s.destinations.FilterByTags(ctx, tags)
	default:
		destinations, err = s.destinations.GetAll(ctx)
	}

	if err != nil {
		s.writeDataError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, destinations)
}

func (s *Server) handleDestinationTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.destinations.Tags(r.Context())
	if err != nil {
		s.writeDataError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleGetDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid destination id")
		return
	}

	destination, err := s.destinations.GetByID(r.Context(), id)
	if err != nil {
		s.writeDataError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, destination)
}

func (s *Server) handleCreateDestination(w http.ResponseWriter, r *http.Request) {
	var req content.NewDestination
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Location == "" {
		s.writeError(w, http.StatusBadRequest, "name and location are required")
		return
	}

	created, err := s.destinations.Create(r.Context(), req)
	if err != nil {
		s.writeDataError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid destination id")
		return
	}

	var updates map[string]any
	if err := decodeJSON(w, r, &updates); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(updates) == 0 {
		s.writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	updated, err := s.destinations.Update(r.Context(), id, updates)
	if err != nil {
		s.writeDataError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid destination id")
		return
	}

	if err := s.destinations.Delete(r.Context(), id); err != nil {
		s.writeDataError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListGuides serves published guides, optionally filtered by
// featured=true or tag=<tag>.
func (s *Server) handleListGuides(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var (
		guides []content.Guide
		err    error
	)
	switch {
	case query.Get("featured") == "true":
		guides, err = s.guides.GetFeatured(ctx)
	case query.Get("tag") != "":
		guides, err = s.guides.GetByTag(ctx, query.Get("tag"))
	default:
		guides, err = s.guides.GetAll(ctx)
	}

	if err != nil {
		s.writeDataError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, guides)
}

func (s *Server) handleGuideViewed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid guide id")
		return
	}

	guides, err := s.guides.GetAll(r.Context())
	if err != nil {
		s.writeDataError(w, err)
		return
	}
	for _, g := range guides {
		if g.ID == id {
			if err := s.guides.IncrementViews(r.Context(), id, g.Views); err != nil {
				s.writeDataError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	s.writeError(w, http.StatusNotFound, "guide not found")
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	var (
		posts []content.CommunityPost
		err   error
	)
	if r.URL.Query().Get("trending") == "true" {
		posts, err = s.community.GetTrending(r.Context())
	} else {
		posts, err = s.community.GetPosts(r.Context())
	}

	if err != nil {
		s.writeDataError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleLikePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	posts, err := s.community.GetPosts(r.Context())
	if err != nil {
		s.writeDataError(w, err)
		return
	}
	for _, p := range posts {
		if p.ID == id {
			if err := s.community.LikePost(r.Context(), id, p.Likes); err != nil {
				s.writeDataError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	s.writeError(w, http.StatusNotFound, "post not found")
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	team, err := s.site.GetTeam(r.Context())
	if err != nil {
		s.writeDataError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, team)
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := s.site.GetFeatures(r.Context())
	if err != nil {
		s.writeDataError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, features)
}

func (s *Server) handleUserFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	favorites, err := s.users.GetFavorites(r.Context(), userID)
	if err != nil {
		s.writeDataError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, favorites)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req content.NewFavorite
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DestinationName == "" {
		s.writeError(w, http.StatusBadRequest, "destination_name is required")
		return
	}
	req.UserID = userID

	created, err := s.users.AddFavorite(r.Context(), req)
	if err != nil {
		s.writeDataError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	favoriteID, ok := pathID(r, "favoriteID")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid favorite id")
		return
	}

	if err := s.users.RemoveFavorite(r.Context(), userID, favoriteID); err != nil {
		s.writeDataError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUserTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	trips, err := s.users.GetTrips(r.Context(), userID)
	if err != nil {
		s.writeDataError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, trips)
}

func (s *Server) handleUserAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	achievements, err := s.users.GetAchievements(r.Context(), userID)
	if err != nil {
		s.writeDataError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, achievements)
}
