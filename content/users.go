package content

import (
	"context"
	"strconv"
	"time"
)

// UserService reads and writes per-user profile records: saved
// destinations, trips, and achievements.
type UserService struct {
	client *Client
}

// NewUserService creates the user profile service.
func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

// GetFavorites returns a user's saved destinations, newest first.
func (s *UserService) GetFavorites(ctx context.Context, userID int) ([]UserFavorite, error) {
	var favorites []UserFavorite
	err := s.client.Select(ctx, "user_favorites", Query{
		Filters: []Filter{{Column: "user_id", Op: "eq", Value: strconv.Itoa(userID)}},
		Order:   &Order{Column: "created_at"},
	}, &favorites)
	return favorites, err
}

// NewFavorite is the writable subset of a favorite record.
type NewFavorite struct {
	UserID              int     `json:"user_id"`
	DestinationID       *int    `json:"destination_id"`
	DestinationName     string  `json:"destination_name"`
	DestinationLocation *string `json:"destination_location"`
	DestinationImage    *string `json:"destination_image"`
	SavedDate           string  `json:"saved_date"`
}

// AddFavorite saves a destination to a user's profile.
func (s *UserService) AddFavorite(ctx context.Context, favorite NewFavorite) (*UserFavorite, error) {
	if favorite.SavedDate == "" {
		favorite.SavedDate = time.Now().UTC().Format("2006-01-02")
	}

	var created UserFavorite
	if err := s.client.Insert(ctx, "user_favorites", favorite, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// RemoveFavorite deletes one saved destination from a user's profile.
func (s *UserService) RemoveFavorite(ctx context.Context, userID, favoriteID int) error {
	return s.client.Delete(ctx, "user_favorites", Query{
		Filters: []Filter{
			{Column: "id", Op: "eq", Value: strconv.Itoa(favoriteID)},
			{Column: "user_id", Op: "eq", Value: strconv.Itoa(userID)},
		},
	})
}

// GetTrips returns a user's trips, newest first.
func (s *UserService) GetTrips(ctx context.Context, userID int) ([]UserTrip, error) {
	var trips []UserTrip
	err := s.client.Select(ctx, "user_trips", Query{
		Filters: []Filter{{Column: "user_id", Op: "eq", Value: strconv.Itoa(userID)}},
		Order:   &Order{Column: "created_at"},
	}, &trips)
	return trips, err
}

// GetAchievements returns a user's achievement badges.
func (s *UserService) GetAchievements(ctx context.Context, userID int) ([]UserAchievement, error) {
	var achievements []UserAchievement
	err := s.client.Select(ctx, "user_achievements", Query{
		Filters: []Filter{{Column: "user_id", Op: "eq", Value: strconv.Itoa(userID)}},
		Order:   &Order{Column: "created_at"},
	}, &achievements)
	return achievements, err
}
