package content

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

// SiteService reads the static site content: team members for the about
// page and the feature cards on the landing page.
type SiteService struct {
	client *Client
	cache  *gocache.Cache
}

// NewSiteService creates the site content service.
func NewSiteService(client *Client) *SiteService {
	return &SiteService{
		client: client,
		cache:  gocache.New(cacheTTL, cacheCleanup),
	}
}

// GetTeam returns active team members in display order.
func (s *SiteService) GetTeam(ctx context.Context) ([]TeamMember, error) {
	const key = "site:team"
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]TeamMember), nil
	}

	var team []TeamMember
	err := s.client.Select(ctx, "team_members", Query{
		Filters: []Filter{{Column: "is_active", Op: "eq", Value: "true"}},
		Order:   &Order{Column: "display_order", Ascending: true},
	}, &team)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(key, team)
	return team, nil
}

// GetFeatures returns active site features in display order.
func (s *SiteService) GetFeatures(ctx context.Context) ([]SiteFeature, error) {
	const key = "site:features"
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]SiteFeature), nil
	}

	var features []SiteFeature
	err := s.client.Select(ctx, "site_features", Query{
		Filters: []Filter{{Column: "is_active", Op: "eq", Value: "true"}},
		Order:   &Order{Column: "display_order", Ascending: true},
	}, &features)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(key, features)
	return features, nil
}
