package content

import (
	"context"
	"strconv"

	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"
)

// GuidesService reads the published travel guides.
type GuidesService struct {
	client *Client
	cache  *gocache.Cache
}

// NewGuidesService creates the guides service.
func NewGuidesService(client *Client) *GuidesService {
	return &GuidesService{
		client: client,
		cache:  gocache.New(cacheTTL, cacheCleanup),
	}
}

// GetAll returns published guides, newest first.
func (s *GuidesService) GetAll(ctx context.Context) ([]Guide, error) {
	const key = "guides:all"
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]Guide), nil
	}

	var guides []Guide
	err := s.client.Select(ctx, "guides", Query{
		Filters: []Filter{{Column: "is_published", Op: "eq", Value: "true"}},
		Order:   &Order{Column: "publish_date"},
	}, &guides)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(key, guides)
	return guides, nil
}

// GetFeatured returns published guides marked as featured.
func (s *GuidesService) GetFeatured(ctx context.Context) ([]Guide, error) {
	guides, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(guides, func(g Guide, _ int) bool {
		return g.Featured
	}), nil
}

// GetByTag returns published guides carrying the given tag.
func (s *GuidesService) GetByTag(ctx context.Context, tag string) ([]Guide, error) {
	guides, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(guides, func(g Guide, _ int) bool {
		return lo.Contains(g.Tags, tag)
	}), nil
}

// IncrementViews bumps a guide's view counter. Best effort: the catalog
// pages don't block on it.
func (s *GuidesService) IncrementViews(ctx context.Context, id int, current int) error {
	return s.client.Update(ctx, "guides", Query{
		Filters: []Filter{{Column: "id", Op: "eq", Value: strconv.Itoa(id)}},
	}, map[string]any{"views": current + 1}, nil)
}
