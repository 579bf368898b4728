package content

import (
	"context"
	"strconv"

	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"
)

// CommunityService reads the community feed.
type CommunityService struct {
	client *Client
	cache  *gocache.Cache
}

// NewCommunityService creates the community service.
func NewCommunityService(client *Client) *CommunityService {
	return &CommunityService{
		client: client,
		cache:  gocache.New(cacheTTL, cacheCleanup),
	}
}

// GetPosts returns active community posts, newest first.
func (s *CommunityService) GetPosts(ctx context.Context) ([]CommunityPost, error) {
	const key = "community:posts"
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]CommunityPost), nil
	}

	var posts []CommunityPost
	err := s.client.Select(ctx, "community_posts", Query{
		Filters: []Filter{{Column: "is_active", Op: "eq", Value: "true"}},
		Order:   &Order{Column: "created_at"},
	}, &posts)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(key, posts)
	return posts, nil
}

// GetTrending returns active posts flagged as trending.
func (s *CommunityService) GetTrending(ctx context.Context) ([]CommunityPost, error) {
	posts, err := s.GetPosts(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(posts, func(p CommunityPost, _ int) bool {
		return p.Trending
	}), nil
}

// LikePost bumps a post's like counter.
func (s *CommunityService) LikePost(ctx context.Context, id int, current int) error {
	err := s.client.Update(ctx, "community_posts", Query{
		Filters: []Filter{{Column: "id", Op: "eq", Value: strconv.Itoa(id)}},
	}, map[string]any{"likes": current + 1}, nil)
	if err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}
