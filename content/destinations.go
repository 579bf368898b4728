package content

import (
	"context"
	"fmt"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"
)

// Cache windows for catalog reads. The catalog changes rarely and the
// browsing pages hammer the same queries.
const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// DestinationsService reads and writes the destinations catalog.
type DestinationsService struct {
	client *Client
	cache  *gocache.Cache
}

// NewDestinationsService creates the destinations service.
func NewDestinationsService(client *Client) *DestinationsService {
	return &DestinationsService{
		client: client,
		cache:  gocache.New(cacheTTL, cacheCleanup),
	}
}

// GetAll returns all destinations, newest first.
func (s *DestinationsService) GetAll(ctx context.Context) ([]Destination, error) {
	const key = "destinations:all"
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]Destination), nil
	}

	var destinations []Destination
	err := s.client.Select(ctx, "destinations", Query{
		Order: &Order{Column: "created_at"},
	}, &destinations)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(key, destinations)
	return destinations, nil
}

// GetByID returns one destination.
func (s *DestinationsService) GetByID(ctx context.Context, id int) (*Destination, error) {
	key := "destinations:id:" + strconv.Itoa(id)
	if cached, ok := s.cache.Get(key); ok {
		d := cached.(Destination)
		return &d, nil
	}

	var destination Destination
	err := s.client.SelectSingle(ctx, "destinations", Query{
		Filters: []Filter{{Column: "id", Op: "eq", Value: strconv.Itoa(id)}},
	}, &destination)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(key, destination)
	return &destination, nil
}

// GetRecommended returns recommended destinations, best rated first.
func (s *DestinationsService) GetRecommended(ctx context.Context) ([]Destination, error) {
	const key = "destinations:recommended"
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]Destination), nil
	}

	var destinations []Destination
	err := s.client.Select(ctx, "destinations", Query{
		Filters: []Filter{{Column: "recommended", Op: "eq", Value: "true"}},
		Order:   &Order{Column: "rating"},
	}, &destinations)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(key, destinations)
	return destinations, nil
}

// Search matches the query substring against name, location, and
// description. Search results are not cached.
func (s *DestinationsService) Search(ctx context.Context, query string) ([]Destination, error) {
	var destinations []Destination
	err := s.client.Select(ctx, "destinations", Query{
		Or:    OrSubstring(query, "name", "location", "description"),
		Order: &Order{Column: "rating"},
	}, &destinations)
	if err != nil {
		return nil, err
	}
	return destinations, nil
}

// FilterByTags returns destinations carrying all of the given tags.
func (s *DestinationsService) FilterByTags(ctx context.Context, tags []string) ([]Destination, error) {
	var destinations []Destination
	err := s.client.Select(ctx, "destinations", Query{
		Filters: []Filter{{Column: "tags", Op: "cs", Value: tagsLiteral(tags)}},
		Order:   &Order{Column: "rating"},
	}, &destinations)
	if err != nil {
		return nil, err
	}
	return destinations, nil
}

// Tags returns the distinct set of tags across the catalog, for the filter
// panel.
func (s *DestinationsService) Tags(ctx context.Context) ([]string, error) {
	destinations, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Uniq(lo.FlatMap(destinations, func(d Destination, _ int) []string {
		return d.Tags
	})), nil
}

// Create inserts a destination and returns the stored record.
func (s *DestinationsService) Create(ctx context.Context, destination NewDestination) (*Destination, error) {
	var created Destination
	if err := s.client.Insert(ctx, "destinations", destination, &created); err != nil {
		return nil, err
	}
	s.cache.Flush()
	return &created, nil
}

// Update patches a destination and returns the updated record.
func (s *DestinationsService) Update(ctx context.Context, id int, updates map[string]any) (*Destination, error) {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	var updated Destination
	err := s.client.Update(ctx, "destinations", Query{
		Filters: []Filter{{Column: "id", Op: "eq", Value: strconv.Itoa(id)}},
	}, updates, &updated)
	if err != nil {
		return nil, err
	}
	s.cache.Flush()
	return &updated, nil
}

// Delete removes a destination.
func (s *DestinationsService) Delete(ctx context.Context, id int) error {
	err := s.client.Delete(ctx, "destinations", Query{
		Filters: []Filter{{Column: "id", Op: "eq", Value: strconv.Itoa(id)}},
	})
	if err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}

// tagsLiteral renders a tag list as an array literal for contains filters.
func tagsLiteral(tags []string) string {
	quoted := lo.Map(tags, func(tag string, _ int) string {
		return fmt.Sprintf("%q", tag)
	})
	out := "{"
	for i, q := range quoted {
		if i > 0 {
			out += ","
		}
		out += q
	}
	return out + "}"
}
