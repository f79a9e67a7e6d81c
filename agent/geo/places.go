package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"googlemaps.github.io/maps"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
)

type Config struct {
	APIKey       string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	RedisAddr    string        `envconfig:"REDIS_ADDR" split_words:"true"`
	CacheTTL     time.Duration `envconfig:"CACHE_TTL" split_words:"true" default:"15m"`
	RadiusMeters uint          `envconfig:"RADIUS_METERS" split_words:"true" default:"10000"`
	MaxPlaces    int           `envconfig:"MAX_PLACES" split_words:"true" default:"20"`
	MinRating    float32       `envconfig:"MIN_RATING" split_words:"true" default:"4.0"`
}

// interestQueries maps traveler interests to Places API keywords. Unmapped
// interests are skipped, matching the tag table in the research pipeline.
var interestQueries = map[string]string{
	"beaches":     "beach",
	"nightlife":   "night club",
	"local food":  "restaurant",
	"food":        "restaurant",
	"culture":     "museum",
	"heritage":    "historic landmark",
	"adventure":   "adventure park",
	"nature":      "national park",
	"photography": "scenic viewpoint",
	"shopping":    "market",
}

// PlacesService resolves destinations and points of interest through the
// Google Maps APIs, with a Redis cache-aside in front of both lookups.
type PlacesService struct {
	client    *maps.Client
	cache     *redis.Client
	ttl       time.Duration
	radius    uint
	maxPlaces int
	minRating float32
}

var _ contractx.PlaceFinder = (*PlacesService)(nil)

func NewPlacesService(cfg Config) (*PlacesService, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("maps api key is required")
	}
	client, err := maps.NewClient(maps.WithAPIKey(strings.TrimSpace(cfg.APIKey)))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}

	var cache *redis.Client
	if addr := strings.TrimSpace(cfg.RedisAddr); addr != "" {
		cache = redis.NewClient(&redis.Options{Addr: addr})
	}

	radius := cfg.RadiusMeters
	if radius == 0 {
		radius = 10000
	}
	maxPlaces := cfg.MaxPlaces
	if maxPlaces <= 0 {
		maxPlaces = 20
	}

	return &PlacesService{
		client:    client,
		cache:     cache,
		ttl:       cfg.CacheTTL,
		radius:    radius,
		maxPlaces: maxPlaces,
		minRating: cfg.MinRating,
	}, nil
}

func (s *PlacesService) Geocode(ctx context.Context, location string) (contractx.LatLng, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return contractx.LatLng{}, fmt.Errorf("%w: location is empty", contractx.ErrValidation)
	}

	cacheKey := "geo:geocode:" + strings.ToLower(location)
	var cached contractx.LatLng
	if ok := s.cacheGet(ctx, cacheKey, &cached); ok {
		return cached, nil
	}

	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: location})
	if err != nil {
		return contractx.LatLng{}, fmt.Errorf("geocode %q: %w", location, err)
	}
	if len(results) == 0 {
		return contractx.LatLng{}, fmt.Errorf("no coordinates found for %q", location)
	}

	pos := contractx.LatLng{
		Lat: results[0].Geometry.Location.Lat,
		Lng: results[0].Geometry.Location.Lng,
	}
	s.cacheSet(ctx, cacheKey, pos)
	return pos, nil
}

func (s *PlacesService) FindPlaces(ctx context.Context, origin contractx.LatLng, interests []string) ([]contractx.Place, error) {
	queries := queriesForInterests(interests)
	if len(queries) == 0 {
		return nil, nil
	}

	cacheKey := fmt.Sprintf("geo:places:%.4f:%.4f:%s", origin.Lat, origin.Lng, strings.Join(interests, ","))
	var cached []contractx.Place
	if ok := s.cacheGet(ctx, cacheKey, &cached); ok {
		return cached, nil
	}

	var places []contractx.Place
	for _, q := range queries {
		resp, err := s.client.NearbySearch(ctx, &maps.NearbySearchRequest{
			Location: &maps.LatLng{Lat: origin.Lat, Lng: origin.Lng},
			Radius:   s.radius,
			Keyword:  q.keyword,
		})
		if err != nil {
			return nil, fmt.Errorf("nearby search for %q: %w", q.keyword, err)
		}

		for _, result := range resp.Results {
			if result.Name == "" {
				continue
			}
			if result.Rating > 0 && result.Rating < s.minRating {
				continue
			}
			places = append(places, contractx.Place{
				Name:     result.Name,
				Category: q.interest,
				Address:  result.Vicinity,
				Rating:   result.Rating,
				Position: contractx.LatLng{
					Lat: result.Geometry.Location.Lat,
					Lng: result.Geometry.Location.Lng,
				},
			})
			if len(places) >= s.maxPlaces {
				break
			}
		}
		if len(places) >= s.maxPlaces {
			break
		}
	}

	s.cacheSet(ctx, cacheKey, places)
	return places, nil
}

type interestQuery struct {
	interest string
	keyword  string
}

// queriesForInterests keeps the caller's interest order so the same request
// searches categories, and fills maxPlaces, deterministically. Duplicates and
// unmapped interests are dropped.
func queriesForInterests(interests []string) []interestQuery {
	queries := make([]interestQuery, 0, len(interests))
	seen := make(map[string]bool, len(interests))
	for _, interest := range interests {
		key := strings.ToLower(strings.TrimSpace(interest))
		if seen[key] {
			continue
		}
		if keyword, ok := interestQueries[key]; ok {
			seen[key] = true
			queries = append(queries, interestQuery{interest: key, keyword: keyword})
		}
	}
	return queries
}

// cacheGet returns true on a hit. Cache failures are treated as misses; the
// maps client is the source of truth.
func (s *PlacesService) cacheGet(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (s *PlacesService) cacheSet(ctx context.Context, key string, val any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	s.cache.Set(ctx, key, raw, s.ttl)
}
