package geocode

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/health-portal/internal/cache"
)

var ErrNoMatch = errors.New("address not found")

// Nominatim talks to an OpenStreetMap Nominatim compatible search endpoint.
type Nominatim struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func NewNominatim(baseURL, userAgent string) *Nominatim {
	return &Nominatim{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

type place struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (n *Nominatim) Geocode(ctx context.Context, address string) (float64, float64, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("q", address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}
	// Nominatim's usage policy rejects anonymous clients.
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocoder request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocoder status %d", resp.StatusCode)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return 0, 0, fmt.Errorf("decode geocoder response: %w", err)
	}
	if len(places) == 0 {
		return 0, 0, ErrNoMatch
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse lat: %w", err)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse lon: %w", err)
	}
	return lat, lng, nil
}

// ======================================================
// Cache
// ======================================================

type resolver interface {
	Geocode(ctx context.Context, address string) (float64, float64, error)
}

// kv is the part of the Redis store the cache needs.
type kv interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

const CacheTTL = 30 * 24 * time.Hour

// Cached remembers successful lookups. Cache failures only cost a live lookup.
type Cached struct {
	next  resolver
	store kv
}

func NewCached(next resolver, store kv) *Cached {
	return &Cached{next: next, store: store}
}

func (c *Cached) Geocode(ctx context.Context, address string) (float64, float64, error) {
	key := cacheKey(address)

	if v, err := c.store.Get(ctx, key); err == nil {
		if lat, lng, ok := parsePoint(v); ok {
			return lat, lng, nil
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("geocode cache read failed")
	}

	lat, lng, err := c.next.Geocode(ctx, address)
	if err != nil {
		return 0, 0, err
	}

	if err := c.store.Set(ctx, key, formatPoint(lat, lng), CacheTTL); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("geocode cache write failed")
	}
	return lat, lng, nil
}

func cacheKey(address string) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.TrimSpace(address))))
	return "geocode:" + hex.EncodeToString(sum[:])
}

func formatPoint(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}

func parsePoint(v string) (float64, float64, bool) {
	latStr, lngStr, ok := strings.Cut(v, ",")
	if !ok {
		return 0, 0, false
	}
	lat, err1 := strconv.ParseFloat(latStr, 64)
	lng, err2 := strconv.ParseFloat(lngStr, 64)
	return lat, lng, err1 == nil && err2 == nil
}
