package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srirupaul05/foodbridge/internal/app/config"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
	"github.com/srirupaul05/foodbridge/internal/usecase"
)

const cacheKeyPrefix = "geocode:"

// NominatimGeocoder resolves free-text addresses against an OSM Nominatim
// endpoint. Results are cached in redis because Nominatim rate-limits
// aggressively and pickup addresses repeat. A miss returns (nil, nil): the
// address simply cannot be plotted.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
	redis     *redis.Client
	cacheTTL  time.Duration
	logger    logger.Logger
}

func NewNominatimGeocoder(cfg config.GeocoderConfig, redisClient *redis.Client, log logger.Logger) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
		redis:     redisClient,
		cacheTTL:  cfg.CacheTTL,
		logger:    log,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (*usecase.GeoPoint, error) {
	if address == "" {
		return nil, nil
	}

	if point, ok := g.fromCache(ctx, address); ok {
		return point, nil
	}

	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", g.baseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("nominatim decode: %w", err)
	}
	if len(results) == 0 {
		g.toCache(ctx, address, nil)
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		return nil, fmt.Errorf("nominatim returned unparseable coordinates")
	}

	point := &usecase.GeoPoint{Lat: lat, Lng: lng}
	g.toCache(ctx, address, point)
	return point, nil
}

// cachedPoint distinguishes "address known to be unplottable" from a cache
// miss.
type cachedPoint struct {
	Found bool             `json:"found"`
	Point *usecase.GeoPoint `json:"point,omitempty"`
}

func (g *NominatimGeocoder) fromCache(ctx context.Context, address string) (*usecase.GeoPoint, bool) {
	if g.redis == nil {
		return nil, false
	}
	data, err := g.redis.Get(ctx, cacheKeyPrefix+address).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			g.logger.Warnf("geocode cache read failed: %v", err)
		}
		return nil, false
	}

	var cached cachedPoint
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false
	}
	if !cached.Found {
		return nil, true
	}
	return cached.Point, true
}

func (g *NominatimGeocoder) toCache(ctx context.Context, address string, point *usecase.GeoPoint) {
	if g.redis == nil {
		return
	}
	data, err := json.Marshal(cachedPoint{Found: point != nil, Point: point})
	if err != nil {
		return
	}
	if err := g.redis.Set(ctx, cacheKeyPrefix+address, data, g.cacheTTL).Err(); err != nil {
		g.logger.Warnf("geocode cache write failed: %v", err)
	}
}
