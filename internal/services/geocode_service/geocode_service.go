package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"spotguide/internal/domain/models"
	"spotguide/internal/lib/logger/sl"
	"spotguide/internal/metrics"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Coordinates are rounded to this many decimals (about 11 m) before they
// are used as a cache key.
const coordPrecision = 4

var ErrUpstream = errors.New("geocoding upstream unavailable")

type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	CacheTTL  time.Duration
}

type GeocodeService struct {
	log          *slog.Logger
	client       *http.Client
	cfg          Config
	cache        *cache.Cache
	inflight     singleflight.Group
	buildBackOff func() backoff.BackOff
}

type Option func(*GeocodeService)

// WithBackOff sets the retry policy for upstream calls.
func WithBackOff(factory func() backoff.BackOff) Option {
	return func(s *GeocodeService) {
		s.buildBackOff = factory
	}
}

func NewGeocodeService(log *slog.Logger, client *http.Client, cfg Config, opts ...Option) *GeocodeService {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	s := &GeocodeService{
		log:          log,
		client:       client,
		cfg:          cfg,
		cache:        cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		buildBackOff: upstreamBackOff,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func upstreamBackOff() backoff.BackOff {
	return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2)
}

// Reverse resolves a coordinate pair to an address. Answers are cached per
// rounded coordinate pair and concurrent misses for one pair share a single
// upstream call.
func (s *GeocodeService) Reverse(ctx context.Context, lat, lon float64) (*models.Address, error) {
	const op = "geocode_service.Reverse"

	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return nil, models.NewValidationError("lat and lon must be finite numbers")
	}
	if lat < -90 || lat > 90 {
		return nil, models.NewValidationError("lat must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return nil, models.NewValidationError("lon must be between -180 and 180")
	}

	key := cacheKey(lat, lon)

	log := s.log.With(
		slog.String("op", op),
		slog.String("key", key),
	)

	if cached, ok := s.cache.Get(key); ok {
		metrics.GeocodeCacheTotal.WithLabelValues("hit").Inc()
		addr := cached.(models.Address)
		return &addr, nil
	}
	metrics.GeocodeCacheTotal.WithLabelValues("miss").Inc()

	ch := s.inflight.DoChan(key, func() (interface{}, error) {
		return s.resolve(ctx, key, lat, lon)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	}
	if res.Err != nil {
		log.Error("reverse geocoding failed", sl.Err(res.Err))
		return nil, fmt.Errorf("%s: %w", op, res.Err)
	}

	log.Debug("address resolved", slog.Bool("shared", res.Shared))

	addr := res.Val.(models.Address)
	return &addr, nil
}

// resolve runs the upstream call shared by every caller waiting on key. It is
// detached from the first caller's cancellation and bounded by the configured
// timeout instead.
func (s *GeocodeService) resolve(ctx context.Context, key string, lat, lon float64) (interface{}, error) {
	ctx = context.WithoutCancel(ctx)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	var addr *models.Address
	err := backoff.Retry(func() error {
		var err error
		addr, err = s.fetch(ctx, lat, lon)
		return err
	}, backoff.WithContext(s.buildBackOff(), ctx))
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, *addr, cache.DefaultExpiration)
	return *addr, nil
}

type nominatimResponse struct {
	DisplayName string            `json:"display_name"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Address     map[string]string `json:"address"`
	Error       string            `json:"error"`
}

// fetch performs one upstream call. Client errors are permanent; server
// errors and transport failures are retried.
func (s *GeocodeService) fetch(ctx context.Context, lat, lon float64) (*models.Address, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/reverse?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode))
	}

	var body nominatimResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: decode: %v", ErrUpstream, err))
	}

	if body.Error != "" {
		return nil, backoff.Permanent(models.NewNotFoundError(body.Error, nil))
	}

	addr := &models.Address{
		DisplayName: body.DisplayName,
		Latitude:    lat,
		Longitude:   lon,
		Details:     body.Address,
	}
	if v, err := strconv.ParseFloat(body.Lat, 64); err == nil {
		addr.Latitude = v
	}
	if v, err := strconv.ParseFloat(body.Lon, 64); err == nil {
		addr.Longitude = v
	}

	return addr, nil
}

func cacheKey(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', coordPrecision, 64) + "," + strconv.FormatFloat(lon, 'f', coordPrecision, 64)
}
