package fpl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ErrRosterNotFound marks an unknown manager id. Callers treat it as
// "un-personalized mode", not as a fetch failure.
var ErrRosterNotFound = errors.New("fpl: roster not found")

// CacheProvider is the subset of the cache service the client needs.
type CacheProvider interface {
	GetSimple(key string, dest interface{}) error
	SetSimple(key string, value interface{}, expiration time.Duration) error
}

// Client talks to the public FPL API with caching, rate limiting and a
// circuit breaker around every call.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	cache        CacheProvider
	logger       *logrus.Logger
	breaker      *gobreaker.CircuitBreaker
	limiter      *rate.Limiter
	bootstrapTTL time.Duration
	fixturesTTL  time.Duration
}

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
	BootstrapTTL   time.Duration
	FixturesTTL    time.Duration
}

// NewClient creates a new FPL API client.
func NewClient(cfg ClientConfig, cache CacheProvider, logger *logrus.Logger) *Client {
	settings := gobreaker.Settings{
		Name:    "fpl-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			// An unknown manager is a valid answer, not an upstream fault.
			return err == nil || errors.Is(err, ErrRosterNotFound)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 2
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		cache:        cache,
		logger:       logger,
		breaker:      gobreaker.NewCircuitBreaker(settings),
		limiter:      rate.NewLimiter(rate.Limit(rps), 1),
		bootstrapTTL: cfg.BootstrapTTL,
		fixturesTTL:  cfg.FixturesTTL,
	}
}

// GetBootstrap returns the bootstrap-static payload (players, teams, events).
func (c *Client) GetBootstrap(ctx context.Context) (*Bootstrap, error) {
	const cacheKey = "fpl:bootstrap"

	var cached Bootstrap
	if c.cache != nil {
		if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var bootstrap Bootstrap
	if err := c.getJSON(ctx, "/bootstrap-static/", &bootstrap); err != nil {
		return nil, fmt.Errorf("failed to fetch bootstrap: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.SetSimple(cacheKey, bootstrap, c.bootstrapTTL); err != nil {
			c.logger.Warnf("Failed to cache bootstrap: %v", err)
		}
	}

	return &bootstrap, nil
}

// GetFixtures returns every scheduled match for the season.
func (c *Client) GetFixtures(ctx context.Context) ([]Fixture, error) {
	const cacheKey = "fpl:fixtures"

	var cached []Fixture
	if c.cache != nil {
		if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	var fixtures []Fixture
	if err := c.getJSON(ctx, "/fixtures/", &fixtures); err != nil {
		return nil, fmt.Errorf("failed to fetch fixtures: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.SetSimple(cacheKey, fixtures, c.fixturesTTL); err != nil {
			c.logger.Warnf("Failed to cache fixtures: %v", err)
		}
	}

	return fixtures, nil
}

// GetManagerPicks returns a manager's roster for a gameweek. Unknown manager
// ids map to ErrRosterNotFound.
func (c *Client) GetManagerPicks(ctx context.Context, managerID, gameweek int) (*ManagerPicks, error) {
	var picks ManagerPicks
	path := fmt.Sprintf("/entry/%d/event/%d/picks/", managerID, gameweek)
	if err := c.getJSON(ctx, path, &picks); err != nil {
		if errors.Is(err, ErrRosterNotFound) {
			return nil, ErrRosterNotFound
		}
		return nil, fmt.Errorf("failed to fetch manager picks: %w", err)
	}
	return &picks, nil
}

// CurrentGameweek resolves the live gameweek from bootstrap-static.
func (c *Client) CurrentGameweek(ctx context.Context) (int, error) {
	bootstrap, err := c.GetBootstrap(ctx)
	if err != nil {
		return 0, err
	}
	return bootstrap.CurrentEvent(), nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doGet(ctx, path)
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body.([]byte), dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"component": "fpl_client",
		"path":      path,
		"status":    resp.StatusCode,
		"duration":  time.Since(start).String(),
	}).Debug("FPL API request")

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrRosterNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("FPL API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
