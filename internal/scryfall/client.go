package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	_ "image/jpeg"
	_ "image/png"
)

const (
	defaultBaseURL   = "https://api.scryfall.com"
	defaultUserAgent = "deckproof/1.0"

	// Scryfall asks for at most 10 requests per second.
	defaultRateLimitDelay = 100 * time.Millisecond
	defaultMaxInFlight    = 10
)

// Config configures the catalog client.
type Config struct {
	// BaseURL is the catalog API base URL. Defaults to the Scryfall API.
	BaseURL string

	// UserAgent is sent with every request.
	UserAgent string

	// RateLimitDelay is the minimum delay paid per request.
	RateLimitDelay time.Duration

	// MaxInFlight caps simultaneous in-flight requests.
	MaxInFlight int

	// Cache, when set, memoizes card lookups by name.
	Cache *Cache

	// Logger for debug logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a rate-limited Scryfall API client. Request deadlines are owned
// by the caller: pass a context with a timeout to bound a call.
type Client struct {
	httpClient *http.Client
	pacer      *pacer
	baseURL    string
	userAgent  string
	cache      *Cache
	logger     *slog.Logger
}

// NewClient creates a new catalog client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = &Config{}
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	if config.RateLimitDelay == 0 {
		config.RateLimitDelay = defaultRateLimitDelay
	}
	if config.MaxInFlight == 0 {
		config.MaxInFlight = defaultMaxInFlight
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Client{
		httpClient: &http.Client{},
		pacer:      newPacer(config.MaxInFlight, config.RateLimitDelay),
		baseURL:    config.BaseURL,
		userAgent:  config.UserAgent,
		cache:      config.Cache,
		logger:     config.Logger,
	}
}

// GetCardByName retrieves a card by fuzzy name match. This is the standard
// lookup: the catalog resolves minor spelling variation to the closest card.
func (c *Client) GetCardByName(ctx context.Context, name string) (*Card, error) {
	return c.getNamed(ctx, name, "fuzzy")
}

// GetCardByExactName retrieves a card by exact name match.
func (c *Client) GetCardByExactName(ctx context.Context, name string) (*Card, error) {
	return c.getNamed(ctx, name, "exact")
}

func (c *Client) getNamed(ctx context.Context, name, mode string) (*Card, error) {
	if c.cache != nil {
		if card := c.cache.Get(name); card != nil {
			c.logger.Debug("card cache hit", "name", name)
			return card, nil
		}
	}

	reqURL := fmt.Sprintf("%s/cards/named?%s=%s", c.baseURL, mode, url.QueryEscape(name))

	var card Card
	if err := c.doRequest(ctx, reqURL, &card); err != nil {
		if IsNotFound(err) {
			return nil, &NotFoundError{Name: name}
		}
		return nil, fmt.Errorf("failed to get card %q: %w", name, err)
	}

	if c.cache != nil {
		c.cache.Put(name, &card)
	}
	return &card, nil
}

// GetImage fetches and decodes a card image. The pacer applies to image
// downloads as well.
func (c *Client) GetImage(ctx context.Context, imageURL string) (image.Image, error) {
	if err := c.pacer.acquire(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}
	defer c.pacer.release()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image request failed with status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// doRequest performs a single rate-limited GET. Failed fetches are final:
// no retries are attempted.
func (c *Client) doRequest(ctx context.Context, reqURL string, result interface{}) error {
	if err := c.pacer.acquire(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}
	defer c.pacer.release()

	c.logger.Debug("catalog request", "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to parse JSON response: %w", err)
		}
		return nil

	case http.StatusNotFound:
		return &NotFoundError{URL: reqURL}

	default:
		body, _ := io.ReadAll(resp.Body)

		var apiErr APIError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Details != "" {
			return &apiErr
		}
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}
}
