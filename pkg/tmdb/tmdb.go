package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	mhttp "github.com/kasuboski/mirra/pkg/http"
)

// Client talks to the metadata provider's v3 REST API
type Client struct {
	baseURL     string
	apiKey      string
	client      mhttp.HTTPClient
	baseBackoff time.Duration
	maxRetries  uint64
}

type ClientOption func(*Client)

// WithHTTPClient overrides the underlying http client, mostly for tests
func WithHTTPClient(client mhttp.HTTPClient) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithRetry tunes the transient-failure retry policy
func WithRetry(baseBackoff time.Duration, maxRetries int) ClientOption {
	return func(c *Client) {
		if baseBackoff > 0 {
			c.baseBackoff = baseBackoff
		}
		if maxRetries >= 0 {
			c.maxRetries = uint64(maxRetries)
		}
	}
}

// New creates a metadata provider client for the given base url and api key
func New(baseURL, apiKey string, opts ...ClientOption) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid metadata provider url: %w", err)
	}

	c := &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		client:      mhttp.NewRateLimitedHTTPClient(),
		baseBackoff: mhttp.DefaultBaseBackoff,
		maxRetries:  mhttp.DefaultMaxRetries,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// raw payload shapes; movie and tv searches share a results envelope but
// name their fields differently
type searchResponse struct {
	Results []searchPayload `json:"results"`
}

type searchPayload struct {
	ID           int32  `json:"id"`
	Title        string `json:"title"`
	Name         string `json:"name"`
	ReleaseDate  string `json:"release_date"`
	FirstAirDate string `json:"first_air_date"`
}

// SearchMovie searches movies by title
func (c *Client) SearchMovie(ctx context.Context, query string) ([]SearchResult, error) {
	var payload searchResponse
	if err := c.get(ctx, "/3/search/movie", url.Values{"query": []string{query}}, &payload); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(payload.Results))
	for _, r := range payload.Results {
		results = append(results, SearchResult{
			ID:        r.ID,
			Title:     r.Title,
			Year:      yearOf(r.ReleaseDate),
			MediaType: "movie",
		})
	}

	return results, nil
}

// SearchTv searches shows by title
func (c *Client) SearchTv(ctx context.Context, query string) ([]SearchResult, error) {
	var payload searchResponse
	if err := c.get(ctx, "/3/search/tv", url.Values{"query": []string{query}}, &payload); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(payload.Results))
	for _, r := range payload.Results {
		results = append(results, SearchResult{
			ID:        r.ID,
			Title:     r.Name,
			Year:      yearOf(r.FirstAirDate),
			MediaType: "tv",
		})
	}

	return results, nil
}

// GetSeriesDetails fetches the season layout and status of a show
func (c *Client) GetSeriesDetails(ctx context.Context, seriesID int32) (*SeriesDetails, error) {
	details := new(SeriesDetails)
	if err := c.get(ctx, fmt.Sprintf("/3/tv/%d", seriesID), nil, details); err != nil {
		return nil, err
	}
	return details, nil
}

// GetSeasonDetails fetches the episode list of a single season
func (c *Client) GetSeasonDetails(ctx context.Context, seriesID, seasonNumber int32) (*SeasonDetails, error) {
	details := new(SeasonDetails)
	if err := c.get(ctx, fmt.Sprintf("/3/tv/%d/season/%d", seriesID, seasonNumber), nil, details); err != nil {
		return nil, err
	}
	return details, nil
}

// get issues the request, retrying transient failures with exponential
// backoff. Client errors from the provider are permanent.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid metadata provider url: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	u.RawQuery = query.Encode()

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		res, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		defer res.Body.Close()

		if res.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: unexpected status %s", ErrUnavailable, res.Status)
		}
		if res.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("%w: unexpected status %s", ErrUnavailable, res.Status))
		}

		b, err := io.ReadAll(res.Body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		if err := json.Unmarshal(b, out); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to parse metadata provider response: %w", err))
		}

		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.baseBackoff

	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx))
}

func yearOf(date string) int32 {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return int32(year)
}
