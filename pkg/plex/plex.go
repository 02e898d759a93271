package plex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	mhttp "github.com/kasuboski/mirra/pkg/http"
)

// Client talks to a Plex media server over its JSON API
type Client struct {
	baseURL string
	token   string
	client  mhttp.HTTPClient
}

type ClientOption func(*Client)

// WithHTTPClient overrides the underlying http client, mostly for tests
func WithHTTPClient(client mhttp.HTTPClient) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// New creates a media server client for the given base url and token
func New(baseURL, token string, opts ...ClientOption) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid media server url: %w", err)
	}

	c := &Client{
		baseURL: baseURL,
		token:   token,
		client:  mhttp.NewRateLimitedHTTPClient(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// raw payload shapes; the server wraps everything in a MediaContainer
type mediaContainerResponse struct {
	MediaContainer mediaContainer `json:"MediaContainer"`
}

type mediaContainer struct {
	Directory []directoryPayload `json:"Directory"`
	Metadata  []metadataPayload  `json:"Metadata"`
}

type directoryPayload struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

type metadataPayload struct {
	RatingKey   string        `json:"ratingKey"`
	Title       string        `json:"title"`
	Year        int32         `json:"year"`
	Type        string        `json:"type"`
	GUID        string        `json:"guid"`
	GUIDs       []guidPayload `json:"Guid"`
	ParentIndex int32         `json:"parentIndex"`
	Index       int32         `json:"index"`
	AddedAt     int64         `json:"addedAt"`
}

type guidPayload struct {
	ID string `json:"id"`
}

// ListSections lists the library sections configured on the server
func (c *Client) ListSections(ctx context.Context) ([]Section, error) {
	container, err := c.get(ctx, "/library/sections")
	if err != nil {
		return nil, err
	}

	sections := make([]Section, 0, len(container.Directory))
	for _, d := range container.Directory {
		sections = append(sections, Section{
			Key:   d.Key,
			Type:  d.Type,
			Title: d.Title,
		})
	}

	return sections, nil
}

// ListSectionEntries lists all top-level items of a section
func (c *Client) ListSectionEntries(ctx context.Context, sectionKey string) ([]Entry, error) {
	container, err := c.get(ctx, fmt.Sprintf("/library/sections/%s/all", url.PathEscape(sectionKey)))
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(container.Metadata))
	for _, m := range container.Metadata {
		entries = append(entries, Entry{
			ExternalKey: m.RatingKey,
			Title:       m.Title,
			Year:        m.Year,
			MediaType:   m.Type,
			GUIDs:       collectGUIDs(m),
			AddedAt:     unixTime(m.AddedAt),
		})
	}

	return entries, nil
}

// ListShowLeaves lists every episode of a show across all seasons
func (c *Client) ListShowLeaves(ctx context.Context, externalKey string) ([]Leaf, error) {
	container, err := c.get(ctx, fmt.Sprintf("/library/metadata/%s/allLeaves", url.PathEscape(externalKey)))
	if err != nil {
		return nil, err
	}

	leaves := make([]Leaf, 0, len(container.Metadata))
	for _, m := range container.Metadata {
		leaves = append(leaves, Leaf{
			ExternalKey:   m.RatingKey,
			Title:         m.Title,
			SeasonNumber:  m.ParentIndex,
			EpisodeNumber: m.Index,
			AddedAt:       unixTime(m.AddedAt),
		})
	}

	return leaves, nil
}

func (c *Client) get(ctx context.Context, path string) (*mediaContainer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Token", c.token)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrUnreachable, res.Status)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	response := new(mediaContainerResponse)
	if err := json.Unmarshal(b, response); err != nil {
		return nil, fmt.Errorf("failed to parse media server response: %w", err)
	}

	return &response.MediaContainer, nil
}

func collectGUIDs(m metadataPayload) []string {
	guids := make([]string, 0, len(m.GUIDs)+1)
	for _, g := range m.GUIDs {
		guids = append(guids, g.ID)
	}
	// legacy agent guid lives on the item itself
	if m.GUID != "" {
		guids = append(guids, m.GUID)
	}
	return guids
}

func unixTime(seconds int64) *time.Time {
	if seconds == 0 {
		return nil
	}
	t := time.Unix(seconds, 0).UTC()
	return &t
}
