package plex

import (
	"context"
	"errors"
	"time"
)

// ErrUnreachable marks connectivity failures to the media server. A sync pass
// aborts outright when it sees this rather than treating the whole library as
// removed.
var ErrUnreachable = errors.New("media server unreachable")

// Section is a single library section on the media server
type Section struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// Entry is one top-level item in a section: a movie or a show
type Entry struct {
	ExternalKey string     `json:"ratingKey"`
	Title       string     `json:"title"`
	Year        int32      `json:"year"`
	MediaType   string     `json:"type"`
	GUIDs       []string   `json:"guids"`
	AddedAt     *time.Time `json:"addedAt"`
}

// Leaf is an episode of a show
type Leaf struct {
	ExternalKey   string     `json:"ratingKey"`
	Title         string     `json:"title"`
	SeasonNumber  int32      `json:"seasonNumber"`
	EpisodeNumber int32      `json:"episodeNumber"`
	AddedAt       *time.Time `json:"addedAt"`
}

// IPlex is the catalog connector boundary consumed by the sync engine
type IPlex interface {
	ListSections(ctx context.Context) ([]Section, error)
	ListSectionEntries(ctx context.Context, sectionKey string) ([]Entry, error)
	ListShowLeaves(ctx context.Context, externalKey string) ([]Leaf, error)
}
