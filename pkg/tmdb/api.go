package tmdb

import (
	"context"
	"errors"
)

// ErrUnavailable marks metadata provider failures. Callers under-report
// availability rather than guessing when they see this.
var ErrUnavailable = errors.New("metadata provider unavailable")

// SearchResult is one candidate from a free-text title search
type SearchResult struct {
	ID        int32  `json:"id"`
	Title     string `json:"title"`
	Year      int32  `json:"year"`
	MediaType string `json:"mediaType"`
}

// SeasonSummary is a season as listed on the series detail
type SeasonSummary struct {
	SeasonNumber int32  `json:"season_number"`
	EpisodeCount int32  `json:"episode_count"`
	AirDate      string `json:"air_date"`
}

// SeriesDetails is the canonical shape of a show
type SeriesDetails struct {
	ID               int32           `json:"id"`
	Status           string          `json:"status"`
	NumberOfSeasons  int32           `json:"number_of_seasons"`
	NumberOfEpisodes int32           `json:"number_of_episodes"`
	Seasons          []SeasonSummary `json:"seasons"`
}

// EpisodeSummary is an episode as listed on a season detail
type EpisodeSummary struct {
	EpisodeNumber int32  `json:"episode_number"`
	AirDate       string `json:"air_date"`
}

// SeasonDetails is a single season with its episodes
type SeasonDetails struct {
	SeasonNumber int32            `json:"season_number"`
	AirDate      string           `json:"air_date"`
	Episodes     []EpisodeSummary `json:"episodes"`
}

// ITmdb is the metadata provider boundary consumed by the identity matcher
// and the completion evaluator
type ITmdb interface {
	SearchMovie(ctx context.Context, query string) ([]SearchResult, error)
	SearchTv(ctx context.Context, query string) ([]SearchResult, error)
	GetSeriesDetails(ctx context.Context, seriesID int32) (*SeriesDetails, error)
	GetSeasonDetails(ctx context.Context, seriesID, seasonNumber int32) (*SeasonDetails, error)
}
