package manager

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kasuboski/mirra/pkg/logger"
	"github.com/kasuboski/mirra/pkg/tmdb"
)

// CompletionResult reports how much of a show the mirror holds against
// what has plausibly aired
type CompletionResult struct {
	IsComplete            bool    `json:"isComplete"`
	AvailableSeasons      int     `json:"availableSeasons"`
	AvailableEpisodes     int     `json:"availableEpisodes"`
	AiredEpisodesExpected int     `json:"airedEpisodesExpected"`
	CompletionPercentage  float64 `json:"completionPercentage"`
}

const airDateFormat = time.DateOnly

// EvaluateShowCompletion compares the mirrored episodes of a show to the
// episodes expected to have aired. Metadata provider failures under-report:
// the show is treated as incomplete rather than guessed complete.
func (m MediaManager) EvaluateShowCompletion(ctx context.Context, tmdbID int32) (*CompletionResult, error) {
	log := logger.FromCtx(ctx)

	episodes, err := m.storage.ListShowEpisodes(ctx, tmdbID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mirrored episodes: %w", err)
	}

	seasons := make(map[int32]struct{})
	counted := make(map[[2]int32]struct{})
	available := 0
	for _, e := range episodes {
		seasons[e.SeasonNumber] = struct{}{}
		// marker rows carry no episode number and never count
		if e.EpisodeNumber == nil {
			continue
		}
		key := [2]int32{e.SeasonNumber, *e.EpisodeNumber}
		if _, ok := counted[key]; ok {
			continue
		}
		counted[key] = struct{}{}
		available++
	}

	result := &CompletionResult{
		AvailableSeasons:  len(seasons),
		AvailableEpisodes: available,
	}

	series, err := m.seriesDetails(ctx, tmdbID)
	if err != nil {
		log.Warnw("series details unavailable, under-reporting completion", "tmdbID", tmdbID, "error", err)
		return result, nil
	}

	now := time.Now().UTC()
	expected := 0
	for _, season := range series.Seasons {
		if season.SeasonNumber <= 0 {
			continue
		}
		expected += m.airedEpisodesInSeason(ctx, tmdbID, season, now)
	}

	// a mirrored show with nothing expected to have aired yet is complete,
	// not partial; only an empty mirror can never be complete
	result.AiredEpisodesExpected = expected
	result.IsComplete = result.AvailableSeasons > 0 && available >= expected
	switch {
	case expected > 0:
		result.CompletionPercentage = min(float64(available)/float64(expected)*100, 100)
	case result.IsComplete:
		result.CompletionPercentage = 100
	}

	return result, nil
}

// airedEpisodesInSeason counts the episodes of one season expected to have
// aired by now, preferring per-episode air dates over estimates
func (m MediaManager) airedEpisodesInSeason(ctx context.Context, tmdbID int32, season tmdb.SeasonSummary, now time.Time) int {
	log := logger.FromCtx(ctx)

	details, err := m.seasonDetails(ctx, tmdbID, season.SeasonNumber)
	if err != nil {
		log.Warnw("season details unavailable, estimating", "tmdbID", tmdbID, "season", season.SeasonNumber, "error", err)
		return estimateAiredEpisodes(season, now)
	}

	dated := 0
	aired := 0
	for _, e := range details.Episodes {
		airDate, err := time.Parse(airDateFormat, e.AirDate)
		if err != nil {
			continue
		}
		dated++
		if !airDate.After(now) {
			aired++
		}
	}

	if dated > 0 {
		return aired
	}

	return estimateAiredEpisodes(season, now)
}

// estimateAiredEpisodes is the fallback when no episode carries an air
// date: assume weekly cadence from the season premiere, and when even the
// season has no date, assume half of it has aired.
func estimateAiredEpisodes(season tmdb.SeasonSummary, now time.Time) int {
	count := int(season.EpisodeCount)
	if count <= 0 {
		return 0
	}

	premiere, err := time.Parse(airDateFormat, season.AirDate)
	if err != nil {
		return (count + 1) / 2
	}
	if premiere.After(now) {
		return 0
	}

	weeks := int(now.Sub(premiere)/(7*24*time.Hour)) + 1
	return min(weeks, count)
}

func (m MediaManager) seriesDetails(ctx context.Context, tmdbID int32) (*tmdb.SeriesDetails, error) {
	key := fmt.Sprintf("series/%d", tmdbID)
	if cached, ok := m.details.Get(key); ok {
		return cached.(*tmdb.SeriesDetails), nil
	}

	details, err := m.tmdb.GetSeriesDetails(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	m.details.Set(key, details, gocache.DefaultExpiration)
	return details, nil
}

func (m MediaManager) seasonDetails(ctx context.Context, tmdbID, seasonNumber int32) (*tmdb.SeasonDetails, error) {
	key := fmt.Sprintf("series/%d/season/%d", tmdbID, seasonNumber)
	if cached, ok := m.details.Get(key); ok {
		return cached.(*tmdb.SeasonDetails), nil
	}

	details, err := m.tmdb.GetSeasonDetails(ctx, tmdbID, seasonNumber)
	if err != nil {
		return nil, err
	}

	m.details.Set(key, details, gocache.DefaultExpiration)
	return details, nil
}
