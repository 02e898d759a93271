package manager

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/kasuboski/mirra/pkg/logger"
	"github.com/kasuboski/mirra/pkg/plex"
	"github.com/kasuboski/mirra/pkg/storage"
	"github.com/kasuboski/mirra/pkg/tmdb"
)

// ErrNoMatch means an entry could not be tied to a canonical id. Sync
// treats it as a per-entry skip, never a pass failure.
var ErrNoMatch = errors.New("no canonical match for entry")

const defaultFuzzyMaxDistance = 2

// guid hints that carry the canonical id directly
const (
	guidPrefixTmdb        = "tmdb://"
	guidPrefixLegacyMovie = "com.plexapp.agents.themoviedb://"
)

// MatchEntry resolves a catalog entry to its canonical id. The second
// return reports whether the match came from the fuzzy title fallback.
func (m MediaManager) MatchEntry(ctx context.Context, entry plex.Entry) (int32, bool, error) {
	log := logger.FromCtx(ctx)

	if id, ok := guidHint(entry.GUIDs); ok {
		return id, false, nil
	}

	mediaType, ok := storage.ParseMediaType(entry.MediaType)
	if !ok {
		return 0, false, fmt.Errorf("%w: unknown media type %q", ErrNoMatch, entry.MediaType)
	}

	results, err := m.search(ctx, mediaType, entry.Title)
	if err != nil {
		return 0, false, fmt.Errorf("title search failed: %w", err)
	}

	wanted := normalizeTitle(entry.Title)
	for _, r := range results {
		if normalizeTitle(r.Title) == wanted && entry.Year != 0 && r.Year == entry.Year {
			return r.ID, false, nil
		}
	}

	// relax to title-only and take the closest candidate
	maxDistance := m.config.FuzzyMaxDistance
	if maxDistance <= 0 {
		maxDistance = defaultFuzzyMaxDistance
	}

	best := -1
	bestDistance := maxDistance + 1
	for i, r := range results {
		d := levenshtein.ComputeDistance(wanted, normalizeTitle(r.Title))
		if d < bestDistance {
			best = i
			bestDistance = d
		}
	}

	if best >= 0 {
		log.Warnw("fuzzy_match", "title", entry.Title, "matchedTitle", results[best].Title, "tmdbID", results[best].ID, "distance", bestDistance)
		return results[best].ID, true, nil
	}

	return 0, false, fmt.Errorf("%w: %q (%s, %d)", ErrNoMatch, entry.Title, entry.MediaType, entry.Year)
}

func (m MediaManager) search(ctx context.Context, mediaType storage.MediaType, title string) ([]tmdb.SearchResult, error) {
	if mediaType == storage.MediaTypeMovie {
		return m.tmdb.SearchMovie(ctx, title)
	}
	return m.tmdb.SearchTv(ctx, title)
}

// guidHint extracts a canonical id from the entry's guid list when one of
// the known schemes carries it
func guidHint(guids []string) (int32, bool) {
	for _, g := range guids {
		var raw string
		switch {
		case strings.HasPrefix(g, guidPrefixTmdb):
			raw = strings.TrimPrefix(g, guidPrefixTmdb)
		case strings.HasPrefix(g, guidPrefixLegacyMovie):
			raw = strings.TrimPrefix(g, guidPrefixLegacyMovie)
		default:
			continue
		}

		// legacy guids carry a query suffix like ?lang=en
		if i := strings.IndexByte(raw, '?'); i >= 0 {
			raw = raw[:i]
		}

		id, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || id <= 0 {
			continue
		}
		return int32(id), true
	}
	return 0, false
}

// normalizeTitle case-folds and collapses whitespace. A Caser is stateful,
// so each call gets its own.
func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(cases.Fold().String(title)), " ")
}
