package manager

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kasuboski/mirra/config"
	"github.com/kasuboski/mirra/pkg/plex"
	"github.com/kasuboski/mirra/pkg/storage"
	"github.com/kasuboski/mirra/pkg/tmdb"
)

const defaultDetailCacheTTL = 15 * time.Minute

// MediaManager reconciles the media server catalog against canonical
// metadata and the request store
type MediaManager struct {
	plex    plex.IPlex
	tmdb    tmdb.ITmdb
	storage storage.Storage
	config  config.Sync
	details *gocache.Cache
}

func New(p plex.IPlex, t tmdb.ITmdb, s storage.Storage, cfg config.Sync) MediaManager {
	ttl := cfg.DetailCacheTTL
	if ttl <= 0 {
		ttl = defaultDetailCacheTTL
	}

	return MediaManager{
		plex:    p,
		tmdb:    t,
		storage: s,
		config:  cfg,
		details: gocache.New(ttl, 2*ttl),
	}
}
