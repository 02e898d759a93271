package storage

import (
	"context"
	"errors"
	"time"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/model"
)

var ErrNotFound = errors.New("not found in storage")

// MediaType discriminates movie and episodic library entries
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// ParseMediaType maps catalog section/entry type strings onto a MediaType
func ParseMediaType(s string) (MediaType, bool) {
	switch s {
	case "movie":
		return MediaTypeMovie, true
	case "tv", "show":
		return MediaTypeTV, true
	}
	return "", false
}

type RequestStatus string

const (
	RequestStatusPending     RequestStatus = "pending"
	RequestStatusApproved    RequestStatus = "approved"
	RequestStatusDownloading RequestStatus = "downloading"
	RequestStatusAvailable   RequestStatus = "available"
	RequestStatusRejected    RequestStatus = "rejected"
)

// Active reports whether a request still represents outstanding work
func (s RequestStatus) Active() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusDownloading:
		return true
	}
	return false
}

type Storage interface {
	LibraryItemStorage
	EpisodeItemStorage
	RequestStorage
	StatisticsStorage

	// Transaction runs fn against a Storage bound to one transaction.
	// fn returning an error rolls the whole unit back.
	Transaction(ctx context.Context, fn func(Storage) error) error
}

type LibraryItemStorage interface {
	CreateLibraryItem(ctx context.Context, item model.LibraryItem) (int64, error)
	UpdateLibraryItem(ctx context.Context, item model.LibraryItem) error
	DeleteLibraryItem(ctx context.Context, id int64) error
	GetLibraryItem(ctx context.Context, where sqlite.BoolExpression) (*model.LibraryItem, error)
	ListLibraryItems(ctx context.Context, where ...sqlite.BoolExpression) ([]*model.LibraryItem, error)
	ListLibraryItemsByTmdbIDs(ctx context.Context, tmdbIDs []int32, mediaType MediaType) ([]*model.LibraryItem, error)
}

type EpisodeItemStorage interface {
	ReplaceShowEpisodes(ctx context.Context, tmdbID int32, episodes []model.EpisodeItem) error
	ListShowEpisodes(ctx context.Context, tmdbID int32) ([]*model.EpisodeItem, error)
	DeleteShowEpisodes(ctx context.Context, tmdbID int32) error
}

type RequestStorage interface {
	CreateRequest(ctx context.Context, request model.Request) (int64, error)
	ListRequests(ctx context.Context, where ...sqlite.BoolExpression) ([]*model.Request, error)
	ListRequestsByTmdbIDs(ctx context.Context, tmdbIDs []int32, mediaType MediaType) ([]*model.Request, error)
	UpdateRequestStatus(ctx context.Context, id int64, status RequestStatus) error
	DeleteRequest(ctx context.Context, id int64) error
}

// LibraryStats are aggregate mirror counts for the stats endpoint
type LibraryStats struct {
	TotalItems   int        `json:"totalItems"`
	Movies       int        `json:"movies"`
	Shows        int        `json:"shows"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
}

type StatisticsStorage interface {
	GetLibraryStats(ctx context.Context) (*LibraryStats, error)
}
