package storage

import (
	"context"

	"github.com/NachoToast/SpotifyQuiz/internal/model"
)

// Storage caches resolved playlists so repeat selections of the same playlist
// skip the Spotify and YouTube round trips
type Storage interface {
	// SaveResolvedPlaylist stores the resolution result keyed by playlist ID
	SaveResolvedPlaylist(ctx context.Context, playlist *model.ResolvedPlaylist) error

	// GetResolvedPlaylist returns the cached resolution for a playlist, or
	// model.ErrPlaylistNotCached if absent or expired
	GetResolvedPlaylist(ctx context.Context, playlistID string) (*model.ResolvedPlaylist, error)

	// DeleteResolvedPlaylist evicts a cached resolution
	DeleteResolvedPlaylist(ctx context.Context, playlistID string) error
}
