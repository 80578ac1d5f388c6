package memory

import (
	"context"
	"sync"
	"time"

	"github.com/NachoToast/SpotifyQuiz/internal/dependencies/clock"
	"github.com/NachoToast/SpotifyQuiz/internal/model"
	"github.com/NachoToast/SpotifyQuiz/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. Entries
// expire lazily; expiry is checked on read against the injected clock.
type Storage struct {
	mu sync.RWMutex

	clock     clock.Clock
	ttl       time.Duration
	playlists map[string]entry
}

type entry struct {
	playlist  *model.ResolvedPlaylist
	expiresAt time.Time
}

// New creates a new in-memory storage instance. A ttl of zero means entries
// never expire.
func New(clk clock.Clock, ttl time.Duration) *Storage {
	return &Storage{
		clock:     clk,
		ttl:       ttl,
		playlists: make(map[string]entry),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveResolvedPlaylist(ctx context.Context, playlist *model.ResolvedPlaylist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{playlist: playlist}
	if s.ttl > 0 {
		e.expiresAt = s.clock.Now().Add(s.ttl)
	}
	s.playlists[playlist.PlaylistID] = e
	return nil
}

func (s *Storage) GetResolvedPlaylist(ctx context.Context, playlistID string) (*model.ResolvedPlaylist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.playlists[playlistID]
	if !ok {
		return nil, model.ErrPlaylistNotCached
	}
	if !e.expiresAt.IsZero() && !s.clock.Now().Before(e.expiresAt) {
		return nil, model.ErrPlaylistNotCached
	}
	return e.playlist, nil
}

func (s *Storage) DeleteResolvedPlaylist(ctx context.Context, playlistID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.playlists, playlistID)
	return nil
}
