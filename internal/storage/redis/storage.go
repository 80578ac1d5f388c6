package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NachoToast/SpotifyQuiz/internal/model"
	"github.com/NachoToast/SpotifyQuiz/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveResolvedPlaylist(ctx context.Context, playlist *model.ResolvedPlaylist) error {
	data, err := json.Marshal(playlist)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, playlistKey(playlist.PlaylistID), data, s.cfg.PlaylistTTL).Err()
}

func (s *Storage) GetResolvedPlaylist(ctx context.Context, playlistID string) (*model.ResolvedPlaylist, error) {
	data, err := s.client.Get(ctx, playlistKey(playlistID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlaylistNotCached
		}
		return nil, err
	}

	var playlist model.ResolvedPlaylist
	if err := json.Unmarshal(data, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (s *Storage) DeleteResolvedPlaylist(ctx context.Context, playlistID string) error {
	return s.client.Del(ctx, playlistKey(playlistID)).Err()
}
