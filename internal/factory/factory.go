package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/NachoToast/SpotifyQuiz/internal/dependencies/clock"
	"github.com/NachoToast/SpotifyQuiz/internal/dependencies/random"
	"github.com/NachoToast/SpotifyQuiz/internal/model"
	"github.com/NachoToast/SpotifyQuiz/internal/services/registry"
	"github.com/NachoToast/SpotifyQuiz/internal/services/resolver"
	"github.com/NachoToast/SpotifyQuiz/internal/services/session"
	"github.com/NachoToast/SpotifyQuiz/internal/spotify"
	"github.com/NachoToast/SpotifyQuiz/internal/storage"
	"github.com/NachoToast/SpotifyQuiz/internal/storage/memory"
	redisstorage "github.com/NachoToast/SpotifyQuiz/internal/storage/redis"
	"github.com/NachoToast/SpotifyQuiz/internal/transport"
	"github.com/NachoToast/SpotifyQuiz/internal/youtube"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// defaultPlaylistTTL bounds the in-memory resolved-playlist cache
const defaultPlaylistTTL = 24 * time.Hour

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Vendor clients
	Spotify *spotify.Client
	YouTube *youtube.Client

	// Services
	Resolver *resolver.Service
	Registry *registry.Registry
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the playlist cache backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SpotifyBaseURL overrides the Spotify API root (for tests)
	SpotifyBaseURL string
	// YouTubeBaseURL overrides the YouTube API root (for tests)
	YouTubeBaseURL string
	// YouTubeAPIKey authenticates video searches
	YouTubeAPIKey string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()
	rnd := random.New()

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var store storage.Storage
	switch storageType {
	case StorageTypeMemory:
		store = memory.New(clk, defaultPlaylistTTL)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	spotifyClient := spotify.NewClient(cfg.SpotifyBaseURL)
	youtubeClient := youtube.NewClient(cfg.YouTubeBaseURL, cfg.YouTubeAPIKey)

	return newWithDependencies(store, spotifyClient, youtubeClient, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	spotifyClient *spotify.Client,
	youtubeClient *youtube.Client,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *App {
	resolverService := resolver.New(store, spotifyClient, youtubeClient, clk, rnd, logger)

	rooms := func(code model.GameCode) session.Room {
		return transport.NewHub(code, logger)
	}
	reg := registry.New(rooms, resolverService, clk, rnd, logger)

	return &App{
		Storage:  store,
		Clock:    clk,
		Random:   rnd,
		Spotify:  spotifyClient,
		YouTube:  youtubeClient,
		Resolver: resolverService,
		Registry: reg,
	}
}
