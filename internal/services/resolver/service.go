package resolver

import (
	"context"
	"log/slog"

	"github.com/NachoToast/SpotifyQuiz/internal/dependencies/clock"
	"github.com/NachoToast/SpotifyQuiz/internal/dependencies/random"
	"github.com/NachoToast/SpotifyQuiz/internal/model"
	"github.com/NachoToast/SpotifyQuiz/internal/storage"
)

// MinPlaylistTracks is the smallest playlist a game can be played with
const MinPlaylistTracks = 3

// PlaylistSource fetches playlist track metadata
type PlaylistSource interface {
	PlaylistTracks(ctx context.Context, playlistID, accessToken string) ([]model.Track, error)
}

// VideoSource searches for candidate video clips
type VideoSource interface {
	Search(ctx context.Context, query string) ([]model.Video, error)
}

// Service turns a playlist selection into a shuffled track queue with video
// clips attached. Resolution results are cached pre-shuffle so repeat
// selections skip the vendor round trips but still get fresh orders.
type Service struct {
	storage   storage.Storage
	playlists PlaylistSource
	videos    VideoSource
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
}

// New creates a new resolver Service
func New(
	storage storage.Storage,
	playlists PlaylistSource,
	videos VideoSource,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:   storage,
		playlists: playlists,
		videos:    videos,
		clock:     clk,
		random:    rnd,
		logger:    logger.With(slog.String("component", "resolver")),
	}
}

// Resolve produces the track queue for a playlist. Tracks that get no video
// match are kept with a nil Video and skipped at play time.
func (s *Service) Resolve(ctx context.Context, playlistID, accessToken string) (model.TrackQueue, error) {
	if cached, err := s.storage.GetResolvedPlaylist(ctx, playlistID); err == nil {
		s.logger.Info("playlist cache hit",
			slog.String("playlist_id", playlistID),
			slog.Int("tracks", len(cached.Tracks)),
		)
		return s.shuffled(cached.Tracks), nil
	}

	tracks, err := s.playlists.PlaylistTracks(ctx, playlistID, accessToken)
	if err != nil {
		return nil, err
	}

	if len(tracks) < MinPlaylistTracks {
		return nil, model.ErrNotEnoughTracks
	}

	matched := 0
	for i := range tracks {
		video, err := s.matchVideo(ctx, tracks[i])
		if err != nil {
			return nil, err
		}
		if video != nil {
			tracks[i].Video = video
			matched++
		}
	}

	s.logger.Info("playlist resolved",
		slog.String("playlist_id", playlistID),
		slog.Int("tracks", len(tracks)),
		slog.Int("matched", matched),
	)

	resolved := &model.ResolvedPlaylist{
		PlaylistID: playlistID,
		Tracks:     tracks,
		ResolvedAt: s.clock.Now(),
	}
	if err := s.storage.SaveResolvedPlaylist(ctx, resolved); err != nil {
		// Cache failures degrade to a slower next load, nothing more
		s.logger.Warn("failed to cache resolved playlist",
			slog.String("playlist_id", playlistID),
			slog.Any("error", err),
		)
	}

	return s.shuffled(tracks), nil
}

// matchVideo picks the candidate whose duration is closest to the track's.
// Returns nil when the search yields no candidates.
func (s *Service) matchVideo(ctx context.Context, track model.Track) (*model.Video, error) {
	query := track.ArtistLine() + " - " + track.Title

	candidates, err := s.videos.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	best := candidates[0]
	bestDelta := durationDelta(track, best)
	for _, c := range candidates[1:] {
		if delta := durationDelta(track, c); delta < bestDelta {
			best = c
			bestDelta = delta
		}
	}

	return &best, nil
}

func durationDelta(track model.Track, video model.Video) int {
	delta := track.DurationMS - video.DurationMS
	if delta < 0 {
		return -delta
	}
	return delta
}

// shuffled copies the tracks and shuffles the copy, leaving the cached
// ordering untouched
func (s *Service) shuffled(tracks []model.Track) model.TrackQueue {
	queue := make(model.TrackQueue, len(tracks))
	copy(queue, tracks)
	s.random.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})
	return queue
}
