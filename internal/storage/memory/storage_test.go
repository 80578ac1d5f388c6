package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/NachoToast/SpotifyQuiz/internal/dependencies/mocks"
	"github.com/NachoToast/SpotifyQuiz/internal/model"
)

type StorageSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.storage = New(s.clock, time.Hour)
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSaveAndGetResolvedPlaylist() {
	playlist := &model.ResolvedPlaylist{
		PlaylistID: "playlist-1",
		Tracks: []model.Track{
			{Title: "Song A", Artists: []string{"Artist A"}, DurationMS: 180000},
		},
		ResolvedAt: s.clock.Now(),
	}

	err := s.storage.SaveResolvedPlaylist(s.ctx, playlist)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetResolvedPlaylist(s.ctx, "playlist-1")
	s.Require().NoError(err)
	s.Equal(playlist.PlaylistID, retrieved.PlaylistID)
	s.Len(retrieved.Tracks, 1)
	s.Equal("Song A", retrieved.Tracks[0].Title)
}

func (s *StorageSuite) TestGetResolvedPlaylistNotCached() {
	_, err := s.storage.GetResolvedPlaylist(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlaylistNotCached)
}

func (s *StorageSuite) TestDeleteResolvedPlaylist() {
	playlist := &model.ResolvedPlaylist{PlaylistID: "playlist-1"}
	_ = s.storage.SaveResolvedPlaylist(s.ctx, playlist)

	err := s.storage.DeleteResolvedPlaylist(s.ctx, "playlist-1")
	s.Require().NoError(err)

	_, err = s.storage.GetResolvedPlaylist(s.ctx, "playlist-1")
	s.ErrorIs(err, model.ErrPlaylistNotCached)
}

func (s *StorageSuite) TestEntryExpires() {
	playlist := &model.ResolvedPlaylist{PlaylistID: "playlist-1"}
	_ = s.storage.SaveResolvedPlaylist(s.ctx, playlist)

	s.clock.Advance(59 * time.Minute)
	_, err := s.storage.GetResolvedPlaylist(s.ctx, "playlist-1")
	s.Require().NoError(err)

	s.clock.Advance(time.Minute)
	_, err = s.storage.GetResolvedPlaylist(s.ctx, "playlist-1")
	s.ErrorIs(err, model.ErrPlaylistNotCached)
}

func (s *StorageSuite) TestZeroTTLNeverExpires() {
	storage := New(s.clock, 0)
	playlist := &model.ResolvedPlaylist{PlaylistID: "playlist-1"}
	_ = storage.SaveResolvedPlaylist(s.ctx, playlist)

	s.clock.Advance(1000 * time.Hour)
	_, err := storage.GetResolvedPlaylist(s.ctx, "playlist-1")
	s.NoError(err)
}
