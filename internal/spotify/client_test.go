package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/NachoToast/SpotifyQuiz/internal/model"
)

type ClientSuite struct {
	suite.Suite
	ctx context.Context
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *ClientSuite) TestPlaylistTracksSinglePage() {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{
			"items": [
				{"track": {"name": "Song A", "duration_ms": 180000,
					"artists": [{"name": "Artist A"}, {"name": "Artist B"}],
					"album": {"images": [{"url": "http://img/a.jpg"}]}}},
				{"track": {"name": "Song B", "duration_ms": 210000,
					"artists": [{"name": "Artist C"}],
					"album": {"images": []}}}
			],
			"next": null
		}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	tracks, err := client.PlaylistTracks(s.ctx, "pl-1", "token-abc")
	s.Require().NoError(err)

	s.Equal("Bearer token-abc", gotAuth)
	s.Require().Len(tracks, 2)
	s.Equal("Song A", tracks[0].Title)
	s.Equal([]string{"Artist A", "Artist B"}, tracks[0].Artists)
	s.Equal("http://img/a.jpg", tracks[0].AlbumArtURL)
	s.Equal(180000, tracks[0].DurationMS)
	s.Empty(tracks[1].AlbumArtURL)
}

func (s *ClientSuite) TestPlaylistTracksFollowsPagination() {
	var offsets []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset := r.URL.Query().Get("offset")
		offsets = append(offsets, offset)
		if offset == "0" {
			fmt.Fprint(w, `{
				"items": [{"track": {"name": "Song A", "duration_ms": 1000, "artists": [], "album": {"images": []}}}],
				"next": "more"
			}`)
			return
		}
		fmt.Fprint(w, `{
			"items": [{"track": {"name": "Song B", "duration_ms": 2000, "artists": [], "album": {"images": []}}}],
			"next": null
		}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	tracks, err := client.PlaylistTracks(s.ctx, "pl-1", "token")
	s.Require().NoError(err)

	s.Equal([]string{"0", "50"}, offsets)
	s.Require().Len(tracks, 2)
	s.Equal("Song A", tracks[0].Title)
	s.Equal("Song B", tracks[1].Title)
}

func (s *ClientSuite) TestPlaylistTracksSkipsLocalAndRemoved() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"items": [
				{"track": null},
				{"track": {"name": "Local Song", "duration_ms": 1000, "is_local": true, "artists": [], "album": {"images": []}}},
				{"track": {"name": "Real Song", "duration_ms": 2000, "artists": [], "album": {"images": []}}}
			],
			"next": null
		}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	tracks, err := client.PlaylistTracks(s.ctx, "pl-1", "token")
	s.Require().NoError(err)

	s.Require().Len(tracks, 1)
	s.Equal("Real Song", tracks[0].Title)
}

func (s *ClientSuite) TestPlaylistTracksUnauthorized() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.PlaylistTracks(s.ctx, "pl-1", "expired")
	s.ErrorIs(err, model.ErrSpotifyAuth)
}

func (s *ClientSuite) TestPlaylistTracksNotFound() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.PlaylistTracks(s.ctx, "gone", "token")
	s.ErrorIs(err, model.ErrPlaylistNotFound)
}
