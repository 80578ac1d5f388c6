package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NachoToast/SpotifyQuiz/internal/model"
)

const (
	// DefaultBaseURL is the Spotify Web API root
	DefaultBaseURL = "https://api.spotify.com/v1"

	// pageSize is the number of playlist items requested per call, the
	// maximum Spotify allows
	pageSize = 50

	// maxPages bounds how many pages a single playlist fetch will walk, so a
	// pathological playlist cannot pin a goroutine
	maxPages = 100
)

// Client is an HTTP client for the Spotify Web API. Requests authenticate
// with a caller-supplied access token rather than server credentials; the
// host's own token is forwarded with each playlist selection.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Spotify API client
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// PlaylistTracks fetches every track in a playlist, following pagination.
// Local tracks and removed tracks (null entries) are skipped.
func (c *Client) PlaylistTracks(ctx context.Context, playlistID, accessToken string) ([]model.Track, error) {
	var tracks []model.Track

	for page := 0; page < maxPages; page++ {
		url := fmt.Sprintf("%s/playlists/%s/tracks?offset=%d&limit=%d",
			c.baseURL, playlistID, page*pageSize, pageSize)

		body, err := c.get(ctx, url, accessToken)
		if err != nil {
			return nil, err
		}

		var resp playlistTracksResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("failed to parse playlist response: %w", err)
		}

		for _, item := range resp.Items {
			if item.Track == nil || item.Track.IsLocal {
				continue
			}
			tracks = append(tracks, toModelTrack(item.Track))
		}

		if resp.Next == nil {
			break
		}
	}

	return tracks, nil
}

func (c *Client) get(ctx context.Context, url, accessToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read spotify response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, model.ErrSpotifyAuth
	case resp.StatusCode == http.StatusNotFound:
		return nil, model.ErrPlaylistNotFound
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("spotify returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func toModelTrack(t *trackObject) model.Track {
	artists := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, a.Name)
	}

	var albumArt string
	if len(t.Album.Images) > 0 {
		albumArt = t.Album.Images[0].URL
	}

	return model.Track{
		Title:       t.Name,
		Artists:     artists,
		AlbumArtURL: albumArt,
		DurationMS:  t.DurationMS,
	}
}
