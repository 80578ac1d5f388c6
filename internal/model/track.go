package model

import (
	"strings"
	"time"
)

// Video is a playable clip matched to a track
type Video struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	DurationMS int    `json:"durationMs"`
}

// Track is resolved playlist track metadata paired with an optional matched
// video clip. Video is nil when no adequate match was found; such tracks are
// skipped at play time rather than failing the whole load.
type Track struct {
	Title       string   `json:"title"`
	Artists     []string `json:"artists"`
	AlbumArtURL string   `json:"albumArtUrl,omitempty"`
	DurationMS  int      `json:"durationMs"`
	Video       *Video   `json:"video,omitempty"`
}

// ArtistLine joins the track's artist names for display and search queries
func (t Track) ArtistLine() string {
	return strings.Join(t.Artists, ", ")
}

// Revealed converts the track to its cooldown reveal form
func (t Track) Revealed() RevealedTrack {
	return RevealedTrack{
		Title:     t.Title,
		Artists:   t.Artists,
		Thumbnail: t.AlbumArtURL,
	}
}

// TrackQueue is an ordered sequence of tracks, fixed once per playlist
// selection and traversed by increasing index. It is never reordered after
// the initial shuffle.
type TrackQueue []Track

// ResolvedPlaylist is the cacheable result of resolving a Spotify playlist's
// tracks to video clips. Tracks are stored in source order; each load shuffles
// its own copy so concurrent games on the same playlist get different orders.
type ResolvedPlaylist struct {
	PlaylistID string    `json:"playlistId"`
	Tracks     []Track   `json:"tracks"`
	ResolvedAt time.Time `json:"resolvedAt"`
}
