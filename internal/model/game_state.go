package model

import "encoding/json"

// Wire codes for game states, shared with the web client
const (
	gameCodeIdle = iota
	gameCodeLoading
	gameCodeReady
	gameCodeActive
	gameCodeCooldown
)

// GameState is the session-wide phase of a game: a closed set of variants,
// exactly one value at a time. Consumers should type-switch exhaustively.
//
//	Idle -> Loading -> Ready -> Active <-> Cooldown -> Idle
type GameState interface {
	gameState()
}

// StateIdle means the host needs to (re)select a playlist
type StateIdle struct{}

// StateLoading means the server is resolving the selected playlist's tracks
type StateLoading struct{}

// StateReady means tracks are loaded and the host can start the game
type StateReady struct {
	TrackNumber *int
}

// StateActive is a live guessing round
type StateActive struct {
	TrackNumber int
	OutOf       int
	VideoID     string
	StartAt     int
	StartedAt   string
	WindowSize  int
}

// RevealedTrack is the answer shown to players during cooldown
type RevealedTrack struct {
	Title     string   `json:"title"`
	Artists   []string `json:"artists"`
	Thumbnail string   `json:"thumbnail,omitempty"`
}

// StateCooldown is the reveal pause between rounds; it carries the fields of
// the Active round it concludes plus the resolved track
type StateCooldown struct {
	StateActive
	Track RevealedTrack
}

func (StateIdle) gameState()     {}
func (StateLoading) gameState()  {}
func (StateReady) gameState()    {}
func (StateActive) gameState()   {}
func (StateCooldown) gameState() {}

type activeWire struct {
	State       int    `json:"state"`
	TrackNumber int    `json:"trackNumber"`
	OutOf       int    `json:"outOf"`
	VideoID     string `json:"videoId"`
	StartAt     int    `json:"startAt"`
	StartedAt   string `json:"startedAt"`
	WindowSize  int    `json:"windowSize"`
}

// MarshalJSON implements the client wire format {state, ...}
func (StateIdle) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		State int `json:"state"`
	}{gameCodeIdle})
}

// MarshalJSON implements the client wire format {state, ...}
func (StateLoading) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		State int `json:"state"`
	}{gameCodeLoading})
}

// MarshalJSON implements the client wire format {state, ...}
func (s StateReady) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		State       int  `json:"state"`
		TrackNumber *int `json:"trackNumber,omitempty"`
	}{gameCodeReady, s.TrackNumber})
}

// MarshalJSON implements the client wire format {state, ...}
func (s StateActive) MarshalJSON() ([]byte, error) {
	return json.Marshal(activeWire{
		State:       gameCodeActive,
		TrackNumber: s.TrackNumber,
		OutOf:       s.OutOf,
		VideoID:     s.VideoID,
		StartAt:     s.StartAt,
		StartedAt:   s.StartedAt,
		WindowSize:  s.WindowSize,
	})
}

// MarshalJSON implements the client wire format {state, ...}
func (s StateCooldown) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		activeWire
		Track RevealedTrack `json:"track"`
	}{
		activeWire: activeWire{
			State:       gameCodeCooldown,
			TrackNumber: s.TrackNumber,
			OutOf:       s.OutOf,
			VideoID:     s.VideoID,
			StartAt:     s.StartAt,
			StartedAt:   s.StartedAt,
			WindowSize:  s.WindowSize,
		},
		Track: s.Track,
	})
}
