package model

import "encoding/json"

// Outbound (server -> client) event names
const (
	EventWelcome         = "welcomeToGame"
	EventSetNameFailed   = "setNameFailed"
	EventPlayerJoined    = "playerJoined"
	EventPlayerLeft      = "playerLeft"
	EventChatMessage     = "chatMessage"
	EventPlayerState     = "playerStateUpdate"
	EventAllPlayerStates = "allPlayerStatesUpdate"
	EventGameState       = "gameStateUpdate"
)

// Inbound (client -> server) event names
const (
	EventGuessStateUpdate = "guessStateUpdate"
	EventPlaylistSelected = "playlistSelected"
	EventStartGame        = "startGame"
)

// ServerEvent is the envelope for all outbound messages
type ServerEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// ClientEvent is the envelope for all inbound messages. Data is decoded
// per-event once the name is known.
type ClientEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// JoinFailReason explains a rejected join to the closing connection
type JoinFailReason string

// Join rejection reasons, shared with the web client
const (
	JoinFailMissing      JoinFailReason = "missing"
	JoinFailTaken        JoinFailReason = "taken"
	JoinFailTooShort     JoinFailReason = "tooShort"
	JoinFailTooLong      JoinFailReason = "tooLong"
	JoinFailInvalidChars JoinFailReason = "invalidChars"
)

// WelcomePayload is sent to a joining connection so late joiners can render
// the live game immediately
type WelcomePayload struct {
	State   GameState `json:"state"`
	Players []Player  `json:"players"`
}

// ChatPayload carries chat traffic in both directions. From is nil for
// system-originated advisory messages.
type ChatPayload struct {
	From    *string `json:"from"`
	Message string  `json:"message"`
}

// PlayerStatePayload is a single player's answer state change
type PlayerStatePayload struct {
	Name  string      `json:"name"`
	State AnswerState `json:"state"`
}

// AllPlayerStatesPayload is a bulk answer state update keyed by player name
type AllPlayerStatesPayload map[string]AnswerState

// PlaylistSelectedPayload is the host's playlist choice plus the credential
// the server should use to read it
type PlaylistSelectedPayload struct {
	PlaylistID  string `json:"playlistId"`
	AccessToken string `json:"accessToken"`
}
