package model

import "errors"

// Common errors used across the application
var (
	// Registry errors
	ErrGameNotFound   = errors.New("game not found")
	ErrDuplicateOwner = errors.New("owner already has a live game")

	// Join errors; each maps to a distinct rejection reason on the wire
	ErrNameMissing      = errors.New("username is missing")
	ErrNameTaken        = errors.New("username is already taken")
	ErrNameTooShort     = errors.New("username is too short")
	ErrNameTooLong      = errors.New("username is too long")
	ErrNameInvalidChars = errors.New("username contains invalid characters")

	// Session errors
	ErrSessionClosed      = errors.New("session is closed")
	ErrNotHost            = errors.New("player is not the host")
	ErrInvalidAnswerState = errors.New("invalid answer state")

	// Resolver errors
	ErrNotEnoughTracks  = errors.New("playlist has too few usable tracks")
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrSpotifyAuth      = errors.New("spotify rejected the access token")

	// Storage errors
	ErrPlaylistNotCached = errors.New("playlist is not cached")
)
