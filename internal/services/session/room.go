package session

import (
	"context"

	"github.com/NachoToast/SpotifyQuiz/internal/model"
)

// Conn is a single client connection in the game's room. Send must preserve
// per-connection ordering and must not block the caller.
type Conn interface {
	Send(ev model.ServerEvent)
	Close()
}

// Room is the broadcast side of the transport for one game
type Room interface {
	Add(c Conn)
	Remove(c Conn)
	Broadcast(ev model.ServerEvent)
	Close()
}

// Resolver turns a playlist selection into a playable track queue
type Resolver interface {
	Resolve(ctx context.Context, playlistID, accessToken string) (model.TrackQueue, error)
}
