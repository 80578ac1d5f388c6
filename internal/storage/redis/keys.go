package redis

import "fmt"

// Key prefix for all quiz-related data
const keyPrefix = "spotifyquiz"

// playlistKey returns the Redis key for a cached resolved playlist
func playlistKey(playlistID string) string {
	return fmt.Sprintf("%s:playlist:%s", keyPrefix, playlistID)
}
