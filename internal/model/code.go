package model

import (
	"strconv"
	"time"
)

// GameCode is a short human-typeable identifier for joining live game sessions
type GameCode string

// NewGameCode mints a code from the creation instant and a process-lifetime
// counter. The millisecond component keeps codes from being guessable from
// timing alone (acceptable margin for a party game, not cryptographic); the
// counter breaks collisions between codes minted in the same millisecond; the
// 'z' divider keeps the two hex parts from running together (without it,
// "a"+"ff" and "af"+"f" would concatenate to the same code).
func NewGameCode(now time.Time, counter uint64) GameCode {
	ms := now.Nanosecond() / int(time.Millisecond)
	return GameCode(strconv.FormatInt(int64(ms), 16) + "z" + strconv.FormatUint(counter, 16))
}
