package model

import (
	"encoding/json"
	"fmt"
)

// MaxGuessLength bounds stored guesses; longer submissions are truncated
// at decode time to bound memory and client rendering.
const MaxGuessLength = 30

// Wire codes for answer states, shared with the web client
const (
	answerCodeIdle = iota
	answerCodeTyping
	answerCodeSubmitted
	answerCodeWrong
	answerCodeCorrect
)

// AnswerState is a player's per-round answer progress. It is a closed set of
// variants; consumers should type-switch exhaustively. Idle, Typing and
// Submitted may originate from the client; Wrong and Correct are assigned by
// the server only, at round resolution.
type AnswerState interface {
	answerState()
}

// AnswerIdle means the player has not interacted with the guess box this round
type AnswerIdle struct{}

// AnswerTyping means the player is composing a guess
type AnswerTyping struct{}

// AnswerSubmitted means the player has locked in a guess for this round
type AnswerSubmitted struct {
	Guess string
}

// AnswerWrong is assigned at round resolution when a guess (possibly empty,
// for players who never submitted) did not match
type AnswerWrong struct {
	Guess string
}

// AnswerCorrect is assigned at round resolution for a matching guess
type AnswerCorrect struct{}

func (AnswerIdle) answerState()      {}
func (AnswerTyping) answerState()    {}
func (AnswerSubmitted) answerState() {}
func (AnswerWrong) answerState()     {}
func (AnswerCorrect) answerState()   {}

type answerWire struct {
	State int    `json:"state"`
	Guess string `json:"guess"`
}

type answerWireNoGuess struct {
	State int `json:"state"`
}

// MarshalJSON implements the client wire format {state, guess?}
func (AnswerIdle) MarshalJSON() ([]byte, error) {
	return json.Marshal(answerWireNoGuess{State: answerCodeIdle})
}

// MarshalJSON implements the client wire format {state, guess?}
func (AnswerTyping) MarshalJSON() ([]byte, error) {
	return json.Marshal(answerWireNoGuess{State: answerCodeTyping})
}

// MarshalJSON implements the client wire format {state, guess?}
func (a AnswerSubmitted) MarshalJSON() ([]byte, error) {
	return json.Marshal(answerWire{State: answerCodeSubmitted, Guess: a.Guess})
}

// MarshalJSON implements the client wire format {state, guess?}
func (a AnswerWrong) MarshalJSON() ([]byte, error) {
	return json.Marshal(answerWire{State: answerCodeWrong, Guess: a.Guess})
}

// MarshalJSON implements the client wire format {state, guess?}
func (AnswerCorrect) MarshalJSON() ([]byte, error) {
	return json.Marshal(answerWireNoGuess{State: answerCodeCorrect})
}

// DecodeAnswerState parses a client-originated answer state. Only Idle,
// Typing and Submitted are accepted; Wrong and Correct are server-assigned
// and rejected here. Submitted guesses are truncated to MaxGuessLength.
func DecodeAnswerState(data []byte) (AnswerState, error) {
	var wire answerWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("malformed answer state: %w", err)
	}

	switch wire.State {
	case answerCodeIdle:
		return AnswerIdle{}, nil
	case answerCodeTyping:
		return AnswerTyping{}, nil
	case answerCodeSubmitted:
		guess := wire.Guess
		if runes := []rune(guess); len(runes) > MaxGuessLength {
			guess = string(runes[:MaxGuessLength])
		}
		return AnswerSubmitted{Guess: guess}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidAnswerState, wire.State)
	}
}
