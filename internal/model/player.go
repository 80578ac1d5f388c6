package model

import "regexp"

const (
	// UsernameMinLength is the minimum accepted username length
	UsernameMinLength = 2
	// UsernameMaxLength is the maximum accepted username length
	UsernameMaxLength = 20
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)

// Player is a participant in a single game session. Name is case-preserved
// for display but unique case-insensitively within a session.
type Player struct {
	Name   string      `json:"name"`
	Host   bool        `json:"host"`
	Points int         `json:"points"`
	Answer AnswerState `json:"state"`
}

// ValidateUsername checks a candidate username against the join rules.
// Each failure mode maps to a distinct rejection reason for the client.
func ValidateUsername(name string) error {
	switch {
	case name == "":
		return ErrNameMissing
	case len(name) < UsernameMinLength:
		return ErrNameTooShort
	case len(name) > UsernameMaxLength:
		return ErrNameTooLong
	case !usernamePattern.MatchString(name):
		return ErrNameInvalidChars
	}
	return nil
}
