package session

import (
	"strings"

	"github.com/NachoToast/SpotifyQuiz/internal/model"
)

// EvaluateGuess reports whether a submitted guess counts as correct for the
// track. Matching is case-insensitive and exact-ish: full title, full clip
// title, a long-enough prefix of the title, or a long-enough single word of
// it. No fuzzy matching.
func EvaluateGuess(guess string, track model.Track) bool {
	g := strings.ToLower(strings.TrimSpace(guess))
	if g == "" {
		return false
	}
	if runes := []rune(g); len(runes) > model.MaxGuessLength {
		g = string(runes[:model.MaxGuessLength])
	}

	title := strings.ToLower(track.Title)

	if g == title {
		return true
	}
	if track.Video != nil && g == strings.ToLower(track.Video.Title) {
		return true
	}
	if len(g) > 3 && strings.HasPrefix(title, g) {
		return true
	}
	if len(g) > 5 {
		for _, word := range strings.Fields(title) {
			if g == word {
				return true
			}
		}
	}

	return false
}
