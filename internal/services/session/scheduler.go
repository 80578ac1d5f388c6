package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/NachoToast/SpotifyQuiz/internal/model"
)

const (
	// roundWindowSeconds is how long players have to guess each track
	roundWindowSeconds = 30

	// cooldownSeconds is the reveal pause between rounds
	cooldownSeconds = 15

	// clipEdgeMarginSeconds keeps the playback offset away from the very
	// start of a clip
	clipEdgeMarginSeconds = 5

	// clipSafetyMarginSeconds is extra headroom beyond the guess window so
	// the round never runs past available audio
	clipSafetyMarginSeconds = 20
)

// stopTimerLocked cancels the pending timer, if any, and invalidates every
// callback armed before this point
func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerEpoch++
}

// armTimerLocked schedules f to run under the session lock after d. The
// callback is dropped if the session has closed or any transition has
// superseded the timer in the meantime.
func (s *Session) armTimerLocked(d time.Duration, f func()) {
	s.stopTimerLocked()
	epoch := s.timerEpoch
	s.timer = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || s.timerEpoch != epoch {
			return
		}
		f()
	})
}

// advanceRoundLocked moves to the round after previous: resets every answer,
// skips clipless tracks with an advisory, and either starts the next Active
// window or finishes the game.
func (s *Session) advanceRoundLocked(previous int) {
	s.stopTimerLocked()

	for _, e := range s.players {
		e.player.Answer = model.AnswerIdle{}
	}
	s.room.Broadcast(model.ServerEvent{Event: model.EventAllPlayerStates, Data: s.answersSnapshotLocked()})

	next := previous + 1
	if next >= len(s.queue) {
		s.finishLocked()
		return
	}

	track := s.queue[next]
	if track.Video == nil {
		s.logger.Info("skipping unmatched track", slog.Int("index", next), slog.String("title", track.Title))
		s.advisoryLocked(fmt.Sprintf("Skipping %q, no clip was found for it", track.Title))
		s.advanceRoundLocked(next)
		return
	}

	active := model.StateActive{
		TrackNumber: next,
		OutOf:       len(s.queue),
		VideoID:     track.Video.ID,
		StartAt:     s.clipOffset(track.Video.DurationMS),
		StartedAt:   s.clock.Now().UTC().Format(time.RFC3339),
		WindowSize:  roundWindowSeconds,
	}
	s.setStateLocked(active)

	s.logger.Info("round started",
		slog.Int("track", next),
		slog.String("video_id", active.VideoID),
		slog.Int("start_at", active.StartAt),
	)

	s.armTimerLocked(roundWindowSeconds*time.Second, s.resolveRoundLocked)
}

// clipOffset picks a playback start point at least 5s from the clip's start
// and far enough from its end that the guess window plus safety margin always
// fits. Clips too short to leave a range start from the beginning.
func (s *Session) clipOffset(durationMS int) int {
	clipSeconds := durationMS / 1000
	maxStart := clipSeconds - roundWindowSeconds - clipSafetyMarginSeconds
	if maxStart <= clipEdgeMarginSeconds {
		return 0
	}
	return clipEdgeMarginSeconds + s.random.Intn(maxStart-clipEdgeMarginSeconds)
}

// resolveRoundLocked scores every player for the active round and moves to
// Cooldown with the track revealed
func (s *Session) resolveRoundLocked() {
	active, ok := s.state.(model.StateActive)
	if !ok {
		// Unreachable by construction; the timer epoch guard prevents a
		// stale resolve from landing here
		s.logger.Error("resolve outside active round", slog.Any("state", s.state))
		return
	}
	s.stopTimerLocked()

	track := s.queue[active.TrackNumber]
	correct := 0
	for _, e := range s.players {
		switch answer := e.player.Answer.(type) {
		case model.AnswerSubmitted:
			if EvaluateGuess(answer.Guess, track) {
				e.player.Answer = model.AnswerCorrect{}
				e.player.Points++
				correct++
			} else {
				e.player.Answer = model.AnswerWrong{Guess: answer.Guess}
			}
		default:
			e.player.Answer = model.AnswerWrong{Guess: ""}
		}
	}
	s.room.Broadcast(model.ServerEvent{Event: model.EventAllPlayerStates, Data: s.answersSnapshotLocked()})

	cooldown := model.StateCooldown{StateActive: active, Track: track.Revealed()}
	cooldown.StartedAt = s.clock.Now().UTC().Format(time.RFC3339)
	cooldown.WindowSize = cooldownSeconds
	s.setStateLocked(cooldown)

	s.logger.Info("round resolved",
		slog.Int("track", active.TrackNumber),
		slog.Int("correct", correct),
	)

	s.armTimerLocked(cooldownSeconds*time.Second, func() {
		s.advanceRoundLocked(active.TrackNumber)
	})
}

// earlyExitCheckLocked short-circuits the current phase once every player has
// submitted, instead of waiting out the timer
func (s *Session) earlyExitCheckLocked() {
	if len(s.players) == 0 {
		return
	}
	for _, e := range s.players {
		if _, submitted := e.player.Answer.(model.AnswerSubmitted); !submitted {
			return
		}
	}

	switch state := s.state.(type) {
	case model.StateActive:
		s.resolveRoundLocked()
	case model.StateCooldown:
		s.advanceRoundLocked(state.TrackNumber)
	}
}

// finishLocked ends the playlist traversal: back to Idle with a winner
// announcement. Ties go to the earliest joiner, which is arbitrary but
// matches what players have come to expect.
func (s *Session) finishLocked() {
	s.setStateLocked(model.StateIdle{})

	if len(s.players) == 0 {
		s.advisoryLocked("Game over!")
		return
	}

	winner := s.players[0]
	for _, e := range s.players[1:] {
		if e.player.Points > winner.player.Points {
			winner = e
		}
	}

	s.logger.Info("game finished",
		slog.String("winner", winner.player.Name),
		slog.Int("points", winner.player.Points),
	)
	s.advisoryLocked(fmt.Sprintf("Game over! %s wins with %d points", winner.player.Name, winner.player.Points))
}
