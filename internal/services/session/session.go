package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/NachoToast/SpotifyQuiz/internal/dependencies/clock"
	"github.com/NachoToast/SpotifyQuiz/internal/dependencies/random"
	"github.com/NachoToast/SpotifyQuiz/internal/model"
)

// maxChatLength bounds relayed chat messages
const maxChatLength = 200

// Session is one running game: roster, state machine, track queue, and round
// timers. It is the unit of concurrency — every mutation (join, leave, guess,
// timer fire) is serialized under one mutex, so no two transitions interleave
// and cross-session operations never block each other.
type Session struct {
	code model.GameCode

	room     Room
	resolver Resolver
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
	onClose  func()

	mu      sync.Mutex
	closed  bool
	state   model.GameState
	queue   model.TrackQueue
	players []*entry

	// timer is the single pending round/grace callback. Every transition that
	// supersedes it stops it and bumps timerEpoch; a firing callback
	// re-checks the epoch under the lock, so a stale fire is inert rather
	// than merely unlikely.
	timer      clock.Timer
	timerEpoch int
}

type entry struct {
	player model.Player
	conn   Conn
}

// New creates a session in the Idle state. onClose runs exactly once when the
// session shuts down, after the room has been closed.
func New(
	code model.GameCode,
	room Room,
	resolver Resolver,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
	onClose func(),
) *Session {
	return &Session{
		code:     code,
		room:     room,
		resolver: resolver,
		clock:    clk,
		random:   rnd,
		logger:   logger.With(slog.String("component", "session"), slog.String("code", string(code))),
		onClose:  onClose,
		state:    model.StateIdle{},
	}
}

// Code returns the session's game code
func (s *Session) Code() model.GameCode {
	return s.code
}

// PlayerCount returns the current roster size
func (s *Session) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

// HandleJoin admits a connection under the candidate name, or rejects it with
// a reason code and closes it. The first successful joiner becomes host. The
// welcome snapshot is sent before the connection enters the room, so the
// joiner never sees its own playerJoined broadcast.
func (s *Session) HandleJoin(conn Conn, candidateName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		conn.Close()
		return
	}

	name := strings.TrimSpace(candidateName)

	if reason, ok := s.rejectReasonLocked(name); ok {
		conn.Send(model.ServerEvent{Event: model.EventSetNameFailed, Data: reason})
		conn.Close()
		return
	}

	player := model.Player{
		Name:   name,
		Host:   len(s.players) == 0,
		Answer: model.AnswerIdle{},
	}

	conn.Send(model.ServerEvent{Event: model.EventWelcome, Data: model.WelcomePayload{
		State:   s.state,
		Players: s.playersSnapshotLocked(),
	}})
	s.room.Broadcast(model.ServerEvent{Event: model.EventPlayerJoined, Data: player})
	s.room.Add(conn)
	s.players = append(s.players, &entry{player: player, conn: conn})

	s.logger.Info("player joined",
		slog.String("name", name),
		slog.Bool("host", player.Host),
		slog.Int("players", len(s.players)),
	)
}

// rejectReasonLocked validates a candidate name against syntax rules and the
// roster. Check order matches the reason codes the client expects: missing,
// taken, then syntax.
func (s *Session) rejectReasonLocked(name string) (model.JoinFailReason, bool) {
	if name == "" {
		return model.JoinFailMissing, true
	}
	if s.findByNameLocked(name) != nil {
		return model.JoinFailTaken, true
	}

	switch err := model.ValidateUsername(name); {
	case err == nil:
		return "", false
	case errors.Is(err, model.ErrNameTooShort):
		return model.JoinFailTooShort, true
	case errors.Is(err, model.ErrNameTooLong):
		return model.JoinFailTooLong, true
	default:
		return model.JoinFailInvalidChars, true
	}
}

// HandleLeave processes a disconnect. The host leaving, or the last player
// leaving, shuts the whole session down; anyone else is removed and announced.
func (s *Session) HandleLeave(conn Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	e := s.findByConnLocked(conn)
	if e == nil {
		return
	}

	if e.player.Host || len(s.players) == 1 {
		s.logger.Info("session-ending leave", slog.String("name", e.player.Name), slog.Bool("host", e.player.Host))
		s.closeLocked()
		return
	}

	s.removeEntryLocked(e)
	s.room.Remove(conn)
	s.room.Broadcast(model.ServerEvent{Event: model.EventPlayerLeft, Data: e.player})

	s.logger.Info("player left", slog.String("name", e.player.Name), slog.Int("players", len(s.players)))
}

// HandleChat relays a chat message to the room under the sender's name.
// Over-length messages are truncated, empty ones dropped.
func (s *Session) HandleChat(conn Conn, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	e := s.findByConnLocked(conn)
	if e == nil {
		return
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	if runes := []rune(message); len(runes) > maxChatLength {
		message = string(runes[:maxChatLength])
	}

	name := e.player.Name
	s.room.Broadcast(model.ServerEvent{Event: model.EventChatMessage, Data: model.ChatPayload{
		From:    &name,
		Message: message,
	}})
}

// HandleGuessState applies a client-originated answer state change. Submitted
// is only meaningful mid-round and is dropped otherwise; after every accepted
// update the early-exit rule is checked.
func (s *Session) HandleGuessState(conn Conn, answer model.AnswerState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	e := s.findByConnLocked(conn)
	if e == nil {
		return
	}

	if _, submitted := answer.(model.AnswerSubmitted); submitted && !s.inRoundLocked() {
		return
	}

	e.player.Answer = answer
	s.room.Broadcast(model.ServerEvent{Event: model.EventPlayerState, Data: model.PlayerStatePayload{
		Name:  e.player.Name,
		State: answer,
	}})

	s.earlyExitCheckLocked()
}

// HandlePlaylistSelected starts loading a playlist. Host-only; ignored
// mid-round. A second selection while already Loading is allowed to race —
// only one host connection exists, so the race is practically unreachable,
// and the last resolution to land wins.
func (s *Session) HandlePlaylistSelected(conn Conn, playlistID, accessToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	e := s.findByConnLocked(conn)
	if e == nil || !e.player.Host {
		return
	}

	if s.inRoundLocked() {
		return
	}

	s.setStateLocked(model.StateLoading{})
	s.logger.Info("loading playlist", slog.String("playlist_id", playlistID))

	go s.loadPlaylist(playlistID, accessToken)
}

// loadPlaylist runs the resolver off the session lock, then applies the
// outcome under it
func (s *Session) loadPlaylist(playlistID, accessToken string) {
	queue, err := s.resolver.Resolve(context.Background(), playlistID, accessToken)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if err != nil {
		s.logger.Warn("playlist load failed", slog.String("playlist_id", playlistID), slog.Any("error", err))
		s.setStateLocked(model.StateIdle{})
		s.advisoryLocked("Failed to load playlist: " + loadFailureMessage(err))
		return
	}

	s.queue = queue
	s.setStateLocked(model.StateReady{})
	s.logger.Info("playlist ready", slog.String("playlist_id", playlistID), slog.Int("tracks", len(queue)))
}

// loadFailureMessage maps resolver errors to the advisory shown in chat
func loadFailureMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrNotEnoughTracks):
		return "playlist needs at least 3 tracks"
	case errors.Is(err, model.ErrPlaylistNotFound):
		return "playlist not found"
	case errors.Is(err, model.ErrSpotifyAuth):
		return "Spotify rejected the access token"
	default:
		return "something went wrong, try again"
	}
}

// HandleStartGame begins round progression. Host-only, valid only from Ready.
func (s *Session) HandleStartGame(conn Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	e := s.findByConnLocked(conn)
	if e == nil || !e.player.Host {
		return
	}

	if _, ready := s.state.(model.StateReady); !ready {
		return
	}

	s.logger.Info("game started", slog.Int("tracks", len(s.queue)))
	s.advanceRoundLocked(-1)
}

// Close shuts the session down. Idempotent; safe to call from the registry's
// grace timer or from a leave in progress.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Session) closeLocked() {
	if s.closed {
		return
	}
	s.closed = true
	s.stopTimerLocked()
	s.players = nil
	s.room.Close()
	if s.onClose != nil {
		s.onClose()
	}
	s.logger.Info("session closed")
}

// State returns the current game state
func (s *Session) State() model.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Players returns a snapshot of the roster in join order
func (s *Session) Players() []model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playersSnapshotLocked()
}

func (s *Session) playersSnapshotLocked() []model.Player {
	players := make([]model.Player, 0, len(s.players))
	for _, e := range s.players {
		players = append(players, e.player)
	}
	return players
}

func (s *Session) answersSnapshotLocked() model.AllPlayerStatesPayload {
	answers := make(model.AllPlayerStatesPayload, len(s.players))
	for _, e := range s.players {
		answers[e.player.Name] = e.player.Answer
	}
	return answers
}

func (s *Session) findByNameLocked(name string) *entry {
	lower := strings.ToLower(name)
	for _, e := range s.players {
		if strings.ToLower(e.player.Name) == lower {
			return e
		}
	}
	return nil
}

func (s *Session) findByConnLocked(conn Conn) *entry {
	for _, e := range s.players {
		if e.conn == conn {
			return e
		}
	}
	return nil
}

func (s *Session) removeEntryLocked(target *entry) {
	for i, e := range s.players {
		if e == target {
			s.players = append(s.players[:i], s.players[i+1:]...)
			return
		}
	}
}

func (s *Session) inRoundLocked() bool {
	switch s.state.(type) {
	case model.StateActive, model.StateCooldown:
		return true
	default:
		return false
	}
}

func (s *Session) setStateLocked(state model.GameState) {
	s.state = state
	s.room.Broadcast(model.ServerEvent{Event: model.EventGameState, Data: state})
}

func (s *Session) advisoryLocked(message string) {
	s.room.Broadcast(model.ServerEvent{Event: model.EventChatMessage, Data: model.ChatPayload{
		From:    nil,
		Message: message,
	}})
}
