package registry

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NachoToast/SpotifyQuiz/internal/dependencies/clock"
	"github.com/NachoToast/SpotifyQuiz/internal/dependencies/random"
	"github.com/NachoToast/SpotifyQuiz/internal/model"
	"github.com/NachoToast/SpotifyQuiz/internal/services/session"
)

// graceWindow is how long a freshly created game may sit empty before it is
// torn down (covers abandoned creates)
const graceWindow = 10 * time.Second

// RoomFactory builds the transport room for a new game
type RoomFactory func(code model.GameCode) session.Room

// Registry maps game codes to live sessions and owner keys to their one
// allowed concurrent game. Its map is the only state shared across sessions.
type Registry struct {
	rooms    RoomFactory
	resolver session.Resolver
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger

	// base is the un-tagged logger handed to sessions, so their component
	// attribute does not stack on the registry's
	base *slog.Logger

	counter atomic.Uint64

	mu       sync.RWMutex
	sessions map[model.GameCode]*session.Session
	owners   map[string]model.GameCode
}

// New creates an empty Registry
func New(
	rooms RoomFactory,
	resolver session.Resolver,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Registry {
	return &Registry{
		rooms:    rooms,
		resolver: resolver,
		clock:    clk,
		random:   rnd,
		logger:   logger.With(slog.String("component", "registry")),
		base:     logger,
		sessions: make(map[model.GameCode]*session.Session),
		owners:   make(map[string]model.GameCode),
	}
}

// Create mints a new game for ownerKey (one live game per owner). The new
// session is torn down automatically if nobody joins within the grace window.
func (r *Registry) Create(ownerKey string) (model.GameCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.owners[ownerKey]; exists {
		return "", model.ErrDuplicateOwner
	}

	code := r.mintCodeLocked()

	sess := session.New(
		code,
		r.rooms(code),
		r.resolver,
		r.clock,
		r.random,
		r.base,
		func() { r.remove(code, ownerKey) },
	)

	r.sessions[code] = sess
	r.owners[ownerKey] = code

	r.clock.AfterFunc(graceWindow, func() {
		if sess.PlayerCount() == 0 {
			r.logger.Info("closing unused game", slog.String("code", string(code)))
			sess.Close()
		}
	})

	r.logger.Info("game created",
		slog.String("code", string(code)),
		slog.String("owner", ownerKey),
	)
	return code, nil
}

// mintCodeLocked generates codes until one not currently live is found. The
// ms+counter scheme makes a collision practically impossible; the loop makes
// it actually impossible.
func (r *Registry) mintCodeLocked() model.GameCode {
	for {
		code := model.NewGameCode(r.clock.Now(), r.counter.Add(1)-1)
		if _, taken := r.sessions[code]; !taken {
			return code
		}
	}
}

// Lookup returns the live session for a code
func (r *Registry) Lookup(code model.GameCode) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[code]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return sess, nil
}

// Count returns the number of live sessions
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// remove forgets a session and frees its owner slot. Idempotent; invoked from
// the session's own close callback.
func (r *Registry) remove(code model.GameCode, ownerKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[code]; !ok {
		return
	}
	delete(r.sessions, code)
	if r.owners[ownerKey] == code {
		delete(r.owners, ownerKey)
	}
	r.logger.Info("game removed", slog.String("code", string(code)))
}

// Close tears down every live session, for server shutdown
func (r *Registry) Close() {
	r.mu.RLock()
	sessions := make([]*session.Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		sessions = append(sessions, sess)
	}
	r.mu.RUnlock()

	for _, sess := range sessions {
		sess.Close()
	}
}
