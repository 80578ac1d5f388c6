package session

import (
	"context"
	"sync"

	"github.com/NachoToast/SpotifyQuiz/internal/model"
)

// fakeConn records everything sent to a single connection
type fakeConn struct {
	mu     sync.Mutex
	sent   []model.ServerEvent
	closed bool
}

func (c *fakeConn) Send(ev model.ServerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, ev)
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) events(name string) []model.ServerEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []model.ServerEvent
	for _, ev := range c.sent {
		if ev.Event == name {
			out = append(out, ev)
		}
	}
	return out
}

// fakeRoom records room membership and every broadcast in order
type fakeRoom struct {
	mu      sync.Mutex
	members []Conn
	events  []model.ServerEvent
	closed  bool
}

func (r *fakeRoom) Add(c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members = append(r.members, c)
}

func (r *fakeRoom) Remove(c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, member := range r.members {
		if member == c {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return
		}
	}
}

func (r *fakeRoom) Broadcast(ev model.ServerEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *fakeRoom) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

func (r *fakeRoom) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *fakeRoom) broadcasts(name string) []model.ServerEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ServerEvent
	for _, ev := range r.events {
		if ev.Event == name {
			out = append(out, ev)
		}
	}
	return out
}

func (r *fakeRoom) broadcastCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// stateBroadcasts returns every gameStateUpdate payload in broadcast order
func (r *fakeRoom) stateBroadcasts() []model.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.GameState
	for _, ev := range r.events {
		if ev.Event == model.EventGameState {
			out = append(out, ev.Data.(model.GameState))
		}
	}
	return out
}

// fakeResolver serves a fixed queue or a fixed error
type fakeResolver struct {
	mu    sync.Mutex
	queue model.TrackQueue
	err   error
	calls int
}

func (f *fakeResolver) Resolve(ctx context.Context, playlistID, accessToken string) (model.TrackQueue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	queue := make(model.TrackQueue, len(f.queue))
	copy(queue, f.queue)
	return queue, nil
}
