package transport

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NachoToast/SpotifyQuiz/internal/model"
	"github.com/NachoToast/SpotifyQuiz/internal/testutil"
)

type recordingConn struct {
	mu     sync.Mutex
	sent   []model.ServerEvent
	closed bool
}

func (c *recordingConn) Send(ev model.ServerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, ev)
}

func (c *recordingConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *recordingConn) sentCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func (c *recordingConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func TestHubBroadcastReachesAllMembers(t *testing.T) {
	hub := NewHub("abzc", testutil.NopLogger())
	a, b := &recordingConn{}, &recordingConn{}
	hub.Add(a)
	hub.Add(b)

	hub.Broadcast(model.ServerEvent{Event: model.EventGameState, Data: model.StateIdle{}})

	require.Equal(t, 1, a.sentCount())
	require.Equal(t, 1, b.sentCount())
	assert.Equal(t, model.EventGameState, a.sent[0].Event)
}

func TestHubRemoveStopsDelivery(t *testing.T) {
	hub := NewHub("abzc", testutil.NopLogger())
	a, b := &recordingConn{}, &recordingConn{}
	hub.Add(a)
	hub.Add(b)

	hub.Remove(a)
	hub.Broadcast(model.ServerEvent{Event: model.EventChatMessage})

	assert.Equal(t, 0, a.sentCount())
	assert.Equal(t, 1, b.sentCount())
	assert.False(t, a.isClosed(), "remove does not close the connection")
}

func TestHubCloseDisconnectsEveryone(t *testing.T) {
	hub := NewHub("abzc", testutil.NopLogger())
	a, b := &recordingConn{}, &recordingConn{}
	hub.Add(a)
	hub.Add(b)

	hub.Close()

	assert.True(t, a.isClosed())
	assert.True(t, b.isClosed())
	assert.Equal(t, 0, hub.Size())

	// Late broadcast and late add are both no-ops
	hub.Broadcast(model.ServerEvent{Event: model.EventChatMessage})
	assert.Equal(t, 0, a.sentCount())

	late := &recordingConn{}
	hub.Add(late)
	assert.True(t, late.isClosed())
}

func TestHubCloseIsIdempotent(t *testing.T) {
	hub := NewHub("abzc", testutil.NopLogger())
	hub.Add(&recordingConn{})

	hub.Close()
	hub.Close()

	assert.Equal(t, 0, hub.Size())
}
