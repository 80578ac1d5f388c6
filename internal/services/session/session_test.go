package session

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/NachoToast/SpotifyQuiz/internal/dependencies/mocks"
	"github.com/NachoToast/SpotifyQuiz/internal/model"
	"github.com/NachoToast/SpotifyQuiz/internal/testutil"
)

type SessionSuite struct {
	suite.Suite
	clock    *mocks.MockClock
	random   *mocks.MockRandom
	room     *fakeRoom
	resolver *fakeResolver
	closes   int
	session  *Session
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.room = &fakeRoom{}
	s.resolver = &fakeResolver{}
	s.closes = 0
	s.session = New("abzc", s.room, s.resolver, s.clock, s.random, testutil.NopLogger(),
		func() { s.closes++ })
}

// join admits a player and returns their connection
func (s *SessionSuite) join(name string) *fakeConn {
	conn := &fakeConn{}
	before := s.session.PlayerCount()
	s.session.HandleJoin(conn, name)
	s.Require().Equal(before+1, s.session.PlayerCount(), "join of %q should have been accepted", name)
	return conn
}

func (s *SessionSuite) TestFirstJoinerIsHost() {
	s.join("Alice")
	s.join("Bob")

	players := s.session.Players()
	s.Require().Len(players, 2)
	s.True(players[0].Host)
	s.Equal("Alice", players[0].Name)
	s.False(players[1].Host)
}

func (s *SessionSuite) TestWelcomeCarriesStateAndRoster() {
	s.join("Alice")
	bob := s.join("Bob")

	welcomes := bob.events(model.EventWelcome)
	s.Require().Len(welcomes, 1)

	payload := welcomes[0].Data.(model.WelcomePayload)
	s.IsType(model.StateIdle{}, payload.State)
	s.Require().Len(payload.Players, 1, "welcome shows the roster before the joiner")
	s.Equal("Alice", payload.Players[0].Name)
}

func (s *SessionSuite) TestJoinBroadcastBeforeRoomEntry() {
	s.join("Alice")
	s.room.mu.Lock()
	s.room.events = nil
	s.room.mu.Unlock()

	bob := s.join("Bob")

	// Bob was announced to the room, but the broadcast predates his
	// membership, so only his own welcome reached him
	joined := s.room.broadcasts(model.EventPlayerJoined)
	s.Require().Len(joined, 1)
	s.Equal("Bob", joined[0].Data.(model.Player).Name)
	s.Empty(bob.events(model.EventPlayerJoined))
}

func (s *SessionSuite) TestJoinRejections() {
	s.join("Alice")

	tests := []struct {
		name      string
		candidate string
		reason    model.JoinFailReason
	}{
		{"missing", "", model.JoinFailMissing},
		{"whitespace only", "   ", model.JoinFailMissing},
		{"taken exact", "Alice", model.JoinFailTaken},
		{"taken case insensitive", "aLiCe", model.JoinFailTaken},
		{"too short", "a", model.JoinFailTooShort},
		{"too long", strings.Repeat("a", 21), model.JoinFailTooLong},
		{"invalid chars", "bob!", model.JoinFailInvalidChars},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			conn := &fakeConn{}
			s.session.HandleJoin(conn, tt.candidate)

			s.True(conn.isClosed())
			failures := conn.events(model.EventSetNameFailed)
			s.Require().Len(failures, 1)
			s.Equal(tt.reason, failures[0].Data.(model.JoinFailReason))
			s.Equal(1, s.session.PlayerCount(), "roster must be untouched")
		})
	}
}

func (s *SessionSuite) TestNonHostLeave() {
	aliceConn := s.join("Alice")
	bobConn := s.join("Bob")
	_ = aliceConn

	s.session.HandleLeave(bobConn)

	s.Equal(1, s.session.PlayerCount())
	s.False(s.room.isClosed())
	left := s.room.broadcasts(model.EventPlayerLeft)
	s.Require().Len(left, 1)
	s.Equal("Bob", left[0].Data.(model.Player).Name)
}

func (s *SessionSuite) TestHostLeaveClosesSession() {
	aliceConn := s.join("Alice")
	s.join("Bob")
	s.join("Carol")

	s.session.HandleLeave(aliceConn)

	s.True(s.room.isClosed())
	s.Equal(1, s.closes)

	// No state escapes a closed session
	count := s.room.broadcastCount()
	s.session.HandleChat(aliceConn, "anyone there?")
	s.Equal(count, s.room.broadcastCount())
}

func (s *SessionSuite) TestLastPlayerLeaveClosesSession() {
	conn := s.join("Alice")

	s.session.HandleLeave(conn)

	s.True(s.room.isClosed())
	s.Equal(1, s.closes)
}

func (s *SessionSuite) TestCloseIsIdempotent() {
	s.join("Alice")

	s.session.Close()
	s.session.Close()

	s.Equal(1, s.closes)
}

func (s *SessionSuite) TestChatRelay() {
	conn := s.join("Alice")

	s.session.HandleChat(conn, "hello there")

	chats := s.room.broadcasts(model.EventChatMessage)
	s.Require().Len(chats, 1)
	payload := chats[0].Data.(model.ChatPayload)
	s.Require().NotNil(payload.From)
	s.Equal("Alice", *payload.From)
	s.Equal("hello there", payload.Message)
}

func (s *SessionSuite) TestChatTruncatedAndEmptyDropped() {
	conn := s.join("Alice")

	s.session.HandleChat(conn, "   ")
	s.Empty(s.room.broadcasts(model.EventChatMessage))

	s.session.HandleChat(conn, strings.Repeat("x", 500))
	chats := s.room.broadcasts(model.EventChatMessage)
	s.Require().Len(chats, 1)
	s.Len(chats[0].Data.(model.ChatPayload).Message, maxChatLength)
}

func (s *SessionSuite) TestChatFromStrangerIgnored() {
	s.join("Alice")

	s.session.HandleChat(&fakeConn{}, "not in this game")

	s.Empty(s.room.broadcasts(model.EventChatMessage))
}

func (s *SessionSuite) TestGuessStateBroadcast() {
	conn := s.join("Alice")

	s.session.HandleGuessState(conn, model.AnswerTyping{})

	updates := s.room.broadcasts(model.EventPlayerState)
	s.Require().Len(updates, 1)
	payload := updates[0].Data.(model.PlayerStatePayload)
	s.Equal("Alice", payload.Name)
	s.IsType(model.AnswerTyping{}, payload.State)
}

func (s *SessionSuite) TestSubmittedDroppedOutsideRound() {
	conn := s.join("Alice")

	s.session.HandleGuessState(conn, model.AnswerSubmitted{Guess: "something"})

	s.Empty(s.room.broadcasts(model.EventPlayerState))
	s.IsType(model.AnswerIdle{}, s.session.Players()[0].Answer)
}

func (s *SessionSuite) TestPlaylistSelectedNonHostIgnored() {
	s.join("Alice")
	bobConn := s.join("Bob")

	s.session.HandlePlaylistSelected(bobConn, "pl-1", "token")

	s.IsType(model.StateIdle{}, s.session.State())
	s.Equal(0, s.resolverCalls())
}

func (s *SessionSuite) TestPlaylistSelectedSuccess() {
	conn := s.join("Alice")
	s.resolver.queue = model.TrackQueue{
		{Title: "A", Video: &model.Video{ID: "v1", DurationMS: 100000}},
		{Title: "B", Video: &model.Video{ID: "v2", DurationMS: 100000}},
		{Title: "C", Video: &model.Video{ID: "v3", DurationMS: 100000}},
	}

	s.session.HandlePlaylistSelected(conn, "pl-1", "token")

	states := s.room.stateBroadcasts()
	s.Require().NotEmpty(states)
	s.IsType(model.StateLoading{}, states[0])

	s.Require().Eventually(func() bool {
		_, ready := s.session.State().(model.StateReady)
		return ready
	}, time.Second, 5*time.Millisecond)
}

func (s *SessionSuite) TestPlaylistSelectedFailureRevertsToIdle() {
	conn := s.join("Alice")
	s.resolver.err = model.ErrNotEnoughTracks

	s.session.HandlePlaylistSelected(conn, "pl-tiny", "token")

	s.Require().Eventually(func() bool {
		_, idle := s.session.State().(model.StateIdle)
		return idle && len(s.room.broadcasts(model.EventChatMessage)) > 0
	}, time.Second, 5*time.Millisecond)

	chats := s.room.broadcasts(model.EventChatMessage)
	payload := chats[len(chats)-1].Data.(model.ChatPayload)
	s.Nil(payload.From, "failure advisory has no sender")
	s.Contains(payload.Message, "at least 3 tracks")
}

func (s *SessionSuite) resolverCalls() int {
	s.resolver.mu.Lock()
	defer s.resolver.mu.Unlock()
	return s.resolver.calls
}
