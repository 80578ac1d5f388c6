package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/NachoToast/SpotifyQuiz/internal/dependencies/mocks"
	"github.com/NachoToast/SpotifyQuiz/internal/spotify"
	"github.com/NachoToast/SpotifyQuiz/internal/storage/memory"
	"github.com/NachoToast/SpotifyQuiz/internal/youtube"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked time and
// randomness. Vendor base URLs point at httptest servers; leave them empty
// when the test never resolves a playlist.
func NewTestApp(spotifyBaseURL, youtubeBaseURL string) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	store := memory.New(mockClock, time.Hour)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(
		store,
		spotify.NewClient(spotifyBaseURL),
		youtube.NewClient(youtubeBaseURL, "test-key"),
		mockClock,
		mockRandom,
		logger,
	)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
