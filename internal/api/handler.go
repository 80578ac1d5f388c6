package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/NachoToast/SpotifyQuiz/internal/api/apierr"
	"github.com/NachoToast/SpotifyQuiz/internal/api/response"
	"github.com/NachoToast/SpotifyQuiz/internal/model"
	"github.com/NachoToast/SpotifyQuiz/internal/services/registry"
	"github.com/NachoToast/SpotifyQuiz/internal/transport"
)

// GamesHandler serves game creation and the websocket join entrypoint
type GamesHandler struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// NewGamesHandler creates a GamesHandler
func NewGamesHandler(reg *registry.Registry, logger *slog.Logger) *GamesHandler {
	return &GamesHandler{
		registry: reg,
		logger:   logger,
	}
}

// Create mints a new game owned by the caller's network identity
func (h *GamesHandler) Create(w http.ResponseWriter, r *http.Request) {
	code, err := h.registry.Create(clientIP(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreateGameResponse{Code: string(code)})
}

// Join upgrades the connection to a websocket and hands it to the game. An
// unknown code is rejected before the session is ever involved.
func (h *GamesHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := model.GameCode(mux.Vars(r)["code"])

	sess, err := h.registry.Lookup(code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	username := r.URL.Query().Get("username")

	transport.ServeWS(w, r, sess, username, h.logger)
}

// Health reports liveness and the live game count
func (h *GamesHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{
		Status: "ok",
		Games:  h.registry.Count(),
	})
}
