package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/NachoToast/SpotifyQuiz/internal/api/apierr"
	"github.com/NachoToast/SpotifyQuiz/internal/middleware"
	"github.com/NachoToast/SpotifyQuiz/internal/services/registry"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger   *slog.Logger
	Registry *registry.Registry
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	games := NewGamesHandler(cfg.Registry, cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, panicHandler))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/games", games.Create).Methods(http.MethodPost)
	api.HandleFunc("/games/{code}/ws", games.Join).Methods(http.MethodGet)
	api.HandleFunc("/health", games.Health).Methods(http.MethodGet)

	return r
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
