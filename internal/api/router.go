package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jmg/scrabbly/internal/api/handler"
	"github.com/jmg/scrabbly/internal/api/middleware"
	"github.com/jmg/scrabbly/internal/api/response"
	"github.com/jmg/scrabbly/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameController)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	games := api.PathPrefix("/games").Subrouter()
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("", gameHandler.List).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/plays", gameHandler.Play).Methods(http.MethodPost)
	games.HandleFunc("/{id}/draws", gameHandler.Draw).Methods(http.MethodPost)
	games.HandleFunc("/{id}/current-player", gameHandler.CurrentPlayer).Methods(http.MethodGet)
	games.HandleFunc("/{id}/standings", gameHandler.Standings).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
