package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jmg/scrabbly/internal/api/request"
	"github.com/jmg/scrabbly/internal/api/response"
	"github.com/jmg/scrabbly/internal/model"
	"github.com/jmg/scrabbly/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{gameController: gameController}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	lang, err := model.ParseLanguage(req.Language)
	if err != nil {
		WriteError(w, err)
		return
	}
	if req.Language == "" {
		lang = h.gameController.Defaults().DefaultLanguage
	}

	strict := h.gameController.Defaults().DefaultStrictBounds
	if req.StrictBounds != nil {
		strict = *req.StrictBounds
	}

	g, err := h.gameController.CreateGame(r.Context(), model.GameConfig{
		Width:        req.Width,
		Height:       req.Height,
		Players:      req.Players,
		Language:     lang,
		StrictBounds: strict,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.gameController.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameListFromModel(ids))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.gameController.DeleteGame(r.Context(), gameID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Play handles POST /api/v1/games/{id}/plays
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	var req request.PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	tiles := make([]model.Tile, 0, len(req.Tiles))
	for _, t := range req.Tiles {
		letter, err := model.ParseLetter(t.Letter)
		if err != nil {
			// Same rejection the board gives a letter outside the alphabet
			WriteError(w, model.Reject(model.RejectInvalidLetter, t.Letter))
			return
		}
		tiles = append(tiles, model.NewTile(letter, t.X, t.Y))
	}

	result, g, err := h.gameController.Play(r.Context(), gameID(r), tiles)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayResponseFromModel(result, g))
}

// Draw handles POST /api/v1/games/{id}/draws
func (h *GameHandler) Draw(w http.ResponseWriter, r *http.Request) {
	var req request.DrawRequest
	// An empty body or a missing count draws a full rack
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	count := model.RackSize
	if req.Count != nil {
		count = *req.Count
	}

	letters, g, err := h.gameController.DrawTiles(r.Context(), gameID(r), count)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DrawResponseFromModel(letters, g))
}

// CurrentPlayer handles GET /api/v1/games/{id}/current-player
func (h *GameHandler) CurrentPlayer(w http.ResponseWriter, r *http.Request) {
	p, err := h.gameController.CurrentPlayer(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(*p))
}

// Standings handles GET /api/v1/games/{id}/standings
func (h *GameHandler) Standings(w http.ResponseWriter, r *http.Request) {
	players, winner, err := h.gameController.Standings(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StandingsFromModel(players, winner))
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}
