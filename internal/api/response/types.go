package response

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/jmg/scrabbly/internal/model"
)

// HealthResponse is the response for the health check
type HealthResponse struct {
	Status string `json:"status"`
}

// Tile represents a placed letter in API responses
type Tile struct {
	Letter string `json:"letter"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// TileFromModel converts a model.Tile
func TileFromModel(t model.Tile) Tile {
	return Tile{Letter: string(t.Letter), X: t.X, Y: t.Y}
}

// Player represents a player in API responses
type Player struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// PlayerFromModel converts a model.Player
func PlayerFromModel(p model.Player) Player {
	return Player{Name: p.Name, Points: p.Points}
}

// Game is the full view of a game
type Game struct {
	ID            string    `json:"id"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	Language      string    `json:"language"`
	StrictBounds  bool      `json:"strict_bounds"`
	Tiles         []Tile    `json:"tiles"`
	Players       []Player  `json:"players"`
	Turn          int       `json:"turn"`
	CurrentPlayer string    `json:"current_player"`
	BagRemaining  int       `json:"bag_remaining"`
	PlayCount     int       `json:"play_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GameFromModel converts a model.Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:            string(g.ID),
		Width:         g.Dimensions.Width,
		Height:        g.Dimensions.Height,
		Language:      string(g.Language),
		StrictBounds:  g.StrictBounds,
		Tiles:         lo.Map(g.Matrix.Tiles(), func(t model.Tile, _ int) Tile { return TileFromModel(t) }),
		Players:       lo.Map(g.Players, func(p *model.Player, _ int) Player { return PlayerFromModel(*p) }),
		Turn:          g.Turn,
		CurrentPlayer: g.CurrentPlayer().Name,
		BagRemaining:  g.Bag.Remaining(),
		PlayCount:     g.PlayCount,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// GameList is the response for listing games
type GameList struct {
	Games []string `json:"games"`
}

// GameListFromModel converts a list of game IDs
func GameListFromModel(ids []model.GameID) GameList {
	return GameList{Games: lo.Map(ids, func(id model.GameID, _ int) string { return string(id) })}
}

// WordScore is one word formed by a play and its score
type WordScore struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
	Tiles []Tile `json:"tiles"`
}

// PlayResponse is the response for an accepted play
type PlayResponse struct {
	Score      int         `json:"score"`
	Words      []WordScore `json:"words"`
	NextPlayer string      `json:"next_player"`
}

// PlayResponseFromModel converts a play result and the game it was applied to
func PlayResponseFromModel(r *model.PlayResult, g *model.Game) PlayResponse {
	return PlayResponse{
		Score: r.Score,
		Words: lo.Map(r.Words, func(ws model.WordScore, _ int) WordScore {
			return WordScore{
				Word:  ws.Text,
				Score: ws.Score,
				Tiles: lo.Map(ws.Word.Tiles, func(t model.Tile, _ int) Tile { return TileFromModel(t) }),
			}
		}),
		NextPlayer: g.CurrentPlayer().Name,
	}
}

// DrawResponse is the response for drawing tiles
type DrawResponse struct {
	Letters   []string `json:"letters"`
	Remaining int      `json:"remaining"`
}

// DrawResponseFromModel converts drawn letters and the game they came from
func DrawResponseFromModel(letters []rune, g *model.Game) DrawResponse {
	return DrawResponse{
		Letters:   lo.Map(letters, func(r rune, _ int) string { return string(r) }),
		Remaining: g.Bag.Remaining(),
	}
}

// Standings is the response for the standings endpoint.
// Winner is empty while the top score is tied.
type Standings struct {
	Players []Player `json:"players"`
	Winner  string   `json:"winner"`
}

// StandingsFromModel converts ranked players and the winner
func StandingsFromModel(players []model.Player, winner string) Standings {
	return Standings{
		Players: lo.Map(players, func(p model.Player, _ int) Player { return PlayerFromModel(p) }),
		Winner:  winner,
	}
}

// JSON encodes data before touching the response, so an encoding failure
// still produces a clean 500 instead of a truncated body.
func JSON(w http.ResponseWriter, status int, data any) {
	var body bytes.Buffer
	if data != nil {
		if err := json.NewEncoder(&body).Encode(data); err != nil {
			status = http.StatusInternalServerError
			body.Reset()
			body.WriteString(`{"error":{"code":"INTERNAL_ERROR","message":"Internal server error"}}` + "\n")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = body.WriteTo(w)
}

// NoContent writes a bodiless 204
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
