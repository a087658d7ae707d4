package model

import (
	"fmt"
	"time"
)

// GameID uniquely identifies a game
type GameID string

// Dimensions is the configured size of a board
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether p lies within the board
func (d Dimensions) Contains(p Position) bool {
	return p.X >= 0 && p.X < d.Width && p.Y >= 0 && p.Y < d.Height
}

// GameConfig holds the parameters used to create a game
type GameConfig struct {
	Width        int
	Height       int
	Players      []string
	Language     Language
	StrictBounds bool // reject tiles outside the board instead of allowing an unbounded board
}

// Game is a single board: its committed tiles, tile bag, players and turn
type Game struct {
	ID           GameID     `json:"id"`
	Dimensions   Dimensions `json:"dimensions"`
	Language     Language   `json:"language"`
	StrictBounds bool       `json:"strict_bounds"`
	Matrix       *Matrix    `json:"matrix"`
	Bag          *TileBag   `json:"bag"`
	Players      []*Player  `json:"players"`
	Turn         int        `json:"turn"` // index into Players
	PlayCount    int        `json:"play_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewGame creates a game with an empty matrix and a full bag
func NewGame(id GameID, cfg GameConfig, now time.Time) (*Game, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cfg.Width, cfg.Height)
	}
	if len(cfg.Players) == 0 {
		return nil, ErrInsufficientPlayers
	}
	lang := cfg.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	bag, err := NewTileBag(lang)
	if err != nil {
		return nil, err
	}

	players := make([]*Player, len(cfg.Players))
	for i, name := range cfg.Players {
		players[i] = &Player{Name: name}
	}

	return &Game{
		ID:           id,
		Dimensions:   Dimensions{Width: cfg.Width, Height: cfg.Height},
		Language:     lang,
		StrictBounds: cfg.StrictBounds,
		Matrix:       NewMatrix(),
		Bag:          bag,
		Players:      players,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.Turn]
}

// Apply commits a validated play: the tiles are written, the current player
// is credited and the turn advances. If any tile cell has been taken since
// the play was validated, nothing changes.
func (g *Game) Apply(result *PlayResult, now time.Time) error {
	if err := g.Matrix.Place(result.Placed); err != nil {
		return err
	}
	g.Players[g.Turn].Points += result.Score
	g.Turn = (g.Turn + 1) % len(g.Players)
	g.PlayCount++
	g.UpdatedAt = now
	return nil
}

// DrawTiles takes n tiles from the bag. Turn order and scores are unaffected.
func (g *Game) DrawTiles(n int, rnd Intner, now time.Time) ([]rune, error) {
	letters, err := g.Bag.Draw(n, rnd)
	if err != nil {
		return nil, err
	}
	g.UpdatedAt = now
	return letters, nil
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	clone := *g
	clone.Matrix = g.Matrix.Clone()
	clone.Bag = g.Bag.Clone()
	clone.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		player := *p
		clone.Players[i] = &player
	}
	return &clone
}
