package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmg/scrabbly/internal/dependencies/clock"
	"github.com/jmg/scrabbly/internal/dependencies/random"
	"github.com/jmg/scrabbly/internal/model"
	"github.com/jmg/scrabbly/internal/services/board"
	"github.com/jmg/scrabbly/internal/services/scoring"
	"github.com/jmg/scrabbly/internal/storage"
)

const (
	// GameIDLength is the number of characters in a generated game ID
	GameIDLength = 12

	// GameIDAlphabet is the set of characters used in game IDs
	GameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	maxIDAttempts = 10
)

// Config holds the defaults applied to new games
type Config struct {
	DefaultWidth        int
	DefaultHeight       int
	DefaultLanguage     model.Language
	DefaultStrictBounds bool
}

// DefaultConfig returns a standard 15x15 English board without bounds checks
func DefaultConfig() Config {
	return Config{
		DefaultWidth:    15,
		DefaultHeight:   15,
		DefaultLanguage: model.DefaultLanguage,
	}
}

// Controller manages games: creation, plays, draws and turn flow.
// Every call that changes a game holds that game's lock from load to save.
type Controller struct {
	storage        storage.Storage
	boardService   *board.Service
	scoringService *scoring.Service
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger
	cfg            Config
	locks          *gameLocks
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	scoringService *scoring.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	cfg Config,
) *Controller {
	return &Controller{
		storage:        storage,
		boardService:   boardService,
		scoringService: scoringService,
		clock:          clock,
		random:         random,
		logger:         logger,
		cfg:            cfg,
		locks:          newGameLocks(),
	}
}

// Defaults returns the defaults applied to new games
func (c *Controller) Defaults() Config {
	return c.cfg
}

// CreateGame starts a game with an empty board and a full tile bag.
// Zero dimensions and an empty language are replaced by the defaults.
func (c *Controller) CreateGame(ctx context.Context, cfg model.GameConfig) (*model.Game, error) {
	if cfg.Width == 0 {
		cfg.Width = c.cfg.DefaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = c.cfg.DefaultHeight
	}
	if cfg.Language == "" {
		cfg.Language = c.cfg.DefaultLanguage
	}

	id, err := c.newGameID(ctx)
	if err != nil {
		return nil, err
	}

	game, err := model.NewGame(id, cfg, c.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("language", string(game.Language)),
		slog.Int("player_count", len(game.Players)),
		slog.Int("width", game.Dimensions.Width),
		slog.Int("height", game.Dimensions.Height),
		slog.Bool("strict_bounds", game.StrictBounds),
	)

	return game, nil
}

// newGameID generates an ID not used by any stored game
func (c *Controller) newGameID(ctx context.Context) (model.GameID, error) {
	for range maxIDAttempts {
		id := model.GameID(c.random.String(GameIDLength, GameIDAlphabet))
		_, err := c.storage.GetGame(ctx, id)
		if errors.Is(err, model.ErrGameNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("no free game ID after %d attempts", maxIDAttempts)
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// ListGames returns the IDs of every stored game
func (c *Controller) ListGames(ctx context.Context) ([]model.GameID, error) {
	return c.storage.ListGames(ctx)
}

// DeleteGame removes a game
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	unlock := c.locks.lock(gameID)
	defer unlock()

	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return err
	}
	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return err
	}

	c.logger.Info("game deleted", slog.String("game_id", string(gameID)))
	return nil
}

// Play validates the tiles for the current player and, if every word they
// form is legal, commits them, credits the player and advances the turn.
// A rejected play returns a *model.PlayRejectedError and leaves the game
// unchanged. The updated game is returned alongside the result.
func (c *Controller) Play(ctx context.Context, gameID model.GameID, tiles []model.Tile) (*model.PlayResult, *model.Game, error) {
	unlock := c.locks.lock(gameID)
	defer unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}

	result, err := c.boardService.Evaluate(game, tiles)
	if err != nil {
		return nil, nil, err
	}

	player := game.CurrentPlayer().Name
	if err := game.Apply(result, c.clock.Now()); err != nil {
		return nil, nil, err
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	c.logger.Info("play accepted",
		slog.String("game_id", string(gameID)),
		slog.String("player", player),
		slog.String("word", result.Placed.Text()),
		slog.Int("word_count", len(result.Words)),
		slog.Int("score", result.Score),
	)

	return result, game, nil
}

// DrawTiles draws n tiles from the game's bag. Turn order and scores are
// unaffected. If fewer than n tiles remain nothing is drawn and the error
// wraps model.ErrPoolExhausted.
func (c *Controller) DrawTiles(ctx context.Context, gameID model.GameID, n int) ([]rune, *model.Game, error) {
	unlock := c.locks.lock(gameID)
	defer unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}

	letters, err := game.DrawTiles(n, c.random, c.clock.Now())
	if err != nil {
		return nil, nil, err
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, nil, err
	}

	c.logger.Debug("tiles drawn",
		slog.String("game_id", string(gameID)),
		slog.Int("count", n),
		slog.Int("remaining", game.Bag.Remaining()),
	)

	return letters, game, nil
}

// CurrentPlayer returns the player whose turn it is
func (c *Controller) CurrentPlayer(ctx context.Context, gameID model.GameID) (*model.Player, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return game.CurrentPlayer(), nil
}

// Standings returns the players by score, highest first, and the leader's
// name (empty on a tie)
func (c *Controller) Standings(ctx context.Context, gameID model.GameID) ([]model.Player, string, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, "", err
	}

	standings := c.scoringService.Standings(game.Players)
	return standings, c.scoringService.DetermineWinner(standings), nil
}

// Interface for dependency injection
type ControllerInterface interface {
	Defaults() Config
	CreateGame(ctx context.Context, cfg model.GameConfig) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	ListGames(ctx context.Context) ([]model.GameID, error)
	DeleteGame(ctx context.Context, gameID model.GameID) error
	Play(ctx context.Context, gameID model.GameID, tiles []model.Tile) (*model.PlayResult, *model.Game, error)
	DrawTiles(ctx context.Context, gameID model.GameID, n int) ([]rune, *model.Game, error)
	CurrentPlayer(ctx context.Context, gameID model.GameID) (*model.Player, error)
	Standings(ctx context.Context, gameID model.GameID) ([]model.Player, string, error)
}

var _ ControllerInterface = (*Controller)(nil)
