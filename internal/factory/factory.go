package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmg/scrabbly/internal/dependencies/clock"
	"github.com/jmg/scrabbly/internal/dependencies/random"
	"github.com/jmg/scrabbly/internal/model"
	"github.com/jmg/scrabbly/internal/services/board"
	"github.com/jmg/scrabbly/internal/services/game"
	"github.com/jmg/scrabbly/internal/services/lexicon"
	"github.com/jmg/scrabbly/internal/services/scoring"
	"github.com/jmg/scrabbly/internal/storage"
	"github.com/jmg/scrabbly/internal/storage/memory"
	redisstorage "github.com/jmg/scrabbly/internal/storage/redis"
	sqlitestorage "github.com/jmg/scrabbly/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	LexiconService *lexicon.Service
	BoardService   *board.Service
	ScoringService *scoring.Service
	GameController *game.Controller

	closer io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// LexiconDir holds <language>.txt word lists (optional)
	// Languages without a file are loaded from storage when possible
	LexiconDir      string
	LexiconEncoding lexicon.Encoding
	// GameConfig holds the defaults for new games
	// If zero value, defaults to game.DefaultConfig()
	GameConfig game.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, closer, err := newStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	gameCfg := cfg.GameConfig
	if gameCfg.DefaultWidth == 0 {
		gameCfg = game.DefaultConfig()
	}

	app := newWithDependencies(store, clock.New(), random.New(), gameCfg, logger)
	app.closer = closer

	if err := app.loadLexicons(ctx, cfg, logger); err != nil {
		_ = app.Close()
		return nil, err
	}

	return app, nil
}

func newStorage(ctx context.Context, cfg Config, logger *slog.Logger) (storage.Storage, io.Closer, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil, nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, nil, errors.New("RedisConfig required when StorageType is redis")
		}
		store, err := redisstorage.New(ctx, *cfg.RedisConfig, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		store, err := sqlitestorage.New(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", storageType)
	}
}

// loadLexicons reads the word list directory, then falls back to storage for
// any language still missing
func (a *App) loadLexicons(ctx context.Context, cfg Config, logger *slog.Logger) error {
	if cfg.LexiconDir != "" {
		if err := a.LexiconService.LoadDirectory(ctx, cfg.LexiconDir, cfg.LexiconEncoding); err != nil {
			return fmt.Errorf("loading lexicons: %w", err)
		}
	}

	for _, lang := range model.Languages() {
		if a.LexiconService.IsLoaded(lang) {
			continue
		}
		err := a.LexiconService.LoadFromStorage(ctx, lang)
		if errors.Is(err, model.ErrLexiconNotLoaded) {
			logger.Warn("lexicon unavailable", slog.String("language", string(lang)))
			continue
		}
		if err != nil {
			return fmt.Errorf("loading %s lexicon from storage: %w", lang, err)
		}
	}
	return nil
}

// Close releases the storage backend
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, gameCfg game.Config, logger *slog.Logger) *App {
	lexiconService := lexicon.New(store, logger)
	scoringService := scoring.New(lexiconService)
	boardService := board.New(lexiconService, scoringService, logger)
	gameController := game.NewController(store, boardService, scoringService, clk, rnd, logger, gameCfg)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		LexiconService: lexiconService,
		BoardService:   boardService,
		ScoringService: scoringService,
		GameController: gameController,
	}
}
