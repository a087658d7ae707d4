package storage

import (
	"context"

	"github.com/jmg/scrabbly/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	ListGames(ctx context.Context) ([]model.GameID, error)

	// Lexicon operations
	GetLexiconWords(ctx context.Context, lang model.Language) ([]string, error)
	SaveLexiconWords(ctx context.Context, lang model.Language, words []string) error
}
