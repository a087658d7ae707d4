package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/jmg/scrabbly/internal/model"
	"github.com/jmg/scrabbly/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Games are copied on the way in and out so callers never share state.
type Storage struct {
	mu sync.RWMutex

	games        map[model.GameID]*model.Game
	lexiconWords map[model.Language][]string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:        make(map[model.GameID]*model.Game),
		lexiconWords: make(map[model.Language][]string),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game.Clone()
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]model.GameID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := lo.Keys(s.games)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Lexicon operations

func (s *Storage) GetLexiconWords(ctx context.Context, lang model.Language) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	words, ok := s.lexiconWords[lang]
	if !ok {
		return nil, model.ErrLexiconNotLoaded
	}
	result := make([]string, len(words))
	copy(result, words)
	return result, nil
}

func (s *Storage) SaveLexiconWords(ctx context.Context, lang model.Language, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]string, len(words))
	copy(stored, words)
	s.lexiconWords[lang] = stored
	return nil
}
