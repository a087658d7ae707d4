// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jmg/scrabbly/internal/dependencies/mocks"
	"github.com/jmg/scrabbly/internal/model"
	"github.com/jmg/scrabbly/internal/storage"
)

// Suite runs the common storage tests against the backend returned by
// NewStorage. Backends embed it and set NewStorage in their SetupTest.
type Suite struct {
	suite.Suite
	NewStorage func() storage.Storage

	Storage storage.Storage
	Ctx     context.Context
}

func (s *Suite) SetupTest() {
	s.Require().NotNil(s.NewStorage, "NewStorage must be set before SetupTest")
	s.Storage = s.NewStorage()
	s.Ctx = context.Background()
}

func (s *Suite) newGame(id model.GameID) *model.Game {
	game, err := model.NewGame(id, model.GameConfig{
		Width:    10,
		Height:   10,
		Players:  []string{"alice", "bob"},
		Language: model.LanguageSpanish,
	}, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	return game
}

// Game tests

func (s *Suite) TestSaveAndGetGame() {
	game := s.newGame("game-1")
	w := model.NewWord(model.NewTile('O', 0, 0), model.NewTile('F', 1, 0))
	s.Require().NoError(game.Apply(&model.PlayResult{Placed: w, Score: 5}, game.CreatedAt))
	_, err := game.DrawTiles(7, mocks.NewMockRandom(), game.CreatedAt)
	s.Require().NoError(err)

	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	retrieved, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.Dimensions, retrieved.Dimensions)
	s.Equal(model.LanguageSpanish, retrieved.Language)
	s.Equal(game.Matrix.Tiles(), retrieved.Matrix.Tiles())
	s.Equal(game.Bag.Counts(), retrieved.Bag.Counts())
	s.Equal(game.Players, retrieved.Players)
	s.Equal(1, retrieved.Turn)
	s.Equal(1, retrieved.PlayCount)
	s.True(game.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *Suite) TestSaveGameOverwrites() {
	game := s.newGame("game-1")
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	game.Turn = 1
	game.Players[0].Points = 12
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	retrieved, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(1, retrieved.Turn)
	s.Equal(12, retrieved.Players[0].Points)
}

func (s *Suite) TestRetrievedGameIsIndependent() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.newGame("game-1")))

	retrieved, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	retrieved.Players[0].Points = 99

	again, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(0, again.Players[0].Points)
}

func (s *Suite) TestGetGameNotFound() {
	_, err := s.Storage.GetGame(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestDeleteGame() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.newGame("game-1")))

	s.Require().NoError(s.Storage.DeleteGame(s.Ctx, "game-1"))

	_, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestDeleteMissingGameIsNoop() {
	s.NoError(s.Storage.DeleteGame(s.Ctx, "nonexistent"))
}

func (s *Suite) TestListGames() {
	ids, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Empty(ids)

	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.newGame("game-b")))
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.newGame("game-a")))

	ids, err = s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"game-a", "game-b"}, ids)
}

// Lexicon tests

func (s *Suite) TestLexiconWordsNotLoaded() {
	_, err := s.Storage.GetLexiconWords(s.Ctx, model.LanguageEnglish)
	s.ErrorIs(err, model.ErrLexiconNotLoaded)
}

func (s *Suite) TestSaveAndGetLexiconWords() {
	s.Require().NoError(s.Storage.SaveLexiconWords(s.Ctx, model.LanguageEnglish, []string{"of", "word", "words"}))
	s.Require().NoError(s.Storage.SaveLexiconWords(s.Ctx, model.LanguageSpanish, []string{"año"}))

	words, err := s.Storage.GetLexiconWords(s.Ctx, model.LanguageEnglish)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"of", "word", "words"}, words)

	words, err = s.Storage.GetLexiconWords(s.Ctx, model.LanguageSpanish)
	s.Require().NoError(err)
	s.Equal([]string{"año"}, words)
}

func (s *Suite) TestSaveLexiconWordsReplaces() {
	s.Require().NoError(s.Storage.SaveLexiconWords(s.Ctx, model.LanguageEnglish, []string{"old"}))
	s.Require().NoError(s.Storage.SaveLexiconWords(s.Ctx, model.LanguageEnglish, []string{"new", "words"}))

	words, err := s.Storage.GetLexiconWords(s.Ctx, model.LanguageEnglish)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"new", "words"}, words)
}
