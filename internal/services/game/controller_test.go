package game

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jmg/scrabbly/internal/dependencies/mocks"
	"github.com/jmg/scrabbly/internal/model"
	"github.com/jmg/scrabbly/internal/services/board"
	"github.com/jmg/scrabbly/internal/services/lexicon"
	"github.com/jmg/scrabbly/internal/services/scoring"
	"github.com/jmg/scrabbly/internal/storage/memory"
	"github.com/jmg/scrabbly/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	lexicon    *lexicon.Service
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.lexicon = lexicon.New(s.storage, testutil.NopLogger())
	scoringService := scoring.New(s.lexicon)
	boardService := board.New(s.lexicon, scoringService, testutil.NopLogger())
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.controller = NewController(s.storage, boardService, scoringService, s.clock, s.random, testutil.NopLogger(), DefaultConfig())
	s.ctx = context.Background()

	_ = s.lexicon.LoadWords(model.LanguageEnglish, []string{"of", "ofo", "word", "words"})
}

func (s *ControllerSuite) createGame(id string, players ...string) *model.Game {
	s.random.QueueString(id)
	game, err := s.controller.CreateGame(s.ctx, model.GameConfig{Width: 10, Height: 10, Players: players})
	s.Require().NoError(err)
	return game
}

func (s *ControllerSuite) snapshot(id model.GameID) []byte {
	game, err := s.storage.GetGame(s.ctx, id)
	s.Require().NoError(err)
	data, err := json.Marshal(game)
	s.Require().NoError(err)
	return data
}

// CreateGame tests

func (s *ControllerSuite) TestCreateGameSucceeds() {
	game := s.createGame("GAME12345678", "alice", "bob")

	s.Equal(model.GameID("GAME12345678"), game.ID)
	s.Equal(model.Dimensions{Width: 10, Height: 10}, game.Dimensions)
	s.Equal(model.LanguageEnglish, game.Language)
	s.Equal(100, game.Bag.Remaining())
	s.Equal("alice", game.CurrentPlayer().Name)
	s.Equal(s.clock.Now(), game.CreatedAt)
}

func (s *ControllerSuite) TestCreateGameAppliesDefaults() {
	s.random.QueueString("GAME1")
	game, err := s.controller.CreateGame(s.ctx, model.GameConfig{Players: []string{"alice"}})
	s.Require().NoError(err)

	s.Equal(model.Dimensions{Width: 15, Height: 15}, game.Dimensions)
	s.Equal(model.DefaultLanguage, game.Language)
	s.False(game.StrictBounds)
}

func (s *ControllerSuite) TestCreateGameIsPersisted() {
	game := s.createGame("GAME1", "alice")

	retrieved, err := s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(game.Players, retrieved.Players)
}

func (s *ControllerSuite) TestCreateGameSkipsUsedIDs() {
	s.createGame("GAME1", "alice")

	s.random.QueueString("GAME1", "GAME2")
	game, err := s.controller.CreateGame(s.ctx, model.GameConfig{Players: []string{"bob"}})
	s.Require().NoError(err)
	s.Equal(model.GameID("GAME2"), game.ID)
}

func (s *ControllerSuite) TestCreateGameFailsWithNoPlayers() {
	_, err := s.controller.CreateGame(s.ctx, model.GameConfig{})
	s.ErrorIs(err, model.ErrInsufficientPlayers)
}

func (s *ControllerSuite) TestCreateGameFailsWithBadConfig() {
	_, err := s.controller.CreateGame(s.ctx, model.GameConfig{Width: -1, Players: []string{"a"}})
	s.ErrorIs(err, model.ErrInvalidDimensions)

	_, err = s.controller.CreateGame(s.ctx, model.GameConfig{Language: "latin", Players: []string{"a"}})
	s.ErrorIs(err, model.ErrUnknownLanguage)
}

func (s *ControllerSuite) TestPlayWithoutLexiconForLanguage() {
	s.random.QueueString("SPAIN1")
	game, err := s.controller.CreateGame(s.ctx, model.GameConfig{
		Players:  []string{"ana"},
		Language: model.LanguageSpanish,
	})
	s.Require().NoError(err)
	before := s.snapshot(game.ID)

	_, _, err = s.controller.Play(s.ctx, game.ID, testutil.Across("AÑO", 0, 0))
	s.ErrorIs(err, model.ErrLexiconNotLoaded)
	s.NotErrorIs(err, model.ErrPlayRejected)
	s.Equal(string(before), string(s.snapshot(game.ID)))
}

// Play tests

func (s *ControllerSuite) TestPlayScoresAndAdvancesTurn() {
	game := s.createGame("GAME1", "alice", "bob")

	result, updated, err := s.controller.Play(s.ctx, game.ID, testutil.Across("OF", 0, 0))
	s.Require().NoError(err)
	s.Equal(5, result.Score)
	s.Equal(1, updated.Turn)

	stored, err := s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(5, stored.Players[0].Points)
	s.Equal("bob", stored.CurrentPlayer().Name)
	s.Equal(2, stored.Matrix.Len())
}

func (s *ControllerSuite) TestPlaySequence() {
	game := s.createGame("GAME1", "alice", "bob")

	_, _, err := s.controller.Play(s.ctx, game.ID, testutil.Across("OF", 0, 0))
	s.Require().NoError(err)

	_, _, err = s.controller.Play(s.ctx, game.ID, testutil.Across("OF", 0, 0))
	s.ErrorIs(err, model.ErrPlayRejected)

	result, _, err := s.controller.Play(s.ctx, game.ID, testutil.Down("OF", 2, 0))
	s.Require().NoError(err)
	s.Equal(11, result.Score)

	player, err := s.controller.CurrentPlayer(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal("alice", player.Name)
}

func (s *ControllerSuite) TestRejectedPlayLeavesGameUnchanged() {
	game := s.createGame("GAME1", "alice", "bob")
	_, _, err := s.controller.Play(s.ctx, game.ID, testutil.Across("OF", 0, 0))
	s.Require().NoError(err)
	before := s.snapshot(game.ID)

	rejected := [][]model.Tile{
		testutil.Across("OF", 0, 0),
		{model.NewTile('O', 0, 5), model.NewTile('F', 3, 5)},
		testutil.Across("OF", 5, 5),
		testutil.Across("QZ", 0, 1),
		nil,
	}
	for _, tiles := range rejected {
		_, _, err := s.controller.Play(s.ctx, game.ID, tiles)
		s.ErrorIs(err, model.ErrPlayRejected)
	}

	s.Equal(string(before), string(s.snapshot(game.ID)))
}

func (s *ControllerSuite) TestPlayGameNotFound() {
	_, _, err := s.controller.Play(s.ctx, "missing", testutil.Across("OF", 0, 0))
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestConcurrentPlaysOnOneGame() {
	game := s.createGame("GAME1", "alice", "bob")

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, errs[i] = s.controller.Play(s.ctx, game.ID, testutil.Across("OF", 0, 0))
		}()
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
			continue
		}
		reason, ok := model.RejectionReason(err)
		s.True(ok)
		s.Equal(model.RejectOccupied, reason)
	}
	s.Equal(1, accepted)

	stored, err := s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(1, stored.PlayCount)
	s.Equal(5, stored.Players[0].Points)
	s.Equal(0, s.controller.locks.size())
}

func (s *ControllerSuite) TestConcurrentPlaysOnDifferentGames() {
	const games = 5
	ids := make([]model.GameID, games)
	for i := range games {
		ids[i] = s.createGame(fmt.Sprintf("GAME%d", i), "alice").ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.controller.Play(s.ctx, id, testutil.Across("OF", 0, 0))
			s.NoError(err)
		}()
	}
	wg.Wait()

	for _, id := range ids {
		stored, err := s.controller.GetGame(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(5, stored.Players[0].Points)
	}
}

// DrawTiles tests

func (s *ControllerSuite) TestDrawTiles() {
	game := s.createGame("GAME1", "alice", "bob")

	letters, updated, err := s.controller.DrawTiles(s.ctx, game.ID, model.RackSize)
	s.Require().NoError(err)
	s.Len(letters, model.RackSize)
	s.Equal(93, updated.Bag.Remaining())
	s.Equal(0, updated.Turn)

	stored, err := s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(93, stored.Bag.Remaining())
}

func (s *ControllerSuite) TestDrawUntilExhausted() {
	game := s.createGame("GAME1", "alice")

	for i := 0; i < 14; i++ {
		_, _, err := s.controller.DrawTiles(s.ctx, game.ID, model.RackSize)
		s.Require().NoError(err)
	}
	before := s.snapshot(game.ID)

	_, _, err := s.controller.DrawTiles(s.ctx, game.ID, model.RackSize)
	s.ErrorIs(err, model.ErrPoolExhausted)
	s.Equal(string(before), string(s.snapshot(game.ID)))

	letters, updated, err := s.controller.DrawTiles(s.ctx, game.ID, 2)
	s.Require().NoError(err)
	s.Len(letters, 2)
	s.True(updated.Bag.IsEmpty())
}

func (s *ControllerSuite) TestDrawTilesNegative() {
	game := s.createGame("GAME1", "alice")

	_, _, err := s.controller.DrawTiles(s.ctx, game.ID, -1)
	s.ErrorIs(err, model.ErrInvalidDrawCount)
}

func (s *ControllerSuite) TestDrawTilesGameNotFound() {
	_, _, err := s.controller.DrawTiles(s.ctx, "missing", 7)
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Standings tests

func (s *ControllerSuite) TestStandings() {
	game := s.createGame("GAME1", "alice", "bob")
	_, _, err := s.controller.Play(s.ctx, game.ID, testutil.Across("OF", 0, 0))
	s.Require().NoError(err)
	_, _, err = s.controller.Play(s.ctx, game.ID, testutil.Down("OF", 2, 0))
	s.Require().NoError(err)

	standings, winner, err := s.controller.Standings(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal([]model.Player{{Name: "bob", Points: 11}, {Name: "alice", Points: 5}}, standings)
	s.Equal("bob", winner)
}

func (s *ControllerSuite) TestStandingsTieAtStart() {
	game := s.createGame("GAME1", "alice", "bob")

	_, winner, err := s.controller.Standings(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal("", winner)
}

// DeleteGame / ListGames tests

func (s *ControllerSuite) TestDeleteGame() {
	game := s.createGame("GAME1", "alice")

	s.Require().NoError(s.controller.DeleteGame(s.ctx, game.ID))

	_, err := s.controller.GetGame(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)

	err = s.controller.DeleteGame(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestListGames() {
	s.createGame("GAME2", "alice")
	s.createGame("GAME1", "bob")

	ids, err := s.controller.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"GAME1", "GAME2"}, ids)
}
