package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jmg/scrabbly/internal/dependencies/mocks"
)

type GameSuite struct {
	suite.Suite
	now  time.Time
	game *Game
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameSuite))
}

func (s *GameSuite) SetupTest() {
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	game, err := NewGame("game-1", GameConfig{
		Width:   10,
		Height:  10,
		Players: []string{"alice", "bob"},
	}, s.now)
	s.Require().NoError(err)
	s.game = game
}

func (s *GameSuite) result(score int, tiles ...Tile) *PlayResult {
	w := NewWord(tiles...)
	return &PlayResult{
		Placed: w,
		Words:  []WordScore{{Word: w, Text: w.Text(), Score: score}},
		Score:  score,
	}
}

func (s *GameSuite) TestNewGame() {
	s.Equal(LanguageEnglish, s.game.Language)
	s.Equal(Dimensions{Width: 10, Height: 10}, s.game.Dimensions)
	s.True(s.game.Matrix.IsEmpty())
	s.Equal(100, s.game.Bag.Remaining())
	s.Equal("alice", s.game.CurrentPlayer().Name)
	s.Equal(s.now, s.game.CreatedAt)
}

func (s *GameSuite) TestNewGameValidation() {
	_, err := NewGame("g", GameConfig{Width: 10, Height: 10}, s.now)
	s.ErrorIs(err, ErrInsufficientPlayers)

	_, err = NewGame("g", GameConfig{Width: 0, Height: 10, Players: []string{"a"}}, s.now)
	s.ErrorIs(err, ErrInvalidDimensions)

	_, err = NewGame("g", GameConfig{Width: 10, Height: 10, Players: []string{"a"}, Language: "latin"}, s.now)
	s.ErrorIs(err, ErrUnknownLanguage)
}

func (s *GameSuite) TestApplyCreditsPlayerAndAdvancesTurn() {
	later := s.now.Add(time.Minute)
	err := s.game.Apply(s.result(5, NewTile('O', 0, 0), NewTile('F', 1, 0)), later)
	s.Require().NoError(err)

	s.Equal(5, s.game.Players[0].Points)
	s.Equal(1, s.game.Turn)
	s.Equal("bob", s.game.CurrentPlayer().Name)
	s.Equal(1, s.game.PlayCount)
	s.Equal(later, s.game.UpdatedAt)
	s.Equal(2, s.game.Matrix.Len())
}

func (s *GameSuite) TestTurnWrapsAround() {
	s.Require().NoError(s.game.Apply(s.result(5, NewTile('O', 0, 0), NewTile('F', 1, 0)), s.now))
	s.Require().NoError(s.game.Apply(s.result(6, NewTile('O', 2, 0), NewTile('F', 2, 1)), s.now))

	s.Equal(0, s.game.Turn)
	s.Equal("alice", s.game.CurrentPlayer().Name)
}

func (s *GameSuite) TestApplyOnOccupiedCellChangesNothing() {
	s.Require().NoError(s.game.Apply(s.result(5, NewTile('O', 0, 0), NewTile('F', 1, 0)), s.now))

	err := s.game.Apply(s.result(5, NewTile('O', 0, 0), NewTile('F', 1, 0)), s.now)
	s.ErrorIs(err, ErrCellOccupied)
	s.Equal(0, s.game.Players[1].Points)
	s.Equal(1, s.game.Turn)
	s.Equal(1, s.game.PlayCount)
}

func (s *GameSuite) TestDrawTilesKeepsTurn() {
	letters, err := s.game.DrawTiles(RackSize, mocks.NewMockRandom(), s.now)
	s.Require().NoError(err)

	s.Len(letters, RackSize)
	s.Equal(93, s.game.Bag.Remaining())
	s.Equal(0, s.game.Turn)
	s.Equal(0, s.game.Players[0].Points)
}

func (s *GameSuite) TestDimensionsContains() {
	d := Dimensions{Width: 10, Height: 5}
	s.True(d.Contains(Position{X: 0, Y: 0}))
	s.True(d.Contains(Position{X: 9, Y: 4}))
	s.False(d.Contains(Position{X: 10, Y: 0}))
	s.False(d.Contains(Position{X: 0, Y: 5}))
	s.False(d.Contains(Position{X: -1, Y: 0}))
}

func (s *GameSuite) TestJSONRoundTrip() {
	s.Require().NoError(s.game.Apply(s.result(5, NewTile('O', 0, 0), NewTile('F', 1, 0)), s.now))
	_, err := s.game.DrawTiles(7, mocks.NewMockRandom(), s.now)
	s.Require().NoError(err)

	data, err := json.Marshal(s.game)
	s.Require().NoError(err)

	var restored Game
	s.Require().NoError(json.Unmarshal(data, &restored))
	s.Equal(s.game.ID, restored.ID)
	s.Equal(s.game.Matrix.Tiles(), restored.Matrix.Tiles())
	s.Equal(s.game.Bag.Counts(), restored.Bag.Counts())
	s.Equal(s.game.Players, restored.Players)
	s.Equal(s.game.Turn, restored.Turn)
	s.True(s.game.CreatedAt.Equal(restored.CreatedAt))
}

func (s *GameSuite) TestParseLanguage() {
	lang, err := ParseLanguage("")
	s.Require().NoError(err)
	s.Equal(DefaultLanguage, lang)

	lang, err = ParseLanguage(" Spanish ")
	s.Require().NoError(err)
	s.Equal(LanguageSpanish, lang)

	_, err = ParseLanguage("latin")
	s.ErrorIs(err, ErrUnknownLanguage)
}

func (s *GameSuite) TestRejectionReason() {
	var err error = Reject(RejectUnknownWord, "QZX")

	s.ErrorIs(err, ErrPlayRejected)
	reason, ok := RejectionReason(err)
	s.True(ok)
	s.Equal(RejectUnknownWord, reason)
	s.Contains(err.Error(), "QZX")

	_, ok = RejectionReason(ErrPoolExhausted)
	s.False(ok)
}

func (s *GameSuite) TestCloneIsIndependent() {
	clone := s.game.Clone()
	s.Require().NoError(clone.Apply(s.result(5, NewTile('O', 0, 0), NewTile('F', 1, 0)), s.now))
	_, err := clone.DrawTiles(3, mocks.NewMockRandom(), s.now)
	s.Require().NoError(err)

	s.True(s.game.Matrix.IsEmpty())
	s.Equal(100, s.game.Bag.Remaining())
	s.Equal(0, s.game.Players[0].Points)
	s.Equal(0, s.game.Turn)
}
