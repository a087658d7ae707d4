package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"

	"github.com/jmg/scrabbly/internal/api"
	"github.com/jmg/scrabbly/internal/api/apierr"
	"github.com/jmg/scrabbly/internal/api/request"
	"github.com/jmg/scrabbly/internal/api/response"
	"github.com/jmg/scrabbly/internal/factory"
	"github.com/jmg/scrabbly/internal/model"
	"github.com/jmg/scrabbly/internal/testutil"
)

type APISuite struct {
	suite.Suite
	app     *factory.TestApp
	handler http.Handler
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.Require().NoError(s.app.LoadTestLexicon())
	s.handler = api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: s.app.GameController,
	})
}

func (s *APISuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&reqBody).Encode(body))
	}

	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func (s *APISuite) decode(rr *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.NewDecoder(rr.Body).Decode(v), rr.Body.String())
}

func (s *APISuite) decodeError(rr *httptest.ResponseRecorder) apierr.APIError {
	var resp apierr.ErrorResponse
	s.decode(rr, &resp)
	return resp.Error
}

func (s *APISuite) createGame(id string, players ...string) response.Game {
	s.app.MockRandom.QueueString(id)
	rr := s.request(http.MethodPost, "/api/v1/games", request.CreateGameRequest{Players: players})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

	var g response.Game
	s.decode(rr, &g)
	return g
}

func (s *APISuite) play(id string, tiles []model.Tile) *httptest.ResponseRecorder {
	req := request.PlayRequest{}
	for _, t := range tiles {
		req.Tiles = append(req.Tiles, request.Tile{Letter: string(t.Letter), X: t.X, Y: t.Y})
	}
	return s.request(http.MethodPost, "/api/v1/games/"+id+"/plays", req)
}

func (s *APISuite) TestHealthCheck() {
	rr := s.request(http.MethodGet, "/api/v1/health", nil)
	s.Equal(http.StatusOK, rr.Code)

	var resp response.HealthResponse
	s.decode(rr, &resp)
	s.Equal("ok", resp.Status)
}

func (s *APISuite) TestCreateGame() {
	g := s.createGame("GAME01", "alice", "bob")

	s.Equal("GAME01", g.ID)
	s.Equal(15, g.Width)
	s.Equal(15, g.Height)
	s.Equal("english", g.Language)
	s.False(g.StrictBounds)
	s.Empty(g.Tiles)
	s.Equal([]response.Player{{Name: "alice"}, {Name: "bob"}}, g.Players)
	s.Equal("alice", g.CurrentPlayer)
	s.Equal(100, g.BagRemaining)
}

func (s *APISuite) TestCreateGameWithOptions() {
	strict := true
	s.app.MockRandom.QueueString("GAME02")
	rr := s.request(http.MethodPost, "/api/v1/games", request.CreateGameRequest{
		Width:        9,
		Height:       7,
		Players:      []string{"ana"},
		Language:     "Spanish",
		StrictBounds: &strict,
	})
	s.Require().Equal(http.StatusCreated, rr.Code)

	var g response.Game
	s.decode(rr, &g)
	s.Equal(9, g.Width)
	s.Equal(7, g.Height)
	s.Equal("spanish", g.Language)
	s.True(g.StrictBounds)
	s.Equal(95, g.BagRemaining)
}

func (s *APISuite) TestCreateGameErrors() {
	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"no players", request.CreateGameRequest{}, http.StatusBadRequest, apierr.CodeInsufficientPlayers},
		{"unknown language", request.CreateGameRequest{Players: []string{"a"}, Language: "klingon"}, http.StatusBadRequest, apierr.CodeUnknownLanguage},
		{"negative width", request.CreateGameRequest{Players: []string{"a"}, Width: -1}, http.StatusBadRequest, apierr.CodeInvalidDimensions},
		{"malformed body", "not an object", http.StatusBadRequest, apierr.CodeInvalidRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rr := s.request(http.MethodPost, "/api/v1/games", tt.body)
			s.Equal(tt.status, rr.Code)
			s.Equal(tt.code, s.decodeError(rr).Code)
		})
	}
}

func (s *APISuite) TestGetGame() {
	s.createGame("GAME01", "alice")

	rr := s.request(http.MethodGet, "/api/v1/games/GAME01", nil)
	s.Require().Equal(http.StatusOK, rr.Code)

	var g response.Game
	s.decode(rr, &g)
	s.Equal("GAME01", g.ID)
}

func (s *APISuite) TestGetGameNotFound() {
	rr := s.request(http.MethodGet, "/api/v1/games/NOPE", nil)
	s.Equal(http.StatusNotFound, rr.Code)
	s.Equal(apierr.CodeGameNotFound, s.decodeError(rr).Code)
}

func (s *APISuite) TestListAndDeleteGames() {
	s.createGame("GAME01", "alice")
	s.createGame("GAME02", "bob")

	rr := s.request(http.MethodGet, "/api/v1/games", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	var list response.GameList
	s.decode(rr, &list)
	s.Equal([]string{"GAME01", "GAME02"}, list.Games)

	rr = s.request(http.MethodDelete, "/api/v1/games/GAME01", nil)
	s.Equal(http.StatusNoContent, rr.Code)

	rr = s.request(http.MethodDelete, "/api/v1/games/GAME01", nil)
	s.Equal(http.StatusNotFound, rr.Code)

	rr = s.request(http.MethodGet, "/api/v1/games", nil)
	s.decode(rr, &list)
	s.Equal([]string{"GAME02"}, list.Games)
}

func (s *APISuite) TestPlayFlow() {
	s.createGame("GAME01", "alice", "bob")

	rr := s.play("GAME01", testutil.Across("AT", 0, 0))
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	var resp response.PlayResponse
	s.decode(rr, &resp)
	s.Equal(2, resp.Score)
	s.Equal("bob", resp.NextPlayer)
	s.Require().Len(resp.Words, 1)
	s.Equal("AT", resp.Words[0].Word)
	s.Equal([]response.Tile{{Letter: "A", X: 0, Y: 0}, {Letter: "T", X: 1, Y: 0}}, resp.Words[0].Tiles)

	rr = s.play("GAME01", []model.Tile{model.NewTile('e', 2, 0)})
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	s.decode(rr, &resp)
	s.Equal(3, resp.Score)
	s.Equal("alice", resp.NextPlayer)

	rr = s.request(http.MethodGet, "/api/v1/games/GAME01/current-player", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	var current response.Player
	s.decode(rr, &current)
	s.Equal(response.Player{Name: "alice", Points: 2}, current)

	rr = s.request(http.MethodGet, "/api/v1/games/GAME01/standings", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	var standings response.Standings
	s.decode(rr, &standings)
	s.Equal("bob", standings.Winner)
	s.Equal([]response.Player{{Name: "bob", Points: 3}, {Name: "alice", Points: 2}}, standings.Players)

	rr = s.request(http.MethodGet, "/api/v1/games/GAME01", nil)
	var g response.Game
	s.decode(rr, &g)
	s.Equal(2, g.PlayCount)
	s.Equal([]response.Tile{
		{Letter: "A", X: 0, Y: 0},
		{Letter: "T", X: 1, Y: 0},
		{Letter: "E", X: 2, Y: 0},
	}, g.Tiles)
}

func (s *APISuite) TestPlayRejected() {
	s.createGame("GAME01", "alice", "bob")
	s.Require().Equal(http.StatusOK, s.play("GAME01", testutil.Across("AT", 0, 0)).Code)

	tests := []struct {
		name   string
		tiles  []model.Tile
		reason model.RejectReason
	}{
		{"empty", nil, model.RejectEmptyPlay},
		{"misaligned", []model.Tile{model.NewTile('A', 0, 1), model.NewTile('T', 1, 2)}, model.RejectMisaligned},
		{"gap", []model.Tile{model.NewTile('A', 0, 1), model.NewTile('T', 2, 1)}, model.RejectNotContinuous},
		{"occupied", testutil.Across("AT", 0, 0), model.RejectOccupied},
		{"not bordering", testutil.Across("AT", 5, 5), model.RejectNotBordering},
		{"unknown word", testutil.Across("ZZ", 0, 1), model.RejectUnknownWord},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rr := s.play("GAME01", tt.tiles)
			s.Equal(http.StatusUnprocessableEntity, rr.Code)
			apiErr := s.decodeError(rr)
			s.Equal(apierr.CodePlayRejected, apiErr.Code)
			s.Equal(string(tt.reason), apiErr.Reason)
		})
	}

	// Nothing changed: still bob's turn with one word on the board
	rr := s.request(http.MethodGet, "/api/v1/games/GAME01", nil)
	var g response.Game
	s.decode(rr, &g)
	s.Equal("bob", g.CurrentPlayer)
	s.Len(g.Tiles, 2)
	s.Equal(1, g.PlayCount)
}

func (s *APISuite) TestPlayInvalidLetter() {
	s.createGame("GAME01", "alice")

	// Malformed letters and letters outside the alphabet are rejected alike
	for _, letter := range []string{"AB", "1", "", "Ñ"} {
		s.Run(letter, func() {
			rr := s.request(http.MethodPost, "/api/v1/games/GAME01/plays", request.PlayRequest{
				Tiles: []request.Tile{{Letter: "A", X: 0, Y: 0}, {Letter: letter, X: 1, Y: 0}},
			})
			s.Equal(http.StatusUnprocessableEntity, rr.Code)
			apiErr := s.decodeError(rr)
			s.Equal(apierr.CodePlayRejected, apiErr.Code)
			s.Equal(string(model.RejectInvalidLetter), apiErr.Reason)
		})
	}
}

func (s *APISuite) TestPlayWithoutLexiconForLanguage() {
	app := factory.NewTestApp()
	s.Require().NoError(app.LexiconService.LoadWords(model.LanguageEnglish, []string{"at"}))
	s.app = app
	s.handler = api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
	})

	app.MockRandom.QueueString("SPAIN1")
	rr := s.request(http.MethodPost, "/api/v1/games", request.CreateGameRequest{
		Players:  []string{"ana"},
		Language: "spanish",
	})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

	rr = s.play("SPAIN1", testutil.Across("AÑO", 0, 0))
	s.Equal(http.StatusServiceUnavailable, rr.Code)
	apiErr := s.decodeError(rr)
	s.Equal(apierr.CodeLexiconNotLoaded, apiErr.Code)
	s.Empty(apiErr.Reason)
}

func (s *APISuite) TestPlayUnknownGame() {
	rr := s.play("NOPE", testutil.Across("AT", 0, 0))
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *APISuite) TestDraw() {
	s.createGame("GAME01", "alice")

	// Empty body draws a full rack
	req := httptest.NewRequest(http.MethodPost, "/api/v1/games/GAME01/draws", nil)
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	var resp response.DrawResponse
	s.decode(rr, &resp)
	s.Len(resp.Letters, model.RackSize)
	s.Equal(100-model.RackSize, resp.Remaining)

	rr = s.request(http.MethodPost, "/api/v1/games/GAME01/draws", request.DrawRequest{Count: lo.ToPtr(3)})
	s.Require().Equal(http.StatusOK, rr.Code)
	s.decode(rr, &resp)
	s.Len(resp.Letters, 3)
	s.Equal(100-model.RackSize-3, resp.Remaining)
}

func (s *APISuite) TestDrawZero() {
	s.createGame("GAME01", "alice")

	rr := s.request(http.MethodPost, "/api/v1/games/GAME01/draws", request.DrawRequest{Count: lo.ToPtr(0)})
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	var resp response.DrawResponse
	s.decode(rr, &resp)
	s.Empty(resp.Letters)
	s.Equal(100, resp.Remaining)

	// A body without a count still draws a full rack
	rr = s.request(http.MethodPost, "/api/v1/games/GAME01/draws", request.DrawRequest{})
	s.Require().Equal(http.StatusOK, rr.Code)
	s.decode(rr, &resp)
	s.Len(resp.Letters, model.RackSize)
}

func (s *APISuite) TestDrawErrors() {
	s.createGame("GAME01", "alice")

	rr := s.request(http.MethodPost, "/api/v1/games/GAME01/draws", request.DrawRequest{Count: lo.ToPtr(-1)})
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal(apierr.CodeInvalidDrawCount, s.decodeError(rr).Code)

	rr = s.request(http.MethodPost, "/api/v1/games/GAME01/draws", request.DrawRequest{Count: lo.ToPtr(101)})
	s.Equal(http.StatusConflict, rr.Code)
	s.Equal(apierr.CodePoolExhausted, s.decodeError(rr).Code)

	// The failed draw took nothing
	rr = s.request(http.MethodGet, "/api/v1/games/GAME01", nil)
	var g response.Game
	s.decode(rr, &g)
	s.Equal(100, g.BagRemaining)
}

func (s *APISuite) TestConcurrentPlaysAcceptOne() {
	s.createGame("GAME01", "alice", "bob")

	const n = 8
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes[i] = s.play("GAME01", testutil.Across("AT", 0, 0)).Code
		}()
	}
	wg.Wait()

	accepted := 0
	for _, code := range codes {
		if code == http.StatusOK {
			accepted++
		} else {
			s.Equal(http.StatusUnprocessableEntity, code)
		}
	}
	s.Equal(1, accepted)
}

func (s *APISuite) TestUnknownRoute() {
	rr := s.request(http.MethodGet, "/api/v1/nothing", nil)
	s.Equal(http.StatusNotFound, rr.Code)
}
