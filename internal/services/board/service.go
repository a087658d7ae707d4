package board

import (
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/jmg/scrabbly/internal/model"
	"github.com/jmg/scrabbly/internal/services/scoring"
)

// Service validates plays against a game's board and scores them
type Service struct {
	lexicon model.Lexicon
	scoring *scoring.Service
	logger  *slog.Logger
}

// New creates a new BoardService
func New(lexicon model.Lexicon, scoring *scoring.Service, logger *slog.Logger) *Service {
	return &Service{
		lexicon: lexicon,
		scoring: scoring,
		logger:  logger,
	}
}

// Evaluate checks whether placing tiles on the game's board is legal and,
// if so, returns every word formed with its score. The game is never
// modified; pass the result to Game.Apply to commit it.
//
// A rejected play returns a *model.PlayRejectedError.
func (s *Service) Evaluate(game *model.Game, tiles []model.Tile) (*model.PlayResult, error) {
	result, err := s.evaluate(game, tiles)
	if reason, ok := model.RejectionReason(err); ok {
		s.logger.Debug("play rejected",
			slog.String("game_id", string(game.ID)),
			slog.String("reason", string(reason)),
			slog.Int("tile_count", len(tiles)),
		)
	}
	return result, err
}

func (s *Service) evaluate(game *model.Game, tiles []model.Tile) (*model.PlayResult, error) {
	if len(tiles) == 0 {
		return nil, model.Reject(model.RejectEmptyPlay, "")
	}

	values, err := s.lexicon.LetterValues(game.Language)
	if err != nil {
		return nil, err
	}
	if !s.lexicon.IsLoaded(game.Language) {
		return nil, fmt.Errorf("%w: %s", model.ErrLexiconNotLoaded, game.Language)
	}

	if game.StrictBounds {
		if t, found := lo.Find(tiles, func(t model.Tile) bool { return !game.Dimensions.Contains(t.Position) }); found {
			return nil, model.Reject(model.RejectOutOfBounds, t.String())
		}
	}

	if t, found := lo.Find(tiles, func(t model.Tile) bool { _, ok := values[t.Letter]; return !ok }); found {
		return nil, model.Reject(model.RejectInvalidLetter, string(t.Letter))
	}

	candidate := model.NewWord(tiles...)
	if err := s.checkPlacement(game.Matrix, candidate); err != nil {
		return nil, err
	}

	words := game.Matrix.Assemble(candidate)
	if len(words) == 0 {
		return nil, model.Reject(model.RejectNoWordFormed, candidate.Text())
	}

	for _, w := range words {
		if !w.IsValidPosition() {
			return nil, model.Reject(model.RejectNotContinuous, w.Text())
		}
		if !s.lexicon.Contains(game.Language, w.Text()) {
			return nil, model.Reject(model.RejectUnknownWord, w.Text())
		}
	}

	scores, total, err := s.scoring.ScoreWords(game.Language, words)
	if err != nil {
		return nil, err
	}

	return &model.PlayResult{
		Placed: candidate,
		Words:  scores,
		Score:  total,
	}, nil
}

// checkPlacement verifies the candidate's geometry against the matrix
func (s *Service) checkPlacement(matrix *model.Matrix, candidate model.Word) error {
	if !candidate.Alignment.IsDefined() {
		return model.Reject(model.RejectMisaligned, candidate.Text())
	}
	if !candidate.IsContinuous() {
		return model.Reject(model.RejectNotContinuous, candidate.Text())
	}
	if !matrix.HasFreeSpace(candidate) {
		return model.Reject(model.RejectOccupied, candidate.Text())
	}
	if !matrix.IsBordering(candidate) {
		return model.Reject(model.RejectNotBordering, candidate.Text())
	}
	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Evaluate(game *model.Game, tiles []model.Tile) (*model.PlayResult, error)
}

var _ ServiceInterface = (*Service)(nil)
