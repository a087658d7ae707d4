package scoring

import (
	"sort"

	"github.com/samber/lo"

	"github.com/jmg/scrabbly/internal/model"
)

// Service provides scoring functionality for words and players
type Service struct {
	lexicon model.Lexicon
}

// New creates a new ScoringService
func New(lexicon model.Lexicon) *Service {
	return &Service{
		lexicon: lexicon,
	}
}

// ScoreWord returns the sum of the letter values of every tile in the word
func (s *Service) ScoreWord(lang model.Language, word model.Word) (int, error) {
	values, err := s.lexicon.LetterValues(lang)
	if err != nil {
		return 0, err
	}
	return word.Score(values), nil
}

// ScoreWords scores each word independently and returns the breakdown
// along with the total. Letters shared by two words count in both.
func (s *Service) ScoreWords(lang model.Language, words []model.Word) ([]model.WordScore, int, error) {
	values, err := s.lexicon.LetterValues(lang)
	if err != nil {
		return nil, 0, err
	}

	scores := lo.Map(words, func(w model.Word, _ int) model.WordScore {
		return model.WordScore{Word: w, Text: w.Text(), Score: w.Score(values)}
	})
	total := lo.SumBy(scores, func(ws model.WordScore) int { return ws.Score })
	return scores, total, nil
}

// Standings returns copies of the players sorted by points, highest first.
// Players with equal points keep their turn order.
func (s *Service) Standings(players []*model.Player) []model.Player {
	standings := lo.Map(players, func(p *model.Player, _ int) model.Player { return *p })
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Points > standings[j].Points
	})
	return standings
}

// DetermineWinner returns the winner's name, or empty string if tie
func (s *Service) DetermineWinner(standings []model.Player) string {
	if len(standings) == 0 {
		return ""
	}

	top := lo.MaxBy(standings, func(a, b model.Player) bool { return a.Points > b.Points })
	tied := lo.CountBy(standings, func(p model.Player) bool { return p.Points == top.Points })
	if tied > 1 {
		return "" // Tie
	}

	return top.Name
}

// Interface for dependency injection
type ServiceInterface interface {
	ScoreWord(lang model.Language, word model.Word) (int, error)
	ScoreWords(lang model.Language, words []model.Word) ([]model.WordScore, int, error)
	Standings(players []*model.Player) []model.Player
	DetermineWinner(standings []model.Player) string
}

var _ ServiceInterface = (*Service)(nil)
