package factory

import (
	"time"

	"github.com/jmg/scrabbly/internal/dependencies/mocks"
	"github.com/jmg/scrabbly/internal/model"
	"github.com/jmg/scrabbly/internal/services/game"
	"github.com/jmg/scrabbly/internal/storage/memory"
	"github.com/jmg/scrabbly/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithConfig(game.DefaultConfig())
}

// NewTestAppWithConfig creates a test App with custom game defaults
func NewTestAppWithConfig(gameCfg game.Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, gameCfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestLexicon loads small English and Spanish word lists for testing
func (t *TestApp) LoadTestLexicon() error {
	english := []string{
		"a", "i", "at", "be", "do", "ft", "go", "he", "if", "in", "is", "it",
		"no", "oa", "of", "ofo", "on", "or", "so", "to",
		"ace", "act", "art", "ash", "ate", "bat", "cat", "cats", "catss",
		"dog", "eat", "ear", "hat", "tea", "ten", "the", "toe",
		"word", "words", "sword", "swords",
		"game", "games", "tile", "tiles", "board", "boards",
	}
	if err := t.LexiconService.LoadWords(model.LanguageEnglish, english); err != nil {
		return err
	}

	spanish := []string{
		"a", "y", "o", "al", "de", "el", "en", "la", "lo", "mi", "no", "se", "te", "tu", "ya",
		"año", "niño", "casa", "sol", "mar", "pan", "paz",
	}
	return t.LexiconService.LoadWords(model.LanguageSpanish, spanish)
}
