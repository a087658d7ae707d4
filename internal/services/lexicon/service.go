package lexicon

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"github.com/jmg/scrabbly/internal/model"
	"github.com/jmg/scrabbly/internal/storage"
)

// Encoding is the character encoding of a word list file
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "iso-8859-1"
)

// ParseEncoding validates an encoding name. An empty name yields UTF-8.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf8", "utf-8":
		return EncodingUTF8, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1, nil
	default:
		return "", fmt.Errorf("unsupported word list encoding %q", name)
	}
}

// tags maps each language to the tag used for case folding
var tags = map[model.Language]language.Tag{
	model.LanguageEnglish: language.English,
	model.LanguageSpanish: language.Spanish,
}

// Service holds the word lists and letter values of every language
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu    sync.RWMutex
	words map[model.Language]map[string]struct{}
}

// New creates a new lexicon Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
		words:   make(map[model.Language]map[string]struct{}),
	}
}

// LoadFromStorage loads the language's words from storage
func (s *Service) LoadFromStorage(ctx context.Context, lang model.Language) error {
	words, err := s.storage.GetLexiconWords(ctx, lang)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("%w: no stored words for %s", model.ErrLexiconNotLoaded, lang)
	}
	return s.LoadWords(lang, words)
}

// LoadFromFile loads the language's words from a file (one word per line)
// and saves them to storage for future use
func (s *Service) LoadFromFile(ctx context.Context, lang model.Language, path string, enc Encoding) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	words, err := ReadWords(file, enc)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := s.storage.SaveLexiconWords(ctx, lang, words); err != nil {
		return err
	}

	s.logger.Info("lexicon loaded",
		slog.String("language", string(lang)),
		slog.String("path", path),
		slog.Int("word_count", len(words)),
	)

	return s.LoadWords(lang, words)
}

// LoadDirectory loads every <language>.txt file found in dir concurrently.
// Languages without a file are skipped.
func (s *Service) LoadDirectory(ctx context.Context, dir string, enc Encoding) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, lang := range model.Languages() {
		path := filepath.Join(dir, string(lang)+".txt")
		g.Go(func() error {
			err := s.LoadFromFile(ctx, lang, path, enc)
			if errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("no word list for language",
					slog.String("language", string(lang)),
					slog.String("path", path),
				)
				return nil
			}
			return err
		})
	}
	return g.Wait()
}

// LoadWords replaces the language's word list
func (s *Service) LoadWords(lang model.Language, words []string) error {
	tag, ok := tags[lang]
	if !ok {
		return fmt.Errorf("%w: %q", model.ErrUnknownLanguage, lang)
	}
	upper := cases.Upper(tag)

	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		set[upper.String(word)] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.words[lang] = set
	return nil
}

// Contains reports whether word is a whole word of the language, ignoring case
func (s *Service) Contains(lang model.Language, word string) bool {
	tag, ok := tags[lang]
	if !ok || word == "" {
		return false
	}
	word = cases.Upper(tag).String(word)

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok = s.words[lang][word]
	return ok
}

// LetterValues returns a copy of the language's letter values
func (s *Service) LetterValues(lang model.Language) (map[rune]int, error) {
	values, ok := letterValues[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownLanguage, lang)
	}
	result := make(map[rune]int, len(values))
	for letter, v := range values {
		result[letter] = v
	}
	return result, nil
}

// IsLoaded returns whether a word list has been loaded for the language
func (s *Service) IsLoaded(lang model.Language) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.words[lang]
	return ok
}

// WordCount returns the number of words loaded for the language
func (s *Service) WordCount(lang model.Language) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words[lang])
}

// ReadWords reads one word per line, skipping blank lines
func ReadWords(r io.Reader, enc Encoding) ([]string, error) {
	if enc == EncodingLatin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}

	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Interface check
type ServiceInterface interface {
	model.Lexicon
	WordCount(lang model.Language) int
	LoadFromStorage(ctx context.Context, lang model.Language) error
	LoadFromFile(ctx context.Context, lang model.Language, path string, enc Encoding) error
	LoadDirectory(ctx context.Context, dir string, enc Encoding) error
	LoadWords(lang model.Language, words []string) error
}

var _ ServiceInterface = (*Service)(nil)
