package model

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// RackSize is the default number of tiles drawn at once
const RackSize = 7

// distributions holds the initial tile count of every letter per language
var distributions = map[Language]map[rune]int{
	// 100 tiles
	LanguageEnglish: {
		'A': 9, 'B': 2, 'C': 2, 'D': 4, 'E': 13, 'F': 2, 'G': 3, 'H': 2,
		'I': 9, 'J': 1, 'K': 1, 'L': 4, 'M': 2, 'N': 6, 'O': 8, 'P': 2,
		'Q': 1, 'R': 6, 'S': 5, 'T': 6, 'U': 4, 'V': 2, 'W': 2, 'X': 1,
		'Y': 2, 'Z': 1,
	},
	// 95 tiles
	LanguageSpanish: {
		'A': 9, 'B': 2, 'C': 2, 'D': 4, 'E': 12, 'F': 2, 'G': 3, 'H': 2,
		'I': 9, 'J': 1, 'L': 4, 'M': 2, 'N': 6, 'Ñ': 1, 'O': 8, 'P': 1,
		'Q': 1, 'R': 6, 'S': 4, 'T': 6, 'U': 4, 'V': 2, 'X': 1, 'Y': 2,
		'Z': 1,
	},
}

// Distribution returns a copy of the initial tile counts for a language
func Distribution(lang Language) (map[rune]int, error) {
	d, ok := distributions[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	return copyCounts(d), nil
}

// Intner is the random source used to draw tiles
type Intner interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// TileBag is the pool of undrawn tiles for one game
type TileBag struct {
	language Language
	counts   map[rune]int
}

// NewTileBag creates a full bag for the language
func NewTileBag(lang Language) (*TileBag, error) {
	counts, err := Distribution(lang)
	if err != nil {
		return nil, err
	}
	return &TileBag{language: lang, counts: counts}, nil
}

// Language returns the language the bag was seeded from
func (b *TileBag) Language() Language {
	return b.language
}

// Remaining returns the number of tiles left in the bag
func (b *TileBag) Remaining() int {
	return lo.Sum(lo.Values(b.counts))
}

// Count returns how many tiles of the letter are left
func (b *TileBag) Count(letter rune) int {
	return b.counts[letter]
}

// Counts returns a copy of the per-letter remaining counts
func (b *TileBag) Counts() map[rune]int {
	return copyCounts(b.counts)
}

// IsEmpty reports whether every tile has been drawn
func (b *TileBag) IsEmpty() bool {
	return b.Remaining() == 0
}

// Draw removes n tiles chosen uniformly at random from the physical tiles
// left in the bag. If fewer than n remain, nothing is drawn and an error
// wrapping ErrPoolExhausted is returned.
func (b *TileBag) Draw(n int, rnd Intner) ([]rune, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDrawCount, n)
	}
	remaining := b.Remaining()
	if n > remaining {
		return nil, fmt.Errorf("%w: requested %d tiles, %d remaining", ErrPoolExhausted, n, remaining)
	}

	pool := make([]rune, 0, remaining)
	for _, letter := range b.letters() {
		for i := 0; i < b.counts[letter]; i++ {
			pool = append(pool, letter)
		}
	}

	// Partial Fisher-Yates: the first n slots end up a uniform sample
	drawn := make([]rune, n)
	for i := 0; i < n; i++ {
		j := i + rnd.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		drawn[i] = pool[i]
	}

	for _, letter := range drawn {
		b.counts[letter]--
	}
	return drawn, nil
}

// letters returns the bag's alphabet in a fixed order
func (b *TileBag) letters() []rune {
	letters := lo.Keys(b.counts)
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return letters
}

type tileBagJSON struct {
	Language Language       `json:"language"`
	Counts   map[string]int `json:"counts"`
}

// MarshalJSON encodes the bag with letters as string keys
func (b *TileBag) MarshalJSON() ([]byte, error) {
	counts := make(map[string]int, len(b.counts))
	for letter, n := range b.counts {
		counts[string(letter)] = n
	}
	return json.Marshal(tileBagJSON{Language: b.language, Counts: counts})
}

// UnmarshalJSON restores a bag encoded by MarshalJSON
func (b *TileBag) UnmarshalJSON(data []byte) error {
	var raw tileBagJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	counts := make(map[rune]int, len(raw.Counts))
	for s, n := range raw.Counts {
		letter, err := ParseLetter(s)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("negative count %d for letter %q", n, s)
		}
		counts[letter] = n
	}
	b.language = raw.Language
	b.counts = counts
	return nil
}

func copyCounts(counts map[rune]int) map[rune]int {
	c := make(map[rune]int, len(counts))
	for k, v := range counts {
		c[k] = v
	}
	return c
}

// Clone returns an independent copy of the bag
func (b *TileBag) Clone() *TileBag {
	return &TileBag{language: b.language, counts: copyCounts(b.counts)}
}
