package model

import (
	"fmt"
	"strings"
)

// Language selects the lexicon, letter values and tile distribution of a game
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageSpanish Language = "spanish"
)

// DefaultLanguage is used when a game is created without one
const DefaultLanguage = LanguageEnglish

// Languages returns all supported languages
func Languages() []Language {
	return []Language{LanguageEnglish, LanguageSpanish}
}

// ParseLanguage validates a language name. An empty name yields DefaultLanguage.
func ParseLanguage(name string) (Language, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultLanguage, nil
	}
	for _, l := range Languages() {
		if string(l) == name {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}

// Lexicon answers word membership and letter values per language
type Lexicon interface {
	// Contains reports whether word is a whole word of the language, ignoring case
	Contains(lang Language, word string) bool

	// LetterValues returns the point value of every letter of the language
	LetterValues(lang Language) (map[rune]int, error)

	// IsLoaded reports whether a word list is available for the language
	IsLoaded(lang Language) bool
}
