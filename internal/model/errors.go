package model

import "errors"

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound        = errors.New("game not found")
	ErrInsufficientPlayers = errors.New("at least one player is required")
	ErrInvalidDimensions   = errors.New("board dimensions must be positive")
	ErrUnknownLanguage     = errors.New("unknown language")

	// Play errors
	ErrPlayRejected  = errors.New("play rejected")
	ErrInvalidLetter = errors.New("invalid letter")
	ErrCellOccupied  = errors.New("cell is already occupied")

	// Tile bag errors
	ErrPoolExhausted    = errors.New("tile pool exhausted")
	ErrInvalidDrawCount = errors.New("draw count must not be negative")

	// Lexicon errors
	ErrLexiconNotLoaded = errors.New("lexicon not loaded")
)
