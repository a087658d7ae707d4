package model

import (
	"errors"
	"fmt"
)

// RejectReason explains why a play was rejected
type RejectReason string

const (
	RejectEmptyPlay     RejectReason = "empty_play"
	RejectOutOfBounds   RejectReason = "out_of_bounds"
	RejectInvalidLetter RejectReason = "invalid_letter"
	RejectMisaligned    RejectReason = "misaligned"
	RejectNotContinuous RejectReason = "not_continuous"
	RejectOccupied      RejectReason = "occupied"
	RejectNotBordering  RejectReason = "not_bordering"
	RejectNoWordFormed  RejectReason = "no_word_formed"
	RejectUnknownWord   RejectReason = "unknown_word"
)

var rejectMessages = map[RejectReason]string{
	RejectEmptyPlay:     "no tiles were played",
	RejectOutOfBounds:   "tile is outside the board",
	RejectInvalidLetter: "letter is not part of the game's alphabet",
	RejectMisaligned:    "tiles are not on a single row or column",
	RejectNotContinuous: "tiles leave a gap",
	RejectOccupied:      "cell is already occupied",
	RejectNotBordering:  "play does not touch any existing tile",
	RejectNoWordFormed:  "play does not form a word",
	RejectUnknownWord:   "word is not in the lexicon",
}

// PlayRejectedError is returned when a play fails validation.
// The game is left unchanged whenever this error is returned.
type PlayRejectedError struct {
	Reason RejectReason
	Word   string // offending word or letter, when there is one
}

// Reject creates a PlayRejectedError
func Reject(reason RejectReason, word string) *PlayRejectedError {
	return &PlayRejectedError{Reason: reason, Word: word}
}

func (e *PlayRejectedError) Error() string {
	msg, ok := rejectMessages[e.Reason]
	if !ok {
		msg = string(e.Reason)
	}
	if e.Word != "" {
		return fmt.Sprintf("%s: %s: %q", ErrPlayRejected, msg, e.Word)
	}
	return fmt.Sprintf("%s: %s", ErrPlayRejected, msg)
}

// Is makes errors.Is(err, ErrPlayRejected) match any rejection
func (e *PlayRejectedError) Is(target error) bool {
	return target == ErrPlayRejected
}

// RejectionReason extracts the reason from a rejection error.
// It returns false if err is not a rejection.
func RejectionReason(err error) (RejectReason, bool) {
	var rejected *PlayRejectedError
	if errors.As(err, &rejected) {
		return rejected.Reason, true
	}
	return "", false
}

// WordScore is one word formed by a play together with its points
type WordScore struct {
	Word  Word
	Text  string
	Score int
}

// PlayResult is the outcome of a validated play, ready to be applied
type PlayResult struct {
	Placed Word        // the tiles being placed
	Words  []WordScore // primary word first, then crossings
	Score  int
}
