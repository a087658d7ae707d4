package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmg/scrabbly/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidLetter       = "INVALID_LETTER"
	CodeInvalidDimensions   = "INVALID_DIMENSIONS"
	CodeInvalidDrawCount    = "INVALID_DRAW_COUNT"
	CodeUnknownLanguage     = "UNKNOWN_LANGUAGE"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodePlayRejected        = "PLAY_REJECTED"
	CodePoolExhausted       = "POOL_EXHAUSTED"
	CodeLexiconNotLoaded    = "LEXICON_NOT_LOADED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Rejected plays carry the reason so clients can tell them apart
	var rejected *model.PlayRejectedError
	if errors.As(err, &rejected) {
		return &httpError{http.StatusUnprocessableEntity, APIError{
			Code:    CodePlayRejected,
			Message: rejected.Error(),
			Reason:  string(rejected.Reason),
		}}
	}

	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeGameNotFound, Message: "Game not found"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInsufficientPlayers, Message: "At least one player is required"}}
	case errors.Is(err, model.ErrInvalidDimensions):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidDimensions, Message: "Board dimensions must be positive"}}
	case errors.Is(err, model.ErrUnknownLanguage):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeUnknownLanguage, Message: err.Error()}}
	case errors.Is(err, model.ErrInvalidLetter):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidLetter, Message: err.Error()}}
	case errors.Is(err, model.ErrInvalidDrawCount):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidDrawCount, Message: "Draw count must not be negative"}}
	case errors.Is(err, model.ErrPoolExhausted):
		return &httpError{http.StatusConflict, APIError{Code: CodePoolExhausted, Message: err.Error()}}
	case errors.Is(err, model.ErrLexiconNotLoaded):
		return &httpError{http.StatusServiceUnavailable, APIError{Code: CodeLexiconNotLoaded, Message: "Lexicon not loaded"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
