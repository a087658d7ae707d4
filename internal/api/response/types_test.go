package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmg/scrabbly/internal/api/response"
)

func TestJSONWritesStatusAndBody(t *testing.T) {
	rr := httptest.NewRecorder()
	response.JSON(rr, http.StatusCreated, response.HealthResponse{Status: "ok"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestJSONEncodingFailureIsInternalError(t *testing.T) {
	rr := httptest.NewRecorder()
	response.JSON(rr, http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":{"code":"INTERNAL_ERROR","message":"Internal server error"}}`, rr.Body.String())
}

func TestNoContent(t *testing.T) {
	rr := httptest.NewRecorder()
	response.NoContent(rr)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}
