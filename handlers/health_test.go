package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-generator-api/handlers"
)

func TestHealthHandler_WithoutRedis(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.NewHealthHandler(nil).Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Quote Generator API is running", body["message"])
	assert.NotContains(t, body, "redis")
	assert.NotEmpty(t, body["time"])
}
