package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogging(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		requestID string
		wantLevel string
	}{
		{name: "success logged at debug", status: http.StatusOK, wantLevel: "DEBUG"},
		{name: "client error logged at warn", status: http.StatusBadRequest, wantLevel: "WARN"},
		{name: "incoming request id kept", status: http.StatusOK, requestID: "req-123", wantLevel: "DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			if tt.requestID != "" {
				req.Header.Set(RequestIDHeader, tt.requestID)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			id := rec.Header().Get(RequestIDHeader)
			assert.NotEmpty(t, id)
			if tt.requestID != "" {
				assert.Equal(t, tt.requestID, id)
			}
			assert.Contains(t, buf.String(), `"level":"`+tt.wantLevel+`"`)
			assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)
			assert.Contains(t, buf.String(), `"path":"/api/health"`)
		})
	}
}
