package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/lexilearn-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		data         interface{}
		expectedBody string
	}{
		{
			name:         "object",
			status:       http.StatusOK,
			data:         map[string]interface{}{"message": "success", "data": 123},
			expectedBody: `{"message":"success","data":123}`,
		},
		{
			name:         "message response",
			status:       http.StatusOK,
			data:         MessageResponse{Message: "ok"},
			expectedBody: `{"message":"ok"}`,
		},
		{
			name:         "nil response",
			status:       http.StatusOK,
			data:         nil,
			expectedBody: `null`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			RespondWithJSON(w, req, tc.status, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/vocab/99", nil)
	req = req.WithContext(WithTraceID(req.Context(), "trace-abc"))
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "Vocab list not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Vocab list not found","trace_id":"trace-abc"}`, w.Body.String())
}

func TestRespondWithErrorOmitsEmptyTraceID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusBadRequest, "bad")

	assert.JSONEq(t, `{"error":"bad"}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		opts      []ResponseOption
		wantLevel string
	}{
		{name: "server error logs at error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
		{name: "bad gateway logs at error", status: http.StatusBadGateway, wantLevel: "ERROR"},
		{name: "client error logs at debug", status: http.StatusBadRequest, wantLevel: "DEBUG"},
		{name: "rate limit logs at warn", status: http.StatusTooManyRequests, wantLevel: "WARN"},
		{
			name:      "elevated client error logs at warn",
			status:    http.StatusUnauthorized,
			opts:      []ResponseOption{WithElevatedLogLevel()},
			wantLevel: "WARN",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, buf := logger.NewTestLogger()
			req := httptest.NewRequest(http.MethodPost, "/user/login", nil)
			ctx := logger.WithLogger(WithTraceID(req.Context(), "trace-1"), log)
			req = req.WithContext(ctx)
			w := httptest.NewRecorder()

			err := errors.New("dial postgres://lexi:hunter2@db:5432 failed")
			RespondWithErrorAndLog(w, req, tc.status, "Something went wrong", err, tc.opts...)

			assert.Equal(t, tc.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Something went wrong", body.Error)
			assert.Equal(t, "trace-1", body.TraceID)
			assert.NotContains(t, w.Body.String(), "hunter2", "raw errors never reach the client")

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tc.wantLevel, entries[0]["level"])
			assert.Equal(t, "API error response", entries[0]["msg"])
			assert.NotContains(t, entries[0]["error"], "hunter2", "logged errors are redacted")
			assert.Equal(t, float64(tc.status), entries[0]["status_code"])
		})
	}
}
