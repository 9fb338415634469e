package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/aiportfolioboard/internal/api/handlers"
	"github.com/zatekoja/aiportfolioboard/internal/application/services"
	apperrors "github.com/zatekoja/aiportfolioboard/pkg/errors"
)

const cacheControl = "s-maxage=60, stale-while-revalidate=300"

type stubProxy struct {
	result *services.ProxyResult
	err    error
	calls  int
}

func (s *stubProxy) GetPayload(context.Context) (*services.ProxyResult, error) {
	s.calls++
	return s.result, s.err
}

func TestUseCasesHandler_Success(t *testing.T) {
	body := []byte(`{"metadata":{"title":"AI Use Cases","source":"Smartsheet (live)"},"rows":[],"fetched_at":"2026-03-01T09:00:00Z"}`)
	proxy := &stubProxy{result: &services.ProxyResult{Body: body, Status: services.CacheHit}}
	handler := handlers.NewUseCasesHandler(proxy, cacheControl)

	req := httptest.NewRequest("GET", "/api/use-cases?token=abc", nil)
	req.Header.Set("Authorization", "Bearer client-supplied")
	w := httptest.NewRecorder()

	handler.GetUseCases(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, cacheControl, w.Header().Get("Cache-Control"))
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, body, w.Body.Bytes())
	assert.Equal(t, 1, proxy.calls)
}

func TestUseCasesHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "missing token",
			err:     apperrors.NewUnavailableError("SMARTSHEET_API_TOKEN is not configured"),
			status:  http.StatusServiceUnavailable,
			message: "SMARTSHEET_API_TOKEN is not configured",
		},
		{
			name:    "upstream failure",
			err:     apperrors.NewExternalError("Smartsheet API returned 404: Not Found", nil),
			status:  http.StatusBadGateway,
			message: "Smartsheet API returned 404: Not Found",
		},
		{
			name:    "plain error",
			err:     assert.AnError,
			status:  http.StatusInternalServerError,
			message: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handlers.NewUseCasesHandler(&stubProxy{err: tt.err}, cacheControl)
			w := httptest.NewRecorder()

			handler.GetUseCases(w, httptest.NewRequest("GET", "/api/use-cases", nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Empty(t, w.Header().Get("X-Cache"))

			var response map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.message, response["error"])
		})
	}
}

func TestUseCasesHandler_ErrorDetailNotExposed(t *testing.T) {
	inner := apperrors.NewInternalError("failed to encode sheet payload", assert.AnError)
	handler := handlers.NewUseCasesHandler(&stubProxy{err: inner}, cacheControl)
	w := httptest.NewRecorder()

	handler.GetUseCases(w, httptest.NewRequest("GET", "/api/use-cases", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
