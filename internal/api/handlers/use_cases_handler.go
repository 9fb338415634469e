package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/aiportfolioboard/internal/application/services"
	"github.com/zatekoja/aiportfolioboard/internal/infrastructure/observability"
)

// SheetPayloadService serves the cached live sheet payload
type SheetPayloadService interface {
	GetPayload(ctx context.Context) (*services.ProxyResult, error)
}

// UseCasesHandler serves the Smartsheet proxy endpoint
type UseCasesHandler struct {
	proxy        SheetPayloadService
	cacheControl string
}

// NewUseCasesHandler creates a new proxy handler. cacheControl is sent on successful responses.
func NewUseCasesHandler(proxy SheetPayloadService, cacheControl string) *UseCasesHandler {
	return &UseCasesHandler{
		proxy:        proxy,
		cacheControl: cacheControl,
	}
}

// GetUseCases handles GET /api/use-cases. Query parameters and request headers are ignored.
func (h *UseCasesHandler) GetUseCases(w http.ResponseWriter, r *http.Request) {
	result, err := h.proxy.GetPayload(r.Context())
	if err != nil {
		w.Header().Set("Cache-Control", "no-store")
		respondWithAppError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", h.cacheControl)
	w.Header().Set("X-Cache", string(result.Status))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Body); err != nil {
		observability.LoggerFromContext(r.Context()).Debug().Err(err).Msg("client went away while writing payload")
	}
}
