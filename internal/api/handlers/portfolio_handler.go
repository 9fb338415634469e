package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/aiportfolioboard/internal/domain/entities"
)

// PortfolioLoader runs the portfolio pipeline
type PortfolioLoader interface {
	Load(ctx context.Context) (*entities.Portfolio, error)
}

// PortfolioHandler serves the derived board summary
type PortfolioHandler struct {
	loader PortfolioLoader
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(loader PortfolioLoader) *PortfolioHandler {
	return &PortfolioHandler{loader: loader}
}

// GetPortfolio handles GET /api/portfolio
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.loader.Load(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, NewPortfolioResponse(portfolio))
}
