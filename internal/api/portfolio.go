package api

import (
	"net/http"

	"github.com/foliotrack/portfolio-service/internal/portfolio"
)

// GetPortfolioSummary handles GET /api/portfolio/summary
func (h *Handler) GetPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	assets, err := h.db.GetAssetsByRecency()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, portfolio.Summarize(assets))
}

// GetPortfolioDistribution handles GET /api/portfolio/distribution
func (h *Handler) GetPortfolioDistribution(w http.ResponseWriter, r *http.Request) {
	assets, err := h.db.GetAssetsByRecency()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, portfolio.Distribute(assets))
}

// GetPortfolioMetrics handles GET /api/portfolio/metrics
func (h *Handler) GetPortfolioMetrics(w http.ResponseWriter, r *http.Request) {
	assets, err := h.db.GetAssetsByRecency()
	if err != nil {
		respondError(w, err)
		return
	}

	transactionCount, err := h.db.CountTransactions()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, portfolio.Metrics(assets, transactionCount))
}
