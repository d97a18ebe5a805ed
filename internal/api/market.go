package api

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/foliotrack/portfolio-service/internal/market"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// topStockCount is how many stocks the snapshot view considers.
const topStockCount = 20

// SearchInstruments handles GET /api/predefined-assets/search?query=
func (h *Handler) SearchInstruments(w http.ResponseWriter, r *http.Request) {
	instruments, err := h.db.SearchInstruments(r.URL.Query().Get("query"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, instruments)
}

// GetInstrument handles GET /api/predefined-assets/{symbol}. When a
// fresher price is sitting in the cache (written by the drift
// simulator), it overrides the row's price.
func (h *Handler) GetInstrument(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	instrument, err := h.db.GetInstrumentBySymbol(symbol)
	if err != nil {
		respondError(w, err)
		return
	}

	if h.cache != nil {
		if price, err := h.cache.GetInstrumentPrice(r.Context(), symbol); err == nil {
			instrument.CurrentPrice = price
		}
	}

	respondJSON(w, http.StatusOK, instrument)
}

// UpdateInstrumentPrice handles PUT /api/predefined-assets/{symbol}/price
func (h *Handler) UpdateInstrumentPrice(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	var req struct {
		Price decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	if !req.Price.IsPositive() {
		respondValidation(w, "price must be positive")
		return
	}

	if err := h.db.UpdateInstrumentPrice(symbol, req.Price); err != nil {
		respondError(w, err)
		return
	}

	// Drop the cached price so the manual update is visible immediately.
	if h.cache != nil {
		if err := h.cache.InvalidateInstrumentPrice(r.Context(), symbol); err != nil {
			log.Printf("Error invalidating cached price for %s: %v", symbol, err)
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Price updated successfully"})
}

// GetMarketData handles GET /api/market/data
func (h *Handler) GetMarketData(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.db.ListStocksByPrice(topStockCount)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, market.ComposeSnapshot(stocks, requestRNG()))
}

// GetMarketSectors handles GET /api/market/sectors
func (h *Handler) GetMarketSectors(w http.ResponseWriter, r *http.Request) {
	counts, err := h.db.CountInstrumentsByType()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, market.SectorPerformance(counts, requestRNG()))
}

// GetMarketNews handles GET /api/market/news
func (h *Handler) GetMarketNews(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, market.News(requestRNG()))
}

// requestRNG returns a throwaway source for per-request jitter.
// *rand.Rand is not safe for concurrent use, so each request gets its
// own.
func requestRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
