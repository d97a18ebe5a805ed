package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/foliotrack/portfolio-service/internal/models"
	"github.com/shopspring/decimal"
)

// GetAllTransactions handles GET /api/transactions
func (h *Handler) GetAllTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.db.GetAllTransactions()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, transactions)
}

// CreateTransaction handles POST /api/transactions. This records a log
// entry directly without touching any asset; trades that should move a
// position go through the trade endpoint instead.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AssetName       string          `json:"asset_name"`
		TransactionType models.TradeSide `json:"transaction_type"`
		Quantity        decimal.Decimal `json:"quantity"`
		Price           decimal.Decimal `json:"price"`
		TransactionDate string          `json:"transaction_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}

	if req.AssetName == "" {
		respondValidation(w, "asset_name is required")
		return
	}
	if !req.TransactionType.Valid() {
		respondValidation(w, "transaction_type must be Buy or Sell")
		return
	}
	if !req.Quantity.IsPositive() {
		respondValidation(w, "quantity must be positive")
		return
	}
	if req.Price.IsNegative() {
		respondValidation(w, "price must not be negative")
		return
	}
	transactionDate, ok := parseDate(req.TransactionDate)
	if !ok {
		respondValidation(w, "transaction_date must be YYYY-MM-DD")
		return
	}

	transaction := &models.Transaction{
		AssetName:       req.AssetName,
		TransactionType: req.TransactionType,
		Quantity:        req.Quantity,
		Price:           req.Price,
		TransactionDate: transactionDate,
	}
	if err := h.db.CreateTransaction(transaction); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":        transaction.ID,
		"message":   "Transaction created successfully",
		"timestamp": time.Now().UnixMilli(),
	})
}

// DeleteTransaction handles DELETE /api/transactions/{id}
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.db.DeleteTransaction(id); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}
