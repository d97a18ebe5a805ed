package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/foliotrack/portfolio-service/internal/models"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type assetRequest struct {
	AssetName    string          `json:"asset_name"`
	AssetType    models.AssetType `json:"asset_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	PurchaseDate string          `json:"purchase_date"`
}

func (req *assetRequest) validate() (time.Time, string) {
	if req.AssetName == "" {
		return time.Time{}, "asset_name is required"
	}
	if !req.AssetType.Valid() {
		return time.Time{}, "asset_type must be Stock, Mutual Fund or Crypto"
	}
	if !req.Quantity.IsPositive() {
		return time.Time{}, "quantity must be positive"
	}
	if req.BuyPrice.IsNegative() || req.CurrentPrice.IsNegative() {
		return time.Time{}, "prices must not be negative"
	}
	purchaseDate, ok := parseDate(req.PurchaseDate)
	if !ok {
		return time.Time{}, "purchase_date must be YYYY-MM-DD"
	}
	return purchaseDate, ""
}

// GetAllAssets handles GET /api/assets
func (h *Handler) GetAllAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.db.GetAllAssets()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, assets)
}

// GetAsset handles GET /api/assets/{id}
func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	asset, err := h.db.GetAssetByID(id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, asset)
}

// CreateAsset handles POST /api/assets
func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}

	purchaseDate, msg := req.validate()
	if msg != "" {
		respondValidation(w, msg)
		return
	}

	asset := &models.Asset{
		AssetName:    req.AssetName,
		AssetType:    req.AssetType,
		Quantity:     req.Quantity,
		BuyPrice:     req.BuyPrice,
		CurrentPrice: req.CurrentPrice,
		PurchaseDate: purchaseDate,
	}
	if err := h.db.CreateAsset(asset); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":        asset.ID,
		"message":   "Asset created successfully",
		"timestamp": time.Now().UnixMilli(),
	})
}

// UpdateAsset handles PUT /api/assets/{id}
func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req assetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}

	purchaseDate, msg := req.validate()
	if msg != "" {
		respondValidation(w, msg)
		return
	}

	asset := &models.Asset{
		ID:           id,
		AssetName:    req.AssetName,
		AssetType:    req.AssetType,
		Quantity:     req.Quantity,
		BuyPrice:     req.BuyPrice,
		CurrentPrice: req.CurrentPrice,
		PurchaseDate: purchaseDate,
	}
	if err := h.db.UpdateAsset(asset); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Asset updated successfully",
		"timestamp": time.Now().UnixMilli(),
	})
}

// DeleteAsset handles DELETE /api/assets/{id}
func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.db.DeleteAsset(id); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Asset deleted successfully"})
}

// ExecuteTrade handles POST /api/assets/{id}/trade
func (h *Handler) ExecuteTrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		TransactionType models.TradeSide `json:"transaction_type"`
		Quantity        decimal.Decimal  `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}

	result, err := h.db.ExecuteTrade(id, req.TransactionType, req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}

	// Best-effort event; a lost message never fails the trade.
	if h.producer != nil {
		if err := h.producer.PublishTradeExecuted(r.Context(), result); err != nil {
			log.Printf("Error publishing trade event: %v", err)
		}
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":        result.TransactionID,
		"trade":     result,
		"message":   "Trade executed successfully",
		"timestamp": time.Now().UnixMilli(),
	})
}

// pathID extracts the {id} route variable, rejecting non-numeric values.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondValidation(w, "id must be an integer")
		return 0, false
	}
	return id, true
}
