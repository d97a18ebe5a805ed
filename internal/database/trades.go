package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/foliotrack/portfolio-service/internal/models"
	"github.com/shopspring/decimal"
)

// TradeResult describes the outcome of a reconciled trade.
type TradeResult struct {
	TransactionID int             `json:"transaction_id"`
	AssetName     string          `json:"asset_name"`
	Side          models.TradeSide `json:"side"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	NewQuantity   decimal.Decimal `json:"new_quantity"`
	AssetDeleted  bool            `json:"asset_deleted"`
}

// ExecuteTrade reconciles a buy or sell against the asset with the given
// ID: one transaction-log insert plus one asset update or delete, inside
// a single database transaction so the two effects commit or roll back
// together. The trade always executes at the asset's current price.
//
// A buy adds to the held quantity; the cost basis is not recomputed as a
// weighted average. A sell subtracts; if the new quantity reaches zero
// or below, the asset row is deleted (an oversell clamps to deletion
// rather than being rejected).
func (db *DB) ExecuteTrade(assetID int, side models.TradeSide, quantity decimal.Decimal) (*TradeResult, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("side must be Buy or Sell: %w", ErrInvalidTrade)
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("quantity must be positive: %w", ErrInvalidTrade)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the asset row so concurrent trades against the same position
	// serialize instead of interleaving read-modify-write.
	var a models.Asset
	err = tx.QueryRow(`
		SELECT id, asset_name, asset_type, quantity, buy_price, current_price,
		       purchase_date, created_at, updated_at
		FROM assets
		WHERE id = $1
		FOR UPDATE
	`, assetID).Scan(
		&a.ID, &a.AssetName, &a.AssetType, &a.Quantity, &a.BuyPrice, &a.CurrentPrice,
		&a.PurchaseDate, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("asset %d: %w", assetID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset for trade: %w", err)
	}

	now := time.Now()
	var transactionID int
	err = tx.QueryRow(`
		INSERT INTO transactions (
			asset_name, transaction_type, quantity, price, transaction_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, a.AssetName, side, quantity, a.CurrentPrice, now, now).Scan(&transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to record trade transaction: %w", err)
	}

	newQuantity := a.Quantity.Add(quantity)
	if side == models.TradeSell {
		newQuantity = a.Quantity.Sub(quantity)
	}

	result := &TradeResult{
		TransactionID: transactionID,
		AssetName:     a.AssetName,
		Side:          side,
		Quantity:      quantity,
		Price:         a.CurrentPrice,
		NewQuantity:   newQuantity,
	}

	if newQuantity.IsPositive() {
		_, err = tx.Exec(`
			UPDATE assets SET quantity = $2, updated_at = $3 WHERE id = $1
		`, assetID, newQuantity, now)
		if err != nil {
			return nil, fmt.Errorf("failed to update asset quantity: %w", err)
		}
	} else {
		result.NewQuantity = decimal.Zero
		result.AssetDeleted = true
		_, err = tx.Exec(`DELETE FROM assets WHERE id = $1`, assetID)
		if err != nil {
			return nil, fmt.Errorf("failed to delete emptied asset: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit trade: %w", err)
	}

	return result, nil
}
