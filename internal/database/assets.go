package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/foliotrack/portfolio-service/internal/models"
)

// CreateAsset inserts a new asset into the database
func (db *DB) CreateAsset(a *models.Asset) error {
	query := `
		INSERT INTO assets (
			asset_name, asset_type, quantity, buy_price, current_price,
			purchase_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	now := time.Now()
	err := db.conn.QueryRow(query,
		a.AssetName, a.AssetType, a.Quantity, a.BuyPrice, a.CurrentPrice,
		a.PurchaseDate, now, now,
	).Scan(&a.ID)

	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}

// GetAssetByID retrieves an asset by its ID
func (db *DB) GetAssetByID(id int) (*models.Asset, error) {
	query := `
		SELECT id, asset_name, asset_type, quantity, buy_price, current_price,
		       purchase_date, created_at, updated_at
		FROM assets
		WHERE id = $1
	`
	var a models.Asset
	err := db.conn.QueryRow(query, id).Scan(
		&a.ID, &a.AssetName, &a.AssetType, &a.Quantity, &a.BuyPrice, &a.CurrentPrice,
		&a.PurchaseDate, &a.CreatedAt, &a.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("asset %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	return &a, nil
}

// GetAllAssets retrieves all assets, newest first
func (db *DB) GetAllAssets() ([]*models.Asset, error) {
	return db.queryAssets(`
		SELECT id, asset_name, asset_type, quantity, buy_price, current_price,
		       purchase_date, created_at, updated_at
		FROM assets
		ORDER BY created_at DESC
	`)
}

// GetAssetsByRecency retrieves all assets ordered by most recent
// mutation. The valuation views depend on this ordering.
func (db *DB) GetAssetsByRecency() ([]*models.Asset, error) {
	return db.queryAssets(`
		SELECT id, asset_name, asset_type, quantity, buy_price, current_price,
		       purchase_date, created_at, updated_at
		FROM assets
		ORDER BY updated_at DESC
	`)
}

func (db *DB) queryAssets(query string) ([]*models.Asset, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get assets: %w", err)
	}
	defer rows.Close()

	var assets []*models.Asset
	for rows.Next() {
		var a models.Asset
		err := rows.Scan(
			&a.ID, &a.AssetName, &a.AssetType, &a.Quantity, &a.BuyPrice, &a.CurrentPrice,
			&a.PurchaseDate, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, &a)
	}

	return assets, rows.Err()
}

// UpdateAsset updates an existing asset and refreshes its updated_at
func (db *DB) UpdateAsset(a *models.Asset) error {
	query := `
		UPDATE assets SET
			asset_name = $2, asset_type = $3, quantity = $4, buy_price = $5,
			current_price = $6, purchase_date = $7, updated_at = $8
		WHERE id = $1
	`
	a.UpdatedAt = time.Now()
	result, err := db.conn.Exec(query,
		a.ID, a.AssetName, a.AssetType, a.Quantity, a.BuyPrice,
		a.CurrentPrice, a.PurchaseDate, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("asset %d: %w", a.ID, ErrNotFound)
	}
	return nil
}

// DeleteAsset removes an asset by ID
func (db *DB) DeleteAsset(id int) error {
	query := `DELETE FROM assets WHERE id = $1`
	result, err := db.conn.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("asset %d: %w", id, ErrNotFound)
	}
	return nil
}
