package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/foliotrack/portfolio-service/internal/models"
	"github.com/shopspring/decimal"
)

// SearchInstruments finds predefined instruments by name or symbol.
// An empty query returns the whole catalog; otherwise symbol-prefix
// matches rank ahead of name-prefix matches, capped at 10 rows.
func (db *DB) SearchInstruments(query string) ([]*models.Instrument, error) {
	if query == "" {
		return db.queryInstruments(`
			SELECT id, symbol, name, type, current_price, last_updated
			FROM predefined_assets
			ORDER BY name ASC
		`)
	}

	stmt := `
		SELECT id, symbol, name, type, current_price, last_updated
		FROM predefined_assets
		WHERE name ILIKE $1 OR symbol ILIKE $1
		ORDER BY
			CASE
				WHEN symbol ILIKE $2 THEN 1
				WHEN name ILIKE $2 THEN 2
				ELSE 3
			END,
			name ASC
		LIMIT 10
	`
	rows, err := db.conn.Query(stmt, "%"+query+"%", query+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search instruments: %w", err)
	}
	defer rows.Close()

	return scanInstruments(rows)
}

// GetInstrumentBySymbol retrieves a predefined instrument by symbol
func (db *DB) GetInstrumentBySymbol(symbol string) (*models.Instrument, error) {
	query := `
		SELECT id, symbol, name, type, current_price, last_updated
		FROM predefined_assets
		WHERE symbol = $1
	`
	var in models.Instrument
	err := db.conn.QueryRow(query, symbol).Scan(
		&in.ID, &in.Symbol, &in.Name, &in.Type, &in.CurrentPrice, &in.LastUpdated,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("instrument %s: %w", symbol, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get instrument %s: %w", symbol, err)
	}

	return &in, nil
}

// ListInstruments returns the full reference catalog
func (db *DB) ListInstruments() ([]*models.Instrument, error) {
	return db.queryInstruments(`
		SELECT id, symbol, name, type, current_price, last_updated
		FROM predefined_assets
		ORDER BY id
	`)
}

// ListStocksByPrice returns stock instruments ordered by price, highest
// first. The market snapshot view considers the top slice of these.
func (db *DB) ListStocksByPrice(limit int) ([]*models.Instrument, error) {
	query := `
		SELECT id, symbol, name, type, current_price, last_updated
		FROM predefined_assets
		WHERE type = 'Stock'
		ORDER BY current_price DESC
		LIMIT $1
	`
	rows, err := db.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get stocks: %w", err)
	}
	defer rows.Close()

	return scanInstruments(rows)
}

// CountInstrumentsByType returns catalog counts grouped by asset type
func (db *DB) CountInstrumentsByType() (map[models.AssetType]int, error) {
	rows, err := db.conn.Query(`SELECT type, COUNT(*) FROM predefined_assets GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("failed to count instruments: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.AssetType]int)
	for rows.Next() {
		var t models.AssetType
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("failed to scan instrument count: %w", err)
		}
		counts[t] = n
	}

	return counts, rows.Err()
}

// UpdateInstrumentPrice sets a new price for the instrument with the
// given symbol and refreshes last_updated
func (db *DB) UpdateInstrumentPrice(symbol string, price decimal.Decimal) error {
	query := `
		UPDATE predefined_assets SET current_price = $2, last_updated = $3 WHERE symbol = $1
	`
	result, err := db.conn.Exec(query, symbol, price, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update instrument price: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("instrument %s: %w", symbol, ErrNotFound)
	}
	return nil
}

// UpdateInstrumentPriceByID persists a simulated price for one catalog
// row. Used by the drift simulator, which walks rows by ID.
func (db *DB) UpdateInstrumentPriceByID(id int, price decimal.Decimal) error {
	query := `
		UPDATE predefined_assets SET current_price = $2, last_updated = $3 WHERE id = $1
	`
	result, err := db.conn.Exec(query, id, price, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update instrument price: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("instrument %d: %w", id, ErrNotFound)
	}
	return nil
}

func (db *DB) queryInstruments(query string) ([]*models.Instrument, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get instruments: %w", err)
	}
	defer rows.Close()

	return scanInstruments(rows)
}

func scanInstruments(rows *sql.Rows) ([]*models.Instrument, error) {
	var instruments []*models.Instrument
	for rows.Next() {
		var in models.Instrument
		err := rows.Scan(
			&in.ID, &in.Symbol, &in.Name, &in.Type, &in.CurrentPrice, &in.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan instrument: %w", err)
		}
		instruments = append(instruments, &in)
	}

	return instruments, rows.Err()
}
