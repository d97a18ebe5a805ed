package database

import (
	"fmt"
	"time"

	"github.com/foliotrack/portfolio-service/internal/models"
)

// CreateTransaction appends an entry to the transaction log
func (db *DB) CreateTransaction(t *models.Transaction) error {
	query := `
		INSERT INTO transactions (
			asset_name, transaction_type, quantity, price, transaction_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	now := time.Now()
	err := db.conn.QueryRow(query,
		t.AssetName, t.TransactionType, t.Quantity, t.Price, t.TransactionDate, now,
	).Scan(&t.ID)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	t.CreatedAt = now
	return nil
}

// GetAllTransactions retrieves the transaction log, newest first
func (db *DB) GetAllTransactions() ([]*models.Transaction, error) {
	query := `
		SELECT id, asset_name, transaction_type, quantity, price,
		       transaction_date, created_at
		FROM transactions
		ORDER BY transaction_date DESC, id DESC
	`
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(
			&t.ID, &t.AssetName, &t.TransactionType, &t.Quantity, &t.Price,
			&t.TransactionDate, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &t)
	}

	return transactions, rows.Err()
}

// CountTransactions returns the total number of log entries
func (db *DB) CountTransactions() (int, error) {
	var count int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// DeleteTransaction removes a log entry by ID. Deleting an entry does
// not recompute any asset; the log is historical, not the source of
// truth for current holdings.
func (db *DB) DeleteTransaction(id int) error {
	query := `DELETE FROM transactions WHERE id = $1`
	result, err := db.conn.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	return nil
}
