package database

import (
	"fmt"
	"log"
)

// Seed inserts sample rows on first run. Each table is seeded only when
// it is empty, so restarting the server never duplicates data.
func (db *DB) Seed() error {
	seeders := []struct {
		table string
		fn    func() error
	}{
		{"assets", db.seedAssets},
		{"transactions", db.seedTransactions},
		{"goals", db.seedGoals},
		{"predefined_assets", db.seedInstruments},
	}

	for _, s := range seeders {
		empty, err := db.tableEmpty(s.table)
		if err != nil {
			return err
		}
		if !empty {
			continue
		}
		if err := s.fn(); err != nil {
			return err
		}
		log.Printf("Seeded table %s with sample data", s.table)
	}

	return nil
}

func (db *DB) tableEmpty(table string) (bool, error) {
	var count int
	err := db.conn.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count == 0, nil
}

func (db *DB) seedAssets() error {
	_, err := db.conn.Exec(`
		INSERT INTO assets (asset_name, asset_type, quantity, buy_price, current_price, purchase_date) VALUES
		('Apple Inc.', 'Stock', 10.0000, 150.00, 175.00, '2023-01-15'),
		('Tesla Inc.', 'Stock', 5.0000, 200.00, 180.00, '2023-02-20'),
		('Bitcoin', 'Crypto', 0.5000, 30000.00, 35000.00, '2023-03-10'),
		('SBI Bluechip Fund', 'Mutual Fund', 100.0000, 50.00, 55.00, '2023-01-01')
	`)
	if err != nil {
		return fmt.Errorf("failed to seed assets: %w", err)
	}
	return nil
}

func (db *DB) seedTransactions() error {
	_, err := db.conn.Exec(`
		INSERT INTO transactions (asset_name, transaction_type, quantity, price, transaction_date) VALUES
		('Apple Inc.', 'Buy', 10.0000, 150.00, '2023-01-15'),
		('Tesla Inc.', 'Buy', 5.0000, 200.00, '2023-02-20'),
		('Bitcoin', 'Buy', 0.5000, 30000.00, '2023-03-10'),
		('SBI Bluechip Fund', 'Buy', 100.0000, 50.00, '2023-01-01')
	`)
	if err != nil {
		return fmt.Errorf("failed to seed transactions: %w", err)
	}
	return nil
}

func (db *DB) seedGoals() error {
	_, err := db.conn.Exec(`
		INSERT INTO goals (goal_name, target_amount, target_date) VALUES
		('Buy a Car', 500000.00, '2024-12-31'),
		('Emergency Fund', 200000.00, '2024-06-30')
	`)
	if err != nil {
		return fmt.Errorf("failed to seed goals: %w", err)
	}
	return nil
}

func (db *DB) seedInstruments() error {
	_, err := db.conn.Exec(`
		INSERT INTO predefined_assets (symbol, name, type, current_price, last_updated) VALUES
		('RELIANCE', 'Reliance Industries Ltd.', 'Stock', 2456.75, NOW()),
		('TCS', 'Tata Consultancy Services Ltd.', 'Stock', 3567.80, NOW()),
		('HDFCBANK', 'HDFC Bank Ltd.', 'Stock', 1543.20, NOW()),
		('INFY', 'Infosys Ltd.', 'Stock', 1456.90, NOW()),
		('ICICIBANK', 'ICICI Bank Ltd.', 'Stock', 987.45, NOW()),
		('HINDUNILVR', 'Hindustan Unilever Ltd.', 'Stock', 2634.50, NOW()),
		('ITC', 'ITC Ltd.', 'Stock', 456.30, NOW()),
		('SBIN', 'State Bank of India', 'Stock', 598.75, NOW()),
		('BHARTIARTL', 'Bharti Airtel Ltd.', 'Stock', 945.60, NOW()),
		('KOTAKBANK', 'Kotak Mahindra Bank Ltd.', 'Stock', 1789.25, NOW()),
		('LT', 'Larsen & Toubro Ltd.', 'Stock', 3245.80, NOW()),
		('ASIANPAINT', 'Asian Paints Ltd.', 'Stock', 3098.40, NOW()),
		('MARUTI', 'Maruti Suzuki India Ltd.', 'Stock', 10234.55, NOW()),
		('TITAN', 'Titan Company Ltd.', 'Stock', 3387.15, NOW()),
		('WIPRO', 'Wipro Ltd.', 'Stock', 432.85, NOW()),
		('SBIBLUE', 'SBI Bluechip Fund', 'Mutual Fund', 62.48, NOW()),
		('HDFCTOP100', 'HDFC Top 100 Fund', 'Mutual Fund', 789.32, NOW()),
		('AXISMID', 'Axis Midcap Fund', 'Mutual Fund', 74.15, NOW()),
		('ICICITECH', 'ICICI Prudential Technology Fund', 'Mutual Fund', 158.60, NOW()),
		('BTC', 'Bitcoin', 'Crypto', 3520000.00, NOW()),
		('ETH', 'Ethereum', 'Crypto', 245000.00, NOW()),
		('BNB', 'Binance Coin', 'Crypto', 25600.00, NOW()),
		('SOL', 'Solana', 'Crypto', 8450.00, NOW()),
		('DOGE', 'Dogecoin', 'Crypto', 7.25, NOW())
	`)
	if err != nil {
		return fmt.Errorf("failed to seed predefined assets: %w", err)
	}
	return nil
}
