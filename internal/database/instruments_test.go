package database

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/foliotrack/portfolio-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var instrumentColumns = []string{"id", "symbol", "name", "type", "current_price", "last_updated"}

func instrumentRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(instrumentColumns).
		AddRow(1, "RELIANCE", "Reliance Industries Ltd.", "Stock", "2456.75", now).
		AddRow(2, "TCS", "Tata Consultancy Services", "Stock", "3890.50", now)
}

func TestSearchInstruments_EmptyQueryReturnsCatalog(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM predefined_assets`).WillReturnRows(instrumentRows())

	instruments, err := db.SearchInstruments("")
	require.NoError(t, err)
	assert.Len(t, instruments, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchInstruments_PassesWildcardedQuery(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM predefined_assets`).
		WithArgs("%reli%", "reli%").
		WillReturnRows(instrumentRows())

	instruments, err := db.SearchInstruments("reli")
	require.NoError(t, err)
	assert.Len(t, instruments, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetInstrumentBySymbol(t *testing.T) {
	db, mock := newMockDB(t)

	now := time.Now()
	mock.ExpectQuery(`FROM predefined_assets`).WithArgs("RELIANCE").
		WillReturnRows(sqlmock.NewRows(instrumentColumns).
			AddRow(1, "RELIANCE", "Reliance Industries Ltd.", "Stock", "2456.75", now))

	in, err := db.GetInstrumentBySymbol("RELIANCE")
	require.NoError(t, err)

	assert.Equal(t, "RELIANCE", in.Symbol)
	assert.Equal(t, models.AssetTypeStock, in.Type)
	assert.True(t, in.CurrentPrice.Equal(decimal.RequireFromString("2456.75")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetInstrumentBySymbol_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM predefined_assets`).WithArgs("NOPE").
		WillReturnError(sql.ErrNoRows)

	_, err := db.GetInstrumentBySymbol("NOPE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountInstrumentsByType(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"type", "count"}).
		AddRow("Stock", 15).
		AddRow("Mutual Fund", 4).
		AddRow("Crypto", 5)
	mock.ExpectQuery(`GROUP BY type`).WillReturnRows(rows)

	counts, err := db.CountInstrumentsByType()
	require.NoError(t, err)

	assert.Equal(t, 15, counts[models.AssetTypeStock])
	assert.Equal(t, 4, counts[models.AssetTypeMutualFund])
	assert.Equal(t, 5, counts[models.AssetTypeCrypto])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInstrumentPrice_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE predefined_assets`).
		WithArgs("NOPE", decimal.NewFromInt(100), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := db.UpdateInstrumentPrice("NOPE", decimal.NewFromInt(100))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
