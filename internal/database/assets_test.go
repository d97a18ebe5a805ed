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

func TestGetAssetByID(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM assets`).WithArgs(1).
		WillReturnRows(assetRow(1, "Apple Inc.", "10", "150.00", "175.00"))

	a, err := db.GetAssetByID(1)
	require.NoError(t, err)

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, "Apple Inc.", a.AssetName)
	assert.Equal(t, models.AssetTypeStock, a.AssetType)
	assert.True(t, a.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, a.CurrentPrice.Equal(decimal.NewFromInt(175)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAssetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM assets`).WithArgs(99).WillReturnError(sql.ErrNoRows)

	_, err := db.GetAssetByID(99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAsset_AssignsIDAndTimestamps(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO assets`).
		WithArgs("Apple Inc.", models.AssetTypeStock, decimal.NewFromInt(10),
			decimal.NewFromInt(150), decimal.NewFromInt(175),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	a := &models.Asset{
		AssetName:    "Apple Inc.",
		AssetType:    models.AssetTypeStock,
		Quantity:     decimal.NewFromInt(10),
		BuyPrice:     decimal.NewFromInt(150),
		CurrentPrice: decimal.NewFromInt(175),
		PurchaseDate: time.Now(),
	}
	require.NoError(t, db.CreateAsset(a))

	assert.Equal(t, 7, a.ID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.False(t, a.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllAssets(t *testing.T) {
	db, mock := newMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows(assetColumns).
		AddRow(2, "Tesla Inc.", "Stock", "5", "200", "180", now, now, now).
		AddRow(1, "Apple Inc.", "Stock", "10", "150", "175", now, now, now)
	mock.ExpectQuery(`FROM assets`).WillReturnRows(rows)

	assets, err := db.GetAllAssets()
	require.NoError(t, err)

	require.Len(t, assets, 2)
	assert.Equal(t, "Tesla Inc.", assets[0].AssetName)
	assert.Equal(t, "Apple Inc.", assets[1].AssetName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAsset_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE assets`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	a := &models.Asset{ID: 99, AssetName: "Ghost", AssetType: models.AssetTypeStock}
	err := db.UpdateAsset(a)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAsset(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM assets`).WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, db.DeleteAsset(1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAsset_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM assets`).WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := db.DeleteAsset(99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
