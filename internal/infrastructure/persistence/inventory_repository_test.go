package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/commercekit/inventory/internal/domain/inventory"
	"github.com/commercekit/inventory/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newMockInventoryRecordRepository(t *testing.T) (*GormInventoryRecordRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormInventoryRecordRepository(gormDB), mock, mockDB
}

func recordColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "version",
		"sku_code", "warehouse_id",
		"quantity_on_hand", "allocated_quantity",
		"reorder_minimum", "reorder_quantity",
		"unit_cost", "restock_date",
	}
}

func recordRow(rows *sqlmock.Rows, id uuid.UUID, skuCode string, warehouseID, onHand, allocated int64) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, now, now, 1,
		skuCode, warehouseID,
		onHand, allocated,
		0, 0,
		decimal.Zero, nil,
	)
}

func TestGormInventoryRecordRepository_FindBySKUAndWarehouse(t *testing.T) {
	t.Run("finds existing record", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		rows := recordRow(sqlmock.NewRows(recordColumns()), recordID, "SKU-001", 1, 100, 30)

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE sku_code = \$1 AND warehouse_id = \$2`).
			WithArgs("SKU-001", int64(1), 1).
			WillReturnRows(rows)

		record, err := repo.FindBySKUAndWarehouse(context.Background(), "SKU-001", 1)

		require.NoError(t, err)
		assert.Equal(t, recordID, record.ID)
		assert.Equal(t, "SKU-001", record.SKUCode)
		assert.Equal(t, int64(100), record.QuantityOnHand)
		assert.Equal(t, int64(30), record.AllocatedQuantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to shared.ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE sku_code = \$1 AND warehouse_id = \$2`).
			WithArgs("SKU-MISSING", int64(1), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		record, err := repo.FindBySKUAndWarehouse(context.Background(), "SKU-MISSING", 1)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.Nil(t, record)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryRecordRepository_FindLowStock(t *testing.T) {
	t.Run("returns empty result without querying for no SKUs", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		records, err := repo.FindLowStock(context.Background(), nil, 1)

		require.NoError(t, err)
		assert.Empty(t, records)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filters on available quantity against reorder minimum", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		rows := recordRow(sqlmock.NewRows(recordColumns()), uuid.New(), "SKU-LOW", 1, 2, 0)

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE sku_code IN \(\$1,\$2\) AND warehouse_id = \$3`).
			WithArgs("SKU-LOW", "SKU-OK", int64(1)).
			WillReturnRows(rows)

		records, err := repo.FindLowStock(context.Background(), []string{"SKU-LOW", "SKU-OK"}, 1)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "SKU-LOW", records[0].SKUCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryRecordRepository_Create(t *testing.T) {
	repo, mock, mockDB := newMockInventoryRecordRepository(t)
	defer mockDB.Close()

	record, err := inventory.NewInventoryRecord("SKU-001", 1)
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO "inventory_records"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), record)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormInventoryRecordRepository_SaveWithLock(t *testing.T) {
	t.Run("updates when the version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		record, err := inventory.NewInventoryRecord("SKU-001", 1)
		require.NoError(t, err)
		_, err = record.AdjustStock(10, nil)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), record)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns concurrency conflict when no row matches", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		record, err := inventory.NewInventoryRecord("SKU-001", 1)
		require.NoError(t, err)
		_, err = record.AdjustStock(10, nil)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), record)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryRecordRepository_Delete(t *testing.T) {
	t.Run("deletes existing record", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "inventory_records" WHERE sku_code = \$1 AND warehouse_id = \$2`).
			WithArgs("SKU-001", int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), "SKU-001", 1)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to shared.ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "inventory_records" WHERE sku_code = \$1 AND warehouse_id = \$2`).
			WithArgs("SKU-MISSING", int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), "SKU-MISSING", 1)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
