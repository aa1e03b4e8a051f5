package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crm/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormOrderRepository_Create_IsTransactional(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(db)

	customerID := uuid.New()
	products := []trade.OrderProduct{
		{ProductID: uuid.New(), Name: "Laptop", Price: decimal.RequireFromString("999.99")},
		{ProductID: uuid.New(), Name: "Mouse", Price: decimal.RequireFromString("25.50")},
	}
	order, err := trade.NewOrder(customerID, "Alice", "alice@example.com", products, time.Time{})
	require.NoError(t, err)

	// Order row and link rows commit together or not at all.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "orders"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "order_products"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err = repo.Create(context.Background(), order)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_Create_RollsBackOnLinkFailure(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(db)

	order, err := trade.NewOrder(uuid.New(), "Alice", "alice@example.com", []trade.OrderProduct{
		{ProductID: uuid.New(), Name: "Mouse", Price: decimal.RequireFromString("25.50")},
	}, time.Time{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "orders"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "order_products"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err = repo.Create(context.Background(), order)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_SumTotalAmount(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(db)

	rows := sqlmock.NewRows([]string{"coalesce"}).AddRow("1025.49")
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) FROM "orders"`).
		WillReturnRows(rows)

	total, err := repo.SumTotalAmount(context.Background())

	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("1025.49")))
}

func TestGormOrderRepository_FindAll_ProductFilterDeduplicates(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(db)

	productName := "lap"
	filter := trade.OrderFilter{ProductNameContains: &productName}

	orderID := uuid.New()
	customerID := uuid.New()
	orderRows := sqlmock.NewRows([]string{"id", "customer_id", "total_amount", "order_date", "created_at", "updated_at", "version"}).
		AddRow(orderID, customerID, decimal.RequireFromString("999.99"), time.Now(), time.Now(), time.Now(), 1)

	// The product-name predicate joins through order_products and selects
	// DISTINCT order rows so one order matching several products appears once.
	mock.ExpectQuery(`SELECT DISTINCT orders\.\* FROM "orders" JOIN order_products ON order_products\.order_id = orders\.id JOIN products ON products\.id = order_products\.product_id WHERE products\.name ILIKE \$1`).
		WithArgs("%lap%").
		WillReturnRows(orderRows)

	// Preloads for the customer and linked products.
	mock.ExpectQuery(`SELECT \* FROM "customers" WHERE "customers"\."id" = \$1`).
		WithArgs(customerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "created_at", "updated_at", "version"}).
			AddRow(customerID, "Alice", "alice@example.com", "", time.Now(), time.Now(), 1))
	mock.ExpectQuery(`SELECT \* FROM "order_products" WHERE "order_products"\."order_id" = \$1`).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "product_id"}))

	orders, err := repo.FindAll(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Alice", orders[0].CustomerName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
