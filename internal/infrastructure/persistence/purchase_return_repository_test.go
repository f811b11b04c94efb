package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aurum/backoffice/internal/domain/procurement"
	"github.com/aurum/backoffice/internal/domain/shared/costing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockReturnRepository(t *testing.T) (*GormPurchaseReturnRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormPurchaseReturnRepository(gormDB), mock, mockDB
}

func TestGormPurchaseReturnRepository_FindByID(t *testing.T) {
	repo, mock, mockDB := newMockReturnRepository(t)
	defer mockDB.Close()

	returnID := uuid.New()
	orderID := uuid.New()
	lineID := uuid.New()
	balanceID := uuid.New()
	receiptLineID := uuid.New()

	returnRows := sqlmock.NewRows([]string{
		"id", "version", "return_number", "order_id", "supplier_name", "status", "refund_total",
	}).AddRow(returnID, 2, "PRN-2026-00007", orderID, "Shree Gold Traders",
		"pending", decimal.NewFromInt(67500))

	lineRows := sqlmock.NewRows([]string{
		"id", "return_id", "balance_id", "receipt_line_id", "item_name", "track_by",
		"return_quantity", "unit_cost", "refund_amount", "reason",
	}).AddRow(lineID, returnID, balanceID, receiptLineID, "Gold Chain 22K", "quantity",
		decimal.NewFromInt(15), decimal.NewFromInt(4500), decimal.NewFromInt(67500), "clasp defect")

	mock.ExpectQuery(`SELECT \* FROM "purchase_returns" WHERE id = \$1 ORDER BY .* LIMIT .*`).
		WithArgs(returnID, 1).
		WillReturnRows(returnRows)
	mock.ExpectQuery(`SELECT \* FROM "purchase_return_lines" WHERE .*return_id.*`).
		WithArgs(returnID).
		WillReturnRows(lineRows)

	pr, err := repo.FindByID(context.Background(), returnID)

	require.NoError(t, err)
	assert.Equal(t, "PRN-2026-00007", pr.ReturnNumber)
	assert.Equal(t, orderID, pr.OrderID)
	assert.Equal(t, procurement.ReturnStatusPending, pr.Status)
	assert.Equal(t, 2, pr.Version)
	assert.True(t, decimal.NewFromInt(67500).Equal(pr.RefundTotal))

	require.Len(t, pr.Lines, 1)
	line := pr.Lines[0]
	assert.Equal(t, balanceID, line.BalanceID)
	assert.Equal(t, receiptLineID, line.ReceiptLineID)
	assert.Equal(t, costing.TrackByQuantity, line.TrackBy)
	assert.True(t, decimal.NewFromInt(15).Equal(line.ReturnQuantity))
	assert.True(t, decimal.NewFromInt(67500).Equal(line.RefundAmount))
	assert.Equal(t, "clasp defect", line.Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}
