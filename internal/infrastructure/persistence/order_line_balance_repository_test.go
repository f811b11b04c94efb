package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aurum/backoffice/internal/domain/procurement"
	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/aurum/backoffice/internal/domain/shared/costing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockBalanceRepository(t *testing.T) (*GormOrderLineBalanceRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormOrderLineBalanceRepository(gormDB), mock, mockDB
}

func TestGormOrderLineBalanceRepository_FindByID(t *testing.T) {
	t.Run("finds existing balance", func(t *testing.T) {
		repo, mock, mockDB := newMockBalanceRepository(t)
		defer mockDB.Close()

		balanceID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "item_name", "track_by", "received_quantity", "returned_quantity", "version"}).
			AddRow(balanceID, "Gold Ring 22K", "quantity", decimal.NewFromInt(40), decimal.NewFromInt(10), 2)

		mock.ExpectQuery(`SELECT \* FROM "order_line_balances" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(balanceID, 1).
			WillReturnRows(rows)

		balance, err := repo.FindByID(context.Background(), balanceID)

		assert.NoError(t, err)
		require.NotNil(t, balance)
		assert.Equal(t, balanceID, balance.ID)
		assert.Equal(t, costing.TrackByQuantity, balance.TrackBy)
		assert.True(t, balance.Available().Equal(decimal.NewFromInt(30)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing balance", func(t *testing.T) {
		repo, mock, mockDB := newMockBalanceRepository(t)
		defer mockDB.Close()

		balanceID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "order_line_balances" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(balanceID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		balance, err := repo.FindByID(context.Background(), balanceID)

		assert.Nil(t, balance)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderLineBalanceRepository_FindByIDs(t *testing.T) {
	t.Run("returns empty map for no ids", func(t *testing.T) {
		repo, _, mockDB := newMockBalanceRepository(t)
		defer mockDB.Close()

		balances, err := repo.FindByIDs(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, balances)
	})

	t.Run("keys results by id", func(t *testing.T) {
		repo, mock, mockDB := newMockBalanceRepository(t)
		defer mockDB.Close()

		firstID := uuid.New()
		secondID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "item_name", "track_by", "received_quantity", "returned_quantity", "version"}).
			AddRow(firstID, "Gold Ring 22K", "quantity", decimal.NewFromInt(40), decimal.Zero, 1).
			AddRow(secondID, "Gold Chain 22K", "weight", decimal.Zero, decimal.Zero, 1)

		mock.ExpectQuery(`SELECT \* FROM "order_line_balances" WHERE id IN .*`).
			WithArgs(firstID, secondID).
			WillReturnRows(rows)

		balances, err := repo.FindByIDs(context.Background(), []uuid.UUID{firstID, secondID})

		assert.NoError(t, err)
		require.Len(t, balances, 2)
		assert.Equal(t, "Gold Ring 22K", balances[firstID].ItemName)
		assert.Equal(t, "Gold Chain 22K", balances[secondID].ItemName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderLineBalanceRepository_SaveWithLock(t *testing.T) {
	balance := &procurement.OrderLineBalance{
		ID:               uuid.New(),
		TrackBy:          costing.TrackByQuantity,
		ReceivedQuantity: decimal.NewFromInt(40),
		ReturnedQuantity: decimal.NewFromInt(25),
		ReturnedWeight:   decimal.Zero,
		Version:          2,
	}

	t.Run("updates when version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockBalanceRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "order_line_balances" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), balance, 1)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports conflict when version is stale", func(t *testing.T) {
		repo, mock, mockDB := newMockBalanceRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "order_line_balances" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "order_line_balances" WHERE id = .*`).
			WithArgs(balance.ID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.SaveWithLock(context.Background(), balance, 1)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports not found when row is gone", func(t *testing.T) {
		repo, mock, mockDB := newMockBalanceRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "order_line_balances" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "order_line_balances" WHERE id = .*`).
			WithArgs(balance.ID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := repo.SaveWithLock(context.Background(), balance, 1)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
