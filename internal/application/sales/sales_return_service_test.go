package sales

import (
	"context"
	"testing"

	"github.com/aurum/backoffice/internal/domain/sales"
	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSaleRepository is a mock implementation of SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) FindBySaleNumber(ctx context.Context, saleNumber string) (*sales.Sale, error) {
	args := m.Called(ctx, saleNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) SaveWithLock(ctx context.Context, sale *sales.Sale, expectedVersion int) error {
	args := m.Called(ctx, sale, expectedVersion)
	return args.Error(0)
}

func (m *MockSaleRepository) GenerateSaleNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockSalesReturnRepository is a mock implementation of SalesReturnRepository
type MockSalesReturnRepository struct {
	mock.Mock
}

func (m *MockSalesReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SalesReturn, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.SalesReturn), args.Error(1)
}

func (m *MockSalesReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.SalesReturn, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.SalesReturn), args.Error(1)
}

func (m *MockSalesReturnRepository) Save(ctx context.Context, sr *sales.SalesReturn) error {
	args := m.Called(ctx, sr)
	return args.Error(0)
}

func (m *MockSalesReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSalesReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesReturnRepository) FindByReturnNumber(ctx context.Context, returnNumber string) (*sales.SalesReturn, error) {
	args := m.Called(ctx, returnNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.SalesReturn), args.Error(1)
}

func (m *MockSalesReturnRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]sales.SalesReturn, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.SalesReturn), args.Error(1)
}

func (m *MockSalesReturnRepository) SaveWithLock(ctx context.Context, sr *sales.SalesReturn, expectedVersion int) error {
	args := m.Called(ctx, sr, expectedVersion)
	return args.Error(0)
}

func (m *MockSalesReturnRepository) GenerateReturnNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSalesReturnRepository) CountByStatus(ctx context.Context) (map[sales.ReturnStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[sales.ReturnStatus]int64), args.Error(1)
}

func completedSaleFixture(t *testing.T) (*sales.Sale, *sales.SaleLine) {
	t.Helper()
	sale, err := sales.NewSale("SL-2026-00001", "Meera Sharma")
	require.NoError(t, err)
	line, err := sale.AddLine(uuid.New(), "Silver Anklet", "SA-01",
		decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.NewFromFloat(0.18))
	require.NoError(t, err)
	require.NoError(t, sale.Complete())
	return sale, line
}

func TestSalesReturnServiceCreate(t *testing.T) {
	t.Run("proportional refund on partial return", func(t *testing.T) {
		sale, line := completedSaleFixture(t)

		saleRepo := new(MockSaleRepository)
		returnRepo := new(MockSalesReturnRepository)
		service := NewSalesReturnService(returnRepo, saleRepo)

		saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
		returnRepo.On("GenerateReturnNumber", mock.Anything).Return("SRN-2026-00001", nil)
		returnRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.SalesReturn")).Return(nil)

		resp, err := service.Create(context.Background(), CreateSalesReturnRequest{
			SaleID: sale.ID,
			Lines: []CreateSalesReturnLineInput{{
				SaleLineID:     line.ID,
				ReturnQuantity: decimal.NewFromInt(5),
				Reason:         "size exchange refused",
			}},
		})
		require.NoError(t, err)

		assert.Equal(t, "SRN-2026-00001", resp.ReturnNumber)
		assert.Equal(t, "pending", resp.Status)
		assert.True(t, decimal.NewFromInt(590).Equal(resp.RefundTotal))
		returnRepo.AssertExpectations(t)
	})

	t.Run("over-quantity return never reaches the repository", func(t *testing.T) {
		sale, line := completedSaleFixture(t)

		saleRepo := new(MockSaleRepository)
		returnRepo := new(MockSalesReturnRepository)
		service := NewSalesReturnService(returnRepo, saleRepo)

		saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
		returnRepo.On("GenerateReturnNumber", mock.Anything).Return("SRN-2026-00002", nil)

		_, err := service.Create(context.Background(), CreateSalesReturnRequest{
			SaleID: sale.ID,
			Lines: []CreateSalesReturnLineInput{{
				SaleLineID:     line.ID,
				ReturnQuantity: decimal.NewFromInt(11),
				Reason:         "defect",
			}},
		})
		require.Error(t, err)
		returnRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown sale propagates not found", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		returnRepo := new(MockSalesReturnRepository)
		service := NewSalesReturnService(returnRepo, saleRepo)

		saleID := uuid.New()
		saleRepo.On("FindByID", mock.Anything, saleID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(context.Background(), CreateSalesReturnRequest{
			SaleID: saleID,
			Lines: []CreateSalesReturnLineInput{{
				SaleLineID:     uuid.New(),
				ReturnQuantity: decimal.NewFromInt(1),
				Reason:         "defect",
			}},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestSalesReturnServiceWorkflow(t *testing.T) {
	sale, line := completedSaleFixture(t)
	sr, err := sales.BuildSalesReturn("SRN-2026-00003", sale, []sales.SalesReturnLineRequest{{
		SaleLineID:     line.ID,
		ReturnQuantity: decimal.NewFromInt(2),
		Reason:         "clasp defect",
	}})
	require.NoError(t, err)

	returnRepo := new(MockSalesReturnRepository)
	service := NewSalesReturnService(returnRepo, new(MockSaleRepository))

	returnRepo.On("FindByID", mock.Anything, sr.ID).Return(sr, nil)
	returnRepo.On("SaveWithLock", mock.Anything, sr, mock.AnythingOfType("int")).Return(nil)

	resp, err := service.Approve(context.Background(), sr.ID, ApproveReturnRequest{
		ApproverID: uuid.New(),
		Note:       "inspected on counter",
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)

	resp, err = service.Complete(context.Background(), sr.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
}
