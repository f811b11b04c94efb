package pricing

import (
	"context"
	"testing"

	"github.com/aurum/backoffice/internal/domain/pricing"
	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMakingChargeRepository is a mock implementation of MakingChargeRepository
type MockMakingChargeRepository struct {
	mock.Mock
}

func (m *MockMakingChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.MakingCharge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.MakingCharge), args.Error(1)
}

func (m *MockMakingChargeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]pricing.MakingCharge, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.MakingCharge), args.Error(1)
}

func (m *MockMakingChargeRepository) Save(ctx context.Context, mc *pricing.MakingCharge) error {
	args := m.Called(ctx, mc)
	return args.Error(0)
}

func (m *MockMakingChargeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMakingChargeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMakingChargeRepository) FindByStage(ctx context.Context, stageID uuid.UUID) ([]pricing.MakingCharge, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.MakingCharge), args.Error(1)
}

func (m *MockMakingChargeRepository) ExistsByKey(ctx context.Context, stageID, costTypeID, unitID uuid.UUID, costAmount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, stageID, costTypeID, unitID, costAmount)
	return args.Bool(0), args.Error(1)
}

func (m *MockMakingChargeRepository) SaveWithLock(ctx context.Context, mc *pricing.MakingCharge, expectedVersion int) error {
	args := m.Called(ctx, mc, expectedVersion)
	return args.Error(0)
}

func TestMakingChargeServiceCreate(t *testing.T) {
	t.Run("normalizes dozen quote on create", func(t *testing.T) {
		repo := new(MockMakingChargeRepository)
		service := NewMakingChargeService(repo)

		req := CreateMakingChargeRequest{
			StageID:    uuid.New(),
			StageName:  "Casting",
			CostTypeID: uuid.New(),
			CostType:   "Labour",
			UnitID:     uuid.New(),
			UnitName:   pricing.UnitDozen,
			CostAmount: decimal.NewFromInt(120),
		}

		repo.On("ExistsByKey", mock.Anything, req.StageID, req.CostTypeID, req.UnitID, req.CostAmount).Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*pricing.MakingCharge")).Return(nil)

		resp, err := service.Create(context.Background(), req)
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(120).Equal(resp.CostAmount))
		assert.True(t, decimal.NewFromInt(10).Equal(resp.NormalizedAmount))
		assert.Equal(t, "Casting", resp.StageName)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate key is a conflict", func(t *testing.T) {
		repo := new(MockMakingChargeRepository)
		service := NewMakingChargeService(repo)

		req := CreateMakingChargeRequest{
			StageID:    uuid.New(),
			StageName:  "Casting",
			CostTypeID: uuid.New(),
			CostType:   "Labour",
			UnitID:     uuid.New(),
			UnitName:   pricing.UnitGram,
			CostAmount: decimal.NewFromInt(50),
		}

		repo.On("ExistsByKey", mock.Anything, req.StageID, req.CostTypeID, req.UnitID, req.CostAmount).Return(true, nil)

		_, err := service.Create(context.Background(), req)
		require.Error(t, err)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "ALREADY_EXISTS", derr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestMakingChargeServiceUpdate(t *testing.T) {
	repo := new(MockMakingChargeRepository)
	service := NewMakingChargeService(repo)

	mc, err := pricing.NewMakingCharge(uuid.New(), "Polishing", uuid.New(), "Labour", uuid.New(), pricing.UnitTenGram, decimal.NewFromInt(500))
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, mc.ID).Return(mc, nil)
	repo.On("SaveWithLock", mock.Anything, mc, mc.Version).Return(nil)

	resp, err := service.Update(context.Background(), mc.ID, UpdateMakingChargeRequest{
		CostAmount: decimal.NewFromInt(700),
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(70).Equal(resp.NormalizedAmount))
	repo.AssertExpectations(t)
}
