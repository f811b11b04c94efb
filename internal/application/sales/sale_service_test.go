package sales

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSaleServiceCreate(t *testing.T) {
	saleRepo := new(MockSaleRepository)
	service := NewSaleService(saleRepo)

	saleRepo.On("GenerateSaleNumber", mock.Anything).Return("SL-2026-00021", nil)
	saleRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Sale")).Return(nil)

	customerID := uuid.New()
	resp, err := service.Create(context.Background(), CreateSaleRequest{
		CustomerID:   &customerID,
		CustomerName: "Meera Jewels",
		Lines: []CreateSaleLineInput{{
			ItemID:         uuid.New(),
			ItemName:       "Gold Ring 22K",
			ItemCode:       "GR-22K",
			Quantity:       decimal.NewFromInt(10),
			PriceBeforeTax: decimal.NewFromInt(100),
			GSTRate:        decimal.NewFromFloat(0.18),
		}},
		Discount:     decimal.NewFromInt(100),
		ShippingCost: decimal.NewFromInt(50),
		VAT:          decimal.NewFromInt(30),
		Remark:       "walk-in purchase",
	})
	require.NoError(t, err)

	assert.Equal(t, "SL-2026-00021", resp.SaleNumber)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "walk-in purchase", resp.Remark)
	require.NotNil(t, resp.CustomerID)
	assert.Equal(t, customerID, *resp.CustomerID)

	require.Len(t, resp.Lines, 1)
	assert.True(t, decimal.NewFromInt(1180).Equal(resp.Lines[0].FinalTotal))
	assert.True(t, decimal.NewFromInt(1160).Equal(resp.GrandTotal))

	saleRepo.AssertExpectations(t)
}

func TestSaleServiceCreateRejectsInvalidLine(t *testing.T) {
	saleRepo := new(MockSaleRepository)
	service := NewSaleService(saleRepo)

	saleRepo.On("GenerateSaleNumber", mock.Anything).Return("SL-2026-00022", nil)

	_, err := service.Create(context.Background(), CreateSaleRequest{
		CustomerName: "Meera Jewels",
		Lines: []CreateSaleLineInput{{
			ItemID:         uuid.New(),
			ItemName:       "Gold Ring 22K",
			Quantity:       decimal.Zero,
			PriceBeforeTax: decimal.NewFromInt(100),
		}},
	})
	require.Error(t, err)
	saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
