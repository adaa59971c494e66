package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paintshop/backend/internal/domain/catalog"
	"github.com/paintshop/backend/internal/domain/inventory"
	"github.com/paintshop/backend/internal/domain/shared"
)

func newTestProduct(t *testing.T, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, catalog.ProductTypeGallon, uuid.New())
	require.NoError(t, err)
	return product
}

func TestInventoryService_List(t *testing.T) {
	ctx := context.Background()
	filter := shared.Filter{Page: 1, PageSize: 20}

	t.Run("merges persisted and virtual rows", func(t *testing.T) {
		stockRepo := new(MockStockLevelRepository)
		productRepo := new(MockProductRepository)
		colorRepo := new(MockColorRepository)
		service := NewInventoryService(stockRepo, productRepo, colorRepo, nil)

		stocked := newTestProduct(t, "Emulsion White")
		unstocked := newTestProduct(t, "Primer Grey")

		level, err := inventory.NewStockLevel(stocked.ID, nil, decimal.NewFromInt(12), uuid.New())
		require.NoError(t, err)

		productRepo.On("FindActive", ctx, filter).Return([]catalog.Product{*stocked, *unstocked}, nil).Once()
		stockRepo.On("FindByProduct", ctx, stocked.ID).Return([]inventory.StockLevel{*level}, nil).Once()
		stockRepo.On("FindByProduct", ctx, unstocked.ID).Return([]inventory.StockLevel{}, nil).Once()

		views, err := service.List(ctx, filter)

		require.NoError(t, err)
		require.Len(t, views, 2)

		assert.False(t, views[0].Virtual)
		assert.NotNil(t, views[0].ID)
		assert.True(t, views[0].Quantity.Equal(decimal.NewFromInt(12)))

		assert.True(t, views[1].Virtual)
		assert.Nil(t, views[1].ID)
		assert.True(t, views[1].Quantity.IsZero())
		assert.True(t, views[1].MinStockLevel.Equal(inventory.DefaultMinStockLevel))
		assert.False(t, views[1].LowStock)
	})

	t.Run("virtual row resolves color from product code", func(t *testing.T) {
		stockRepo := new(MockStockLevelRepository)
		productRepo := new(MockProductRepository)
		colorRepo := new(MockColorRepository)
		service := NewInventoryService(stockRepo, productRepo, colorRepo, nil)

		product := newTestProduct(t, "Enamel")
		product.SetCode("rd-01")

		color, err := catalog.NewColor("Signal Red", "RD-01", "#CC0000")
		require.NoError(t, err)

		productRepo.On("FindActive", ctx, filter).Return([]catalog.Product{*product}, nil).Once()
		stockRepo.On("FindByProduct", ctx, product.ID).Return([]inventory.StockLevel{}, nil).Once()
		colorRepo.On("FindByCodeName", ctx, "RD-01").Return(color, nil).Once()

		views, err := service.List(ctx, filter)

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.True(t, views[0].Virtual)
		require.NotNil(t, views[0].ColorID)
		assert.Equal(t, color.ID, *views[0].ColorID)
		assert.Equal(t, "Signal Red", views[0].ColorName)
	})

	t.Run("unresolvable code leaves virtual row colorless", func(t *testing.T) {
		stockRepo := new(MockStockLevelRepository)
		productRepo := new(MockProductRepository)
		colorRepo := new(MockColorRepository)
		service := NewInventoryService(stockRepo, productRepo, colorRepo, nil)

		product := newTestProduct(t, "Thinner")
		product.SetCode("ZZ-99")

		productRepo.On("FindActive", ctx, filter).Return([]catalog.Product{*product}, nil).Once()
		stockRepo.On("FindByProduct", ctx, product.ID).Return([]inventory.StockLevel{}, nil).Once()
		colorRepo.On("FindByCodeName", ctx, "ZZ-99").Return(nil, shared.ErrNotFound).Once()

		views, err := service.List(ctx, filter)

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Nil(t, views[0].ColorID)
		assert.Empty(t, views[0].ColorName)
	})
}

func TestInventoryService_LowStock(t *testing.T) {
	ctx := context.Background()
	filter := shared.Filter{Page: 1, PageSize: 20}

	t.Run("returns persisted low rows with product names", func(t *testing.T) {
		stockRepo := new(MockStockLevelRepository)
		productRepo := new(MockProductRepository)
		colorRepo := new(MockColorRepository)
		service := NewInventoryService(stockRepo, productRepo, colorRepo, nil)

		product := newTestProduct(t, "Undercoat")
		level, err := inventory.NewStockLevel(product.ID, nil, decimal.NewFromInt(3), uuid.New())
		require.NoError(t, err)

		stockRepo.On("FindLowStock", ctx, filter).Return([]inventory.StockLevel{*level}, nil).Once()
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil).Once()

		views, err := service.LowStock(ctx, filter)

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Undercoat", views[0].ProductName)
		assert.True(t, views[0].LowStock)
		assert.False(t, views[0].Virtual)
	})

	t.Run("skips rows whose product disappeared", func(t *testing.T) {
		stockRepo := new(MockStockLevelRepository)
		productRepo := new(MockProductRepository)
		colorRepo := new(MockColorRepository)
		service := NewInventoryService(stockRepo, productRepo, colorRepo, nil)

		orphanProduct := uuid.New()
		level, err := inventory.NewStockLevel(orphanProduct, nil, decimal.NewFromInt(2), uuid.New())
		require.NoError(t, err)

		stockRepo.On("FindLowStock", ctx, filter).Return([]inventory.StockLevel{*level}, nil).Once()
		productRepo.On("FindByID", ctx, orphanProduct).Return(nil, shared.ErrNotFound).Once()

		views, err := service.LowStock(ctx, filter)

		require.NoError(t, err)
		assert.Empty(t, views)
	})
}

func TestInventoryService_UpdateMinStock(t *testing.T) {
	ctx := context.Background()

	t.Run("updates threshold on a real row", func(t *testing.T) {
		stockRepo := new(MockStockLevelRepository)
		service := NewInventoryService(stockRepo, new(MockProductRepository), new(MockColorRepository), nil)

		level, err := inventory.NewStockLevel(uuid.New(), nil, decimal.NewFromInt(10), uuid.New())
		require.NoError(t, err)

		stockRepo.On("FindByID", ctx, level.ID).Return(level, nil).Once()
		stockRepo.On("Save", ctx, level).Return(nil).Once()

		updated, err := service.UpdateMinStock(ctx, level.ID, decimal.NewFromInt(8))

		require.NoError(t, err)
		assert.True(t, updated.MinStockLevel.Equal(decimal.NewFromInt(8)))
		stockRepo.AssertExpectations(t)
	})

	t.Run("unknown ID comes back as not found", func(t *testing.T) {
		stockRepo := new(MockStockLevelRepository)
		service := NewInventoryService(stockRepo, new(MockProductRepository), new(MockColorRepository), nil)

		id := uuid.New()
		stockRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound).Once()

		_, err := service.UpdateMinStock(ctx, id, decimal.NewFromInt(8))

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects negative threshold", func(t *testing.T) {
		stockRepo := new(MockStockLevelRepository)
		service := NewInventoryService(stockRepo, new(MockProductRepository), new(MockColorRepository), nil)

		level, err := inventory.NewStockLevel(uuid.New(), nil, decimal.NewFromInt(10), uuid.New())
		require.NoError(t, err)

		stockRepo.On("FindByID", ctx, level.ID).Return(level, nil).Once()

		_, err = service.UpdateMinStock(ctx, level.ID, decimal.NewFromInt(-1))

		assert.Error(t, err)
		stockRepo.AssertNotCalled(t, "Save")
	})
}
