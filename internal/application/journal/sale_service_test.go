package journal

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appinventory "github.com/paintshop/backend/internal/application/inventory"
	"github.com/paintshop/backend/internal/domain/catalog"
	"github.com/paintshop/backend/internal/domain/inventory"
	"github.com/paintshop/backend/internal/domain/journal"
	"github.com/paintshop/backend/internal/domain/shared"
)

type saleFixture struct {
	sales     *MockSaleRepository
	purchases *MockPurchaseRepository
	stock     *MockStockLevelRepository
	products  *MockProductRepository
	colors    *MockColorRepository
	service   *SaleService
}

func newSaleFixture() *saleFixture {
	sales := new(MockSaleRepository)
	purchases := new(MockPurchaseRepository)
	stock := new(MockStockLevelRepository)
	products := new(MockProductRepository)
	colors := new(MockColorRepository)
	scope := stubTxScope{repos: stubRepos{
		purchases: purchases,
		sales:     sales,
		stock:     stock,
		products:  products,
	}}
	adjuster := appinventory.NewAdjustmentService(stock, nil)
	depleter := appinventory.NewDepletionService(purchases, nil)
	return &saleFixture{
		sales:     sales,
		purchases: purchases,
		stock:     stock,
		products:  products,
		colors:    colors,
		service:   NewSaleService(sales, products, colors, scope, adjuster, depleter, nil),
	}
}

func saleLot(t *testing.T, productID uuid.UUID, colorID *uuid.UUID, daysAgo int, quantity int64) journal.Purchase {
	t.Helper()
	lot, err := journal.NewPurchase(
		time.Now().AddDate(0, 0, -daysAgo),
		productID, colorID, "Acme Paints",
		decimal.NewFromInt(quantity), decimal.NewFromInt(100),
		uuid.New(),
	)
	require.NoError(t, err)
	return *lot
}

func TestSaleService_Create(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("records sale, deducts stock and depletes lots", func(t *testing.T) {
		f := newSaleFixture()

		product, err := catalog.NewProduct("Emulsion White", catalog.ProductTypeGallon, actor)
		require.NoError(t, err)

		req := CreateSaleRequest{
			Date:         time.Now(),
			CustomerName: "Karim",
			ProductID:    product.ID,
			Quantity:     decimal.NewFromInt(12),
			UnitPrice:    decimal.NewFromInt(150),
			Discount:     decimal.NewFromInt(10),
		}

		lots := []journal.Purchase{
			saleLot(t, product.ID, nil, 10, 10),
			saleLot(t, product.ID, nil, 5, 5),
		}

		f.products.On("FindByID", ctx, product.ID).Return(product, nil).Once()
		f.sales.On("Create", ctx, mock.AnythingOfType("*journal.Sale")).Return(nil).Once()
		f.stock.On("UpsertAdd", ctx, mock.MatchedBy(func(adj inventory.Adjustment) bool {
			return adj.Delta.Equal(decimal.NewFromInt(-12))
		})).Return(stockLevelFor(t, product.ID, 3), nil).Once()
		f.purchases.On("FindForDepletion", ctx, product.ID, (*uuid.UUID)(nil)).Return(lots, nil).Once()
		f.purchases.On("Save", ctx, mock.AnythingOfType("*journal.Purchase")).Return(nil)

		result, err := f.service.Create(ctx, req, actor)

		require.NoError(t, err)
		assert.True(t, result.Sale.TotalAmount.Equal(decimal.NewFromInt(1620)), "12 * 150 * 0.9")
		assert.Empty(t, result.Warnings)
		assert.True(t, lots[0].Quantity.IsZero())
		assert.True(t, lots[1].Quantity.Equal(decimal.NewFromInt(3)))
	})

	t.Run("resolves color from product code when none given", func(t *testing.T) {
		f := newSaleFixture()

		product, err := catalog.NewProduct("Enamel", catalog.ProductTypeQuarter, actor)
		require.NoError(t, err)
		product.SetCode("RD-01")

		color, err := catalog.NewColor("Signal Red", "RD-01", "#CC0000")
		require.NoError(t, err)
		colorID := color.ID

		req := CreateSaleRequest{
			ProductID: product.ID,
			Quantity:  decimal.NewFromInt(2),
			UnitPrice: decimal.NewFromInt(80),
		}

		f.products.On("FindByID", ctx, product.ID).Return(product, nil).Once()
		f.colors.On("FindByCodeName", ctx, "RD-01").Return(color, nil).Once()
		f.sales.On("Create", ctx, mock.MatchedBy(func(s *journal.Sale) bool {
			return s.ColorID != nil && *s.ColorID == colorID
		})).Return(nil).Once()
		f.stock.On("UpsertAdd", ctx, mock.MatchedBy(func(adj inventory.Adjustment) bool {
			return adj.ColorID != nil && *adj.ColorID == colorID
		})).Return(stockLevelFor(t, product.ID, 0), nil).Once()
		f.purchases.On("FindForDepletion", ctx, product.ID, mock.Anything).Return([]journal.Purchase{}, nil).Once()

		result, err := f.service.Create(ctx, req, actor)

		require.NoError(t, err)
		require.NotNil(t, result.Sale.ColorID)
		assert.Equal(t, colorID, *result.Sale.ColorID)
	})

	t.Run("exhausted purchase history surfaces as a warning", func(t *testing.T) {
		f := newSaleFixture()

		product, err := catalog.NewProduct("Thinner", catalog.ProductTypeOther, actor)
		require.NoError(t, err)

		req := CreateSaleRequest{
			ProductID: product.ID,
			Quantity:  decimal.NewFromInt(5),
			UnitPrice: decimal.NewFromInt(60),
		}

		lots := []journal.Purchase{saleLot(t, product.ID, nil, 3, 2)}

		f.products.On("FindByID", ctx, product.ID).Return(product, nil).Once()
		f.sales.On("Create", ctx, mock.AnythingOfType("*journal.Sale")).Return(nil).Once()
		f.stock.On("UpsertAdd", ctx, mock.AnythingOfType("inventory.Adjustment")).
			Return(stockLevelFor(t, product.ID, 0), nil).Once()
		f.purchases.On("FindForDepletion", ctx, product.ID, (*uuid.UUID)(nil)).Return(lots, nil).Once()
		f.purchases.On("Save", ctx, mock.AnythingOfType("*journal.Purchase")).Return(nil)

		result, err := f.service.Create(ctx, req, actor)

		require.NoError(t, err, "shortfall must not void the sale")
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "short by 3")
	})

	t.Run("rejects quantity below half a unit", func(t *testing.T) {
		f := newSaleFixture()

		product, err := catalog.NewProduct("Primer", catalog.ProductTypeGallon, actor)
		require.NoError(t, err)

		req := CreateSaleRequest{
			ProductID: product.ID,
			Quantity:  decimal.NewFromFloat(0.25),
			UnitPrice: decimal.NewFromInt(60),
		}

		f.products.On("FindByID", ctx, product.ID).Return(product, nil).Once()

		_, err = f.service.Create(ctx, req, actor)

		assert.Error(t, err)
		f.sales.AssertNotCalled(t, "Create")
	})
}

func TestSaleService_Delete(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("returns stock and restores the oldest lot", func(t *testing.T) {
		f := newSaleFixture()

		sale, err := journal.NewSale(time.Now(), "Karim", uuid.New(), nil,
			decimal.NewFromInt(4), decimal.NewFromInt(100), decimal.Zero, actor)
		require.NoError(t, err)

		oldest := saleLot(t, sale.ProductID, nil, 10, 1)

		f.sales.On("FindByID", ctx, sale.ID).Return(sale, nil).Once()
		f.sales.On("Delete", ctx, sale.ID).Return(nil).Once()
		f.stock.On("UpsertAdd", ctx, mock.MatchedBy(func(adj inventory.Adjustment) bool {
			return adj.Delta.Equal(decimal.NewFromInt(4))
		})).Return(stockLevelFor(t, sale.ProductID, 4), nil).Once()
		f.purchases.On("FindOldest", ctx, sale.ProductID, (*uuid.UUID)(nil)).Return(&oldest, nil).Once()
		f.purchases.On("Save", ctx, &oldest).Return(nil).Once()

		err = f.service.Delete(ctx, sale.ID, actor)

		require.NoError(t, err)
		assert.True(t, oldest.Quantity.Equal(decimal.NewFromInt(5)), "restored units concentrate on the oldest lot")
	})

	t.Run("missing sale propagates not found", func(t *testing.T) {
		f := newSaleFixture()
		id := uuid.New()

		f.sales.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound).Once()

		err := f.service.Delete(ctx, id, actor)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.stock.AssertNotCalled(t, "UpsertAdd")
	})
}
