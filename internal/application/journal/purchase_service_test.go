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

type purchaseFixture struct {
	purchases *MockPurchaseRepository
	stock     *MockStockLevelRepository
	products  *MockProductRepository
	service   *PurchaseService
}

func newPurchaseFixture() *purchaseFixture {
	purchases := new(MockPurchaseRepository)
	stock := new(MockStockLevelRepository)
	products := new(MockProductRepository)
	scope := stubTxScope{repos: stubRepos{
		purchases: purchases,
		sales:     new(MockSaleRepository),
		stock:     stock,
		products:  products,
	}}
	adjuster := appinventory.NewAdjustmentService(stock, nil)
	return &purchaseFixture{
		purchases: purchases,
		stock:     stock,
		products:  products,
		service:   NewPurchaseService(purchases, scope, adjuster, nil),
	}
}

func stockLevelFor(t *testing.T, productID uuid.UUID, quantity int64) *inventory.StockLevel {
	t.Helper()
	level, err := inventory.NewStockLevel(productID, nil, decimal.NewFromInt(quantity), uuid.New())
	require.NoError(t, err)
	return level
}

func TestPurchaseService_Create(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("records entry, stock and latest price together", func(t *testing.T) {
		f := newPurchaseFixture()

		product, err := catalog.NewProduct("Emulsion White", catalog.ProductTypeGallon, actor)
		require.NoError(t, err)

		req := CreatePurchaseRequest{
			Date:      time.Now(),
			ProductID: product.ID,
			Supplier:  "Acme Paints",
			Quantity:  decimal.NewFromInt(10),
			UnitPrice: decimal.NewFromInt(150),
		}

		f.products.On("FindByID", ctx, product.ID).Return(product, nil).Once()
		f.purchases.On("Create", ctx, mock.AnythingOfType("*journal.Purchase")).Return(nil).Once()
		f.stock.On("UpsertAdd", ctx, mock.MatchedBy(func(adj inventory.Adjustment) bool {
			return adj.ProductID == product.ID && adj.Delta.Equal(decimal.NewFromInt(10))
		})).Return(stockLevelFor(t, product.ID, 10), nil).Once()
		f.products.On("Save", ctx, product).Return(nil).Once()

		response, err := f.service.Create(ctx, req, actor)

		require.NoError(t, err)
		assert.True(t, response.TotalAmount.Equal(decimal.NewFromInt(1500)))
		assert.True(t, product.PurchasePrice.Equal(decimal.NewFromInt(150)), "latest price should stick to the product")
		f.purchases.AssertExpectations(t)
		f.stock.AssertExpectations(t)
		f.products.AssertExpectations(t)
	})

	t.Run("rejects quantity below one before touching storage", func(t *testing.T) {
		f := newPurchaseFixture()

		req := CreatePurchaseRequest{
			ProductID: uuid.New(),
			Quantity:  decimal.NewFromFloat(0.5),
			UnitPrice: decimal.NewFromInt(100),
		}

		_, err := f.service.Create(ctx, req, actor)

		assert.Error(t, err)
		f.purchases.AssertNotCalled(t, "Create")
	})

	t.Run("unknown product aborts the whole flow", func(t *testing.T) {
		f := newPurchaseFixture()
		productID := uuid.New()

		f.products.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound).Once()

		req := CreatePurchaseRequest{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(5),
			UnitPrice: decimal.NewFromInt(100),
		}

		_, err := f.service.Create(ctx, req, actor)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.purchases.AssertNotCalled(t, "Create")
		f.stock.AssertNotCalled(t, "UpsertAdd")
	})
}

func TestPurchaseService_Update(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("applies the signed quantity difference to stock", func(t *testing.T) {
		f := newPurchaseFixture()

		purchase, err := journal.NewPurchase(time.Now(), uuid.New(), nil, "Acme", decimal.NewFromInt(5), decimal.NewFromInt(100), actor)
		require.NoError(t, err)

		newQty := decimal.NewFromInt(8)
		req := UpdatePurchaseRequest{Quantity: &newQty}

		f.purchases.On("FindByID", ctx, purchase.ID).Return(purchase, nil).Once()
		f.purchases.On("Save", ctx, purchase).Return(nil).Once()
		f.stock.On("UpsertAdd", ctx, mock.MatchedBy(func(adj inventory.Adjustment) bool {
			return adj.Delta.Equal(decimal.NewFromInt(3))
		})).Return(stockLevelFor(t, purchase.ProductID, 8), nil).Once()

		response, err := f.service.Update(ctx, purchase.ID, req, actor)

		require.NoError(t, err)
		assert.True(t, response.Quantity.Equal(newQty))
		assert.True(t, response.TotalAmount.Equal(decimal.NewFromInt(800)))
		f.stock.AssertExpectations(t)
	})

	t.Run("unchanged quantity skips the stock adjustment", func(t *testing.T) {
		f := newPurchaseFixture()

		purchase, err := journal.NewPurchase(time.Now(), uuid.New(), nil, "Acme", decimal.NewFromInt(5), decimal.NewFromInt(100), actor)
		require.NoError(t, err)

		supplier := "Brightline Traders"
		req := UpdatePurchaseRequest{Supplier: &supplier}

		f.purchases.On("FindByID", ctx, purchase.ID).Return(purchase, nil).Once()
		f.purchases.On("Save", ctx, purchase).Return(nil).Once()

		response, err := f.service.Update(ctx, purchase.ID, req, actor)

		require.NoError(t, err)
		assert.Equal(t, "Brightline Traders", response.Supplier)
		f.stock.AssertNotCalled(t, "UpsertAdd")
	})
}

func TestPurchaseService_Delete(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("reverses the remaining stock contribution", func(t *testing.T) {
		f := newPurchaseFixture()

		purchase, err := journal.NewPurchase(time.Now(), uuid.New(), nil, "Acme", decimal.NewFromInt(6), decimal.NewFromInt(100), actor)
		require.NoError(t, err)

		f.purchases.On("FindByID", ctx, purchase.ID).Return(purchase, nil).Once()
		f.purchases.On("Delete", ctx, purchase.ID).Return(nil).Once()
		f.stock.On("UpsertAdd", ctx, mock.MatchedBy(func(adj inventory.Adjustment) bool {
			return adj.Delta.Equal(decimal.NewFromInt(-6))
		})).Return(stockLevelFor(t, purchase.ProductID, 0), nil).Once()

		err = f.service.Delete(ctx, purchase.ID, actor)

		require.NoError(t, err)
		f.stock.AssertExpectations(t)
	})

	t.Run("fully depleted lot deletes without stock movement", func(t *testing.T) {
		f := newPurchaseFixture()

		purchase, err := journal.NewPurchase(time.Now(), uuid.New(), nil, "Acme", decimal.NewFromInt(6), decimal.NewFromInt(100), actor)
		require.NoError(t, err)
		purchase.Deduct(decimal.NewFromInt(6))

		f.purchases.On("FindByID", ctx, purchase.ID).Return(purchase, nil).Once()
		f.purchases.On("Delete", ctx, purchase.ID).Return(nil).Once()

		err = f.service.Delete(ctx, purchase.ID, actor)

		require.NoError(t, err)
		f.stock.AssertNotCalled(t, "UpsertAdd")
	})
}
