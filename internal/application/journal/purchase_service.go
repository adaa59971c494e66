package journal

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appinventory "github.com/paintshop/backend/internal/application/inventory"
	"github.com/paintshop/backend/internal/domain/journal"
	"github.com/paintshop/backend/internal/domain/shared"
)

// PurchaseService records incoming stock. Every journal write and its stock
// adjustment happen inside one transaction scope so the ledger never drifts
// from the journal.
type PurchaseService struct {
	purchaseRepo journal.PurchaseRepository
	txScope      TransactionScope
	adjuster     *appinventory.AdjustmentService
	logger       *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchaseRepo journal.PurchaseRepository,
	txScope TransactionScope,
	adjuster *appinventory.AdjustmentService,
	logger *zap.Logger,
) *PurchaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		txScope:      txScope,
		adjuster:     adjuster,
		logger:       logger,
	}
}

// Create records a purchase: the journal entry, the positive stock
// adjustment and the product's latest purchase price commit together.
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest, actor uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := journal.NewPurchase(req.Date, req.ProductID, req.ColorID, req.Supplier, req.Quantity, req.UnitPrice, actor)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}

		if err := repos.Purchases().Create(ctx, purchase); err != nil {
			return err
		}

		if _, err := s.adjuster.AdjustWith(ctx, repos.Stock(), req.ProductID, req.ColorID, req.Quantity, actor); err != nil {
			return err
		}

		product.RecordPurchasePrice(req.UnitPrice)
		return repos.Products().Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase recorded",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.String("quantity", req.Quantity.String()),
	)

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// Update revises quantity, price or descriptive fields on an existing entry.
// A quantity change applies the signed difference to the stock ledger in the
// same transaction.
func (s *PurchaseService) Update(ctx context.Context, id uuid.UUID, req UpdatePurchaseRequest, actor uuid.UUID) (*PurchaseResponse, error) {
	var updated *journal.Purchase

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.Purchases().FindByID(ctx, id)
		if err != nil {
			return err
		}

		quantity := purchase.Quantity
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		unitPrice := purchase.UnitPrice
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		}

		delta, err := purchase.Revise(quantity, unitPrice)
		if err != nil {
			return err
		}
		if req.Supplier != nil {
			purchase.Supplier = *req.Supplier
		}
		if req.Date != nil && !req.Date.IsZero() {
			purchase.Date = *req.Date
		}

		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}

		if !delta.IsZero() {
			if _, err := s.adjuster.AdjustWith(ctx, repos.Stock(), purchase.ProductID, purchase.ColorID, delta, actor); err != nil {
				return err
			}
		}

		updated = purchase
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(updated)
	return &response, nil
}

// Delete removes a purchase entry and reverses its stock contribution
func (s *PurchaseService) Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.Purchases().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := repos.Purchases().Delete(ctx, id); err != nil {
			return err
		}

		if purchase.Quantity.IsPositive() {
			_, err = s.adjuster.AdjustWith(ctx, repos.Stock(), purchase.ProductID, purchase.ColorID, purchase.Quantity.Neg(), actor)
		}
		return err
	})
}

// GetByID returns one purchase entry
func (s *PurchaseService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// List returns purchases matching the filter with pagination metadata
func (s *PurchaseService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[PurchaseResponse], error) {
	purchases, err := s.purchaseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.purchaseRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(ToPurchaseResponses(purchases), total, filter.Page, filter.PageSize)
	return &result, nil
}

// TotalAmount sums the stored totals of purchases matching the filter
func (s *PurchaseService) TotalAmount(ctx context.Context, filter shared.Filter) (decimal.Decimal, error) {
	filter.Page = 0
	filter.PageSize = 0
	purchases, err := s.purchaseRepo.FindAll(ctx, filter)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range purchases {
		total = total.Add(purchases[i].TotalAmount)
	}
	return total, nil
}
